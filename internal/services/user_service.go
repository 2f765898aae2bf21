package services

import (
	"errors"
	"fmt"

	"github.com/photoclub/club-management-api/internal/models"
	"github.com/photoclub/club-management-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrLastAdmin    = errors.New("cannot remove the last active admin")
	ErrSelfAction   = errors.New("cannot perform this action on your own account")
	ErrInvalidRole  = errors.New("invalid role value")
)

// UserService handles the admin side of account management.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents admin-side account creation
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	RealName string
	Role     models.UserRole
}

// Create creates an account with an explicit role.
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	if _, err := s.userRepo.FindByUsername(input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		RealName:     input.RealName,
		Role:         input.Role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// ListUsersInput represents filters for listing users
type ListUsersInput struct {
	Role     *models.UserRole
	IsActive *bool
	Search   string
	Page     int
	PageSize int
}

// List returns accounts matching the filters.
func (s *UserService) List(input ListUsersInput) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(repository.UserFilter{
		Role:     input.Role,
		IsActive: input.IsActive,
		Search:   input.Search,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Get returns one account.
func (s *UserService) Get(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateRole changes an account's role. Admins cannot change their own role,
// and the last active admin cannot be demoted.
func (s *UserService) UpdateRole(actorID, userID uint64, role models.UserRole) (*models.User, error) {
	if actorID == userID {
		return nil, ErrSelfAction
	}

	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if user.Role == models.RoleAdmin && role != models.RoleAdmin {
		if err := s.ensureNotLastAdmin(); err != nil {
			return nil, err
		}
	}

	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	return user, nil
}

// UpdateStatus activates or deactivates an account, with the same self and
// last-admin guards as role changes.
func (s *UserService) UpdateStatus(actorID, userID uint64, active bool) (*models.User, error) {
	if actorID == userID {
		return nil, ErrSelfAction
	}

	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if user.Role == models.RoleAdmin && user.IsActive && !active {
		if err := s.ensureNotLastAdmin(); err != nil {
			return nil, err
		}
	}

	user.IsActive = active
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return user, nil
}

// Delete removes an account. Works and submissions keep their denormalized
// author name, so history stays readable.
func (s *UserService) Delete(actorID, userID uint64) error {
	if actorID == userID {
		return ErrSelfAction
	}

	user, err := s.Get(userID)
	if err != nil {
		return err
	}

	if user.Role == models.RoleAdmin && user.IsActive {
		if err := s.ensureNotLastAdmin(); err != nil {
			return err
		}
	}

	if err := s.userRepo.Delete(user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// Stats returns one user's work output aggregate.
func (s *UserService) Stats(userID uint64) (*repository.UserStats, error) {
	if _, err := s.Get(userID); err != nil {
		return nil, err
	}

	stats, err := s.userRepo.Stats(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute user stats: %w", err)
	}
	return stats, nil
}

func (s *UserService) ensureNotLastAdmin() error {
	count, err := s.userRepo.CountAdmins()
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count <= 1 {
		return ErrLastAdmin
	}
	return nil
}
