package dto

import (
	"time"

	"github.com/photoclub/club-management-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64          `json:"id"`
	Username string          `json:"username"`
	RealName string          `json:"real_name"`
	Role     models.UserRole `json:"role"`
	Avatar   string          `json:"avatar,omitempty"`
}

// AccountDTO is the owner's (and admin's) view of an account, including
// fields the public profile hides.
type AccountDTO struct {
	UserDTO
	Email     string     `json:"email"`
	Bio       string     `json:"bio,omitempty"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToUserDTO converts a user to its public profile DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		RealName: user.RealName,
		Role:     user.Role,
		Avatar:   user.Avatar,
	}
}

// ToAccountDTO converts a user to the full account DTO
func ToAccountDTO(user models.User) AccountDTO {
	return AccountDTO{
		UserDTO:   ToUserDTO(user),
		Email:     user.Email,
		Bio:       user.Bio,
		IsActive:  user.IsActive,
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
	}
}

// ToAccountDTOs converts a slice of users
func ToAccountDTOs(users []models.User) []AccountDTO {
	dtos := make([]AccountDTO, len(users))
	for i, user := range users {
		dtos[i] = ToAccountDTO(user)
	}
	return dtos
}
