package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/photoclub/club-management-api/internal/models"
	"github.com/photoclub/club-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrWorkNotFound     = errors.New("work not found")
	ErrWorkNotVisible   = errors.New("no permission to view this work")
	ErrWorkForbidden    = errors.New("no permission to modify this work")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrCommentForbidden = errors.New("no permission to remove this comment")
)

var workPreloads = []string{"Files", "Comments", "Author"}

// WorkService handles the portfolio: submissions, moderation and engagement.
type WorkService struct {
	workRepo repository.WorkRepository
}

// NewWorkService creates a new WorkService
func NewWorkService(workRepo repository.WorkRepository) *WorkService {
	return &WorkService{workRepo: workRepo}
}

// CreateWorkInput represents input for submitting a work
type CreateWorkInput struct {
	Title         string
	Description   string
	Type          models.WorkType
	Tags          []string
	Category      string
	IsPublic      bool
	Metadata      models.WorkMetadata
	Files         []models.WorkFile
	RelatedTaskID *uint64
	Author        *models.User
}

// Create submits a new work in pending status awaiting review.
func (s *WorkService) Create(input CreateWorkInput) (*models.Work, error) {
	work := &models.Work{
		Title:            input.Title,
		Description:      input.Description,
		Type:             input.Type,
		AuthorID:         input.Author.ID,
		AuthorName:       input.Author.RealName,
		Tags:             input.Tags,
		Category:         input.Category,
		Status:           models.WorkPending,
		IsPublic:         input.IsPublic,
		Metadata:         input.Metadata,
		Files:            input.Files,
		RelatedTaskID:    input.RelatedTaskID,
		IsTaskSubmission: input.RelatedTaskID != nil,
	}

	if len(work.Files) > 0 {
		work.Thumbnail = work.Files[0].URL
	}

	if err := s.workRepo.Create(work); err != nil {
		return nil, fmt.Errorf("failed to create work: %w", err)
	}

	return s.workRepo.FindByID(work.ID, workPreloads...)
}

// ListWorksInput represents filters for listing works
type ListWorksInput struct {
	Actor    *models.User
	Status   *models.WorkStatus
	Type     *models.WorkType
	Category string
	AuthorID *uint64
	Featured *bool
	Mine     bool
	Search   string
	Page     int
	PageSize int
}

// List returns works visible to the actor. The gallery shows approved public
// works; authors additionally see their own regardless of status, via Mine.
func (s *WorkService) List(input ListWorksInput) ([]models.Work, int64, error) {
	filter := repository.WorkFilter{
		Status:   input.Status,
		Type:     input.Type,
		Category: input.Category,
		AuthorID: input.AuthorID,
		Featured: input.Featured,
		Search:   input.Search,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	if input.Mine {
		filter.AuthorID = &input.Actor.ID
	} else if input.Actor.Role != models.RoleAdmin {
		approved := models.WorkApproved
		filter.Status = &approved
		filter.PublicOnly = true
	}

	works, total, err := s.workRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list works: %w", err)
	}

	return works, total, nil
}

// Get returns one work and counts the view. Pending, rejected and private
// works are only visible to their author and admins.
func (s *WorkService) Get(workID uint64, actor *models.User) (*models.Work, error) {
	work, err := s.workRepo.FindByID(workID, workPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, fmt.Errorf("failed to find work: %w", err)
	}

	if actor.Role != models.RoleAdmin && work.AuthorID != actor.ID {
		if !work.IsPublic || work.Status != models.WorkApproved {
			return nil, ErrWorkNotVisible
		}
	}

	if work.AuthorID != actor.ID {
		if err := s.workRepo.IncrementViews(work.ID); err != nil {
			return nil, fmt.Errorf("failed to count view: %w", err)
		}
		work.Views++
	}

	return work, nil
}

// UpdateWorkInput represents a partial work update. Nil fields are left unchanged.
type UpdateWorkInput struct {
	Title       *string
	Description *string
	Tags        []string
	Category    *string
	IsPublic    *bool
	Metadata    *models.WorkMetadata
}

// Update edits a work. Only the author or an admin may edit.
func (s *WorkService) Update(workID uint64, actor *models.User, input UpdateWorkInput) (*models.Work, error) {
	work, err := s.findOwned(workID, actor)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		work.Title = *input.Title
	}
	if input.Description != nil {
		work.Description = *input.Description
	}
	if input.Tags != nil {
		work.Tags = input.Tags
	}
	if input.Category != nil {
		work.Category = *input.Category
	}
	if input.IsPublic != nil {
		work.IsPublic = *input.IsPublic
	}
	if input.Metadata != nil {
		work.Metadata = *input.Metadata
	}

	if err := s.workRepo.Update(work); err != nil {
		return nil, fmt.Errorf("failed to update work: %w", err)
	}

	return s.workRepo.FindByID(work.ID, workPreloads...)
}

// Delete removes a work. Only the author or an admin may delete.
func (s *WorkService) Delete(workID uint64, actor *models.User) error {
	work, err := s.findOwned(workID, actor)
	if err != nil {
		return err
	}

	if err := s.workRepo.Delete(work.ID); err != nil {
		return fmt.Errorf("failed to delete work: %w", err)
	}

	return nil
}

// Review approves or rejects a pending work.
func (s *WorkService) Review(workID uint64, reviewer *models.User, approve bool, reason string) (*models.Work, error) {
	work, err := s.workRepo.FindByID(workID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, fmt.Errorf("failed to find work: %w", err)
	}

	now := time.Now()
	if approve {
		work.Status = models.WorkApproved
		work.ApprovalDate = &now
		work.ApprovedByID = &reviewer.ID
		work.RejectionReason = ""
	} else {
		work.Status = models.WorkRejected
		work.ApprovalDate = nil
		work.ApprovedByID = nil
		work.RejectionReason = reason
	}

	if err := s.workRepo.Update(work); err != nil {
		return nil, fmt.Errorf("failed to review work: %w", err)
	}

	return s.workRepo.FindByID(work.ID, workPreloads...)
}

// SetFeatured toggles the gallery highlight flag.
func (s *WorkService) SetFeatured(workID uint64, featured bool) (*models.Work, error) {
	work, err := s.workRepo.FindByID(workID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, fmt.Errorf("failed to find work: %w", err)
	}

	work.IsFeatured = featured
	if err := s.workRepo.Update(work); err != nil {
		return nil, fmt.Errorf("failed to update work: %w", err)
	}

	return work, nil
}

// ToggleLike flips the actor's like on a work; returns the new liked state
// and like count.
func (s *WorkService) ToggleLike(workID uint64, actor *models.User) (bool, int, error) {
	if _, err := s.workRepo.FindByID(workID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrWorkNotFound
		}
		return false, 0, fmt.Errorf("failed to find work: %w", err)
	}

	liked, err := s.workRepo.ToggleLike(workID, actor.ID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to toggle like: %w", err)
	}

	work, err := s.workRepo.FindByID(workID)
	if err != nil {
		return false, 0, fmt.Errorf("failed to reload work: %w", err)
	}

	return liked, work.Likes, nil
}

// AddComment appends a comment under a work.
func (s *WorkService) AddComment(workID uint64, actor *models.User, content string) (*models.WorkComment, error) {
	if _, err := s.workRepo.FindByID(workID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, fmt.Errorf("failed to find work: %w", err)
	}

	comment := &models.WorkComment{
		WorkID:   workID,
		UserID:   actor.ID,
		Username: actor.Username,
		Content:  content,
	}

	if err := s.workRepo.AddComment(comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return comment, nil
}

// RemoveComment deletes a comment. Only its author or an admin may remove it.
func (s *WorkService) RemoveComment(workID, commentID uint64, actor *models.User) error {
	work, err := s.workRepo.FindByID(workID, "Comments")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkNotFound
		}
		return fmt.Errorf("failed to find work: %w", err)
	}

	var found *models.WorkComment
	for i := range work.Comments {
		if work.Comments[i].ID == commentID {
			found = &work.Comments[i]
			break
		}
	}
	if found == nil {
		return ErrCommentNotFound
	}

	if actor.Role != models.RoleAdmin && found.UserID != actor.ID {
		return ErrCommentForbidden
	}

	if _, err := s.workRepo.RemoveComment(workID, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to remove comment: %w", err)
	}

	return nil
}

func (s *WorkService) findOwned(workID uint64, actor *models.User) (*models.Work, error) {
	work, err := s.workRepo.FindByID(workID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, fmt.Errorf("failed to find work: %w", err)
	}

	if actor.Role != models.RoleAdmin && work.AuthorID != actor.ID {
		return nil, ErrWorkForbidden
	}

	return work, nil
}
