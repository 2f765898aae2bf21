package dto

import (
	"time"

	"github.com/photoclub/club-management-api/internal/models"
)

// WorkDTO represents a work in API responses
type WorkDTO struct {
	ID              uint64                `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description,omitempty"`
	Type            models.WorkType       `json:"type"`
	AuthorID        uint64                `json:"author_id"`
	AuthorName      string                `json:"author_name"`
	Thumbnail       string                `json:"thumbnail,omitempty"`
	Tags            []string              `json:"tags"`
	Category        string                `json:"category,omitempty"`
	Status          models.WorkStatus     `json:"status"`
	IsPublic        bool                  `json:"is_public"`
	IsFeatured      bool                  `json:"is_featured"`
	Views           int                   `json:"views"`
	Likes           int                   `json:"likes"`
	Metadata        models.WorkMetadata   `json:"metadata"`
	Files           []models.WorkFile     `json:"files,omitempty"`
	Comments        []models.WorkComment  `json:"comments,omitempty"`
	SubmissionDate  time.Time             `json:"submission_date"`
	ApprovalDate    *time.Time            `json:"approval_date,omitempty"`
	RejectionReason string                `json:"rejection_reason,omitempty"`
	RelatedTaskID   *uint64               `json:"related_task_id,omitempty"`
	IsTaskSubmission bool                 `json:"is_task_submission"`
}

// ToWorkDTO converts a work to DTO
func ToWorkDTO(work models.Work) WorkDTO {
	return WorkDTO{
		ID:               work.ID,
		Title:            work.Title,
		Description:      work.Description,
		Type:             work.Type,
		AuthorID:         work.AuthorID,
		AuthorName:       work.AuthorName,
		Thumbnail:        work.Thumbnail,
		Tags:             work.Tags,
		Category:         work.Category,
		Status:           work.Status,
		IsPublic:         work.IsPublic,
		IsFeatured:       work.IsFeatured,
		Views:            work.Views,
		Likes:            work.Likes,
		Metadata:         work.Metadata,
		Files:            work.Files,
		Comments:         work.Comments,
		SubmissionDate:   work.SubmissionDate,
		ApprovalDate:     work.ApprovalDate,
		RejectionReason:  work.RejectionReason,
		RelatedTaskID:    work.RelatedTaskID,
		IsTaskSubmission: work.IsTaskSubmission,
	}
}

// ToWorkDTOs converts a slice of works
func ToWorkDTOs(works []models.Work) []WorkDTO {
	dtos := make([]WorkDTO, len(works))
	for i, work := range works {
		dtos[i] = ToWorkDTO(work)
	}
	return dtos
}
