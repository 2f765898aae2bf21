package dto

import (
	"time"

	"github.com/photoclub/club-management-api/internal/models"
)

// TaskAssignmentDTO represents one assignee's progress in API responses
type TaskAssignmentDTO struct {
	User            UserDTO                 `json:"user"`
	Status          models.AssignmentStatus `json:"status"`
	AssignedAt      time.Time               `json:"assigned_at"`
	SubmittedWorkID *uint64                 `json:"submitted_work_id,omitempty"`
	SubmittedAt     *time.Time              `json:"submitted_at,omitempty"`
	Feedback        string                  `json:"feedback,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID              uint64                  `json:"id"`
	Title           string                  `json:"title"`
	Description     string                  `json:"description"`
	Type            models.TaskType         `json:"type"`
	Creator         UserDTO                 `json:"creator"`
	Deadline        time.Time               `json:"deadline"`
	Priority        models.TaskPriority     `json:"priority"`
	Status          models.TaskStatus       `json:"status"`
	Requirements    models.TaskRequirements `json:"requirements"`
	Tags            []string                `json:"tags"`
	Category        string                  `json:"category,omitempty"`
	IsPublic        bool                    `json:"is_public"`
	CompletionRate  int                     `json:"completion_rate"`
	SubmissionCount int                     `json:"submission_count"`
	AssignedCount   int                     `json:"assigned_count"`
	Assignments     []TaskAssignmentDTO     `json:"assignments,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// ToTaskAssignmentDTO converts an assignment to DTO
func ToTaskAssignmentDTO(assignment models.TaskAssignment) TaskAssignmentDTO {
	return TaskAssignmentDTO{
		User:            ToUserDTO(assignment.User),
		Status:          assignment.Status,
		AssignedAt:      assignment.AssignedAt,
		SubmittedWorkID: assignment.SubmittedWorkID,
		SubmittedAt:     assignment.SubmittedAt,
		Feedback:        assignment.Feedback,
	}
}

// ToTaskDTO converts a task to DTO. Assignments are included only when the
// relation was loaded.
func ToTaskDTO(task models.Task) TaskDTO {
	d := TaskDTO{
		ID:              task.ID,
		Title:           task.Title,
		Description:     task.Description,
		Type:            task.Type,
		Creator:         ToUserDTO(task.Creator),
		Deadline:        task.Deadline,
		Priority:        task.Priority,
		Status:          task.Status,
		Requirements:    task.Requirements,
		Tags:            task.Tags,
		Category:        task.Category,
		IsPublic:        task.IsPublic,
		CompletionRate:  task.CompletionRate,
		SubmissionCount: task.SubmissionCount,
		AssignedCount:   task.AssignedCount(),
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}

	for _, assignment := range task.Assignments {
		d.Assignments = append(d.Assignments, ToTaskAssignmentDTO(assignment))
	}

	return d
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
