package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusDraft     TaskStatus = "draft"
	TaskStatusPublished TaskStatus = "published"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusCancelled TaskStatus = "cancelled"
)

func ValidTaskStatus(s string) bool {
	switch TaskStatus(s) {
	case TaskStatusDraft, TaskStatusPublished, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func ValidTaskPriority(s string) bool {
	switch TaskPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type TaskType string

const (
	TaskTypePhoto TaskType = "photo"
	TaskTypeVideo TaskType = "video"
	TaskTypeBoth  TaskType = "both"
)

func ValidTaskType(s string) bool {
	switch TaskType(s) {
	case TaskTypePhoto, TaskTypeVideo, TaskTypeBoth:
		return true
	}
	return false
}

// TaskRequirements describes what a submission against the task must contain.
type TaskRequirements struct {
	MinFiles       int    `gorm:"not null;default:1" json:"min_files"`
	MaxFiles       int    `gorm:"not null;default:5" json:"max_files"`
	Specifications string `gorm:"type:varchar(500)" json:"specifications"`
}

type Task struct {
	ID              uint64           `gorm:"primarykey" json:"id"`
	Title           string           `gorm:"type:varchar(100);not null" json:"title"`
	Description     string           `gorm:"type:text;not null" json:"description"`
	Type            TaskType         `gorm:"type:varchar(10);not null;default:'both'" json:"type"`
	CreatorID       uint64           `gorm:"not null;index" json:"creator_id"`
	Deadline        time.Time        `gorm:"not null;index" json:"deadline"`
	Priority        TaskPriority     `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Status          TaskStatus       `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	Requirements    TaskRequirements `gorm:"embedded;embeddedPrefix:req_" json:"requirements"`
	Tags            StringList       `gorm:"type:text" json:"tags"`
	Category        string           `gorm:"type:varchar(50)" json:"category"`
	IsPublic        bool             `gorm:"not null;default:false" json:"is_public"`
	CompletionRate  int              `gorm:"not null;default:0" json:"completion_rate"`
	SubmissionCount int              `gorm:"not null;default:0" json:"submission_count"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relations
	Creator     User             `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}

// AssignedCount returns the number of assignment entries.
func (t *Task) AssignedCount() int {
	return len(t.Assignments)
}

// CompletedCount returns the number of assignments counting toward completion.
func (t *Task) CompletedCount() int {
	n := 0
	for _, a := range t.Assignments {
		if a.Status.CountsCompleted() {
			n++
		}
	}
	return n
}

// ComputeCompletionRate derives the integer completion percentage from the
// loaded assignment list. Zero when there are no assignments.
func (t *Task) ComputeCompletionRate() int {
	if len(t.Assignments) == 0 {
		return 0
	}
	return int(math.Round(float64(t.CompletedCount()) / float64(len(t.Assignments)) * 100))
}
