package models

import (
	"time"
)

type AssignmentStatus string

const (
	AssignmentPending    AssignmentStatus = "pending"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed"
	AssignmentSubmitted  AssignmentStatus = "submitted"
)

func ValidAssignmentStatus(s string) bool {
	switch AssignmentStatus(s) {
	case AssignmentPending, AssignmentInProgress, AssignmentCompleted, AssignmentSubmitted:
		return true
	}
	return false
}

// CountsCompleted reports whether this status counts toward the task completion rate.
func (s AssignmentStatus) CountsCompleted() bool {
	return s == AssignmentCompleted || s == AssignmentSubmitted
}

// TaskAssignment links one user to one task and tracks that user's progress.
// It has no identity outside its task; rows are removed when the task goes away.
type TaskAssignment struct {
	TaskID          uint64           `gorm:"primarykey" json:"task_id"`
	UserID          uint64           `gorm:"primarykey" json:"user_id"`
	AssignedAt      time.Time        `gorm:"autoCreateTime" json:"assigned_at"`
	Status          AssignmentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SubmittedWorkID *uint64          `json:"submitted_work_id"`
	SubmittedAt     *time.Time       `json:"submitted_at"`
	Feedback        string           `gorm:"type:varchar(500)" json:"feedback"`

	// Relations
	Task          Task  `gorm:"foreignKey:TaskID" json:"-"`
	User          User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	SubmittedWork *Work `gorm:"foreignKey:SubmittedWorkID" json:"submitted_work,omitempty"`
}
