package models

import (
	"time"

	"gorm.io/gorm"
)

type WorkStatus string

const (
	WorkPending  WorkStatus = "pending"
	WorkApproved WorkStatus = "approved"
	WorkRejected WorkStatus = "rejected"
)

func ValidWorkStatus(s string) bool {
	switch WorkStatus(s) {
	case WorkPending, WorkApproved, WorkRejected:
		return true
	}
	return false
}

type WorkType string

const (
	WorkTypePhoto WorkType = "photo"
	WorkTypeVideo WorkType = "video"
)

func ValidWorkType(s string) bool {
	switch WorkType(s) {
	case WorkTypePhoto, WorkTypeVideo:
		return true
	}
	return false
}

// WorkFile holds the stored-file metadata for one uploaded file of a work.
// Upload handling itself lives outside this service; only metadata is kept.
type WorkFile struct {
	ID           uint64 `gorm:"primarykey" json:"id"`
	WorkID       uint64 `gorm:"not null;index" json:"-"`
	Filename     string `gorm:"type:varchar(255);not null" json:"filename"`
	OriginalName string `gorm:"type:varchar(255);not null" json:"original_name"`
	Mimetype     string `gorm:"type:varchar(100);not null" json:"mimetype"`
	Size         int64  `gorm:"not null" json:"size"`
	Path         string `gorm:"type:varchar(500);not null" json:"path"`
	URL          string `gorm:"type:varchar(500);not null" json:"url"`
}

// WorkComment is a single comment under a work.
type WorkComment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	WorkID    uint64    `gorm:"not null;index" json:"-"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	Username  string    `gorm:"type:varchar(20);not null" json:"username"`
	Content   string    `gorm:"type:varchar(500);not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkLike records that a user liked a work. One row per (work, user).
type WorkLike struct {
	WorkID    uint64    `gorm:"primarykey" json:"work_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkMetadata captures shooting details supplied by the author.
type WorkMetadata struct {
	Camera       string     `gorm:"type:varchar(100)" json:"camera"`
	Lens         string     `gorm:"type:varchar(100)" json:"lens"`
	ISO          string     `gorm:"type:varchar(20)" json:"iso"`
	Aperture     string     `gorm:"type:varchar(20)" json:"aperture"`
	ShutterSpeed string     `gorm:"type:varchar(20)" json:"shutter_speed"`
	FocalLength  string     `gorm:"type:varchar(20)" json:"focal_length"`
	Location     string     `gorm:"type:varchar(100)" json:"location"`
	ShootingDate *time.Time `json:"shooting_date"`
}

type Work struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	Title           string         `gorm:"type:varchar(100);not null" json:"title"`
	Description     string         `gorm:"type:varchar(1000)" json:"description"`
	Type            WorkType       `gorm:"type:varchar(10);not null;index" json:"type"`
	AuthorID        uint64         `gorm:"not null;index" json:"author_id"`
	AuthorName      string         `gorm:"type:varchar(50);not null" json:"author_name"`
	Thumbnail       string         `gorm:"type:varchar(500)" json:"thumbnail"`
	Tags            StringList     `gorm:"type:text" json:"tags"`
	Category        string         `gorm:"type:varchar(50)" json:"category"`
	Status          WorkStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	IsPublic        bool           `gorm:"not null;default:true" json:"is_public"`
	IsFeatured      bool           `gorm:"not null;default:false" json:"is_featured"`
	Views           int            `gorm:"not null;default:0" json:"views"`
	Likes           int            `gorm:"not null;default:0" json:"likes"`
	Metadata        WorkMetadata   `gorm:"embedded;embeddedPrefix:meta_" json:"metadata"`
	SubmissionDate  time.Time      `gorm:"autoCreateTime;index" json:"submission_date"`
	ApprovalDate    *time.Time     `json:"approval_date"`
	ApprovedByID    *uint64        `json:"approved_by_id"`
	RejectionReason string         `gorm:"type:varchar(200)" json:"rejection_reason"`
	RelatedTaskID   *uint64        `gorm:"index" json:"related_task_id"`
	IsTaskSubmission bool          `gorm:"not null;default:false;index" json:"is_task_submission"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Author      User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Files       []WorkFile    `gorm:"foreignKey:WorkID" json:"files,omitempty"`
	Comments    []WorkComment `gorm:"foreignKey:WorkID" json:"comments,omitempty"`
	LikedBy     []WorkLike    `gorm:"foreignKey:WorkID" json:"-"`
	RelatedTask *Task         `gorm:"foreignKey:RelatedTaskID" json:"-"`
}
