package repository

import (
	"time"

	"github.com/photoclub/club-management-api/internal/models"
)

// TaskRepository defines the interface for task data access.
//
// Assignment mutations are transactional: the assignment rows, the task's
// submission counter, and the derived completion rate move together so a
// failure cannot leave the aggregate half-updated.
type TaskRepository interface {
	// Create creates a new task together with any initial assignments.
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists changed task fields
	Update(task *models.Task) error

	// Delete hard deletes a task, removes its assignments and decouples
	// any works that referenced it
	Delete(id uint64) error

	// AssignUsers appends pending assignments for users not already assigned
	// and recomputes the completion rate
	AssignUsers(taskID uint64, userIDs []uint64) error

	// UnassignUser removes one assignment and recomputes the completion rate
	UnassignUser(taskID, userID uint64) error

	// FindAssignment finds a specific task assignment
	FindAssignment(taskID, userID uint64) (*models.TaskAssignment, error)

	// UpdateAssignmentStatus sets one assignee's status, optionally attaching
	// a work (stamping submission time and bumping the task submission
	// counter) and overwriting feedback, then recomputes the completion rate
	UpdateAssignmentStatus(taskID, userID uint64, status models.AssignmentStatus, workID *uint64, feedback string) error

	// SubmitWork marks the caller's assignment submitted, links the work and
	// sets the work's task back-reference, all in one transaction
	SubmitWork(taskID, userID, workID uint64) error

	// Stats aggregates task counts and completion figures
	Stats(now time.Time) (*TaskStats, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status         *models.TaskStatus
	Priority       *models.TaskPriority
	Type           *models.TaskType
	CreatorID      *uint64
	AssignedUserID *uint64
	// VisibleToUserID restricts results to published tasks that are either
	// assigned to the user or public (the member visibility rule).
	VisibleToUserID *uint64
	Page            int
	PageSize        int
}

// TaskStats is the admin dashboard aggregate.
type TaskStats struct {
	TotalTasks        int64   `json:"total_tasks"`
	PublishedTasks    int64   `json:"published_tasks"`
	CompletedTasks    int64   `json:"completed_tasks"`
	OverdueTasks      int64   `json:"overdue_tasks"`
	AvgCompletionRate float64 `json:"avg_completion_rate"`
	TotalAssignments  int64   `json:"total_assignments"`
	TotalSubmissions  int64   `json:"total_submissions"`
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves users with filtering and pagination
	List(filter UserFilter) ([]models.User, int64, error)

	// Update persists changed user fields
	Update(user *models.User) error

	// Delete soft deletes a user
	Delete(id uint64) error

	// CountAdmins counts active admin accounts
	CountAdmins() (int64, error)

	// CountAssignable counts how many of the given IDs are active members
	CountAssignable(userIDs []uint64) (int64, error)

	// Stats aggregates one user's work output
	Stats(userID uint64) (*UserStats, error)
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Role     *models.UserRole
	IsActive *bool
	Search   string
	Page     int
	PageSize int
}

// UserStats summarizes a user's published output.
type UserStats struct {
	TotalWorks int64 `json:"total_works"`
	TotalViews int64 `json:"total_views"`
	TotalLikes int64 `json:"total_likes"`
}

// WorkRepository defines the interface for work data access
type WorkRepository interface {
	// Create creates a new work with its file metadata
	Create(work *models.Work) error

	// FindByID finds a work by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Work, error)

	// FindByIDAndAuthor finds a work only if it belongs to the author
	FindByIDAndAuthor(id, authorID uint64) (*models.Work, error)

	// List retrieves works with filtering and pagination
	List(filter WorkFilter) ([]models.Work, int64, error)

	// Update persists changed work fields
	Update(work *models.Work) error

	// Delete soft deletes a work and its engagement rows
	Delete(id uint64) error

	// IncrementViews bumps the view counter without touching other fields
	IncrementViews(id uint64) error

	// ToggleLike flips the caller's like and adjusts the counter; returns
	// whether the work is liked after the call
	ToggleLike(workID, userID uint64) (bool, error)

	// AddComment appends a comment
	AddComment(comment *models.WorkComment) error

	// RemoveComment removes a comment by ID, scoped to the work
	RemoveComment(workID, commentID uint64) (*models.WorkComment, error)
}

// WorkFilter holds filtering options for listing works
type WorkFilter struct {
	Status     *models.WorkStatus
	Type       *models.WorkType
	Category   string
	AuthorID   *uint64
	Featured   *bool
	PublicOnly bool
	Search     string
	Page       int
	PageSize   int
}

// AssetRepository defines the interface for equipment data access
type AssetRepository interface {
	// Create creates a new asset
	Create(asset *models.Asset) error

	// FindByID finds an asset by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Asset, error)

	// FindBySerial finds an asset by serial number
	FindBySerial(serial string) (*models.Asset, error)

	// List retrieves assets with filtering and pagination
	List(filter AssetFilter) ([]models.Asset, int64, error)

	// Update persists changed asset fields
	Update(asset *models.Asset) error

	// Delete soft deletes an asset
	Delete(id uint64) error

	// Checkout hands the asset to a user and opens a usage history entry
	Checkout(assetID uint64, holder *models.User, purpose string, expectedReturn *time.Time) error

	// Return closes the open usage entry and makes the asset available again
	Return(assetID uint64, condition models.AssetCondition, notes string) error

	// AddMaintenance appends a maintenance record; repairs flip the asset
	// into maintenance status
	AddMaintenance(record *models.AssetMaintenanceRecord) error

	// Stats aggregates inventory counts
	Stats() (*AssetStats, error)
}

// AssetFilter holds filtering options for listing assets
type AssetFilter struct {
	Category string
	Status   *models.AssetStatus
	HolderID *uint64
	Search   string
	Page     int
	PageSize int
}

// AssetStats is the inventory dashboard aggregate.
type AssetStats struct {
	TotalAssets        int64            `json:"total_assets"`
	ByStatus           map[string]int64 `json:"by_status"`
	ByCategory         map[string]int64 `json:"by_category"`
	TotalPurchaseValue float64          `json:"total_purchase_value"`
}
