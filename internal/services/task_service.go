package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/photoclub/club-management-api/internal/constants"
	"github.com/photoclub/club-management-api/internal/models"
	"github.com/photoclub/club-management-api/internal/realtime"
	"github.com/photoclub/club-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskNotVisible     = errors.New("no permission to view this task")
	ErrDeadlinePast       = errors.New("deadline must be in the future")
	ErrInvalidAssignee    = errors.New("one or more users do not exist or are not active members")
	ErrNoUserIDsProvided  = errors.New("at least one user ID is required")
	ErrNotAssigned        = errors.New("you are not assigned to this task")
	ErrAssignmentNotFound = errors.New("no assignment exists for this user")
	ErrWorkNotOwned       = errors.New("work not found or does not belong to you")
	ErrInvalidStatus      = errors.New("invalid status value")
)

// taskPreloads loads everything the detail view needs.
var taskPreloads = []string{"Creator", "Assignments", "Assignments.User", "Assignments.SubmittedWork"}

// TaskService handles the task workflow: creation, assignment, per-assignee
// progress and the derived completion rate.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	workRepo repository.WorkRepository
	events   *realtime.Hub
}

// NewTaskService creates a new TaskService. The hub may be nil; events are
// then dropped.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, workRepo repository.WorkRepository, events *realtime.Hub) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		workRepo: workRepo,
		events:   events,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title        string
	Description  string
	Type         models.TaskType
	Deadline     time.Time
	Priority     models.TaskPriority
	AssignedTo   []uint64
	Requirements models.TaskRequirements
	Tags         []string
	Category     string
	IsPublic     bool
	CreatorID    uint64
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Actor        *models.User
	Status       *models.TaskStatus
	Priority     *models.TaskPriority
	Type         *models.TaskType
	AssignedToMe bool
	Page         int
	PageSize     int
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// unchanged. Status moves freely between all values here: the original
// system never guarded transitions on the generic update path and that
// looseness is preserved deliberately (see DESIGN.md).
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Type         *models.TaskType
	Deadline     *time.Time
	Priority     *models.TaskPriority
	Status       *models.TaskStatus
	Requirements *models.TaskRequirements
	Tags         []string
	Category     *string
	IsPublic     *bool
}

// Create validates and persists a draft task. Every initial assignee must be
// an active member or the whole call fails with no task created.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	if !input.Deadline.After(time.Now()) {
		return nil, ErrDeadlinePast
	}

	if len(input.AssignedTo) > 0 {
		if err := s.ensureAssignable(input.AssignedTo); err != nil {
			return nil, err
		}
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if input.Requirements.MinFiles == 0 {
		input.Requirements.MinFiles = constants.MinRequiredFiles
	}
	if input.Requirements.MaxFiles == 0 {
		input.Requirements.MaxFiles = 5
	}
	if input.Requirements.MaxFiles > constants.MaxAllowedFiles {
		input.Requirements.MaxFiles = constants.MaxAllowedFiles
	}

	task := &models.Task{
		Title:        input.Title,
		Description:  input.Description,
		Type:         input.Type,
		CreatorID:    input.CreatorID,
		Deadline:     input.Deadline,
		Priority:     input.Priority,
		Status:       models.TaskStatusDraft,
		Requirements: input.Requirements,
		Tags:         input.Tags,
		Category:     input.Category,
		IsPublic:     input.IsPublic,
	}

	now := time.Now()
	for _, userID := range uniqueIDs(input.AssignedTo) {
		task.Assignments = append(task.Assignments, models.TaskAssignment{
			UserID:     userID,
			AssignedAt: now,
			Status:     models.AssignmentPending,
		})
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.notify(input.AssignedTo, realtime.Event{
		Type:    realtime.EventTaskAssigned,
		TaskID:  task.ID,
		Message: task.Title,
	})

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// List returns tasks visible to the actor. Members only ever see published
// tasks assigned to them or marked public; admins see everything.
func (s *TaskService) List(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Status:   input.Status,
		Priority: input.Priority,
		Type:     input.Type,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	if input.Actor.Role != models.RoleAdmin {
		published := models.TaskStatusPublished
		filter.Status = &published
		if input.AssignedToMe {
			filter.AssignedUserID = &input.Actor.ID
		} else {
			filter.VisibleToUserID = &input.Actor.ID
		}
	} else if input.AssignedToMe {
		filter.AssignedUserID = &input.Actor.ID
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// Get returns one task, enforcing member visibility: non-admins may only view
// tasks assigned to them or marked public.
func (s *TaskService) Get(taskID uint64, actor *models.User) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if actor.Role != models.RoleAdmin {
		assigned := false
		for _, a := range task.Assignments {
			if a.UserID == actor.ID {
				assigned = true
				break
			}
		}
		if !assigned && !task.IsPublic {
			return nil, ErrTaskNotVisible
		}
	}

	return task, nil
}

// Update applies a partial update. A changed deadline must still be in the
// future; everything else moves as supplied.
func (s *TaskService) Update(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Deadline != nil {
		if !input.Deadline.After(time.Now()) {
			return nil, ErrDeadlinePast
		}
		task.Deadline = *input.Deadline
	}
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Type != nil {
		task.Type = *input.Type
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Requirements != nil {
		task.Requirements = *input.Requirements
	}
	if input.Tags != nil {
		task.Tags = input.Tags
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.IsPublic != nil {
		task.IsPublic = *input.IsPublic
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// Delete removes a task permanently. Linked works survive, decoupled.
func (s *TaskService) Delete(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// Assign adds pending assignments for the given users. Validation is
// all-or-nothing and adding an already-assigned user is a no-op.
func (s *TaskService) Assign(taskID uint64, userIDs []uint64) (*models.Task, error) {
	if len(userIDs) == 0 {
		return nil, ErrNoUserIDsProvided
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	userIDs = uniqueIDs(userIDs)
	if err := s.ensureAssignable(userIDs); err != nil {
		return nil, err
	}

	if err := s.taskRepo.AssignUsers(task.ID, userIDs); err != nil {
		return nil, fmt.Errorf("failed to assign users: %w", err)
	}

	s.notify(userIDs, realtime.Event{
		Type:    realtime.EventTaskAssigned,
		TaskID:  task.ID,
		Message: task.Title,
	})

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// Unassign removes one user's assignment. Any linked work stays, only the
// link goes.
func (s *TaskService) Unassign(taskID, userID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.UnassignUser(task.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to unassign user: %w", err)
	}

	s.notify([]uint64{userID}, realtime.Event{
		Type:    realtime.EventTaskUnassigned,
		TaskID:  task.ID,
		Message: task.Title,
	})

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// UpdateAssignmentStatusInput represents an admin progress update for one assignee.
type UpdateAssignmentStatusInput struct {
	TaskID   uint64
	UserID   uint64
	Status   models.AssignmentStatus
	WorkID   *uint64
	Feedback string
}

// UpdateAssignmentStatus sets one assignee's progress. A missing assignment
// is an error, not a silent no-op.
func (s *TaskService) UpdateAssignmentStatus(input UpdateAssignmentStatusInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(input.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.WorkID != nil {
		if _, err := s.workRepo.FindByID(*input.WorkID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrWorkNotOwned
			}
			return nil, fmt.Errorf("failed to find work: %w", err)
		}
	}

	if err := s.taskRepo.UpdateAssignmentStatus(task.ID, input.UserID, input.Status, input.WorkID, input.Feedback); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	s.notify([]uint64{input.UserID}, realtime.Event{
		Type:    realtime.EventTaskStatus,
		TaskID:  task.ID,
		Message: string(input.Status),
	})

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// SubmitWork is the member-facing submission path. Preconditions run in
// order: the actor must hold an assignment, then the work must exist and be
// theirs. The assignment update and the work back-reference commit together.
func (s *TaskService) SubmitWork(taskID, workID uint64, actor *models.User) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if _, err := s.taskRepo.FindAssignment(task.ID, actor.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAssigned
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	if _, err := s.workRepo.FindByIDAndAuthor(workID, actor.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotOwned
		}
		return nil, fmt.Errorf("failed to find work: %w", err)
	}

	if err := s.taskRepo.SubmitWork(task.ID, actor.ID, workID); err != nil {
		return nil, fmt.Errorf("failed to submit work: %w", err)
	}

	s.notify([]uint64{task.CreatorID}, realtime.Event{
		Type:    realtime.EventWorkSubmitted,
		TaskID:  task.ID,
		Message: actor.Username,
	})

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// Publish moves the task to published.
func (s *TaskService) Publish(taskID uint64) (*models.Task, error) {
	return s.setStatus(taskID, models.TaskStatusPublished)
}

// Complete moves the task to completed.
func (s *TaskService) Complete(taskID uint64) (*models.Task, error) {
	return s.setStatus(taskID, models.TaskStatusCompleted)
}

// Cancel moves the task to cancelled.
func (s *TaskService) Cancel(taskID uint64) (*models.Task, error) {
	return s.setStatus(taskID, models.TaskStatusCancelled)
}

func (s *TaskService) setStatus(taskID uint64, status models.TaskStatus) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Status = status
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// Stats returns the admin dashboard aggregate.
func (s *TaskService) Stats() (*repository.TaskStats, error) {
	stats, err := s.taskRepo.Stats(time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to compute task stats: %w", err)
	}
	return stats, nil
}

// ensureAssignable verifies every ID resolves to an active member.
func (s *TaskService) ensureAssignable(userIDs []uint64) error {
	ids := uniqueIDs(userIDs)
	count, err := s.userRepo.CountAssignable(ids)
	if err != nil {
		return fmt.Errorf("failed to verify users: %w", err)
	}
	if int(count) != len(ids) {
		return ErrInvalidAssignee
	}
	return nil
}

func (s *TaskService) notify(userIDs []uint64, event realtime.Event) {
	if s.events == nil || len(userIDs) == 0 {
		return
	}
	s.events.Notify(userIDs, event)
}

// uniqueIDs removes duplicate values while preserving order.
func uniqueIDs(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
