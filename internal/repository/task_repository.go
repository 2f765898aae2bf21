package repository

import (
	"math"
	"time"

	"github.com/photoclub/club-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// priorityOrder sorts urgent > high > medium > low in SQL.
const priorityOrder = "CASE tasks.priority WHEN 'urgent' THEN 4 WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC"

// Create creates a new task together with any initial assignments.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.Type != nil {
		query = query.Where("tasks.type = ?", *filter.Type)
	}
	if filter.CreatorID != nil {
		query = query.Where("tasks.creator_id = ?", *filter.CreatorID)
	}
	if filter.AssignedUserID != nil {
		query = query.Where("EXISTS (?)", r.assignmentExists(*filter.AssignedUserID))
	}
	if filter.VisibleToUserID != nil {
		query = query.Where("(tasks.is_public = ? OR EXISTS (?))", true, r.assignmentExists(*filter.VisibleToUserID))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order(priorityOrder).
		Order("tasks.deadline ASC").
		Order("tasks.created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.
		Preload("Creator").
		Preload("Assignments").
		Preload("Assignments.User").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *GormTaskRepository) assignmentExists(userID uint64) *gorm.DB {
	return r.db.Model(&models.TaskAssignment{}).
		Select("1").
		Where("task_assignments.task_id = tasks.id").
		Where("task_assignments.user_id = ?", userID)
}

// Update persists changed task fields
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete hard deletes a task. Assignments go with it; works that pointed at it
// are decoupled, never deleted.
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Work{}).
			Where("related_task_id = ?", id).
			Updates(map[string]interface{}{
				"related_task_id":    nil,
				"is_task_submission": false,
			}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&models.Task{}, id).Error
	})
}

// AssignUsers appends pending assignments for users not already assigned.
// Existing rows are left untouched, so re-assigning never resets progress.
func (r *GormTaskRepository) AssignUsers(taskID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	assignments := make([]models.TaskAssignment, len(userIDs))
	for i, userID := range userIDs {
		assignments[i] = models.TaskAssignment{
			TaskID:     taskID,
			UserID:     userID,
			AssignedAt: time.Now(),
			Status:     models.AssignmentPending,
		}
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "task_id"}, {Name: "user_id"}},
				DoNothing: true,
			}).
			Create(&assignments).Error; err != nil {
			return err
		}

		return r.recomputeCompletion(tx, taskID)
	})
}

// UnassignUser removes one assignment and recomputes the completion rate
func (r *GormTaskRepository) UnassignUser(taskID, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("task_id = ? AND user_id = ?", taskID, userID).
			Delete(&models.TaskAssignment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return r.recomputeCompletion(tx, taskID)
	})
}

// FindAssignment finds a specific task assignment
func (r *GormTaskRepository) FindAssignment(taskID, userID uint64) (*models.TaskAssignment, error) {
	var assignment models.TaskAssignment
	if err := r.db.Where("task_id = ? AND user_id = ?", taskID, userID).
		First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// UpdateAssignmentStatus sets one assignee's status. A work attachment stamps
// the submission time and bumps the task's submission counter exactly once.
func (r *GormTaskRepository) UpdateAssignmentStatus(taskID, userID uint64, status models.AssignmentStatus, workID *uint64, feedback string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var assignment models.TaskAssignment
		if err := tx.Where("task_id = ? AND user_id = ?", taskID, userID).
			First(&assignment).Error; err != nil {
			return err
		}

		assignment.Status = status
		if workID != nil {
			now := time.Now()
			assignment.SubmittedWorkID = workID
			assignment.SubmittedAt = &now

			if err := tx.Model(&models.Task{}).
				Where("id = ?", taskID).
				UpdateColumn("submission_count", gorm.Expr("submission_count + 1")).Error; err != nil {
				return err
			}
		}
		if feedback != "" {
			assignment.Feedback = feedback
		}

		if err := tx.Save(&assignment).Error; err != nil {
			return err
		}

		return r.recomputeCompletion(tx, taskID)
	})
}

// SubmitWork links a member's work to their assignment and points the work
// back at the task. Both sides commit or neither does.
func (r *GormTaskRepository) SubmitWork(taskID, userID, workID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var assignment models.TaskAssignment
		if err := tx.Where("task_id = ? AND user_id = ?", taskID, userID).
			First(&assignment).Error; err != nil {
			return err
		}

		now := time.Now()
		assignment.Status = models.AssignmentSubmitted
		assignment.SubmittedWorkID = &workID
		assignment.SubmittedAt = &now

		if err := tx.Save(&assignment).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Task{}).
			Where("id = ?", taskID).
			UpdateColumn("submission_count", gorm.Expr("submission_count + 1")).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Work{}).
			Where("id = ?", workID).
			Updates(map[string]interface{}{
				"related_task_id":    taskID,
				"is_task_submission": true,
			}).Error; err != nil {
			return err
		}

		return r.recomputeCompletion(tx, taskID)
	})
}

// recomputeCompletion re-derives the stored completion percentage from the
// assignment rows. Runs inside the caller's transaction.
func (r *GormTaskRepository) recomputeCompletion(tx *gorm.DB, taskID uint64) error {
	var total, completed int64

	if err := tx.Model(&models.TaskAssignment{}).
		Where("task_id = ?", taskID).
		Count(&total).Error; err != nil {
		return err
	}

	rate := 0
	if total > 0 {
		if err := tx.Model(&models.TaskAssignment{}).
			Where("task_id = ? AND status IN ?", taskID,
				[]models.AssignmentStatus{models.AssignmentCompleted, models.AssignmentSubmitted}).
			Count(&completed).Error; err != nil {
			return err
		}
		rate = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return tx.Model(&models.Task{}).
		Where("id = ?", taskID).
		UpdateColumn("completion_rate", rate).Error
}

// Stats aggregates task counts and completion figures
func (r *GormTaskRepository) Stats(now time.Time) (*TaskStats, error) {
	stats := &TaskStats{}

	if err := r.db.Model(&models.Task{}).Count(&stats.TotalTasks).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Task{}).
		Where("status = ?", models.TaskStatusPublished).
		Count(&stats.PublishedTasks).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Task{}).
		Where("status = ?", models.TaskStatusCompleted).
		Count(&stats.CompletedTasks).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Task{}).
		Where("status = ? AND deadline < ?", models.TaskStatusPublished, now).
		Count(&stats.OverdueTasks).Error; err != nil {
		return nil, err
	}

	var agg struct {
		AvgRate float64
		SubSum  int64
	}
	if err := r.db.Model(&models.Task{}).
		Select("COALESCE(AVG(completion_rate), 0) AS avg_rate, COALESCE(SUM(submission_count), 0) AS sub_sum").
		Where("status = ?", models.TaskStatusPublished).
		Scan(&agg).Error; err != nil {
		return nil, err
	}
	stats.AvgCompletionRate = agg.AvgRate
	stats.TotalSubmissions = agg.SubSum

	if err := r.db.Model(&models.TaskAssignment{}).
		Joins("JOIN tasks ON tasks.id = task_assignments.task_id").
		Where("tasks.status = ? AND tasks.deleted_at IS NULL", models.TaskStatusPublished).
		Count(&stats.TotalAssignments).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
