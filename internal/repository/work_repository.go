package repository

import (
	"errors"

	"github.com/photoclub/club-management-api/internal/models"
	"gorm.io/gorm"
)

// GormWorkRepository is a GORM implementation of WorkRepository
type GormWorkRepository struct {
	db *gorm.DB
}

// NewWorkRepository creates a new WorkRepository
func NewWorkRepository(db *gorm.DB) WorkRepository {
	return &GormWorkRepository{db: db}
}

// Create creates a new work with its file metadata
func (r *GormWorkRepository) Create(work *models.Work) error {
	return r.db.Create(work).Error
}

// FindByID finds a work by ID with optional preloading
func (r *GormWorkRepository) FindByID(id uint64, preload ...string) (*models.Work, error) {
	var work models.Work
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&work, id).Error; err != nil {
		return nil, err
	}

	return &work, nil
}

// FindByIDAndAuthor finds a work only if it belongs to the author
func (r *GormWorkRepository) FindByIDAndAuthor(id, authorID uint64) (*models.Work, error) {
	var work models.Work
	if err := r.db.Where("id = ? AND author_id = ?", id, authorID).
		First(&work).Error; err != nil {
		return nil, err
	}
	return &work, nil
}

// List retrieves works with filtering and pagination
func (r *GormWorkRepository) List(filter WorkFilter) ([]models.Work, int64, error) {
	var works []models.Work

	query := r.db.Model(&models.Work{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.PublicOnly {
		query = query.Where("is_public = ?", true)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR author_name LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("submission_date DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("Files").Find(&works).Error; err != nil {
		return nil, 0, err
	}

	return works, total, nil
}

// Update persists changed work fields
func (r *GormWorkRepository) Update(work *models.Work) error {
	return r.db.Save(work).Error
}

// Delete soft deletes a work and its engagement rows
func (r *GormWorkRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_id = ?", id).Delete(&models.WorkComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("work_id = ?", id).Delete(&models.WorkLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Work{}, id).Error
	})
}

// IncrementViews bumps the view counter without touching other fields
func (r *GormWorkRepository) IncrementViews(id uint64) error {
	return r.db.Model(&models.Work{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// ToggleLike flips the caller's like and adjusts the counter
func (r *GormWorkRepository) ToggleLike(workID, userID uint64) (bool, error) {
	liked := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var like models.WorkLike
		err := tx.Where("work_id = ? AND user_id = ?", workID, userID).
			First(&like).Error

		switch {
		case err == nil:
			if err := tx.Where("work_id = ? AND user_id = ?", workID, userID).
				Delete(&models.WorkLike{}).Error; err != nil {
				return err
			}
			return tx.Model(&models.Work{}).
				Where("id = ? AND likes > 0", workID).
				UpdateColumn("likes", gorm.Expr("likes - 1")).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			liked = true
			if err := tx.Create(&models.WorkLike{WorkID: workID, UserID: userID}).Error; err != nil {
				return err
			}
			return tx.Model(&models.Work{}).
				Where("id = ?", workID).
				UpdateColumn("likes", gorm.Expr("likes + 1")).Error
		default:
			return err
		}
	})
	return liked, err
}

// AddComment appends a comment
func (r *GormWorkRepository) AddComment(comment *models.WorkComment) error {
	return r.db.Create(comment).Error
}

// RemoveComment removes a comment by ID, scoped to the work
func (r *GormWorkRepository) RemoveComment(workID, commentID uint64) (*models.WorkComment, error) {
	var comment models.WorkComment
	if err := r.db.Where("id = ? AND work_id = ?", commentID, workID).
		First(&comment).Error; err != nil {
		return nil, err
	}
	if err := r.db.Delete(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}
