package repository

import (
	"time"

	"github.com/photoclub/club-management-api/internal/models"
	"gorm.io/gorm"
)

// GormAssetRepository is a GORM implementation of AssetRepository
type GormAssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new AssetRepository
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &GormAssetRepository{db: db}
}

// Create creates a new asset
func (r *GormAssetRepository) Create(asset *models.Asset) error {
	return r.db.Create(asset).Error
}

// FindByID finds an asset by ID with optional preloading
func (r *GormAssetRepository) FindByID(id uint64, preload ...string) (*models.Asset, error) {
	var asset models.Asset
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&asset, id).Error; err != nil {
		return nil, err
	}

	return &asset, nil
}

// FindBySerial finds an asset by serial number
func (r *GormAssetRepository) FindBySerial(serial string) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.Where("serial_number = ?", serial).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// List retrieves assets with filtering and pagination
func (r *GormAssetRepository) List(filter AssetFilter) ([]models.Asset, int64, error) {
	var assets []models.Asset

	query := r.db.Model(&models.Asset{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.HolderID != nil {
		query = query.Where("current_holder_id = ?", *filter.HolderID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR brand LIKE ? OR model LIKE ? OR serial_number LIKE ?", like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("CurrentHolder").Find(&assets).Error; err != nil {
		return nil, 0, err
	}

	return assets, total, nil
}

// Update persists changed asset fields
func (r *GormAssetRepository) Update(asset *models.Asset) error {
	return r.db.Save(asset).Error
}

// Delete soft deletes an asset
func (r *GormAssetRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Asset{}, id).Error
}

// Checkout hands the asset to a user and opens a usage history entry
func (r *GormAssetRepository) Checkout(assetID uint64, holder *models.User, purpose string, expectedReturn *time.Time) error {
	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Asset{}).
			Where("id = ?", assetID).
			Updates(map[string]interface{}{
				"current_holder_id":    holder.ID,
				"holder_name":          holder.RealName,
				"assigned_date":        now,
				"expected_return_date": expectedReturn,
				"status":               models.AssetInUse,
			}).Error; err != nil {
			return err
		}

		usage := models.AssetUsage{
			AssetID:    assetID,
			UserID:     holder.ID,
			UserName:   holder.RealName,
			AssignedAt: now,
			Purpose:    purpose,
		}
		return tx.Create(&usage).Error
	})
}

// Return closes the open usage entry and makes the asset available again
func (r *GormAssetRepository) Return(assetID uint64, condition models.AssetCondition, notes string) error {
	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.AssetUsage{}).
			Where("asset_id = ? AND returned_at IS NULL", assetID).
			Updates(map[string]interface{}{
				"returned_at": now,
				"condition":   condition,
				"notes":       notes,
			}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Asset{}).
			Where("id = ?", assetID).
			Updates(map[string]interface{}{
				"current_holder_id":    nil,
				"holder_name":          "",
				"assigned_date":        nil,
				"expected_return_date": nil,
				"status":               models.AssetAvailable,
				"condition":            condition,
			}).Error
	})
}

// AddMaintenance appends a maintenance record; repairs flip the asset into
// maintenance status.
func (r *GormAssetRepository) AddMaintenance(record *models.AssetMaintenanceRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		if record.Kind == models.MaintenanceRepair {
			return tx.Model(&models.Asset{}).
				Where("id = ?", record.AssetID).
				UpdateColumn("status", models.AssetMaintenance).Error
		}
		return nil
	})
}

// Stats aggregates inventory counts
func (r *GormAssetRepository) Stats() (*AssetStats, error) {
	stats := &AssetStats{
		ByStatus:   make(map[string]int64),
		ByCategory: make(map[string]int64),
	}

	if err := r.db.Model(&models.Asset{}).Count(&stats.TotalAssets).Error; err != nil {
		return nil, err
	}

	var statusRows []struct {
		Status string
		N      int64
	}
	if err := r.db.Model(&models.Asset{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		return nil, err
	}
	for _, row := range statusRows {
		stats.ByStatus[row.Status] = row.N
	}

	var categoryRows []struct {
		Category string
		N        int64
	}
	if err := r.db.Model(&models.Asset{}).
		Select("category, COUNT(*) AS n").
		Group("category").
		Scan(&categoryRows).Error; err != nil {
		return nil, err
	}
	for _, row := range categoryRows {
		stats.ByCategory[row.Category] = row.N
	}

	var value struct {
		Total float64
	}
	if err := r.db.Model(&models.Asset{}).
		Select("COALESCE(SUM(purchase_price), 0) AS total").
		Scan(&value).Error; err != nil {
		return nil, err
	}
	stats.TotalPurchaseValue = value.Total

	return stats, nil
}
