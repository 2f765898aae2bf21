package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/photoclub/club-management-api/internal/models"
	"github.com/photoclub/club-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAssetNotFound      = errors.New("asset not found")
	ErrSerialTaken        = errors.New("serial number is already registered")
	ErrAssetNotLoanable   = errors.New("asset is not loanable")
	ErrAssetNotAvailable  = errors.New("asset is not available for checkout")
	ErrAssetCheckedOut    = errors.New("asset is currently checked out")
	ErrAssetNotCheckedOut = errors.New("asset is not checked out")
	ErrHolderNotEligible  = errors.New("holder must be an active account")
)

var assetPreloads = []string{"CurrentHolder", "UsageHistory", "MaintenanceHistory"}

// AssetService handles the equipment inventory and its loan lifecycle.
type AssetService struct {
	assetRepo repository.AssetRepository
	userRepo  repository.UserRepository
}

// NewAssetService creates a new AssetService
func NewAssetService(assetRepo repository.AssetRepository, userRepo repository.UserRepository) *AssetService {
	return &AssetService{assetRepo: assetRepo, userRepo: userRepo}
}

// CreateAssetInput represents input for registering an asset
type CreateAssetInput struct {
	Name           string
	Category       string
	Brand          string
	Model          string
	SerialNumber   string
	Description    string
	Condition      models.AssetCondition
	PurchaseDate   *time.Time
	PurchasePrice  float64
	Vendor         string
	WarrantyExpiry *time.Time
	Tags           []string
	Location       string
	IsLoanable     *bool
	CreatedByID    uint64
}

// Create registers a new asset. Serial numbers are unique across the inventory.
func (s *AssetService) Create(input CreateAssetInput) (*models.Asset, error) {
	if _, err := s.assetRepo.FindBySerial(input.SerialNumber); err == nil {
		return nil, ErrSerialTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check serial number: %w", err)
	}

	if input.Condition == "" {
		input.Condition = models.ConditionGood
	}
	loanable := true
	if input.IsLoanable != nil {
		loanable = *input.IsLoanable
	}

	asset := &models.Asset{
		Name:           input.Name,
		Category:       input.Category,
		Brand:          input.Brand,
		Model:          input.Model,
		SerialNumber:   input.SerialNumber,
		Description:    input.Description,
		Status:         models.AssetAvailable,
		Condition:      input.Condition,
		PurchaseDate:   input.PurchaseDate,
		PurchasePrice:  input.PurchasePrice,
		Vendor:         input.Vendor,
		WarrantyExpiry: input.WarrantyExpiry,
		CreatedByID:    input.CreatedByID,
		Tags:           input.Tags,
		Location:       input.Location,
		IsLoanable:     loanable,
	}

	if err := s.assetRepo.Create(asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	return asset, nil
}

// ListAssetsInput represents filters for listing assets
type ListAssetsInput struct {
	Category string
	Status   *models.AssetStatus
	HolderID *uint64
	Search   string
	Page     int
	PageSize int
}

// List returns assets matching the filters.
func (s *AssetService) List(input ListAssetsInput) ([]models.Asset, int64, error) {
	assets, total, err := s.assetRepo.List(repository.AssetFilter{
		Category: input.Category,
		Status:   input.Status,
		HolderID: input.HolderID,
		Search:   input.Search,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, total, nil
}

// Get returns one asset with its usage and maintenance history.
func (s *AssetService) Get(assetID uint64) (*models.Asset, error) {
	asset, err := s.assetRepo.FindByID(assetID, assetPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to find asset: %w", err)
	}
	return asset, nil
}

// UpdateAssetInput represents a partial asset update. Nil fields are left unchanged.
type UpdateAssetInput struct {
	Name           *string
	Category       *string
	Brand          *string
	Model          *string
	Description    *string
	Condition      *models.AssetCondition
	Status         *models.AssetStatus
	PurchaseDate   *time.Time
	PurchasePrice  *float64
	Vendor         *string
	WarrantyExpiry *time.Time
	Tags           []string
	Location       *string
	IsLoanable     *bool
	UpdatedByID    uint64
}

// Update edits asset details. The loan fields are managed through Checkout
// and Return, not here.
func (s *AssetService) Update(assetID uint64, input UpdateAssetInput) (*models.Asset, error) {
	asset, err := s.findBare(assetID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		asset.Name = *input.Name
	}
	if input.Category != nil {
		asset.Category = *input.Category
	}
	if input.Brand != nil {
		asset.Brand = *input.Brand
	}
	if input.Model != nil {
		asset.Model = *input.Model
	}
	if input.Description != nil {
		asset.Description = *input.Description
	}
	if input.Condition != nil {
		asset.Condition = *input.Condition
	}
	if input.Status != nil {
		asset.Status = *input.Status
	}
	if input.PurchaseDate != nil {
		asset.PurchaseDate = input.PurchaseDate
	}
	if input.PurchasePrice != nil {
		asset.PurchasePrice = *input.PurchasePrice
	}
	if input.Vendor != nil {
		asset.Vendor = *input.Vendor
	}
	if input.WarrantyExpiry != nil {
		asset.WarrantyExpiry = input.WarrantyExpiry
	}
	if input.Tags != nil {
		asset.Tags = input.Tags
	}
	if input.Location != nil {
		asset.Location = *input.Location
	}
	if input.IsLoanable != nil {
		asset.IsLoanable = *input.IsLoanable
	}
	asset.LastUpdatedByID = &input.UpdatedByID

	if err := s.assetRepo.Update(asset); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}

	return asset, nil
}

// Delete removes an asset from the inventory. A checked-out asset must be
// returned first.
func (s *AssetService) Delete(assetID uint64) error {
	asset, err := s.findBare(assetID)
	if err != nil {
		return err
	}

	if asset.InUse() {
		return ErrAssetCheckedOut
	}

	if err := s.assetRepo.Delete(asset.ID); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	return nil
}

// Checkout hands an available, loanable asset to an active user.
func (s *AssetService) Checkout(assetID, holderID uint64, purpose string, expectedReturn *time.Time) (*models.Asset, error) {
	asset, err := s.findBare(assetID)
	if err != nil {
		return nil, err
	}

	if !asset.IsLoanable {
		return nil, ErrAssetNotLoanable
	}
	if asset.Status != models.AssetAvailable {
		return nil, ErrAssetNotAvailable
	}

	holder, err := s.userRepo.FindByID(holderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHolderNotEligible
		}
		return nil, fmt.Errorf("failed to find holder: %w", err)
	}
	if !holder.IsActive {
		return nil, ErrHolderNotEligible
	}

	if err := s.assetRepo.Checkout(asset.ID, holder, purpose, expectedReturn); err != nil {
		return nil, fmt.Errorf("failed to check out asset: %w", err)
	}

	return s.Get(asset.ID)
}

// Return takes an asset back, recording its condition on the usage entry.
func (s *AssetService) Return(assetID uint64, condition models.AssetCondition, notes string) (*models.Asset, error) {
	asset, err := s.findBare(assetID)
	if err != nil {
		return nil, err
	}

	if asset.Status != models.AssetInUse {
		return nil, ErrAssetNotCheckedOut
	}

	if condition == "" {
		condition = asset.Condition
	}

	if err := s.assetRepo.Return(asset.ID, condition, notes); err != nil {
		return nil, fmt.Errorf("failed to return asset: %w", err)
	}

	return s.Get(asset.ID)
}

// MaintenanceInput represents one maintenance event
type MaintenanceInput struct {
	Date        time.Time
	Kind        models.MaintenanceKind
	Description string
	Cost        float64
	Technician  string
	Notes       string
}

// AddMaintenance records a maintenance event. Repairs take the asset out of
// circulation until an admin sets it back to available.
func (s *AssetService) AddMaintenance(assetID uint64, input MaintenanceInput) (*models.Asset, error) {
	asset, err := s.findBare(assetID)
	if err != nil {
		return nil, err
	}

	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	record := &models.AssetMaintenanceRecord{
		AssetID:     asset.ID,
		Date:        input.Date,
		Kind:        input.Kind,
		Description: input.Description,
		Cost:        input.Cost,
		Technician:  input.Technician,
		Notes:       input.Notes,
	}

	if err := s.assetRepo.AddMaintenance(record); err != nil {
		return nil, fmt.Errorf("failed to record maintenance: %w", err)
	}

	return s.Get(asset.ID)
}

// Stats returns the inventory aggregate.
func (s *AssetService) Stats() (*repository.AssetStats, error) {
	stats, err := s.assetRepo.Stats()
	if err != nil {
		return nil, fmt.Errorf("failed to compute asset stats: %w", err)
	}
	return stats, nil
}

func (s *AssetService) findBare(assetID uint64) (*models.Asset, error) {
	asset, err := s.assetRepo.FindByID(assetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to find asset: %w", err)
	}
	return asset, nil
}
