package dto

import (
	"time"

	"github.com/photoclub/club-management-api/internal/models"
)

// AssetDTO represents an asset in API responses
type AssetDTO struct {
	ID                 uint64                          `json:"id"`
	Name               string                          `json:"name"`
	Category           string                          `json:"category"`
	Brand              string                          `json:"brand,omitempty"`
	Model              string                          `json:"model,omitempty"`
	SerialNumber       string                          `json:"serial_number"`
	Description        string                          `json:"description,omitempty"`
	Status             models.AssetStatus              `json:"status"`
	Condition          models.AssetCondition           `json:"condition"`
	CurrentHolder      *UserDTO                        `json:"current_holder,omitempty"`
	HolderName         string                          `json:"holder_name,omitempty"`
	AssignedDate       *time.Time                      `json:"assigned_date,omitempty"`
	ExpectedReturnDate *time.Time                      `json:"expected_return_date,omitempty"`
	Overdue            bool                            `json:"overdue"`
	PurchaseDate       *time.Time                      `json:"purchase_date,omitempty"`
	PurchasePrice      float64                         `json:"purchase_price"`
	Vendor             string                          `json:"vendor,omitempty"`
	WarrantyExpiry     *time.Time                      `json:"warranty_expiry,omitempty"`
	Tags               []string                        `json:"tags"`
	Location           string                          `json:"location,omitempty"`
	IsLoanable         bool                            `json:"is_loanable"`
	UsageHistory       []models.AssetUsage             `json:"usage_history,omitempty"`
	MaintenanceHistory []models.AssetMaintenanceRecord `json:"maintenance_history,omitempty"`
	CreatedAt          time.Time                       `json:"created_at"`
	UpdatedAt          time.Time                       `json:"updated_at"`
}

// ToAssetDTO converts an asset to DTO
func ToAssetDTO(asset models.Asset) AssetDTO {
	d := AssetDTO{
		ID:                 asset.ID,
		Name:               asset.Name,
		Category:           asset.Category,
		Brand:              asset.Brand,
		Model:              asset.Model,
		SerialNumber:       asset.SerialNumber,
		Description:        asset.Description,
		Status:             asset.Status,
		Condition:          asset.Condition,
		HolderName:         asset.HolderName,
		AssignedDate:       asset.AssignedDate,
		ExpectedReturnDate: asset.ExpectedReturnDate,
		Overdue:            asset.Overdue(time.Now()),
		PurchaseDate:       asset.PurchaseDate,
		PurchasePrice:      asset.PurchasePrice,
		Vendor:             asset.Vendor,
		WarrantyExpiry:     asset.WarrantyExpiry,
		Tags:               asset.Tags,
		Location:           asset.Location,
		IsLoanable:         asset.IsLoanable,
		UsageHistory:       asset.UsageHistory,
		MaintenanceHistory: asset.MaintenanceHistory,
		CreatedAt:          asset.CreatedAt,
		UpdatedAt:          asset.UpdatedAt,
	}

	if asset.CurrentHolder != nil {
		holder := ToUserDTO(*asset.CurrentHolder)
		d.CurrentHolder = &holder
	}

	return d
}

// ToAssetDTOs converts a slice of assets
func ToAssetDTOs(assets []models.Asset) []AssetDTO {
	dtos := make([]AssetDTO, len(assets))
	for i, asset := range assets {
		dtos[i] = ToAssetDTO(asset)
	}
	return dtos
}
