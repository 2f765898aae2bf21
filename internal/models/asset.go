package models

import (
	"time"

	"gorm.io/gorm"
)

type AssetStatus string

const (
	AssetAvailable   AssetStatus = "available"
	AssetInUse       AssetStatus = "in_use"
	AssetMaintenance AssetStatus = "maintenance"
	AssetRetired     AssetStatus = "retired"
)

func ValidAssetStatus(s string) bool {
	switch AssetStatus(s) {
	case AssetAvailable, AssetInUse, AssetMaintenance, AssetRetired:
		return true
	}
	return false
}

type AssetCondition string

const (
	ConditionNew         AssetCondition = "new"
	ConditionGood        AssetCondition = "good"
	ConditionFair        AssetCondition = "fair"
	ConditionNeedsRepair AssetCondition = "needs_repair"
)

func ValidAssetCondition(s string) bool {
	switch AssetCondition(s) {
	case ConditionNew, ConditionGood, ConditionFair, ConditionNeedsRepair:
		return true
	}
	return false
}

type MaintenanceKind string

const (
	MaintenanceUpkeep     MaintenanceKind = "upkeep"
	MaintenanceRepair     MaintenanceKind = "repair"
	MaintenanceInspection MaintenanceKind = "inspection"
)

func ValidMaintenanceKind(s string) bool {
	switch MaintenanceKind(s) {
	case MaintenanceUpkeep, MaintenanceRepair, MaintenanceInspection:
		return true
	}
	return false
}

// AssetUsage is one checkout/return cycle of an asset. ReturnedAt is nil while
// the asset is still out.
type AssetUsage struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	AssetID    uint64         `gorm:"not null;index" json:"-"`
	UserID     uint64         `gorm:"not null" json:"user_id"`
	UserName   string         `gorm:"type:varchar(50);not null" json:"user_name"`
	AssignedAt time.Time      `gorm:"not null" json:"assigned_at"`
	ReturnedAt *time.Time     `json:"returned_at"`
	Purpose    string         `gorm:"type:varchar(200)" json:"purpose"`
	Condition  AssetCondition `gorm:"type:varchar(20)" json:"condition"`
	Notes      string         `gorm:"type:varchar(300)" json:"notes"`
}

// AssetMaintenanceRecord is one maintenance event in an asset's history.
type AssetMaintenanceRecord struct {
	ID          uint64          `gorm:"primarykey" json:"id"`
	AssetID     uint64          `gorm:"not null;index" json:"-"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Kind        MaintenanceKind `gorm:"type:varchar(20);not null" json:"kind"`
	Description string          `gorm:"type:varchar(300);not null" json:"description"`
	Cost        float64         `json:"cost"`
	Technician  string          `gorm:"type:varchar(50)" json:"technician"`
	Notes       string          `gorm:"type:varchar(300)" json:"notes"`
}

type Asset struct {
	ID                 uint64         `gorm:"primarykey" json:"id"`
	Name               string         `gorm:"type:varchar(100);not null" json:"name"`
	Category           string         `gorm:"type:varchar(50);not null;index" json:"category"`
	Brand              string         `gorm:"type:varchar(50)" json:"brand"`
	Model              string         `gorm:"type:varchar(100)" json:"model"`
	SerialNumber       string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"serial_number"`
	Description        string         `gorm:"type:varchar(500)" json:"description"`
	Status             AssetStatus    `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	Condition          AssetCondition `gorm:"type:varchar(20);not null;default:'good'" json:"condition"`
	CurrentHolderID    *uint64        `gorm:"index" json:"current_holder_id"`
	HolderName         string         `gorm:"type:varchar(50)" json:"holder_name"`
	AssignedDate       *time.Time     `json:"assigned_date"`
	ExpectedReturnDate *time.Time     `json:"expected_return_date"`
	PurchaseDate       *time.Time     `json:"purchase_date"`
	PurchasePrice      float64        `json:"purchase_price"`
	Vendor             string         `gorm:"type:varchar(100)" json:"vendor"`
	WarrantyExpiry     *time.Time     `json:"warranty_expiry"`
	CreatedByID        uint64         `gorm:"not null" json:"created_by_id"`
	LastUpdatedByID    *uint64        `json:"last_updated_by_id"`
	Tags               StringList     `gorm:"type:text" json:"tags"`
	Location           string         `gorm:"type:varchar(100)" json:"location"`
	IsLoanable         bool           `gorm:"not null;default:true" json:"is_loanable"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CurrentHolder      *User                    `gorm:"foreignKey:CurrentHolderID" json:"current_holder,omitempty"`
	UsageHistory       []AssetUsage             `gorm:"foreignKey:AssetID" json:"usage_history,omitempty"`
	MaintenanceHistory []AssetMaintenanceRecord `gorm:"foreignKey:AssetID" json:"maintenance_history,omitempty"`
}

// InUse reports whether the asset is checked out to someone.
func (a *Asset) InUse() bool {
	return a.Status == AssetInUse && a.CurrentHolderID != nil
}

// Overdue reports whether the asset is out past its expected return date.
func (a *Asset) Overdue(now time.Time) bool {
	return a.Status == AssetInUse && a.ExpectedReturnDate != nil && now.After(*a.ExpectedReturnDate)
}
