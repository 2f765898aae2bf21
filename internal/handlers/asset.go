package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/photoclub/club-management-api/internal/dto"
	"github.com/photoclub/club-management-api/internal/middleware"
	"github.com/photoclub/club-management-api/internal/models"
	"github.com/photoclub/club-management-api/internal/response"
	"github.com/photoclub/club-management-api/internal/services"
	"github.com/photoclub/club-management-api/internal/utils"
)

type AssetHandler struct {
	assetService *services.AssetService
}

func NewAssetHandler(assetService *services.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// CreateAsset registers a new asset. Admin only.
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)

	type CreateAssetRequest struct {
		Name           string     `json:"name" binding:"required,max=100"`
		Category       string     `json:"category" binding:"required,max=50"`
		Brand          string     `json:"brand" binding:"omitempty,max=50"`
		Model          string     `json:"model" binding:"omitempty,max=100"`
		SerialNumber   string     `json:"serial_number" binding:"required,max=50"`
		Description    string     `json:"description" binding:"omitempty,max=500"`
		Condition      string     `json:"condition" binding:"omitempty,oneof=new good fair needs_repair"`
		PurchaseDate   *time.Time `json:"purchase_date"`
		PurchasePrice  float64    `json:"purchase_price" binding:"omitempty,min=0"`
		Vendor         string     `json:"vendor" binding:"omitempty,max=100"`
		WarrantyExpiry *time.Time `json:"warranty_expiry"`
		Tags           []string   `json:"tags"`
		Location       string     `json:"location" binding:"omitempty,max=100"`
		IsLoanable     *bool      `json:"is_loanable"`
	}

	var req CreateAssetRequest
	if !bindJSON(c, &req) {
		return
	}

	asset, err := h.assetService.Create(services.CreateAssetInput{
		Name:           req.Name,
		Category:       req.Category,
		Brand:          req.Brand,
		Model:          req.Model,
		SerialNumber:   req.SerialNumber,
		Description:    req.Description,
		Condition:      models.AssetCondition(req.Condition),
		PurchaseDate:   req.PurchaseDate,
		PurchasePrice:  req.PurchasePrice,
		Vendor:         req.Vendor,
		WarrantyExpiry: req.WarrantyExpiry,
		Tags:           req.Tags,
		Location:       req.Location,
		IsLoanable:     req.IsLoanable,
		CreatedByID:    actorID,
	})
	if err != nil {
		h.respondAssetError(c, err, "asset creation failed")
		return
	}

	response.Created(c, "Asset registered", dto.ToAssetDTO(*asset))
}

// ListAssets returns the inventory with optional filters.
func (h *AssetHandler) ListAssets(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	input := services.ListAssetsInput{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if !models.ValidAssetStatus(statusStr) {
			response.BadRequest(c, "Invalid status")
			return
		}
		status := models.AssetStatus(statusStr)
		input.Status = &status
	}
	if c.Query("mine") == "true" {
		if actorID, ok := middleware.GetUserID(c); ok {
			input.HolderID = &actorID
		}
	}

	assets, total, err := h.assetService.List(input)
	if err != nil {
		fail(c, err, "asset listing failed")
		return
	}

	response.OK(c, "", gin.H{
		"assets": dto.ToAssetDTOs(assets),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetAsset returns one asset with its usage and maintenance history.
func (h *AssetHandler) GetAsset(c *gin.Context) {
	assetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	asset, err := h.assetService.Get(assetID)
	if err != nil {
		h.respondAssetError(c, err, "asset lookup failed")
		return
	}

	response.OK(c, "", dto.ToAssetDTO(*asset))
}

// UpdateAsset edits asset details. Admin only.
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	assetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, _ := middleware.GetUserID(c)

	type UpdateAssetRequest struct {
		Name           *string    `json:"name" binding:"omitempty,max=100"`
		Category       *string    `json:"category" binding:"omitempty,max=50"`
		Brand          *string    `json:"brand" binding:"omitempty,max=50"`
		Model          *string    `json:"model" binding:"omitempty,max=100"`
		Description    *string    `json:"description" binding:"omitempty,max=500"`
		Condition      *string    `json:"condition" binding:"omitempty,oneof=new good fair needs_repair"`
		Status         *string    `json:"status" binding:"omitempty,oneof=available in_use maintenance retired"`
		PurchaseDate   *time.Time `json:"purchase_date"`
		PurchasePrice  *float64   `json:"purchase_price" binding:"omitempty,min=0"`
		Vendor         *string    `json:"vendor" binding:"omitempty,max=100"`
		WarrantyExpiry *time.Time `json:"warranty_expiry"`
		Tags           []string   `json:"tags"`
		Location       *string    `json:"location" binding:"omitempty,max=100"`
		IsLoanable     *bool      `json:"is_loanable"`
	}

	var req UpdateAssetRequest
	if !bindJSON(c, &req) {
		return
	}

	input := services.UpdateAssetInput{
		Name:           req.Name,
		Category:       req.Category,
		Brand:          req.Brand,
		Model:          req.Model,
		Description:    req.Description,
		PurchaseDate:   req.PurchaseDate,
		PurchasePrice:  req.PurchasePrice,
		Vendor:         req.Vendor,
		WarrantyExpiry: req.WarrantyExpiry,
		Tags:           req.Tags,
		Location:       req.Location,
		IsLoanable:     req.IsLoanable,
		UpdatedByID:    actorID,
	}
	if req.Condition != nil {
		condition := models.AssetCondition(*req.Condition)
		input.Condition = &condition
	}
	if req.Status != nil {
		status := models.AssetStatus(*req.Status)
		input.Status = &status
	}

	asset, err := h.assetService.Update(assetID, input)
	if err != nil {
		h.respondAssetError(c, err, "asset update failed")
		return
	}

	response.OK(c, "Asset updated", dto.ToAssetDTO(*asset))
}

// DeleteAsset removes an asset. Admin only; checked-out assets are refused.
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	assetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.assetService.Delete(assetID); err != nil {
		h.respondAssetError(c, err, "asset deletion failed")
		return
	}

	response.OK(c, "Asset deleted", nil)
}

// CheckoutAsset hands an asset to a user. Admin only.
func (h *AssetHandler) CheckoutAsset(c *gin.Context) {
	assetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CheckoutRequest struct {
		UserID         uint64     `json:"user_id" binding:"required"`
		Purpose        string     `json:"purpose" binding:"omitempty,max=200"`
		ExpectedReturn *time.Time `json:"expected_return"`
	}

	var req CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	asset, err := h.assetService.Checkout(assetID, req.UserID, req.Purpose, req.ExpectedReturn)
	if err != nil {
		h.respondAssetError(c, err, "asset checkout failed")
		return
	}

	response.OK(c, "Asset checked out", dto.ToAssetDTO(*asset))
}

// ReturnAsset takes an asset back. Admin only.
func (h *AssetHandler) ReturnAsset(c *gin.Context) {
	assetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type ReturnRequest struct {
		Condition string `json:"condition" binding:"omitempty,oneof=new good fair needs_repair"`
		Notes     string `json:"notes" binding:"omitempty,max=300"`
	}

	var req ReturnRequest
	if !bindJSON(c, &req) {
		return
	}

	asset, err := h.assetService.Return(assetID, models.AssetCondition(req.Condition), req.Notes)
	if err != nil {
		h.respondAssetError(c, err, "asset return failed")
		return
	}

	response.OK(c, "Asset returned", dto.ToAssetDTO(*asset))
}

// AddMaintenance records a maintenance event. Admin only.
func (h *AssetHandler) AddMaintenance(c *gin.Context) {
	assetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type MaintenanceRequest struct {
		Date        *time.Time `json:"date"`
		Kind        string     `json:"kind" binding:"required,oneof=upkeep repair inspection"`
		Description string     `json:"description" binding:"required,max=300"`
		Cost        float64    `json:"cost" binding:"omitempty,min=0"`
		Technician  string     `json:"technician" binding:"omitempty,max=50"`
		Notes       string     `json:"notes" binding:"omitempty,max=300"`
	}

	var req MaintenanceRequest
	if !bindJSON(c, &req) {
		return
	}

	input := services.MaintenanceInput{
		Kind:        models.MaintenanceKind(req.Kind),
		Description: req.Description,
		Cost:        req.Cost,
		Technician:  req.Technician,
		Notes:       req.Notes,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	asset, err := h.assetService.AddMaintenance(assetID, input)
	if err != nil {
		h.respondAssetError(c, err, "maintenance recording failed")
		return
	}

	response.OK(c, "Maintenance recorded", dto.ToAssetDTO(*asset))
}

// GetAssetStats returns the inventory aggregate. Admin only.
func (h *AssetHandler) GetAssetStats(c *gin.Context) {
	stats, err := h.assetService.Stats()
	if err != nil {
		fail(c, err, "asset stats failed")
		return
	}

	response.OK(c, "", stats)
}

func (h *AssetHandler) respondAssetError(c *gin.Context, err error, logMessage string) {
	switch {
	case errors.Is(err, services.ErrAssetNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrSerialTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, services.ErrAssetNotLoanable),
		errors.Is(err, services.ErrAssetNotAvailable),
		errors.Is(err, services.ErrAssetCheckedOut),
		errors.Is(err, services.ErrAssetNotCheckedOut),
		errors.Is(err, services.ErrHolderNotEligible):
		response.BadRequest(c, err.Error())
	default:
		fail(c, err, logMessage)
	}
}
