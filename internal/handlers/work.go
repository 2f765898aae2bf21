package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/photoclub/club-management-api/internal/dto"
	"github.com/photoclub/club-management-api/internal/middleware"
	"github.com/photoclub/club-management-api/internal/models"
	"github.com/photoclub/club-management-api/internal/response"
	"github.com/photoclub/club-management-api/internal/services"
	"github.com/photoclub/club-management-api/internal/utils"
)

type WorkHandler struct {
	workService *services.WorkService
}

func NewWorkHandler(workService *services.WorkService) *WorkHandler {
	return &WorkHandler{workService: workService}
}

// CreateWork submits a new work for review. Member or admin.
func (h *WorkHandler) CreateWork(c *gin.Context) {
	actor, _ := middleware.GetCurrentUser(c)

	type FileRequest struct {
		Filename     string `json:"filename" binding:"required,max=255"`
		OriginalName string `json:"original_name" binding:"required,max=255"`
		Mimetype     string `json:"mimetype" binding:"required,max=100"`
		Size         int64  `json:"size" binding:"required,min=1"`
		Path         string `json:"path" binding:"required,max=500"`
		URL          string `json:"url" binding:"required,max=500"`
	}

	type CreateWorkRequest struct {
		Title         string              `json:"title" binding:"required,max=100"`
		Description   string              `json:"description" binding:"omitempty,max=1000"`
		Type          string              `json:"type" binding:"required,oneof=photo video"`
		Tags          []string            `json:"tags"`
		Category      string              `json:"category" binding:"omitempty,max=50"`
		IsPublic      *bool               `json:"is_public"`
		Metadata      models.WorkMetadata `json:"metadata"`
		Files         []FileRequest       `json:"files" binding:"required,min=1,dive"`
		RelatedTaskID *uint64             `json:"related_task_id"`
	}

	var req CreateWorkRequest
	if !bindJSON(c, &req) {
		return
	}

	files := make([]models.WorkFile, len(req.Files))
	for i, f := range req.Files {
		files[i] = models.WorkFile{
			Filename:     f.Filename,
			OriginalName: f.OriginalName,
			Mimetype:     f.Mimetype,
			Size:         f.Size,
			Path:         f.Path,
			URL:          f.URL,
		}
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	work, err := h.workService.Create(services.CreateWorkInput{
		Title:         req.Title,
		Description:   req.Description,
		Type:          models.WorkType(req.Type),
		Tags:          req.Tags,
		Category:      req.Category,
		IsPublic:      isPublic,
		Metadata:      req.Metadata,
		Files:         files,
		RelatedTaskID: req.RelatedTaskID,
		Author:        actor,
	})
	if err != nil {
		fail(c, err, "work creation failed")
		return
	}

	response.Created(c, "Work submitted", dto.ToWorkDTO(*work))
}

// ListWorks returns the gallery, or the caller's own works with ?mine=true.
func (h *WorkHandler) ListWorks(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	input := services.ListWorksInput{
		Actor:    actor,
		Category: c.Query("category"),
		Mine:     c.Query("mine") == "true",
		Search:   c.Query("search"),
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if !models.ValidWorkStatus(statusStr) {
			response.BadRequest(c, "Invalid status")
			return
		}
		status := models.WorkStatus(statusStr)
		input.Status = &status
	}
	if typeStr := c.Query("type"); typeStr != "" {
		if !models.ValidWorkType(typeStr) {
			response.BadRequest(c, "Invalid type")
			return
		}
		workType := models.WorkType(typeStr)
		input.Type = &workType
	}
	if featuredStr := c.Query("featured"); featuredStr != "" {
		featured := featuredStr == "true"
		input.Featured = &featured
	}

	works, total, err := h.workService.List(input)
	if err != nil {
		fail(c, err, "work listing failed")
		return
	}

	response.OK(c, "", gin.H{
		"works": dto.ToWorkDTOs(works),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetWork returns one work and counts the view.
func (h *WorkHandler) GetWork(c *gin.Context) {
	workID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, _ := middleware.GetCurrentUser(c)

	work, err := h.workService.Get(workID, actor)
	if err != nil {
		h.respondWorkError(c, err, "work lookup failed")
		return
	}

	response.OK(c, "", dto.ToWorkDTO(*work))
}

// UpdateWork edits a work. Author or admin.
func (h *WorkHandler) UpdateWork(c *gin.Context) {
	workID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, _ := middleware.GetCurrentUser(c)

	type UpdateWorkRequest struct {
		Title       *string              `json:"title" binding:"omitempty,max=100"`
		Description *string              `json:"description" binding:"omitempty,max=1000"`
		Tags        []string             `json:"tags"`
		Category    *string              `json:"category" binding:"omitempty,max=50"`
		IsPublic    *bool                `json:"is_public"`
		Metadata    *models.WorkMetadata `json:"metadata"`
	}

	var req UpdateWorkRequest
	if !bindJSON(c, &req) {
		return
	}

	work, err := h.workService.Update(workID, actor, services.UpdateWorkInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Category:    req.Category,
		IsPublic:    req.IsPublic,
		Metadata:    req.Metadata,
	})
	if err != nil {
		h.respondWorkError(c, err, "work update failed")
		return
	}

	response.OK(c, "Work updated", dto.ToWorkDTO(*work))
}

// DeleteWork removes a work. Author or admin.
func (h *WorkHandler) DeleteWork(c *gin.Context) {
	workID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, _ := middleware.GetCurrentUser(c)

	if err := h.workService.Delete(workID, actor); err != nil {
		h.respondWorkError(c, err, "work deletion failed")
		return
	}

	response.OK(c, "Work deleted", nil)
}

// ReviewWork approves or rejects a pending work. Admin only.
func (h *WorkHandler) ReviewWork(c *gin.Context) {
	workID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, _ := middleware.GetCurrentUser(c)

	type ReviewRequest struct {
		Approve *bool  `json:"approve" binding:"required"`
		Reason  string `json:"reason" binding:"omitempty,max=200"`
	}

	var req ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	if !*req.Approve && req.Reason == "" {
		response.BadRequest(c, "A reason is required when rejecting")
		return
	}

	work, err := h.workService.Review(workID, actor, *req.Approve, req.Reason)
	if err != nil {
		h.respondWorkError(c, err, "work review failed")
		return
	}

	message := "Work approved"
	if !*req.Approve {
		message = "Work rejected"
	}
	response.OK(c, message, dto.ToWorkDTO(*work))
}

// SetFeatured toggles the gallery highlight flag. Admin only.
func (h *WorkHandler) SetFeatured(c *gin.Context) {
	workID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type FeaturedRequest struct {
		Featured *bool `json:"featured" binding:"required"`
	}

	var req FeaturedRequest
	if !bindJSON(c, &req) {
		return
	}

	work, err := h.workService.SetFeatured(workID, *req.Featured)
	if err != nil {
		h.respondWorkError(c, err, "featured toggle failed")
		return
	}

	response.OK(c, "Work updated", dto.ToWorkDTO(*work))
}

// ToggleLike flips the caller's like on a work.
func (h *WorkHandler) ToggleLike(c *gin.Context) {
	workID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, _ := middleware.GetCurrentUser(c)

	liked, likes, err := h.workService.ToggleLike(workID, actor)
	if err != nil {
		h.respondWorkError(c, err, "like toggle failed")
		return
	}

	response.OK(c, "", gin.H{
		"liked": liked,
		"likes": likes,
	})
}

// AddComment appends a comment under a work.
func (h *WorkHandler) AddComment(c *gin.Context) {
	workID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, _ := middleware.GetCurrentUser(c)

	type CommentRequest struct {
		Content string `json:"content" binding:"required,max=500"`
	}

	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.workService.AddComment(workID, actor, req.Content)
	if err != nil {
		h.respondWorkError(c, err, "comment creation failed")
		return
	}

	response.Created(c, "Comment added", comment)
}

// RemoveComment deletes a comment. Comment author or admin.
func (h *WorkHandler) RemoveComment(c *gin.Context) {
	workID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		return
	}
	actor, _ := middleware.GetCurrentUser(c)

	if err := h.workService.RemoveComment(workID, commentID, actor); err != nil {
		h.respondWorkError(c, err, "comment removal failed")
		return
	}

	response.OK(c, "Comment removed", nil)
}

func (h *WorkHandler) respondWorkError(c *gin.Context, err error, logMessage string) {
	switch {
	case errors.Is(err, services.ErrWorkNotFound),
		errors.Is(err, services.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrWorkNotVisible),
		errors.Is(err, services.ErrWorkForbidden),
		errors.Is(err, services.ErrCommentForbidden):
		response.Forbidden(c, err.Error())
	default:
		fail(c, err, logMessage)
	}
}
