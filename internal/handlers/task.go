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

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask creates a draft task. Admin only.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)

	type RequirementsRequest struct {
		MinFiles       int    `json:"min_files" binding:"omitempty,min=1"`
		MaxFiles       int    `json:"max_files" binding:"omitempty,max=10"`
		Specifications string `json:"specifications" binding:"omitempty,max=500"`
	}

	type CreateTaskRequest struct {
		Title        string              `json:"title" binding:"required,max=100"`
		Description  string              `json:"description" binding:"required"`
		Type         string              `json:"type" binding:"required,oneof=photo video both"`
		Deadline     time.Time           `json:"deadline" binding:"required"`
		Priority     string              `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
		AssignedTo   []uint64            `json:"assigned_to"`
		Requirements RequirementsRequest `json:"requirements"`
		Tags         []string            `json:"tags"`
		Category     string              `json:"category" binding:"omitempty,max=50"`
		IsPublic     bool                `json:"is_public"`
	}

	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        models.TaskType(req.Type),
		Deadline:    req.Deadline,
		Priority:    models.TaskPriority(req.Priority),
		AssignedTo:  req.AssignedTo,
		Requirements: models.TaskRequirements{
			MinFiles:       req.Requirements.MinFiles,
			MaxFiles:       req.Requirements.MaxFiles,
			Specifications: req.Requirements.Specifications,
		},
		Tags:      req.Tags,
		Category:  req.Category,
		IsPublic:  req.IsPublic,
		CreatorID: actorID,
	})
	if err != nil {
		h.respondTaskError(c, err, "task creation failed")
		return
	}

	response.Created(c, "Task created", dto.ToTaskDTO(*task))
}

// ListTasks returns tasks visible to the caller, ordered by priority then deadline.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	input := services.ListTasksInput{
		Actor:        actor,
		AssignedToMe: c.Query("assigned_to_me") == "true",
		Page:         params.Page,
		PageSize:     params.Limit,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if !models.ValidTaskStatus(statusStr) {
			response.BadRequest(c, "Invalid status")
			return
		}
		status := models.TaskStatus(statusStr)
		input.Status = &status
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		if !models.ValidTaskPriority(priorityStr) {
			response.BadRequest(c, "Invalid priority")
			return
		}
		priority := models.TaskPriority(priorityStr)
		input.Priority = &priority
	}
	if typeStr := c.Query("type"); typeStr != "" {
		if !models.ValidTaskType(typeStr) {
			response.BadRequest(c, "Invalid type")
			return
		}
		taskType := models.TaskType(typeStr)
		input.Type = &taskType
	}

	tasks, total, err := h.taskService.List(input)
	if err != nil {
		fail(c, err, "task listing failed")
		return
	}

	response.OK(c, "", gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns one task with assignments, subject to member visibility.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, _ := middleware.GetCurrentUser(c)

	task, err := h.taskService.Get(taskID, actor)
	if err != nil {
		h.respondTaskError(c, err, "task lookup failed")
		return
	}

	response.OK(c, "", dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. Admin only.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title        *string                  `json:"title" binding:"omitempty,max=100"`
		Description  *string                  `json:"description"`
		Type         *string                  `json:"type" binding:"omitempty,oneof=photo video both"`
		Deadline     *time.Time               `json:"deadline"`
		Priority     *string                  `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
		Status       *string                  `json:"status" binding:"omitempty,oneof=draft published completed cancelled"`
		Requirements *models.TaskRequirements `json:"requirements"`
		Tags         []string                 `json:"tags"`
		Category     *string                  `json:"category" binding:"omitempty,max=50"`
		IsPublic     *bool                    `json:"is_public"`
	}

	var req UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	input := services.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Deadline:     req.Deadline,
		Requirements: req.Requirements,
		Tags:         req.Tags,
		Category:     req.Category,
		IsPublic:     req.IsPublic,
	}
	if req.Type != nil {
		taskType := models.TaskType(*req.Type)
		input.Type = &taskType
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}

	task, err := h.taskService.Update(taskID, input)
	if err != nil {
		h.respondTaskError(c, err, "task update failed")
		return
	}

	response.OK(c, "Task updated", dto.ToTaskDTO(*task))
}

// DeleteTask removes a task permanently. Admin only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.Delete(taskID); err != nil {
		h.respondTaskError(c, err, "task deletion failed")
		return
	}

	response.OK(c, "Task deleted", nil)
}

// AssignTask adds assignees. Admin only.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AssignRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required,min=1"`
	}

	var req AssignRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.Assign(taskID, req.UserIDs)
	if err != nil {
		h.respondTaskError(c, err, "task assignment failed")
		return
	}

	response.OK(c, "Users assigned", dto.ToTaskDTO(*task))
}

// UnassignTask removes one assignee. Admin only.
func (h *TaskHandler) UnassignTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	task, err := h.taskService.Unassign(taskID, userID)
	if err != nil {
		h.respondTaskError(c, err, "task unassignment failed")
		return
	}

	response.OK(c, "User unassigned", dto.ToTaskDTO(*task))
}

// UpdateAssignmentStatus sets one assignee's progress. Admin only.
func (h *TaskHandler) UpdateAssignmentStatus(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	type UpdateAssignmentRequest struct {
		Status   string  `json:"status" binding:"required,oneof=pending in_progress completed submitted"`
		WorkID   *uint64 `json:"work_id"`
		Feedback string  `json:"feedback" binding:"omitempty,max=500"`
	}

	var req UpdateAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.UpdateAssignmentStatus(services.UpdateAssignmentStatusInput{
		TaskID:   taskID,
		UserID:   userID,
		Status:   models.AssignmentStatus(req.Status),
		WorkID:   req.WorkID,
		Feedback: req.Feedback,
	})
	if err != nil {
		h.respondTaskError(c, err, "assignment update failed")
		return
	}

	response.OK(c, "Assignment updated", dto.ToTaskDTO(*task))
}

// SubmitWork links one of the caller's works to their assignment. Member only.
func (h *TaskHandler) SubmitWork(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actor, _ := middleware.GetCurrentUser(c)

	type SubmitRequest struct {
		WorkID uint64 `json:"work_id" binding:"required"`
	}

	var req SubmitRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.SubmitWork(taskID, req.WorkID, actor)
	if err != nil {
		h.respondTaskError(c, err, "work submission failed")
		return
	}

	response.OK(c, "Work submitted", dto.ToTaskDTO(*task))
}

// PublishTask moves the task to published. Admin only.
func (h *TaskHandler) PublishTask(c *gin.Context) {
	h.setStatus(c, h.taskService.Publish, "Task published")
}

// CompleteTask moves the task to completed. Admin only.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	h.setStatus(c, h.taskService.Complete, "Task completed")
}

// CancelTask moves the task to cancelled. Admin only.
func (h *TaskHandler) CancelTask(c *gin.Context) {
	h.setStatus(c, h.taskService.Cancel, "Task cancelled")
}

func (h *TaskHandler) setStatus(c *gin.Context, fn func(uint64) (*models.Task, error), message string) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := fn(taskID)
	if err != nil {
		h.respondTaskError(c, err, "task status change failed")
		return
	}

	response.OK(c, message, dto.ToTaskDTO(*task))
}

// GetTaskStats returns the dashboard aggregate. Admin only.
func (h *TaskHandler) GetTaskStats(c *gin.Context) {
	stats, err := h.taskService.Stats()
	if err != nil {
		fail(c, err, "task stats failed")
		return
	}

	response.OK(c, "", stats)
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error, logMessage string) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrAssignmentNotFound),
		errors.Is(err, services.ErrWorkNotOwned):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskNotVisible),
		errors.Is(err, services.ErrNotAssigned):
		response.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrDeadlinePast),
		errors.Is(err, services.ErrInvalidAssignee),
		errors.Is(err, services.ErrNoUserIDsProvided),
		errors.Is(err, services.ErrInvalidStatus):
		response.BadRequest(c, err.Error())
	default:
		fail(c, err, logMessage)
	}
}
