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

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser creates an account with an explicit role. Admin only.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Username string `json:"username" binding:"required,min=3,max=20"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6,max=72"`
		RealName string `json:"real_name" binding:"required,max=50"`
		Role     string `json:"role" binding:"required,oneof=user member admin"`
	}

	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(services.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		RealName: req.RealName,
		Role:     models.UserRole(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
			response.Conflict(c, err.Error())
		default:
			fail(c, err, "user creation failed")
		}
		return
	}

	response.Created(c, "User created", dto.ToAccountDTO(*user))
}

// ListUsers returns accounts with optional role/status/search filters. Admin only.
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListUsersInput{
		Search:   c.Query("search"),
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if roleStr := c.Query("role"); roleStr != "" {
		if !models.ValidRole(roleStr) {
			response.BadRequest(c, "Invalid role")
			return
		}
		role := models.UserRole(roleStr)
		input.Role = &role
	}
	if activeStr := c.Query("is_active"); activeStr != "" {
		active := activeStr == "true"
		input.IsActive = &active
	}

	users, total, err := h.userService.List(input)
	if err != nil {
		fail(c, err, "user listing failed")
		return
	}

	response.OK(c, "", gin.H{
		"users": dto.ToAccountDTOs(users),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetUser returns one account. Admins see the full account; everyone else
// gets the public profile.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		fail(c, err, "user lookup failed")
		return
	}

	actor, _ := middleware.GetCurrentUser(c)
	if actor != nil && (actor.Role == models.RoleAdmin || actor.ID == user.ID) {
		response.OK(c, "", dto.ToAccountDTO(*user))
		return
	}

	response.OK(c, "", dto.ToUserDTO(*user))
}

// UpdateRole changes an account's role. Admin only.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, _ := middleware.GetUserID(c)

	type UpdateRoleRequest struct {
		Role string `json:"role" binding:"required,oneof=user member admin"`
	}

	var req UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateRole(actorID, userID, models.UserRole(req.Role))
	if err != nil {
		h.respondUserError(c, err, "role update failed")
		return
	}

	response.OK(c, "Role updated", dto.ToAccountDTO(*user))
}

// UpdateStatus activates or deactivates an account. Admin only.
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, _ := middleware.GetUserID(c)

	type UpdateStatusRequest struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}

	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateStatus(actorID, userID, *req.IsActive)
	if err != nil {
		h.respondUserError(c, err, "status update failed")
		return
	}

	response.OK(c, "Status updated", dto.ToAccountDTO(*user))
}

// DeleteUser removes an account. Admin only.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, _ := middleware.GetUserID(c)

	if err := h.userService.Delete(actorID, userID); err != nil {
		h.respondUserError(c, err, "user deletion failed")
		return
	}

	response.OK(c, "User deleted", nil)
}

// GetUserStats returns one user's work output aggregate.
func (h *UserHandler) GetUserStats(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.userService.Stats(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		fail(c, err, "user stats failed")
		return
	}

	response.OK(c, "", stats)
}

func (h *UserHandler) respondUserError(c *gin.Context, err error, logMessage string) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrSelfAction), errors.Is(err, services.ErrLastAdmin):
		response.BadRequest(c, err.Error())
	default:
		fail(c, err, logMessage)
	}
}
