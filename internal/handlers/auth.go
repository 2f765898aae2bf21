package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/photoclub/club-management-api/internal/auth"
	"github.com/photoclub/club-management-api/internal/dto"
	"github.com/photoclub/club-management-api/internal/middleware"
	"github.com/photoclub/club-management-api/internal/response"
	"github.com/photoclub/club-management-api/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	tokens      *auth.Manager
}

func NewAuthHandler(authService *services.AuthService, tokens *auth.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
	}
}

// Register creates a new account and logs it straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username" binding:"required,min=3,max=20"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6,max=72"`
		RealName string `json:"real_name" binding:"required,max=50"`
	}

	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		RealName: req.RealName,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
			response.Conflict(c, err.Error())
		case errors.Is(err, services.ErrPasswordTooShort):
			response.BadRequest(c, err.Error())
		default:
			fail(c, err, "registration failed")
		}
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		fail(c, err, "token generation failed")
		return
	}

	response.Created(c, "Registration successful", gin.H{
		"token": token,
		"user":  dto.ToAccountDTO(*user),
	})
}

// Login verifies credentials and issues a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			response.Unauthorized(c, err.Error())
		case errors.Is(err, services.ErrAccountDisabled):
			response.Forbidden(c, err.Error())
		default:
			fail(c, err, "login failed")
		}
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		fail(c, err, "token generation failed")
		return
	}

	response.OK(c, "Login successful", gin.H{
		"token": token,
		"user":  dto.ToAccountDTO(*user),
	})
}

// Logout acknowledges the request. Tokens are stateless, so the client simply
// discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.OK(c, "Logged out", nil)
}

// Me returns the caller's own account.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	response.OK(c, "", dto.ToAccountDTO(*user))
}

// UpdateProfile applies a partial update to the caller's profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type UpdateProfileRequest struct {
		RealName *string `json:"real_name" binding:"omitempty,max=50"`
		Email    *string `json:"email" binding:"omitempty,email"`
		Avatar   *string `json:"avatar" binding:"omitempty,max=255"`
		Bio      *string `json:"bio" binding:"omitempty,max=500"`
	}

	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.authService.UpdateProfile(user.ID, services.UpdateProfileInput{
		RealName: req.RealName,
		Email:    req.Email,
		Avatar:   req.Avatar,
		Bio:      req.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			response.Conflict(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			response.NotFound(c, err.Error())
		default:
			fail(c, err, "profile update failed")
		}
		return
	}

	response.OK(c, "Profile updated", dto.ToAccountDTO(*updated))
}

// ChangePassword sets a new password after verifying the current one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Unauthorized(c, "")
		return
	}

	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=6,max=72"`
	}

	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword), errors.Is(err, services.ErrPasswordTooShort):
			response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			response.NotFound(c, err.Error())
		default:
			fail(c, err, "password change failed")
		}
		return
	}

	response.OK(c, "Password changed", nil)
}
