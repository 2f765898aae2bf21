package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the body shape shared by every endpoint.
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// OK sends a 200 with data.
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created sends a 201 with data.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// BadRequest sends a 400 with a descriptive message.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: message})
}

// ValidationFailed sends a 400 with a field-level error list.
func ValidationFailed(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Input validation failed",
		Errors:  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: message})
}

// Forbidden sends a 403.
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	c.JSON(http.StatusForbidden, Envelope{Success: false, Message: message})
}

// NotFound sends a 404.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	c.JSON(http.StatusNotFound, Envelope{Success: false, Message: message})
}

// Conflict sends a 409.
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	c.JSON(http.StatusConflict, Envelope{Success: false, Message: message})
}

// InternalError sends a 500. The concrete failure goes to the log, not the client.
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	c.JSON(http.StatusInternalServerError, Envelope{Success: false, Message: message})
}
