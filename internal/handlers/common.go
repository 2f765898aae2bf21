package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/photoclub/club-management-api/internal/logging"
	"github.com/photoclub/club-management-api/internal/response"
)

// parseIDParam reads a numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body and renders field-level errors when the
// payload fails validation.
func bindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fieldErrs := make([]response.FieldError, len(verrs))
			for i, fe := range verrs {
				fieldErrs[i] = response.FieldError{
					Field:   strings.ToLower(fe.Field()),
					Message: validationMessage(fe),
				}
			}
			response.ValidationFailed(c, fieldErrs)
			return false
		}
		response.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

// fail logs the underlying error and sends a 500.
func fail(c *gin.Context, err error, message string) {
	logging.Logger.WithError(err).Error(message)
	response.InternalError(c, "")
}
