package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type BadRequestErrorResponse struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

type ConflictErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// RespondWithValidationError writes a 400 carrying every failed field as a
// field→message map.
func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, BadRequestErrorResponse{
		Message: "Invalid request data",
		Details: fields,
	})
}

func RespondWithConflict(c *gin.Context, field, message string) {
	c.JSON(http.StatusConflict, ConflictErrorResponse{
		Message: message,
		Field:   field,
	})
}

func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"message": message,
	})
}
