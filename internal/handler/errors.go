package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holidayhub/directory/internal/service"
	"github.com/holidayhub/directory/shared/middleware"
	"github.com/sirupsen/logrus"
)

const msgInternalError = "Internal server error"

var notFoundMessages = map[string]string{
	"account": "Account not found",
	"holiday": "Holiday not found",
}

func notFoundMessage(entity string) string {
	if msg, ok := notFoundMessages[entity]; ok {
		return msg
	}
	return "Resource not found"
}

// respondWithServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unclassified is a 500 with the detail kept in the log.
func respondWithServiceError(c *gin.Context, log logrus.FieldLogger, err error) {
	var (
		verr *service.ValidationError
		nerr *service.NotFoundError
		cerr *service.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		middleware.RespondWithValidationError(c, verr.Fields)
	case errors.As(err, &nerr):
		middleware.RespondWithError(c, http.StatusNotFound, notFoundMessage(nerr.Entity))
	case errors.As(err, &cerr):
		middleware.RespondWithConflict(c, cerr.Field, cerr.Message)
	case errors.Is(err, service.ErrInvalidInput):
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request data")
	case errors.Is(err, service.ErrNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, notFoundMessage(""))
	case errors.Is(err, service.ErrConflict):
		middleware.RespondWithConflict(c, "", "Conflict")
	default:
		_ = c.Error(err)
		middleware.RequestLogger(c, log).WithError(err).Error("request failed")
		middleware.RespondWithError(c, http.StatusInternalServerError, msgInternalError)
	}
}
