package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"species-catalog/internal/domains/species/model"
	"species-catalog/internal/domains/species/service"
	"species-catalog/internal/domains/species/workflow"
	"species-catalog/internal/shared/middleware"
	"species-catalog/internal/shared/response"
)

// errorStatus extends model.ToHTTPStatus with session and workflow errors
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND"
	case errors.Is(err, workflow.ErrSubmissionInProgress):
		return http.StatusConflict, "SUBMISSION_IN_PROGRESS"
	case errors.Is(err, workflow.ErrInvalidTransition), errors.Is(err, workflow.ErrNoPendingConfirmation):
		return http.StatusConflict, "INVALID_TRANSITION"
	}
	return model.ToHTTPStatus(err), model.ToErrorCode(err)
}

// apiError maps err onto the envelope error. Field errors, when present,
// go into error.details.
func apiError(c *gin.Context, err error, fieldErrors model.FieldErrors) (int, *response.Error) {
	status, code := errorStatus(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", c.GetString(middleware.ContextRequestID)).
			Str("path", c.FullPath()).
			Msg("species request failed")
		message = "Internal server error"
	}

	apiErr := &response.Error{Code: code, Message: message}
	if len(fieldErrors) > 0 {
		apiErr.Details = fieldErrors
	}
	return status, apiErr
}

func writeError(c *gin.Context, err error, fieldErrors model.FieldErrors) {
	status, apiErr := apiError(c, err, fieldErrors)
	c.JSON(status, response.Response{Success: false, Error: apiErr})
}
