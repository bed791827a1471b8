package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"species-catalog/internal/domains/user/model"
	"species-catalog/internal/domains/user/service"
	"species-catalog/internal/shared/middleware"
	"species-catalog/internal/shared/response"
)

// UserHandler serves registration and login
type UserHandler struct {
	service service.ServiceInterface
}

func NewUserHandler(svc service.ServiceInterface) *UserHandler {
	return &UserHandler{service: svc}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register - POST /v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !h.bindAndValidate(c, &req, func() error { return req.Normalize().Validate() }) {
		return
	}

	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, u)
}

// Login - POST /v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !h.bindAndValidate(c, &req, func() error {
		req.Email = model.NormalizeEmail(req.Email)
		return req.Validate()
	}) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========================================
// HELPERS
// ========================================

func (h *UserHandler) handleError(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString(middleware.ContextRequestID)).Msg("auth request failed")
		message = "Internal server error"
	}
	response.ErrorResponse(c, status, model.ToErrorCode(err), message)
}

// bindAndValidate decodes the body and runs validate. Ozzo field errors
// are returned as details.
func (h *UserHandler) bindAndValidate(c *gin.Context, req interface{}, validate func() error) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return false
	}

	if err := validate(); err != nil {
		if errs, ok := err.(validation.Errors); ok {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", errs)
			return false
		}
		response.BadRequest(c, err.Error())
		return false
	}
	return true
}
