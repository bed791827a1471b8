package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"species-catalog/internal/domains/species/model"
	"species-catalog/internal/domains/species/service"
	"species-catalog/internal/shared/middleware"
	"species-catalog/internal/shared/response"
)

// ConfirmRequest resolves a pending discard or delete prompt
type ConfirmRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// SessionHandler exposes edit sessions. Every action answers with the
// session view so clients can render state, field errors and
// notifications from one payload.
type SessionHandler struct {
	service service.SessionServiceInterface
}

func NewSessionHandler(svc service.SessionServiceInterface) *SessionHandler {
	return &SessionHandler{service: svc}
}

// Open - POST /v1/species/:id/edit-sessions
func (h *SessionHandler) Open(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.service.Open(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		writeError(c, err, nil)
		return
	}

	response.Success(c, http.StatusCreated, view)
}

// Get - GET /v1/edit-sessions/:sid
func (h *SessionHandler) Get(c *gin.Context) {
	sid, ok := parseSessionID(c)
	if !ok {
		return
	}

	view, err := h.service.Get(sid, middleware.CurrentUser(c))
	h.reply(c, view, err)
}

// BeginEdit - POST /v1/edit-sessions/:sid/edit
func (h *SessionHandler) BeginEdit(c *gin.Context) {
	sid, ok := parseSessionID(c)
	if !ok {
		return
	}

	view, err := h.service.BeginEdit(sid, middleware.CurrentUser(c))
	h.reply(c, view, err)
}

// SetDraft - PUT /v1/edit-sessions/:sid/draft
func (h *SessionHandler) SetDraft(c *gin.Context) {
	sid, ok := parseSessionID(c)
	if !ok {
		return
	}

	var draft model.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	view, err := h.service.SetDraft(sid, middleware.CurrentUser(c), draft)
	h.reply(c, view, err)
}

// Submit - POST /v1/edit-sessions/:sid/submit
func (h *SessionHandler) Submit(c *gin.Context) {
	sid, ok := parseSessionID(c)
	if !ok {
		return
	}

	view, err := h.service.Submit(c.Request.Context(), sid, middleware.CurrentUser(c))
	h.reply(c, view, err)
}

// RequestDiscard - POST /v1/edit-sessions/:sid/discard
func (h *SessionHandler) RequestDiscard(c *gin.Context) {
	sid, ok := parseSessionID(c)
	if !ok {
		return
	}

	view, err := h.service.RequestDiscard(sid, middleware.CurrentUser(c))
	h.reply(c, view, err)
}

// RequestDelete - POST /v1/edit-sessions/:sid/delete
func (h *SessionHandler) RequestDelete(c *gin.Context) {
	sid, ok := parseSessionID(c)
	if !ok {
		return
	}

	view, err := h.service.RequestDelete(sid, middleware.CurrentUser(c))
	h.reply(c, view, err)
}

// Confirm - POST /v1/edit-sessions/:sid/confirm {"accept": true}
func (h *SessionHandler) Confirm(c *gin.Context) {
	sid, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "accept is required")
		return
	}

	view, err := h.service.Confirm(c.Request.Context(), sid, middleware.CurrentUser(c), *req.Accept)
	h.reply(c, view, err)
}

// Close - DELETE /v1/edit-sessions/:sid
func (h *SessionHandler) Close(c *gin.Context) {
	sid, ok := parseSessionID(c)
	if !ok {
		return
	}

	if err := h.service.Close(sid, middleware.CurrentUser(c)); err != nil {
		writeError(c, err, nil)
		return
	}

	c.Status(http.StatusNoContent)
}

// reply writes the view, or the error with the view attached as details so
// notifications raised by a failed store call still reach the client
func (h *SessionHandler) reply(c *gin.Context, view *service.SessionView, err error) {
	if err == nil {
		response.Success(c, http.StatusOK, view)
		return
	}
	if view == nil {
		writeError(c, err, nil)
		return
	}

	status, apiErr := apiError(c, err, view.FieldErrors)
	c.JSON(status, response.Response{
		Success: false,
		Data:    view,
		Error:   apiErr,
	})
}

func parseSessionID(c *gin.Context) (uuid.UUID, bool) {
	sid, err := uuid.Parse(c.Param("sid"))
	if err != nil {
		response.BadRequest(c, "invalid session id")
		return uuid.Nil, false
	}
	return sid, true
}
