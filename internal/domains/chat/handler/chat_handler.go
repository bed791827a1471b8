package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"species-catalog/internal/domains/chat/model"
	"species-catalog/internal/domains/chat/service"
	"species-catalog/internal/shared/response"
)

type ChatHandler struct {
	service service.ServiceInterface
}

func NewChatHandler(svc service.ServiceInterface) *ChatHandler {
	return &ChatHandler{service: svc}
}

// ════════════════════════════════════════════════════════════════
// POST /v1/chat {"message": "..."} -> {"content": "..."}
// ════════════════════════════════════════════════════════════════

func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid chat message", err)
		return
	}

	text, err := h.service.Reply(c.Request.Context(), req.Message)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{Content: text})
}
