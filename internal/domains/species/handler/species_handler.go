package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"species-catalog/internal/domains/species/model"
	"species-catalog/internal/domains/species/service"
	"species-catalog/internal/shared/middleware"
	"species-catalog/internal/shared/response"
)

type SpeciesHandler struct {
	service service.ServiceInterface
}

func NewSpeciesHandler(svc service.ServiceInterface) *SpeciesHandler {
	return &SpeciesHandler{service: svc}
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /v1/species?search=&kingdom=&limit=20&offset=0
// ════════════════════════════════════════════════════════════════

func (h *SpeciesHandler) List(c *gin.Context) {
	var filter model.SpeciesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	filter.SetDefaults()

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err, nil)
		return
	}
	if items == nil {
		items = []model.Species{}
	}

	response.SuccessWithMeta(c, http.StatusOK, items, model.NewPaginationMeta(filter, total))
}

// ════════════════════════════════════════════════════════════════
// READ: GET /v1/species/:id
// ════════════════════════════════════════════════════════════════

func (h *SpeciesHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	rec, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, nil)
		return
	}

	response.Success(c, http.StatusOK, rec)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/species
// ════════════════════════════════════════════════════════════════

func (h *SpeciesHandler) Create(c *gin.Context) {
	var draft model.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	rec, fieldErrors, err := h.service.Create(c.Request.Context(), middleware.CurrentUser(c), draft)
	if err != nil {
		writeError(c, err, fieldErrors)
		return
	}

	response.Success(c, http.StatusCreated, rec)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /v1/species/:id
// ════════════════════════════════════════════════════════════════

func (h *SpeciesHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var draft model.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	rec, fieldErrors, err := h.service.Update(c.Request.Context(), id, middleware.CurrentUser(c), draft)
	if err != nil {
		writeError(c, err, fieldErrors)
		return
	}

	response.Success(c, http.StatusOK, rec)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /v1/species/:id
// ════════════════════════════════════════════════════════════════

func (h *SpeciesHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.CurrentUser(c)); err != nil {
		writeError(c, err, nil)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid species id")
		return 0, false
	}
	return id, true
}
