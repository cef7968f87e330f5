package handlers

import (
	"github.com/gin-gonic/gin"

	"connecta_backend/internal/services"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

// ExternalGigHandler is the machine-to-machine ingestion surface for
// third-party job boards. Routes sit behind the API key middleware.
type ExternalGigHandler struct {
	BaseHandler
	gigs services.ExternalGigService
}

func NewExternalGigHandler(base BaseHandler, gigs services.ExternalGigService) *ExternalGigHandler {
	return &ExternalGigHandler{BaseHandler: base, gigs: gigs}
}

func (h *ExternalGigHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.Upsert)
	r.GET("", h.List)
	r.DELETE("/:source/:externalId", h.Delete)
}

func (h *ExternalGigHandler) Upsert(c *gin.Context) {
	var req dto.UpsertExternalGigRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	result, err := h.gigs.Upsert(&req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	if result.Created {
		h.Created(c, result)
		return
	}
	h.OK(c, result)
}

func (h *ExternalGigHandler) List(c *gin.Context) {
	page, pageSize := h.Pagination(c)
	result, err := h.gigs.List(c.Query("source"), page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *ExternalGigHandler) Delete(c *gin.Context) {
	if err := h.gigs.Delete(c.Param("source"), c.Param("externalId")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "External gig removed")
}
