package handlers

import (
	"github.com/gin-gonic/gin"

	"connecta_backend/internal/middleware"
	"connecta_backend/internal/models"
	"connecta_backend/internal/services"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type ProjectHandler struct {
	BaseHandler
	projects services.ProjectService
}

func NewProjectHandler(base BaseHandler, projects services.ProjectService) *ProjectHandler {
	return &ProjectHandler{BaseHandler: base, projects: projects}
}

func (h *ProjectHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.List)
	r.GET("/:id", h.Get)
	r.PUT("/:id", h.Update)
	r.POST("/:id/complete", middleware.RequireUserTypes(models.UserTypeClient), h.Complete)
	r.POST("/:id/cancel", h.Cancel)
}

func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	page, pageSize := h.Pagination(c)
	result, err := h.projects.List(userID, page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	project, err := h.projects.GetByID(userID, c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	project, err := h.projects.Update(userID, c.Param("id"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, project)
}

func (h *ProjectHandler) Complete(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	project, err := h.projects.Complete(userID, c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, project)
}

func (h *ProjectHandler) Cancel(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.projects.Cancel(userID, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Project cancelled")
}
