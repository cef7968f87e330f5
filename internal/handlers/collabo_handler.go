package handlers

import (
	"github.com/gin-gonic/gin"

	"connecta_backend/internal/middleware"
	"connecta_backend/internal/models"
	"connecta_backend/internal/services"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type CollaboHandler struct {
	BaseHandler
	collabo services.CollaboService
}

func NewCollaboHandler(base BaseHandler, collabo services.CollaboService) *CollaboHandler {
	return &CollaboHandler{BaseHandler: base, collabo: collabo}
}

func (h *CollaboHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.ListOpen)
	r.GET("/mine", h.ListMine)
	r.GET("/:id", h.Get)
	r.POST("/:id/roles/:roleId/accept", middleware.RequireUserTypes(models.UserTypeFreelancer), h.AcceptInvite)
	r.POST("/:id/roles/:roleId/decline", middleware.RequireUserTypes(models.UserTypeFreelancer), h.DeclineInvite)

	owner := r.Group("", middleware.RequireUserTypes(models.UserTypeClient))
	{
		owner.POST("", h.Create)
		owner.PATCH("/:id/status", h.UpdateStatus)
		owner.DELETE("/:id", h.Delete)
		owner.POST("/:id/roles/:roleId/invite", h.Invite)
	}
}

func (h *CollaboHandler) Create(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.CreateCollaboRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	project, err := h.collabo.Create(userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, project)
}

func (h *CollaboHandler) ListOpen(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	page, pageSize := h.Pagination(c)
	result, err := h.collabo.ListOpen(userID, page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *CollaboHandler) ListMine(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	page, pageSize := h.Pagination(c)
	result, err := h.collabo.ListMine(userID, page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *CollaboHandler) Get(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	project, err := h.collabo.GetByID(userID, c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, project)
}

func (h *CollaboHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req struct {
		Status models.CollaboStatus `json:"status" validate:"required,oneof=open in_progress completed cancelled"`
	}
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	project, err := h.collabo.UpdateStatus(userID, c.Param("id"), req.Status)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, project)
}

func (h *CollaboHandler) Delete(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.collabo.Delete(userID, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Team project deleted")
}

func (h *CollaboHandler) Invite(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.InviteToRoleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.collabo.InviteToRole(userID, c.Param("id"), c.Param("roleId"), &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Invitation sent")
}

func (h *CollaboHandler) AcceptInvite(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.collabo.RespondToInvite(userID, c.Param("id"), c.Param("roleId"), true); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Invitation accepted")
}

func (h *CollaboHandler) DeclineInvite(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.collabo.RespondToInvite(userID, c.Param("id"), c.Param("roleId"), false); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Invitation declined")
}
