package handlers

import (
	"github.com/gin-gonic/gin"

	"connecta_backend/internal/middleware"
	"connecta_backend/internal/models"
	"connecta_backend/internal/services"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type ProposalHandler struct {
	BaseHandler
	proposals services.ProposalService
}

func NewProposalHandler(base BaseHandler, proposals services.ProposalService) *ProposalHandler {
	return &ProposalHandler{BaseHandler: base, proposals: proposals}
}

func (h *ProposalHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", middleware.RequireUserTypes(models.UserTypeFreelancer), h.Create)
	r.GET("/mine", middleware.RequireUserTypes(models.UserTypeFreelancer), h.Mine)
	r.GET("/:id", h.Get)
	r.POST("/:id/withdraw", middleware.RequireUserTypes(models.UserTypeFreelancer), h.Withdraw)
	r.POST("/:id/accept", middleware.RequireUserTypes(models.UserTypeClient), h.Accept)
	r.POST("/:id/decline", middleware.RequireUserTypes(models.UserTypeClient), h.Decline)
}

func (h *ProposalHandler) Create(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.CreateProposalRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	proposal, err := h.proposals.Create(userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, proposal)
}

func (h *ProposalHandler) Mine(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	page, pageSize := h.Pagination(c)
	result, err := h.proposals.ListByFreelancer(userID, page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *ProposalHandler) Get(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	proposal, err := h.proposals.GetByID(userID, c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, proposal)
}

func (h *ProposalHandler) Withdraw(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.proposals.Withdraw(userID, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Proposal withdrawn")
}

// Accept creates the project and contract, closes the job and declines the
// remaining proposals in one go.
func (h *ProposalHandler) Accept(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	result, err := h.proposals.Accept(userID, c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *ProposalHandler) Decline(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	if err := h.proposals.Decline(userID, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Proposal declined")
}
