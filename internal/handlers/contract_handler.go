package handlers

import (
	"github.com/gin-gonic/gin"

	"connecta_backend/internal/services"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type ContractHandler struct {
	BaseHandler
	contracts services.ContractService
}

func NewContractHandler(base BaseHandler, contracts services.ContractService) *ContractHandler {
	return &ContractHandler{BaseHandler: base, contracts: contracts}
}

func (h *ContractHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.List)
	r.GET("/:id", h.Get)
	r.PUT("/:id", h.UpdateTerms)
	r.POST("/:id/sign", h.Sign)
	r.POST("/:id/terminate", h.Terminate)
	r.POST("/:id/dispute", h.Dispute)
}

func (h *ContractHandler) List(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	page, pageSize := h.Pagination(c)
	result, err := h.contracts.List(userID, page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *ContractHandler) Get(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	contract, err := h.contracts.GetByID(userID, c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, contract)
}

func (h *ContractHandler) UpdateTerms(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.UpdateContractRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	contract, err := h.contracts.UpdateTerms(userID, c.Param("id"), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, contract)
}

func (h *ContractHandler) Sign(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.SignContractRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	contract, err := h.contracts.Sign(userID, c.Param("id"), c.ClientIP(), &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, contract)
}

func (h *ContractHandler) Terminate(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	contract, err := h.contracts.Terminate(userID, c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, contract)
}

func (h *ContractHandler) Dispute(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	contract, err := h.contracts.Dispute(userID, c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, contract)
}
