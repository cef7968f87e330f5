package handlers

import (
	"github.com/gin-gonic/gin"

	"connecta_backend/internal/services"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type PaymentHandler struct {
	BaseHandler
	payments services.PaymentService
}

func NewPaymentHandler(base BaseHandler, payments services.PaymentService) *PaymentHandler {
	return &PaymentHandler{BaseHandler: base, payments: payments}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.Create)
	r.GET("", h.List)
	r.GET("/wallet", h.Wallet)
	r.GET("/transactions", h.Transactions)
	r.GET("/:id", h.Get)
	r.POST("/:id/release", h.ReleaseEscrow)
}

// RegisterWebhook mounts the gateway callback outside the authenticated
// group. Flutterwave authenticates with the verif-hash header instead.
func (h *PaymentHandler) RegisterWebhook(r *gin.RouterGroup) {
	r.POST("/payments/webhook", h.Webhook)
}

func (h *PaymentHandler) Create(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	payment, err := h.payments.CreatePayment(userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

func (h *PaymentHandler) List(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	page, pageSize := h.Pagination(c)
	result, err := h.payments.List(userID, page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	payment, err := h.payments.GetByID(userID, c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, payment)
}

func (h *PaymentHandler) ReleaseEscrow(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	payment, err := h.payments.ReleaseEscrow(userID, c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, payment)
}

func (h *PaymentHandler) Wallet(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	wallet, err := h.payments.Wallet(userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, wallet)
}

func (h *PaymentHandler) Transactions(c *gin.Context) {
	userID, ok := h.UserID(c)
	if !ok {
		return
	}

	page, pageSize := h.Pagination(c)
	result, err := h.payments.Transactions(userID, page, pageSize)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

func (h *PaymentHandler) Webhook(c *gin.Context) {
	var payload dto.GatewayWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid webhook payload"))
		return
	}

	if err := h.payments.HandleWebhook(c.GetHeader("verif-hash"), &payload); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OKMessage(c, nil, "Webhook processed")
}
