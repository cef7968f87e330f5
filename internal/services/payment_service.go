package services

import (
	"fmt"
	"math"

	"gorm.io/gorm"

	"connecta_backend/internal/gateway"
	"connecta_backend/internal/logger"
	"connecta_backend/internal/models"
	"connecta_backend/internal/pkg/email"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

// PaymentGateway is the slice of the Flutterwave client the service needs.
type PaymentGateway interface {
	CreateCharge(req *gateway.ChargeRequest) (*gateway.ChargeResponse, error)
	VerifyTransaction(txRef string) (*gateway.VerifyResponse, error)
	ValidateWebhookSignature(signature string) bool
}

type PaymentService interface {
	CreatePayment(payerID string, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	GetByID(userID, paymentID string) (*dto.PaymentResponse, error)
	List(userID string, page, pageSize int) (*dto.PagedResponse[dto.PaymentResponse], error)
	CompletePayment(paymentID string, gatewayResponse []byte) error
	ReleaseEscrow(payerID, paymentID string) (*dto.PaymentResponse, error)
	HandleWebhook(signature string, payload *dto.GatewayWebhookPayload) error
	Wallet(userID string) (*dto.WalletResponse, error)
	Transactions(userID string, page, pageSize int) (*dto.PagedResponse[dto.TransactionResponse], error)
}

type PaymentServiceImpl struct {
	paymentRepo   repositories.PaymentRepository
	userRepo      repositories.UserRepository
	jobRepo       repositories.JobRepository
	settingsRepo  repositories.SettingsRepository
	gateway       PaymentGateway
	notifications NotificationService
	mailer        email.Provider
	redirectURL   string
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	settingsRepo repositories.SettingsRepository,
	gw PaymentGateway,
	notifications NotificationService,
	mailer email.Provider,
	redirectURL string,
) PaymentService {
	return &PaymentServiceImpl{
		paymentRepo:   paymentRepo,
		userRepo:      userRepo,
		jobRepo:       jobRepo,
		settingsRepo:  settingsRepo,
		gateway:       gw,
		notifications: notifications,
		mailer:        mailer,
		redirectURL:   redirectURL,
	}
}

// ---------------- Charges ----------------

// CreatePayment records a pending payment and opens a hosted checkout.
// The platform fee comes off the top, so the payee receives Amount - Fee.
func (s *PaymentServiceImpl) CreatePayment(payerID string, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if req.PayeeID == payerID {
		return nil, apperrors.ErrCannotActOnSelf
	}
	payer, err := s.userRepo.FindByID(payerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if _, err := s.userRepo.FindByID(req.PayeeID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.PaymentType == models.PaymentTypeJobVerification {
		if req.JobID == nil {
			return nil, apperrors.NewBadRequestError("Job verification payments need a jobId")
		}
		job, err := s.jobRepo.FindByID(*req.JobID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrJobNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
		if job.ClientID != payerID {
			return nil, apperrors.NewForbiddenError("Job belongs to another client")
		}
	}

	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	fee := roundMoney(req.Amount * settings.EscrowFeePercent / 100)

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	payment := &models.Payment{
		PayerID:     payerID,
		PayeeID:     req.PayeeID,
		ProjectID:   req.ProjectID,
		JobID:       req.JobID,
		Amount:      req.Amount,
		Fee:         fee,
		NetAmount:   roundMoney(req.Amount - fee),
		Currency:    currency,
		PaymentType: req.PaymentType,
		Status:      models.PaymentStatusPending,
		UseEscrow:   req.UseEscrow,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	txRef := "cn-" + payment.ID
	charge, err := s.gateway.CreateCharge(&gateway.ChargeRequest{
		TxRef:       txRef,
		Amount:      fmt.Sprintf("%.2f", req.Amount),
		Currency:    currency,
		RedirectURL: s.redirectURL,
		Customer:    gateway.ChargeCustomer{Email: payer.Email, Name: payer.FullName},
		Meta:        map[string]string{"payment_id": payment.ID, "payment_type": req.PaymentType},
	})
	if err != nil {
		payment.Status = models.PaymentStatusFailed
		if uerr := s.paymentRepo.Update(payment); uerr != nil {
			logger.SideEffectLog("mark payment failed", uerr, "payment_id", payment.ID)
		}
		return nil, apperrors.ErrConflict(err, "payments", "Payment gateway rejected the charge")
	}

	payment.GatewayRef = txRef
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := toPaymentResponse(payment)
	resp.CheckoutURL = charge.Data.Link
	return resp, nil
}

func (s *PaymentServiceImpl) GetByID(userID, paymentID string) (*dto.PaymentResponse, error) {
	payment, err := s.partyPayment(userID, paymentID)
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

func (s *PaymentServiceImpl) List(userID string, page, pageSize int) (*dto.PagedResponse[dto.PaymentResponse], error) {
	page, pageSize = defaultPage(page, pageSize)
	payments, total, err := s.paymentRepo.FindByUser(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, *toPaymentResponse(&payments[i]))
	}
	return dto.NewPagedResponse(items, total, page, pageSize), nil
}

// ---------------- Settlement ----------------

// CompletePayment settles a confirmed charge: payment row, both wallets and
// the ledger pair move in one transaction. Calling it again for an already
// completed payment is a no-op.
func (s *PaymentServiceImpl) CompletePayment(paymentID string, gatewayResponse []byte) error {
	var settled *models.Payment

	err := s.paymentRepo.CompletePayment(func(tx *gorm.DB) error {
		payment, err := s.paymentRepo.LockPayment(tx, paymentID)
		if err != nil {
			return err
		}
		if payment.Status == models.PaymentStatusCompleted {
			return nil
		}
		if payment.Status == models.PaymentStatusFailed {
			return apperrors.ErrInvalidStatus("payments", "Failed payments cannot be completed")
		}

		// Verification charges unlock the linked job, no funds change
		// hands between the parties.
		if payment.PaymentType == models.PaymentTypeJobVerification {
			if err := s.paymentRepo.MarkCompleted(tx, payment.ID, models.EscrowStatusNone, gatewayResponse); err != nil {
				return err
			}
			settled = payment
			return nil
		}

		// Wallets are created lazily, a first-time payee has none yet.
		if _, err := s.paymentRepo.GetOrCreateWallet(payment.PayerID); err != nil {
			return err
		}
		if _, err := s.paymentRepo.GetOrCreateWallet(payment.PayeeID); err != nil {
			return err
		}

		escrow := models.EscrowStatusNone
		if payment.UseEscrow {
			escrow = models.EscrowStatusHeld
		}
		if err := s.paymentRepo.MarkCompleted(tx, payment.ID, escrow, gatewayResponse); err != nil {
			return err
		}

		payerBalance, err := s.paymentRepo.WalletBalance(tx, payment.PayerID)
		if err != nil {
			return err
		}
		payeeBalance, err := s.paymentRepo.WalletBalance(tx, payment.PayeeID)
		if err != nil {
			return err
		}

		// Payer funded the charge through the gateway, so only the spend
		// counter moves on their wallet.
		if err := s.paymentRepo.IncrementWallet(tx, payment.PayerID, repositories.WalletDeltas{
			TotalSpent: payment.Amount,
		}); err != nil {
			return err
		}

		// Held funds still count toward the total balance until released,
		// release only moves them out of the escrow column.
		payeeDeltas := repositories.WalletDeltas{
			Balance:       payment.NetAmount,
			EscrowBalance: payment.NetAmount,
		}
		if !payment.UseEscrow {
			payeeDeltas = repositories.WalletDeltas{
				Balance:     payment.NetAmount,
				TotalEarned: payment.NetAmount,
			}
		}
		payeeAfter := payeeBalance + payment.NetAmount
		if err := s.paymentRepo.IncrementWallet(tx, payment.PayeeID, payeeDeltas); err != nil {
			return err
		}

		paymentID := payment.ID
		sent := &models.Transaction{
			UserID:        payment.PayerID,
			PaymentID:     &paymentID,
			Type:          models.TransactionTypePaymentSent,
			Amount:        payment.Amount,
			BalanceBefore: payerBalance,
			BalanceAfter:  payerBalance,
			Status:        models.TransactionStatusCompleted,
			Description:   fmt.Sprintf("Payment sent (%s)", payment.PaymentType),
		}
		if err := s.paymentRepo.RecordTransaction(tx, sent); err != nil {
			return err
		}
		received := &models.Transaction{
			UserID:        payment.PayeeID,
			PaymentID:     &paymentID,
			Type:          models.TransactionTypePaymentReceived,
			Amount:        payment.NetAmount,
			BalanceBefore: payeeBalance,
			BalanceAfter:  payeeAfter,
			Status:        models.TransactionStatusCompleted,
			Description:   fmt.Sprintf("Payment received (%s)", payment.PaymentType),
		}
		if err := s.paymentRepo.RecordTransaction(tx, received); err != nil {
			return err
		}

		settled = payment
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if apperrors.As(err, &appErr) {
			return appErr
		}
		if apperrors.Is(err, repositories.ErrPaymentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if settled == nil {
		return nil // already completed
	}

	if settled.PaymentType == models.PaymentTypeJobVerification {
		if err := s.verifyLinkedJob(settled); err != nil {
			return err
		}
		s.notifications.Notify(settled.PayerID, "payment", "Payment successful",
			fmt.Sprintf("You paid %.2f %s to verify your job posting", settled.Amount, settled.Currency),
			map[string]string{"relatedId": settled.ID, "relatedType": "payment", "actorId": settled.PayerID})
		return nil
	}

	s.sendReceiptEmail(settled)
	s.notifications.Notify(settled.PayeeID, "payment", "Payment received",
		fmt.Sprintf("You received %.2f %s", settled.NetAmount, settled.Currency),
		map[string]string{"relatedId": settled.ID, "relatedType": "payment", "actorId": settled.PayerID})
	return nil
}

// verifyLinkedJob flips the verification flags on the job a
// job_verification payment was bought for and reactivates it.
func (s *PaymentServiceImpl) verifyLinkedJob(payment *models.Payment) error {
	if payment.JobID == nil {
		return nil
	}
	job, err := s.jobRepo.FindByID(*payment.JobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	paymentID := payment.ID
	job.PaymentVerified = true
	job.PaymentID = &paymentID
	job.Status = models.JobStatusActive
	if err := s.jobRepo.Update(job); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *PaymentServiceImpl) sendReceiptEmail(payment *models.Payment) {
	if s.mailer == nil {
		return
	}
	payer, err := s.userRepo.FindByID(payment.PayerID)
	if err != nil {
		logger.SideEffectLog("load payer for receipt", err, "payment_id", payment.ID)
		return
	}
	err = s.mailer.SendTemplate(
		[]string{payer.Email},
		"Payment receipt",
		"payment_receipt",
		email.TemplateData{
			"Name":      payer.FullName,
			"Amount":    fmt.Sprintf("%.2f", payment.Amount),
			"Currency":  payment.Currency,
			"Reference": payment.GatewayRef,
		},
	)
	if err != nil {
		logger.SideEffectLog("send payment receipt", err, "payment_id", payment.ID)
	}
}

// ReleaseEscrow moves held funds into the payee's available balance.
// Only the payer can release.
func (s *PaymentServiceImpl) ReleaseEscrow(payerID, paymentID string) (*dto.PaymentResponse, error) {
	payment, err := s.partyPayment(payerID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.PayerID != payerID {
		return nil, apperrors.NewForbiddenError("Only the payer can release escrow")
	}
	if payment.EscrowStatus != models.EscrowStatusHeld {
		return nil, apperrors.ErrInvalidStatus("payments", "No escrow is held on this payment")
	}

	err = s.paymentRepo.CompletePayment(func(tx *gorm.DB) error {
		locked, err := s.paymentRepo.LockPayment(tx, paymentID)
		if err != nil {
			return err
		}
		if locked.EscrowStatus != models.EscrowStatusHeld {
			return nil
		}

		payeeBalance, err := s.paymentRepo.WalletBalance(tx, locked.PayeeID)
		if err != nil {
			return err
		}
		// Settlement already credited the balance, release only clears
		// the hold and counts the earnings.
		if err := s.paymentRepo.IncrementWallet(tx, locked.PayeeID, repositories.WalletDeltas{
			EscrowBalance: -locked.NetAmount,
			TotalEarned:   locked.NetAmount,
		}); err != nil {
			return err
		}

		if err := s.paymentRepo.UpdateEscrowStatus(tx, locked.ID, models.EscrowStatusReleased); err != nil {
			return err
		}

		release := &models.Transaction{
			UserID:        locked.PayeeID,
			PaymentID:     &locked.ID,
			Type:          models.TransactionTypeEscrowRelease,
			Amount:        locked.NetAmount,
			BalanceBefore: payeeBalance,
			BalanceAfter:  payeeBalance,
			Status:        models.TransactionStatusCompleted,
			Description:   "Escrow released",
		}
		return s.paymentRepo.RecordTransaction(tx, release)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifications.Notify(payment.PayeeID, "payment", "Escrow released",
		fmt.Sprintf("%.2f %s is now available in your wallet", payment.NetAmount, payment.Currency),
		map[string]string{"relatedId": payment.ID, "relatedType": "payment", "actorId": payerID})

	updated, err := s.paymentRepo.FindByID(paymentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toPaymentResponse(updated), nil
}

// HandleWebhook processes gateway callbacks. The payload is never trusted
// alone, the charge is re-verified against the gateway before settling.
func (s *PaymentServiceImpl) HandleWebhook(signature string, payload *dto.GatewayWebhookPayload) error {
	if !s.gateway.ValidateWebhookSignature(signature) {
		return apperrors.NewUnauthorizedError("Invalid webhook signature")
	}
	if payload.Event != "charge.completed" {
		return nil
	}

	verified, err := s.gateway.VerifyTransaction(payload.Data.TxRef)
	if err != nil {
		return apperrors.ErrConflict(err, "payments", "Charge verification failed")
	}
	if verified.Data.TransactionStatus != "successful" {
		return nil
	}

	payment, err := s.paymentRepo.FindByGatewayRef(payload.Data.TxRef)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if verified.Data.Amount < payment.Amount {
		return apperrors.ErrConflict(nil, "payments", "Verified amount is lower than the charge")
	}

	return s.CompletePayment(payment.ID, verified.Data.Raw)
}

// ---------------- Wallets ----------------

func (s *PaymentServiceImpl) Wallet(userID string) (*dto.WalletResponse, error) {
	wallet, err := s.paymentRepo.GetOrCreateWallet(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.WalletResponse{
		UserID:        wallet.UserID,
		Balance:       wallet.Balance,
		EscrowBalance: wallet.EscrowBalance,
		TotalSpent:    wallet.TotalSpent,
		TotalEarned:   wallet.TotalEarned,
		Currency:      wallet.Currency,
	}, nil
}

func (s *PaymentServiceImpl) Transactions(userID string, page, pageSize int) (*dto.PagedResponse[dto.TransactionResponse], error) {
	page, pageSize = defaultPage(page, pageSize)
	txns, total, err := s.paymentRepo.FindTransactions(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		txn := txns[i]
		items = append(items, dto.TransactionResponse{
			ID:            txn.ID,
			Type:          txn.Type,
			Amount:        txn.Amount,
			BalanceBefore: txn.BalanceBefore,
			BalanceAfter:  txn.BalanceAfter,
			Description:   txn.Description,
			CreatedAt:     txn.CreatedAt,
		})
	}
	return dto.NewPagedResponse(items, total, page, pageSize), nil
}

func (s *PaymentServiceImpl) partyPayment(userID, paymentID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(paymentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if payment.PayerID != userID && payment.PayeeID != userID {
		return nil, apperrors.NewForbiddenError("Payment belongs to other users")
	}
	return payment, nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
