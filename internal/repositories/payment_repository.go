package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"connecta_backend/internal/models"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrWalletNotFound  = errors.New("wallet not found")
)

type PaymentRepository interface {
	FindByID(id string) (*models.Payment, error)
	FindByGatewayRef(ref string) (*models.Payment, error)
	Create(payment *models.Payment) error
	Update(payment *models.Payment) error
	FindByUser(userID string, limit, offset int) ([]models.Payment, int64, error)

	// Wallet operations
	FindWallet(userID string) (*models.Wallet, error)
	CreateWallet(wallet *models.Wallet) error
	GetOrCreateWallet(userID string) (*models.Wallet, error)

	// Transaction ledger
	CreateTransaction(txn *models.Transaction) error
	FindTransactions(userID string, limit, offset int) ([]models.Transaction, int64, error)

	// CompletePayment applies the whole settlement atomically: payment row,
	// both wallets, and the ledger pair.
	CompletePayment(fn func(tx *gorm.DB) error) error

	// In-transaction helpers, expect the tx handle from CompletePayment.
	LockPayment(tx *gorm.DB, paymentID string) (*models.Payment, error)
	MarkCompleted(tx *gorm.DB, paymentID string, escrow models.EscrowStatus, gatewayResponse []byte) error
	IncrementWallet(tx *gorm.DB, userID string, deltas WalletDeltas) error
	WalletBalance(tx *gorm.DB, userID string) (float64, error)
	RecordTransaction(tx *gorm.DB, txn *models.Transaction) error
	UpdateEscrowStatus(tx *gorm.DB, paymentID string, status models.EscrowStatus) error
}

// WalletDeltas lists signed increments applied to one wallet.
type WalletDeltas struct {
	Balance       float64
	EscrowBalance float64
	TotalSpent    float64
	TotalEarned   float64
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) FindByID(id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByGatewayRef(ref string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, "gateway_ref = ?", ref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) Update(payment *models.Payment) error {
	result := r.db.Model(&models.Payment{}).Where("id = ?", payment.ID).Updates(map[string]interface{}{
		"status":           payment.Status,
		"escrow_status":    payment.EscrowStatus,
		"gateway_ref":      payment.GatewayRef,
		"gateway_response": payment.GatewayResponse,
		"completed_at":     payment.CompletedAt,
		"updated_at":       time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepositoryImpl) FindByUser(userID string, limit, offset int) ([]models.Payment, int64, error) {
	base := r.db.Model(&models.Payment{}).
		Where("payer_id = ? OR payee_id = ?", userID, userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []models.Payment
	err := r.db.Where("payer_id = ? OR payee_id = ?", userID, userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error
	return payments, total, err
}

// Wallet operations

func (r *PaymentRepositoryImpl) FindWallet(userID string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.First(&wallet, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *PaymentRepositoryImpl) CreateWallet(wallet *models.Wallet) error {
	return r.db.Create(wallet).Error
}

func (r *PaymentRepositoryImpl) GetOrCreateWallet(userID string) (*models.Wallet, error) {
	wallet, err := r.FindWallet(userID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, ErrWalletNotFound) {
		return nil, err
	}

	wallet = &models.Wallet{UserID: userID}
	if err := r.db.Create(wallet).Error; err != nil {
		return nil, err
	}
	return wallet, nil
}

// Transaction ledger

func (r *PaymentRepositoryImpl) CreateTransaction(txn *models.Transaction) error {
	return r.db.Create(txn).Error
}

func (r *PaymentRepositoryImpl) FindTransactions(userID string, limit, offset int) ([]models.Transaction, int64, error) {
	var total int64
	if err := r.db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txns []models.Transaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&txns).Error
	return txns, total, err
}

func (r *PaymentRepositoryImpl) CompletePayment(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func (r *PaymentRepositoryImpl) LockPayment(tx *gorm.DB, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := tx.Clauses(lockForUpdate()).First(&payment, "id = ?", paymentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) MarkCompleted(tx *gorm.DB, paymentID string, escrow models.EscrowStatus, gatewayResponse []byte) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":        models.PaymentStatusCompleted,
		"escrow_status": escrow,
		"completed_at":  now,
		"updated_at":    now,
	}
	if gatewayResponse != nil {
		updates["gateway_response"] = gatewayResponse
	}

	result := tx.Model(&models.Payment{}).Where("id = ?", paymentID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// IncrementWallet applies the deltas in place so concurrent settlements
// never clobber each other.
func (r *PaymentRepositoryImpl) IncrementWallet(tx *gorm.DB, userID string, deltas WalletDeltas) error {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if deltas.Balance != 0 {
		updates["balance"] = gorm.Expr("balance + ?", deltas.Balance)
	}
	if deltas.EscrowBalance != 0 {
		updates["escrow_balance"] = gorm.Expr("escrow_balance + ?", deltas.EscrowBalance)
	}
	if deltas.TotalSpent != 0 {
		updates["total_spent"] = gorm.Expr("total_spent + ?", deltas.TotalSpent)
	}
	if deltas.TotalEarned != 0 {
		updates["total_earned"] = gorm.Expr("total_earned + ?", deltas.TotalEarned)
	}

	result := tx.Model(&models.Wallet{}).Where("user_id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWalletNotFound
	}
	return nil
}

func (r *PaymentRepositoryImpl) RecordTransaction(tx *gorm.DB, txn *models.Transaction) error {
	return tx.Create(txn).Error
}

func (r *PaymentRepositoryImpl) UpdateEscrowStatus(tx *gorm.DB, paymentID string, status models.EscrowStatus) error {
	return tx.Model(&models.Payment{}).Where("id = ?", paymentID).
		Update("escrow_status", status).Error
}

func (r *PaymentRepositoryImpl) WalletBalance(tx *gorm.DB, userID string) (float64, error) {
	var wallet models.Wallet
	err := tx.First(&wallet, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrWalletNotFound
		}
		return 0, err
	}
	return wallet.Balance, nil
}
