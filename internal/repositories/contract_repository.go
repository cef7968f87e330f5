package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"connecta_backend/internal/models"
)

var ErrContractNotFound = errors.New("contract not found")

type ContractRepository interface {
	FindByID(id string) (*models.Contract, error)
	FindByProject(projectID string) (*models.Contract, error)
	Create(contract *models.Contract) error
	Update(contract *models.Contract) error
	UpdateStatus(contractID string, status models.ContractStatus) error
	FindByParticipant(userID string, limit, offset int) ([]models.Contract, int64, error)
	FindClosedForUser(userID string) ([]models.Contract, error)
}

type ContractRepositoryImpl struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) ContractRepository {
	return &ContractRepositoryImpl{db: db}
}

func (r *ContractRepositoryImpl) FindByID(id string) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.First(&contract, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepositoryImpl) FindByProject(projectID string) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.First(&contract, "project_id = ?", projectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepositoryImpl) Create(contract *models.Contract) error {
	return r.db.Create(contract).Error
}

func (r *ContractRepositoryImpl) Update(contract *models.Contract) error {
	result := r.db.Model(&models.Contract{}).Where("id = ?", contract.ID).Updates(map[string]interface{}{
		"terms":         contract.Terms,
		"amount":        contract.Amount,
		"status":        contract.Status,
		"signatures":    contract.Signatures,
		"start_date":    contract.StartDate,
		"end_date":      contract.EndDate,
		"completed_at":  contract.CompletedAt,
		"terminated_at": contract.TerminatedAt,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContractNotFound
	}
	return nil
}

func (r *ContractRepositoryImpl) UpdateStatus(contractID string, status models.ContractStatus) error {
	result := r.db.Model(&models.Contract{}).Where("id = ?", contractID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContractNotFound
	}
	return nil
}

func (r *ContractRepositoryImpl) FindByParticipant(userID string, limit, offset int) ([]models.Contract, int64, error) {
	base := r.db.Model(&models.Contract{}).
		Where("client_id = ? OR freelancer_id = ?", userID, userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contracts []models.Contract
	err := r.db.Where("client_id = ? OR freelancer_id = ?", userID, userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&contracts).Error
	return contracts, total, err
}

// FindClosedForUser returns contracts in a terminal state where the user
// was the freelancer. Input for the success score.
func (r *ContractRepositoryImpl) FindClosedForUser(userID string) ([]models.Contract, error) {
	var contracts []models.Contract
	err := r.db.Where("freelancer_id = ? AND status IN ?", userID, []models.ContractStatus{
		models.ContractStatusCompleted,
		models.ContractStatusTerminated,
		models.ContractStatusDisputed,
	}).Find(&contracts).Error
	return contracts, err
}
