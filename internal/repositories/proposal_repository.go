package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"connecta_backend/internal/models"
)

var (
	ErrProposalNotFound      = errors.New("proposal not found")
	ErrProposalAlreadyExists = errors.New("proposal already exists")
)

type ProposalRepository interface {
	FindByID(id string) (*models.Proposal, error)
	Create(proposal *models.Proposal) error
	UpdateStatus(proposalID string, status models.ProposalStatus) error
	FindByJob(jobID string, limit, offset int) ([]models.Proposal, int64, error)
	FindByFreelancer(freelancerID string, limit, offset int) ([]models.Proposal, int64, error)
	FindByJobAndFreelancer(jobID, freelancerID string) (*models.Proposal, error)
	DeclineSiblings(jobID, acceptedProposalID string) (int64, error)
	CountByJob(jobID string) (int64, error)
	CountByFreelancer(freelancerID string, status models.ProposalStatus) (int64, error)
	CountPendingForClient(clientID string) (int64, error)
}

type ProposalRepositoryImpl struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &ProposalRepositoryImpl{db: db}
}

func (r *ProposalRepositoryImpl) FindByID(id string) (*models.Proposal, error) {
	var proposal models.Proposal
	err := r.db.Preload("Job").Preload("Freelancer").First(&proposal, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

func (r *ProposalRepositoryImpl) Create(proposal *models.Proposal) error {
	var existing models.Proposal
	err := r.db.Where("job_id = ? AND freelancer_id = ?", proposal.JobID, proposal.FreelancerID).
		First(&existing).Error
	if err == nil {
		return ErrProposalAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.Create(proposal).Error
}

func (r *ProposalRepositoryImpl) UpdateStatus(proposalID string, status models.ProposalStatus) error {
	result := r.db.Model(&models.Proposal{}).Where("id = ?", proposalID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProposalNotFound
	}
	return nil
}

func (r *ProposalRepositoryImpl) FindByJob(jobID string, limit, offset int) ([]models.Proposal, int64, error) {
	var total int64
	if err := r.db.Model(&models.Proposal{}).Where("job_id = ?", jobID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var proposals []models.Proposal
	err := r.db.Preload("Freelancer").Where("job_id = ?", jobID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&proposals).Error
	return proposals, total, err
}

func (r *ProposalRepositoryImpl) FindByFreelancer(freelancerID string, limit, offset int) ([]models.Proposal, int64, error) {
	var total int64
	if err := r.db.Model(&models.Proposal{}).Where("freelancer_id = ?", freelancerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var proposals []models.Proposal
	err := r.db.Preload("Job").Where("freelancer_id = ?", freelancerID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&proposals).Error
	return proposals, total, err
}

func (r *ProposalRepositoryImpl) FindByJobAndFreelancer(jobID, freelancerID string) (*models.Proposal, error) {
	var proposal models.Proposal
	err := r.db.Where("job_id = ? AND freelancer_id = ?", jobID, freelancerID).First(&proposal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

// DeclineSiblings marks every other pending proposal on the job declined.
func (r *ProposalRepositoryImpl) DeclineSiblings(jobID, acceptedProposalID string) (int64, error) {
	result := r.db.Model(&models.Proposal{}).
		Where("job_id = ? AND id <> ? AND status = ?", jobID, acceptedProposalID, models.ProposalStatusPending).
		Updates(map[string]interface{}{
			"status":     models.ProposalStatusDeclined,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *ProposalRepositoryImpl) CountByJob(jobID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Proposal{}).Where("job_id = ?", jobID).Count(&count).Error
	return count, err
}

func (r *ProposalRepositoryImpl) CountByFreelancer(freelancerID string, status models.ProposalStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Proposal{}).
		Where("freelancer_id = ? AND status = ?", freelancerID, status).Count(&count).Error
	return count, err
}

// CountPendingForClient counts undecided proposals across the client's jobs.
func (r *ProposalRepositoryImpl) CountPendingForClient(clientID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Proposal{}).
		Joins("JOIN jobs ON jobs.id = proposals.job_id").
		Where("jobs.client_id = ? AND proposals.status = ?", clientID, models.ProposalStatusPending).
		Count(&count).Error
	return count, err
}
