package services

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"connecta_backend/internal/logger"
	"connecta_backend/internal/models"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type ContractService interface {
	GetByID(userID, contractID string) (*dto.ContractResponse, error)
	List(userID string, page, pageSize int) (*dto.PagedResponse[dto.ContractResponse], error)
	UpdateTerms(userID, contractID string, req *dto.UpdateContractRequest) (*dto.ContractResponse, error)
	Sign(userID, contractID, ip string, req *dto.SignContractRequest) (*dto.ContractResponse, error)
	Terminate(userID, contractID string) (*dto.ContractResponse, error)
	Dispute(userID, contractID string) (*dto.ContractResponse, error)
}

type signature struct {
	SignedAt time.Time `json:"signedAt"`
	Name     string    `json:"name"`
	IP       string    `json:"ip,omitempty"`
}

type ContractServiceImpl struct {
	contractRepo  repositories.ContractRepository
	projectRepo   repositories.ProjectRepository
	notifications NotificationService
	reputation    ReputationService
}

func NewContractService(
	contractRepo repositories.ContractRepository,
	projectRepo repositories.ProjectRepository,
	notifications NotificationService,
	reputation ReputationService,
) ContractService {
	return &ContractServiceImpl{
		contractRepo:  contractRepo,
		projectRepo:   projectRepo,
		notifications: notifications,
		reputation:    reputation,
	}
}

func (s *ContractServiceImpl) GetByID(userID, contractID string) (*dto.ContractResponse, error) {
	contract, err := s.partyContract(userID, contractID)
	if err != nil {
		return nil, err
	}
	return toContractResponse(contract), nil
}

func (s *ContractServiceImpl) List(userID string, page, pageSize int) (*dto.PagedResponse[dto.ContractResponse], error) {
	page, pageSize = defaultPage(page, pageSize)
	contracts, total, err := s.contractRepo.FindByParticipant(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ContractResponse, 0, len(contracts))
	for i := range contracts {
		items = append(items, *toContractResponse(&contracts[i]))
	}
	return dto.NewPagedResponse(items, total, page, pageSize), nil
}

// UpdateTerms lets the client edit terms while signatures are still pending.
// Editing resets any signatures already collected.
func (s *ContractServiceImpl) UpdateTerms(userID, contractID string, req *dto.UpdateContractRequest) (*dto.ContractResponse, error) {
	contract, err := s.partyContract(userID, contractID)
	if err != nil {
		return nil, err
	}
	if contract.ClientID != userID {
		return nil, apperrors.NewForbiddenError("Only the client can edit contract terms")
	}
	if contract.Status != models.ContractStatusDraft && contract.Status != models.ContractStatusPendingSignatures {
		return nil, apperrors.ErrInvalidStatus("contracts", "Terms can only be edited before the contract is active")
	}

	if req.Terms != "" {
		contract.Terms = req.Terms
		contract.Signatures = nil
		contract.Status = models.ContractStatusPendingSignatures
	}
	if err := s.contractRepo.Update(contract); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifications.Notify(contract.FreelancerID, "contract", "Contract updated",
		"Contract terms changed, please review and sign again",
		map[string]string{"relatedId": contract.ID, "relatedType": "contract", "actorId": userID})
	return toContractResponse(contract), nil
}

// Sign records a party signature. When both parties have signed the
// contract becomes active and the project moves to in_progress.
func (s *ContractServiceImpl) Sign(userID, contractID, ip string, req *dto.SignContractRequest) (*dto.ContractResponse, error) {
	contract, err := s.partyContract(userID, contractID)
	if err != nil {
		return nil, err
	}
	if contract.Status != models.ContractStatusDraft && contract.Status != models.ContractStatusPendingSignatures {
		return nil, apperrors.ErrInvalidStatus("contracts", "Contract is not awaiting signatures")
	}

	party := "client"
	if userID == contract.FreelancerID {
		party = "freelancer"
	}

	signatures := map[string]signature{}
	if len(contract.Signatures) > 0 {
		if err := json.Unmarshal(contract.Signatures, &signatures); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	if _, ok := signatures[party]; ok {
		return nil, apperrors.ErrInvalidOperation("contracts", "You already signed this contract")
	}
	signatures[party] = signature{SignedAt: time.Now(), Name: req.Name, IP: ip}

	raw, err := json.Marshal(signatures)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	contract.Signatures = datatypes.JSON(raw)

	_, clientSigned := signatures["client"]
	_, freelancerSigned := signatures["freelancer"]
	if clientSigned && freelancerSigned {
		now := time.Now()
		contract.Status = models.ContractStatusActive
		contract.StartDate = &now
	} else {
		contract.Status = models.ContractStatusPendingSignatures
	}

	if err := s.contractRepo.Update(contract); err != nil {
		return nil, apperrors.InternalError(err)
	}

	other := contract.FreelancerID
	if party == "freelancer" {
		other = contract.ClientID
	}
	if contract.Status == models.ContractStatusActive {
		if err := s.projectRepo.UpdateStatus(contract.ProjectID, models.ProjectStatusInProgress); err != nil {
			logger.SideEffectLog("move project in progress", err, "project_id", contract.ProjectID)
		}
		s.notifications.Notify(other, "contract", "Contract active",
			"Both parties signed, work can begin",
			map[string]string{"relatedId": contract.ID, "relatedType": "contract", "actorId": userID})
	} else {
		s.notifications.Notify(other, "contract", "Contract signed",
			fmt.Sprintf("The %s signed the contract, your signature is pending", party),
			map[string]string{"relatedId": contract.ID, "relatedType": "contract", "actorId": userID})
	}
	return toContractResponse(contract), nil
}

func (s *ContractServiceImpl) Terminate(userID, contractID string) (*dto.ContractResponse, error) {
	return s.close(userID, contractID, models.ContractStatusTerminated, models.ProjectStatusCancelled,
		"Contract terminated", "The other party terminated the contract")
}

func (s *ContractServiceImpl) Dispute(userID, contractID string) (*dto.ContractResponse, error) {
	return s.close(userID, contractID, models.ContractStatusDisputed, models.ProjectStatusCancelled,
		"Contract disputed", "The other party opened a dispute on the contract")
}

func (s *ContractServiceImpl) close(userID, contractID string, status models.ContractStatus,
	projectStatus models.ProjectStatus, title, body string) (*dto.ContractResponse, error) {

	contract, err := s.partyContract(userID, contractID)
	if err != nil {
		return nil, err
	}
	if contract.Status == models.ContractStatusCompleted ||
		contract.Status == models.ContractStatusTerminated ||
		contract.Status == models.ContractStatusDisputed {
		return nil, apperrors.ErrInvalidStatus("contracts", "Contract is already closed")
	}

	now := time.Now()
	contract.Status = status
	contract.TerminatedAt = &now
	if err := s.contractRepo.Update(contract); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.projectRepo.UpdateStatus(contract.ProjectID, projectStatus); err != nil {
		logger.SideEffectLog("close project with contract", err, "project_id", contract.ProjectID)
	}
	if err := s.reputation.Recalculate(contract.FreelancerID); err != nil {
		logger.SideEffectLog("recalculate reputation", err, "user_id", contract.FreelancerID)
	}

	other := contract.FreelancerID
	if userID == contract.FreelancerID {
		other = contract.ClientID
	}
	s.notifications.Notify(other, "contract", title, body,
		map[string]string{"relatedId": contract.ID, "relatedType": "contract", "actorId": userID})
	return toContractResponse(contract), nil
}

func (s *ContractServiceImpl) partyContract(userID, contractID string) (*models.Contract, error) {
	contract, err := s.contractRepo.FindByID(contractID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContractNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if contract.ClientID != userID && contract.FreelancerID != userID {
		return nil, apperrors.NewForbiddenError("Contract belongs to other users")
	}
	return contract, nil
}
