package services

import (
	"fmt"
	"time"

	"connecta_backend/internal/logger"
	"connecta_backend/internal/models"
	"connecta_backend/internal/pkg/email"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type ProposalService interface {
	Create(freelancerID string, req *dto.CreateProposalRequest) (*dto.ProposalResponse, error)
	GetByID(userID, proposalID string) (*dto.ProposalResponse, error)
	ListByJob(clientID, jobID string, page, pageSize int) (*dto.PagedResponse[dto.ProposalResponse], error)
	ListByFreelancer(freelancerID string, page, pageSize int) (*dto.PagedResponse[dto.ProposalResponse], error)
	Withdraw(freelancerID, proposalID string) error
	Decline(clientID, proposalID string) error
	Accept(clientID, proposalID string) (*dto.AcceptProposalResponse, error)
}

type ProposalServiceImpl struct {
	proposalRepo  repositories.ProposalRepository
	jobRepo       repositories.JobRepository
	projectRepo   repositories.ProjectRepository
	contractRepo  repositories.ContractRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
	mailer        email.Provider
}

func NewProposalService(
	proposalRepo repositories.ProposalRepository,
	jobRepo repositories.JobRepository,
	projectRepo repositories.ProjectRepository,
	contractRepo repositories.ContractRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
	mailer email.Provider,
) ProposalService {
	return &ProposalServiceImpl{
		proposalRepo:  proposalRepo,
		jobRepo:       jobRepo,
		projectRepo:   projectRepo,
		contractRepo:  contractRepo,
		userRepo:      userRepo,
		notifications: notifications,
		mailer:        mailer,
	}
}

// ---------------- Submission ----------------

func (s *ProposalServiceImpl) Create(freelancerID string, req *dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
	job, err := s.jobRepo.FindByID(req.JobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if job.Status != models.JobStatusActive {
		return nil, apperrors.ErrInvalidStatus("proposals", "Job is not accepting proposals")
	}
	if job.IsExternal {
		return nil, apperrors.ErrInvalidOperation("proposals", "External gigs accept applications on the source site")
	}
	if job.ClientID == freelancerID {
		return nil, apperrors.ErrCannotActOnSelf
	}

	proposal := &models.Proposal{
		JobID:        req.JobID,
		FreelancerID: freelancerID,
		CoverLetter:  req.CoverLetter,
		BidAmount:    req.BidAmount,
		Duration:     req.Duration,
		Status:       models.ProposalStatusPending,
	}

	if err := s.proposalRepo.Create(proposal); err != nil {
		if apperrors.Is(err, repositories.ErrProposalAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	s.notifications.Notify(job.ClientID, "proposal", "New proposal",
		fmt.Sprintf("You received a new proposal for \"%s\"", job.Title),
		map[string]string{"relatedId": proposal.ID, "relatedType": "proposal", "actorId": freelancerID})

	if freelancer, err := s.userRepo.FindByID(freelancerID); err == nil {
		s.sendProposalEmail(job.ClientID, "New proposal", "proposal_received", email.TemplateData{
			"FreelancerName": freelancer.FullName,
			"JobTitle":       job.Title,
		})
	}

	return toProposalResponse(proposal), nil
}

func (s *ProposalServiceImpl) GetByID(userID, proposalID string) (*dto.ProposalResponse, error) {
	proposal, err := s.loadProposal(proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.FreelancerID != userID && (proposal.Job == nil || proposal.Job.ClientID != userID) {
		return nil, apperrors.NewForbiddenError("Proposal belongs to another user")
	}
	return toProposalResponse(proposal), nil
}

func (s *ProposalServiceImpl) ListByJob(clientID, jobID string, page, pageSize int) (*dto.PagedResponse[dto.ProposalResponse], error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if job.ClientID != clientID {
		return nil, apperrors.NewForbiddenError("Job belongs to another client")
	}

	page, pageSize = defaultPage(page, pageSize)
	proposals, total, err := s.proposalRepo.FindByJob(jobID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPagedResponse(toProposalResponses(proposals), total, page, pageSize), nil
}

func (s *ProposalServiceImpl) ListByFreelancer(freelancerID string, page, pageSize int) (*dto.PagedResponse[dto.ProposalResponse], error) {
	page, pageSize = defaultPage(page, pageSize)
	proposals, total, err := s.proposalRepo.FindByFreelancer(freelancerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPagedResponse(toProposalResponses(proposals), total, page, pageSize), nil
}

// ---------------- State transitions ----------------

func (s *ProposalServiceImpl) Withdraw(freelancerID, proposalID string) error {
	proposal, err := s.loadProposal(proposalID)
	if err != nil {
		return err
	}
	if proposal.FreelancerID != freelancerID {
		return apperrors.NewForbiddenError("Proposal belongs to another freelancer")
	}
	if proposal.Status != models.ProposalStatusPending {
		return apperrors.ErrInvalidStatus("proposals", "Only pending proposals can be withdrawn")
	}
	return s.proposalRepo.UpdateStatus(proposalID, models.ProposalStatusWithdrawn)
}

func (s *ProposalServiceImpl) Decline(clientID, proposalID string) error {
	proposal, err := s.loadProposal(proposalID)
	if err != nil {
		return err
	}
	if proposal.Job == nil || proposal.Job.ClientID != clientID {
		return apperrors.NewForbiddenError("Job belongs to another client")
	}
	if proposal.Status != models.ProposalStatusPending {
		return apperrors.ErrInvalidStatus("proposals", "Only pending proposals can be declined")
	}

	if err := s.proposalRepo.UpdateStatus(proposalID, models.ProposalStatusDeclined); err != nil {
		return apperrors.InternalError(err)
	}

	s.notifications.Notify(proposal.FreelancerID, "proposal", "Proposal declined",
		fmt.Sprintf("Your proposal for \"%s\" was declined", proposal.Job.Title),
		map[string]string{"relatedId": proposalID, "relatedType": "proposal"})
	return nil
}

// Accept turns a pending proposal into an engagement: the proposal is
// accepted, a Project and its draft Contract are created, the job closes
// and every sibling proposal is declined.
func (s *ProposalServiceImpl) Accept(clientID, proposalID string) (*dto.AcceptProposalResponse, error) {
	proposal, err := s.loadProposal(proposalID)
	if err != nil {
		return nil, err
	}
	job := proposal.Job
	if job == nil || job.ClientID != clientID {
		return nil, apperrors.NewForbiddenError("Job belongs to another client")
	}
	if proposal.Status != models.ProposalStatusPending {
		return nil, apperrors.ErrInvalidStatus("proposals", "Only pending proposals can be accepted")
	}
	if job.Status != models.JobStatusActive {
		return nil, apperrors.ErrInvalidStatus("proposals", "Job is no longer active")
	}

	if err := s.proposalRepo.UpdateStatus(proposalID, models.ProposalStatusAccepted); err != nil {
		return nil, apperrors.InternalError(err)
	}

	project := &models.Project{
		JobID:        job.ID,
		ProposalID:   proposal.ID,
		ClientID:     clientID,
		FreelancerID: proposal.FreelancerID,
		Title:        job.Title,
		Description:  job.Description,
		Budget:       proposal.BidAmount,
		Status:       models.ProjectStatusOngoing,
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	contract := &models.Contract{
		ProjectID:    project.ID,
		ClientID:     clientID,
		FreelancerID: proposal.FreelancerID,
		Terms:        fmt.Sprintf("Engagement for \"%s\" at the accepted bid.", job.Title),
		Amount:       proposal.BidAmount,
		Status:       models.ContractStatusPendingSignatures,
		StartDate:    &now,
	}
	if err := s.contractRepo.Create(contract); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.jobRepo.UpdateStatus(job.ID, models.JobStatusClosed); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if _, err := s.proposalRepo.DeclineSiblings(job.ID, proposalID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifications.Notify(proposal.FreelancerID, "proposal", "Proposal accepted",
		fmt.Sprintf("Your proposal for \"%s\" was accepted", job.Title),
		map[string]string{"relatedId": project.ID, "relatedType": "project", "actorId": clientID})
	s.sendProposalEmail(proposal.FreelancerID, "Proposal accepted", "proposal_accepted", email.TemplateData{
		"JobTitle": job.Title,
	})

	proposal.Status = models.ProposalStatusAccepted
	return &dto.AcceptProposalResponse{
		Proposal: toProposalResponse(proposal),
		Project:  toProjectResponse(project),
		Contract: toContractResponse(contract),
	}, nil
}

// ---------------- internals ----------------

// sendProposalEmail mails the given user, best effort.
func (s *ProposalServiceImpl) sendProposalEmail(userID, subject, templateName string, data email.TemplateData) {
	if s.mailer == nil {
		return
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		logger.SideEffectLog("load proposal email recipient", err, "user_id", userID)
		return
	}
	data["Name"] = user.FullName
	if err := s.mailer.SendTemplate([]string{user.Email}, subject, templateName, data); err != nil {
		logger.SideEffectLog("send proposal email", err, "user_id", userID)
	}
}

func (s *ProposalServiceImpl) loadProposal(proposalID string) (*models.Proposal, error) {
	proposal, err := s.proposalRepo.FindByID(proposalID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProposalNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return proposal, nil
}

func toProposalResponses(proposals []models.Proposal) []dto.ProposalResponse {
	items := make([]dto.ProposalResponse, 0, len(proposals))
	for i := range proposals {
		items = append(items, *toProposalResponse(&proposals[i]))
	}
	return items
}

func defaultPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}
