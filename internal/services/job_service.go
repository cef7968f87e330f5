package services

import (
	"strings"

	"connecta_backend/internal/logger"
	"connecta_backend/internal/models"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type JobService interface {
	Create(clientID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetByID(jobID string, countView bool) (*dto.JobResponse, error)
	Update(clientID, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	Close(clientID, jobID string) error
	Delete(clientID, jobID string) error
	Search(req *dto.JobSearchRequest) (*dto.PagedResponse[dto.JobResponse], error)
	ListByClient(clientID string, page, pageSize int) ([]dto.JobResponse, error)
}

type JobServiceImpl struct {
	jobRepo      repositories.JobRepository
	proposalRepo repositories.ProposalRepository
	profileRepo  repositories.ProfileRepository
	matchRepo    repositories.JobMatchRepository
}

func NewJobService(jobRepo repositories.JobRepository, proposalRepo repositories.ProposalRepository, profileRepo repositories.ProfileRepository, matchRepo repositories.JobMatchRepository) JobService {
	return &JobServiceImpl{
		jobRepo:      jobRepo,
		proposalRepo: proposalRepo,
		profileRepo:  profileRepo,
		matchRepo:    matchRepo,
	}
}

func (s *JobServiceImpl) Create(clientID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	status := models.JobStatusActive
	if req.Draft {
		status = models.JobStatusDraft
	}

	job := &models.Job{
		ClientID:    clientID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Skills:      req.Skills,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Duration:    req.Duration,
		Status:      status,
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if status == models.JobStatusActive {
		s.matchFreelancers(job)
	}
	return toJobResponse(job), nil
}

// matchFreelancers records digest candidates for freelancers whose
// skills overlap the job. Matching is best effort.
func (s *JobServiceImpl) matchFreelancers(job *models.Job) {
	if len(job.Skills) == 0 {
		return
	}

	profiles, _, err := s.profileRepo.SearchFreelancers(repositories.FreelancerFilter{
		Skills:   job.Skills,
		PageSize: 100,
	})
	if err != nil {
		logger.SideEffectLog("match freelancers", err, "job_id", job.ID)
		return
	}

	for i := range profiles {
		score := skillOverlap(job.Skills, profiles[i].Skills)
		if score == 0 {
			continue
		}
		match := &models.JobMatch{
			UserID: profiles[i].UserID,
			JobID:  job.ID,
			Score:  score,
		}
		if err := s.matchRepo.Save(match); err != nil {
			logger.SideEffectLog("save job match", err, "job_id", job.ID, "user_id", profiles[i].UserID)
		}
	}
}

// skillOverlap is the fraction of job skills the freelancer covers.
func skillOverlap(wanted, offered []string) float64 {
	if len(wanted) == 0 {
		return 0
	}

	have := make(map[string]bool, len(offered))
	for _, skill := range offered {
		have[strings.ToLower(skill)] = true
	}

	hits := 0
	for _, skill := range wanted {
		if have[strings.ToLower(skill)] {
			hits++
		}
	}
	return float64(hits) / float64(len(wanted))
}

func (s *JobServiceImpl) GetByID(jobID string, countView bool) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if countView {
		if err := s.jobRepo.IncrementViews(jobID); err != nil {
			logger.SideEffectLog("increment job views", err, "job_id", jobID)
		}
	}

	resp := toJobResponse(job)
	if count, err := s.proposalRepo.CountByJob(jobID); err == nil {
		resp.ProposalCount = count
	}
	return resp, nil
}

func (s *JobServiceImpl) Update(clientID, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.ownedJob(clientID, jobID)
	if err != nil {
		return nil, err
	}
	if job.IsExternal {
		return nil, apperrors.ErrInvalidOperation("jobs", "External gigs cannot be edited")
	}
	if job.Status == models.JobStatusClosed {
		return nil, apperrors.ErrInvalidStatus("jobs", "Closed jobs cannot be edited")
	}

	if req.Title != "" {
		job.Title = req.Title
	}
	if req.Description != "" {
		job.Description = req.Description
	}
	if req.Category != "" {
		job.Category = req.Category
	}
	if req.Skills != nil {
		job.Skills = req.Skills
	}
	if req.BudgetMin != nil {
		job.BudgetMin = *req.BudgetMin
	}
	if req.BudgetMax != nil {
		job.BudgetMax = *req.BudgetMax
	}
	if req.Duration != "" {
		job.Duration = req.Duration
	}
	if req.Status != "" {
		job.Status = req.Status
	}
	if job.BudgetMax < job.BudgetMin {
		return nil, apperrors.NewBadRequestError("budgetMax must not be below budgetMin")
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toJobResponse(job), nil
}

func (s *JobServiceImpl) Close(clientID, jobID string) error {
	job, err := s.ownedJob(clientID, jobID)
	if err != nil {
		return err
	}
	if job.Status == models.JobStatusClosed {
		return nil
	}
	return s.jobRepo.UpdateStatus(jobID, models.JobStatusClosed)
}

func (s *JobServiceImpl) Delete(clientID, jobID string) error {
	job, err := s.ownedJob(clientID, jobID)
	if err != nil {
		return err
	}

	count, err := s.proposalRepo.CountByJob(job.ID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if count > 0 {
		return apperrors.ErrConflict(nil, "jobs", "Jobs with proposals can only be closed, not deleted")
	}

	if err := s.matchRepo.DeleteForJob(jobID); err != nil {
		logger.SideEffectLog("delete job matches", err, "job_id", jobID)
	}
	return s.jobRepo.Delete(jobID)
}

func (s *JobServiceImpl) Search(req *dto.JobSearchRequest) (*dto.PagedResponse[dto.JobResponse], error) {
	jobs, total, err := s.jobRepo.FindWithFilter(repositories.JobFilter{
		Category:  req.Category,
		Skills:    req.Skills,
		Search:    req.Search,
		BudgetMin: req.BudgetMin,
		BudgetMax: req.BudgetMax,
		Status:    models.JobStatusActive,
		Page:      req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, *toJobResponse(&jobs[i]))
	}
	return dto.NewPagedResponse(items, total, req.Page, req.PageSize), nil
}

func (s *JobServiceImpl) ListByClient(clientID string, page, pageSize int) ([]dto.JobResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	jobs, err := s.jobRepo.FindByClient(clientID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, *toJobResponse(&jobs[i]))
	}
	return items, nil
}

func (s *JobServiceImpl) ownedJob(clientID, jobID string) (*models.Job, error) {
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
	return job, nil
}
