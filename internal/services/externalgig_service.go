package services

import (
	"time"

	"connecta_backend/internal/config"
	"connecta_backend/internal/logger"
	"connecta_backend/internal/models"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type ExternalGigService interface {
	Upsert(req *dto.UpsertExternalGigRequest) (*dto.ExternalGigResponse, error)
	Delete(source, externalID string) error
	List(source string, page, pageSize int) (*dto.PagedResponse[dto.JobResponse], error)
	CleanupExpired() (int64, error)
}

type ExternalGigServiceImpl struct {
	jobRepo repositories.JobRepository
}

func NewExternalGigService(jobRepo repositories.JobRepository) ExternalGigService {
	return &ExternalGigServiceImpl{jobRepo: jobRepo}
}

// Upsert ingests one gig from an external board. Repeated calls with the
// same (source, externalId) refresh the stored copy.
func (s *ExternalGigServiceImpl) Upsert(req *dto.UpsertExternalGigRequest) (*dto.ExternalGigResponse, error) {
	job := &models.Job{
		ClientID:    config.GetConfig().ExternalGigs.SystemClientID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Skills:      req.Skills,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Status:      models.JobStatusActive,
		IsExternal:  true,
		Source:      req.Source,
		ExternalID:  req.ExternalID,
		Company:     req.Company,
		ApplyURL:    req.ApplyURL,
		Deadline:    req.Deadline,
	}

	stored, created, err := s.jobRepo.UpsertExternal(job)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ExternalGigResponse{
		Job:     toJobResponse(stored),
		Created: created,
	}, nil
}

func (s *ExternalGigServiceImpl) Delete(source, externalID string) error {
	if err := s.jobRepo.DeleteExternal(source, externalID); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ExternalGigServiceImpl) List(source string, page, pageSize int) (*dto.PagedResponse[dto.JobResponse], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	jobs, total, err := s.jobRepo.ListExternal(source, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, *toJobResponse(&jobs[i]))
	}
	return dto.NewPagedResponse(items, total, page, pageSize), nil
}

// CleanupExpired drops ingested gigs past their deadline. The cleanup
// worker calls this hourly.
func (s *ExternalGigServiceImpl) CleanupExpired() (int64, error) {
	deleted, err := s.jobRepo.DeleteExpiredExternal(time.Now())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		logger.Info("expired external gigs removed", "count", deleted)
	}
	return deleted, nil
}
