package services

import (
	"fmt"

	"connecta_backend/internal/logger"
	"connecta_backend/internal/models"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type ReviewService interface {
	Create(reviewerID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListForUser(revieweeID string, page, pageSize int) (*dto.PagedResponse[dto.ReviewResponse], error)
}

type ReviewServiceImpl struct {
	reviewRepo    repositories.ReviewRepository
	projectRepo   repositories.ProjectRepository
	userRepo      repositories.UserRepository
	reputation    ReputationService
	notifications NotificationService
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	reputation ReputationService,
	notifications NotificationService,
) ReviewService {
	return &ReviewServiceImpl{
		reviewRepo:    reviewRepo,
		projectRepo:   projectRepo,
		userRepo:      userRepo,
		reputation:    reputation,
		notifications: notifications,
	}
}

// Create stores a review and refreshes the reviewee's reputation. Reviews
// are tied to a shared project and each party gets one per project.
func (s *ReviewServiceImpl) Create(reviewerID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if req.RevieweeID == reviewerID {
		return nil, apperrors.ErrCannotActOnSelf
	}

	reviewer, err := s.userRepo.FindByID(reviewerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if _, err := s.userRepo.FindByID(req.RevieweeID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.ProjectID != nil {
		project, err := s.projectRepo.FindByID(*req.ProjectID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrProjectNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
		if !isProjectPair(project, reviewerID, req.RevieweeID) {
			return nil, apperrors.NewForbiddenError("Reviews are limited to project participants")
		}
		if project.Status != models.ProjectStatusCompleted && project.Status != models.ProjectStatusCancelled {
			return nil, apperrors.ErrInvalidStatus("reviews", "The project is still in progress")
		}
	}

	review := &models.Review{
		ReviewerID:   reviewerID,
		RevieweeID:   req.RevieweeID,
		ProjectID:    req.ProjectID,
		ReviewerType: reviewer.UserType,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if apperrors.Is(err, repositories.ErrReviewAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.reputation.Recalculate(req.RevieweeID); err != nil {
		logger.SideEffectLog("recalculate reputation", err, "user_id", req.RevieweeID)
	}

	s.notifications.Notify(req.RevieweeID, "review", "New review",
		fmt.Sprintf("%s rated you %d/5", reviewer.FullName, req.Rating),
		map[string]string{"relatedId": review.ID, "relatedType": "review", "actorId": reviewerID})

	review.Reviewer = reviewer
	return toReviewResponse(review), nil
}

func (s *ReviewServiceImpl) ListForUser(revieweeID string, page, pageSize int) (*dto.PagedResponse[dto.ReviewResponse], error) {
	page, pageSize = defaultPage(page, pageSize)
	reviews, total, err := s.reviewRepo.FindByReviewee(revieweeID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, *toReviewResponse(&reviews[i]))
	}
	return dto.NewPagedResponse(items, total, page, pageSize), nil
}

func isProjectPair(project *models.Project, a, b string) bool {
	return (project.ClientID == a && project.FreelancerID == b) ||
		(project.ClientID == b && project.FreelancerID == a)
}
