package services

import (
	"encoding/json"
	"math"

	"connecta_backend/internal/models"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

const (
	BadgeRisingTalent = "rising_talent"
	BadgeTopRated     = "top_rated"

	badgeScoreFloor      = 90
	topRatedMinContracts = 5
	topRatedMinRating    = 4.5
)

type ReputationService interface {
	Recalculate(userID string) error
	GetReputation(userID string) (*dto.ReputationResponse, error)
}

type ReputationServiceImpl struct {
	userRepo     repositories.UserRepository
	contractRepo repositories.ContractRepository
	reviewRepo   repositories.ReviewRepository
}

func NewReputationService(
	userRepo repositories.UserRepository,
	contractRepo repositories.ContractRepository,
	reviewRepo repositories.ReviewRepository,
) ReputationService {
	return &ReputationServiceImpl{
		userRepo:     userRepo,
		contractRepo: contractRepo,
		reviewRepo:   reviewRepo,
	}
}

// Recalculate recomputes the freelancer's success score, average rating and
// badges from their closed contracts and reviews.
//
// A closed contract counts as a success when it completed and the client
// either left a rating of 4 or better, or no review at all. Terminated and
// disputed contracts always count against the score. With no closed
// contracts the score stays at 100.
func (s *ReputationServiceImpl) Recalculate(userID string) error {
	contracts, err := s.contractRepo.FindClosedForUser(userID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	score := 100.0
	if len(contracts) > 0 {
		successful := 0
		for i := range contracts {
			if s.contractSucceeded(&contracts[i]) {
				successful++
			}
		}
		score = math.Round(float64(successful) / float64(len(contracts)) * 100)
	}

	avg, count, err := s.reviewRepo.AverageForReviewee(userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	avg = math.Round(avg*10) / 10

	badges := badgesFor(len(contracts), score, avg)
	raw, err := json.Marshal(badges)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateReputation(userID, score, avg, int(count), raw); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ReputationServiceImpl) GetReputation(userID string) (*dto.ReputationResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	contracts, err := s.contractRepo.FindClosedForUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var badges []string
	if len(user.Badges) > 0 {
		_ = json.Unmarshal(user.Badges, &badges)
	}
	if badges == nil {
		badges = []string{}
	}

	return &dto.ReputationResponse{
		UserID:          user.ID,
		JobSuccessScore: user.JobSuccessScore,
		AverageRating:   user.AverageRating,
		TotalReviews:    user.TotalReviews,
		Badges:          badges,
		ClosedContracts: len(contracts),
	}, nil
}

func (s *ReputationServiceImpl) contractSucceeded(contract *models.Contract) bool {
	if contract.Status != models.ContractStatusCompleted {
		return false
	}

	reviews, err := s.reviewRepo.FindByProject(contract.ProjectID)
	if err != nil {
		return false
	}
	for i := range reviews {
		review := &reviews[i]
		if review.RevieweeID != contract.FreelancerID || review.ReviewerType != models.UserTypeClient {
			continue
		}
		return review.Rating >= 4
	}
	// No client review on a completed contract still counts as a success.
	return true
}

func badgesFor(closedContracts int, score, avgRating float64) []string {
	badges := []string{}
	if closedContracts > 0 && closedContracts < topRatedMinContracts && score >= badgeScoreFloor {
		badges = append(badges, BadgeRisingTalent)
	}
	if closedContracts >= topRatedMinContracts && score >= badgeScoreFloor && avgRating >= topRatedMinRating {
		badges = append(badges, BadgeTopRated)
	}
	return badges
}
