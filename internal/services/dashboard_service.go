package services

import (
	"context"

	"connecta_backend/internal/cache"
	"connecta_backend/internal/logger"
	"connecta_backend/internal/models"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type DashboardService interface {
	Get(ctx context.Context, userID string, userType models.UserType) (*dto.DashboardResponse, error)
	Invalidate(ctx context.Context, userID string)
}

type DashboardServiceImpl struct {
	projectRepo      repositories.ProjectRepository
	proposalRepo     repositories.ProposalRepository
	paymentRepo      repositories.PaymentRepository
	notificationRepo repositories.NotificationRepository
	messages         MessageService
	cache            *cache.Cache
}

func NewDashboardService(
	projectRepo repositories.ProjectRepository,
	proposalRepo repositories.ProposalRepository,
	paymentRepo repositories.PaymentRepository,
	notificationRepo repositories.NotificationRepository,
	messages MessageService,
	c *cache.Cache,
) DashboardService {
	return &DashboardServiceImpl{
		projectRepo:      projectRepo,
		proposalRepo:     proposalRepo,
		paymentRepo:      paymentRepo,
		notificationRepo: notificationRepo,
		messages:         messages,
		cache:            c,
	}
}

// Get aggregates the home-screen counters. Results sit in redis for a few
// minutes, writes that change them call Invalidate.
func (s *DashboardServiceImpl) Get(ctx context.Context, userID string, userType models.UserType) (*dto.DashboardResponse, error) {
	key := dashboardKey(userID)
	if s.cache != nil {
		var cached dto.DashboardResponse
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	resp := &dto.DashboardResponse{}

	active, err := s.projectRepo.CountByParticipant(userID,
		models.ProjectStatusOngoing, models.ProjectStatusInProgress)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.ActiveProjects = active

	completed, err := s.projectRepo.CountByParticipant(userID, models.ProjectStatusCompleted)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.CompletedProjects = completed

	if userType == models.UserTypeClient {
		resp.PendingProposals, err = s.proposalRepo.CountPendingForClient(userID)
	} else {
		resp.PendingProposals, err = s.proposalRepo.CountByFreelancer(userID, models.ProposalStatusPending)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	unreadMessages, err := s.messages.UnreadTotal(userID)
	if err != nil {
		return nil, err
	}
	resp.UnreadMessages = int64(unreadMessages)

	resp.UnreadNotifications, err = s.notificationRepo.CountUnread(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	wallet, err := s.paymentRepo.GetOrCreateWallet(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.WalletBalance = wallet.Balance
	resp.EscrowBalance = wallet.EscrowBalance
	resp.TotalEarned = wallet.TotalEarned
	resp.TotalSpent = wallet.TotalSpent

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp); err != nil {
			logger.SideEffectLog("cache dashboard", err, "user_id", userID)
		}
	}
	return resp, nil
}

func (s *DashboardServiceImpl) Invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, dashboardKey(userID)); err != nil {
		logger.SideEffectLog("invalidate dashboard cache", err, "user_id", userID)
	}
}

func dashboardKey(userID string) string {
	return "dashboard:" + userID
}
