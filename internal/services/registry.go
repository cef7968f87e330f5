package services

import (
	"gorm.io/gorm"

	"connecta_backend/internal/cache"
	"connecta_backend/internal/imageprocessor"
	"connecta_backend/internal/pkg/email"
	"connecta_backend/internal/push"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/storage"
)

// Dependencies carries the infrastructure the services are built on.
type Dependencies struct {
	DB          *gorm.DB
	Mailer      email.Provider
	Store       storage.Storage
	Images      *imageprocessor.Processor
	Gateway     PaymentGateway
	Emitter     RealtimeEmitter
	Push        push.Provider
	Cache       *cache.Cache
	RedirectURL string
}

// Container holds every service, wired once at startup.
type Container struct {
	Auth          AuthService
	Users         UserService
	Profiles      ProfileService
	Jobs          JobService
	ExternalGigs  ExternalGigService
	Proposals     ProposalService
	Projects      ProjectService
	Contracts     ContractService
	Collabo       CollaboService
	Messages      MessageService
	Payments      PaymentService
	Reviews       ReviewService
	Reputation    ReputationService
	Notifications NotificationService
	Dashboard     DashboardService
	Settings      SettingsService
}

func NewContainer(deps Dependencies) *Container {
	if deps.Emitter == nil {
		deps.Emitter = NoopEmitter{}
	}

	userRepo := repositories.NewUserRepository(deps.DB)
	profileRepo := repositories.NewProfileRepository(deps.DB)
	jobRepo := repositories.NewJobRepository(deps.DB)
	proposalRepo := repositories.NewProposalRepository(deps.DB)
	projectRepo := repositories.NewProjectRepository(deps.DB)
	contractRepo := repositories.NewContractRepository(deps.DB)
	collaboRepo := repositories.NewCollaboRepository(deps.DB)
	conversationRepo := repositories.NewConversationRepository(deps.DB)
	paymentRepo := repositories.NewPaymentRepository(deps.DB)
	reviewRepo := repositories.NewReviewRepository(deps.DB)
	notificationRepo := repositories.NewNotificationRepository(deps.DB)
	settingsRepo := repositories.NewSettingsRepository(deps.DB)
	jobMatchRepo := repositories.NewJobMatchRepository(deps.DB)

	notifications := NewNotificationService(notificationRepo, userRepo, deps.Emitter, deps.Push)
	reputation := NewReputationService(userRepo, contractRepo, reviewRepo)
	messages := NewMessageService(conversationRepo, collaboRepo, userRepo, notifications, deps.Emitter)

	return &Container{
		Auth:          NewAuthService(userRepo, paymentRepo, deps.Mailer),
		Users:         NewUserService(userRepo),
		Profiles:      NewProfileService(profileRepo, userRepo, deps.Store, deps.Images),
		Jobs:          NewJobService(jobRepo, proposalRepo, profileRepo, jobMatchRepo),
		ExternalGigs:  NewExternalGigService(jobRepo),
		Proposals:     NewProposalService(proposalRepo, jobRepo, projectRepo, contractRepo, userRepo, notifications, deps.Mailer),
		Projects:      NewProjectService(projectRepo, contractRepo, notifications, reputation),
		Contracts:     NewContractService(contractRepo, projectRepo, notifications, reputation),
		Collabo:       NewCollaboService(collaboRepo, userRepo, notifications),
		Messages:      messages,
		Payments:      NewPaymentService(paymentRepo, userRepo, jobRepo, settingsRepo, deps.Gateway, notifications, deps.Mailer, deps.RedirectURL),
		Reviews:       NewReviewService(reviewRepo, projectRepo, userRepo, reputation, notifications),
		Reputation:    reputation,
		Notifications: notifications,
		Dashboard:     NewDashboardService(projectRepo, proposalRepo, paymentRepo, notificationRepo, messages, deps.Cache),
		Settings:      NewSettingsService(settingsRepo, userRepo, deps.Mailer),
	}
}
