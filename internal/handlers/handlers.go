package handlers

import (
	"connecta_backend/internal/services"
	"connecta_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler so routing and wiring stay in
// one place.
type AppHandlers struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Profiles      *ProfileHandler
	Jobs          *JobHandler
	Proposals     *ProposalHandler
	Projects      *ProjectHandler
	Contracts     *ContractHandler
	Collabo       *CollaboHandler
	Messages      *MessageHandler
	Payments      *PaymentHandler
	Reviews       *ReviewHandler
	Notifications *NotificationHandler
	Dashboard     *DashboardHandler
	Admin         *AdminHandler
	ExternalGigs  *ExternalGigHandler
}

func NewAppHandlers(v *validator.Validator, c *services.Container) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:          NewAuthHandler(base, c.Auth),
		Users:         NewUserHandler(base, c.Users, c.Reputation, c.Reviews),
		Profiles:      NewProfileHandler(base, c.Profiles),
		Jobs:          NewJobHandler(base, c.Jobs, c.Proposals),
		Proposals:     NewProposalHandler(base, c.Proposals),
		Projects:      NewProjectHandler(base, c.Projects),
		Contracts:     NewContractHandler(base, c.Contracts),
		Collabo:       NewCollaboHandler(base, c.Collabo),
		Messages:      NewMessageHandler(base, c.Messages),
		Payments:      NewPaymentHandler(base, c.Payments),
		Reviews:       NewReviewHandler(base, c.Reviews),
		Notifications: NewNotificationHandler(base, c.Notifications),
		Dashboard:     NewDashboardHandler(base, c.Dashboard),
		Admin:         NewAdminHandler(base, c.Users, c.Settings),
		ExternalGigs:  NewExternalGigHandler(base, c.ExternalGigs),
	}
}
