package services

import (
	"connecta_backend/internal/logger"
	"connecta_backend/internal/pkg/email"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
	"connecta_backend/pkg/apperrors"
)

type SettingsService interface {
	Get() (*dto.SettingsResponse, error)
	Update(req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
	Broadcast(req *dto.BroadcastRequest) (int, error)

	// SMTPSource feeds the mail provider with admin overrides, falling
	// back to the config file when none are set.
	SMTPSource() email.SMTPSettings
}

type SettingsServiceImpl struct {
	settingsRepo repositories.SettingsRepository
	userRepo     repositories.UserRepository
	mailer       email.Provider
}

func NewSettingsService(
	settingsRepo repositories.SettingsRepository,
	userRepo repositories.UserRepository,
	mailer email.Provider,
) SettingsService {
	return &SettingsServiceImpl{
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		mailer:       mailer,
	}
}

func (s *SettingsServiceImpl) Get() (*dto.SettingsResponse, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	// SMTP password stays server-side.
	return &dto.SettingsResponse{
		EscrowFeePercent: settings.EscrowFeePercent,
		SMTPHost:         settings.SMTPHost,
		SMTPPort:         settings.SMTPPort,
		SMTPUser:         settings.SMTPUser,
		SMTPFrom:         settings.SMTPFrom,
		BroadcastSender:  settings.BroadcastSender,
	}, nil
}

func (s *SettingsServiceImpl) Update(req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if req.EscrowFeePercent != nil {
		settings.EscrowFeePercent = *req.EscrowFeePercent
	}
	if req.SMTPHost != "" {
		settings.SMTPHost = req.SMTPHost
	}
	if req.SMTPPort != nil {
		settings.SMTPPort = *req.SMTPPort
	}
	if req.SMTPUser != "" {
		settings.SMTPUser = req.SMTPUser
	}
	if req.SMTPPassword != "" {
		settings.SMTPPassword = req.SMTPPassword
	}
	if req.SMTPFrom != "" {
		settings.SMTPFrom = req.SMTPFrom
	}
	if req.BroadcastSender != "" {
		settings.BroadcastSender = req.BroadcastSender
	}

	if err := s.settingsRepo.Save(settings); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.Get()
}

// Broadcast mails every active user. Returns how many messages went out,
// individual failures are logged and skipped.
func (s *SettingsServiceImpl) Broadcast(req *dto.BroadcastRequest) (int, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return 0, apperrors.InternalError(err)
	}

	active := true
	sent := 0
	page := 1
	for {
		users, _, err := s.userRepo.FindWithFilter(repositories.UserFilter{
			IsActive: &active,
			Page:     page,
			PageSize: 200,
		})
		if err != nil {
			return sent, apperrors.InternalError(err)
		}
		if len(users) == 0 {
			return sent, nil
		}

		for i := range users {
			user := &users[i]
			err := s.mailer.SendTemplate([]string{user.Email}, req.Subject, "broadcast", email.TemplateData{
				"Name":    user.FullName,
				"Subject": req.Subject,
				"Body":    req.Body,
				"Sender":  settings.BroadcastSender,
			})
			if err != nil {
				logger.SideEffectLog("broadcast email", err, "user_id", user.ID)
				continue
			}
			sent++
		}
		page++
	}
}

func (s *SettingsServiceImpl) SMTPSource() email.SMTPSettings {
	settings, err := s.settingsRepo.Get()
	if err != nil || settings.SMTPHost == "" {
		return email.ConfigSettings()
	}
	return email.SMTPSettings{
		Host:     settings.SMTPHost,
		Port:     settings.SMTPPort,
		Username: settings.SMTPUser,
		Password: settings.SMTPPassword,
		From:     settings.SMTPFrom,
	}
}
