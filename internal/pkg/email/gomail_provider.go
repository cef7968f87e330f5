package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"connecta_backend/internal/config"
)

// SMTPSettings are resolved at send time so admin overrides from the
// settings screen apply without a restart.
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SettingsSource yields the current SMTP settings. Usually backed by the
// platform settings row with the config file as fallback.
type SettingsSource func() SMTPSettings

// GomailProvider sends mail over SMTP via gomail.
type GomailProvider struct {
	settings SettingsSource
	renderer *TemplateManager
}

func NewGomailProvider(settings SettingsSource, renderer *TemplateManager) *GomailProvider {
	if settings == nil {
		settings = ConfigSettings
	}
	return &GomailProvider{settings: settings, renderer: renderer}
}

// ConfigSettings reads SMTP settings from the static config.
func ConfigSettings() SMTPSettings {
	cfg := config.GetConfig()
	return SMTPSettings{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUsername,
		Password: cfg.Email.SMTPPassword,
		From:     cfg.Email.FromEmail,
	}
}

func (p *GomailProvider) Send(email *Email) error {
	s := p.settings()
	if s.Host == "" {
		return fmt.Errorf("smtp is not configured")
	}

	m := gomail.NewMessage()
	from := email.From
	if from == "" {
		from = s.From
	}
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
	} else {
		m.SetBody("text/plain", email.Body)
	}

	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	return d.DialAndSend(m)
}

func (p *GomailProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	if p.renderer == nil {
		return fmt.Errorf("template renderer is not configured")
	}

	htmlBody, err := p.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
}
