package dto

type UpdateSettingsRequest struct {
	EscrowFeePercent *float64 `json:"escrowFeePercent" validate:"omitempty,gte=0,lte=50"`
	SMTPHost         string   `json:"smtpHost" validate:"omitempty,max=255"`
	SMTPPort         *int     `json:"smtpPort" validate:"omitempty,gt=0,lte=65535"`
	SMTPUser         string   `json:"smtpUser" validate:"omitempty,max=255"`
	SMTPPassword     string   `json:"smtpPassword" validate:"omitempty,max=255"`
	SMTPFrom         string   `json:"smtpFrom" validate:"omitempty,max=255"`
	BroadcastSender  string   `json:"broadcastSender" validate:"omitempty,max=120"`
}

type SettingsResponse struct {
	EscrowFeePercent float64 `json:"escrowFeePercent"`
	SMTPHost         string  `json:"smtpHost"`
	SMTPPort         int     `json:"smtpPort"`
	SMTPUser         string  `json:"smtpUser"`
	SMTPFrom         string  `json:"smtpFrom"`
	BroadcastSender  string  `json:"broadcastSender"`
}

type BroadcastRequest struct {
	Subject string `json:"subject" validate:"required,min=2,max=200"`
	Body    string `json:"body" validate:"required,min=2"`
}
