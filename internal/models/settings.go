package models

// PlatformSettings is a single row edited by admins. Repositories always
// read and write the row with Key = "platform".
type PlatformSettings struct {
	BaseModel
	Key              string  `gorm:"uniqueIndex;default:'platform'"`
	EscrowFeePercent float64 `gorm:"default:10"`
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPassword     string
	SMTPFrom         string
	BroadcastSender  string
}
