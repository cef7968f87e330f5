package models

// JobMatch links a user to a job picked up by the matching pass. Digest
// workers group undelivered rows per user.
type JobMatch struct {
	BaseModel
	UserID    string  `gorm:"not null;index:idx_job_matches_user_job,unique,priority:1"`
	JobID     string  `gorm:"not null;index:idx_job_matches_user_job,unique,priority:2"`
	Score     float64 `gorm:"default:0"`
	Delivered bool    `gorm:"default:false;index"`

	// Relations
	Job *Job `gorm:"foreignKey:JobID"`
}
