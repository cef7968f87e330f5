package models

type Proposal struct {
	BaseModel
	JobID        string `gorm:"not null;index:idx_proposals_job_freelancer,unique,priority:1"`
	FreelancerID string `gorm:"not null;index:idx_proposals_job_freelancer,unique,priority:2"`
	CoverLetter  string `gorm:"type:text"`
	BidAmount    float64
	Duration     string
	Status       ProposalStatus `gorm:"type:varchar(20);default:'pending';index"`

	// Relations
	Job        *Job  `gorm:"foreignKey:JobID"`
	Freelancer *User `gorm:"foreignKey:FreelancerID"`
}
