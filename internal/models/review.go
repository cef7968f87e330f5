package models

type Review struct {
	BaseModel
	ReviewerID   string   `gorm:"not null;index:idx_reviews_once,unique,priority:1"`
	RevieweeID   string   `gorm:"not null;index"`
	ProjectID    *string  `gorm:"index:idx_reviews_once,unique,priority:2"`
	ReviewerType UserType `gorm:"type:varchar(20)"`
	Rating       int      `gorm:"not null"`
	Comment      string   `gorm:"type:text"`

	// Relations
	Reviewer *User `gorm:"foreignKey:ReviewerID"`
	Reviewee *User `gorm:"foreignKey:RevieweeID"`
}
