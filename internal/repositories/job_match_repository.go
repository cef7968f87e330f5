package repositories

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"connecta_backend/internal/models"
)

type JobMatchRepository interface {
	Save(match *models.JobMatch) error
	FindUndelivered(since time.Time) ([]models.JobMatch, error)
	MarkDelivered(ids []string) error
	DeleteForJob(jobID string) error
}

type JobMatchRepositoryImpl struct {
	db *gorm.DB
}

func NewJobMatchRepository(db *gorm.DB) JobMatchRepository {
	return &JobMatchRepositoryImpl{db: db}
}

// Save upserts on the (user, job) pair so a rematch refreshes the score.
func (r *JobMatchRepositoryImpl) Save(match *models.JobMatch) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "job_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(match).Error
}

func (r *JobMatchRepositoryImpl) FindUndelivered(since time.Time) ([]models.JobMatch, error) {
	var matches []models.JobMatch
	err := r.db.Preload("Job").
		Where("delivered = ? AND created_at >= ?", false, since).
		Order("user_id, score DESC").
		Find(&matches).Error
	return matches, err
}

func (r *JobMatchRepositoryImpl) MarkDelivered(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.JobMatch{}).Where("id IN ?", ids).
		Update("delivered", true).Error
}

func (r *JobMatchRepositoryImpl) DeleteForJob(jobID string) error {
	return r.db.Where("job_id = ?", jobID).Delete(&models.JobMatch{}).Error
}
