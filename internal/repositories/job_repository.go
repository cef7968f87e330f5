package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"connecta_backend/internal/models"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	FindByID(id string) (*models.Job, error)
	Create(job *models.Job) error
	Update(job *models.Job) error
	UpdateStatus(jobID string, status models.JobStatus) error
	Delete(jobID string) error
	IncrementViews(jobID string) error
	FindByClient(clientID string, limit, offset int) ([]models.Job, error)
	FindWithFilter(criteria JobFilter) ([]models.Job, int64, error)

	// External gig operations
	FindExternal(source, externalID string) (*models.Job, error)
	UpsertExternal(job *models.Job) (*models.Job, bool, error)
	DeleteExternal(source, externalID string) error
	ListExternal(source string, limit, offset int) ([]models.Job, int64, error)
	DeleteExpiredExternal(now time.Time) (int64, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

type JobFilter struct {
	Category  string
	Skills    []string
	Search    string
	BudgetMin *float64
	BudgetMax *float64
	Status    models.JobStatus
	External  *bool
	Page      int
	PageSize  int
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Client").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) Update(job *models.Job) error {
	result := r.db.Model(&models.Job{}).Where("id = ?", job.ID).Updates(map[string]interface{}{
		"title":       job.Title,
		"description": job.Description,
		"category":    job.Category,
		"skills":      job.Skills,
		"budget_min":  job.BudgetMin,
		"budget_max":  job.BudgetMax,
		"duration":    job.Duration,
		"status":      job.Status,
		"deadline":    job.Deadline,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) UpdateStatus(jobID string, status models.JobStatus) error {
	result := r.db.Model(&models.Job{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(jobID string) error {
	result := r.db.Where("id = ?", jobID).Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) IncrementViews(jobID string) error {
	return r.db.Model(&models.Job{}).Where("id = ?", jobID).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *JobRepositoryImpl) FindByClient(clientID string, limit, offset int) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Where("client_id = ?", clientID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindWithFilter(criteria JobFilter) ([]models.Job, int64, error) {
	query := r.db.Model(&models.Job{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if len(criteria.Skills) > 0 {
		query = query.Where("skills && ?", pqArray(criteria.Skills))
	}
	if criteria.Search != "" {
		like := "%" + criteria.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if criteria.BudgetMin != nil {
		query = query.Where("budget_max >= ?", *criteria.BudgetMin)
	}
	if criteria.BudgetMax != nil {
		query = query.Where("budget_min <= ?", *criteria.BudgetMax)
	}
	if criteria.External != nil {
		query = query.Where("is_external = ?", *criteria.External)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(criteria.Page, criteria.PageSize)

	var jobs []models.Job
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&jobs).Error
	return jobs, total, err
}

// External gig operations

func (r *JobRepositoryImpl) FindExternal(source, externalID string) (*models.Job, error) {
	var job models.Job
	err := r.db.Where("is_external = ? AND source = ? AND external_id = ?", true, source, externalID).
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// UpsertExternal inserts a new ingested gig or refreshes the existing row
// matched by (source, external_id). Returns the stored job and whether a
// new row was created.
func (r *JobRepositoryImpl) UpsertExternal(job *models.Job) (*models.Job, bool, error) {
	existing, err := r.FindExternal(job.Source, job.ExternalID)
	if err != nil {
		if !errors.Is(err, ErrJobNotFound) {
			return nil, false, err
		}
		if err := r.db.Create(job).Error; err != nil {
			return nil, false, err
		}
		return job, true, nil
	}

	result := r.db.Model(&models.Job{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
		"title":       job.Title,
		"description": job.Description,
		"category":    job.Category,
		"skills":      job.Skills,
		"budget_min":  job.BudgetMin,
		"budget_max":  job.BudgetMax,
		"company":     job.Company,
		"apply_url":   job.ApplyURL,
		"deadline":    job.Deadline,
		"status":      models.JobStatusActive,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return nil, false, result.Error
	}

	updated, err := r.FindByID(existing.ID)
	if err != nil {
		return nil, false, err
	}
	return updated, false, nil
}

func (r *JobRepositoryImpl) DeleteExternal(source, externalID string) error {
	result := r.db.Where("is_external = ? AND source = ? AND external_id = ?", true, source, externalID).
		Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) ListExternal(source string, limit, offset int) ([]models.Job, int64, error) {
	query := r.db.Model(&models.Job{}).Where("is_external = ?", true)
	if source != "" {
		query = query.Where("source = ?", source)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) DeleteExpiredExternal(now time.Time) (int64, error) {
	result := r.db.Where("is_external = ? AND deadline IS NOT NULL AND deadline < ?", true, now).
		Delete(&models.Job{})
	return result.RowsAffected, result.Error
}
