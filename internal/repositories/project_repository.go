package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"connecta_backend/internal/models"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectRepository interface {
	FindByID(id string) (*models.Project, error)
	Create(project *models.Project) error
	Update(project *models.Project) error
	UpdateStatus(projectID string, status models.ProjectStatus) error
	MarkCompleted(projectID string) error
	FindByParticipant(userID string, limit, offset int) ([]models.Project, int64, error)
	CountByParticipant(userID string, statuses ...models.ProjectStatus) (int64, error)
}

type ProjectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func (r *ProjectRepositoryImpl) FindByID(id string) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Client").Preload("Freelancer").Preload("Contract").
		First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *ProjectRepositoryImpl) Update(project *models.Project) error {
	result := r.db.Model(&models.Project{}).Where("id = ?", project.ID).Updates(map[string]interface{}{
		"title":       project.Title,
		"description": project.Description,
		"budget":      project.Budget,
		"status":      project.Status,
		"milestones":  project.Milestones,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepositoryImpl) UpdateStatus(projectID string, status models.ProjectStatus) error {
	result := r.db.Model(&models.Project{}).Where("id = ?", projectID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepositoryImpl) MarkCompleted(projectID string) error {
	now := time.Now()
	result := r.db.Model(&models.Project{}).Where("id = ?", projectID).Updates(map[string]interface{}{
		"status":       models.ProjectStatusCompleted,
		"completed_at": now,
		"updated_at":   now,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepositoryImpl) FindByParticipant(userID string, limit, offset int) ([]models.Project, int64, error) {
	base := r.db.Model(&models.Project{}).
		Where("client_id = ? OR freelancer_id = ?", userID, userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := r.db.Preload("Client").Preload("Freelancer").
		Where("client_id = ? OR freelancer_id = ?", userID, userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&projects).Error
	return projects, total, err
}

func (r *ProjectRepositoryImpl) CountByParticipant(userID string, statuses ...models.ProjectStatus) (int64, error) {
	query := r.db.Model(&models.Project{}).
		Where("client_id = ? OR freelancer_id = ?", userID, userID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}
