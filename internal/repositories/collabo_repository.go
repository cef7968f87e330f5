package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"connecta_backend/internal/models"
)

var (
	ErrCollaboNotFound     = errors.New("collabo project not found")
	ErrCollaboRoleNotFound = errors.New("collabo role not found")
)

type CollaboRepository interface {
	FindByID(id string) (*models.CollaboProject, error)
	Create(project *models.CollaboProject) error
	Update(project *models.CollaboProject) error
	UpdateStatus(projectID string, status models.CollaboStatus) error
	Delete(projectID string) error
	FindByOwner(ownerID string, limit, offset int) ([]models.CollaboProject, int64, error)
	FindByMember(userID string, limit, offset int) ([]models.CollaboProject, int64, error)
	FindOpen(limit, offset int) ([]models.CollaboProject, int64, error)
	SetUnreadCounts(projectID string, counts map[string]interface{}) error

	// Role operations
	FindRoleByID(roleID string) (*models.CollaboRole, error)
	CreateRole(role *models.CollaboRole) error
	UpdateRole(role *models.CollaboRole) error
	AssignRole(roleID, userID string, status models.CollaboRoleStatus) error
	DeleteRole(roleID string) error
}

type CollaboRepositoryImpl struct {
	db *gorm.DB
}

func NewCollaboRepository(db *gorm.DB) CollaboRepository {
	return &CollaboRepositoryImpl{db: db}
}

func (r *CollaboRepositoryImpl) FindByID(id string) (*models.CollaboProject, error) {
	var project models.CollaboProject
	err := r.db.Preload("Roles").Preload("Roles.Assignee").Preload("Owner").
		First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollaboNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *CollaboRepositoryImpl) Create(project *models.CollaboProject) error {
	return r.db.Create(project).Error
}

func (r *CollaboRepositoryImpl) Update(project *models.CollaboProject) error {
	result := r.db.Model(&models.CollaboProject{}).Where("id = ?", project.ID).Updates(map[string]interface{}{
		"title":        project.Title,
		"description":  project.Description,
		"total_budget": project.TotalBudget,
		"status":       project.Status,
		"updated_at":   time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCollaboNotFound
	}
	return nil
}

func (r *CollaboRepositoryImpl) UpdateStatus(projectID string, status models.CollaboStatus) error {
	result := r.db.Model(&models.CollaboProject{}).Where("id = ?", projectID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCollaboNotFound
	}
	return nil
}

func (r *CollaboRepositoryImpl) Delete(projectID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collabo_project_id = ?", projectID).Delete(&models.CollaboRole{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", projectID).Delete(&models.CollaboProject{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCollaboNotFound
		}
		return nil
	})
}

func (r *CollaboRepositoryImpl) FindByOwner(ownerID string, limit, offset int) ([]models.CollaboProject, int64, error) {
	var total int64
	if err := r.db.Model(&models.CollaboProject{}).Where("owner_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.CollaboProject
	err := r.db.Preload("Roles").Where("owner_id = ?", ownerID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&projects).Error
	return projects, total, err
}

func (r *CollaboRepositoryImpl) FindByMember(userID string, limit, offset int) ([]models.CollaboProject, int64, error) {
	sub := r.db.Model(&models.CollaboRole{}).
		Select("collabo_project_id").
		Where("assignee_id = ?", userID)

	base := r.db.Model(&models.CollaboProject{}).
		Where("owner_id = ? OR id IN (?)", userID, sub)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.CollaboProject
	err := r.db.Preload("Roles").Preload("Roles.Assignee").
		Where("owner_id = ? OR id IN (?)", userID, sub).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&projects).Error
	return projects, total, err
}

func (r *CollaboRepositoryImpl) FindOpen(limit, offset int) ([]models.CollaboProject, int64, error) {
	var total int64
	if err := r.db.Model(&models.CollaboProject{}).Where("status = ?", models.CollaboStatusOpen).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.CollaboProject
	err := r.db.Preload("Roles").Where("status = ?", models.CollaboStatusOpen).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&projects).Error
	return projects, total, err
}

func (r *CollaboRepositoryImpl) SetUnreadCounts(projectID string, counts map[string]interface{}) error {
	return r.db.Model(&models.CollaboProject{}).Where("id = ?", projectID).
		Update("unread_counts", counts).Error
}

// Role operations

func (r *CollaboRepositoryImpl) FindRoleByID(roleID string) (*models.CollaboRole, error) {
	var role models.CollaboRole
	err := r.db.Preload("Assignee").First(&role, "id = ?", roleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollaboRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *CollaboRepositoryImpl) CreateRole(role *models.CollaboRole) error {
	return r.db.Create(role).Error
}

func (r *CollaboRepositoryImpl) UpdateRole(role *models.CollaboRole) error {
	result := r.db.Model(&models.CollaboRole{}).Where("id = ?", role.ID).Updates(map[string]interface{}{
		"title":       role.Title,
		"description": role.Description,
		"budget":      role.Budget,
		"skills":      role.Skills,
		"status":      role.Status,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCollaboRoleNotFound
	}
	return nil
}

func (r *CollaboRepositoryImpl) AssignRole(roleID, userID string, status models.CollaboRoleStatus) error {
	result := r.db.Model(&models.CollaboRole{}).Where("id = ?", roleID).Updates(map[string]interface{}{
		"assignee_id": userID,
		"status":      status,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCollaboRoleNotFound
	}
	return nil
}

func (r *CollaboRepositoryImpl) DeleteRole(roleID string) error {
	result := r.db.Where("id = ?", roleID).Delete(&models.CollaboRole{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCollaboRoleNotFound
	}
	return nil
}
