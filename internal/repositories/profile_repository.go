package repositories

import (
	"errors"

	"gorm.io/gorm"

	"connecta_backend/internal/models"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	FindByUserID(userID string) (*models.Profile, error)
	Create(profile *models.Profile) error
	Update(profile *models.Profile) error
	Upsert(profile *models.Profile) error
	SearchFreelancers(criteria FreelancerFilter) ([]models.Profile, int64, error)
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

type FreelancerFilter struct {
	Skills   []string
	Search   string
	Location string
	Page     int
	PageSize int
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) FindByUserID(userID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) Update(profile *models.Profile) error {
	result := r.db.Model(&models.Profile{}).Where("user_id = ?", profile.UserID).Updates(map[string]interface{}{
		"title":       profile.Title,
		"bio":         profile.Bio,
		"skills":      profile.Skills,
		"hourly_rate": profile.HourlyRate,
		"location":    profile.Location,
		"avatar_url":  profile.AvatarURL,
		"languages":   profile.Languages,
		"portfolio":   profile.Portfolio,
		"employment":  profile.Employment,
		"education":   profile.Education,
		"preferences": profile.Preferences,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// Upsert creates the profile on first save, updates afterwards.
func (r *ProfileRepositoryImpl) Upsert(profile *models.Profile) error {
	err := r.Update(profile)
	if errors.Is(err, ErrProfileNotFound) {
		return r.Create(profile)
	}
	return err
}

func (r *ProfileRepositoryImpl) SearchFreelancers(criteria FreelancerFilter) ([]models.Profile, int64, error) {
	query := r.db.Model(&models.Profile{}).
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.user_type = ? AND users.is_active = ?", models.UserTypeFreelancer, true)

	if len(criteria.Skills) > 0 {
		query = query.Where("profiles.skills && ?", pqArray(criteria.Skills))
	}
	if criteria.Location != "" {
		query = query.Where("profiles.location ILIKE ?", "%"+criteria.Location+"%")
	}
	if criteria.Search != "" {
		like := "%" + criteria.Search + "%"
		query = query.Where("profiles.title ILIKE ? OR profiles.bio ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var profiles []models.Profile
	err := query.Limit(pageSize).Offset((page - 1) * pageSize).Find(&profiles).Error
	return profiles, total, err
}
