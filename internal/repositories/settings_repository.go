package repositories

import (
	"errors"

	"gorm.io/gorm"

	"connecta_backend/internal/models"
)

type SettingsRepository interface {
	Get() (*models.PlatformSettings, error)
	Save(settings *models.PlatformSettings) error
}

type SettingsRepositoryImpl struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &SettingsRepositoryImpl{db: db}
}

// Get returns the singleton settings row, creating defaults on first read.
func (r *SettingsRepositoryImpl) Get() (*models.PlatformSettings, error) {
	var settings models.PlatformSettings
	err := r.db.First(&settings, "key = ?", "platform").Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = models.PlatformSettings{Key: "platform", EscrowFeePercent: 10}
	if err := r.db.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepositoryImpl) Save(settings *models.PlatformSettings) error {
	settings.Key = "platform"
	if settings.ID == "" {
		existing, err := r.Get()
		if err != nil {
			return err
		}
		settings.ID = existing.ID
	}
	return r.db.Save(settings).Error
}
