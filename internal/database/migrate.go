package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"connecta_backend/internal/config"
	"connecta_backend/internal/logger"
	"connecta_backend/internal/models"
)

var gormDB *gorm.DB

// ConnectGorm opens the GORM connection using the DSN from config.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate migrates every model.
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Profile{},
		&models.Job{},
		&models.Proposal{},
		&models.Project{},
		&models.CollaboProject{},
		&models.CollaboRole{},
		&models.Conversation{},
		&models.Message{},
		&models.Payment{},
		&models.Transaction{},
		&models.Wallet{},
		&models.Review{},
		&models.Notification{},
		&models.Contract{},
		&models.PlatformSettings{},
		&models.JobMatch{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	logger.Info("database migration complete")
	return nil
}
