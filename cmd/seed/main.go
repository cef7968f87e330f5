// Seeds a local database with demo accounts and a few jobs. Development
// helper, not meant for production databases.
package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"connecta_backend/internal/auth"
	"connecta_backend/internal/config"
	"connecta_backend/internal/database"
	"connecta_backend/internal/logger"
	"connecta_backend/internal/models"
)

const demoPassword = "Password1!"

func main() {
	_ = godotenv.Load()
	config.LoadConfig()
	logger.Init("development")

	db, err := database.ConnectGorm()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	client := seedUser(db, "client@connecta.test", "Demo Client", models.UserTypeClient)
	freelancer := seedUser(db, "freelancer@connecta.test", "Demo Freelancer", models.UserTypeFreelancer)

	seedProfile(db, freelancer.ID, "Full-stack developer", []string{"go", "postgresql", "react"})
	seedJob(db, client.ID, "Marketplace API", []string{"go", "postgresql"}, 2000, 4000)
	seedJob(db, client.ID, "Mobile app polish", []string{"react native", "typescript"}, 800, 1500)

	log.Printf("seed complete, demo password is %q", demoPassword)
}

func seedUser(db *gorm.DB, email, name string, userType models.UserType) *models.User {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err == nil {
		return &user
	}

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		log.Fatalf("password hash failed: %v", err)
	}

	user = models.User{
		Email:        email,
		PasswordHash: hash,
		UserType:     userType,
		FullName:     name,
		IsActive:     true,
		IsVerified:   true,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("seed user %s failed: %v", email, err)
	}
	return &user
}

func seedProfile(db *gorm.DB, userID, title string, skills []string) {
	var existing models.Profile
	if err := db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		return
	}

	profile := models.Profile{
		UserID: userID,
		Title:  title,
		Skills: pq.StringArray(skills),
	}
	if err := db.Create(&profile).Error; err != nil {
		log.Fatalf("seed profile failed: %v", err)
	}
}

func seedJob(db *gorm.DB, clientID, title string, skills []string, budgetMin, budgetMax float64) {
	var existing models.Job
	if err := db.Where("client_id = ? AND title = ?", clientID, title).First(&existing).Error; err == nil {
		return
	}

	job := models.Job{
		ClientID:    clientID,
		Title:       title,
		Description: "Seeded demo job.",
		Category:    "development",
		Skills:      pq.StringArray(skills),
		BudgetMin:   budgetMin,
		BudgetMax:   budgetMax,
		Status:      models.JobStatusActive,
	}
	if err := db.Create(&job).Error; err != nil {
		log.Fatalf("seed job failed: %v", err)
	}
}
