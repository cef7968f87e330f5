package repositories

import (
	"errors"

	"gorm.io/gorm"

	"connecta_backend/internal/models"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists")
)

type ReviewRepository interface {
	FindByID(id string) (*models.Review, error)
	Create(review *models.Review) error
	FindByReviewee(revieweeID string, limit, offset int) ([]models.Review, int64, error)
	FindByReviewerAndProject(reviewerID string, projectID *string) (*models.Review, error)
	// AverageForReviewee aggregates client-authored reviews only, peer
	// reviews never feed reputation.
	AverageForReviewee(revieweeID string) (float64, int64, error)
	FindByProject(projectID string) ([]models.Review, error)
}

type ReviewRepositoryImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) FindByID(id string) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Reviewer").First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) Create(review *models.Review) error {
	existing, err := r.FindByReviewerAndProject(review.ReviewerID, review.ProjectID)
	if err != nil && !errors.Is(err, ErrReviewNotFound) {
		return err
	}
	if existing != nil {
		return ErrReviewAlreadyExists
	}

	return r.db.Create(review).Error
}

func (r *ReviewRepositoryImpl) FindByReviewee(revieweeID string, limit, offset int) ([]models.Review, int64, error) {
	var total int64
	if err := r.db.Model(&models.Review{}).Where("reviewee_id = ?", revieweeID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := r.db.Preload("Reviewer").Where("reviewee_id = ?", revieweeID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepositoryImpl) FindByReviewerAndProject(reviewerID string, projectID *string) (*models.Review, error) {
	query := r.db.Where("reviewer_id = ?", reviewerID)
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	} else {
		query = query.Where("project_id IS NULL")
	}

	var review models.Review
	err := query.First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) AverageForReviewee(revieweeID string) (float64, int64, error) {
	type aggregate struct {
		Avg   float64
		Count int64
	}

	var agg aggregate
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("reviewee_id = ? AND reviewer_type = ?", revieweeID, models.UserTypeClient).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}
	return agg.Avg, agg.Count, nil
}

func (r *ReviewRepositoryImpl) FindByProject(projectID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("project_id = ?", projectID).Find(&reviews).Error
	return reviews, err
}
