package repository

import (
	"github.com/ekaraca/mekanbul-backend/internal/app/model"
	"github.com/ekaraca/mekanbul-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) CreateReview(tx *gorm.DB, review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"place_id": review.PlaceID,
		"user_id":  review.UserID,
		"rating":   review.Rating,
	})

	if err := tx.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"place_id": review.PlaceID,
			"user_id":  review.UserID,
		})
		return err
	}
	return nil
}

func (r *ReviewRepository) GetReviewByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.Preload("User").Preload("Place").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// GetReviewsByPlaceID returns one page of a place's reviews, newest first,
// plus the total count for the pagination envelope.
func (r *ReviewRepository) GetReviewsByPlaceID(placeID uint, offset, limit int) ([]model.Review, int64, error) {
	var total int64
	if err := r.db.Model(&model.Review{}).Where("place_id = ?", placeID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []model.Review
	err := r.db.Preload("User").
		Where("place_id = ?", placeID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to get reviews by place", err, map[string]interface{}{
			"place_id": placeID,
		})
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *ReviewRepository) GetReviewsByUserID(userID uint, offset, limit int) ([]model.Review, int64, error) {
	var total int64
	if err := r.db.Model(&model.Review{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []model.Review
	err := r.db.Preload("Place").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// FindByPlaceAndUser looks up a user's review of a place. A user may hold at
// most one; the composite unique index enforces this at the storage layer.
func (r *ReviewRepository) FindByPlaceAndUser(tx *gorm.DB, placeID, userID uint) (*model.Review, error) {
	var review model.Review
	err := tx.Where("place_id = ? AND user_id = ?", placeID, userID).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) UpdateReview(tx *gorm.DB, review *model.Review) error {
	logger.Debug("Updating review in database", map[string]interface{}{
		"review_id": review.ID,
	})
	return tx.Save(review).Error
}

// DeleteReview removes the row outright so the author can review the place
// again later without tripping the unique index.
func (r *ReviewRepository) DeleteReview(tx *gorm.DB, id uint) error {
	logger.Debug("Deleting review from database", map[string]interface{}{
		"review_id": id,
	})
	return tx.Delete(&model.Review{}, id).Error
}
