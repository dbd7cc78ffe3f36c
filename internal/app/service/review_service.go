package service

import (
	"errors"

	"github.com/ekaraca/mekanbul-backend/internal/app/model"
	"github.com/ekaraca/mekanbul-backend/internal/app/repository"
	"github.com/ekaraca/mekanbul-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewForbidden     = errors.New("review belongs to another user")
	ErrReviewAlreadyExists = errors.New("user has already reviewed this place")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

// RatingBroadcaster pushes fresh place aggregates to live subscribers.
// It is optional; a nil broadcaster disables the push.
type RatingBroadcaster interface {
	BroadcastRatingUpdate(placeID uint, rating float64, totalReviews int)
}

type ReviewService struct {
	db          *gorm.DB
	reviewRepo  *repository.ReviewRepository
	placeRepo   repository.PlaceRepository
	broadcaster RatingBroadcaster
}

func NewReviewService(db *gorm.DB, reviewRepo *repository.ReviewRepository, placeRepo repository.PlaceRepository, broadcaster RatingBroadcaster) *ReviewService {
	return &ReviewService{
		db:          db,
		reviewRepo:  reviewRepo,
		placeRepo:   placeRepo,
		broadcaster: broadcaster,
	}
}

type placeAggregate struct {
	Rating float64
	Total  int
}

// recomputePlaceRating rewrites a place's stored average and count from its
// live reviews. It must run inside the same transaction as the review
// mutation so a crash between the two writes cannot leave them apart.
func (s *ReviewService) recomputePlaceRating(tx *gorm.DB, placeID uint) (placeAggregate, error) {
	var agg placeAggregate
	err := tx.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS rating, COUNT(*) AS total").
		Where("place_id = ?", placeID).
		Scan(&agg).Error
	if err != nil {
		return agg, err
	}

	err = tx.Model(&model.Place{}).
		Where("id = ?", placeID).
		Updates(map[string]interface{}{
			"rating":        agg.Rating,
			"total_reviews": agg.Total,
		}).Error
	return agg, err
}

func (s *ReviewService) CreateReview(userID, placeID uint, rating int, comment string, imageURLs []string) (*model.Review, error) {
	logger.Info("Creating review", map[string]interface{}{
		"user_id":  userID,
		"place_id": placeID,
		"rating":   rating,
	})

	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.placeRepo.FindByID(placeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	review := &model.Review{
		PlaceID:   placeID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		ImageURLs: model.StringArray(imageURLs),
	}

	var agg placeAggregate
	err := s.db.Transaction(func(tx *gorm.DB) error {
		_, err := s.reviewRepo.FindByPlaceAndUser(tx, placeID, userID)
		if err == nil {
			return ErrReviewAlreadyExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := s.reviewRepo.CreateReview(tx, review); err != nil {
			return err
		}

		agg, err = s.recomputePlaceRating(tx, placeID)
		return err
	})
	if err != nil {
		logger.Error("Failed to create review", err, map[string]interface{}{
			"user_id":  userID,
			"place_id": placeID,
		})
		return nil, err
	}

	s.notifyRating(placeID, agg)

	logger.Info("Review created", map[string]interface{}{
		"review_id":     review.ID,
		"place_id":      placeID,
		"place_rating":  agg.Rating,
		"total_reviews": agg.Total,
	})
	return review, nil
}

// ReviewUpdate carries the fields of a partial review edit. Nil fields are
// left untouched.
type ReviewUpdate struct {
	Rating    *int
	Comment   *string
	ImageURLs *[]string
}

func (s *ReviewService) UpdateReview(reviewID, userID uint, update ReviewUpdate) (*model.Review, error) {
	if update.Rating != nil && (*update.Rating < 1 || *update.Rating > 5) {
		return nil, ErrInvalidRating
	}

	review, err := s.reviewRepo.GetReviewByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrReviewForbidden
	}

	if update.Rating != nil {
		review.Rating = *update.Rating
	}
	if update.Comment != nil {
		review.Comment = *update.Comment
	}
	if update.ImageURLs != nil {
		review.ImageURLs = model.StringArray(*update.ImageURLs)
	}

	var agg placeAggregate
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.UpdateReview(tx, review); err != nil {
			return err
		}
		agg, err = s.recomputePlaceRating(tx, review.PlaceID)
		return err
	})
	if err != nil {
		logger.Error("Failed to update review", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return nil, err
	}

	s.notifyRating(review.PlaceID, agg)
	return review, nil
}

func (s *ReviewService) DeleteReview(reviewID, userID uint) error {
	review, err := s.reviewRepo.GetReviewByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.UserID != userID {
		return ErrReviewForbidden
	}

	var agg placeAggregate
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.DeleteReview(tx, reviewID); err != nil {
			return err
		}
		agg, err = s.recomputePlaceRating(tx, review.PlaceID)
		return err
	})
	if err != nil {
		logger.Error("Failed to delete review", err, map[string]interface{}{
			"review_id": reviewID,
		})
		return err
	}

	s.notifyRating(review.PlaceID, agg)

	logger.Info("Review deleted", map[string]interface{}{
		"review_id":     reviewID,
		"place_id":      review.PlaceID,
		"place_rating":  agg.Rating,
		"total_reviews": agg.Total,
	})
	return nil
}

func (s *ReviewService) GetReviewsByPlace(placeID uint, offset, limit int) ([]model.Review, int64, error) {
	if _, err := s.placeRepo.FindByID(placeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrPlaceNotFound
		}
		return nil, 0, err
	}
	return s.reviewRepo.GetReviewsByPlaceID(placeID, offset, limit)
}

func (s *ReviewService) GetReviewsByUser(userID uint, offset, limit int) ([]model.Review, int64, error) {
	return s.reviewRepo.GetReviewsByUserID(userID, offset, limit)
}

// ReconcilePlaceRatings recomputes every place's stored aggregate. The
// nightly job runs it to heal any drift left by racing review writers.
func (s *ReviewService) ReconcilePlaceRatings() error {
	ids, err := s.placeRepo.ListIDs()
	if err != nil {
		return err
	}

	var failed int
	for _, id := range ids {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			_, err := s.recomputePlaceRating(tx, id)
			return err
		})
		if err != nil {
			failed++
			logger.Error("Failed to reconcile place rating", err, map[string]interface{}{
				"place_id": id,
			})
		}
	}

	logger.Info("Place rating reconcile finished", map[string]interface{}{
		"places": len(ids),
		"failed": failed,
	})
	return nil
}

func (s *ReviewService) notifyRating(placeID uint, agg placeAggregate) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastRatingUpdate(placeID, agg.Rating, agg.Total)
}
