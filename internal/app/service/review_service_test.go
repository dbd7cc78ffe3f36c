package service

import (
	"testing"

	"github.com/ekaraca/mekanbul-backend/internal/app/model"
	"github.com/ekaraca/mekanbul-backend/internal/app/repository"
	"github.com/ekaraca/mekanbul-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type capturedUpdate struct {
	PlaceID      uint
	Rating       float64
	TotalReviews int
}

type fakeBroadcaster struct {
	updates []capturedUpdate
}

func (f *fakeBroadcaster) BroadcastRatingUpdate(placeID uint, rating float64, totalReviews int) {
	f.updates = append(f.updates, capturedUpdate{placeID, rating, totalReviews})
}

func setupReviewTest(t *testing.T) (*gorm.DB, *ReviewService, *fakeBroadcaster) {
	t.Helper()

	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })

	broadcaster := &fakeBroadcaster{}
	svc := NewReviewService(
		database,
		repository.NewReviewRepository(database),
		repository.NewPlaceRepository(database),
		broadcaster,
	)
	return database, svc, broadcaster
}

func createTestUser(t *testing.T, database *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, PasswordHash: "hash", Name: "Test User", Role: model.RoleUser}
	require.NoError(t, database.Create(user).Error)
	return user
}

func createTestPlace(t *testing.T, database *gorm.DB, name string) *model.Place {
	t.Helper()
	place := &model.Place{
		Name:     name,
		Location: "Kadikoy",
		Category: model.CategoryStudy,
		Price:    model.PriceMedium,
	}
	require.NoError(t, database.Create(place).Error)
	return place
}

func placeAggregateOf(t *testing.T, database *gorm.DB, placeID uint) (float64, int) {
	t.Helper()
	var place model.Place
	require.NoError(t, database.First(&place, placeID).Error)
	return place.Rating, place.TotalReviews
}

func TestCreateReviewUpdatesAggregate(t *testing.T) {
	database, svc, broadcaster := setupReviewTest(t)
	place := createTestPlace(t, database, "Study Corner")
	alice := createTestUser(t, database, "alice@example.com")
	bob := createTestUser(t, database, "bob@example.com")

	_, err := svc.CreateReview(alice.ID, place.ID, 4, "Quiet and bright", nil)
	require.NoError(t, err)

	rating, total := placeAggregateOf(t, database, place.ID)
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, 1, total)

	_, err = svc.CreateReview(bob.ID, place.ID, 2, "Too crowded at noon", nil)
	require.NoError(t, err)

	rating, total = placeAggregateOf(t, database, place.ID)
	assert.Equal(t, 3.0, rating)
	assert.Equal(t, 2, total)

	require.Len(t, broadcaster.updates, 2)
	assert.Equal(t, capturedUpdate{place.ID, 3.0, 2}, broadcaster.updates[1])
}

func TestCreateReviewValidation(t *testing.T) {
	database, svc, _ := setupReviewTest(t)
	place := createTestPlace(t, database, "Study Corner")
	alice := createTestUser(t, database, "alice@example.com")

	t.Run("rating below range", func(t *testing.T) {
		_, err := svc.CreateReview(alice.ID, place.ID, 0, "nope", nil)
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("rating above range", func(t *testing.T) {
		_, err := svc.CreateReview(alice.ID, place.ID, 6, "nope", nil)
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("unknown place", func(t *testing.T) {
		_, err := svc.CreateReview(alice.ID, 9999, 4, "where", nil)
		assert.ErrorIs(t, err, ErrPlaceNotFound)
	})

	t.Run("second review on same place", func(t *testing.T) {
		_, err := svc.CreateReview(alice.ID, place.ID, 4, "first", nil)
		require.NoError(t, err)

		_, err = svc.CreateReview(alice.ID, place.ID, 5, "second", nil)
		assert.ErrorIs(t, err, ErrReviewAlreadyExists)

		// the failed attempt must not touch the aggregate
		rating, total := placeAggregateOf(t, database, place.ID)
		assert.Equal(t, 4.0, rating)
		assert.Equal(t, 1, total)
	})
}

func TestUpdateReview(t *testing.T) {
	database, svc, _ := setupReviewTest(t)
	place := createTestPlace(t, database, "Study Corner")
	alice := createTestUser(t, database, "alice@example.com")
	bob := createTestUser(t, database, "bob@example.com")

	review, err := svc.CreateReview(alice.ID, place.ID, 2, "Meh", nil)
	require.NoError(t, err)

	intp := func(v int) *int { return &v }
	strp := func(v string) *string { return &v }

	t.Run("owner can update and aggregate follows", func(t *testing.T) {
		updated, err := svc.UpdateReview(review.ID, alice.ID, ReviewUpdate{Rating: intp(5), Comment: strp("Much better now")})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Rating)

		rating, total := placeAggregateOf(t, database, place.ID)
		assert.Equal(t, 5.0, rating)
		assert.Equal(t, 1, total)
	})

	t.Run("comment-only update keeps the rating", func(t *testing.T) {
		updated, err := svc.UpdateReview(review.ID, alice.ID, ReviewUpdate{Comment: strp("Still great")})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Rating)
		assert.Equal(t, "Still great", updated.Comment)

		rating, _ := placeAggregateOf(t, database, place.ID)
		assert.Equal(t, 5.0, rating)
	})

	t.Run("rating-only update keeps the comment", func(t *testing.T) {
		updated, err := svc.UpdateReview(review.ID, alice.ID, ReviewUpdate{Rating: intp(3)})
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Rating)
		assert.Equal(t, "Still great", updated.Comment)

		rating, _ := placeAggregateOf(t, database, place.ID)
		assert.Equal(t, 3.0, rating)
	})

	t.Run("out-of-range rating is rejected", func(t *testing.T) {
		_, err := svc.UpdateReview(review.ID, alice.ID, ReviewUpdate{Rating: intp(0)})
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		_, err := svc.UpdateReview(review.ID, bob.ID, ReviewUpdate{Rating: intp(1)})
		assert.ErrorIs(t, err, ErrReviewForbidden)
	})

	t.Run("unknown review", func(t *testing.T) {
		_, err := svc.UpdateReview(9999, alice.ID, ReviewUpdate{Rating: intp(3)})
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})
}

func TestDeleteReview(t *testing.T) {
	database, svc, _ := setupReviewTest(t)
	place := createTestPlace(t, database, "Study Corner")
	alice := createTestUser(t, database, "alice@example.com")
	bob := createTestUser(t, database, "bob@example.com")

	aliceReview, err := svc.CreateReview(alice.ID, place.ID, 4, "Nice", nil)
	require.NoError(t, err)
	_, err = svc.CreateReview(bob.ID, place.ID, 2, "Loud", nil)
	require.NoError(t, err)

	t.Run("non-owner is rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteReview(aliceReview.ID, bob.ID), ErrReviewForbidden)
	})

	t.Run("delete recomputes aggregate", func(t *testing.T) {
		require.NoError(t, svc.DeleteReview(aliceReview.ID, alice.ID))

		rating, total := placeAggregateOf(t, database, place.ID)
		assert.Equal(t, 2.0, rating)
		assert.Equal(t, 1, total)
	})

	t.Run("deleting the last review resets the aggregate", func(t *testing.T) {
		var bobReview model.Review
		require.NoError(t, database.Where("user_id = ?", bob.ID).First(&bobReview).Error)
		require.NoError(t, svc.DeleteReview(bobReview.ID, bob.ID))

		rating, total := placeAggregateOf(t, database, place.ID)
		assert.Equal(t, 0.0, rating)
		assert.Equal(t, 0, total)
	})

	t.Run("author can review again after deleting", func(t *testing.T) {
		_, err := svc.CreateReview(alice.ID, place.ID, 3, "Back again", nil)
		require.NoError(t, err)
	})
}

func TestGetReviewsByPlace(t *testing.T) {
	database, svc, _ := setupReviewTest(t)
	place := createTestPlace(t, database, "Study Corner")
	alice := createTestUser(t, database, "alice@example.com")
	bob := createTestUser(t, database, "bob@example.com")

	_, err := svc.CreateReview(alice.ID, place.ID, 4, "First", nil)
	require.NoError(t, err)
	_, err = svc.CreateReview(bob.ID, place.ID, 5, "Second", nil)
	require.NoError(t, err)

	reviews, total, err := svc.GetReviewsByPlace(place.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, reviews, 2)

	t.Run("pagination", func(t *testing.T) {
		page, total, err := svc.GetReviewsByPlace(place.ID, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, page, 1)
	})

	t.Run("unknown place", func(t *testing.T) {
		_, _, err := svc.GetReviewsByPlace(9999, 0, 10)
		assert.ErrorIs(t, err, ErrPlaceNotFound)
	})
}

func TestReconcilePlaceRatings(t *testing.T) {
	database, svc, _ := setupReviewTest(t)
	place := createTestPlace(t, database, "Study Corner")
	alice := createTestUser(t, database, "alice@example.com")

	_, err := svc.CreateReview(alice.ID, place.ID, 4, "Nice", nil)
	require.NoError(t, err)

	// simulate drifted denormalized columns
	require.NoError(t, database.Model(&model.Place{}).
		Where("id = ?", place.ID).
		Updates(map[string]interface{}{"rating": 1.0, "total_reviews": 7}).Error)

	require.NoError(t, svc.ReconcilePlaceRatings())

	rating, total := placeAggregateOf(t, database, place.ID)
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, 1, total)
}
