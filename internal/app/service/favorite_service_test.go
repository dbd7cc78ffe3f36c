package service

import (
	"testing"

	"github.com/ekaraca/mekanbul-backend/internal/app/repository"
	"github.com/ekaraca/mekanbul-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupFavoriteTest(t *testing.T) (*gorm.DB, *FavoriteService) {
	t.Helper()

	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })

	svc := NewFavoriteService(
		repository.NewFavoriteRepository(database),
		repository.NewPlaceRepository(database),
	)
	return database, svc
}

func TestToggleFavorite(t *testing.T) {
	database, svc := setupFavoriteTest(t)
	place := createTestPlace(t, database, "Cozy Nook")
	alice := createTestUser(t, database, "alice@example.com")

	t.Run("first toggle adds", func(t *testing.T) {
		added, err := svc.Toggle(alice.ID, place.ID)
		require.NoError(t, err)
		assert.True(t, added)

		isFavorite, err := svc.IsFavorite(alice.ID, place.ID)
		require.NoError(t, err)
		assert.True(t, isFavorite)
	})

	t.Run("second toggle removes", func(t *testing.T) {
		added, err := svc.Toggle(alice.ID, place.ID)
		require.NoError(t, err)
		assert.False(t, added)

		isFavorite, err := svc.IsFavorite(alice.ID, place.ID)
		require.NoError(t, err)
		assert.False(t, isFavorite)
	})

	t.Run("third toggle adds again", func(t *testing.T) {
		added, err := svc.Toggle(alice.ID, place.ID)
		require.NoError(t, err)
		assert.True(t, added)
	})

	t.Run("unknown place", func(t *testing.T) {
		_, err := svc.Toggle(alice.ID, 9999)
		assert.ErrorIs(t, err, ErrPlaceNotFound)
	})
}

func TestListFavorites(t *testing.T) {
	database, svc := setupFavoriteTest(t)
	alice := createTestUser(t, database, "alice@example.com")
	bob := createTestUser(t, database, "bob@example.com")
	first := createTestPlace(t, database, "Cozy Nook")
	second := createTestPlace(t, database, "Bean There")

	_, err := svc.Toggle(alice.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(alice.ID, second.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(bob.ID, first.ID)
	require.NoError(t, err)

	favorites, total, err := svc.ListForUser(alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, favorites, 2)

	// favorites only carry the owner's rows, with the place preloaded
	for _, f := range favorites {
		assert.Equal(t, alice.ID, f.UserID)
		assert.NotEmpty(t, f.Place.Name)
	}
}
