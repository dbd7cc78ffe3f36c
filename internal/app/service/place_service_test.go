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

func setupPlaceTest(t *testing.T) (*gorm.DB, *PlaceService) {
	t.Helper()

	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })

	return database, NewPlaceService(repository.NewPlaceRepository(database))
}

func TestListPlacesFilter(t *testing.T) {
	database, svc := setupPlaceTest(t)

	lat := func(v float64) *float64 { return &v }
	seed := []model.Place{
		{Name: "Deep Work", Location: "Kadikoy", Category: model.CategoryStudy, Price: model.PriceCheap, HasWifi: true, Rating: 4.5, TotalReviews: 12, Latitude: lat(40.990), Longitude: lat(29.030)},
		{Name: "Mocha Nights", Location: "Besiktas", Category: model.CategoryRomantic, Price: model.PriceExpensive, HasWifi: false, Rating: 4.8, TotalReviews: 30, Latitude: lat(41.043), Longitude: lat(29.007)},
		{Name: "Playground Cafe", Location: "Uskudar", Category: model.CategoryFamily, Price: model.PriceMedium, HasWifi: true, Rating: 3.2, TotalReviews: 5},
		{Name: "Corner Brew", Location: "Kadikoy", Category: model.CategoryCasual, Price: model.PriceCheap, HasWifi: true, Rating: 2.5, TotalReviews: 2, Latitude: lat(40.992), Longitude: lat(29.025)},
	}
	require.NoError(t, database.Create(&seed).Error)

	names := func(places []model.Place) []string {
		out := make([]string, len(places))
		for i, p := range places {
			out[i] = p.Name
		}
		return out
	}

	t.Run("no filter sorts by rating descending", func(t *testing.T) {
		places, total, err := svc.ListPlaces(repository.PlaceFilter{}, nil, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Equal(t, []string{"Mocha Nights", "Deep Work", "Playground Cafe", "Corner Brew"}, names(places))
	})

	t.Run("categories combine with min_rating", func(t *testing.T) {
		min := 3.0
		filter := repository.PlaceFilter{
			Categories: []model.PlaceCategory{model.CategoryStudy, model.CategoryRomantic},
			MinRating:  &min,
		}
		places, total, err := svc.ListPlaces(filter, nil, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, []string{"Mocha Nights", "Deep Work"}, names(places))
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		places, _, err := svc.ListPlaces(repository.PlaceFilter{Search: "MOCHA"}, nil, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"Mocha Nights"}, names(places))
	})

	t.Run("location filter", func(t *testing.T) {
		places, total, err := svc.ListPlaces(repository.PlaceFilter{Location: "kadikoy"}, nil, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.ElementsMatch(t, []string{"Deep Work", "Corner Brew"}, names(places))
	})

	t.Run("price and wifi filters", func(t *testing.T) {
		wifi := true
		filter := repository.PlaceFilter{
			Prices:  []model.PriceTier{model.PriceCheap},
			HasWifi: &wifi,
		}
		places, _, err := svc.ListPlaces(filter, nil, 0, 10)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Deep Work", "Corner Brew"}, names(places))
	})

	t.Run("sort by name ascending", func(t *testing.T) {
		filter := repository.PlaceFilter{SortBy: repository.PlaceSortName, SortAscending: true}
		places, _, err := svc.ListPlaces(filter, nil, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"Corner Brew", "Deep Work", "Mocha Nights", "Playground Cafe"}, names(places))
	})

	t.Run("sort by total reviews descending", func(t *testing.T) {
		filter := repository.PlaceFilter{SortBy: repository.PlaceSortTotalReviews}
		places, _, err := svc.ListPlaces(filter, nil, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, "Mocha Nights", places[0].Name)
	})

	t.Run("pagination windows the sorted list", func(t *testing.T) {
		places, total, err := svc.ListPlaces(repository.PlaceFilter{}, nil, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Equal(t, []string{"Playground Cafe", "Corner Brew"}, names(places))
	})

	t.Run("offset past the end yields an empty page", func(t *testing.T) {
		places, total, err := svc.ListPlaces(repository.PlaceFilter{}, nil, 10, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Empty(t, places)
	})

	t.Run("nearby excludes places without coordinates", func(t *testing.T) {
		// centered on Kadikoy with a tight radius
		nearby := &NearbyFilter{Latitude: 40.991, Longitude: 29.027, RadiusKm: 2}
		places, total, err := svc.ListPlaces(repository.PlaceFilter{}, nearby, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.ElementsMatch(t, []string{"Deep Work", "Corner Brew"}, names(places))
	})
}

func TestPlaceCRUD(t *testing.T) {
	_, svc := setupPlaceTest(t)

	t.Run("create rejects unknown category", func(t *testing.T) {
		err := svc.CreatePlace(&model.Place{Name: "X", Location: "Y", Category: "arcade"})
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("create defaults price to medium", func(t *testing.T) {
		place := &model.Place{Name: "Bean There", Location: "Moda", Category: model.CategoryCasual}
		require.NoError(t, svc.CreatePlace(place))
		assert.Equal(t, model.PriceMedium, place.Price)
	})

	t.Run("update applies partial changes", func(t *testing.T) {
		place := &model.Place{Name: "Old Name", Location: "Moda", Category: model.CategoryCasual}
		require.NoError(t, svc.CreatePlace(place))

		updated, err := svc.UpdatePlace(place.ID, &model.Place{Name: "New Name"})
		require.NoError(t, err)
		assert.Equal(t, "New Name", updated.Name)
		assert.Equal(t, "Moda", updated.Location)
	})

	t.Run("update unknown place", func(t *testing.T) {
		_, err := svc.UpdatePlace(9999, &model.Place{Name: "Ghost"})
		assert.ErrorIs(t, err, ErrPlaceNotFound)
	})

	t.Run("delete then get", func(t *testing.T) {
		place := &model.Place{Name: "Short Lived", Location: "Moda", Category: model.CategoryCasual}
		require.NoError(t, svc.CreatePlace(place))
		require.NoError(t, svc.DeletePlace(place.ID))

		_, err := svc.GetPlace(place.ID)
		assert.ErrorIs(t, err, ErrPlaceNotFound)
	})
}

func TestCategories(t *testing.T) {
	_, svc := setupPlaceTest(t)
	assert.Equal(t, []model.PlaceCategory{
		model.CategoryStudy, model.CategoryFamily, model.CategoryRomantic, model.CategoryCasual,
	}, svc.Categories())
}
