package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ekaraca/mekanbul-backend/internal/app/model"
	"github.com/ekaraca/mekanbul-backend/internal/app/repository"
	"github.com/ekaraca/mekanbul-backend/internal/app/service"
	"github.com/ekaraca/mekanbul-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPlaceRoutes(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })

	placeRepo := repository.NewPlaceRepository(database)
	favoriteRepo := repository.NewFavoriteRepository(database)
	ctrl := NewPlaceController(
		service.NewPlaceService(placeRepo),
		service.NewFavoriteService(favoriteRepo, placeRepo),
	)

	seed := []model.Place{
		{Name: "Deep Work", Location: "Kadikoy", Category: model.CategoryStudy, Price: model.PriceCheap, HasWifi: true, Rating: 4.5, TotalReviews: 12},
		{Name: "Mocha Nights", Location: "Besiktas", Category: model.CategoryRomantic, Price: model.PriceExpensive, Rating: 4.8, TotalReviews: 30},
		{Name: "Corner Brew", Location: "Kadikoy", Category: model.CategoryCasual, Price: model.PriceCheap, HasWifi: true, Rating: 2.5, TotalReviews: 2},
	}
	require.NoError(t, database.Create(&seed).Error)

	r := gin.New()
	r.GET("/api/places", ctrl.ListPlaces)
	r.GET("/api/places/categories", ctrl.Categories)
	r.GET("/api/places/:id", ctrl.GetPlace)
	return r
}

func getJSON(t *testing.T, r *gin.Engine, path string) (int, map[string]json.RawMessage) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestListPlacesEndpoint(t *testing.T) {
	r := setupPlaceRoutes(t)

	t.Run("returns the pagination envelope", func(t *testing.T) {
		code, body := getJSON(t, r, "/api/places?page_size=2")
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "results")
		assert.Contains(t, body, "next")
		assert.Contains(t, body, "previous")
		assert.JSONEq(t, "3", string(body["count"]))
		assert.JSONEq(t, "null", string(body["previous"]))
		assert.NotEqual(t, "null", string(body["next"]))
	})

	t.Run("non-numeric min_rating is a 400", func(t *testing.T) {
		code, body := getJSON(t, r, "/api/places?min_rating=abc")
		assert.Equal(t, http.StatusBadRequest, code)
		assert.JSONEq(t, `"VALIDATION_INVALID_PARAMETER"`, string(body["error"]))
	})

	t.Run("non-boolean wifi is a 400", func(t *testing.T) {
		code, _ := getJSON(t, r, "/api/places?wifi=maybe")
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("wifi accepts only the words true and false", func(t *testing.T) {
		code, _ := getJSON(t, r, "/api/places?wifi=1")
		assert.Equal(t, http.StatusBadRequest, code)

		code, body := getJSON(t, r, "/api/places?wifi=TRUE")
		assert.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, "2", string(body["count"]))
	})

	t.Run("incomplete proximity parameters are a 400", func(t *testing.T) {
		code, _ := getJSON(t, r, "/api/places?lat=41.0")
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("filters narrow the result set", func(t *testing.T) {
		code, body := getJSON(t, r, "/api/places?category=study,romantic&min_rating=3&sort_by=-rating")
		assert.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, "2", string(body["count"]))

		var results []model.Place
		require.NoError(t, json.Unmarshal(body["results"], &results))
		require.Len(t, results, 2)
		assert.Equal(t, "Mocha Nights", results[0].Name)
		assert.Equal(t, "Deep Work", results[1].Name)
	})

	t.Run("unknown sort_by falls back to rating descending", func(t *testing.T) {
		code, body := getJSON(t, r, "/api/places?sort_by=bogus")
		assert.Equal(t, http.StatusOK, code)

		var results []model.Place
		require.NoError(t, json.Unmarshal(body["results"], &results))
		require.NotEmpty(t, results)
		assert.Equal(t, "Mocha Nights", results[0].Name)
	})
}

func TestGetPlaceEndpoint(t *testing.T) {
	r := setupPlaceRoutes(t)

	t.Run("existing place", func(t *testing.T) {
		code, body := getJSON(t, r, "/api/places/1")
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "place")
	})

	t.Run("unknown place", func(t *testing.T) {
		code, body := getJSON(t, r, "/api/places/999")
		assert.Equal(t, http.StatusNotFound, code)
		assert.JSONEq(t, `"PLACE_NOT_FOUND"`, string(body["error"]))
	})

	t.Run("non-numeric id", func(t *testing.T) {
		code, _ := getJSON(t, r, "/api/places/abc")
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestCategoriesEndpoint(t *testing.T) {
	r := setupPlaceRoutes(t)

	code, body := getJSON(t, r, "/api/places/categories")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `["study","family","romantic","casual"]`, string(body["categories"]))
}
