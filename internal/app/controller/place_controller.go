package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ekaraca/mekanbul-backend/internal/app/model"
	"github.com/ekaraca/mekanbul-backend/internal/app/repository"
	"github.com/ekaraca/mekanbul-backend/internal/app/service"
	apperrors "github.com/ekaraca/mekanbul-backend/internal/errors"
	"github.com/ekaraca/mekanbul-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type PlaceController struct {
	placeService    *service.PlaceService
	favoriteService *service.FavoriteService
}

func NewPlaceController(placeService *service.PlaceService, favoriteService *service.FavoriteService) *PlaceController {
	return &PlaceController{
		placeService:    placeService,
		favoriteService: favoriteService,
	}
}

// ListPlaces handles GET /api/places with filtering, sorting and pagination.
//
// Supported query parameters:
//
//	category   comma-separated categories (study,family,romantic,casual)
//	price      comma-separated price tiers (cheap,medium,expensive)
//	min_rating minimum average rating, e.g. 3.5
//	search     case-insensitive substring of the name
//	location   case-insensitive substring of the location
//	wifi       true/false
//	lat, lng, radius  proximity filter, radius in km
//	sort_by    name, rating, total_reviews; "-" prefix for descending
//	page, page_size
func (ctrl *PlaceController) ListPlaces(c *gin.Context) {
	filter, nearby, ok := parsePlaceQuery(c)
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)
	offset := (page - 1) * pageSize

	places, total, err := ctrl.placeService.ListPlaces(filter, nearby, offset, pageSize)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, newPagedResponse(c, places, total, page, pageSize))
}

// GetPlace handles GET /api/places/:id
func (ctrl *PlaceController) GetPlace(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	place, err := ctrl.placeService.GetPlace(id)
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			apperrors.NotFound(c, apperrors.PlaceNotFound, "Place not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	resp := gin.H{"place": place}
	if userID, ok := middleware.GetUserID(c); ok {
		if isFavorite, err := ctrl.favoriteService.IsFavorite(userID, id); err == nil {
			resp["is_favorite"] = isFavorite
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Categories handles GET /api/places/categories
func (ctrl *PlaceController) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": ctrl.placeService.Categories()})
}

type placeRequest struct {
	Name        string   `json:"name" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Price       string   `json:"price"`
	HasWifi     bool     `json:"has_wifi"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	ImageURL    string   `json:"image_url"`
	Description string   `json:"description"`
}

// CreatePlace handles POST /api/admin/places
func (ctrl *PlaceController) CreatePlace(c *gin.Context) {
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "name, location and category are required")
		return
	}

	place := &model.Place{
		Name:        req.Name,
		Location:    req.Location,
		Category:    model.PlaceCategory(req.Category),
		Price:       model.PriceTier(req.Price),
		HasWifi:     req.HasWifi,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}

	if err := ctrl.placeService.CreatePlace(place); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategory):
			apperrors.BadRequest(c, apperrors.PlaceInvalidCategory, "Unknown place category")
		case errors.Is(err, service.ErrInvalidPrice):
			apperrors.BadRequest(c, apperrors.PlaceInvalidPrice, "Unknown price tier")
		default:
			info := apperrors.ParseError(err, "place")
			apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"place": place})
}

// UpdatePlace handles PUT /api/admin/places/:id
func (ctrl *PlaceController) UpdatePlace(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "name, location and category are required")
		return
	}

	place, err := ctrl.placeService.UpdatePlace(id, &model.Place{
		Name:        req.Name,
		Location:    req.Location,
		Category:    model.PlaceCategory(req.Category),
		Price:       model.PriceTier(req.Price),
		HasWifi:     req.HasWifi,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlaceNotFound):
			apperrors.NotFound(c, apperrors.PlaceNotFound, "Place not found")
		case errors.Is(err, service.ErrInvalidCategory):
			apperrors.BadRequest(c, apperrors.PlaceInvalidCategory, "Unknown place category")
		case errors.Is(err, service.ErrInvalidPrice):
			apperrors.BadRequest(c, apperrors.PlaceInvalidPrice, "Unknown price tier")
		default:
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"place": place})
}

// DeletePlace handles DELETE /api/admin/places/:id
func (ctrl *PlaceController) DeletePlace(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.placeService.DeletePlace(id); err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			apperrors.NotFound(c, apperrors.PlaceNotFound, "Place not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Place deleted"})
}

// parsePlaceQuery builds the repository filter from the query string. On a
// malformed parameter it writes the 400 response itself and returns ok=false.
func parsePlaceQuery(c *gin.Context) (repository.PlaceFilter, *service.NearbyFilter, bool) {
	var filter repository.PlaceFilter

	if raw := c.Query("category"); raw != "" {
		for _, v := range strings.Split(raw, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				filter.Categories = append(filter.Categories, model.PlaceCategory(v))
			}
		}
	}

	if raw := c.Query("price"); raw != "" {
		for _, v := range strings.Split(raw, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				filter.Prices = append(filter.Prices, model.PriceTier(v))
			}
		}
	}

	if raw := c.Query("min_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidParameter, "min_rating must be a number")
			return filter, nil, false
		}
		filter.MinRating = &v
	}

	if raw := c.Query("wifi"); raw != "" {
		switch strings.ToLower(raw) {
		case "true":
			v := true
			filter.HasWifi = &v
		case "false":
			v := false
			filter.HasWifi = &v
		default:
			apperrors.BadRequest(c, apperrors.ValidationInvalidParameter, "wifi must be true or false")
			return filter, nil, false
		}
	}

	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Location = strings.TrimSpace(c.Query("location"))
	filter.SortBy, filter.SortAscending = parseSortBy(c.Query("sort_by"))

	nearby, ok := parseNearby(c)
	if !ok {
		return filter, nil, false
	}

	return filter, nearby, true
}

// parseSortBy maps the sort_by parameter to a whitelisted column and
// direction. Unknown values fall back to rating descending.
func parseSortBy(raw string) (repository.PlaceSortField, bool) {
	ascending := true
	if strings.HasPrefix(raw, "-") {
		ascending = false
		raw = raw[1:]
	}

	switch repository.PlaceSortField(raw) {
	case repository.PlaceSortName, repository.PlaceSortRating, repository.PlaceSortTotalReviews:
		return repository.PlaceSortField(raw), ascending
	default:
		return repository.PlaceSortRating, false
	}
}

func parseNearby(c *gin.Context) (*service.NearbyFilter, bool) {
	latRaw, lngRaw, radiusRaw := c.Query("lat"), c.Query("lng"), c.Query("radius")
	if latRaw == "" && lngRaw == "" && radiusRaw == "" {
		return nil, true
	}
	if latRaw == "" || lngRaw == "" || radiusRaw == "" {
		apperrors.BadRequest(c, apperrors.ValidationInvalidParameter, "lat, lng and radius must be provided together")
		return nil, false
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidParameter, "lat must be a number")
		return nil, false
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidParameter, "lng must be a number")
		return nil, false
	}
	radius, err := strconv.ParseFloat(radiusRaw, 64)
	if err != nil || radius <= 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidParameter, "radius must be a positive number")
		return nil, false
	}

	return &service.NearbyFilter{Latitude: lat, Longitude: lng, RadiusKm: radius}, true
}

// parseIDParam reads the :id path parameter; writes the 400 itself on failure
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}
