package service

import (
	"errors"

	"github.com/ekaraca/mekanbul-backend/internal/app/model"
	"github.com/ekaraca/mekanbul-backend/internal/app/repository"
	"github.com/ekaraca/mekanbul-backend/pkg/logger"
	"github.com/ekaraca/mekanbul-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrPlaceNotFound   = errors.New("place not found")
	ErrInvalidCategory = errors.New("unknown place category")
	ErrInvalidPrice    = errors.New("unknown price tier")
)

// NearbyFilter restricts a listing to places within RadiusKm of a point.
// Places without coordinates never match.
type NearbyFilter struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

type PlaceService struct {
	placeRepo repository.PlaceRepository
}

func NewPlaceService(placeRepo repository.PlaceRepository) *PlaceService {
	return &PlaceService{placeRepo: placeRepo}
}

// ListPlaces applies the filter and sort in the database, the proximity
// filter in memory, and pagination last. Returns the page and the total
// match count.
func (s *PlaceService) ListPlaces(filter repository.PlaceFilter, nearby *NearbyFilter, offset, limit int) ([]model.Place, int64, error) {
	places, err := s.placeRepo.FindWithFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	if nearby != nil {
		places = filterByDistance(places, nearby)
	}

	total := int64(len(places))
	if offset >= len(places) {
		return []model.Place{}, total, nil
	}
	end := offset + limit
	if end > len(places) {
		end = len(places)
	}
	return places[offset:end], total, nil
}

func (s *PlaceService) GetPlace(id uint) (*model.Place, error) {
	place, err := s.placeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	return place, nil
}

// Categories lists the selectable place categories for filter UIs
func (s *PlaceService) Categories() []model.PlaceCategory {
	return model.AllCategories()
}

func (s *PlaceService) CreatePlace(place *model.Place) error {
	if !place.Category.Valid() {
		return ErrInvalidCategory
	}
	if place.Price != "" && !place.Price.Valid() {
		return ErrInvalidPrice
	}
	if place.Price == "" {
		place.Price = model.PriceMedium
	}

	if err := s.placeRepo.Create(place); err != nil {
		return err
	}

	logger.Info("Place created", map[string]interface{}{
		"place_id": place.ID,
		"name":     place.Name,
		"category": place.Category,
	})
	return nil
}

func (s *PlaceService) UpdatePlace(id uint, updated *model.Place) (*model.Place, error) {
	place, err := s.placeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	if updated.Category != "" && !updated.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	if updated.Price != "" && !updated.Price.Valid() {
		return nil, ErrInvalidPrice
	}

	if updated.Name != "" {
		place.Name = updated.Name
	}
	if updated.Location != "" {
		place.Location = updated.Location
	}
	if updated.Category != "" {
		place.Category = updated.Category
	}
	if updated.Price != "" {
		place.Price = updated.Price
	}
	if updated.Description != "" {
		place.Description = updated.Description
	}
	if updated.ImageURL != "" {
		place.ImageURL = updated.ImageURL
	}
	if updated.Latitude != nil {
		place.Latitude = updated.Latitude
	}
	if updated.Longitude != nil {
		place.Longitude = updated.Longitude
	}
	place.HasWifi = updated.HasWifi

	if err := s.placeRepo.Update(place); err != nil {
		return nil, err
	}
	return place, nil
}

func (s *PlaceService) DeletePlace(id uint) error {
	if _, err := s.placeRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaceNotFound
		}
		return err
	}
	return s.placeRepo.Delete(id)
}

func filterByDistance(places []model.Place, nearby *NearbyFilter) []model.Place {
	matched := make([]model.Place, 0, len(places))
	for _, p := range places {
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}
		d := util.Haversine(nearby.Latitude, nearby.Longitude, *p.Latitude, *p.Longitude)
		if d <= nearby.RadiusKm {
			matched = append(matched, p)
		}
	}
	return matched
}
