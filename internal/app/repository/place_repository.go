package repository

import (
	"fmt"
	"strings"

	"github.com/ekaraca/mekanbul-backend/internal/app/model"
	"github.com/ekaraca/mekanbul-backend/pkg/logger"
	"gorm.io/gorm"
)

// PlaceSortField is a whitelisted sort column for place listings
type PlaceSortField string

const (
	PlaceSortName         PlaceSortField = "name"
	PlaceSortRating       PlaceSortField = "rating"
	PlaceSortTotalReviews PlaceSortField = "total_reviews"
)

// PlaceFilter describes the place selection and ordering. All filters are
// optional and compose conjunctively; only the sort affects ordering.
type PlaceFilter struct {
	Categories    []model.PlaceCategory
	Prices        []model.PriceTier
	MinRating     *float64
	Search        string // case-insensitive substring on name
	Location      string // case-insensitive substring on location
	HasWifi       *bool
	SortBy        PlaceSortField
	SortAscending bool
}

type PlaceRepository interface {
	Create(place *model.Place) error
	BulkCreate(places []model.Place, batchSize int) error
	Update(place *model.Place) error
	Delete(id uint) error
	FindByID(id uint) (*model.Place, error)
	FindWithFilter(filter PlaceFilter) ([]model.Place, error)
	ListIDs() ([]uint, error)
}

type placeRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) Create(place *model.Place) error {
	logger.Debug("Creating place in database", map[string]interface{}{
		"name":     place.Name,
		"category": place.Category,
	})

	if err := r.db.Create(place).Error; err != nil {
		logger.Error("Failed to create place in database", err, map[string]interface{}{
			"name": place.Name,
		})
		return err
	}

	logger.Debug("Place created in database", map[string]interface{}{
		"place_id": place.ID,
		"name":     place.Name,
	})
	return nil
}

func (r *placeRepository) BulkCreate(places []model.Place, batchSize int) error {
	if len(places) == 0 {
		return nil
	}
	return r.db.CreateInBatches(places, batchSize).Error
}

func (r *placeRepository) Update(place *model.Place) error {
	logger.Debug("Updating place in database", map[string]interface{}{
		"place_id": place.ID,
		"name":     place.Name,
	})

	if err := r.db.Save(place).Error; err != nil {
		logger.Error("Failed to update place in database", err, map[string]interface{}{
			"place_id": place.ID,
		})
		return err
	}
	return nil
}

func (r *placeRepository) Delete(id uint) error {
	logger.Debug("Deleting place from database", map[string]interface{}{
		"place_id": id,
	})

	if err := r.db.Delete(&model.Place{}, id).Error; err != nil {
		logger.Error("Failed to delete place from database", err, map[string]interface{}{
			"place_id": id,
		})
		return err
	}
	return nil
}

func (r *placeRepository) FindByID(id uint) (*model.Place, error) {
	var place model.Place
	if err := r.db.First(&place, id).Error; err != nil {
		return nil, err
	}
	return &place, nil
}

// FindWithFilter returns all places matching the filter, sorted. Proximity
// filtering and pagination happen above this layer, so no limit is applied.
func (r *placeRepository) FindWithFilter(filter PlaceFilter) ([]model.Place, error) {
	logger.Debug("Finding places with filter", map[string]interface{}{
		"categories": filter.Categories,
		"prices":     filter.Prices,
		"min_rating": filter.MinRating,
		"search":     filter.Search,
		"location":   filter.Location,
		"has_wifi":   filter.HasWifi,
		"sort_by":    filter.SortBy,
		"ascending":  filter.SortAscending,
	})

	query := r.db.Model(&model.Place{})

	if len(filter.Categories) > 0 {
		query = query.Where("category IN ?", filter.Categories)
	}
	if len(filter.Prices) > 0 {
		query = query.Where("price IN ?", filter.Prices)
	}
	if filter.MinRating != nil {
		query = query.Where("rating >= ?", *filter.MinRating)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	}
	if filter.HasWifi != nil {
		query = query.Where("has_wifi = ?", *filter.HasWifi)
	}

	var places []model.Place
	if err := query.Order(orderClause(filter)).Find(&places).Error; err != nil {
		logger.Error("Failed to find places", err, nil)
		return nil, err
	}

	return places, nil
}

// ListIDs returns the IDs of all live places (used by the rating reconcile job)
func (r *placeRepository) ListIDs() ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&model.Place{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// orderClause builds the ORDER BY from the whitelisted sort field.
// id breaks ties so the ordering stays stable across requests.
func orderClause(filter PlaceFilter) string {
	column := string(PlaceSortRating)
	switch filter.SortBy {
	case PlaceSortName, PlaceSortRating, PlaceSortTotalReviews:
		column = string(filter.SortBy)
	}

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}

	return fmt.Sprintf("%s %s, id ASC", column, direction)
}
