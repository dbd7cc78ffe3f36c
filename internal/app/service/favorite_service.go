package service

import (
	"errors"

	"github.com/ekaraca/mekanbul-backend/internal/app/model"
	"github.com/ekaraca/mekanbul-backend/internal/app/repository"
	"github.com/ekaraca/mekanbul-backend/pkg/logger"
	"gorm.io/gorm"
)

type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	placeRepo    repository.PlaceRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, placeRepo repository.PlaceRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		placeRepo:    placeRepo,
	}
}

// Toggle flips a place in or out of the user's favorites. Returns true when
// the place was added, false when it was removed.
func (s *FavoriteService) Toggle(userID, placeID uint) (bool, error) {
	if _, err := s.placeRepo.FindByID(placeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrPlaceNotFound
		}
		return false, err
	}

	existing, err := s.favoriteRepo.FindByUserAndPlace(userID, placeID)
	if err == nil {
		if err := s.favoriteRepo.Delete(existing.ID); err != nil {
			return false, err
		}
		logger.Info("Favorite removed", map[string]interface{}{
			"user_id":  userID,
			"place_id": placeID,
		})
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	favorite := &model.FavoritePlace{UserID: userID, PlaceID: placeID}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		return false, err
	}

	logger.Info("Favorite added", map[string]interface{}{
		"user_id":  userID,
		"place_id": placeID,
	})
	return true, nil
}

func (s *FavoriteService) ListForUser(userID uint, offset, limit int) ([]model.FavoritePlace, int64, error) {
	return s.favoriteRepo.FindByUserID(userID, offset, limit)
}

// IsFavorite reports whether the user has the place in their favorites
func (s *FavoriteService) IsFavorite(userID, placeID uint) (bool, error) {
	_, err := s.favoriteRepo.FindByUserAndPlace(userID, placeID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
