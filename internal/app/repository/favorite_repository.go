package repository

import (
	"github.com/ekaraca/mekanbul-backend/internal/app/model"
	"github.com/ekaraca/mekanbul-backend/pkg/logger"
	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Create(favorite *model.FavoritePlace) error
	FindByUserID(userID uint, offset, limit int) ([]model.FavoritePlace, int64, error)
	FindByUserAndPlace(userID, placeID uint) (*model.FavoritePlace, error)
	Delete(id uint) error
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(favorite *model.FavoritePlace) error {
	logger.Debug("Creating favorite in database", map[string]interface{}{
		"user_id":  favorite.UserID,
		"place_id": favorite.PlaceID,
	})

	if err := r.db.Create(favorite).Error; err != nil {
		logger.Error("Failed to create favorite in database", err, map[string]interface{}{
			"user_id":  favorite.UserID,
			"place_id": favorite.PlaceID,
		})
		return err
	}
	return nil
}

func (r *favoriteRepository) FindByUserID(userID uint, offset, limit int) ([]model.FavoritePlace, int64, error) {
	var total int64
	if err := r.db.Model(&model.FavoritePlace{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var favorites []model.FavoritePlace
	err := r.db.Preload("Place").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&favorites).Error
	if err != nil {
		return nil, 0, err
	}

	return favorites, total, nil
}

func (r *favoriteRepository) FindByUserAndPlace(userID, placeID uint) (*model.FavoritePlace, error) {
	var favorite model.FavoritePlace
	err := r.db.Where("user_id = ? AND place_id = ?", userID, placeID).First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) Delete(id uint) error {
	logger.Debug("Deleting favorite from database", map[string]interface{}{
		"favorite_id": id,
	})
	return r.db.Delete(&model.FavoritePlace{}, id).Error
}
