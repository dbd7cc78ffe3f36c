package model

import (
	"time"
)

// FavoritePlace is a user's bookmark of a place. The row either exists or it
// does not; the toggle endpoint flips between the two states, so rows are
// hard-deleted on toggle-off.
type FavoritePlace struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID  uint `gorm:"not null;index:idx_user_place_favorite,unique" json:"user_id"`
	PlaceID uint `gorm:"not null;index:idx_user_place_favorite,unique" json:"place_id"`

	Place Place `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}

func (FavoritePlace) TableName() string {
	return "favorite_places"
}
