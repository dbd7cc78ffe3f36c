package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringArray stores a string slice as a JSON column so it works on both
// PostgreSQL and the SQLite test database
type StringArray []string

// Value implements database/sql/driver.Valuer
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements database/sql.Scanner
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if str, isStr := value.(string); isStr {
			bytes = []byte(str)
		} else {
			return errors.New("failed to scan StringArray")
		}
	}

	return json.Unmarshal(bytes, s)
}

// Review is a single user's rated comment on a place.
// One review per (place, user) pair; the composite unique index is the
// store-level backstop for the create-time existence check. Reviews are
// hard-deleted so a removed review frees the pair for a new one.
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"` // set once at creation
	UpdatedAt time.Time `json:"updated_at"`

	PlaceID uint  `gorm:"not null;index:idx_place_user_review,unique" json:"place_id"`
	Place   Place `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
	UserID  uint  `gorm:"not null;index:idx_place_user_review,unique" json:"user_id"`
	User    User  `gorm:"foreignKey:UserID" json:"user"`

	Rating  int    `gorm:"not null" json:"rating"` // 1-5
	Comment string `gorm:"type:text;not null" json:"comment"`

	ImageURLs StringArray `gorm:"type:text" json:"image_urls,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
