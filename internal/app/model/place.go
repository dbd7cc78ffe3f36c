package model

import (
	"time"

	"gorm.io/gorm"
)

// PlaceCategory is the fixed venue category set
type PlaceCategory string

const (
	CategoryStudy    PlaceCategory = "study"    // study café
	CategoryFamily   PlaceCategory = "family"   // family café
	CategoryRomantic PlaceCategory = "romantic" // romantic venue
	CategoryCasual   PlaceCategory = "casual"   // everyday café
)

// AllCategories returns the fixed category set in display order
func AllCategories() []PlaceCategory {
	return []PlaceCategory{CategoryStudy, CategoryFamily, CategoryRomantic, CategoryCasual}
}

// Valid reports whether c is one of the known categories
func (c PlaceCategory) Valid() bool {
	switch c {
	case CategoryStudy, CategoryFamily, CategoryRomantic, CategoryCasual:
		return true
	}
	return false
}

// PriceTier is the venue price band
type PriceTier string

const (
	PriceCheap     PriceTier = "cheap"
	PriceMedium    PriceTier = "medium"
	PriceExpensive PriceTier = "expensive"
)

// Valid reports whether p is one of the known price tiers
func (p PriceTier) Valid() bool {
	switch p {
	case PriceCheap, PriceMedium, PriceExpensive:
		return true
	}
	return false
}

type Place struct {
	ID          uint          `gorm:"primarykey" json:"id"`
	Name        string        `gorm:"not null;index" json:"name"`
	Location    string        `gorm:"not null" json:"location"` // free-text address/district
	Category    PlaceCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Price       PriceTier     `gorm:"type:varchar(20);not null;default:'medium'" json:"price"`
	HasWifi     bool          `gorm:"default:false" json:"has_wifi"`
	Latitude    *float64      `gorm:"type:decimal(10,8)" json:"latitude"`  // WGS84, optional
	Longitude   *float64      `gorm:"type:decimal(11,8)" json:"longitude"` // WGS84, optional
	ImageURL    string        `json:"image_url"`
	Description string        `gorm:"type:text" json:"description"`

	// Denormalized review aggregate. Written only by the rating recompute
	// inside review mutations; handlers must never set these directly.
	Rating       float64 `gorm:"default:0" json:"rating"`
	TotalReviews int     `gorm:"default:0" json:"total_reviews"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Place) TableName() string {
	return "places"
}
