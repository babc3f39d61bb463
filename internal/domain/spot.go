package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Spot is a catalog entry for a bookable tourist destination. The catalog is
// read-mostly; MaxCapacity is descriptive metadata and is not enforced.
type Spot struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string                      `json:"title" gorm:"not null"`
	Description string                      `json:"description" gorm:"not null"`
	Location    string                      `json:"location" gorm:"not null"`
	Category    string                      `json:"category" gorm:"index;not null"`
	Price       float64                     `json:"price" gorm:"not null"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Amenities   datatypes.JSONSlice[string] `json:"amenities,omitempty"`
	Tags        datatypes.JSONSlice[string] `json:"tags,omitempty"`
	Duration    string                      `json:"duration,omitempty"`
	MaxCapacity int                         `json:"maxCapacity,omitempty"`
	Featured    bool                        `json:"featured"`
	IsActive    bool                        `json:"isActive" gorm:"not null;default:true"`
	CreatedBy   *uuid.UUID                  `json:"createdBy,omitempty" gorm:"type:uuid"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

// SpotCategories lists the recognized catalog categories.
var SpotCategories = []string{
	"Beach", "Adventure", "Nature", "Cultural", "Historical",
	"Island", "Mountain", "City", "Resort", "Park",
}
