package resorts

import (
	"time"

	"github.com/google/uuid"
)

// Resort is a bookable property. Booking logic reads PricePerNight and
// MaxGuests and never mutates a resort.
type Resort struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	PricePerNight float64   `json:"pricePerNight"`
	Amenities     []string  `json:"amenities"`
	MaxGuests     int       `json:"maxGuests"`
	Rooms         int       `json:"rooms"`
	Rating        float64   `json:"rating"`
	Image         string    `json:"image,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ListFilter narrows the public resort listing. Zero values mean the
// criterion is not applied.
type ListFilter struct {
	Location  string
	Amenities []string
	MinRate   float64
	MaxRate   float64
}

// ResortInput carries the writable fields for create and update.
type ResortInput struct {
	Name          string
	Description   string
	Location      string
	PricePerNight float64
	Amenities     []string
	MaxGuests     int
	Rooms         int
	Image         string
}
