package models

import "time"

// Recognized listing types. Type is stored as a plain string so that
// imported feeds with unknown categories survive a round-trip through
// the store.
const (
	TypeHouse      = "House"
	TypeApartment  = "Apartment"
	TypeLot        = "Lot"
	TypeCommercial = "Commercial"
	TypeFarm       = "Farm"
)

type Listing struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title"`
	Type      string    `json:"type" gorm:"column:property_type"`
	Price     int64     `json:"price"`
	PriceText string    `json:"price_text,omitempty"`
	Location  string    `json:"location"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	Area      int       `json:"area"`
	Bedrooms  *int      `json:"bedrooms"`
	Bathrooms *int      `json:"bathrooms"`
	Amenities []string  `json:"amenities" gorm:"serializer:json"`
	CreatedAt time.Time `json:"created_at"`
}

// HasCoordinates reports whether the listing can be placed on the map.
func (l *Listing) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}
