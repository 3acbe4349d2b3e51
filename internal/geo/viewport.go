package geo

import (
	"propmatch/server/internal/models"

	"github.com/paulmach/orb"
)

// Viewport is the geographic rectangle currently visible on the map,
// expressed as its south-west and north-east corners. It is a value
// type: every pan or zoom produces a fresh Viewport, nothing mutates
// an existing one.
type Viewport struct {
	SouthWestLat float64 `json:"sw_lat"`
	SouthWestLng float64 `json:"sw_lng"`
	NorthEastLat float64 `json:"ne_lat"`
	NorthEastLng float64 `json:"ne_lng"`
}

func NewViewport(swLat, swLng, neLat, neLng float64) Viewport {
	return Viewport{
		SouthWestLat: swLat,
		SouthWestLng: swLng,
		NorthEastLat: neLat,
		NorthEastLng: neLng,
	}
}

// Bound converts the viewport to an orb bound (orb points are lng/lat).
func (v Viewport) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{v.SouthWestLng, v.SouthWestLat},
		Max: orb.Point{v.NorthEastLng, v.NorthEastLat},
	}
}

// Contains reports whether the coordinate lies inside the viewport,
// edges inclusive.
func (v Viewport) Contains(lat, lng float64) bool {
	return v.Bound().Contains(orb.Point{lng, lat})
}

// IsZero reports whether the viewport is the unset value.
func (v Viewport) IsZero() bool {
	return v == Viewport{}
}

// Visible returns the listings whose coordinates fall within the
// viewport. Listings without coordinates are never visible. Input
// order is preserved. Visible is applied to an already-filtered set;
// it narrows results, it does not replace the predicate filter.
func Visible(listings []models.Listing, v Viewport) []models.Listing {
	visible := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if !l.HasCoordinates() {
			continue
		}
		if v.Contains(*l.Latitude, *l.Longitude) {
			visible = append(visible, l)
		}
	}
	return visible
}
