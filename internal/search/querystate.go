package search

import (
	"net/url"
	"strconv"
	"strings"

	"propmatch/server/internal/geo"
)

// Query parameter names. The URL is the only place search state lives
// between page loads, so the names are part of the public surface and
// must stay stable.
const (
	paramType      = "type"
	paramSearch    = "q"
	paramZone      = "zone"
	paramMinPrice  = "minPrice"
	paramMaxPrice  = "maxPrice"
	paramBedrooms  = "beds"
	paramBathrooms = "baths"
	paramAmenities = "amenities"
	paramSWLat     = "swLat"
	paramSWLng     = "swLng"
	paramNELat     = "neLat"
	paramNELng     = "neLng"
)

// EncodeCriteria maps criteria to URL query values. Fields at their
// "no constraint" default are omitted so that a pristine search yields
// an empty query string.
func EncodeCriteria(c Criteria) url.Values {
	values := url.Values{}

	if c.Type != "" && c.Type != TypeAll {
		values.Set(paramType, c.Type)
	}
	if c.Search != "" {
		values.Set(paramSearch, c.Search)
	}
	if c.Zone != "" {
		values.Set(paramZone, c.Zone)
	}
	if c.MinPrice > 0 {
		values.Set(paramMinPrice, strconv.FormatInt(c.MinPrice, 10))
	}
	if c.MaxPrice > 0 {
		values.Set(paramMaxPrice, strconv.FormatInt(c.MaxPrice, 10))
	}
	if c.MinBedrooms > 0 {
		values.Set(paramBedrooms, strconv.Itoa(c.MinBedrooms))
	}
	if c.MinBathrooms > 0 {
		values.Set(paramBathrooms, strconv.Itoa(c.MinBathrooms))
	}
	if len(c.Amenities) > 0 {
		values.Set(paramAmenities, strings.Join(c.Amenities, ","))
	}
	if !c.Viewport.IsZero() {
		values.Set(paramSWLat, formatCoord(c.Viewport.SouthWestLat))
		values.Set(paramSWLng, formatCoord(c.Viewport.SouthWestLng))
		values.Set(paramNELat, formatCoord(c.Viewport.NorthEastLat))
		values.Set(paramNELng, formatCoord(c.Viewport.NorthEastLng))
	}

	return values
}

// DecodeCriteria rebuilds criteria from URL query values. Absent keys
// decode to the field default; unrecognized or malformed values are
// dropped rather than failing the whole query.
func DecodeCriteria(values url.Values) Criteria {
	c := Criteria{
		Search: values.Get(paramSearch),
		Zone:   values.Get(paramZone),
	}

	if t := values.Get(paramType); t != "" && t != TypeAll {
		c.Type = t
	}

	c.MinPrice = parseNonNegativeInt64(values.Get(paramMinPrice))
	c.MaxPrice = parseNonNegativeInt64(values.Get(paramMaxPrice))
	c.MinBedrooms = parseNonNegativeInt(values.Get(paramBedrooms))
	c.MinBathrooms = parseNonNegativeInt(values.Get(paramBathrooms))

	if raw := values.Get(paramAmenities); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				c.Amenities = append(c.Amenities, a)
			}
		}
	}

	if viewport, ok := decodeViewport(values); ok {
		c.Viewport = viewport
	}

	return c
}

// decodeViewport requires all four corners; a partial or malformed
// rectangle is ignored entirely.
func decodeViewport(values url.Values) (geo.Viewport, bool) {
	coords := [4]float64{}
	for i, key := range []string{paramSWLat, paramSWLng, paramNELat, paramNELng} {
		raw := values.Get(key)
		if raw == "" {
			return geo.Viewport{}, false
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return geo.Viewport{}, false
		}
		coords[i] = v
	}
	return geo.NewViewport(coords[0], coords[1], coords[2], coords[3]), true
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseNonNegativeInt64(raw string) int64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseNonNegativeInt(raw string) int {
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
