package search

import (
	"strings"

	"propmatch/server/internal/models"
)

// Matches reports whether a listing satisfies every constraint the
// criteria sets. Absent criteria fields never exclude a listing.
func Matches(l *models.Listing, c Criteria) bool {
	if c.Type != "" && c.Type != TypeAll && l.Type != c.Type {
		return false
	}

	if c.Search != "" {
		token := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(l.Title), token) &&
			!strings.Contains(strings.ToLower(l.Location), token) &&
			!strings.Contains(strings.ToLower(l.Type), token) {
			return false
		}
	}

	price := listingPrice(l)
	if min := NormalizePriceBound(c.MinPrice); min > 0 && price < min {
		return false
	}
	if max := NormalizePriceBound(c.MaxPrice); max > 0 && price > max {
		return false
	}

	if c.Zone != "" && !strings.Contains(strings.ToLower(l.Location), strings.ToLower(c.Zone)) {
		return false
	}

	if c.MinBedrooms > 0 && intOrZero(l.Bedrooms) < c.MinBedrooms {
		return false
	}
	if c.MinBathrooms > 0 && intOrZero(l.Bathrooms) < c.MinBathrooms {
		return false
	}

	for _, amenity := range c.Amenities {
		if !hasAmenity(l, amenity) {
			return false
		}
	}

	return true
}

// FilterAll returns the listings matching the criteria, preserving
// input order. No ranking is applied here or anywhere downstream.
func FilterAll(listings []models.Listing, c Criteria) []models.Listing {
	filtered := make([]models.Listing, 0, len(listings))
	for i := range listings {
		if Matches(&listings[i], c) {
			filtered = append(filtered, listings[i])
		}
	}
	return filtered
}

// MatchesAlert evaluates a saved alert against a listing. Alerts only
// carry type, zone and price bounds, so the remaining criteria fields
// stay open.
func MatchesAlert(l *models.Listing, a *models.Alert) bool {
	return Matches(l, Criteria{
		Type:     a.Type,
		Zone:     a.Zone,
		MinPrice: a.MinPrice,
		MaxPrice: a.MaxPrice,
	})
}

// listingPrice resolves the price used for comparisons. Imported feeds
// sometimes only carry a formatted label; fall back to parsing it when
// the numeric field is unset.
func listingPrice(l *models.Listing) int64 {
	if l.Price > 0 {
		return l.Price
	}
	return ParsePrice(l.PriceText)
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func hasAmenity(l *models.Listing, amenity string) bool {
	for _, a := range l.Amenities {
		if strings.EqualFold(a, amenity) {
			return true
		}
	}
	return false
}
