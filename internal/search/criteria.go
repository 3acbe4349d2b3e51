package search

import (
	"strconv"
	"strings"

	"propmatch/server/internal/geo"
)

// millionsThreshold separates abbreviated price bounds from full-scale
// ones. A bound below it is taken to be expressed in millions (users
// type "150" meaning 150.000.000 COP) and is scaled up; anything at or
// above it is used as-is. The rule is kept for compatibility with the
// search forms even though it misreads a genuine full price below
// 100.000 — at this market's price levels that case does not occur.
const millionsThreshold = 100_000

// TypeAll is the sentinel the UI sends when no type is selected.
const TypeAll = "all"

// Criteria is a partial predicate over listing attributes. The zero
// value matches everything; each field only constrains when set. The
// same shape backs ad-hoc searches and saved alerts.
type Criteria struct {
	Type         string
	Search       string
	Zone         string
	MinPrice     int64
	MaxPrice     int64
	MinBedrooms  int
	MinBathrooms int
	Amenities    []string
	Viewport     geo.Viewport
}

// IsZero reports whether the criteria imposes no constraint at all.
func (c Criteria) IsZero() bool {
	return c.Type == "" && c.Search == "" && c.Zone == "" &&
		c.MinPrice == 0 && c.MaxPrice == 0 &&
		c.MinBedrooms == 0 && c.MinBathrooms == 0 &&
		len(c.Amenities) == 0 && c.Viewport.IsZero()
}

// NormalizePriceBound applies the millions rule to a user-supplied
// price bound. Zero stays zero (no constraint).
func NormalizePriceBound(v int64) int64 {
	if v > 0 && v < millionsThreshold {
		return v * 1_000_000
	}
	return v
}

// ParsePrice turns a possibly formatted price string ("$ 450.000.000",
// "450,000,000") into a bare integer by stripping every non-digit
// character. Unparseable input yields 0 rather than an error so a bad
// feed row degrades to "matches any floor" instead of failing the
// whole evaluation.
func ParsePrice(raw string) int64 {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
