package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePriceBound(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected int64
	}{
		{
			name:     "Zero stays zero",
			input:    0,
			expected: 0,
		},
		{
			name:     "Abbreviated bound scales to millions",
			input:    150,
			expected: 150_000_000,
		},
		{
			name:     "Just below threshold scales",
			input:    99_999,
			expected: 99_999_000_000,
		},
		{
			name:     "At threshold used as-is",
			input:    100_000,
			expected: 100_000,
		},
		{
			name:     "Full-scale bound used as-is",
			input:    150_000_000,
			expected: 150_000_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePriceBound(tt.input))
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{
			name:     "Plain digits",
			input:    "450000000",
			expected: 450_000_000,
		},
		{
			name:     "Dot-separated with currency sign",
			input:    "$ 450.000.000",
			expected: 450_000_000,
		},
		{
			name:     "Comma-separated",
			input:    "450,000,000",
			expected: 450_000_000,
		},
		{
			name:     "No digits falls open to zero",
			input:    "consultar precio",
			expected: 0,
		},
		{
			name:     "Empty string",
			input:    "",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePrice(tt.input))
		})
	}
}

func TestCriteriaIsZero(t *testing.T) {
	assert.True(t, Criteria{}.IsZero())
	assert.False(t, Criteria{Zone: "Rionegro"}.IsZero())
	assert.False(t, Criteria{MinPrice: 1}.IsZero())
}
