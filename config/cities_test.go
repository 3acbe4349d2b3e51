package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCityNames(t *testing.T) {
	names := GetCityNames()
	assert.Equal(t, len(SupportedCities), len(names))
	assert.Contains(t, names, "medellin")
	assert.Contains(t, names, "rionegro")
}

func TestGetCityByName(t *testing.T) {
	tests := []struct {
		name     string
		lookup   string
		expected bool
	}{
		{
			name:     "Known city",
			lookup:   "rionegro",
			expected: true,
		},
		{
			name:     "Unknown city",
			lookup:   "bogota",
			expected: false,
		},
		{
			name:     "Lookup is case-sensitive",
			lookup:   "Rionegro",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city := GetCityByName(tt.lookup)
			if tt.expected {
				require.NotNil(t, city)
				assert.Equal(t, tt.lookup, city.Name)
			} else {
				assert.Nil(t, city)
			}
		})
	}
}

func TestCityDefaultViewport(t *testing.T) {
	for _, city := range SupportedCities {
		t.Run(city.Name, func(t *testing.T) {
			require.Len(t, city.Center, 2)
			require.Len(t, city.Bounds, 4)

			viewport := city.DefaultViewport()
			assert.False(t, viewport.IsZero())
			// The city center must sit inside its own default viewport
			assert.True(t, viewport.Contains(city.Center[0], city.Center[1]))
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5250", cfg.Server.Port)
	assert.True(t, cfg.Matching.RenotifyOnUpdate)
	assert.Equal(t, 100, cfg.BatchProcessing.MaxBatchSize)
	assert.Equal(t, 3, cfg.BatchProcessing.MaxRetries)
}
