package config

import "propmatch/server/internal/geo"

// City represents a city configuration
type City struct {
	Name      string    `json:"name"`
	Center    []float64 `json:"center"`
	ZoomLevel int       `json:"zoom_level"`
	// Bounds holds the default map rectangle as swLat, swLng, neLat, neLng
	Bounds []float64 `json:"bounds"`
}

// SupportedCities is a list of cities supported by the application
var SupportedCities = []City{
	{
		Name:      "medellin",
		Center:    []float64{6.2442, -75.5812},
		ZoomLevel: 13,
		Bounds:    []float64{6.1460, -75.6500, 6.3400, -75.4900},
	},
	{
		Name:      "rionegro",
		Center:    []float64{6.1536, -75.3743},
		ZoomLevel: 13,
		Bounds:    []float64{6.0900, -75.4400, 6.2200, -75.3100},
	},
	{
		Name:      "envigado",
		Center:    []float64{6.1674, -75.5836},
		ZoomLevel: 14,
		Bounds:    []float64{6.1400, -75.6100, 6.1950, -75.5500},
	},
	// Add more cities here as needed
}

// GetCityNames returns a list of supported city names
func GetCityNames() []string {
	names := make([]string, len(SupportedCities))
	for i, city := range SupportedCities {
		names[i] = city.Name
	}
	return names
}

// GetCityByName returns a city configuration by name
func GetCityByName(name string) *City {
	for _, city := range SupportedCities {
		if city.Name == name {
			return &city
		}
	}
	return nil
}

// DefaultViewport returns the city's default map rectangle.
func (c *City) DefaultViewport() geo.Viewport {
	if len(c.Bounds) != 4 {
		return geo.Viewport{}
	}
	return geo.NewViewport(c.Bounds[0], c.Bounds[1], c.Bounds[2], c.Bounds[3])
}
