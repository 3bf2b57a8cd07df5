package studio

import "context"

// Location is a device position in degrees.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Locator resolves the device location for maps-grounded chat. Lookups are
// bounded by the caller's context; a failed or slow lookup is never fatal.
type Locator interface {
	Locate(ctx context.Context) (Location, error)
}
