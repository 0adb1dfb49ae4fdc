// Package maps resolves free-form place names to coordinates.
//
// Every lookup is best effort: failures of any kind are reported as "not
// found" so callers treat absence as a normal outcome. Lookups are never
// cached or retried.
package maps

import (
	"context"
	"fmt"

	"travelchat/internal/config"
	"travelchat/internal/types"
)

// Geocoder resolves a place name to a coordinate.
type Geocoder interface {
	Lookup(ctx context.Context, place string) (types.Point, bool)
}

// GeocoderFunc adapts a plain function to Geocoder.
type GeocoderFunc func(ctx context.Context, place string) (types.Point, bool)

func (f GeocoderFunc) Lookup(ctx context.Context, place string) (types.Point, bool) {
	return f(ctx, place)
}

// NewGeocoder builds the backend selected by cfg.
func NewGeocoder(cfg config.GeocoderConfig) (Geocoder, error) {
	switch cfg.Backend {
	case config.GeocoderNominatim, "":
		return NewNominatimGeocoder(cfg.NominatimURL, cfg.UserAgent, cfg.Timeout), nil
	case config.GeocoderGoogle:
		return NewGoogleGeocoder(cfg.MapsAPIKey, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown geocoder %q", cfg.Backend)
	}
}
