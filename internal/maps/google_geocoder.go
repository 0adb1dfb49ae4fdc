package maps

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gmaps "googlemaps.github.io/maps"

	"travelchat/internal/types"
)

// GoogleGeocoder handles lookups through the Google Maps Geocoding API.
type GoogleGeocoder struct {
	client  *gmaps.Client
	timeout time.Duration
}

// NewGoogleGeocoder creates a GoogleGeocoder with the given API Key.
// Extra client options (e.g. gmaps.WithBaseURL) are passed through.
func NewGoogleGeocoder(apiKey string, timeout time.Duration, opts ...gmaps.ClientOption) (*GoogleGeocoder, error) {
	opts = append([]gmaps.ClientOption{gmaps.WithAPIKey(apiKey)}, opts...)
	client, err := gmaps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleGeocoder{client: client, timeout: timeout}, nil
}

func (g *GoogleGeocoder) Lookup(ctx context.Context, place string) (types.Point, bool) {
	place = strings.TrimSpace(place)
	if place == "" {
		return types.Point{}, false
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	results, err := g.client.Geocode(ctx, &gmaps.GeocodingRequest{Address: place})
	if err != nil {
		slog.Debug("google_geocode_failed", "place", place, "error", err)
		return types.Point{}, false
	}
	if len(results) == 0 {
		return types.Point{}, false
	}

	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, true
}

var _ Geocoder = (*GoogleGeocoder)(nil)
