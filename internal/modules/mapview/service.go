// README: Map renderer; geocodes accumulated locations into a center and marker set.
package mapview

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"travelchat/internal/maps"
	"travelchat/internal/types"
)

const defaultParallel = 4

type Service struct {
	geocoder maps.Geocoder
	parallel int
}

func NewService(geocoder maps.Geocoder, parallel int) *Service {
	if parallel <= 0 {
		parallel = defaultParallel
	}
	return &Service{geocoder: geocoder, parallel: parallel}
}

type lookup struct {
	point types.Point
	ok    bool
}

// Render centers the map on the first location (world view if that lookup
// fails) and places a marker for every location that resolves. Locations that
// do not resolve are left out of the markers without error. Nothing is cached:
// every call geocodes every location again.
func (s *Service) Render(ctx context.Context, locations []string) View {
	if len(locations) == 0 {
		return WorldView()
	}

	// Slot 0 is the center lookup; slot i+1 is locations[i].
	results := make([]lookup, len(locations)+1)
	queries := append([]string{locations[0]}, locations...)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for i, place := range queries {
		g.Go(func() error {
			p, ok := s.geocoder.Lookup(gctx, place)
			results[i] = lookup{point: p, ok: ok}
			return nil
		})
	}
	_ = g.Wait()

	view := View{
		Center:    types.WorldCenter,
		Zoom:      WorldZoom,
		Markers:   make([]Marker, 0, len(locations)),
		Locations: append([]string{}, locations...),
	}
	if results[0].ok {
		view.Center = results[0].point
		view.Zoom = LocationZoom
	}
	for i, place := range locations {
		r := results[i+1]
		if !r.ok {
			slog.Debug("location_not_mapped", "location", place)
			continue
		}
		view.Markers = append(view.Markers, Marker{Label: place, Point: r.point})
	}
	return view
}
