package mapview

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"travelchat/internal/maps"
	"travelchat/internal/types"
)

var known = map[string]types.Point{
	"Paris, France": {Lat: 48.8566, Lng: 2.3522},
	"Tokyo, Japan":  {Lat: 35.6762, Lng: 139.6503},
	"Lima, Peru":    {Lat: -12.0464, Lng: -77.0428},
}

// countingGeocoder resolves from known and counts calls per place.
type countingGeocoder struct {
	mu    sync.Mutex
	calls map[string]int
}

func (g *countingGeocoder) Lookup(_ context.Context, place string) (types.Point, bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = map[string]int{}
	}
	g.calls[place]++
	g.mu.Unlock()
	p, ok := known[place]
	return p, ok
}

func TestRender_Empty(t *testing.T) {
	geo := &countingGeocoder{}
	view := NewService(geo, 2).Render(context.Background(), nil)

	if diff := cmp.Diff(WorldView(), view); diff != "" {
		t.Errorf("view mismatch (-want +got):\n%s", diff)
	}
	if len(geo.calls) != 0 {
		t.Errorf("expected no lookups, got %v", geo.calls)
	}
}

func TestRender_CentersOnFirstAndMarksAll(t *testing.T) {
	geo := &countingGeocoder{}
	locs := []string{"Tokyo, Japan", "Paris, France", "Lima, Peru"}
	view := NewService(geo, 2).Render(context.Background(), locs)

	want := View{
		Center: known["Tokyo, Japan"],
		Zoom:   LocationZoom,
		Markers: []Marker{
			{Label: "Tokyo, Japan", Point: known["Tokyo, Japan"]},
			{Label: "Paris, France", Point: known["Paris, France"]},
			{Label: "Lima, Peru", Point: known["Lima, Peru"]},
		},
		Locations: locs,
	}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Errorf("view mismatch (-want +got):\n%s", diff)
	}
	// The first location is looked up once for the center and once for its marker.
	if geo.calls["Tokyo, Japan"] != 2 || geo.calls["Paris, France"] != 1 {
		t.Errorf("unexpected lookup counts %v", geo.calls)
	}
}

func TestRender_FailedLookupsAreOmitted(t *testing.T) {
	locs := []string{"Paris, France", "Atlantis, Nowhere", "Lima, Peru"}
	view := NewService(&countingGeocoder{}, 1).Render(context.Background(), locs)

	want := []Marker{
		{Label: "Paris, France", Point: known["Paris, France"]},
		{Label: "Lima, Peru", Point: known["Lima, Peru"]},
	}
	if diff := cmp.Diff(want, view.Markers); diff != "" {
		t.Errorf("markers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(locs, view.Locations); diff != "" {
		t.Errorf("textual list must keep unmapped places (-want +got):\n%s", diff)
	}
}

func TestRender_CenterFallsBackToWorld(t *testing.T) {
	locs := []string{"Atlantis, Nowhere", "Tokyo, Japan"}
	view := NewService(&countingGeocoder{}, 4).Render(context.Background(), locs)

	if view.Center != types.WorldCenter || view.Zoom != WorldZoom {
		t.Errorf("expected world center fallback, got %+v zoom %d", view.Center, view.Zoom)
	}
	if len(view.Markers) != 1 || view.Markers[0].Label != "Tokyo, Japan" {
		t.Errorf("unexpected markers %+v", view.Markers)
	}
}

func TestRender_LookupsRunConcurrently(t *testing.T) {
	var inFlight, peak atomic.Int32
	geo := maps.GeocoderFunc(func(ctx context.Context, place string) (types.Point, bool) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		return types.Point{Lat: 1, Lng: 1}, true
	})

	locs := []string{"a, b", "c, d", "e, f", "g, h", "i, j", "k, l"}
	view := NewService(geo, 3).Render(context.Background(), locs)

	if len(view.Markers) != len(locs) {
		t.Fatalf("expected %d markers, got %d", len(locs), len(view.Markers))
	}
	if p := peak.Load(); p > 3 {
		t.Errorf("parallelism limit exceeded: peak %d", p)
	}
	for i, m := range view.Markers {
		if m.Label != locs[i] {
			t.Errorf("marker %d = %q, want %q", i, m.Label, locs[i])
		}
	}
}

func TestNewService_DefaultParallel(t *testing.T) {
	if s := NewService(&countingGeocoder{}, 0); s.parallel != defaultParallel {
		t.Errorf("parallel = %d", s.parallel)
	}
}
