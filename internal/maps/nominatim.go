package maps

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"travelchat/internal/types"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder queries the OpenStreetMap Nominatim search endpoint.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NewNominatimGeocoder creates a geocoder whose requests are bounded by timeout.
// Nominatim's usage policy requires an identifying User-Agent.
func NewNominatimGeocoder(baseURL, userAgent string, timeout time.Duration) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = defaultNominatimURL
	}
	return &NominatimGeocoder{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

func (g *NominatimGeocoder) Lookup(ctx context.Context, place string) (types.Point, bool) {
	place = strings.TrimSpace(place)
	if place == "" {
		return types.Point{}, false
	}

	q := url.Values{}
	q.Set("q", place)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		slog.Debug("nominatim_build_request", "place", place, "error", err)
		return types.Point{}, false
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		slog.Debug("nominatim_request_failed", "place", place, "error", err)
		return types.Point{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("nominatim_bad_status", "place", place, "status", resp.StatusCode)
		return types.Point{}, false
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		slog.Debug("nominatim_decode_failed", "place", place, "error", err)
		return types.Point{}, false
	}
	if len(results) == 0 {
		return types.Point{}, false
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return types.Point{}, false
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return types.Point{}, false
	}
	return types.Point{Lat: lat, Lng: lng}, true
}

var _ Geocoder = (*NominatimGeocoder)(nil)
