// README: Common value objects shared across modules.
package types

// ID identifies a chat session.
type ID string

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// WorldCenter is the default map center when nothing better is known.
var WorldCenter = Point{Lat: 20, Lng: 0}
