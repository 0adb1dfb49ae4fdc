// README: Map view returned to the presentation layer.
package mapview

import "travelchat/internal/types"

const (
	WorldZoom    = 2
	LocationZoom = 6
)

type Marker struct {
	Label string      `json:"label"`
	Point types.Point `json:"point"`
}

// View is everything the map canvas needs. Locations always lists every
// accumulated place, including those that could not be placed on the map.
type View struct {
	Center    types.Point `json:"center"`
	Zoom      int         `json:"zoom"`
	Markers   []Marker    `json:"markers"`
	Locations []string    `json:"locations"`
}

// WorldView is the default view with no markers.
func WorldView() View {
	return View{Center: types.WorldCenter, Zoom: WorldZoom, Markers: []Marker{}, Locations: []string{}}
}
