package countryexplorer

import "fmt"

// Map zoom levels used by the explorer.
const (
	WorldZoom   = 2 // initial zoom showing the whole world
	CountryZoom = 4 // zoom applied when focusing a selected country
)

// LatLng is a coordinate in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

func (ll LatLng) String() string {
	return fmt.Sprintf("(%g, %g)", ll.Lat, ll.Lng)
}

// Viewport is the map's center and zoom level.
type Viewport struct {
	Center LatLng
	Zoom   int
}

// DefaultViewport is the initial world view.
func DefaultViewport() Viewport {
	return Viewport{Center: LatLng{Lat: 20, Lng: 0}, Zoom: WorldZoom}
}

// FocusOn returns the viewport centered on the country at country zoom.
func FocusOn(c Country) Viewport {
	return Viewport{Center: LatLng{Lat: c.Latitude, Lng: c.Longitude}, Zoom: CountryZoom}
}

func (v Viewport) String() string {
	return fmt.Sprintf("%s zoom %d", v.Center, v.Zoom)
}
