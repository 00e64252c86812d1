package route

import "dronetrack/internal/domain"

const (
	// boundsPadding is the fixed margin, in degrees, added around the
	// route's bounding rectangle before camera fitting.
	boundsPadding = 0.002
	// defaultZoom is used when the route collapses to a single point.
	defaultZoom = 14.0
)

// Bounds is a geographic bounding rectangle.
type Bounds struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Viewport tells a renderer how to frame the route: either a padded
// bounding rectangle, or a center point with a fixed zoom for single-point
// routes. Exactly one of Bounds/Center is set.
type Viewport struct {
	Bounds *Bounds
	Center *domain.Position
	Zoom   float64
}

// FitViewport computes the camera viewport for a set of waypoints. Pure and
// idempotent: equal input always yields an equal viewport, so callers can
// safely re-fit only on the first model of a tracking session. Returns false
// for an empty set.
func FitViewport(points []domain.Position) (Viewport, bool) {
	if len(points) == 0 {
		return Viewport{}, false
	}

	b := Bounds{
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
		MinLon: points[0].Lon, MaxLon: points[0].Lon,
	}
	for _, p := range points[1:] {
		if p.Lat < b.MinLat {
			b.MinLat = p.Lat
		}
		if p.Lat > b.MaxLat {
			b.MaxLat = p.Lat
		}
		if p.Lon < b.MinLon {
			b.MinLon = p.Lon
		}
		if p.Lon > b.MaxLon {
			b.MaxLon = p.Lon
		}
	}

	if b.MinLat == b.MaxLat && b.MinLon == b.MaxLon {
		c := domain.Position{Lat: b.MinLat, Lon: b.MinLon}
		return Viewport{Center: &c, Zoom: defaultZoom}, true
	}

	b.MinLat -= boundsPadding
	b.MinLon -= boundsPadding
	b.MaxLat += boundsPadding
	b.MaxLon += boundsPadding
	return Viewport{Bounds: &b}, true
}
