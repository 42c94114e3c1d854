// Package geodesy provides distance, area, containment, buffering and
// clustering over geodetic points. All functions are pure.
package geodesy

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/geokit/internal/model"
)

// EarthRadiusKM is the mean Earth radius used by every calculation.
const EarthRadiusKM = 6371.0088

// metersPerDegree converts buffer radii to degrees.
const metersPerDegree = 111319.9

// DefaultSegments is the number of vertices used for a buffer when the caller
// does not specify one.
const DefaultSegments = 32

// Unit selects the distance unit.
type Unit string

const (
	Kilometers Unit = "km"
	Meters     Unit = "m"
)

// ParseUnit validates a unit name.
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(strings.ToLower(strings.TrimSpace(s))); u {
	case Kilometers, Meters:
		return u, nil
	default:
		return "", eris.Errorf("geodesy: unknown unit %q", s)
	}
}

// ToRadians converts degrees to radians.
func ToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ToDegrees converts radians to degrees.
func ToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Distance returns the haversine great-circle distance between two points.
// Units other than Meters are treated as kilometers.
func Distance(p1, p2 model.Point, unit Unit) float64 {
	lat1 := ToRadians(p1.Lat)
	lon1 := ToRadians(p1.Lng)
	lat2 := ToRadians(p2.Lat)
	lon2 := ToRadians(p2.Lng)

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	d := EarthRadiusKM * c
	if unit == Meters {
		d *= 1000
	}
	return d
}

// PolygonArea approximates the area of a ring in square kilometers. It sums
// (lon_j - lon_i) * cos((lat_i + lat_j) / 2) over every edge, wrapping from
// the last vertex to the first, and scales |sum| by R²/2. The approximation
// is only meaningful for small extents. Rings with fewer than three points
// have zero area.
func PolygonArea(ring model.Ring) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}

	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		xi := ToRadians(ring[i].Lng)
		yi := ToRadians(ring[i].Lat)
		xj := ToRadians(ring[j].Lng)
		yj := ToRadians(ring[j].Lat)

		sum += (xj - xi) * math.Cos((yi+yj)/2)
	}

	return math.Abs(sum) * EarthRadiusKM * EarthRadiusKM / 2
}

// PointInPolygon reports whether p lies inside ring using even-odd ray
// casting. Edge comparisons are half-open so shared vertices are counted once.
func PointInPolygon(p model.Point, ring model.Ring) bool {
	x, y := p.Lng, p.Lat
	inside := false

	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := ring[i].Lng, ring[i].Lat
		xj, yj := ring[j].Lng, ring[j].Lat

		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}

	return inside
}

// CreateBuffer approximates a circle of radiusMeters around center in degree
// space. The latitude offset is divided by cos(center latitude). The returned
// ring is closed and has segments+1 points; segments <= 0 uses
// DefaultSegments.
func CreateBuffer(center model.Point, radiusMeters float64, segments int) model.Ring {
	if segments <= 0 {
		segments = DefaultSegments
	}

	radiusDeg := radiusMeters / metersPerDegree
	latScale := math.Cos(ToRadians(center.Lat))

	ring := make(model.Ring, 0, segments+1)
	for i := 0; i < segments; i++ {
		angle := float64(i) / float64(segments) * 2 * math.Pi
		dx := radiusDeg * math.Cos(angle)
		dy := radiusDeg * math.Sin(angle) / latScale

		ring = append(ring, model.Point{
			Lng: center.Lng + dx,
			Lat: center.Lat + dy,
		})
	}

	return append(ring, ring[0])
}

// Centroid returns the arithmetic mean of points. An empty slice yields {0, 0}.
func Centroid(points []model.Point) model.Point {
	if len(points) == 0 {
		return model.Point{}
	}

	var sumLng, sumLat float64
	for _, p := range points {
		sumLng += p.Lng
		sumLat += p.Lat
	}

	n := float64(len(points))
	return model.Point{Lng: sumLng / n, Lat: sumLat / n}
}
