package model

import (
	"github.com/twpayne/go-geom"
)

// Point is a geodetic position in degrees.
type Point struct {
	Lng float64 `json:"lng" yaml:"lng"`
	Lat float64 `json:"lat" yaml:"lat"`
}

// Coord returns p as a go-geom XY coordinate.
func (p Point) Coord() geom.Coord {
	return geom.Coord{p.Lng, p.Lat}
}

// PointFromCoord converts a go-geom coordinate to a Point. Coordinates with
// fewer than two ordinates yield the zero Point.
func PointFromCoord(c geom.Coord) Point {
	if len(c) < 2 {
		return Point{}
	}
	return Point{Lng: c[0], Lat: c[1]}
}

// Ring is an ordered sequence of points. A closed ring repeats its first
// point as its last.
type Ring []Point

// Closed reports whether the ring has at least one point and ends where it starts.
func (r Ring) Closed() bool {
	return len(r) > 0 && r[0] == r[len(r)-1]
}

// Close returns r with the first point appended when r is not already closed.
// The receiver is never modified.
func (r Ring) Close() Ring {
	if len(r) == 0 || r.Closed() {
		return r
	}
	out := make(Ring, len(r), len(r)+1)
	copy(out, r)
	return append(out, r[0])
}

// Coords converts the ring to go-geom coordinates.
func (r Ring) Coords() []geom.Coord {
	coords := make([]geom.Coord, len(r))
	for i, p := range r {
		coords[i] = p.Coord()
	}
	return coords
}

// Flat returns the ring as flat XY pairs.
func (r Ring) Flat() []float64 {
	flat := make([]float64, 0, len(r)*2)
	for _, p := range r {
		flat = append(flat, p.Lng, p.Lat)
	}
	return flat
}

// RingFromCoords converts go-geom coordinates to a Ring.
func RingFromCoords(coords []geom.Coord) Ring {
	r := make(Ring, len(coords))
	for i, c := range coords {
		r[i] = PointFromCoord(c)
	}
	return r
}

// NewPolygon builds an XY polygon from rings; the first ring is the exterior.
// Open rings are closed.
func NewPolygon(rings ...Ring) *geom.Polygon {
	var flat []float64
	ends := make([]int, 0, len(rings))
	for _, r := range rings {
		flat = append(flat, r.Close().Flat()...)
		ends = append(ends, len(flat))
	}
	return geom.NewPolygonFlat(geom.XY, flat, ends)
}

// NewLineString builds an XY line string through pts.
func NewLineString(pts ...Point) *geom.LineString {
	return geom.NewLineStringFlat(geom.XY, Ring(pts).Flat())
}

// NewPoint builds an XY point.
func NewPoint(p Point) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{p.Lng, p.Lat})
}

// PolygonRings returns every ring of a polygon, exterior first.
func PolygonRings(p *geom.Polygon) []Ring {
	rings := make([]Ring, 0, p.NumLinearRings())
	for i := 0; i < p.NumLinearRings(); i++ {
		rings = append(rings, RingFromCoords(p.LinearRing(i).Coords()))
	}
	return rings
}

// GeometryType returns the GeoJSON type name of g, or "" for nil and
// unsupported geometries.
func GeometryType(g geom.T) string {
	switch g.(type) {
	case *geom.Point:
		return "Point"
	case *geom.LineString:
		return "LineString"
	case *geom.Polygon:
		return "Polygon"
	case *geom.MultiPoint:
		return "MultiPoint"
	case *geom.MultiLineString:
		return "MultiLineString"
	case *geom.MultiPolygon:
		return "MultiPolygon"
	default:
		return ""
	}
}

// Coordinates returns the GeoJSON-shaped coordinate array of g. A nil or
// unsupported geometry yields an empty array.
func Coordinates(g geom.T) any {
	switch v := g.(type) {
	case *geom.Point:
		return v.Coords()
	case *geom.LineString:
		return v.Coords()
	case *geom.Polygon:
		return v.Coords()
	case *geom.MultiPoint:
		return v.Coords()
	case *geom.MultiLineString:
		return v.Coords()
	case *geom.MultiPolygon:
		return v.Coords()
	default:
		return []any{}
	}
}
