package geodesy

import (
	"github.com/twpayne/go-geom"

	"github.com/sells-group/geokit/internal/model"
)

// GeometryArea returns the area of a polygonal geometry in square kilometers:
// the exterior ring less its holes, summed over multipolygon members. Other
// geometry types have no area.
func GeometryArea(g geom.T) float64 {
	switch v := g.(type) {
	case *geom.Polygon:
		return polygonArea(v)
	case *geom.MultiPolygon:
		var total float64
		for i := 0; i < v.NumPolygons(); i++ {
			total += polygonArea(v.Polygon(i))
		}
		return total
	default:
		return 0
	}
}

func polygonArea(p *geom.Polygon) float64 {
	rings := model.PolygonRings(p)
	if len(rings) == 0 {
		return 0
	}
	area := PolygonArea(rings[0])
	for _, hole := range rings[1:] {
		area -= PolygonArea(hole)
	}
	if area < 0 {
		return 0
	}
	return area
}

// Contains reports whether a polygonal geometry contains p: inside an
// exterior ring and outside all of that polygon's holes.
func Contains(g geom.T, p model.Point) bool {
	switch v := g.(type) {
	case *geom.Polygon:
		return polygonContains(v, p)
	case *geom.MultiPolygon:
		for i := 0; i < v.NumPolygons(); i++ {
			if polygonContains(v.Polygon(i), p) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func polygonContains(poly *geom.Polygon, p model.Point) bool {
	rings := model.PolygonRings(poly)
	if len(rings) == 0 || !PointInPolygon(p, rings[0]) {
		return false
	}
	for _, hole := range rings[1:] {
		if PointInPolygon(p, hole) {
			return false
		}
	}
	return true
}
