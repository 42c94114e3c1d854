// Package datum converts coordinates between the global (WGS 84) datum and a
// local datum.
//
// No conversion algorithm is implemented: Identity returns every point
// unchanged in both directions. Callers that need a real datum shift must
// supply their own Transformer.
package datum

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/geokit/internal/model"
)

// Transformer converts points between the global and local datums.
type Transformer interface {
	ToLocal(p model.Point) model.Point
	ToGlobal(p model.Point) model.Point
}

// Identity is a Transformer that performs no conversion.
type Identity struct{}

var _ Transformer = Identity{}

// ToLocal returns p unchanged.
func (Identity) ToLocal(p model.Point) model.Point { return p }

// ToGlobal returns p unchanged.
func (Identity) ToGlobal(p model.Point) model.Point { return p }

// Direction names accepted by ByName.
const (
	DirectionNone   = "none"
	DirectionLocal  = "local"
	DirectionGlobal = "global"
)

// ByName returns the point function for a direction of t. "none" and ""
// return nil, meaning no transform.
func ByName(t Transformer, direction string) (func(model.Point) model.Point, error) {
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "", DirectionNone:
		return nil, nil
	case DirectionLocal:
		return t.ToLocal, nil
	case DirectionGlobal:
		return t.ToGlobal, nil
	default:
		return nil, eris.Errorf("datum: unknown direction %q", direction)
	}
}

// Apply returns a copy of fc with fn applied to every coordinate. Properties
// maps are shared with the input; geometries are cloned. A nil fn returns fc.
func Apply(fc *model.FeatureCollection, fn func(model.Point) model.Point) *model.FeatureCollection {
	if fn == nil || fc == nil {
		return fc
	}

	out := &model.FeatureCollection{
		CRS:      fc.CRS,
		Features: make([]model.Feature, len(fc.Features)),
	}
	for i, f := range fc.Features {
		out.Features[i] = model.Feature{
			Geometry:   transform(f.Geometry, fn),
			Properties: f.Properties,
		}
	}
	return out
}

func transform(g geom.T, fn func(model.Point) model.Point) geom.T {
	clone := cloneGeometry(g)
	if clone == nil {
		return nil
	}

	flat := clone.FlatCoords()
	stride := clone.Stride()
	for i := 0; i+1 < len(flat); i += stride {
		p := fn(model.Point{Lng: flat[i], Lat: flat[i+1]})
		flat[i], flat[i+1] = p.Lng, p.Lat
	}
	return clone
}

func cloneGeometry(g geom.T) geom.T {
	switch v := g.(type) {
	case *geom.Point:
		return v.Clone()
	case *geom.LineString:
		return v.Clone()
	case *geom.Polygon:
		return v.Clone()
	case *geom.MultiPoint:
		return v.Clone()
	case *geom.MultiLineString:
		return v.Clone()
	case *geom.MultiPolygon:
		return v.Clone()
	default:
		return nil
	}
}
