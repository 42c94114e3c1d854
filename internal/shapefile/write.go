package shapefile

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/geokit/internal/model"
)

const (
	maxFieldName = 10
	stringWidth  = 254
)

// Write stores fc as basePath.shp, .shx, .dbf and, for WGS 84 data, .prj.
// Every feature must have a geometry of the same family.
func Write(basePath string, fc *model.FeatureCollection) error {
	if fc == nil {
		return eris.New("shapefile: write: nil feature collection")
	}
	if strings.HasSuffix(strings.ToLower(basePath), ".shp") {
		basePath = basePath[:len(basePath)-4]
	}

	shapeType, err := collectionShapeType(fc)
	if err != nil {
		return err
	}
	columns, err := inferColumns(fc)
	if err != nil {
		return err
	}

	w, err := shp.Create(basePath, shapeType)
	if err != nil {
		return eris.Wrapf(err, "shapefile: create %s.shp", basePath)
	}

	fields := make([]shp.Field, len(columns))
	for i, col := range columns {
		fields[i] = col.field()
	}
	if err := w.SetFields(fields); err != nil {
		w.Close()
		return eris.Wrap(err, "shapefile: set fields")
	}

	for i, f := range fc.Features {
		row := int(w.Write(toShape(f.Geometry)))
		for j, col := range columns {
			if len(col.key) == 0 {
				if err := w.WriteAttribute(row, j, i+1); err != nil {
					w.Close()
					return eris.Wrapf(err, "shapefile: write id for feature %d", i)
				}
				continue
			}
			v, ok, err := col.value(f.Properties[col.key])
			if err != nil {
				w.Close()
				return eris.Wrapf(err, "shapefile: feature %d field %s", i, col.key)
			}
			if !ok {
				continue
			}
			if err := w.WriteAttribute(row, j, v); err != nil {
				w.Close()
				return eris.Wrapf(err, "shapefile: feature %d field %s", i, col.key)
			}
		}
	}
	w.Close()

	// go-shp names the table after the base name without a separating dot.
	if err := os.Rename(basePath+"dbf", basePath+".dbf"); err != nil {
		return eris.Wrap(err, "shapefile: rename dbf")
	}

	if fc.CRS == "" || fc.CRS == model.DefaultCRS {
		if err := os.WriteFile(basePath+".prj", []byte(wgs84WKT), 0o644); err != nil {
			return eris.Wrap(err, "shapefile: write prj")
		}
	} else {
		zap.L().Debug("no projection file written",
			zap.String("component", "shapefile.write"),
			zap.String("crs", fc.CRS),
		)
	}

	zap.L().Debug("wrote shapefile",
		zap.String("component", "shapefile.write"),
		zap.String("path", basePath+".shp"),
		zap.Int("features", fc.Len()),
		zap.Int("fields", len(columns)),
	)
	return nil
}

func collectionShapeType(fc *model.FeatureCollection) (shp.ShapeType, error) {
	var (
		want   shp.ShapeType
		family string
	)
	for i, f := range fc.Features {
		var (
			t    shp.ShapeType
			name string
		)
		switch f.Geometry.(type) {
		case *geom.Point:
			t, name = shp.POINT, "point"
		case *geom.LineString, *geom.MultiLineString:
			t, name = shp.POLYLINE, "line"
		case *geom.Polygon, *geom.MultiPolygon:
			t, name = shp.POLYGON, "polygon"
		case *geom.MultiPoint:
			t, name = shp.MULTIPOINT, "multipoint"
		case nil:
			return 0, eris.Errorf("shapefile: write: feature %d has no geometry", i)
		default:
			return 0, eris.Errorf("shapefile: write: feature %d has unsupported geometry %T", i, f.Geometry)
		}
		if i == 0 {
			want, family = t, name
			continue
		}
		if t != want {
			return 0, eris.Errorf("shapefile: write: feature %d is a %s, collection holds %s geometries", i, name, family)
		}
	}
	if family == "" {
		return shp.POINT, nil
	}
	return want, nil
}

func toShape(g geom.T) shp.Shape {
	switch g := g.(type) {
	case *geom.Point:
		return &shp.Point{X: g.X(), Y: g.Y()}
	case *geom.MultiPoint:
		pts := flatPoints(g.FlatCoords(), g.Stride())
		return &shp.MultiPoint{Box: shp.BBoxFromPoints(pts), NumPoints: int32(len(pts)), Points: pts}
	case *geom.LineString:
		return shp.NewPolyLine([][]shp.Point{flatPoints(g.FlatCoords(), g.Stride())})
	case *geom.MultiLineString:
		return shp.NewPolyLine(splitFlat(g.FlatCoords(), g.Ends(), g.Stride()))
	case *geom.Polygon:
		return polygonShape(orientRings(splitFlat(g.FlatCoords(), g.Ends(), g.Stride())))
	case *geom.MultiPolygon:
		var parts [][]shp.Point
		start := 0
		for _, ends := range g.Endss() {
			if len(ends) == 0 {
				continue
			}
			rel := make([]int, len(ends))
			for i, e := range ends {
				rel[i] = e - start
			}
			parts = append(parts, orientRings(splitFlat(g.FlatCoords()[start:ends[len(ends)-1]], rel, g.Stride()))...)
			start = ends[len(ends)-1]
		}
		return polygonShape(parts)
	default:
		return &shp.Null{}
	}
}

func polygonShape(parts [][]shp.Point) *shp.Polygon {
	p := shp.Polygon(*shp.NewPolyLine(parts))
	return &p
}

func flatPoints(flat []float64, stride int) []shp.Point {
	pts := make([]shp.Point, 0, len(flat)/stride)
	for i := 0; i+1 < len(flat); i += stride {
		pts = append(pts, shp.Point{X: flat[i], Y: flat[i+1]})
	}
	return pts
}

func splitFlat(flat []float64, ends []int, stride int) [][]shp.Point {
	parts := make([][]shp.Point, 0, len(ends))
	start := 0
	for _, end := range ends {
		parts = append(parts, flatPoints(flat[start:end], stride))
		start = end
	}
	return parts
}

// orientRings makes the first ring clockwise and the rest counter-clockwise,
// closing any ring left open.
func orientRings(rings [][]shp.Point) [][]shp.Point {
	out := make([][]shp.Point, len(rings))
	for i, r := range rings {
		if n := len(r); n > 1 && r[0] != r[n-1] {
			r = append(append([]shp.Point(nil), r...), r[0])
		}
		clockwise := ringArea(r) <= 0
		if (i == 0) != clockwise {
			r = reversed(r)
		}
		out[i] = r
	}
	return out
}

func ringArea(r []shp.Point) float64 {
	var sum float64
	for i := 0; i+1 < len(r); i++ {
		sum += r[i].X*r[i+1].Y - r[i+1].X*r[i].Y
	}
	return sum / 2
}

func reversed(r []shp.Point) []shp.Point {
	out := make([]shp.Point, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// column is one attribute field. An empty key is the synthetic id column.
type column struct {
	key  string
	name string
	typ  byte
}

func (c column) field() shp.Field {
	switch c.typ {
	case 'N':
		return shp.NumberField(c.name, 18)
	case 'F':
		return shp.FloatField(c.name, 24, 8)
	case 'L':
		f := shp.Field{Fieldtype: 'L', Size: 1}
		copy(f.Name[:], c.name)
		return f
	default:
		return shp.StringField(c.name, stringWidth)
	}
}

// value converts a property to what go-shp's WriteAttribute accepts. ok is
// false for nil values, which are left blank.
func (c column) value(v any) (any, bool, error) {
	if v == nil {
		return nil, false, nil
	}
	switch c.typ {
	case 'N':
		switch n := v.(type) {
		case int64:
			return int(n), true, nil
		case int:
			return n, true, nil
		case float64:
			if n == math.Trunc(n) {
				return int(n), true, nil
			}
		}
		return nil, false, eris.Errorf("value %v is not an integer", v)
	case 'F':
		switch n := v.(type) {
		case float64:
			return n, true, nil
		case int64:
			return float64(n), true, nil
		case int:
			return float64(n), true, nil
		}
		return nil, false, eris.Errorf("value %v is not a number", v)
	case 'L':
		b, ok := v.(bool)
		if !ok {
			return nil, false, eris.Errorf("value %v is not a boolean", v)
		}
		if b {
			return "T", true, nil
		}
		return "F", true, nil
	default:
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}
		return truncateBytes(s, stringWidth), true, nil
	}
}

// inferColumns builds the attribute schema from the union of property keys.
// Each column's type comes from the first non-nil value seen.
func inferColumns(fc *model.FeatureCollection) ([]column, error) {
	types := map[string]byte{}
	for _, f := range fc.Features {
		for k, v := range f.Properties {
			if k == "" || types[k] != 0 {
				continue
			}
			types[k] = fieldType(v)
		}
	}
	if len(types) == 0 {
		return []column{{name: "id", typ: 'N'}}, nil
	}

	keys := make([]string, 0, len(types))
	for k := range types {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	used := make(map[string]string, len(keys))
	cols := make([]column, 0, len(keys))
	for _, k := range keys {
		name := truncateBytes(k, maxFieldName)
		if prev, dup := used[name]; dup {
			return nil, eris.Errorf("shapefile: write: fields %q and %q both truncate to %q", prev, k, name)
		}
		used[name] = k
		typ := types[k]
		if typ == 0 {
			typ = 'C'
		}
		cols = append(cols, column{key: k, name: name, typ: typ})
	}
	return cols, nil
}

func fieldType(v any) byte {
	switch v.(type) {
	case nil:
		return 0
	case int64, int:
		return 'N'
	case float64:
		return 'F'
	case bool:
		return 'L'
	default:
		return 'C'
	}
}

func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
