package model

import (
	"github.com/twpayne/go-geom"
)

// Bounds is the planar extent of a collection with its midpoint.
type Bounds struct {
	MinX   float64    `json:"min_x" yaml:"min_x"`
	MinY   float64    `json:"min_y" yaml:"min_y"`
	MaxX   float64    `json:"max_x" yaml:"max_x"`
	MaxY   float64    `json:"max_y" yaml:"max_y"`
	Center [2]float64 `json:"center" yaml:"center"`
}

// Summary describes the contents of a feature collection.
type Summary struct {
	TotalFeatures int            `json:"total_features" yaml:"total_features"`
	GeometryTypes map[string]int `json:"geometry_types" yaml:"geometry_types"`
	Bounds        *Bounds        `json:"bounds" yaml:"bounds"`
}

// Summarize counts features per geometry type and computes the overall
// bounding box. Bounds is nil when no feature has coordinates.
func Summarize(fc *FeatureCollection) Summary {
	s := Summary{GeometryTypes: map[string]int{}}
	if fc == nil {
		return s
	}
	s.TotalFeatures = len(fc.Features)

	b := geom.NewBounds(geom.XY)
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		if t := GeometryType(f.Geometry); t != "" {
			s.GeometryTypes[t]++
		}
		if len(f.Geometry.FlatCoords()) > 0 {
			b.Extend(f.Geometry)
		}
	}

	if !b.IsEmpty() {
		s.Bounds = &Bounds{
			MinX: b.Min(0),
			MinY: b.Min(1),
			MaxX: b.Max(0),
			MaxY: b.Max(1),
			Center: [2]float64{
				(b.Min(0) + b.Max(0)) / 2,
				(b.Min(1) + b.Max(1)) / 2,
			},
		}
	}
	return s
}
