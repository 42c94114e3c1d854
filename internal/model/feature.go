package model

import (
	"github.com/twpayne/go-geom"
)

// DefaultCRS is the reference system assumed when a dataset does not declare one.
const DefaultCRS = "EPSG:4326"

// Feature is a geometry with scalar attributes. Geometry is nil for
// shapefile Null records. Property values are string, float64, int64, bool
// or nil.
type Feature struct {
	Geometry   geom.T
	Properties map[string]any
}

// FeatureCollection is an ordered set of features with an optional CRS
// identifier. Collections are treated as immutable once built; transforms
// return a new collection.
type FeatureCollection struct {
	Features []Feature
	CRS      string
}

// NewFeatureCollection creates a collection in the given CRS.
func NewFeatureCollection(crs string, features ...Feature) *FeatureCollection {
	return &FeatureCollection{Features: features, CRS: crs}
}

// Len returns the number of features; a nil collection has none.
func (fc *FeatureCollection) Len() int {
	if fc == nil {
		return 0
	}
	return len(fc.Features)
}

// Cluster groups points around the arithmetic mean of its members.
type Cluster struct {
	Center  Point   `json:"center" yaml:"center"`
	Members []Point `json:"points" yaml:"points"`
}
