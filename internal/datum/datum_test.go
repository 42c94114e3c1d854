package datum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/geokit/internal/model"
)

func TestIdentity_ReturnsInputUnchanged(t *testing.T) {
	t.Parallel()

	var tr Transformer = Identity{}
	points := []model.Point{
		{Lng: 116.4074, Lat: 39.9042},
		{Lng: -180, Lat: -90},
		{Lng: 180, Lat: 90},
		{},
	}
	for _, p := range points {
		assert.Equal(t, p, tr.ToLocal(p))
		assert.Equal(t, p, tr.ToGlobal(p))
		assert.Equal(t, p, tr.ToGlobal(tr.ToLocal(p)))
	}
}

type shift struct{ dLng, dLat float64 }

func (s shift) ToLocal(p model.Point) model.Point {
	return model.Point{Lng: p.Lng + s.dLng, Lat: p.Lat + s.dLat}
}

func (s shift) ToGlobal(p model.Point) model.Point {
	return model.Point{Lng: p.Lng - s.dLng, Lat: p.Lat - s.dLat}
}

func TestByName(t *testing.T) {
	t.Parallel()

	s := shift{dLng: 1, dLat: 2}

	fn, err := ByName(s, "none")
	require.NoError(t, err)
	assert.Nil(t, fn)

	fn, err = ByName(s, "")
	require.NoError(t, err)
	assert.Nil(t, fn)

	fn, err = ByName(s, "Local")
	require.NoError(t, err)
	assert.Equal(t, model.Point{Lng: 1, Lat: 2}, fn(model.Point{}))

	fn, err = ByName(s, "global")
	require.NoError(t, err)
	assert.Equal(t, model.Point{Lng: -1, Lat: -2}, fn(model.Point{}))

	_, err = ByName(s, "gcj02")
	assert.Error(t, err)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	props := map[string]any{"name": "site"}
	poly := model.NewPolygon(model.Ring{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 0}, {Lng: 1, Lat: 1}})
	fc := model.NewFeatureCollection(model.DefaultCRS,
		model.Feature{Geometry: model.NewPoint(model.Point{Lng: 10, Lat: 20}), Properties: props},
		model.Feature{Geometry: poly},
		model.Feature{},
	)
	before := append([]float64(nil), poly.FlatCoords()...)

	out := Apply(fc, shift{dLng: 1, dLat: 1}.ToLocal)

	require.Len(t, out.Features, 3)
	assert.Equal(t, model.DefaultCRS, out.CRS)
	assert.Equal(t, []float64{11, 21}, out.Features[0].Geometry.FlatCoords())
	assert.Equal(t, props, out.Features[0].Properties)
	assert.Equal(t, before, poly.FlatCoords())
	assert.Equal(t, []float64{1, 1, 2, 1, 2, 2, 1, 1}, out.Features[1].Geometry.FlatCoords())
	assert.IsType(t, &geom.Polygon{}, out.Features[1].Geometry)
	assert.Nil(t, out.Features[2].Geometry)
}

func TestApply_IdentityAndNil(t *testing.T) {
	t.Parallel()

	fc := model.NewFeatureCollection(model.DefaultCRS,
		model.Feature{Geometry: model.NewPoint(model.Point{Lng: 10, Lat: 20})},
	)

	assert.Same(t, fc, Apply(fc, nil))

	out := Apply(fc, Identity{}.ToGlobal)
	assert.NotSame(t, fc, out)
	assert.Equal(t, fc.Features[0].Geometry.FlatCoords(), out.Features[0].Geometry.FlatCoords())
}
