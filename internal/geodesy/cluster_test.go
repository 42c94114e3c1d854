package geodesy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geokit/internal/model"
)

func samplePoints() []model.Point {
	return []model.Point{
		{Lng: 104.0668, Lat: 30.5728},
		{Lng: 104.0768, Lat: 30.5728},
		{Lng: 104.0718, Lat: 30.5778},
		{Lng: 116.4074, Lat: 39.9042},
		{Lng: 121.4737, Lat: 31.2304},
	}
}

func TestClusterPoints_ZeroRadius(t *testing.T) {
	t.Parallel()

	points := samplePoints()
	clusters := ClusterPoints(points, 0)

	require.Len(t, clusters, len(points))
	for i, c := range clusters {
		assert.Equal(t, points[i], c.Center)
		assert.Equal(t, []model.Point{points[i]}, c.Members)
	}
}

func TestClusterPoints_InfiniteRadius(t *testing.T) {
	t.Parallel()

	points := samplePoints()
	clusters := ClusterPoints(points, math.Inf(1))

	require.Len(t, clusters, 1)
	assert.Equal(t, Centroid(points), clusters[0].Center)
	assert.Equal(t, points, clusters[0].Members)
}

func TestClusterPoints_Empty(t *testing.T) {
	t.Parallel()

	clusters := ClusterPoints(nil, 100)
	assert.NotNil(t, clusters)
	assert.Empty(t, clusters)
}

func TestClusterPoints_DistanceFromSeedOnly(t *testing.T) {
	t.Parallel()

	// ~89 m apart along a meridian: a-b and b-c are within 100 m, a-c is not.
	a := model.Point{Lng: 0, Lat: 0}
	b := model.Point{Lng: 0, Lat: 0.0008}
	c := model.Point{Lng: 0, Lat: 0.0016}

	clusters := ClusterPoints([]model.Point{a, b, c}, 100)

	require.Len(t, clusters, 2)
	assert.Equal(t, []model.Point{a, b}, clusters[0].Members)
	assert.Equal(t, []model.Point{c}, clusters[1].Members)
	assert.InDelta(t, 0.0004, clusters[0].Center.Lat, 1e-12)
}

func TestClusterPoints_OrderDependent(t *testing.T) {
	t.Parallel()

	a := model.Point{Lng: 0, Lat: 0}
	b := model.Point{Lng: 0, Lat: 0.0008}
	c := model.Point{Lng: 0, Lat: 0.0016}

	// Seeding from the middle point absorbs both neighbours.
	clusters := ClusterPoints([]model.Point{b, a, c}, 100)

	require.Len(t, clusters, 1)
	assert.Equal(t, []model.Point{b, a, c}, clusters[0].Members)
	assert.InDelta(t, 0.0008, clusters[0].Center.Lat, 1e-12)
}

func TestClusterPoints_SkipsProcessed(t *testing.T) {
	t.Parallel()

	points := samplePoints()
	// The three Chengdu points are within ~1.1 km of the first seed.
	clusters := ClusterPoints(points, 1500)

	require.Len(t, clusters, 3)
	assert.Len(t, clusters[0].Members, 3)
	assert.Equal(t, []model.Point{points[3]}, clusters[1].Members)
	assert.Equal(t, []model.Point{points[4]}, clusters[2].Members)

	total := 0
	for _, c := range clusters {
		total += len(c.Members)
	}
	assert.Equal(t, len(points), total)
}
