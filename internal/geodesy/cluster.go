package geodesy

import (
	"github.com/sells-group/geokit/internal/model"
)

// ClusterPoints groups points in a single greedy pass. Each unprocessed point
// in input order seeds a cluster and absorbs every later unprocessed point
// within radiusMeters of the seed. Distances are always measured from the
// seed, never from the cluster's running center, so the result depends on
// input order. The center of each cluster is the arithmetic mean of its
// members.
func ClusterPoints(points []model.Point, radiusMeters float64) []model.Cluster {
	clusters := make([]model.Cluster, 0)
	processed := make([]bool, len(points))

	for i, seed := range points {
		if processed[i] {
			continue
		}
		processed[i] = true
		members := []model.Point{seed}

		for j := i + 1; j < len(points); j++ {
			if processed[j] {
				continue
			}
			if Distance(seed, points[j], Meters) <= radiusMeters {
				members = append(members, points[j])
				processed[j] = true
			}
		}

		clusters = append(clusters, model.Cluster{
			Center:  Centroid(members),
			Members: members,
		})
	}

	return clusters
}
