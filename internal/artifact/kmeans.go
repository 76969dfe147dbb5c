package artifact

import (
	"fmt"
	"math"
)

// KMeans holds the fitted centroids. Cluster ids are centroid indexes.
type KMeans struct {
	Centroids [][]float64 `yaml:"cluster_centers"`
}

// NumClusters returns the number of centroids.
func (k *KMeans) NumClusters() int {
	return len(k.Centroids)
}

// Predict returns the index of the centroid nearest to row by squared
// Euclidean distance. Ties resolve to the lowest index.
func (k *KMeans) Predict(row []float64) (int, error) {
	if len(k.Centroids) == 0 {
		return 0, fmt.Errorf("kmeans has no centroids")
	}
	if len(row) != len(k.Centroids[0]) {
		return 0, fmt.Errorf("kmeans expects %d values, got %d", len(k.Centroids[0]), len(row))
	}

	best, bestDist := 0, math.Inf(1)
	for id, c := range k.Centroids {
		var d float64
		for i, x := range row {
			diff := x - c[i]
			d += diff * diff
		}
		if d < bestDist {
			best, bestDist = id, d
		}
	}
	return best, nil
}

func (k *KMeans) validate(width int) error {
	if len(k.Centroids) == 0 {
		return fmt.Errorf("no cluster centers")
	}
	for id, c := range k.Centroids {
		if len(c) != width {
			return fmt.Errorf("cluster center %d has %d values, want %d", id, len(c), width)
		}
		if err := checkFinite(fmt.Sprintf("cluster_centers[%d]", id), c); err != nil {
			return err
		}
	}
	return nil
}
