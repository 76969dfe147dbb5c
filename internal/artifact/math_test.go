package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaler_Transform(t *testing.T) {
	s := &Scaler{Mean: []float64{10, 5}, Scale: []float64{2, 0}}

	out, err := s.Transform([]float64{14, 7})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2}, out)

	_, err = s.Transform([]float64{1})
	assert.Error(t, err)
}

func TestKMeans_Predict(t *testing.T) {
	k := &KMeans{Centroids: [][]float64{{0, 0}, {10, 10}, {0, 10}}}

	tests := []struct {
		row      []float64
		expected int
	}{
		{[]float64{1, 1}, 0},
		{[]float64{9, 8}, 1},
		{[]float64{-1, 9}, 2},
		// Equidistant from 0 and 2: lowest id wins.
		{[]float64{0, 5}, 0},
	}

	for _, tt := range tests {
		id, err := k.Predict(tt.row)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, id, "row %v", tt.row)
	}

	_, err := k.Predict([]float64{1, 2, 3})
	assert.Error(t, err)

	_, err = (&KMeans{}).Predict([]float64{1})
	assert.Error(t, err)
}

func TestKMeans_Deterministic(t *testing.T) {
	a, err := Load(sampleModel)
	require.NoError(t, err)

	row := make([]float64, 17)
	row[6], row[9], row[13] = 1, 1, 1
	first, err := a.KMeans.Predict(row)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := a.KMeans.Predict(row)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPCA_Transform(t *testing.T) {
	p := &PCA{
		Mean:       []float64{1, 1, 1},
		Components: [][]float64{{1, 0, 0}, {0, 0.5, 0.5}},
	}

	out, err := p.Transform([]float64{3, 3, 5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 3}, out, 1e-9)

	_, err = p.Transform([]float64{1})
	assert.Error(t, err)
}
