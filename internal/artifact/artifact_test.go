package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/customer-grouper/internal/segerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleModel = "../../testdata/model.yaml"

// mutateSample loads the sample bundle as a generic map, applies fn and
// writes the result to a temp file.
func mutateSample(t *testing.T, fn func(m map[string]interface{})) string {
	t.Helper()
	data, err := os.ReadFile(sampleModel)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &m))
	fn(m)

	out, err := yaml.Marshal(m)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, out, 0600))
	return path
}

func TestLoad_Sample(t *testing.T) {
	a, err := Load(sampleModel)
	require.NoError(t, err)

	assert.Equal(t, sampleModel, a.Path)
	assert.Len(t, a.FeatureNames, 17)
	assert.Len(t, a.NumericFeatures, 6)
	assert.Equal(t, 5, a.KMeans.NumClusters())
	assert.Equal(t, 2, a.PCA.NumComponents())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, segerror.ErrInvalidArtifact))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kmeans_model: [unterminated"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt bundle")
}

func TestLoad_MissingSubObject(t *testing.T) {
	for _, component := range []string{ComponentKMeans, ComponentPCA, ComponentScaler} {
		t.Run(component, func(t *testing.T) {
			path := mutateSample(t, func(m map[string]interface{}) {
				delete(m, component)
			})

			_, err := Load(path)
			require.Error(t, err)

			var ae *segerror.ArtifactError
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, component, ae.Component)
			assert.Contains(t, err.Error(), "sub-object is missing")
		})
	}
}

func TestLoad_BadDimensions(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(m map[string]interface{})
		component string
		reason    string
	}{
		{
			name: "short scaler mean",
			mutate: func(m map[string]interface{}) {
				m["scaler"].(map[string]interface{})["mean"] = []float64{1, 2, 3}
			},
			component: ComponentScaler,
			reason:    "mean has 3 values, want 6",
		},
		{
			name: "negative scale",
			mutate: func(m map[string]interface{}) {
				m["scaler"].(map[string]interface{})["scale"] = []float64{1, 1, -1, 1, 1, 1}
			},
			component: ComponentScaler,
			reason:    "scale[2] is negative",
		},
		{
			name: "short centroid",
			mutate: func(m map[string]interface{}) {
				m["kmeans_model"].(map[string]interface{})["cluster_centers"] = [][]float64{{1, 2}}
			},
			component: ComponentKMeans,
			reason:    "cluster center 0 has 2 values, want 17",
		},
		{
			name: "no centroids",
			mutate: func(m map[string]interface{}) {
				m["kmeans_model"].(map[string]interface{})["cluster_centers"] = [][]float64{}
			},
			component: ComponentKMeans,
			reason:    "no cluster centers",
		},
		{
			name: "pca without components",
			mutate: func(m map[string]interface{}) {
				m["pca"].(map[string]interface{})["components"] = [][]float64{}
			},
			component: ComponentPCA,
			reason:    "no components",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(mutateSample(t, tt.mutate))
			require.Error(t, err)

			var ae *segerror.ArtifactError
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, tt.component, ae.Component)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestLoad_FormatVersion(t *testing.T) {
	path := mutateSample(t, func(m map[string]interface{}) {
		m["format_version"] = 2
	})
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format_version 2")
}

func TestLoad_MissingFeatureNames(t *testing.T) {
	path := mutateSample(t, func(m map[string]interface{}) {
		delete(m, "feature_names")
	})
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feature_names is missing")
}
