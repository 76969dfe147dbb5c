// Package artifact loads the persisted clustering model: a numeric feature
// scaler, a PCA transform and a K-means model, exported together as one YAML
// bundle by the offline training job.
//
// The bundle is read once at startup and never mutated, so an *Artifact is
// safe for concurrent use.
package artifact

import (
	"fmt"
	"math"
	"os"

	"fjacquet/customer-grouper/internal/segerror"

	"gopkg.in/yaml.v3"
)

// Names of the sub-objects in the bundle.
const (
	ComponentKMeans = "kmeans_model"
	ComponentPCA    = "pca"
	ComponentScaler = "scaler"
)

// SupportedFormatVersion is the only export format this loader understands.
const SupportedFormatVersion = 1

// Artifact is the loaded model bundle.
type Artifact struct {
	Path            string   `yaml:"-"`
	FormatVersion   int      `yaml:"format_version"`
	FeatureNames    []string `yaml:"feature_names"`
	NumericFeatures []string `yaml:"numeric_features"`
	KMeans          *KMeans  `yaml:"kmeans_model"`
	PCA             *PCA     `yaml:"pca"`
	Scaler          *Scaler  `yaml:"scaler"`
}

// Load reads and validates the bundle at path.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &segerror.ArtifactError{Path: path, Reason: "cannot read file", Err: err}
	}
	return Parse(data, path)
}

// Parse decodes and validates a bundle. path is only used in error messages.
func Parse(data []byte, path string) (*Artifact, error) {
	var a Artifact
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, &segerror.ArtifactError{Path: path, Reason: "corrupt bundle", Err: err}
	}
	a.Path = path

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Validate checks that every sub-object is present and dimensionally
// consistent with the feature lists.
func (a *Artifact) Validate() error {
	if a.FormatVersion != SupportedFormatVersion {
		return &segerror.ArtifactError{Path: a.Path,
			Reason: fmt.Sprintf("unsupported format_version %d (want %d)", a.FormatVersion, SupportedFormatVersion)}
	}
	if len(a.FeatureNames) == 0 {
		return &segerror.ArtifactError{Path: a.Path, Reason: "feature_names is missing"}
	}
	if len(a.NumericFeatures) == 0 || len(a.NumericFeatures) > len(a.FeatureNames) {
		return &segerror.ArtifactError{Path: a.Path,
			Reason: fmt.Sprintf("numeric_features has %d entries for %d features", len(a.NumericFeatures), len(a.FeatureNames))}
	}

	width := len(a.FeatureNames)
	numeric := len(a.NumericFeatures)

	if a.KMeans == nil {
		return missing(a.Path, ComponentKMeans)
	}
	if a.PCA == nil {
		return missing(a.Path, ComponentPCA)
	}
	if a.Scaler == nil {
		return missing(a.Path, ComponentScaler)
	}

	if err := a.Scaler.validate(numeric); err != nil {
		return &segerror.ArtifactError{Path: a.Path, Component: ComponentScaler, Reason: err.Error()}
	}
	if err := a.PCA.validate(width); err != nil {
		return &segerror.ArtifactError{Path: a.Path, Component: ComponentPCA, Reason: err.Error()}
	}
	if err := a.KMeans.validate(width); err != nil {
		return &segerror.ArtifactError{Path: a.Path, Component: ComponentKMeans, Reason: err.Error()}
	}
	return nil
}

func missing(path, component string) error {
	return &segerror.ArtifactError{Path: path, Component: component, Reason: "sub-object is missing"}
}

func checkFinite(name string, xs []float64) error {
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%s[%d] is not finite", name, i)
		}
	}
	return nil
}
