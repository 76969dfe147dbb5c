// Package segmenter assigns a customer to a segment using the persisted
// clustering model and the static segment catalog.
//
// A Segmenter is built once at startup and holds only read-only state, so a
// single instance serves concurrent requests without locking.
package segmenter

import (
	"context"
	"fmt"
	"time"

	"fjacquet/customer-grouper/internal/artifact"
	"fjacquet/customer-grouper/internal/features"
	"fjacquet/customer-grouper/internal/logging"
	"fjacquet/customer-grouper/internal/models"
	"fjacquet/customer-grouper/internal/segerror"
)

// Scaler scales the numeric feature prefix.
type Scaler interface {
	Transform(row []float64) ([]float64, error)
}

// Clusterer maps a full scaled feature row to a cluster id.
type Clusterer interface {
	Predict(row []float64) (int, error)
}

// Projector maps a full scaled feature row into a low-dimensional space for
// display. It is not part of the prediction path.
type Projector interface {
	Transform(row []float64) ([]float64, error)
}

// Segmenter is the inference adapter.
type Segmenter struct {
	scaler         Scaler
	model          Clusterer
	projector      Projector
	catalog        *models.Catalog
	insight        InsightClient
	insightTimeout time.Duration
	logger         logging.Logger
}

// Option configures optional Segmenter behaviour.
type Option func(*Segmenter)

// WithInsight attaches an InsightClient. Each call is bounded by timeout.
func WithInsight(client InsightClient, timeout time.Duration) Option {
	return func(s *Segmenter) {
		s.insight = client
		s.insightTimeout = timeout
	}
}

// New builds a Segmenter from a loaded artifact. It fails with
// segerror.ErrUnexpectedFeatureSet when the artifact was trained on other
// columns than the ones built by the features package.
func New(a *artifact.Artifact, catalog *models.Catalog, logger logging.Logger, opts ...Option) (*Segmenter, error) {
	if a == nil {
		return nil, fmt.Errorf("artifact cannot be nil")
	}
	if err := features.CheckSchema(a.FeatureNames, a.NumericFeatures); err != nil {
		return nil, err
	}

	s, err := NewWithComponents(a.Scaler, a.KMeans, a.PCA, catalog, logger, opts...)
	if err != nil {
		return nil, err
	}

	if missing := catalog.Missing(a.KMeans.NumClusters()); len(missing) > 0 {
		s.logger.Warn("Segment catalog does not cover every model cluster",
			logging.Field{Key: "missing_ids", Value: missing},
			logging.Field{Key: "model_clusters", Value: a.KMeans.NumClusters()})
	}
	return s, nil
}

// NewWithComponents builds a Segmenter from individual model parts. projector
// may be nil.
func NewWithComponents(scaler Scaler, model Clusterer, projector Projector, catalog *models.Catalog, logger logging.Logger, opts ...Option) (*Segmenter, error) {
	if scaler == nil || model == nil {
		return nil, fmt.Errorf("scaler and clustering model are required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("segment catalog cannot be nil")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	s := &Segmenter{
		scaler:    scaler,
		model:     model,
		projector: projector,
		catalog:   catalog,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Catalog returns the segment catalog.
func (s *Segmenter) Catalog() *models.Catalog {
	return s.catalog
}

// Vector returns the model input for c: the 17-slot vector with its numeric
// prefix scaled and its one-hot suffix untouched.
func (s *Segmenter) Vector(c models.Customer) (features.Vector, error) {
	raw, err := features.Build(c)
	if err != nil {
		return features.Vector{}, err
	}

	scaled, err := s.scaler.Transform(raw.Numeric())
	if err != nil {
		return features.Vector{}, fmt.Errorf("scaling numeric features: %w", err)
	}

	return features.Combine(scaled, raw.Categorical())
}

// Predict returns the cluster id for c without looking up its metadata.
func (s *Segmenter) Predict(c models.Customer) (int, error) {
	v, err := s.Vector(c)
	if err != nil {
		return 0, err
	}

	id, err := s.model.Predict(v.Slice())
	if err != nil {
		return 0, fmt.Errorf("predicting cluster: %w", err)
	}
	return id, nil
}

// Assign predicts c's cluster and attaches the segment label and description.
// A cluster id missing from the catalog yields a *segerror.ConsistencyError.
// When an InsightClient is configured its text is attached on a best-effort
// basis.
func (s *Segmenter) Assign(ctx context.Context, c models.Customer) (models.Assignment, error) {
	id, err := s.Predict(c)
	if err != nil {
		return models.Assignment{}, err
	}

	seg, ok := s.catalog.Lookup(id)
	if !ok {
		known := make([]int, 0, s.catalog.Len())
		for _, k := range s.catalog.Segments() {
			known = append(known, k.ID)
		}
		return models.Assignment{}, &segerror.ConsistencyError{ClusterID: id, Known: known}
	}

	result := models.Assignment{
		ClusterID:   id,
		Label:       seg.Label,
		Description: seg.Description,
		AgeGroup:    c.AgeGroup(),
	}

	s.logger.Debug("Customer assigned to segment",
		logging.Field{Key: logging.FieldClusterID, Value: id},
		logging.Field{Key: logging.FieldLabel, Value: seg.Label},
		logging.Field{Key: logging.FieldAgeGroup, Value: result.AgeGroup})

	if s.insight != nil {
		result.Insight = s.fetchInsight(ctx, c, seg)
	}
	return result, nil
}

// Project returns c's coordinates in the PCA space. It exists for display and
// is never consulted by Predict.
func (s *Segmenter) Project(c models.Customer) ([]float64, error) {
	if s.projector == nil {
		return nil, fmt.Errorf("no projection available")
	}
	v, err := s.Vector(c)
	if err != nil {
		return nil, err
	}
	return s.projector.Transform(v.Slice())
}

func (s *Segmenter) fetchInsight(ctx context.Context, c models.Customer, seg models.Segment) string {
	if s.insightTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.insightTimeout)
		defer cancel()
	}

	text, err := s.insight.Insight(ctx, c, seg)
	if err != nil {
		s.logger.WithError(err).Warn("Segment insight unavailable",
			logging.Field{Key: logging.FieldClusterID, Value: seg.ID})
		return ""
	}
	return text
}
