// Package segerror defines the error types raised while loading the model and
// assigning customers to segments.
package segerror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnexpectedFeatureSet is matched by FeatureSetError.
	ErrUnexpectedFeatureSet = errors.New("unexpected feature set")

	// ErrUnknownCluster is matched by ConsistencyError.
	ErrUnknownCluster = errors.New("predicted cluster has no segment metadata")

	// ErrInvalidArtifact is matched by ArtifactError.
	ErrInvalidArtifact = errors.New("invalid model artifact")
)

// ArtifactError reports a model artifact that is missing, unreadable or
// structurally wrong. It is fatal: the process cannot serve predictions.
type ArtifactError struct {
	Path      string
	Component string // kmeans_model, pca, scaler or empty for the whole file
	Reason    string
	Err       error
}

func (e *ArtifactError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "model artifact %s", e.Path)
	if e.Component != "" {
		fmt.Fprintf(&b, " [%s]", e.Component)
	}
	fmt.Fprintf(&b, ": %s", e.Reason)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}

func (e *ArtifactError) Is(target error) bool {
	return target == ErrInvalidArtifact
}

// FeatureSetError reports that the model was trained on columns other than the
// ones this adapter builds.
type FeatureSetError struct {
	Expected []string
	Actual   []string
	Reason   string
}

func (e *FeatureSetError) Error() string {
	return fmt.Sprintf("unexpected feature set: %s (expected %d columns, model has %d)",
		e.Reason, len(e.Expected), len(e.Actual))
}

func (e *FeatureSetError) Is(target error) bool {
	return target == ErrUnexpectedFeatureSet
}

// ConsistencyError reports a predicted cluster id with no segment metadata.
// It means the model and the segment catalog are out of sync.
type ConsistencyError struct {
	ClusterID int
	Known     []int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("model predicted cluster %d but the segment catalog only defines %v: model and metadata are out of sync",
		e.ClusterID, e.Known)
}

func (e *ConsistencyError) Is(target error) bool {
	return target == ErrUnknownCluster
}

// InvalidCustomerError reports a customer field outside its option set.
type InvalidCustomerError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidCustomerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid customer %s=%q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid customer %s=%q", e.Field, e.Value)
}

func (e *InvalidCustomerError) Unwrap() error {
	return e.Err
}
