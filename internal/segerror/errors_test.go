package segerror

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ArtifactError
		expected string
	}{
		{
			name:     "whole file",
			err:      &ArtifactError{Path: "model.yaml", Reason: "cannot read file", Err: os.ErrNotExist},
			expected: "model artifact model.yaml: cannot read file: file does not exist",
		},
		{
			name:     "component",
			err:      &ArtifactError{Path: "model.yaml", Component: "scaler", Reason: "missing"},
			expected: "model artifact model.yaml [scaler]: missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.True(t, errors.Is(tt.err, ErrInvalidArtifact))
		})
	}
}

func TestArtifactError_Unwrap(t *testing.T) {
	err := fmt.Errorf("startup: %w", &ArtifactError{Path: "m", Reason: "r", Err: os.ErrNotExist})
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var ae *ArtifactError
	assert.True(t, errors.As(err, &ae))
	assert.Equal(t, "m", ae.Path)
}

func TestFeatureSetError(t *testing.T) {
	err := &FeatureSetError{
		Expected: []string{"a", "b"},
		Actual:   []string{"a"},
		Reason:   "column 1 is missing",
	}
	assert.Equal(t, "unexpected feature set: column 1 is missing (expected 2 columns, model has 1)", err.Error())
	assert.True(t, errors.Is(fmt.Errorf("wrap: %w", err), ErrUnexpectedFeatureSet))
	assert.False(t, errors.Is(err, ErrUnknownCluster))
}

func TestConsistencyError(t *testing.T) {
	err := &ConsistencyError{ClusterID: 7, Known: []int{0, 1, 2}}
	assert.Contains(t, err.Error(), "cluster 7")
	assert.Contains(t, err.Error(), "[0 1 2]")
	assert.True(t, errors.Is(err, ErrUnknownCluster))
	assert.False(t, errors.Is(err, ErrInvalidArtifact))
}

func TestInvalidCustomerError(t *testing.T) {
	inner := errors.New("not an option")
	err := &InvalidCustomerError{Field: "gender", Value: "x", Err: inner}
	assert.Equal(t, `invalid customer gender="x": not an option`, err.Error())
	assert.True(t, errors.Is(err, inner))

	assert.Equal(t, `invalid customer gender="x"`, (&InvalidCustomerError{Field: "gender", Value: "x"}).Error())
}
