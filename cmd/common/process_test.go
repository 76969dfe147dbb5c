package common

import (
	"bytes"
	"testing"

	"fjacquet/customer-grouper/internal/models"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAssignment() models.Assignment {
	return models.Assignment{
		ClusterID:   4,
		Label:       "Budget spenders",
		Description: "Careful, value-driven buyers.",
		AgeGroup:    models.AgeGroup26To35,
	}
}

func TestWriteAssignment_Text(t *testing.T) {
	var buf bytes.Buffer
	a := sampleAssignment()
	a.Projection = []float64{-1.29401, -0.39273}

	require.NoError(t, WriteAssignment(&buf, a, "text"))

	out := buf.String()
	assert.Contains(t, out, "Customer Segment: 4\nBudget spenders\n")
	assert.Contains(t, out, "Age group: 26-35")
	assert.Contains(t, out, "PCA projection: [-1.2940, -0.3927]")
	assert.NotContains(t, out, "Insight")
}

func TestWriteAssignment_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAssignment(&buf, sampleAssignment(), "json"))

	var got models.Assignment
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleAssignment(), got)
}

func TestWriteAssignment_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAssignment(&buf, sampleAssignment(), "yaml"))
	assert.Contains(t, buf.String(), "cluster_id: 4")
	assert.Contains(t, buf.String(), "age_group: 26-35")
}

func TestWriteAssignment_UnknownFormat(t *testing.T) {
	err := WriteAssignment(&bytes.Buffer{}, sampleAssignment(), "xml")
	assert.EqualError(t, err, "unsupported output format: xml")
}
