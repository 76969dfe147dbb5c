package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/customer-grouper/internal/artifact"
	"fjacquet/customer-grouper/internal/batch"
	"fjacquet/customer-grouper/internal/logging"
	"fjacquet/customer-grouper/internal/models"
	"fjacquet/customer-grouper/internal/report"
	"fjacquet/customer-grouper/internal/segmenter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchCommand_CommandMetadata(t *testing.T) {
	assert.Equal(t, "batch", Cmd.Use)
	assert.Contains(t, Cmd.Short, "Batch assign")
	assert.NotNil(t, Cmd.Run)
	assert.Contains(t, Cmd.Long, "Example")
	assert.Contains(t, Cmd.Long, "Customer ID")

	input := Cmd.Flags().Lookup("input")
	require.NotNil(t, input)
	assert.Equal(t, "i", input.Shorthand)
	output := Cmd.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "o", output.Shorthand)
	assert.NotNil(t, Cmd.Flags().Lookup("summary"))
}

func TestRun(t *testing.T) {
	logger := logging.NewMockLogger()
	a, err := artifact.Load("../../testdata/model.yaml")
	require.NoError(t, err)
	seg, err := segmenter.New(a, models.DefaultCatalog(), logger)
	require.NoError(t, err)

	dir := t.TempDir()
	o := Options{
		Input:   "../../testdata/customers.csv",
		Output:  filepath.Join(dir, "assignments.csv"),
		Summary: filepath.Join(dir, "summary.json"),
		Format:  report.FormatText,
	}

	var buf bytes.Buffer
	require.NoError(t, Run(context.Background(), batch.NewProcessor(seg, logger), report.NewReportGenerator(logger), o, &buf, logger))

	assert.Contains(t, buf.String(), "Customers: 5  Assigned: 5  Invalid: 0")

	_, err = os.Stat(o.Output)
	assert.NoError(t, err)

	summary, err := os.ReadFile(o.Summary)
	require.NoError(t, err)
	assert.Contains(t, string(summary), `"assigned": 5`)
}
