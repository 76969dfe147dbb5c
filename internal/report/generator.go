// Package report renders batch summaries.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"fjacquet/customer-grouper/internal/batch"
	"fjacquet/customer-grouper/internal/logging"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Supported report formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// ReportGenerator renders a batch summary in one of the supported formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &ReportGenerator{
		logger: logger.WithField("component", "ReportGenerator"),
	}
}

// FormatFromPath picks a format from a file extension, defaulting to JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".txt":
		return FormatText
	default:
		return FormatJSON
	}
}

// GenerateReport renders summary in format (json, yaml or text).
func (g *ReportGenerator) GenerateReport(summary *batch.Summary, format string) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("cannot render nil summary")
	}
	switch strings.ToLower(format) {
	case FormatJSON:
		return g.generateJSONReport(summary)
	case FormatYAML, "yml":
		return g.generateYAMLReport(summary)
	case FormatText:
		return g.generateTextReport(summary)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteReport renders summary and writes it to path.
func (g *ReportGenerator) WriteReport(summary *batch.Summary, format, path string) error {
	data, err := g.GenerateReport(summary, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	g.logger.Info("Wrote batch summary",
		logging.Field{Key: logging.FieldOutputFile, Value: path})
	return nil
}

func (g *ReportGenerator) generateJSONReport(summary *batch.Summary) ([]byte, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return data, nil
}

func (g *ReportGenerator) generateYAMLReport(summary *batch.Summary) ([]byte, error) {
	data, err := yaml.Marshal(summary)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return data, nil
}

func (g *ReportGenerator) generateTextReport(summary *batch.Summary) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Customers: %d  Assigned: %d  Invalid: %d\n\n", summary.Total, summary.Assigned, summary.Invalid)

	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CLUSTER\tSEGMENT\tCUSTOMERS")
	for _, sc := range summary.Segments {
		fmt.Fprintf(w, "%d\t%s\t%d\n", sc.ClusterID, sc.Label, sc.Count)
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to render text report: %w", err)
	}

	if len(summary.InvalidRows) > 0 {
		buf.WriteString("\nSkipped rows:\n")
		for _, re := range summary.InvalidRows {
			fmt.Fprintf(&buf, "  line %d (%s): %s\n", re.Row, re.CustomerID, re.Reason)
		}
	}
	return buf.Bytes(), nil
}
