// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/customer-grouper/internal/models"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// WriteAssignment prints a single assignment in the requested format.
func WriteAssignment(w io.Writer, a models.Assignment, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return WriteJSON(w, a)
	case FormatYAML, "yml":
		return WriteYAML(w, a)
	case FormatText, "":
		return writeAssignmentText(w, a)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeAssignmentText(w io.Writer, a models.Assignment) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Customer Segment: %d\n", a.ClusterID)
	fmt.Fprintf(&b, "%s\n", a.Label)
	fmt.Fprintf(&b, "%s\n", a.Description)
	fmt.Fprintf(&b, "Age group: %s\n", a.AgeGroup)
	if len(a.Projection) > 0 {
		coords := make([]string, len(a.Projection))
		for i, v := range a.Projection {
			coords[i] = fmt.Sprintf("%.4f", v)
		}
		fmt.Fprintf(&b, "PCA projection: [%s]\n", strings.Join(coords, ", "))
	}
	if a.Insight != "" {
		fmt.Fprintf(&b, "\nInsight: %s\n", a.Insight)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON prints v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteYAML prints v as YAML.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding YAML: %w", err)
	}
	return enc.Close()
}
