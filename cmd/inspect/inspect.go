// Package inspect describes the loaded model artifact and segment catalog
package inspect

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"fjacquet/customer-grouper/cmd/common"
	"fjacquet/customer-grouper/cmd/root"
	"fjacquet/customer-grouper/internal/artifact"
	"fjacquet/customer-grouper/internal/models"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the inspect command
var Cmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the model artifact dimensions and segment catalog",
	Long: `Show the model artifact dimensions and segment catalog.

Loading the artifact checks every component, so inspect doubles as a
validation step for a freshly exported model.`,
	Run: inspectFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", common.FormatText, "Output format (text, json, yaml)")
}

// Description is the machine-readable inspect output.
type Description struct {
	ModelFile       string           `json:"model_file" yaml:"model_file"`
	FormatVersion   int              `json:"format_version" yaml:"format_version"`
	Features        []string         `json:"features" yaml:"features"`
	NumericFeatures []string         `json:"numeric_features" yaml:"numeric_features"`
	Clusters        int              `json:"clusters" yaml:"clusters"`
	PCAComponents   int              `json:"pca_components" yaml:"pca_components"`
	Segments        []models.Segment `json:"segments" yaml:"segments"`
	MissingSegments []int            `json:"missing_segments,omitempty" yaml:"missing_segments,omitempty"`
}

func inspectFunc(cmd *cobra.Command, args []string) {
	c := root.MustContainer(context.Background())
	defer func() {
		if err := c.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close container")
		}
	}()

	d := Describe(c.GetArtifact(), c.GetCatalog())
	if err := Write(os.Stdout, d, format); err != nil {
		root.Log.Fatalf("Failed to print description: %v", err)
	}
}

// Describe summarises a loaded artifact and catalog.
func Describe(a *artifact.Artifact, catalog *models.Catalog) Description {
	return Description{
		ModelFile:       a.Path,
		FormatVersion:   a.FormatVersion,
		Features:        a.FeatureNames,
		NumericFeatures: a.NumericFeatures,
		Clusters:        a.KMeans.NumClusters(),
		PCAComponents:   a.PCA.NumComponents(),
		Segments:        catalog.Segments(),
		MissingSegments: catalog.Missing(a.KMeans.NumClusters()),
	}
}

// Write prints d in the requested format.
func Write(w io.Writer, d Description, format string) error {
	switch strings.ToLower(format) {
	case common.FormatJSON:
		return common.WriteJSON(w, d)
	case common.FormatYAML, "yml":
		return common.WriteYAML(w, d)
	case common.FormatText, "":
		return writeText(w, d)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeText(w io.Writer, d Description) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Model file:\t%s\n", d.ModelFile)
	fmt.Fprintf(tw, "Format version:\t%d\n", d.FormatVersion)
	fmt.Fprintf(tw, "Features:\t%d (%d numeric)\n", len(d.Features), len(d.NumericFeatures))
	fmt.Fprintf(tw, "Clusters:\t%d\n", d.Clusters)
	fmt.Fprintf(tw, "PCA components:\t%d\n", d.PCAComponents)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "ID\tLABEL\tDESCRIPTION")
	for _, s := range d.Segments {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", s.ID, s.Label, s.Description)
	}
	if len(d.MissingSegments) > 0 {
		fmt.Fprintf(tw, "\nWARNING: no segment metadata for cluster ids %v\n", d.MissingSegments)
	}
	return tw.Flush()
}
