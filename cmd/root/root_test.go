package root_test

import (
	"testing"

	"fjacquet/customer-grouper/cmd/root"
	"fjacquet/customer-grouper/internal/config"

	"github.com/stretchr/testify/assert"
)

func init() {
	root.Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "customer-grouper", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "marketing segments")
	assert.Contains(t, root.Cmd.Long, "pre-trained K-means segmentation model")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRun)
}

func TestRootCommand_Flags(t *testing.T) {
	pf := root.Cmd.PersistentFlags()

	assert.NotNil(t, pf.Lookup("config"))
	assert.NotNil(t, pf.Lookup("log-level"))
	assert.NotNil(t, pf.Lookup("log-format"))

	model := pf.Lookup("model")
	if assert.NotNil(t, model) {
		assert.Equal(t, "m", model.Shorthand)
	}
	segments := pf.Lookup("segments")
	if assert.NotNil(t, segments) {
		assert.Equal(t, "s", segments.Shorthand)
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := &config.Config{
		Log:      config.LogConfig{Level: "info", Format: "text"},
		Model:    config.ModelConfig{Path: "default.yaml"},
		Segments: config.SegmentsConfig{File: ""},
	}

	root.ApplyFlags(cfg, root.GlobalFlags{})
	assert.Equal(t, "default.yaml", cfg.Model.Path)
	assert.Equal(t, "info", cfg.Log.Level)

	root.ApplyFlags(cfg, root.GlobalFlags{
		ModelPath:    "override.yaml",
		SegmentsFile: "segments.yaml",
		LogLevel:     "debug",
		LogFormat:    "json",
	})
	assert.Equal(t, "override.yaml", cfg.Model.Path)
	assert.Equal(t, "segments.yaml", cfg.Segments.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}
