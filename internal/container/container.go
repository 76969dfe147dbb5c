// Package container provides dependency injection for the customer-grouper
// application. It loads the model artifact and segment catalog once and wires
// every component that depends on them.
package container

import (
	"context"
	"fmt"
	"time"

	"fjacquet/customer-grouper/internal/artifact"
	"fjacquet/customer-grouper/internal/batch"
	"fjacquet/customer-grouper/internal/common"
	"fjacquet/customer-grouper/internal/config"
	"fjacquet/customer-grouper/internal/logging"
	"fjacquet/customer-grouper/internal/models"
	"fjacquet/customer-grouper/internal/report"
	"fjacquet/customer-grouper/internal/segmenter"
	"fjacquet/customer-grouper/internal/server"
	"fjacquet/customer-grouper/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods. The artifact and catalog it holds are
// shared read-only by every caller.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	artifact  *artifact.Artifact
	store     *store.SegmentStore
	catalog   *models.Catalog
	gemini    *segmenter.GeminiClient
	segmenter *segmenter.Segmenter
	processor *batch.Processor
	reports   *report.ReportGenerator
}

// NewContainer creates and wires all application dependencies using a logger
// built from cfg.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(ctx, cfg, config.ConfigureLoggingFromConfig(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
//
// A missing or malformed model artifact, a feature schema mismatch or an
// invalid segment catalog is returned as an error; callers treat it as fatal.
func NewContainerWithLogger(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	common.SetDelimiter(cfg.DelimiterRune())

	a, err := artifact.Load(cfg.Model.Path)
	if err != nil {
		return nil, fmt.Errorf("error loading model: %w", err)
	}
	logger.Info("Loaded model artifact",
		logging.Field{Key: logging.FieldModelFile, Value: cfg.Model.Path},
		logging.Field{Key: "clusters", Value: a.KMeans.NumClusters()})

	segmentStore := store.NewSegmentStore(cfg.Segments.File, logger)
	catalog, err := segmentStore.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("error loading segment catalog: %w", err)
	}

	var (
		opts   []segmenter.Option
		gemini *segmenter.GeminiClient
	)
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		gemini, err = segmenter.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model, logger)
		if err != nil {
			return nil, fmt.Errorf("error creating insight client: %w", err)
		}
		opts = append(opts, segmenter.WithInsight(gemini, time.Duration(cfg.AI.TimeoutSeconds)*time.Second))
		logger.Info("AI segment insight enabled", logging.Field{Key: "model", Value: cfg.AI.Model})
	} else {
		logger.Debug("AI segment insight disabled")
	}

	seg, err := segmenter.New(a, catalog, logger, opts...)
	if err != nil {
		if gemini != nil {
			_ = gemini.Close()
		}
		return nil, fmt.Errorf("error creating segmenter: %w", err)
	}

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "segments", Value: catalog.Len()},
		logging.Field{Key: "ai_enabled", Value: gemini != nil})

	return &Container{
		logger:    logger,
		config:    cfg,
		artifact:  a,
		store:     segmentStore,
		catalog:   catalog,
		gemini:    gemini,
		segmenter: seg,
		processor: batch.NewProcessor(seg, logger),
		reports:   report.NewReportGenerator(logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetArtifact returns the loaded model artifact.
func (c *Container) GetArtifact() *artifact.Artifact {
	return c.artifact
}

// GetStore returns the segment store.
func (c *Container) GetStore() *store.SegmentStore {
	return c.store
}

// GetCatalog returns the segment catalog.
func (c *Container) GetCatalog() *models.Catalog {
	return c.catalog
}

// GetSegmenter returns the inference adapter.
func (c *Container) GetSegmenter() *segmenter.Segmenter {
	return c.segmenter
}

// GetBatchProcessor returns the batch processor.
func (c *Container) GetBatchProcessor() *batch.Processor {
	return c.processor
}

// GetReportGenerator returns the batch summary renderer.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// InsightEnabled reports whether AI insight is wired in.
func (c *Container) InsightEnabled() bool {
	return c.gemini != nil
}

// NewServer builds the HTTP dashboard around the container's segmenter.
func (c *Container) NewServer() (*server.Server, error) {
	return server.New(c.segmenter, c.logger)
}

// Close releases the insight client, if any.
func (c *Container) Close() error {
	if c.gemini != nil {
		if err := c.gemini.Close(); err != nil {
			return fmt.Errorf("error closing insight client: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
