// Package store loads the segment catalog (cluster id -> label and
// description) from YAML.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/customer-grouper/internal/logging"
	"fjacquet/customer-grouper/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultCatalogFile is looked up when no catalog path is configured.
const DefaultCatalogFile = "segments.yaml"

// catalogFile is the on-disk layout of a segment catalog.
type catalogFile struct {
	Segments []models.Segment `yaml:"segments"`
}

// SegmentStore resolves and loads the segment catalog file.
type SegmentStore struct {
	CatalogFile string
	logger      logging.Logger
}

// NewSegmentStore creates a store for the given catalog file name or path.
func NewSegmentStore(catalogFile string, logger logging.Logger) *SegmentStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &SegmentStore{
		CatalogFile: catalogFile,
		logger:      logger,
	}
}

// FindConfigFile looks for filename as given, then under ./config/, then under
// ~/.config/customer-grouper/.
func (s *SegmentStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "customer-grouper", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadCatalog loads the catalog. When no file is found the built-in catalog
// for the shipped model is returned; a file that exists but is malformed is an
// error.
func (s *SegmentStore) LoadCatalog() (*models.Catalog, error) {
	filename := s.CatalogFile
	if filename == "" {
		filename = DefaultCatalogFile
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		s.logger.Info("Segment catalog file not found, using built-in segments",
			logging.Field{Key: logging.FieldCatalogFile, Value: filename})
		return models.DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading segment catalog: %w", err)
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing segment catalog %s: %w", path, err)
	}

	s.logger.Debug("Loaded segment catalog",
		logging.Field{Key: logging.FieldCatalogFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: catalog.Len()})
	return catalog, nil
}

// ParseCatalog decodes catalog YAML. Both the documented
// "segments: [...]" layout and a bare list are accepted.
func ParseCatalog(data []byte) (*models.Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err == nil && len(file.Segments) > 0 {
		return models.NewCatalog(file.Segments)
	}

	var list []models.Segment
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("unrecognised catalog layout: %w", err)
	}
	return models.NewCatalog(list)
}

// SaveCatalog writes catalog to path in the documented layout.
func (s *SegmentStore) SaveCatalog(path string, catalog *models.Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(catalogFile{Segments: catalog.Segments()})
	if err != nil {
		return fmt.Errorf("error marshaling segment catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing segment catalog: %w", err)
	}

	s.logger.Debug("Saved segment catalog",
		logging.Field{Key: logging.FieldCatalogFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: catalog.Len()})
	return nil
}
