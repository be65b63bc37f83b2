package store

import (
	"fmt"
	"os"
	"path/filepath"

	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultRulesFile is looked up when no rules file is configured.
const DefaultRulesFile = "rules.yaml"

// RulesStore loads keyword classifier groups from a YAML file.
type RulesStore struct {
	File   string
	logger logging.Logger
}

// NewRulesStore creates a store for the given rules file.
func NewRulesStore(file string, logger logging.Logger) *RulesStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &RulesStore{File: file, logger: logger}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *RulesStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join(".jose", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".jose", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadGroups reads the keyword groups. A missing file yields nil groups so
// the classifier falls back to its defaults.
func (s *RulesStore) LoadGroups() ([]models.KeywordGroup, error) {
	filename := s.File
	if filename == "" {
		filename = DefaultRulesFile
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Rules file not found, using built-in keyword groups",
				logging.Field{Key: "file", Value: filename})
			return nil, nil
		}
		return nil, fmt.Errorf("error resolving rules file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	var cfg models.RulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing rules file %s: %w", path, err)
	}

	for i, g := range cfg.Groups {
		if g.Category == "" {
			return nil, fmt.Errorf("rules file %s: group %d (%s) has no category", path, i, g.Name)
		}
		if !g.Type.Valid() {
			return nil, fmt.Errorf("rules file %s: group %d (%s) has invalid type %q", path, i, g.Name, g.Type)
		}
	}

	s.logger.Info("Loaded keyword rules",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(cfg.Groups)})
	return cfg.Groups, nil
}

// SaveGroups writes groups to the configured file, creating its directory.
func (s *RulesStore) SaveGroups(groups []models.KeywordGroup) error {
	filename := s.File
	if filename == "" {
		filename = DefaultRulesFile
	}
	if err := os.MkdirAll(filepath.Dir(filename), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating rules directory: %w", err)
	}

	data, err := yaml.Marshal(models.RulesConfig{Groups: groups})
	if err != nil {
		return fmt.Errorf("error encoding rules: %w", err)
	}
	if err := os.WriteFile(filename, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing rules file: %w", err)
	}
	return nil
}
