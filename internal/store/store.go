// Package store loads and saves classifier rule files.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"eip/internal/classifier"
	"eip/internal/logging"
	"eip/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultRulesFile is the file name looked up when none is configured.
const DefaultRulesFile = "rules.yaml"

// RuleSet is the on-disk shape of a rules file.
type RuleSet struct {
	Rules []classifier.Rule `yaml:"rules"`
}

// RuleStore manages loading and saving of classifier rules.
type RuleStore struct {
	RulesFile string
	logger    logging.Logger
}

// NewRuleStore creates a store for rulesFile. An empty name means
// DefaultRulesFile.
func NewRuleStore(rulesFile string, logger logging.Logger) *RuleStore {
	if rulesFile == "" {
		rulesFile = DefaultRulesFile
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &RuleStore{RulesFile: rulesFile, logger: logger}
}

// FindConfigFile looks for filename as given, then under ./config/, then under
// $HOME/.config/eip/.
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
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
		locations = append(locations, filepath.Join(homeDir, ".config", "eip", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadRules reads and validates the rules file. A missing file returns nil
// rules and no error so the caller falls back to the built-in defaults.
func (s *RuleStore) LoadRules() ([]classifier.Rule, error) {
	path, err := s.FindConfigFile(s.RulesFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Rules file not found, using built-in rules",
				logging.F(logging.FieldFile, s.RulesFile))
			return nil, nil
		}
		return nil, fmt.Errorf("error resolving rules file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	rules, err := decodeRules(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing rules file %s: %w", path, err)
	}
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("rules file %s: rule %d: %w", path, i+1, err)
		}
	}

	s.logger.Debug("Loaded classifier rules",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(rules)))
	return rules, nil
}

// decodeRules accepts either a "rules:" document or a bare list.
func decodeRules(data []byte) ([]classifier.Rule, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var list []classifier.Rule
		if err := root.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var set RuleSet
	if err := root.Decode(&set); err != nil {
		return nil, err
	}
	return set.Rules, nil
}

// SaveRules writes rules to path, creating parent directories. An empty path
// writes to the configured RulesFile.
func (s *RuleStore) SaveRules(path string, rules []classifier.Rule) error {
	if path == "" {
		path = s.RulesFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	data, err := yaml.Marshal(RuleSet{Rules: rules})
	if err != nil {
		return fmt.Errorf("error marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing rules file: %w", err)
	}

	s.logger.Info("Saved classifier rules",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(rules)))
	return nil
}
