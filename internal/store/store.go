// Package store persists the user's monthly budgets as YAML.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/statement-insights/internal/fileutils"
	"fjacquet/statement-insights/internal/logging"
	"fjacquet/statement-insights/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultBudgetsFile is used when configuration names no budgets file.
const DefaultBudgetsFile = "budgets.yaml"

// configDirName is the per-user and per-project directory searched for data files.
const configDirName = ".statement-insights"

// BudgetStore loads and saves budgets from a YAML file.
type BudgetStore struct {
	File       string
	categories models.CategorySet
	logger     logging.Logger
}

// NewBudgetStore creates a store for file. Category names in the file are
// matched against categories.
func NewBudgetStore(file string, categories models.CategorySet, logger logging.Logger) *BudgetStore {
	if file == "" {
		file = DefaultBudgetsFile
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &BudgetStore{File: file, categories: categories, logger: logger}
}

// budgetsDocument is the on-disk layout.
type budgetsDocument struct {
	Budgets map[string]limit `yaml:"budgets"`
}

// limit keeps the exact decimal value of a YAML number.
type limit decimal.Decimal

func (l limit) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: decimal.Decimal(l).String()}, nil
}

func (l *limit) UnmarshalYAML(value *yaml.Node) error {
	d, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid budget limit %q", value.Line, value.Value)
	}
	*l = limit(d)
	return nil
}

// FindConfigFile looks for filename as given, then under .statement-insights
// in the working directory and in the user's home directory.
func (s *BudgetStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join(configDirName, filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, configDirName, filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// Load reads the budgets. A missing file yields an empty budget.
// Unknown category names are rejected rather than mapped to Misc so that a
// typo in the file does not silently merge two budgets.
func (s *BudgetStore) Load() (models.Budget, error) {
	path, err := s.FindConfigFile(s.File)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("Budgets file not found, no budgets set",
			logging.Field{Key: logging.FieldFile, Value: s.File})
		return models.Budget{}, nil
	}

	data, err := fileutils.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read budgets file: %w", err)
	}

	var doc budgetsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not parse budgets file %s: %w", path, err)
	}

	budget := make(models.Budget, len(doc.Budgets))
	for name, value := range doc.Budgets {
		category, ok := s.categories.Normalize(name)
		if !ok {
			return nil, fmt.Errorf("budgets file %s: unknown category %q", path, name)
		}
		budget[category] = decimal.Decimal(value)
	}

	s.logger.Debug("Loaded budgets",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(budget)})
	return budget, nil
}

// Save writes budget to the file it was loaded from, or to File when none exists yet.
func (s *BudgetStore) Save(budget models.Budget) error {
	path, err := s.FindConfigFile(s.File)
	if err != nil {
		path = s.File
	}

	doc := budgetsDocument{Budgets: make(map[string]limit, len(budget))}
	for category, value := range budget {
		doc.Budgets[string(category)] = limit(value)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling budgets: %w", err)
	}
	if err := fileutils.WriteFile(path, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing budgets: %w", err)
	}

	s.logger.Debug("Saved budgets",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(budget)})
	return nil
}

// Set stores the limit for one category. A zero limit keeps the entry but
// disables the budget.
func (s *BudgetStore) Set(name string, value decimal.Decimal) (models.Category, error) {
	category, ok := s.categories.Normalize(name)
	if !ok {
		return "", fmt.Errorf("unknown category %q", name)
	}
	if value.IsNegative() {
		return "", fmt.Errorf("budget limit for %s must not be negative", category)
	}

	budget, err := s.Load()
	if err != nil {
		return "", err
	}
	budget[category] = value
	if err := s.Save(budget); err != nil {
		return "", err
	}
	return category, nil
}
