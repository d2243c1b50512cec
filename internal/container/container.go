// Package container provides dependency injection for the statement-insights
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fjacquet/statement-insights/internal/batch"
	"fjacquet/statement-insights/internal/common"
	"fjacquet/statement-insights/internal/config"
	"fjacquet/statement-insights/internal/currencyutils"
	"fjacquet/statement-insights/internal/dashboard"
	"fjacquet/statement-insights/internal/extractor"
	"fjacquet/statement-insights/internal/logging"
	"fjacquet/statement-insights/internal/models"
	"fjacquet/statement-insights/internal/pdfparser"
	"fjacquet/statement-insights/internal/report"
	"fjacquet/statement-insights/internal/store"
	"fjacquet/statement-insights/internal/validation"
)

// Container holds all application dependencies and provides methods to access them.
//
// The extraction client is created on first use, so commands that only read
// CSV or JSON files work without an API key.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	categories models.CategorySet
	validator  *validation.Validator
	files      *common.TransactionFiles
	budgets    *store.BudgetStore
	reports    *report.ReportGenerator
	session    *dashboard.Session

	clientOnce sync.Once
	client     extractor.Client
	clientErr  error
	closer     func() error
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	return newContainer(cfg, logger), nil
}

// NewContainerWithClient wires the container around an existing extraction
// client and logger instead of connecting to Gemini.
func NewContainerWithClient(cfg *config.Config, client extractor.Client, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if client == nil {
		return nil, fmt.Errorf("extraction client cannot be nil")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}
	c := newContainer(cfg, logger)
	c.clientOnce.Do(func() { c.client = client })
	return c, nil
}

func newContainer(cfg *config.Config, logger logging.Logger) *Container {
	categories := cfg.CategorySet()
	budgets := store.NewBudgetStore(cfg.Budgets.File, categories, logger)
	validator := validation.NewValidator(categories, cfg.Policy(), logger)

	c := &Container{
		logger:     logger,
		config:     cfg,
		categories: categories,
		validator:  validator,
		files:      common.NewTransactionFiles(cfg.Delimiter(), validator, logger),
		budgets:    budgets,
		reports:    report.NewReportGenerator(currencyutils.MustLookup(cfg.Currency.Code), logger),
		session:    dashboard.NewSession(budgets, logger),
	}

	logger.Debug("Container initialized",
		logging.Field{Key: "categories_count", Value: len(categories.Labels())},
		logging.Field{Key: logging.FieldPolicy, Value: string(cfg.Policy())},
		logging.Field{Key: logging.FieldModel, Value: cfg.AI.Model})
	return c
}

// ExtractorConfig maps the application configuration onto the Gemini client settings.
func ExtractorConfig(cfg *config.Config, categories models.CategorySet) extractor.Config {
	return extractor.Config{
		APIKey:            cfg.AI.APIKey,
		Model:             cfg.AI.Model,
		RequestsPerMinute: cfg.AI.RequestsPerMinute,
		Timeout:           time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		MaxRetries:        cfg.AI.MaxRetries,
		Categories:        categories.Strings(),
	}
}

// GetClient returns the extraction client, connecting to Gemini on first use.
func (c *Container) GetClient(ctx context.Context) (extractor.Client, error) {
	c.clientOnce.Do(func() {
		gemini, err := extractor.NewGeminiClient(ctx, ExtractorConfig(c.config, c.categories), c.logger)
		if err != nil {
			c.clientErr = err
			return
		}
		c.client = gemini
		c.closer = gemini.Close
		c.logger.Info("Gemini extraction client ready",
			logging.Field{Key: logging.FieldModel, Value: c.config.AI.Model})
	})
	return c.client, c.clientErr
}

// GetParser returns a PDF statement parser backed by the extraction client.
func (c *Container) GetParser(ctx context.Context) (*pdfparser.Parser, error) {
	client, err := c.GetClient(ctx)
	if err != nil {
		return nil, err
	}
	return pdfparser.NewParser(client, c.validator, c.logger), nil
}

// GetBatchProcessor returns a processor for directories of PDF statements.
func (c *Container) GetBatchProcessor(ctx context.Context) (*batch.Processor, error) {
	parser, err := c.GetParser(ctx)
	if err != nil {
		return nil, err
	}
	return batch.NewProcessor(parser, c.files, c.config.Batch.Concurrency, c.logger), nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetCategories returns the configured category label set.
func (c *Container) GetCategories() models.CategorySet {
	return c.categories
}

// GetTransactionFiles returns the CSV and JSON transaction file handler.
func (c *Container) GetTransactionFiles() *common.TransactionFiles {
	return c.files
}

// GetBudgetStore returns the YAML budget store.
func (c *Container) GetBudgetStore() *store.BudgetStore {
	return c.budgets
}

// GetReportGenerator returns the report renderer for the configured currency.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// GetSession returns the dashboard session.
func (c *Container) GetSession() *dashboard.Session {
	return c.session
}

// Close releases the extraction client, if one was created.
func (c *Container) Close() error {
	if c.closer == nil {
		return nil
	}
	if err := c.closer(); err != nil {
		return fmt.Errorf("failed to close extraction client: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}
