// Package container provides dependency injection for the eip application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"eip/internal/classifier"
	"eip/internal/config"
	"eip/internal/ledger"
	"eip/internal/logging"
	"eip/internal/report"
	"eip/internal/search"
	"eip/internal/sheet"
	"eip/internal/store"
	"eip/internal/validation"
	"eip/internal/workspace"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation apart from the ledger, which is
// opened on first use.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      *store.RuleStore
	classifier *classifier.RuleClassifier
	reader     *sheet.Reader
	writer     *sheet.Writer
	workspace  *workspace.Workspace
	searcher   *search.Searcher
	reports    *report.ReportGenerator
	validator  *validation.Validator

	ledger *ledger.Ledger
}

// NewContainer creates and wires all application dependencies with a logger
// built from the configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	ruleStore := store.NewRuleStore(cfg.Rules.File, logger)
	rules, err := ruleStore.LoadRules()
	if err != nil {
		return nil, fmt.Errorf("failed to load classifier rules: %w", err)
	}
	cls, err := classifier.New(rules, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build classifier: %w", err)
	}

	delimiter := cfg.Delimiter()
	reader := sheet.NewReader(logger, delimiter)
	writer := sheet.NewWriter(logger, delimiter)
	ws := workspace.New(cfg.Data.Directory, cfg.Data.ExportDirectory, cls, reader, writer, logger)

	logger.Debug("Container initialized successfully",
		logging.F("rules_count", len(cls.Rules())),
		logging.F("data_directory", cfg.Data.Directory))

	return &Container{
		logger:     logger,
		config:     cfg,
		store:      ruleStore,
		classifier: cls,
		reader:     reader,
		writer:     writer,
		workspace:  ws,
		searcher:   search.NewSearcher(ws, logger),
		reports:    report.NewReportGenerator(logger),
		validator:  validation.NewValidator(),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger { return c.logger }

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config { return c.config }

// GetStore returns the rule store.
func (c *Container) GetStore() *store.RuleStore { return c.store }

// GetClassifier returns the classifier built from the configured rules.
func (c *Container) GetClassifier() *classifier.RuleClassifier { return c.classifier }

// GetReader returns the sheet reader.
func (c *Container) GetReader() *sheet.Reader { return c.reader }

// GetWriter returns the sheet writer.
func (c *Container) GetWriter() *sheet.Writer { return c.writer }

// GetWorkspace returns the saved-lists workspace.
func (c *Container) GetWorkspace() *workspace.Workspace { return c.workspace }

// GetSearcher returns the searcher over the workspace.
func (c *Container) GetSearcher() *search.Searcher { return c.searcher }

// GetReportGenerator returns the summary renderer.
func (c *Container) GetReportGenerator() *report.ReportGenerator { return c.reports }

// GetValidator returns the item input validator.
func (c *Container) GetValidator() *validation.Validator { return c.validator }

// GetLedger opens the order ledger on first call.
func (c *Container) GetLedger() (*ledger.Ledger, error) {
	if c.ledger != nil {
		return c.ledger, nil
	}
	l, err := ledger.Open(c.config.LedgerPath(), c.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open order ledger: %w", err)
	}
	c.ledger = l
	return l, nil
}

// Close releases the ledger if it was opened.
func (c *Container) Close() error {
	if c.ledger != nil {
		if err := c.ledger.Close(); err != nil {
			return err
		}
		c.ledger = nil
	}
	return nil
}
