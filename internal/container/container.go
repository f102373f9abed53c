// Package container provides dependency injection for the txextract
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"finize/txextract/internal/batch"
	"finize/txextract/internal/categorizer"
	"finize/txextract/internal/common"
	"finize/txextract/internal/config"
	"finize/txextract/internal/extraction"
	"finize/txextract/internal/ledger"
	"finize/txextract/internal/logging"
	"finize/txextract/internal/store"
	"finize/txextract/internal/taxonomy"
)

// Option overrides a dependency, mostly for tests.
type Option func(*options)

type options struct {
	logger   logging.Logger
	store    store.TaxonomyStoreInterface
	aiClient categorizer.AIClient
	clock    extraction.Clock
}

// WithLogger replaces the logger built from the log configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTaxonomyStore replaces the file-backed taxonomy store.
func WithTaxonomyStore(s store.TaxonomyStoreInterface) Option {
	return func(o *options) { o.store = s }
}

// WithAIClient replaces the Gemini client. It is used whether or not AI is
// enabled in the configuration.
func WithAIClient(client categorizer.AIClient) Option {
	return func(o *options) { o.aiClient = client }
}

// WithClock replaces the clock used to date extracted records.
func WithClock(clock extraction.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       store.TaxonomyStoreInterface
	taxonomy    *taxonomy.Taxonomy
	extractor   *extraction.Extractor
	aiClient    categorizer.AIClient
	categorizer *categorizer.Categorizer
	ledger      *ledger.Ledger
	processor   *batch.Processor
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = config.NewLoggerFromConfig(cfg)
	}
	common.SetLogger(logger)

	taxonomyStore := o.store
	if taxonomyStore == nil {
		taxonomyStore = store.NewTaxonomyStore(cfg.Taxonomy.File, logger)
	}
	tax, err := taxonomyStore.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}

	extractorOpts := []extraction.Option{extraction.WithLogger(logger)}
	if o.clock != nil {
		extractorOpts = append(extractorOpts, extraction.WithClock(o.clock))
	}
	extractor := extraction.New(tax, extractorOpts...)

	// Create AI client (if enabled)
	aiClient := o.aiClient
	if aiClient == nil && cfg.AI.Enabled && cfg.AI.APIKey != "" {
		gemini, err := categorizer.NewGeminiClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create AI client: %w", err)
		}
		aiClient = gemini
	}
	if aiClient != nil {
		logger.Info("AI categorization enabled")
	} else {
		logger.Debug("AI categorization disabled")
	}

	cat := categorizer.NewCategorizer(tax, aiClient, categorizer.AIOptions{
		RequestsPerMinute: cfg.AI.RequestsPerMinute,
		Timeout:           time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
	}, logger)

	txLedger := ledger.New(ledger.Options{AllowZeroAmount: cfg.Ledger.AllowZeroAmount}, logger)

	processor := batch.NewProcessor(extractor, batch.Options{
		Workers:             cfg.Extraction.Workers,
		SequentialThreshold: cfg.Extraction.SequentialThreshold,
	}, logger)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldStrategy, Value: cat.Strategies()},
		logging.Field{Key: logging.FieldWorkers, Value: cfg.Extraction.Workers})

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       taxonomyStore,
		taxonomy:    tax,
		extractor:   extractor,
		aiClient:    aiClient,
		categorizer: cat,
		ledger:      txLedger,
		processor:   processor,
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

// GetStore returns the taxonomy store.
func (c *Container) GetStore() store.TaxonomyStoreInterface {
	return c.store
}

// GetTaxonomy returns the loaded taxonomy.
func (c *Container) GetTaxonomy() *taxonomy.Taxonomy {
	return c.taxonomy
}

// GetExtractor returns the extraction pipeline.
func (c *Container) GetExtractor() *extraction.Extractor {
	return c.extractor
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetAIClient returns the container's AI client instance.
// Returns nil if AI is not enabled.
func (c *Container) GetAIClient() categorizer.AIClient {
	return c.aiClient
}

// GetLedger returns the in-memory ledger.
func (c *Container) GetLedger() *ledger.Ledger {
	return c.ledger
}

// GetProcessor returns the batch processor.
func (c *Container) GetProcessor() *batch.Processor {
	return c.processor
}

// Close releases the AI client when it holds a connection.
func (c *Container) Close() error {
	if closer, ok := c.aiClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close AI client: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
