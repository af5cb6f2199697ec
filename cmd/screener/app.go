package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/audit"
	"github.com/jonathan/candidate-screener/internal/config"
	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/logging"
	"github.com/jonathan/candidate-screener/internal/observability"
	"github.com/jonathan/candidate-screener/internal/pipeline"
	"github.com/jonathan/candidate-screener/internal/schemas"
	"github.com/jonathan/candidate-screener/internal/skills"
)

// app holds the collaborators a command needs. Fields are filled lazily by the
// open* helpers and released by Close.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	printer  *observability.Printer
	embedder llm.Embedder
	store    *db.DB
	service  *pipeline.Service
}

// loadConfig merges the config file, persistent flags, environment and defaults.
// Flags win over the file; the environment only fills what is still empty.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("db-url") {
		cfg.DatabaseURL = databaseURL
	}
	if flags.Changed("api-key") {
		cfg.APIKey = apiKey
	}
	if flags.Changed("embedding-provider") {
		cfg.EmbeddingProvider = embedProvider
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("json-logs") {
		cfg.LogJSON = jsonLogs
	}

	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg.MergeWithDefaults(config.Defaults()), nil
}

// newApp loads configuration and builds the logger and printer.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogJSON, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		printer: observability.NewPrinter(os.Stdout),
	}, nil
}

// Close releases the store and embedder and flushes the logger.
func (a *app) Close() {
	if a.embedder != nil {
		if err := a.embedder.Close(); err != nil {
			a.logger.Warn("failed to close embedder", zap.Error(err))
		}
	}
	if a.store != nil {
		a.store.Close()
	}
	_ = a.logger.Sync()
}

// openEmbedder creates the configured embedding provider.
func (a *app) openEmbedder(ctx context.Context) (llm.Embedder, error) {
	if a.embedder != nil {
		return a.embedder, nil
	}

	embCfg := a.cfg.EmbeddingConfig()
	if embCfg.Provider == llm.ProviderGemini && a.cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable or --api-key is required for the gemini provider (use --embedding-provider hash to run offline)")
	}

	embedder, err := llm.NewEmbedder(ctx, embCfg, a.cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	a.embedder = embedder
	return embedder, nil
}

// newEvaluator builds the evaluator from the configured weights and threshold.
func (a *app) newEvaluator() (*pipeline.Evaluator, error) {
	weights := a.cfg.ScoringWeights()
	return pipeline.NewEvaluator(pipeline.EvaluatorOptions{
		Classifier:          skills.NewSectionMarkerClassifier(),
		SimilarityThreshold: a.cfg.SimilarityThreshold,
		Weights:             &weights,
	})
}

// openStore connects to PostgreSQL.
func (a *app) openStore(ctx context.Context) (*db.DB, error) {
	if a.store != nil {
		return a.store, nil
	}
	if a.cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable or --db-url is required")
	}

	store, err := db.Connect(ctx, a.cfg.DatabaseURL, a.logger)
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

// openService wires the pipeline service over PostgreSQL. The embedder is only
// created when withEmbedder is set, so read-only commands run without an API key.
func (a *app) openService(ctx context.Context, withEmbedder bool) (*pipeline.Service, error) {
	if a.service != nil {
		return a.service, nil
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}

	var embedder llm.Embedder = unavailableEmbedder{}
	if withEmbedder {
		if embedder, err = a.openEmbedder(ctx); err != nil {
			return nil, err
		}
	}

	evaluator, err := a.newEvaluator()
	if err != nil {
		return nil, err
	}

	opts := pipeline.Options{
		Store:     store,
		Embedder:  embedder,
		Evaluator: evaluator,
		Logger:    a.logger,
		Audit:     audit.NewLogSink(a.logger),
	}
	if a.cfg.Verbose {
		progress := observability.NewPrinter(os.Stderr)
		opts.OnProgress = progress.PrintProgress
	}

	svc, err := pipeline.NewService(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	a.service = svc
	return svc, nil
}

// output writes v as indented JSON when --json is set, and otherwise calls pretty.
func (a *app) output(v any, pretty func()) error {
	if !jsonOutput {
		pretty()
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// checkSchema validates doc against an embedded schema. A mismatch is reported as a
// warning and never fails the command.
func (a *app) checkSchema(name string, doc any) {
	if err := schemas.ValidateDocument(name, doc); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: output does not match %s: %v\n", name, err)
	}
}

// unavailableEmbedder stands in for commands that never embed.
type unavailableEmbedder struct{}

func (unavailableEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, &llm.EmbeddingError{Message: "embedding is not available for this command"}
}

func (unavailableEmbedder) Close() error { return nil }
