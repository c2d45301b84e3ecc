package main

import (
	"context"
	"fmt"

	"github.com/jonathan/career-coach/internal/coach"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/store"
)

// resolveConfig merges an optional config file under environment defaults
func resolveConfig(configPath string) (*config.Config, error) {
	cfg := config.FromEnv()
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		merged := fileCfg.MergeWithDefaults(*cfg)
		cfg = &merged
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openState selects the state backend: PostgreSQL when DATABASE_URL is set,
// the JSON file otherwise. The returned closer releases the backend.
func openState(ctx context.Context, cfg *config.Config) (*store.State, func(), error) {
	if cfg.DatabaseURL != "" {
		pg, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return store.New(pg), pg.Close, nil
	}

	file, err := store.NewFile(cfg.StatePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open state file %s: %w", cfg.StatePath, err)
	}
	return store.New(file), func() {}, nil
}

// newCompleter builds the completion client; a missing API key yields a
// client with Available() == false and the engine runs on the synthesizer.
func newCompleter(ctx context.Context, cfg *config.Config) *coach.Client {
	llmCfg := llm.DefaultConfig()
	if t := cfg.CompletionTimeout(); t > 0 {
		llmCfg.Timeout = t
	}
	return coach.New(ctx, llmCfg, cfg.APIKey)
}
