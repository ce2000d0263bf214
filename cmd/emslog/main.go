package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/niems-digital/emslog/internal/config"
	"github.com/niems-digital/emslog/internal/extract"
	"github.com/niems-digital/emslog/internal/registry"
)

var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := &cobra.Command{
		Use:   "emslog",
		Short: "emslog — Thai EMS operational-log normalization pipeline",
		Long:  "emslog converts free-form Thai activity logs into normalized activity records, enriched from the projects-master registry and classified against the Section-15 mandate taxonomy.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		parseCmd(),
		projectsCmd(),
		serveCmd(),
		mcpCmd(),
	)

	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil && cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// newEngine builds the configured extraction backend.
func newEngine(ctx context.Context, logger *slog.Logger) (extract.Engine, error) {
	switch cfg.Engine {
	case config.EngineGemini:
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set")
		}
		return extract.NewGeminiEngine(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
	default:
		if cfg.Claude.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
		}
		return extract.NewClaudeEngine(cfg.Claude.APIKey, cfg.Claude.Model, logger), nil
	}
}

// newRegistry loads the projects-master registry, embedded or from the
// configured external file.
func newRegistry(logger *slog.Logger) (*registry.Registry, error) {
	if cfg.Registry.ProjectsFile != "" {
		return registry.LoadFile(cfg.Registry.ProjectsFile, logger)
	}
	return registry.Load(logger)
}
