// Bookwise - Semantic Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package commands implements the bookwise CLI.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tomtom215/bookwise/internal/config"
	"github.com/tomtom215/bookwise/internal/embedding"
	"github.com/tomtom215/bookwise/internal/logging"
	"github.com/tomtom215/bookwise/internal/recommend"
)

// Output formats accepted by --format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// globalOptions holds the persistent flags of one command tree.
type globalOptions struct {
	format  string
	verbose bool
	envFile string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "bookwise",
		Short: "Semantic book recommendations from a CSV catalog",
		Long: `bookwise embeds a book catalog and answers free-text queries with the
closest titles by cosine similarity.

Configuration comes from config.yaml and environment variables (see
CATALOG_PATH, EMBEDDINGS_PATH, EMBEDDING_PROVIDER, OPENAI_API_KEY). A .env
file in the working directory is loaded first.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.format != FormatTable && opts.format != FormatJSON {
				return fmt.Errorf("--format must be %q or %q, got %q", FormatTable, FormatJSON, opts.format)
			}
			return loadEnvFile(opts.envFile)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.format, "format", FormatTable, "Output format: table or json")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Environment file to load if present")

	cmd.AddCommand(NewEmbedCmd(opts))
	cmd.AddCommand(NewQueryCmd(opts))
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// setupLogging sends logs to stderr so stdout stays machine readable.
func setupLogging(cfg *config.Config, verbose bool, stderr io.Writer) {
	level := "warn"
	if verbose {
		level = cfg.Logging.Level
	}
	logging.Init(logging.Config{Level: level, Format: "console", Output: stderr})
}

// bootstrap loads configuration, builds the model chain and prepares the
// catalog. The caller closes the returned models.
func bootstrap(ctx context.Context, cmd *cobra.Command, opts *globalOptions, rebuild bool) (*recommend.BootstrapResult, *embedding.Models, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if rebuild {
		if cfg.Catalog.Path == "" {
			return nil, nil, errors.New("--rebuild needs CATALOG_PATH")
		}
		cfg.Catalog.Rebuild = true
	}
	setupLogging(cfg, opts.verbose, cmd.ErrOrStderr())

	models, err := embedding.New(cfg.Embedding)
	if err != nil {
		return nil, nil, err
	}

	res, err := recommend.Bootstrap(ctx, cfg, models)
	if err != nil {
		_ = models.Close()
		return nil, nil, err
	}
	return res, models, nil
}
