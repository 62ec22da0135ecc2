// Package commands provides the bizspec command-line interface: ontology
// validation, compilation to downstream targets, project scaffolding, and
// ontology editing helpers.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/bizspec/config"
)

// NewRootCmd builds the bizspec root command with all subcommands attached.
func NewRootCmd(version string) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "bizspec",
		Short: "Business ontology compiler",
		Long: `Bizspec validates business ontology documents and compiles them into
downstream artifacts.

Ontologies declare customer segments, marketing campaigns and lead-scoring
models in YAML. Bizspec checks them against naming and typing conventions,
validates concrete data records against segment schemas, and generates
JSON Schema, pydantic models, TypeScript interfaces, Salesforce metadata,
HubSpot properties and Markdown documentation from a single source of
truth.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newValidateCmd(),
		newCompileCmd(),
		newListSegmentsCmd(),
		newListCampaignsCmd(),
		newListTargetsCmd(),
		newAddSegmentCmd(),
		newInitCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("bizspec version %s\n", version)
			},
		},
	)

	return cmd
}

// configureLogging installs the default slog logger. The flag wins over the
// configured level; both default to info.
func configureLogging(flagLevel string) {
	levelName := flagLevel
	if levelName == "" {
		if cfg, err := config.NewLoader(nil).Load(); err == nil {
			levelName = cfg.Log.Level
		}
	}

	level := slog.LevelInfo
	switch strings.ToLower(levelName) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadConfig loads the layered configuration for a command run.
func loadConfig() *config.Config {
	cfg, err := config.NewLoader(nil).Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		return config.DefaultConfig()
	}
	return cfg
}
