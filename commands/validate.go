package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/c360studio/bizspec/ontology"
	"github.com/c360studio/bizspec/validate"
	"github.com/c360studio/bizspec/watch"
)

func newValidateCmd() *cobra.Command {
	var watchMode bool

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate ontology documents",
		Long: `Validate checks every segment, campaign, lead-scoring model and type
declaration against the naming and typing conventions and reports all
findings. The path may be a single YAML file or a directory tree of them;
it defaults to the configured ontology path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := loadConfig().Ontology.Path
			if len(args) > 0 {
				path = args[0]
			}

			slog.Info("Validation started",
				"run_id", uuid.New().String(),
				"path", path,
				"watch", watchMode)

			if !watchMode {
				return runValidation(cmd, path)
			}
			return watchValidation(cmd, path)
		},
	}

	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Revalidate whenever ontology files change")

	return cmd
}

func runValidation(cmd *cobra.Command, path string) error {
	ont, err := ontology.Load(path, nil)
	if err != nil {
		return fmt.Errorf("load ontology: %w", err)
	}

	v := validate.New(ont)
	findings := v.ValidateAll()
	summary := v.Summary()

	printFindings(cmd, findings, summary)

	if !summary.Valid {
		return fmt.Errorf("ontology is invalid: %d error(s)", summary.Errors)
	}
	return nil
}

func printFindings(cmd *cobra.Command, findings []validate.Finding, summary validate.Summary) {
	out := cmd.OutOrStdout()

	if len(findings) > 0 {
		table := newSimpleTable("Validation Findings", "Severity", "Location", "Message")
		for _, f := range findings {
			table.AddRow(string(f.Severity), f.Location, f.Message)
		}
		fmt.Fprintln(out, table.View())
	}

	status := "VALID"
	if !summary.Valid {
		status = "INVALID"
	}
	fmt.Fprintf(out, "%s: %d finding(s), %d error(s), %d warning(s)\n",
		status, summary.Total, summary.Errors, summary.Warnings)
}

// watchValidation revalidates on every change batch until interrupted.
func watchValidation(cmd *cobra.Command, path string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(watch.Config{
		Path:          path,
		DebounceDelay: 300 * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()

	// Initial run; watch mode reports but never exits on findings.
	if err := runValidation(cmd, path); err != nil {
		slog.Warn("Validation failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-w.Batches():
			if !ok {
				return nil
			}
			slog.Info("Ontology changed, revalidating", "files", len(batch.Paths))
			if err := runValidation(cmd, path); err != nil {
				slog.Warn("Validation failed", "error", err)
			}
		}
	}
}
