package commands

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/c360studio/bizspec/compile"
	"github.com/c360studio/bizspec/ontology"
	"github.com/c360studio/bizspec/render"
)

func newCompileCmd() *cobra.Command {
	var (
		targets    []string
		outputDir  string
		segment    string
		sourcePath string
	)

	cmd := &cobra.Command{
		Use:   "compile [path]",
		Short: "Compile the ontology to downstream artifacts",
		Long: `Compile loads the ontology and generates artifacts for each requested
target under the output directory, one subdirectory per target. Run
"bizspec list-targets" for the available targets.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if len(args) > 0 {
				sourcePath = args[0]
			}
			if sourcePath == "" {
				sourcePath = cfg.Ontology.Path
			}
			if len(targets) == 0 {
				targets = cfg.Compile.Targets
			}
			if outputDir == "" {
				outputDir = cfg.Compile.Output
			}

			ont, err := ontology.Load(sourcePath, nil)
			if err != nil {
				return fmt.Errorf("load ontology: %w", err)
			}

			renderer, err := render.NewTemplateRenderer()
			if err != nil {
				return fmt.Errorf("load templates: %w", err)
			}

			logger := slog.Default().With("run_id", uuid.New().String())
			logger.Info("Compilation started",
				"targets", targets,
				"output", outputDir,
				"segment", segment)

			c := compile.New(ont, renderer, logger)
			if err := c.All(targets, outputDir, segment); err != nil {
				return fmt.Errorf("compile: %w", err)
			}

			logger.Info("Compilation finished")
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&targets, "target", "t", nil, "Targets to compile (repeat or comma-separate)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory")
	cmd.Flags().StringVarP(&segment, "segment", "s", "", "Compile a single segment only")
	cmd.Flags().StringVar(&sourcePath, "ontology", "", "Ontology file or directory")

	return cmd
}
