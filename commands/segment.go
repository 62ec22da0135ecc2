package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/c360studio/bizspec/ontology"
)

func newAddSegmentCmd() *cobra.Command {
	var (
		sourcePath    string
		companySize   string
		industry      string
		annualRevenue string
	)

	cmd := &cobra.Command{
		Use:   "add-segment <name>",
		Short: "Add a customer segment to the ontology",
		Long: `Add-segment appends a segment declaration to customers/segments.yaml
under the ontology directory, creating the file if needed. The property
flags take type-definition strings in the ontology mini-language, for
example 'enum["small", "large"]' or 'range(1M, 100M)'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if sourcePath == "" {
				sourcePath = loadConfig().Ontology.Path
			}

			segmentsPath := filepath.Join(sourcePath, "customers", "segments.yaml")

			ont := ontology.New()
			if _, err := os.Stat(segmentsPath); err == nil {
				loaded, err := ontology.FromFile(segmentsPath)
				if err != nil {
					return fmt.Errorf("load segments file: %w", err)
				}
				ont = loaded
			}

			if ont.Segment(name) != nil {
				return fmt.Errorf("segment %s already exists", name)
			}

			seg := &ontology.Segment{
				Name:       name,
				Properties: map[string]any{},
			}
			if companySize != "" {
				seg.Properties["companySize"] = companySize
			}
			if industry != "" {
				seg.Properties["industry"] = industry
			}
			if annualRevenue != "" {
				seg.Properties["annualRevenue"] = annualRevenue
			}
			ont.Segments[name] = seg

			if err := ont.Save(segmentsPath); err != nil {
				return fmt.Errorf("save segments file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added segment %s to %s\n", name, segmentsPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePath, "ontology", "", "Ontology directory")
	cmd.Flags().StringVar(&companySize, "company-size", `enum["small", "medium", "large"]`, "companySize type definition")
	cmd.Flags().StringVar(&industry, "industry", "string", "industry type definition")
	cmd.Flags().StringVar(&annualRevenue, "annual-revenue", "range(0, 1B+)", "annualRevenue type definition")

	return cmd
}
