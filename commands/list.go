package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/c360studio/bizspec/compile"
	"github.com/c360studio/bizspec/ontology"
)

func newListSegmentsCmd() *cobra.Command {
	var sourcePath string

	cmd := &cobra.Command{
		Use:   "list-segments [path]",
		Short: "List declared customer segments",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ont, err := loadOntology(resolvePath(args, sourcePath))
			if err != nil {
				return err
			}

			if len(ont.Segments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No segments declared")
				return nil
			}

			table := newSimpleTable("Segments", "Name", "Properties", "Constraints", "Stages")
			for _, name := range ont.SegmentNames() {
				seg := ont.Segments[name]
				table.AddRow(name,
					strconv.Itoa(len(seg.Properties)),
					strconv.Itoa(len(seg.Constraints)),
					strconv.Itoa(len(seg.JourneyStages)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.View())
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePath, "ontology", "", "Ontology file or directory")
	return cmd
}

func newListCampaignsCmd() *cobra.Command {
	var sourcePath string

	cmd := &cobra.Command{
		Use:   "list-campaigns [path]",
		Short: "List declared marketing campaigns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ont, err := loadOntology(resolvePath(args, sourcePath))
			if err != nil {
				return err
			}

			if len(ont.Campaigns) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No campaigns declared")
				return nil
			}

			table := newSimpleTable("Campaigns", "Name", "Owner", "Type", "Components")
			for _, name := range ont.CampaignNames() {
				c := ont.Campaigns[name]
				table.AddRow(name,
					metadataValue(c.Metadata, "owner_team"),
					metadataValue(c.Metadata, "campaign_type"),
					strconv.Itoa(len(c.Components)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.View())
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePath, "ontology", "", "Ontology file or directory")
	return cmd
}

func newListTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-targets",
		Short: "List available compilation targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := newSimpleTable("Targets", "Name", "Description")
			for _, target := range compile.Targets() {
				table.AddRow(target.Name, target.Description)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.View())
			return nil
		},
	}
}

// resolvePath prefers the positional path over the flag.
func resolvePath(args []string, flagPath string) string {
	if len(args) > 0 {
		return args[0]
	}
	return flagPath
}

func loadOntology(sourcePath string) (*ontology.Ontology, error) {
	if sourcePath == "" {
		sourcePath = loadConfig().Ontology.Path
	}
	ont, err := ontology.Load(sourcePath, nil)
	if err != nil {
		return nil, fmt.Errorf("load ontology: %w", err)
	}
	return ont, nil
}

func metadataValue(metadata map[string]any, key string) string {
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return "-"
}
