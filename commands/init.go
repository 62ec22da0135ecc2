package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/bizspec/scaffold"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <project-name>",
		Short: "Scaffold a new ontology project",
		Long: `Init creates a project directory with the standard ontology layout
(customers, products, marketing, sales, operations) and starter segment
and campaign documents that validate cleanly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := scaffold.Init(name); err != nil {
				return fmt.Errorf("scaffold project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s\n", name)
			fmt.Fprintf(cmd.OutOrStdout(), "Next: cd %s && bizspec validate ontology\n", name)
			return nil
		},
	}
}
