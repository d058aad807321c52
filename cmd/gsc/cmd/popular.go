package cmd

import (
	"github.com/spf13/cobra"
)

func popularCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "popular",
		Short:   "List popular games",
		Long:    "Shows highly rated games from the catalog.",
		Example: "  gsc popular --limit 10",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().PopularGames(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}
			return printResultsTable(resp.Results)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results")

	return cmd
}
