package cmd

import (
	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search games by title",
		Long:  "Searches the catalog by title and shows the cheapest known price per game.",
		Example: `  gsc search "witcher 3"
  gsc search "hollow knight" --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().SearchGames(cmd.Context(), args[0], limit)
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
