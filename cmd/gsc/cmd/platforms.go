package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func platformsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "platforms [id]",
		Short: "List catalog platforms",
		Long: "Without arguments, lists the catalog platform directory. With a\n" +
			"platform ID, lists the top-rated games for that platform.",
		Example: `  gsc platforms
  gsc platforms 130 --limit 10`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()

			if len(args) == 1 {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid platform id %q", args[0])
				}

				resp, err := c.PlatformGames(cmd.Context(), id, limit)
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(resp)
				}
				return printResultsTable(resp.Results)
			}

			resp, err := c.ListPlatforms(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			return printPlatformsTable(resp.Platforms)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of games per platform")

	return cmd
}

func storesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stores",
		Short: "List pricing stores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().ListStores(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}
			return printStoresTable(resp.Stores)
		},
	}
}
