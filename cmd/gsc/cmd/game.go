package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	apiclient "github.com/gamescout/gamescout/internal/api/client"
)

func gameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game <id|slug>",
		Short: "Show game details and current deals",
		Long: "Fetches the full detail view for one game, including platforms,\n" +
			"companies, websites, and current store deals. Numeric arguments are\n" +
			"treated as catalog IDs, anything else as a slug.",
		Example: `  gsc game 1942
  gsc game the-witcher-3-wild-hunt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()

			var (
				resp *apiclient.GameResponse
				err  error
			)
			if id, convErr := strconv.ParseInt(args[0], 10, 64); convErr == nil {
				resp, err = c.GetGame(cmd.Context(), id)
			} else {
				resp, err = c.GetGameBySlug(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}
			return printGameDetail(&resp.Game)
		},
	}

	return cmd
}
