package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage server response caches",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "flush",
		Short: "Drop every cached response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := newClient().FlushCaches(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("caches flushed")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "cleanup",
		Short: "Evict expired cache entries now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			evicted, err := newClient().CleanupCaches(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("evicted %d expired entries\n", evicted)
			return nil
		},
	})

	return cmd
}
