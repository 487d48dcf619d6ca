package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Lookup cache utilities",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show cache location and entry count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cache, err := ctx.openLookupCache()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cache path: %s\n", cfg.Cache.Path)
			fmt.Fprintf(out, "Entries:    %d\n", cache.Len())
			return nil
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every cached lookup result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.openLookupCache()
			if err != nil {
				return err
			}
			removed := cache.Len()
			cache.Clear()
			if err := cache.Save(); err != nil {
				return fmt.Errorf("save cleared cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached lookups\n", removed)
			return nil
		},
	})

	return cacheCmd
}
