package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelfmark/internal/notifications"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var mode string

	cmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "Scan a directory and preview proposed archive names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(args)
			if err != nil {
				return err
			}

			rows, _, err := ctx.runScan(cmd, dir, mode)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, rows)
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "No .cbz archives found in %s\n", dir)
				return nil
			}

			fmt.Fprintln(out, renderRows(rows, shouldColorize(out)))
			fmt.Fprintf(out, "%d archives scanned, %d ready to rename\n", len(rows), countResolved(rows))

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if notifyErr := notifications.NewService(cfg).NotifyScanCompleted(cmd.Context(), dir, len(rows), countResolved(rows)); notifyErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "  [WARN] notification failed: %v\n", notifyErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit rows as JSON")
	cmd.Flags().StringVar(&mode, "mode", "", "Override scan mode (both, local, online)")
	return cmd
}
