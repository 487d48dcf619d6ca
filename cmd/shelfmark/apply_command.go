package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelfmark/internal/history"
	"shelfmark/internal/logging"
	"shelfmark/internal/notifications"
	"shelfmark/internal/renamer"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var mode string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply [directory]",
		Short: "Scan a directory and apply the proposed archive names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(args)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			rows, _, err := ctx.runScan(cmd, dir, mode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "No .cbz archives found in %s\n", dir)
				return nil
			}

			fmt.Fprintln(out, renderRows(rows, shouldColorize(out)))
			if dryRun {
				fmt.Fprintf(out, "Dry run: %d of %d archives would be renamed\n", countResolved(rows), len(rows))
				return nil
			}

			summary, err := renamer.New(dir, logger).Apply(cmd.Context(), rows)
			if err != nil {
				return err
			}

			if len(summary.Applied) > 0 {
				store, err := history.Open(cfg.History.Path)
				if err != nil {
					return fmt.Errorf("open rename history: %w", err)
				}
				defer store.Close()
				batchID, err := store.RecordBatch(cmd.Context(), dir, summary.Applied)
				if err != nil {
					return fmt.Errorf("record rename batch: %w", err)
				}
				fmt.Fprintf(out, "Recorded batch %s\n", batchID)
			}

			notifier := notifications.NewService(cfg)
			if err := notifier.NotifyBatchApplied(cmd.Context(), dir, len(summary.Applied), len(summary.Failures)); err != nil {
				logger.Warn("notification failed", logging.Error(err))
			}

			fmt.Fprintf(out, "Renamed %d, skipped %d, failed %d\n",
				len(summary.Applied), summary.Skipped, len(summary.Failures))
			for _, failure := range summary.Failures {
				fmt.Fprintf(out, "  failed: %s -> %s (%s)\n", failure.Original, failure.Target, failure.Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Override scan mode (both, local, online)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Preview without renaming")
	return cmd
}
