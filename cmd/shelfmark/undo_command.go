package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shelfmark/internal/history"
	"shelfmark/internal/logging"
	"shelfmark/internal/notifications"
	"shelfmark/internal/renamer"
)

func newUndoCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo [batch-id]",
		Short: "Revert the most recent rename batch, or a specific batch by ID",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open rename history: %w", err)
			}
			defer store.Close()

			var batch *history.Batch
			if len(args) > 0 {
				batch, err = store.GetBatch(cmd.Context(), args[0])
			} else {
				batch, err = store.LatestBatch(cmd.Context())
			}
			if err != nil {
				return err
			}
			if batch.UndoneAt != nil {
				return fmt.Errorf("batch %s was already undone", batch.ID)
			}

			summary, err := renamer.Revert(cmd.Context(), batch.Directory, batch.Renames, logger)
			if err != nil {
				return err
			}

			if err := store.MarkUndone(cmd.Context(), batch.ID); err != nil {
				return err
			}

			notifier := notifications.NewService(cfg)
			if err := notifier.NotifyBatchReverted(cmd.Context(), batch.Directory, len(summary.Applied)); err != nil {
				logger.Warn("notification failed", logging.Error(err))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Reverted batch %s from %s: %d restored, %d failed\n",
				batch.ID, batch.AppliedAt.Local().Format(time.RFC822), len(summary.Applied), len(summary.Failures))
			for _, failure := range summary.Failures {
				fmt.Fprintf(out, "  failed: %s -> %s (%s)\n", failure.Original, failure.Target, failure.Reason)
			}
			return nil
		},
	}
	return cmd
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List applied rename batches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open rename history: %w", err)
			}
			defer store.Close()

			batches, err := store.ListBatches(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(batches) == 0 {
				fmt.Fprintln(out, "No rename batches recorded")
				return nil
			}

			body := make([][]string, 0, len(batches))
			for _, batch := range batches {
				undone := ""
				if batch.UndoneAt != nil {
					undone = batch.UndoneAt.Local().Format(time.RFC822)
				}
				body = append(body, []string{
					batch.ID,
					batch.Directory,
					batch.AppliedAt.Local().Format(time.RFC822),
					undone,
				})
			}
			fmt.Fprintln(out, renderKeyValues([]string{"Batch", "Directory", "Applied", "Undone"}, body))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum batches to list")
	return cmd
}
