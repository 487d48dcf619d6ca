package renamer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"shelfmark/internal/logging"
	"shelfmark/internal/reconcile"
)

// ErrUnresolvedDuplicates is returned when a batch still contains rows that
// target the same final name. Applying such a batch would clobber files.
var ErrUnresolvedDuplicates = errors.New("batch contains unresolved duplicate targets")

// Rename records one applied filename change.
type Rename struct {
	From string
	To   string
}

// Failure records one rename that could not be applied.
type Failure struct {
	Original string
	Target   string
	Reason   string
}

// Summary reports what a batch application did.
type Summary struct {
	Applied  []Rename
	Skipped  int
	Failures []Failure
}

// Renamer applies reconciliation rows inside a single directory.
type Renamer struct {
	dir    string
	logger *slog.Logger
}

// New builds a renamer rooted at dir.
func New(dir string, logger *slog.Logger) *Renamer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Renamer{dir: dir, logger: logger}
}

// Apply renames every actionable row in the batch. Rows whose final name
// matches the original, carries no proposal, or was never resolved online
// are skipped. The batch is rejected outright when duplicate targets remain.
func (r *Renamer) Apply(ctx context.Context, rows []reconcile.Row) (Summary, error) {
	for _, row := range rows {
		if row.Status == reconcile.StatusDuplicate {
			return Summary{}, fmt.Errorf("%w: %s", ErrUnresolvedDuplicates, row.FinalName)
		}
	}

	var summary Summary
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if !row.Resolved() || row.Status == reconcile.StatusNoMatch {
			summary.Skipped++
			continue
		}

		from := filepath.Join(r.dir, row.Original)
		to := filepath.Join(r.dir, row.FinalName)
		if _, err := os.Stat(to); err == nil {
			summary.Failures = append(summary.Failures, Failure{
				Original: row.Original,
				Target:   row.FinalName,
				Reason:   "target already exists",
			})
			r.logger.Warn("skipping rename, target exists",
				logging.String("from", row.Original),
				logging.String("to", row.FinalName))
			continue
		}
		if err := os.Rename(from, to); err != nil {
			summary.Failures = append(summary.Failures, Failure{
				Original: row.Original,
				Target:   row.FinalName,
				Reason:   err.Error(),
			})
			r.logger.Error("rename failed",
				logging.String("from", row.Original),
				logging.String("to", row.FinalName),
				logging.Error(err))
			continue
		}
		summary.Applied = append(summary.Applied, Rename{From: row.Original, To: row.FinalName})
		r.logger.Info("renamed",
			logging.String("from", row.Original),
			logging.String("to", row.FinalName))
	}
	return summary, nil
}

// Revert undoes a previously applied batch, newest entry first, inside dir.
// Entries whose renamed file has since moved are reported as failures.
func Revert(ctx context.Context, dir string, renames []Rename, logger *slog.Logger) (Summary, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	var summary Summary
	for i := len(renames) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		entry := renames[i]
		from := filepath.Join(dir, entry.To)
		to := filepath.Join(dir, entry.From)
		if _, err := os.Stat(from); err != nil {
			summary.Failures = append(summary.Failures, Failure{
				Original: entry.To,
				Target:   entry.From,
				Reason:   "file no longer present",
			})
			continue
		}
		if _, err := os.Stat(to); err == nil {
			summary.Failures = append(summary.Failures, Failure{
				Original: entry.To,
				Target:   entry.From,
				Reason:   "original name already taken",
			})
			continue
		}
		if err := os.Rename(from, to); err != nil {
			summary.Failures = append(summary.Failures, Failure{
				Original: entry.To,
				Target:   entry.From,
				Reason:   err.Error(),
			})
			continue
		}
		summary.Applied = append(summary.Applied, Rename{From: entry.To, To: entry.From})
		logger.Info("reverted",
			logging.String("from", entry.To),
			logging.String("to", entry.From))
	}
	return summary, nil
}
