package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"shelfmark/internal/config"
	"shelfmark/internal/identify"
	"shelfmark/internal/logging"
	"shelfmark/internal/reconcile"
	"shelfmark/internal/textutil"
)

// Saver persists accumulated lookup results at the end of a scan.
type Saver interface {
	Save() error
}

// quotaResetter is implemented by sources whose daily quota flag should be
// cleared before a fresh scan.
type quotaResetter interface {
	ResetQuota()
}

// Scanner produces reconciliation rows for every archive in a directory.
type Scanner struct {
	cfg    *config.Config
	source identify.Source
	saver  Saver
	status identify.StatusFunc
	logger *slog.Logger
}

// New builds a scanner. source may be nil for local-only scans, and saver
// may be nil when no cache is in play.
func New(cfg *config.Config, source identify.Source, saver Saver, status identify.StatusFunc, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scanner{cfg: cfg, source: source, saver: saver, status: status, logger: logger}
}

// Scan examines every .cbz file in dir and returns one row per file, with
// batch-level duplicate targets flagged. Lookup results accumulated during
// the scan are saved before returning, even on error.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]reconcile.Row, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	if r, ok := s.source.(quotaResetter); ok {
		r.ResetQuota()
	}
	defer s.saveCache()

	mode := s.cfg.Scan.Mode
	var rows []reconcile.Row
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".cbz") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		row, err := s.scanFile(ctx, name, mode)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, identify.ErrInvalidAPIKey) {
				return rows, err
			}
			s.logger.Warn("lookup failed, keeping local result",
				logging.String("file", name),
				logging.Error(err))
		}
		rows = append(rows, row)
	}

	return reconcile.FlagDuplicates(rows), nil
}

func (s *Scanner) scanFile(ctx context.Context, name, mode string) (reconcile.Row, error) {
	parsed := identify.Parse(name)
	if s.cfg.Naming.TitleCaseGuess {
		parsed.Series = textutil.TitleCase(parsed.Series)
	}
	padded := reconcile.PadNumber(parsed.Number, s.cfg.Naming.Padding)
	localName := textutil.SanitizeFileName(reconcile.LocalName(parsed, padded))

	record := identify.NullRecord()
	var lookupErr error
	if mode != config.ScanModeLocal && s.source != nil {
		record, lookupErr = s.source.Lookup(ctx, identify.Request{
			Term:         parsed.Series,
			VolumeNumber: parsed.Number,
			NumberPrefix: s.cfg.Naming.NumberPrefix,
		})
		if lookupErr != nil {
			record = identify.NullRecord()
		}
	}

	var onlineName string
	if record.Found() {
		onlineName = textutil.SanitizeFileName(reconcile.OnlineName(record, parsed, padded, s.cfg.Naming))
	}

	row := reconcile.BuildRow(name, record, localName, onlineName, mode)
	return row, lookupErr
}

func (s *Scanner) saveCache() {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(); err != nil {
		s.logger.Warn("failed to save lookup cache", logging.Error(err))
		s.status.Notify("Could not save the lookup cache", identify.SeverityWarn)
	}
}
