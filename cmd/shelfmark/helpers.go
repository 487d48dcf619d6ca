package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"shelfmark/internal/config"
	"shelfmark/internal/identify"
	"shelfmark/internal/lookupcache"
	"shelfmark/internal/reconcile"
	"shelfmark/internal/scanner"
)

// resolveDir turns the optional positional directory argument into an
// absolute path, defaulting to the working directory.
func resolveDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

// statusSink prints source progress notices (rate-limit waits, quota
// exhaustion) to the command's stderr as they happen.
func statusSink(cmd *cobra.Command) identify.StatusFunc {
	return func(message string, severity identify.Severity) {
		label := "INFO"
		switch severity {
		case identify.SeverityWarn:
			label = "WARN"
		case identify.SeverityError:
			label = "ERROR"
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "  [%s] %s\n", label, message)
	}
}

// runScan executes the full scan pipeline for dir and returns the
// reconciled rows. An empty modeOverride uses the configured scan mode.
func (c *commandContext) runScan(cmd *cobra.Command, dir, modeOverride string) ([]reconcile.Row, *lookupcache.Cache, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}

	runCfg := *cfg
	if modeOverride != "" {
		runCfg.Scan.Mode = modeOverride
		if err := runCfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	cache := lookupcache.New(runCfg.Cache.Path, logger)
	status := statusSink(cmd)
	source, err := c.buildSource(&runCfg, cache, status)
	if err != nil {
		return nil, nil, err
	}

	rows, err := scanner.New(&runCfg, source, cache, status, logger).Scan(cmd.Context(), dir)
	if err != nil {
		return nil, nil, err
	}
	return rows, cache, nil
}

// countResolved tallies rows that propose a rename.
func countResolved(rows []reconcile.Row) int {
	resolved := 0
	for _, row := range rows {
		if row.Resolved() && row.Status != reconcile.StatusNoMatch && row.Status != reconcile.StatusDuplicate {
			resolved++
		}
	}
	return resolved
}
