package main

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"shelfmark/internal/reconcile"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiCyan   = "\x1b[36m"
)

// statusColor maps a row tag to the ANSI color used for its status cell.
func statusColor(tag string) string {
	switch tag {
	case reconcile.TagMatch:
		return ansiGreen
	case reconcile.TagReady:
		return ansiCyan
	case reconcile.TagConflict, reconcile.TagOffline:
		return ansiYellow
	case reconcile.TagDuplicate:
		return ansiRed
	case reconcile.TagEdited:
		return ansiBlue
	default:
		return ""
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderRows renders the scan result table. Status cells are colorized when
// the writer is a terminal.
func renderRows(rows []reconcile.Row, colorize bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Current Name", "Proposed Name", "Status"})

	for _, row := range rows {
		status := row.Status
		if colorize {
			if color := statusColor(row.Tag); color != "" {
				status = color + status + ansiReset
			}
		}
		tw.AppendRow(table.Row{row.Original, row.FinalName, status})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// renderKeyValues renders a two-column table for listings like history.
func renderKeyValues(headers []string, body [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range body {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}
