// Package logging builds the application slog logger and provides the
// standardized attribute helpers used across shelfmark components.
//
// Components receive a *slog.Logger and tag themselves with a component
// attribute via NewComponentLogger. Output is either human-readable console
// text or JSON, selected by configuration.
package logging
