package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	switch c.Scan.Mode {
	case ScanModeBoth, ScanModeLocal, ScanModeOnline:
	default:
		return fmt.Errorf("scan.mode must be %q, %q, or %q", ScanModeBoth, ScanModeLocal, ScanModeOnline)
	}

	switch c.Scan.Source {
	case SourceGoogleBooks, SourceComicVine:
	default:
		return fmt.Errorf("scan.source must be %q or %q", SourceGoogleBooks, SourceComicVine)
	}

	if c.Scan.Source == SourceComicVine && c.Scan.Mode != ScanModeLocal && c.ComicVine.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/shelfmark/config.toml"
		}
		return fmt.Errorf("comicvine.api_key is required when scan.source is %q. Edit %s (create with 'shelfmark config init')", SourceComicVine, defaultPath)
	}

	if c.Naming.Padding != 2 && c.Naming.Padding != 3 {
		return errors.New("naming.padding must be 2 or 3")
	}

	switch c.Naming.SubtitleSeparator {
	case SeparatorHyphen, SeparatorColon, SeparatorSource:
	default:
		return fmt.Errorf("naming.subtitle_separator must be %q, %q, or %q", SeparatorHyphen, SeparatorColon, SeparatorSource)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be %q or %q", "console", "json")
	}

	return nil
}
