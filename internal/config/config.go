package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Scan mode values.
const (
	ScanModeBoth   = "both"
	ScanModeLocal  = "local"
	ScanModeOnline = "online"
)

// Online source values.
const (
	SourceGoogleBooks = "googlebooks"
	SourceComicVine   = "comicvine"
)

// Subtitle separator values.
const (
	SeparatorHyphen = "hyphen"
	SeparatorColon  = "colon"
	SeparatorSource = "source"
)

// Scan selects which sources a scan consults.
type Scan struct {
	Mode   string `toml:"mode"`
	Source string `toml:"source"`
}

// Naming controls how final names are built.
type Naming struct {
	Padding           int    `toml:"padding"`
	IncludeSubtitle   bool   `toml:"include_subtitle"`
	SubtitleSeparator string `toml:"subtitle_separator"`
	UseSourceFormat   bool   `toml:"use_source_format"`
	NumberPrefix      string `toml:"number_prefix"`
	TitleCaseGuess    bool   `toml:"title_case_guess"`
}

// GoogleBooks contains configuration for the Google Books API.
type GoogleBooks struct {
	APIKey        string `toml:"api_key"`
	BaseURL       string `toml:"base_url"`
	VolumeQueries bool   `toml:"volume_queries"`
}

// ComicVine contains configuration for the ComicVine API.
type ComicVine struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// CacheSettings locates the persisted lookup cache.
type CacheSettings struct {
	Path string `toml:"path"`
}

// History locates the rename history database.
type History struct {
	Path string `toml:"path"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for shelfmark.
type Config struct {
	Scan          Scan          `toml:"scan"`
	Naming        Naming        `toml:"naming"`
	GoogleBooks   GoogleBooks   `toml:"googlebooks"`
	ComicVine     ComicVine     `toml:"comicvine"`
	Cache         CacheSettings `toml:"cache"`
	History       History       `toml:"history"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/shelfmark/config.toml")
}

// Sample returns the embedded sample configuration file contents.
func Sample() string {
	return sampleConfig
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("shelfmark.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
