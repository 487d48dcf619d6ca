package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.Scan.Mode = strings.ToLower(strings.TrimSpace(c.Scan.Mode))
	if c.Scan.Mode == "" {
		c.Scan.Mode = defaultScanMode
	}
	c.Scan.Source = strings.ToLower(strings.TrimSpace(c.Scan.Source))
	if c.Scan.Source == "" {
		c.Scan.Source = defaultOnlineSource
	}

	if c.Naming.Padding == 0 {
		c.Naming.Padding = defaultPadding
	}
	c.Naming.SubtitleSeparator = strings.ToLower(strings.TrimSpace(c.Naming.SubtitleSeparator))
	if c.Naming.SubtitleSeparator == "" {
		c.Naming.SubtitleSeparator = defaultSubtitleSeparator
	}
	if c.Naming.NumberPrefix == "" {
		c.Naming.NumberPrefix = defaultNumberPrefix
	}

	c.GoogleBooks.APIKey = strings.TrimSpace(c.GoogleBooks.APIKey)
	if strings.TrimSpace(c.GoogleBooks.BaseURL) == "" {
		c.GoogleBooks.BaseURL = defaultGoogleBooksBaseURL
	}
	c.ComicVine.APIKey = strings.TrimSpace(c.ComicVine.APIKey)
	if strings.TrimSpace(c.ComicVine.BaseURL) == "" {
		c.ComicVine.BaseURL = defaultComicVineBaseURL
	}

	var err error
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath
	}
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}

	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	return nil
}
