package config

const (
	defaultScanMode           = ScanModeBoth
	defaultOnlineSource       = SourceGoogleBooks
	defaultPadding            = 2
	defaultSubtitleSeparator  = SeparatorHyphen
	defaultNumberPrefix       = "#"
	defaultGoogleBooksBaseURL = "https://www.googleapis.com/books/v1"
	defaultComicVineBaseURL   = "https://comicvine.gamespot.com/api"
	defaultCachePath          = "~/.cache/shelfmark/lookup_cache.json"
	defaultHistoryPath        = "~/.local/share/shelfmark/history.db"
	defaultNotifyTimeout      = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scan: Scan{
			Mode:   defaultScanMode,
			Source: defaultOnlineSource,
		},
		Naming: Naming{
			Padding:           defaultPadding,
			SubtitleSeparator: defaultSubtitleSeparator,
			UseSourceFormat:   true,
			NumberPrefix:      defaultNumberPrefix,
		},
		GoogleBooks: GoogleBooks{
			BaseURL: defaultGoogleBooksBaseURL,
		},
		ComicVine: ComicVine{
			BaseURL: defaultComicVineBaseURL,
		},
		Cache: CacheSettings{
			Path: defaultCachePath,
		},
		History: History{
			Path: defaultHistoryPath,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
