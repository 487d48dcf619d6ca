package identify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"shelfmark/internal/identify/googlebooks"
	"shelfmark/internal/logging"
)

const (
	googleBooksMaxResults  = 5
	googleBooksMaxRetries  = 3
	googleBooksCallSpacing = 500 * time.Millisecond
)

// GoogleBooksSource resolves series names against the Google Books volumes
// API. One instance owns its rate-limit and quota state; the caller resets
// the quota flag at the start of each scan session.
type GoogleBooksSource struct {
	searcher      googlebooks.Searcher
	cache         Cache
	limiter       *Limiter
	status        StatusFunc
	logger        *slog.Logger
	volumeQueries bool
}

// GoogleBooksOption configures a GoogleBooksSource.
type GoogleBooksOption func(*GoogleBooksSource)

// WithVolumeQueries makes lookups include the volume number in the query.
// The default series-only lookup costs one API call per series rather than
// one per file.
func WithVolumeQueries() GoogleBooksOption {
	return func(s *GoogleBooksSource) {
		s.volumeQueries = true
	}
}

// NewGoogleBooksSource builds the adapter. A nil status sink is valid.
func NewGoogleBooksSource(searcher googlebooks.Searcher, cache Cache, limiter *Limiter, status StatusFunc, logger *slog.Logger, opts ...GoogleBooksOption) *GoogleBooksSource {
	if limiter == nil {
		limiter = NewLimiter(googleBooksCallSpacing)
	}
	s := &GoogleBooksSource{
		searcher: searcher,
		cache:    cache,
		limiter:  limiter,
		status:   status,
		logger:   logging.NewComponentLogger(logger, "googlebooks"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name identifies the source in logs and status output.
func (s *GoogleBooksSource) Name() string { return "Google Books" }

// ResetQuota clears the daily-quota flag ahead of a new scan.
func (s *GoogleBooksSource) ResetQuota() { s.limiter.ResetQuota() }

// Lookup runs the query attempt ladder for the request and returns the
// first extractor-accepted candidate, or the null record. Exhausted lookups
// cache a null record so later scans short-circuit; quota exhaustion is
// terminal for the session and is deliberately not cached.
func (s *GoogleBooksSource) Lookup(ctx context.Context, req Request) (Record, error) {
	if strings.TrimSpace(req.Term) == "" {
		return NullRecord(), nil
	}
	if s.limiter.QuotaExhausted() {
		s.status.Notify("Daily quota exceeded. Resets ~midnight PT.", SeverityError)
		return NullRecord(), ErrQuotaExhausted
	}
	if !s.volumeQueries {
		req.VolumeNumber = ""
	}

	// Volume-specific lookups must never share a cache slot with the
	// series-only form of the same term.
	cacheKey := req.Term
	if req.VolumeNumber != "" {
		cacheKey = fmt.Sprintf("GB::%s||%s", req.Term, req.VolumeNumber)
	}
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached, nil
	}

	for _, query := range s.queryPlan(req) {
		record, err := s.runQuery(ctx, query, req.Term)
		if err != nil {
			if errors.Is(err, ErrQuotaExhausted) || errors.Is(err, context.Canceled) {
				return NullRecord(), err
			}
			s.logger.Warn("query failed", logging.String("query", query), logging.Error(err))
			continue
		}
		if record.Found() {
			s.cache.Put(cacheKey, record)
			return record, nil
		}
	}

	s.cache.Put(cacheKey, NullRecord())
	return NullRecord(), nil
}

// queryPlan builds the ordered attempt list: a single combined query when a
// volume number is requested, otherwise exact quoted title search, unquoted
// phrase search, then progressively shorter word prefixes.
func (s *GoogleBooksSource) queryPlan(req Request) []string {
	if req.VolumeNumber != "" {
		return []string{fmt.Sprintf(`intitle:"%s" intitle:"%s"`, req.Term, req.VolumeNumber)}
	}
	attempts := []string{fmt.Sprintf(`intitle:"%s"`, req.Term)}
	words := strings.Fields(req.Term)
	if len(words) > 1 {
		attempts = append(attempts, fmt.Sprintf(`"%s"`, req.Term))
		for i := len(words) - 1; i >= 1; i-- {
			attempts = append(attempts, fmt.Sprintf(`intitle:"%s"`, strings.Join(words[:i], " ")))
		}
	}
	return attempts
}

// runQuery issues one query attempt, retrying 429 responses with
// exponential backoff before declaring the daily quota spent.
func (s *GoogleBooksSource) runQuery(ctx context.Context, query, term string) (Record, error) {
	if err := s.limiter.Wait(ctx, s.status); err != nil {
		return NullRecord(), err
	}

	for retry := 0; retry < googleBooksMaxRetries; retry++ {
		volumes, err := s.searcher.Search(ctx, query, googleBooksMaxResults)
		if err == nil {
			return s.firstAccepted(volumes, term), nil
		}
		if !errors.Is(err, googlebooks.ErrRateLimited) {
			return NullRecord(), err
		}
		backoff := time.Duration(1<<(retry+1)) * time.Second // 2s, 4s, 8s
		if retry == googleBooksMaxRetries-1 {
			s.limiter.MarkQuotaExhausted()
			s.status.Notify("Daily quota exceeded. Stopping API calls.", SeverityError)
			return NullRecord(), ErrQuotaExhausted
		}
		s.status.Notify(fmt.Sprintf("Google Books rate limited, retrying in %s", backoff), SeverityWarn)
		s.logger.Warn("rate limited",
			logging.String("query", query),
			logging.Duration("backoff", backoff))
		if err := s.limiter.Backoff(ctx, backoff); err != nil {
			return NullRecord(), err
		}
	}
	return NullRecord(), nil
}

// firstAccepted runs candidates through the title extractor and returns the
// first verified record; later items are not consulted once one is accepted.
func (s *GoogleBooksSource) firstAccepted(volumes []googlebooks.Volume, term string) Record {
	for _, vol := range volumes {
		if vol.Title == "" {
			continue
		}
		fullTitle := vol.Title
		if vol.Subtitle != "" {
			fullTitle = vol.Title + ": " + vol.Subtitle
		}
		if record := ExtractTitle(fullTitle, term); record.Found() {
			return record
		}
	}
	return NullRecord()
}
