package identify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"shelfmark/internal/identify/comicvine"
	"shelfmark/internal/logging"
	"shelfmark/internal/textutil"
)

const comicVineResultLimit = 10

// ComicVineSource resolves series names by searching ComicVine issues. An
// issue record carries the parent series name, the issue number, and the
// issue title, which together reconstruct a series+subtitle pair.
type ComicVineSource struct {
	searcher comicvine.Searcher
	cache    Cache
	status   StatusFunc
	logger   *slog.Logger
}

// NewComicVineSource builds the adapter. A nil searcher means no API key is
// configured: every lookup returns the null record immediately.
func NewComicVineSource(searcher comicvine.Searcher, cache Cache, status StatusFunc, logger *slog.Logger) *ComicVineSource {
	return &ComicVineSource{
		searcher: searcher,
		cache:    cache,
		status:   status,
		logger:   logging.NewComponentLogger(logger, "comicvine"),
	}
}

// Name identifies the source in logs and status output.
func (s *ComicVineSource) Name() string { return "ComicVine" }

// Lookup searches issues for the request term, trying the full term first
// and then progressively shorter word prefixes. Candidate filtering is
// two-pass: the first pass requires both token-overlap relevance and an
// issue-number match, the second drops the number requirement.
func (s *ComicVineSource) Lookup(ctx context.Context, req Request) (Record, error) {
	if strings.TrimSpace(req.Term) == "" {
		return NullRecord(), nil
	}

	// Distinct numbering prefixes must not collide in the cache.
	cacheKey := fmt.Sprintf("%s||%s||%s", req.Term, req.VolumeNumber, req.NumberPrefix)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached, nil
	}

	if s.searcher == nil {
		return NullRecord(), nil
	}

	words := strings.Fields(req.Term)
	queries := []string{req.Term}
	for i := len(words) - 1; i >= 1; i-- {
		queries = append(queries, strings.Join(words[:i], " "))
	}

	for _, query := range queries {
		issues, err := s.searcher.SearchIssues(ctx, query, comicVineResultLimit)
		if err != nil {
			if errors.Is(err, comicvine.ErrInvalidAPIKey) {
				s.status.Notify("ComicVine: invalid API key, check configuration", SeverityError)
				s.cache.Put(cacheKey, NullRecord())
				return NullRecord(), ErrInvalidAPIKey
			}
			if errors.Is(err, context.Canceled) {
				return NullRecord(), err
			}
			s.logger.Warn("query failed", logging.String("query", query), logging.Error(err))
			continue
		}
		if record := s.selectCandidate(issues, req); record.Found() {
			s.cache.Put(cacheKey, record)
			return record, nil
		}
	}

	s.cache.Put(cacheKey, NullRecord())
	return NullRecord(), nil
}

func (s *ComicVineSource) selectCandidate(issues []comicvine.Issue, req Request) Record {
	searchTokens := textutil.TokenSet(req.Term)

	for _, requireNumber := range []bool{true, false} {
		for _, issue := range issues {
			seriesName := strings.TrimSpace(issue.Volume.Name)
			if seriesName == "" {
				continue
			}

			resultTokens := textutil.TokenSet(seriesName)
			common := textutil.TokenOverlap(searchTokens, resultTokens)
			if common == 0 {
				continue
			}
			// Multi-word searches need at least half their tokens present.
			if len(searchTokens) > 1 && common*2 < len(searchTokens) {
				continue
			}

			issueNumber := strings.TrimSpace(issue.IssueNumber)
			issueTitle := strings.TrimSpace(issue.Name)

			if requireNumber {
				if req.VolumeNumber == "" || issueNumber == "" {
					continue
				}
				if !numbersEqual(issueNumber, req.VolumeNumber) {
					continue
				}
			}

			record := Record{
				Series:    seriesName,
				Subtitle:  issueTitle,
				Separator: defaultSeparator,
			}
			if issueNumber != "" {
				record.RawTitle = fmt.Sprintf("%s %s%s", seriesName, req.NumberPrefix, issueNumber)
				if issueTitle != "" {
					record.RawTitle += " - " + issueTitle
				}
			}
			return record
		}
	}
	return NullRecord()
}

// numbersEqual compares issue numbers, tolerating zero padding ("01" vs
// "1") via integer comparison and falling back to literal equality when
// either side is non-numeric.
func numbersEqual(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai == bi
	}
	return a == b
}
