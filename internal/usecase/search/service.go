package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/capacita-cloud/capacita/internal/domain"
	"github.com/capacita-cloud/capacita/internal/metrics"
)

// Service runs AI-assisted relevance search over the course catalog.
type Service struct {
	expander Expander
	courses  CourseSource
	acronyms AcronymSource
	recorder Recorder
	cache    Cache
	minScore float64
	logger   *zap.Logger
}

// New creates a search service. recorder can be nil (no analytics).
func New(
	expander Expander,
	courses CourseSource,
	acronyms AcronymSource,
	recorder Recorder,
	cache Cache,
	logger *zap.Logger,
) *Service {
	return &Service{
		expander: expander,
		courses:  courses,
		acronyms: acronyms,
		recorder: recorder,
		cache:    cache,
		minScore: scoreThreshold,
		logger:   logger,
	}
}

// WithMinScore overrides the result threshold.
func (s *Service) WithMinScore(min float64) *Service {
	if min > 0 {
		s.minScore = min
	}
	return s
}

// Search expands the query, scores the candidate set, and returns the
// filtered, sorted response. Responses are memoized by normalized
// query + filters for the cache's validity window.
func (s *Service) Search(ctx context.Context, query string, filters domain.SearchFilters) (domain.SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return domain.SearchResponse{}, domain.ErrEmptyQuery
	}

	key := CacheKey(query, filters)
	if resp, ok := s.cache.Get(key); ok {
		metrics.SearchCacheTotal.WithLabelValues("hit").Inc()
		s.recordSearch(ctx)
		return resp, nil
	}
	metrics.SearchCacheTotal.WithLabelValues("miss").Inc()

	exp := s.expander.Expand(ctx, query)

	courses, err := s.courses.ListPublished(ctx, filters)
	if err != nil {
		return domain.SearchResponse{}, fmt.Errorf("list courses: %w", err)
	}

	scorer := NewScorer(s.loadAcronyms(ctx))
	results := scorer.Rank(courses, exp, s.minScore)

	var maxScore float64
	if len(results) > 0 {
		maxScore = results[0].Score
	}

	resp := domain.SearchResponse{
		Query: domain.QueryEcho{
			Original:     query,
			Intent:       exp.Intent,
			Terms:        exp.Terms,
			TargetRoles:  exp.TargetRoles,
			UsedFallback: exp.UsedFallback,
		},
		Results: results,
		Meta: domain.SearchMeta{
			TotalFound:    len(results),
			TotalSearched: len(courses),
			MaxScore:      maxScore,
		},
	}

	s.cache.Put(key, resp)
	s.recordSearch(ctx)

	return resp, nil
}

// loadAcronyms reads the allow-list from the taxonomy. Search quality
// data, not correctness data: a read failure logs and yields none.
func (s *Service) loadAcronyms(ctx context.Context) []string {
	if s.acronyms == nil {
		return nil
	}
	acr, err := s.acronyms.Acronyms(ctx)
	if err != nil {
		s.logger.Warn("loading acronym allow-list failed", zap.Error(err))
		return nil
	}
	return acr
}

// recordSearch counts the search for analytics. Never fails the request.
func (s *Service) recordSearch(ctx context.Context) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordSearch(ctx); err != nil {
		s.logger.Warn("recording search failed", zap.Error(err))
	}
}
