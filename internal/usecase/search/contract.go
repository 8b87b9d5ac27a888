package search

import (
	"context"

	"github.com/capacita-cloud/capacita/internal/domain"
)

// Expander produces an expanded query. Implementations never fail:
// the fallback decorator degrades to the raw query instead.
type Expander interface {
	Expand(ctx context.Context, query string) domain.ExpandedQuery
}

// CourseSource loads the published candidate set for scoring.
type CourseSource interface {
	ListPublished(ctx context.Context, filters domain.SearchFilters) ([]domain.Course, error)
}

// AcronymSource supplies the scorer's short-word allow-list.
type AcronymSource interface {
	Acronyms(ctx context.Context) ([]string, error)
}

// Recorder counts searches for the analytics dashboard.
type Recorder interface {
	RecordSearch(ctx context.Context) error
}

// Cache memoizes search responses by derived key.
type Cache interface {
	Get(key string) (domain.SearchResponse, bool)
	Put(key string, value domain.SearchResponse)
	Clear()
}
