package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/capacita-cloud/capacita/internal/domain"
	"github.com/capacita-cloud/capacita/internal/metrics"
)

// ProviderExpander is the fallible transport-level expander contract.
type ProviderExpander interface {
	Expand(ctx context.Context, query string) (domain.ExpandedQuery, error)
}

// FallbackExpander decorates a provider expander so expansion never
// fails: any provider or parse error degrades to the raw query plus
// its tokens, flagged with UsedFallback for callers and tests.
type FallbackExpander struct {
	inner  ProviderExpander
	logger *zap.Logger
}

// NewFallbackExpander creates the fail-soft decorator.
func NewFallbackExpander(inner ProviderExpander, logger *zap.Logger) *FallbackExpander {
	return &FallbackExpander{inner: inner, logger: logger}
}

// Expand implements Expander.
func (f *FallbackExpander) Expand(ctx context.Context, query string) domain.ExpandedQuery {
	exp, err := f.inner.Expand(ctx, query)
	if err != nil {
		f.logger.Warn("query expansion degraded to fallback",
			zap.String("query", query),
			zap.Error(err),
		)
		metrics.ExpansionFallbackTotal.Inc()
		return domain.FallbackExpansion(query)
	}
	if len(exp.Terms) == 0 {
		// providers occasionally return valid JSON with no terms;
		// treat that the same as a failure
		metrics.ExpansionFallbackTotal.Inc()
		return domain.FallbackExpansion(query)
	}
	return exp
}
