package domain

import "strings"

// ExpandedQuery is the structured result of running a raw search phrase
// through the generative-language service. Immutable once produced.
type ExpandedQuery struct {
	// Terms are related keywords ordered by relevance; position drives
	// the scorer's importance weight.
	Terms []string
	// Intent is the inferred need behind the phrase.
	Intent string
	// TargetRoles are likely job roles for the searcher.
	TargetRoles []string
	// UsedFallback reports that expansion degraded to the raw query
	// because the provider call or its parsing failed.
	UsedFallback bool
}

// FallbackExpansion builds the degenerate expansion for a raw query:
// the query itself plus its whitespace-split tokens, intent equal to
// the query, no roles. Terms is never empty for a non-empty query.
func FallbackExpansion(query string) ExpandedQuery {
	terms := []string{query}
	for _, tok := range strings.Fields(query) {
		if tok != query {
			terms = append(terms, tok)
		}
	}
	return ExpandedQuery{
		Terms:        terms,
		Intent:       query,
		UsedFallback: true,
	}
}
