package domain

// SearchFilters narrows the candidate course set before scoring.
// The zero value matches every published course.
type SearchFilters struct {
	Company  string `json:"company,omitempty"`
	Category string `json:"category,omitempty"`
}

// ScoredCourse is a course augmented with its relevance score and the
// terms that matched. Exists only for the duration of one response.
type ScoredCourse struct {
	Course       Course   `json:"course"`
	Score        float64  `json:"score"`
	MatchedTerms []string `json:"matched_terms,omitempty"`
}

// QueryEcho describes how the search interpreted the raw query.
type QueryEcho struct {
	Original     string   `json:"original"`
	Intent       string   `json:"intent"`
	Terms        []string `json:"terms"`
	TargetRoles  []string `json:"target_roles,omitempty"`
	UsedFallback bool     `json:"used_fallback"`
}

// SearchMeta summarizes a result set.
type SearchMeta struct {
	TotalFound    int     `json:"total_found"`
	TotalSearched int     `json:"total_searched"`
	MaxScore      float64 `json:"max_score"`
}

// SearchResponse is the full search result returned to callers and
// memoized by the search cache.
type SearchResponse struct {
	Query   QueryEcho      `json:"query"`
	Results []ScoredCourse `json:"results"`
	Meta    SearchMeta     `json:"meta"`
}
