package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/capacita-cloud/capacita/internal/domain"
)

// Scoring constants. Role matches outweigh any single term match:
// audience fit is the strongest relevance signal.
const (
	fullTermBonus  = 15.0
	wordBonus      = 5.0
	roleBonus      = 20.0
	minWordLen     = 3
	scoreThreshold = 10.0
)

// Scorer computes relevance scores for courses against an expanded
// query. Pure: no state beyond the acronym allow-list.
type Scorer struct {
	acronyms map[string]struct{}
}

// NewScorer creates a scorer. Acronyms are normalized so short words
// like "TCU" keep contributing score despite the minimum word length.
func NewScorer(acronyms []string) *Scorer {
	set := make(map[string]struct{}, len(acronyms))
	for _, a := range acronyms {
		if n := domain.Normalize(a); n != "" {
			set[n] = struct{}{}
		}
	}
	return &Scorer{acronyms: set}
}

// Score computes the relevance of one course. courseText must be the
// already-normalized output of course.SearchableText(); terms and roles
// are normalized here with the same rules, so comparisons line up.
// Returns the score (always >= 0) and the raw terms that matched.
func (s *Scorer) Score(course *domain.Course, courseText string, exp domain.ExpandedQuery) (float64, []string) {
	tokens := tokenSet(courseText)

	var score float64
	var matched []string

	for i, term := range exp.Terms {
		importance := 1 + 1/float64(i+1)
		normTerm := domain.Normalize(term)
		if normTerm == "" {
			continue
		}

		termHit := false
		if strings.Contains(courseText, normTerm) {
			score += fullTermBonus * importance
			termHit = true
		}

		for _, word := range strings.Split(normTerm, " ") {
			if utf8.RuneCountInString(word) < minWordLen {
				if _, ok := s.acronyms[word]; !ok {
					continue
				}
			}
			if _, ok := tokens[word]; ok {
				score += wordBonus * importance
				termHit = true
			}
		}

		if termHit {
			matched = append(matched, term)
		}
	}

	audience := domain.Normalize(course.Audience)
	if audience != "" {
		for _, role := range exp.TargetRoles {
			normRole := domain.Normalize(role)
			if normRole == "" {
				continue
			}
			if strings.Contains(audience, normRole) {
				score += roleBonus
			}
		}
	}

	return score, matched
}

// Rank scores every candidate, drops those under the threshold, and
// sorts the rest by descending score. The sort is stable, so equally
// scored courses keep the candidate collection's order.
func (s *Scorer) Rank(courses []domain.Course, exp domain.ExpandedQuery, minScore float64) []domain.ScoredCourse {
	results := make([]domain.ScoredCourse, 0, len(courses))
	for i := range courses {
		text := domain.Normalize(courses[i].SearchableText())
		score, matched := s.Score(&courses[i], text, exp)
		if score < minScore {
			continue
		}
		results = append(results, domain.ScoredCourse{
			Course:       courses[i],
			Score:        score,
			MatchedTerms: matched,
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	return results
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.Fields(text)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[strings.Trim(f, ".,;:!?()[]{}\"'")] = struct{}{}
	}
	return set
}
