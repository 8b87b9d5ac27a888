package taxonomy

import (
	"context"
	"fmt"

	"github.com/capacita-cloud/capacita/internal/domain"
)

// Service handles taxonomy configuration. The acronym list doubles as
// the relevance scorer's short-word allow-list.
type Service struct {
	repo     Repository
	defaults domain.Taxonomy
}

// New creates a taxonomy service. seedAcronyms (from config) extends
// the default acronym list until an admin saves a taxonomy.
func New(repo Repository, seedAcronyms []string) *Service {
	defaults := domain.DefaultTaxonomy()
	defaults.Acronyms = mergeUnique(defaults.Acronyms, seedAcronyms)
	return &Service{repo: repo, defaults: defaults}
}

// Get returns the stored taxonomy, or the defaults when none was saved.
func (s *Service) Get(ctx context.Context) (domain.Taxonomy, error) {
	t, found, err := s.repo.Get(ctx)
	if err != nil {
		return domain.Taxonomy{}, fmt.Errorf("get taxonomy: %w", err)
	}
	if !found {
		return s.defaults, nil
	}
	return t, nil
}

// Put validates and stores the taxonomy.
func (s *Service) Put(ctx context.Context, t domain.Taxonomy) error {
	if len(t.Categories) == 0 {
		return fmt.Errorf("%w: categories must not be empty", domain.ErrInvalidTaxonomy)
	}
	if len(t.Modalities) == 0 {
		return fmt.Errorf("%w: modalities must not be empty", domain.ErrInvalidTaxonomy)
	}
	if err := s.repo.Save(ctx, t); err != nil {
		return fmt.Errorf("save taxonomy: %w", err)
	}
	return nil
}

// Acronyms implements the search usecase's AcronymSource.
func (s *Service) Acronyms(ctx context.Context) ([]string, error) {
	t, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return t.Acronyms, nil
}

func mergeUnique(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, s := range append(append([]string{}, base...), extra...) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
