// Package taxonomy persists the singleton taxonomy document.
package taxonomy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/capacita-cloud/capacita/internal/db"
	"github.com/capacita-cloud/capacita/internal/domain"
)

// store is the consumer interface for the taxonomy document (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
}

// Repo implements usecase/taxonomy.Repository.
type Repo struct {
	store store
}

// New creates a taxonomy repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Get returns the stored taxonomy. The second return value is false
// when nothing has been stored yet.
func (r *Repo) Get(ctx context.Context) (domain.Taxonomy, bool, error) {
	raw, err := r.store.JSONGet(ctx, taxonomyKey())
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Taxonomy{}, false, nil
		}
		return domain.Taxonomy{}, false, fmt.Errorf("json.get taxonomy: %w", err)
	}

	var tax domain.Taxonomy
	if err := json.Unmarshal(raw, &tax); err != nil {
		return domain.Taxonomy{}, false, fmt.Errorf("unmarshal taxonomy: %w", err)
	}
	return tax, true, nil
}

// Save overwrites the taxonomy document.
func (r *Repo) Save(ctx context.Context, tax domain.Taxonomy) error {
	data, err := json.Marshal(tax)
	if err != nil {
		return fmt.Errorf("marshal taxonomy: %w", err)
	}
	if err := r.store.JSONSet(ctx, taxonomyKey(), "$", data); err != nil {
		return fmt.Errorf("json.set taxonomy: %w", err)
	}
	return nil
}

// Singleton key: capacita:taxonomy

func taxonomyKey() string {
	return domain.KeyPrefix + "taxonomy"
}
