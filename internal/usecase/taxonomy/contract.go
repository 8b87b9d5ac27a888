package taxonomy

import (
	"context"

	"github.com/capacita-cloud/capacita/internal/domain"
)

// Repository stores the singleton taxonomy document.
type Repository interface {
	Get(ctx context.Context) (domain.Taxonomy, bool, error)
	Save(ctx context.Context, t domain.Taxonomy) error
}
