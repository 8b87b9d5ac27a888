package course

import (
	"context"

	"github.com/capacita-cloud/capacita/internal/domain"
)

// Repository defines the storage contract for courses.
type Repository interface {
	Save(ctx context.Context, c *domain.Course) error
	Get(ctx context.Context, id string) (domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
	Delete(ctx context.Context, id string) error
}
