package ingest

import (
	"context"

	"github.com/capacita-cloud/capacita/internal/domain"
)

// Extractor pulls plain text out of an uploaded document.
type Extractor func(filename string, data []byte) (string, error)

// Drafter proposes course metadata from extracted document text.
type Drafter interface {
	Draft(ctx context.Context, text string) (domain.CourseDraft, error)
}

// Repository persists upload records.
type Repository interface {
	Save(ctx context.Context, upload domain.Upload) error
	Get(ctx context.Context, id string) (domain.Upload, error)
}
