// Package ingest turns uploaded course documents into draft metadata.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/capacita-cloud/capacita/internal/domain"
	"github.com/capacita-cloud/capacita/internal/extract"
)

// Service extracts text from an uploaded PDF and asks the AI provider
// for a course draft. Drafting fails soft: a provider outage still
// produces an upload record, just without AI suggestions.
type Service struct {
	extract Extractor
	drafter Drafter
	repo    Repository
	logger  *zap.Logger
	now     func() time.Time
}

// New creates an ingestion service. A nil extractor defaults to the
// PDF text extractor.
func New(extractor Extractor, drafter Drafter, repo Repository, logger *zap.Logger) *Service {
	if extractor == nil {
		extractor = extract.Text
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{extract: extractor, drafter: drafter, repo: repo, logger: logger, now: time.Now}
}

// WithClock overrides the service clock (test-only).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Ingest processes one uploaded document and persists the resulting
// upload record.
func (s *Service) Ingest(ctx context.Context, filename string, data []byte) (domain.Upload, error) {
	text, err := s.extract(filename, data)
	if err != nil {
		return domain.Upload{}, fmt.Errorf("extract %q: %w", filename, err)
	}

	upload := domain.Upload{
		ID:        uuid.NewString(),
		Filename:  filename,
		Size:      int64(len(data)),
		Status:    domain.UploadExtracted,
		Draft:     domain.CourseDraft{Title: titleFromFilename(filename)},
		CreatedAt: s.now().UTC(),
	}

	draft, err := s.drafter.Draft(ctx, text)
	switch {
	case err != nil:
		s.logger.Warn("course drafting failed, keeping extracted text only",
			zap.String("filename", filename), zap.Error(err))
	case draft.Title == "":
		s.logger.Warn("course drafting returned no title, keeping extracted text only",
			zap.String("filename", filename))
	default:
		upload.Status = domain.UploadDrafted
		upload.Draft = draft
	}

	if err := s.repo.Save(ctx, upload); err != nil {
		return domain.Upload{}, fmt.Errorf("save upload: %w", err)
	}
	return upload, nil
}

// Get returns one upload record.
func (s *Service) Get(ctx context.Context, id string) (domain.Upload, error) {
	upload, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Upload{}, fmt.Errorf("get upload %q: %w", id, err)
	}
	return upload, nil
}

// titleFromFilename derives a human title from the uploaded filename:
// "edital-pregao_2025.pdf" becomes "Edital pregao 2025".
func titleFromFilename(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Documento sem título"
	}
	runes := []rune(base)
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
