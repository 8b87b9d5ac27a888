package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/capacita-cloud/capacita/internal/domain"
)

type mockDrafter struct {
	draft domain.CourseDraft
	err   error
	calls int
	text  string
}

func (m *mockDrafter) Draft(_ context.Context, text string) (domain.CourseDraft, error) {
	m.calls++
	m.text = text
	return m.draft, m.err
}

type mockRepo struct {
	saved   []domain.Upload
	saveErr error
	getErr  error
}

func (m *mockRepo) Save(_ context.Context, u domain.Upload) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, u)
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (domain.Upload, error) {
	if m.getErr != nil {
		return domain.Upload{}, m.getErr
	}
	for _, u := range m.saved {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.Upload{}, domain.ErrUploadNotFound
}

func okExtractor(text string) Extractor {
	return func(string, []byte) (string, error) { return text, nil }
}

func TestIngestDrafted(t *testing.T) {
	drafter := &mockDrafter{draft: domain.CourseDraft{
		Title:    "Pregão Eletrônico na Prática",
		Summary:  "Curso sobre condução de pregões.",
		Category: "Licitações e Contratos",
		Tags:     []string{"pregão", "licitação"},
	}}
	repo := &mockRepo{}
	svc := New(okExtractor("conteúdo do edital"), drafter, repo, nil).
		WithClock(func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) })

	upload, err := svc.Ingest(context.Background(), "edital.pdf", []byte("%PDF"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if upload.Status != domain.UploadDrafted {
		t.Errorf("status = %q, want drafted", upload.Status)
	}
	if upload.Draft.Title != "Pregão Eletrônico na Prática" {
		t.Errorf("draft title = %q", upload.Draft.Title)
	}
	if upload.ID == "" || upload.Filename != "edital.pdf" || upload.Size != 4 {
		t.Errorf("upload metadata = %+v", upload)
	}
	if !upload.CreatedAt.Equal(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("created at = %v", upload.CreatedAt)
	}
	if drafter.text != "conteúdo do edital" {
		t.Errorf("drafter received %q", drafter.text)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected one saved upload, got %d", len(repo.saved))
	}
}

func TestIngestDrafterFailureFallsBackToExtracted(t *testing.T) {
	drafter := &mockDrafter{err: errors.New("provider down")}
	repo := &mockRepo{}
	svc := New(okExtractor("texto"), drafter, repo, nil)

	upload, err := svc.Ingest(context.Background(), "curso-gestao_fiscal.pdf", []byte("%PDF"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if upload.Status != domain.UploadExtracted {
		t.Errorf("status = %q, want extracted", upload.Status)
	}
	if upload.Draft.Title != "Curso gestao fiscal" {
		t.Errorf("fallback title = %q", upload.Draft.Title)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("upload was not persisted")
	}
}

func TestIngestEmptyDraftTitleFallsBack(t *testing.T) {
	drafter := &mockDrafter{draft: domain.CourseDraft{Summary: "sem título"}}
	repo := &mockRepo{}
	svc := New(okExtractor("texto"), drafter, repo, nil)

	upload, err := svc.Ingest(context.Background(), "apostila.pdf", []byte("%PDF"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if upload.Status != domain.UploadExtracted {
		t.Errorf("status = %q, want extracted", upload.Status)
	}
	if upload.Draft.Title != "Apostila" {
		t.Errorf("fallback title = %q", upload.Draft.Title)
	}
}

func TestIngestExtractionFailure(t *testing.T) {
	failing := func(string, []byte) (string, error) {
		return "", domain.ErrUnsupportedFile
	}
	svc := New(failing, &mockDrafter{}, &mockRepo{}, nil)

	_, err := svc.Ingest(context.Background(), "notas.txt", []byte("hello"))
	if !errors.Is(err, domain.ErrUnsupportedFile) {
		t.Fatalf("expected ErrUnsupportedFile, got %v", err)
	}
}

func TestIngestSaveFailure(t *testing.T) {
	repo := &mockRepo{saveErr: errors.New("store down")}
	svc := New(okExtractor("texto"), &mockDrafter{draft: domain.CourseDraft{Title: "T"}}, repo, nil)

	if _, err := svc.Ingest(context.Background(), "a.pdf", []byte("%PDF")); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetNotFound(t *testing.T) {
	svc := New(okExtractor(""), &mockDrafter{}, &mockRepo{}, nil)

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrUploadNotFound) {
		t.Fatalf("expected ErrUploadNotFound, got %v", err)
	}
}

func TestTitleFromFilename(t *testing.T) {
	cases := map[string]string{
		"edital-pregao_2025.pdf": "Edital pregao 2025",
		"curso.pdf":              "Curso",
		".pdf":                   "Documento sem título",
	}
	for in, want := range cases {
		if got := titleFromFilename(in); got != want {
			t.Errorf("titleFromFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
