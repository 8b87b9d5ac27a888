package upload

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/capacita-cloud/capacita/internal/db"
	"github.com/capacita-cloud/capacita/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn func(ctx context.Context, key, path string, data []byte) error
	jsonGetFn func(ctx context.Context, key string, paths ...string) ([]byte, error)
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, nil
}

func testUpload(id string) domain.Upload {
	return domain.Upload{
		ID:        id,
		Filename:  "edital.pdf",
		Size:      2048,
		Status:    domain.UploadDrafted,
		Draft:     domain.CourseDraft{Title: "Edital 2025"},
		CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSave_HappyPath(t *testing.T) {
	ms := &mockStore{}
	repo := New(ms)

	ms.jsonSetFn = func(_ context.Context, key, path string, data []byte) error {
		if key != "capacita:upload:u1" {
			t.Errorf("unexpected key: %s", key)
		}
		if path != "$" {
			t.Errorf("unexpected path: %s", path)
		}
		var u domain.Upload
		if err := json.Unmarshal(data, &u); err != nil {
			t.Errorf("payload is not an upload: %v", err)
		}
		return nil
	}

	if err := repo.Save(context.Background(), testUpload("u1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSave_StoreError(t *testing.T) {
	ms := &mockStore{jsonSetFn: func(_ context.Context, _, _ string, _ []byte) error {
		return errors.New("connection lost")
	}}
	repo := New(ms)

	if err := repo.Save(context.Background(), testUpload("u1")); err == nil {
		t.Fatal("expected error on JSON.SET failure")
	}
}

func TestGet_HappyPath(t *testing.T) {
	want := testUpload("u1")
	raw, _ := json.Marshal(want)
	ms := &mockStore{jsonGetFn: func(_ context.Context, key string, _ ...string) ([]byte, error) {
		if key != "capacita:upload:u1" {
			t.Errorf("unexpected key: %s", key)
		}
		return raw, nil
	}}
	repo := New(ms)

	got, err := repo.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != want.ID || got.Status != domain.UploadDrafted {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestGet_NotFound(t *testing.T) {
	ms := &mockStore{jsonGetFn: func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return nil, db.ErrKeyNotFound
	}}
	repo := New(ms)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrUploadNotFound) {
		t.Fatalf("expected ErrUploadNotFound, got %v", err)
	}
}
