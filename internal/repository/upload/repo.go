// Package upload persists upload records as JSON documents in the store.
package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/capacita-cloud/capacita/internal/db"
	"github.com/capacita-cloud/capacita/internal/domain"
)

// store is the consumer interface for uploads (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
}

// Repo implements usecase/ingest.Repository.
type Repo struct {
	store store
}

// New creates an upload repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save stores an upload record.
func (r *Repo) Save(ctx context.Context, upload domain.Upload) error {
	data, err := json.Marshal(upload)
	if err != nil {
		return fmt.Errorf("marshal upload: %w", err)
	}
	if err := r.store.JSONSet(ctx, uploadKey(upload.ID), "$", data); err != nil {
		return fmt.Errorf("json.set upload %s: %w", upload.ID, err)
	}
	return nil
}

// Get returns an upload record by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.Upload, error) {
	raw, err := r.store.JSONGet(ctx, uploadKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Upload{}, domain.ErrUploadNotFound
		}
		return domain.Upload{}, fmt.Errorf("json.get upload %s: %w", id, err)
	}

	var upload domain.Upload
	if err := json.Unmarshal(raw, &upload); err != nil {
		return domain.Upload{}, fmt.Errorf("unmarshal upload %s: %w", id, err)
	}
	return upload, nil
}

// Store key pattern: capacita:upload:{id}

func uploadKey(id string) string {
	return fmt.Sprintf("%supload:%s", domain.KeyPrefix, id)
}
