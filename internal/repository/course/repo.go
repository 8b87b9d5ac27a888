// Package course persists courses as JSON documents in the store.
package course

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/capacita-cloud/capacita/internal/db"
	"github.com/capacita-cloud/capacita/internal/domain"
)

// store is the consumer interface for courses (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/course.Repository.
type Repo struct {
	store store
}

// New creates a course repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save creates or overwrites a course document.
func (r *Repo) Save(ctx context.Context, course *domain.Course) error {
	data, err := json.Marshal(course)
	if err != nil {
		return fmt.Errorf("marshal course: %w", err)
	}
	if err := r.store.JSONSet(ctx, courseKey(course.ID), "$", data); err != nil {
		return fmt.Errorf("json.set course %s: %w", course.ID, err)
	}
	return nil
}

// Get returns a course by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.Course, error) {
	raw, err := r.store.JSONGet(ctx, courseKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Course{}, domain.ErrCourseNotFound
		}
		return domain.Course{}, fmt.Errorf("json.get course %s: %w", id, err)
	}

	var course domain.Course
	if err := json.Unmarshal(raw, &course); err != nil {
		return domain.Course{}, fmt.Errorf("unmarshal course %s: %w", id, err)
	}
	return course, nil
}

// List returns all stored courses, in no particular order.
func (r *Repo) List(ctx context.Context) ([]domain.Course, error) {
	keys, err := r.store.Scan(ctx, courseKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan courses: %w", err)
	}
	if len(keys) == 0 {
		return []domain.Course{}, nil
	}

	results, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("json.get multi courses: %w", err)
	}

	courses := make([]domain.Course, 0, len(results))
	for i, raw := range results {
		if raw == nil {
			// Key expired or was deleted between SCAN and fetch.
			continue
		}
		var course domain.Course
		if err := json.Unmarshal(raw, &course); err != nil {
			return nil, fmt.Errorf("unmarshal course %s: %w", keys[i], err)
		}
		courses = append(courses, course)
	}
	return courses, nil
}

// Delete removes a course. Returns ErrCourseNotFound for unknown IDs.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := courseKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrCourseNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del course %s: %w", id, err)
	}
	return nil
}

// Store key pattern: capacita:course:{id}

func courseKey(id string) string {
	return fmt.Sprintf("%scourse:%s", domain.KeyPrefix, id)
}
