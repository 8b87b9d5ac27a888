// Package analytics keeps activity counters in the store.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/capacita-cloud/capacita/internal/db"
	"github.com/capacita-cloud/capacita/internal/domain"
)

// dayTTL keeps daily search counters for three months.
const dayTTL = 90 * 24 * time.Hour

// store is the consumer interface for analytics counters (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
	HIncrBy(ctx context.Context, key, field string, val int64) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Store implements usecase/analytics.Repository on top of INCRBY,
// HINCRBY and GET.
type Store struct {
	store store
}

// New creates an analytics store.
func New(s store) *Store {
	return &Store{store: s}
}

// IncrSearch bumps the daily and the all-time search counters. The
// daily key gets its TTL on first increment only (NX).
func (s *Store) IncrSearch(ctx context.Context, day string) error {
	dayKey := searchDayKey(day)
	if err := s.store.IncrBy(ctx, dayKey, 1); err != nil {
		return fmt.Errorf("analytics INCRBY %s: %w", dayKey, err)
	}
	if err := s.store.Expire(ctx, dayKey, dayTTL, true); err != nil {
		return fmt.Errorf("analytics EXPIRE %s: %w", dayKey, err)
	}

	totalKey := searchTotalKey()
	if err := s.store.IncrBy(ctx, totalKey, 1); err != nil {
		return fmt.Errorf("analytics INCRBY %s: %w", totalKey, err)
	}
	return nil
}

// IncrCourseView bumps the view counter of one course.
func (s *Store) IncrCourseView(ctx context.Context, courseID string) error {
	if err := s.store.HIncrBy(ctx, viewsKey(), courseID, 1); err != nil {
		return fmt.Errorf("analytics HINCRBY %s: %w", courseID, err)
	}
	return nil
}

// TotalSearches returns the all-time search count. 0 if never searched.
func (s *Store) TotalSearches(ctx context.Context) (int64, error) {
	return s.counter(ctx, searchTotalKey())
}

// SearchesByDay returns one count per requested day, 0 for days with
// no searches or whose counter already expired.
func (s *Store) SearchesByDay(ctx context.Context, days []string) ([]int64, error) {
	out := make([]int64, len(days))
	for i, day := range days {
		n, err := s.counter(ctx, searchDayKey(day))
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// CourseViews returns the accumulated view count per course ID.
func (s *Store) CourseViews(ctx context.Context) (map[string]int64, error) {
	fields, err := s.store.HGetAll(ctx, viewsKey())
	if err != nil {
		return nil, fmt.Errorf("analytics HGETALL views: %w", err)
	}

	views := make(map[string]int64, len(fields))
	for id, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("analytics views %s parse: %w", id, err)
		}
		views[id] = n
	}
	return views, nil
}

// counter reads an integer key, treating a missing key as 0.
func (s *Store) counter(ctx context.Context, key string) (int64, error) {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("analytics GET %s: %w", key, err)
	}

	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("analytics GET %s parse: %w", key, err)
	}
	return val, nil
}

// Store key patterns: capacita:analytics:searches:{yyyy-mm-dd},
// capacita:analytics:searches:total, capacita:analytics:views

func searchDayKey(day string) string {
	return fmt.Sprintf("%sanalytics:searches:%s", domain.KeyPrefix, day)
}

func searchTotalKey() string {
	return domain.KeyPrefix + "analytics:searches:total"
}

func viewsKey() string {
	return domain.KeyPrefix + "analytics:views"
}
