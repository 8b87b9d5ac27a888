package analytics

import (
	"context"

	"github.com/capacita-cloud/capacita/internal/domain"
)

// Repository stores and reads activity counters.
type Repository interface {
	IncrSearch(ctx context.Context, day string) error
	IncrCourseView(ctx context.Context, courseID string) error
	TotalSearches(ctx context.Context) (int64, error)
	SearchesByDay(ctx context.Context, days []string) ([]int64, error)
	CourseViews(ctx context.Context) (map[string]int64, error)
}

// CourseReader supplies course counts and titles for the dashboard.
type CourseReader interface {
	List(ctx context.Context) ([]domain.Course, error)
}
