package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/capacita-cloud/capacita/internal/domain"
)

const (
	dashboardDays = 30
	topViewedMax  = 10
)

// Service aggregates catalog activity for the admin dashboard.
type Service struct {
	repo    Repository
	courses CourseReader
	now     func() time.Time
}

// New creates an analytics service.
func New(repo Repository, courses CourseReader) *Service {
	return &Service{repo: repo, courses: courses, now: time.Now}
}

// WithClock overrides the service clock (test-only).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RecordSearch implements the search usecase's Recorder.
func (s *Service) RecordSearch(ctx context.Context) error {
	day := s.now().UTC().Format("2006-01-02")
	if err := s.repo.IncrSearch(ctx, day); err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}

// RecordCourseView counts one view of a course.
func (s *Service) RecordCourseView(ctx context.Context, courseID string) error {
	if err := s.repo.IncrCourseView(ctx, courseID); err != nil {
		return fmt.Errorf("record course view: %w", err)
	}
	return nil
}

// Dashboard builds the aggregated activity report: course counts,
// search volume over the last 30 days, top viewed courses.
func (s *Service) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("list courses: %w", err)
	}

	published := 0
	titles := make(map[string]string, len(courses))
	for _, c := range courses {
		titles[c.ID] = c.Title
		if c.Published {
			published++
		}
	}

	total, err := s.repo.TotalSearches(ctx)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("total searches: %w", err)
	}

	days := s.lastDays(dashboardDays)
	counts, err := s.repo.SearchesByDay(ctx, days)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("searches by day: %w", err)
	}
	byDay := make([]domain.DayCount, len(days))
	for i, d := range days {
		byDay[i] = domain.DayCount{Date: d, Count: counts[i]}
	}

	views, err := s.repo.CourseViews(ctx)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("course views: %w", err)
	}
	top := topViewed(views, titles, topViewedMax)

	return domain.Dashboard{
		TotalCourses:     len(courses),
		PublishedCourses: published,
		TotalSearches:    total,
		SearchesByDay:    byDay,
		TopViewed:        top,
	}, nil
}

// lastDays returns the last n dates (yyyy-mm-dd), oldest first.
func (s *Service) lastDays(n int) []string {
	today := s.now().UTC()
	days := make([]string, n)
	for i := 0; i < n; i++ {
		days[i] = today.AddDate(0, 0, i-n+1).Format("2006-01-02")
	}
	return days
}

// topViewed ranks courses by view count. Courses that were deleted
// since being viewed are skipped.
func topViewed(views map[string]int64, titles map[string]string, limit int) []domain.CourseViews {
	out := make([]domain.CourseViews, 0, len(views))
	for id, count := range views {
		title, ok := titles[id]
		if !ok {
			continue
		}
		out = append(out, domain.CourseViews{CourseID: id, Title: title, Views: count})
	}

	sort.Slice(out, func(a, b int) bool {
		if out[a].Views != out[b].Views {
			return out[a].Views > out[b].Views
		}
		return out[a].CourseID < out[b].CourseID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
