package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/capacita-cloud/capacita/internal/domain"
)

type mockRepo struct {
	searchDays  []string
	viewIDs     []string
	total       int64
	byDay       map[string]int64
	views       map[string]int64
	incrErr     error
	totalErr    error
	byDayCalled [][]string
}

func (m *mockRepo) IncrSearch(_ context.Context, day string) error {
	if m.incrErr != nil {
		return m.incrErr
	}
	m.searchDays = append(m.searchDays, day)
	return nil
}

func (m *mockRepo) IncrCourseView(_ context.Context, id string) error {
	m.viewIDs = append(m.viewIDs, id)
	return nil
}

func (m *mockRepo) TotalSearches(context.Context) (int64, error) {
	return m.total, m.totalErr
}

func (m *mockRepo) SearchesByDay(_ context.Context, days []string) ([]int64, error) {
	m.byDayCalled = append(m.byDayCalled, days)
	out := make([]int64, len(days))
	for i, d := range days {
		out[i] = m.byDay[d]
	}
	return out, nil
}

func (m *mockRepo) CourseViews(context.Context) (map[string]int64, error) {
	return m.views, nil
}

type mockCourses struct {
	courses []domain.Course
	err     error
}

func (m *mockCourses) List(context.Context) ([]domain.Course, error) {
	return m.courses, m.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRecordSearchUsesUTCDay(t *testing.T) {
	repo := &mockRepo{}
	// 23:30 in UTC-3 is already the next day in UTC.
	loc := time.FixedZone("BRT", -3*60*60)
	svc := New(repo, &mockCourses{}).WithClock(fixedClock(time.Date(2025, 3, 10, 23, 30, 0, 0, loc)))

	if err := svc.RecordSearch(context.Background()); err != nil {
		t.Fatalf("RecordSearch: %v", err)
	}
	if len(repo.searchDays) != 1 || repo.searchDays[0] != "2025-03-11" {
		t.Errorf("expected day 2025-03-11, got %v", repo.searchDays)
	}
}

func TestRecordSearchPropagatesError(t *testing.T) {
	repo := &mockRepo{incrErr: errors.New("store down")}
	svc := New(repo, &mockCourses{})

	if err := svc.RecordSearch(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecordCourseView(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, &mockCourses{})

	if err := svc.RecordCourseView(context.Background(), "c1"); err != nil {
		t.Fatalf("RecordCourseView: %v", err)
	}
	if len(repo.viewIDs) != 1 || repo.viewIDs[0] != "c1" {
		t.Errorf("expected view for c1, got %v", repo.viewIDs)
	}
}

func TestDashboardAggregates(t *testing.T) {
	repo := &mockRepo{
		total: 42,
		byDay: map[string]int64{"2025-03-10": 7, "2025-03-09": 3},
		views: map[string]int64{"c1": 5, "c2": 9, "gone": 99},
	}
	courses := &mockCourses{courses: []domain.Course{
		{ID: "c1", Title: "Pregão Eletrônico", Published: true},
		{ID: "c2", Title: "Lei 14.133", Published: true},
		{ID: "c3", Title: "Rascunho"},
	}}
	svc := New(repo, courses).WithClock(fixedClock(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)))

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if d.TotalCourses != 3 || d.PublishedCourses != 2 {
		t.Errorf("course counts = %d/%d, want 3/2", d.TotalCourses, d.PublishedCourses)
	}
	if d.TotalSearches != 42 {
		t.Errorf("total searches = %d, want 42", d.TotalSearches)
	}
	if len(d.SearchesByDay) != dashboardDays {
		t.Fatalf("expected %d days, got %d", dashboardDays, len(d.SearchesByDay))
	}
	last := d.SearchesByDay[len(d.SearchesByDay)-1]
	if last.Date != "2025-03-10" || last.Count != 7 {
		t.Errorf("last day = %+v, want 2025-03-10/7", last)
	}
	prev := d.SearchesByDay[len(d.SearchesByDay)-2]
	if prev.Date != "2025-03-09" || prev.Count != 3 {
		t.Errorf("previous day = %+v, want 2025-03-09/3", prev)
	}
	if d.SearchesByDay[0].Count != 0 {
		t.Errorf("oldest day count = %d, want 0", d.SearchesByDay[0].Count)
	}

	// Views are sorted descending and deleted courses are dropped.
	if len(d.TopViewed) != 2 {
		t.Fatalf("top viewed = %+v, want 2 entries", d.TopViewed)
	}
	if d.TopViewed[0].CourseID != "c2" || d.TopViewed[0].Views != 9 {
		t.Errorf("top entry = %+v, want c2/9", d.TopViewed[0])
	}
	if d.TopViewed[1].Title != "Pregão Eletrônico" {
		t.Errorf("second entry title = %q", d.TopViewed[1].Title)
	}
}

func TestDashboardCourseListError(t *testing.T) {
	svc := New(&mockRepo{}, &mockCourses{err: errors.New("store down")})

	if _, err := svc.Dashboard(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestTopViewedLimit(t *testing.T) {
	views := make(map[string]int64)
	titles := make(map[string]string)
	for i := 0; i < 25; i++ {
		id := string(rune('a' + i))
		views[id] = int64(i)
		titles[id] = id
	}

	top := topViewed(views, titles, topViewedMax)
	if len(top) != topViewedMax {
		t.Fatalf("expected %d entries, got %d", topViewedMax, len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].Views > top[i-1].Views {
			t.Errorf("not sorted at %d: %d > %d", i, top[i].Views, top[i-1].Views)
		}
	}
}
