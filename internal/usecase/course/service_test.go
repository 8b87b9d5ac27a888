package course

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/capacita-cloud/capacita/internal/domain"
)

// --- Mocks ---

type mockRepo struct {
	byID    map[string]domain.Course
	saveErr error
	getErr  error
	listErr error
	delErr  error
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[string]domain.Course)}
}

func (m *mockRepo) Save(_ context.Context, c *domain.Course) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.byID[c.ID] = *c
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (domain.Course, error) {
	if m.getErr != nil {
		return domain.Course{}, m.getErr
	}
	c, ok := m.byID[id]
	if !ok {
		return domain.Course{}, domain.ErrCourseNotFound
	}
	return c, nil
}

func (m *mockRepo) List(_ context.Context) ([]domain.Course, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.Course, 0, len(m.byID))
	for _, c := range m.byID {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.byID, id)
	return nil
}

// --- Tests ---

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	repo := newMockRepo()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := New(repo).WithClock(func() time.Time { return fixed })

	created, err := svc.Create(context.Background(), domain.Course{
		Title: "Pregão Eletrônico", Company: "ACME", ID: "client-supplied",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" || created.ID == "client-supplied" {
		t.Errorf("ID not assigned by the service: %q", created.ID)
	}
	if !created.CreatedAt.Equal(fixed) || !created.UpdatedAt.Equal(fixed) {
		t.Errorf("timestamps = %v / %v", created.CreatedAt, created.UpdatedAt)
	}
	if _, ok := repo.byID[created.ID]; !ok {
		t.Error("course not persisted")
	}
}

func TestCreate_RequiresTitle(t *testing.T) {
	svc := New(newMockRepo())
	_, err := svc.Create(context.Background(), domain.Course{Title: "  ", Company: "ACME"})
	if !errors.Is(err, domain.ErrInvalidCourse) {
		t.Fatalf("expected ErrInvalidCourse, got %v", err)
	}
}

func TestCreate_RequiresCompany(t *testing.T) {
	svc := New(newMockRepo())
	_, err := svc.Create(context.Background(), domain.Course{Title: "Pregão", Company: "  "})
	if !errors.Is(err, domain.ErrInvalidCourse) {
		t.Fatalf("expected ErrInvalidCourse, got %v", err)
	}
}

func TestCreate_RejectsNegativeValues(t *testing.T) {
	svc := New(newMockRepo())
	for _, c := range []domain.Course{
		{Title: "ok", Company: "ok", Workload: -1},
		{Title: "ok", Company: "ok", Price: -10},
	} {
		if _, err := svc.Create(context.Background(), c); !errors.Is(err, domain.ErrInvalidCourse) {
			t.Errorf("expected ErrInvalidCourse for %+v, got %v", c, err)
		}
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := New(newMockRepo())
	_, err := svc.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestList_FiltersAndSorts(t *testing.T) {
	repo := newMockRepo()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.byID["old"] = domain.Course{
		ID: "old", Title: "A", Company: "ACME", Published: true, CreatedAt: base,
	}
	repo.byID["new"] = domain.Course{
		ID: "new", Title: "B", Company: "ACME", Published: true, CreatedAt: base.AddDate(0, 1, 0),
	}
	repo.byID["draft"] = domain.Course{
		ID: "draft", Title: "C", Company: "ACME", CreatedAt: base.AddDate(0, 2, 0),
	}
	repo.byID["other"] = domain.Course{
		ID: "other", Title: "D", Company: "Globex", Published: true, CreatedAt: base,
	}

	svc := New(repo)
	got, err := svc.List(context.Background(), ListOptions{PublishedOnly: true, Company: "acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(got))
	}
	if got[0].ID != "new" || got[1].ID != "old" {
		t.Errorf("order = %s, %s; want new, old", got[0].ID, got[1].ID)
	}
}

func TestListPublished_MapsFilters(t *testing.T) {
	repo := newMockRepo()
	repo.byID["a"] = domain.Course{ID: "a", Title: "A", Category: "gestão", Published: true}
	repo.byID["b"] = domain.Course{ID: "b", Title: "B", Category: "outro", Published: true}

	svc := New(repo)
	got, err := svc.ListPublished(context.Background(), domain.SearchFilters{Category: "gestão"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("got %v", got)
	}
}

func TestUpdate_PreservesIdentity(t *testing.T) {
	repo := newMockRepo()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.byID["c1"] = domain.Course{ID: "c1", Title: "Old", CreatedAt: created}

	fixed := created.AddDate(0, 0, 7)
	svc := New(repo).WithClock(func() time.Time { return fixed })

	updated, err := svc.Update(context.Background(), "c1", domain.Course{Title: "New", Company: "ACME", ID: "spoofed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != "c1" {
		t.Errorf("ID = %q", updated.ID)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed: %v", updated.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(fixed) {
		t.Errorf("UpdatedAt = %v", updated.UpdatedAt)
	}
}

func TestSetPublished(t *testing.T) {
	repo := newMockRepo()
	repo.byID["c1"] = domain.Course{ID: "c1", Title: "T"}

	svc := New(repo)
	got, err := svc.SetPublished(context.Background(), "c1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Published {
		t.Error("expected published")
	}
	if !repo.byID["c1"].Published {
		t.Error("publish not persisted")
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := New(newMockRepo())
	if err := svc.Delete(context.Background(), "nope"); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo := newMockRepo()
	repo.byID["c1"] = domain.Course{ID: "c1", Title: "T"}

	svc := New(repo)
	if err := svc.Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.byID["c1"]; ok {
		t.Error("course still present")
	}
}
