package course

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/capacita-cloud/capacita/internal/domain"
)

// ListOptions narrows List results.
type ListOptions struct {
	PublishedOnly bool
	Company       string
	Category      string
}

// Service handles course CRUD operations.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a course service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the service clock (test-only).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create validates and stores a new course. ID and timestamps are
// assigned here; client-supplied values for them are ignored.
func (s *Service) Create(ctx context.Context, c domain.Course) (domain.Course, error) {
	if err := validate(&c); err != nil {
		return domain.Course{}, fmt.Errorf("%w: %w", domain.ErrInvalidCourse, err)
	}

	c.ID = uuid.NewString()
	c.CreatedAt = s.now().UTC()
	c.UpdatedAt = c.CreatedAt

	if err := s.repo.Save(ctx, &c); err != nil {
		return domain.Course{}, fmt.Errorf("save course: %w", err)
	}
	return c, nil
}

// Get retrieves a course by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.Course, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Course{}, fmt.Errorf("get course: %w", err)
	}
	return c, nil
}

// List returns courses matching opts, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]domain.Course, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	filtered := all[:0]
	for _, c := range all {
		if opts.PublishedOnly && !c.Published {
			continue
		}
		if opts.Company != "" && !strings.EqualFold(c.Company, opts.Company) {
			continue
		}
		if opts.Category != "" && !strings.EqualFold(c.Category, opts.Category) {
			continue
		}
		filtered = append(filtered, c)
	}

	sort.Slice(filtered, func(a, b int) bool {
		return filtered[a].CreatedAt.After(filtered[b].CreatedAt)
	})
	return filtered, nil
}

// ListPublished implements the search usecase's CourseSource.
func (s *Service) ListPublished(ctx context.Context, filters domain.SearchFilters) ([]domain.Course, error) {
	return s.List(ctx, ListOptions{
		PublishedOnly: true,
		Company:       filters.Company,
		Category:      filters.Category,
	})
}

// Update replaces a course's content while preserving its identity and
// creation time.
func (s *Service) Update(ctx context.Context, id string, c domain.Course) (domain.Course, error) {
	if err := validate(&c); err != nil {
		return domain.Course{}, fmt.Errorf("%w: %w", domain.ErrInvalidCourse, err)
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Course{}, fmt.Errorf("get course: %w", err)
	}

	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, &c); err != nil {
		return domain.Course{}, fmt.Errorf("save course: %w", err)
	}
	return c, nil
}

// SetPublished flips a course's published flag.
func (s *Service) SetPublished(ctx context.Context, id string, published bool) (domain.Course, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Course{}, fmt.Errorf("get course: %w", err)
	}

	c.Published = published
	c.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, &c); err != nil {
		return domain.Course{}, fmt.Errorf("save course: %w", err)
	}
	return c, nil
}

// Delete removes a course.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("get course: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

func validate(c *domain.Course) error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(c.Company) == "" {
		return fmt.Errorf("company is required")
	}
	if c.Workload < 0 {
		return fmt.Errorf("workload_hours must not be negative")
	}
	if c.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}
