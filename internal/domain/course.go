package domain

import (
	"strings"
	"time"
)

// Section is a titled block of course program content.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Speaker is an instructor with a free-form bio.
type Speaker struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// Course is a catalog entry. Flat record, owned by the store;
// scoring treats it as read-only input.
type Course struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Subtitle     string            `json:"subtitle,omitempty"`
	Summary      string            `json:"summary,omitempty"`
	Description  string            `json:"description,omitempty"`
	Category     string            `json:"category,omitempty"`
	Modality     string            `json:"modality,omitempty"`
	Workload     int               `json:"workload_hours,omitempty"`
	Price        float64           `json:"price,omitempty"`
	Company      string            `json:"company,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	Audience     string            `json:"audience,omitempty"`
	Sections     []Section         `json:"sections,omitempty"`
	Speakers     []Speaker         `json:"speakers,omitempty"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
	Published    bool              `json:"published"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// SearchableText concatenates every textual and list field of the
// course into a single blob for relevance scoring. The caller is
// expected to Normalize the result before matching.
func (c *Course) SearchableText() string {
	var b strings.Builder
	parts := []string{
		c.Title, c.Subtitle, c.Summary, c.Description,
		c.Category, c.Modality, c.Company, c.Audience,
	}
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(p)
		b.WriteByte(' ')
	}
	for _, t := range c.Tags {
		b.WriteString(t)
		b.WriteByte(' ')
	}
	for _, s := range c.Sections {
		b.WriteString(s.Title)
		b.WriteByte(' ')
		b.WriteString(s.Content)
		b.WriteByte(' ')
	}
	for _, sp := range c.Speakers {
		b.WriteString(sp.Name)
		b.WriteByte(' ')
		b.WriteString(sp.Bio)
		b.WriteByte(' ')
	}
	for _, v := range c.CustomFields {
		b.WriteString(v)
		b.WriteByte(' ')
	}
	return strings.TrimSpace(b.String())
}
