package sdk

import "time"

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

// Course is a catalog entry as it appears on the wire.
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

// SearchFilters narrows the candidate course set before scoring.
// The zero value matches every published course.
type SearchFilters struct {
	Company  string `json:"company,omitempty"`
	Category string `json:"category,omitempty"`
}

// ScoredCourse is a course with its relevance score and matched terms.
type ScoredCourse struct {
	Course       Course   `json:"course"`
	Score        float64  `json:"score"`
	MatchedTerms []string `json:"matched_terms,omitempty"`
}

// QueryEcho describes how the search interpreted the raw query.
type QueryEcho struct {
	Original     string   `json:"original"`
	Intent       string   `json:"intent"`
	Terms        []string `json:"terms"`
	TargetRoles  []string `json:"target_roles,omitempty"`
	UsedFallback bool     `json:"used_fallback"`
}

// SearchMeta summarizes a result set.
type SearchMeta struct {
	TotalFound    int     `json:"total_found"`
	TotalSearched int     `json:"total_searched"`
	MaxScore      float64 `json:"max_score"`
}

// SearchResponse is the full search result.
type SearchResponse struct {
	Query   QueryEcho      `json:"query"`
	Results []ScoredCourse `json:"results"`
	Meta    SearchMeta     `json:"meta"`
}

// UploadStatus tracks how far an uploaded document got through ingestion.
type UploadStatus string

// Upload status constants.
const (
	UploadExtracted UploadStatus = "extracted"
	UploadDrafted   UploadStatus = "drafted"
)

// CourseDraft is AI-suggested course metadata derived from an upload.
type CourseDraft struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Audience string   `json:"audience,omitempty"`
}

// Upload records one ingested document and its draft.
type Upload struct {
	ID        string       `json:"id"`
	Filename  string       `json:"filename"`
	Size      int64        `json:"size"`
	Status    UploadStatus `json:"status"`
	Draft     CourseDraft  `json:"draft"`
	CreatedAt time.Time    `json:"created_at"`
}

// Taxonomy is the catalog's configurable classification data.
type Taxonomy struct {
	Categories []string `json:"categories"`
	Modalities []string `json:"modalities"`
	Acronyms   []string `json:"acronyms"`
}

// DayCount is one day of search volume.
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// CourseViews pairs a course with its accumulated view count.
type CourseViews struct {
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	Views    int64  `json:"views"`
}

// Dashboard aggregates catalog activity.
type Dashboard struct {
	TotalCourses     int           `json:"total_courses"`
	PublishedCourses int           `json:"published_courses"`
	TotalSearches    int64         `json:"total_searches"`
	SearchesByDay    []DayCount    `json:"searches_by_day"`
	TopViewed        []CourseViews `json:"top_viewed"`
}
