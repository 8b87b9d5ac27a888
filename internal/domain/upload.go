package domain

import "time"

// UploadStatus tracks how far an uploaded document got through ingestion.
type UploadStatus string

const (
	// UploadExtracted means text extraction succeeded but the AI draft did not.
	UploadExtracted UploadStatus = "extracted"
	// UploadDrafted means the AI produced a metadata draft from the text.
	UploadDrafted UploadStatus = "drafted"
)

// CourseDraft is AI-suggested course metadata derived from an uploaded
// document. Suggestions only; an admin turns a draft into a Course.
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
