package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/capacita-cloud/capacita/internal/domain"
)

const draftSystemPrompt = `Você prepara fichas de cursos de capacitação para o setor ` +
	`público brasileiro a partir do texto de documentos. Responda somente com JSON ` +
	`válido, sem texto adicional.`

const draftUserPromptFmt = `A partir do texto extraído de um documento, sugira os ` +
	`metadados de um curso:

%s

Responda neste formato:
{"title": "...", "summary": "...", "category": "...", "tags": ["..."], "audience": "..."}`

// draftReply mirrors the JSON the model is asked to produce.
type draftReply struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Audience string   `json:"audience"`
}

// Draft implements ingest.Drafter: proposes course metadata from
// extracted document text. Errors are returned as-is; the fail-soft
// fallback lives in the usecase layer.
func (c *Client) Draft(ctx context.Context, text string) (domain.CourseDraft, error) {
	reply, err := c.complete(ctx, "draft", draftSystemPrompt, fmt.Sprintf(draftUserPromptFmt, text))
	if err != nil {
		return domain.CourseDraft{}, fmt.Errorf("draft course: %w", err)
	}

	var parsed draftReply
	if err := decodeReply(reply, &parsed); err != nil {
		return domain.CourseDraft{}, fmt.Errorf("draft course: %w", err)
	}

	return domain.CourseDraft{
		Title:    strings.TrimSpace(parsed.Title),
		Summary:  strings.TrimSpace(parsed.Summary),
		Category: strings.TrimSpace(parsed.Category),
		Tags:     trimAll(parsed.Tags),
		Audience: strings.TrimSpace(parsed.Audience),
	}, nil
}
