package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/capacita-cloud/capacita/internal/domain"
)

const expandSystemPrompt = `Você é um assistente de busca de um catálogo de cursos ` +
	`de capacitação para o setor público brasileiro. Responda somente com JSON válido, ` +
	`sem texto adicional.`

const expandUserPromptFmt = `Analise a busca de um usuário por cursos: %q

1. Infira a necessidade por trás da frase.
2. Liste palavras-chave relacionadas, sinônimos e siglas do domínio (licitações, ` +
	`contratos, gestão pública), em ordem de relevância decrescente.
3. Infira os cargos ou funções mais prováveis do público-alvo.

Responda neste formato:
{"terms": ["..."], "intent": "...", "target_roles": ["..."]}`

// expansionReply mirrors the JSON the model is asked to produce.
type expansionReply struct {
	Terms       []string `json:"terms"`
	Intent      string   `json:"intent"`
	TargetRoles []string `json:"target_roles"`
}

// Expand implements search.ProviderExpander: one completion call per
// invocation, no retry. Errors are returned as-is; the fail-soft
// fallback lives in the usecase layer.
func (c *Client) Expand(ctx context.Context, query string) (domain.ExpandedQuery, error) {
	reply, err := c.complete(ctx, "expand", expandSystemPrompt, fmt.Sprintf(expandUserPromptFmt, query))
	if err != nil {
		return domain.ExpandedQuery{}, fmt.Errorf("expand query: %w", err)
	}

	var parsed expansionReply
	if err := decodeReply(reply, &parsed); err != nil {
		return domain.ExpandedQuery{}, fmt.Errorf("expand query: %w", err)
	}

	exp := domain.ExpandedQuery{
		Terms:       trimAll(parsed.Terms),
		Intent:      strings.TrimSpace(parsed.Intent),
		TargetRoles: trimAll(parsed.TargetRoles),
	}
	if exp.Intent == "" {
		exp.Intent = query
	}
	return exp, nil
}

// trimAll trims whitespace and drops empty entries, keeping order.
func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
