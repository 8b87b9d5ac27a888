package domain

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Licitação", "licitacao"},
		{"Pregão Eletrônico: Licitação e Contratos", "pregao eletronico: licitacao e contratos"},
		{"  múltiplos   espaços  ", "multiplos espacos"},
		{"ALREADY lower", "already lower"},
		{"", ""},
		{"çãõéêíóúüÁÀ", "caoeeiouuaa"},
		{"tab\tand\nnewline", "tab and newline"},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Pregão", "licitacao", "Gestão Pública 2024"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Pregão  Eletrônico ")
	want := []string{"pregao", "eletronico"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}

	if toks := Tokenize("   "); toks != nil {
		t.Errorf("expected nil tokens for blank input, got %v", toks)
	}
}

func TestSearchableText(t *testing.T) {
	c := Course{
		Title:    "Pregão Eletrônico",
		Summary:  "Curso completo",
		Tags:     []string{"licitação", "contratos"},
		Audience: "Pregoeiros, equipes de apoio",
		Sections: []Section{{Title: "Módulo 1", Content: "Fase interna"}},
		Speakers: []Speaker{{Name: "Maria", Bio: "Especialista em compras públicas"}},
		CustomFields: map[string]string{
			"certificado": "40 horas",
		},
	}
	text := c.SearchableText()

	for _, want := range []string{
		"Pregão Eletrônico", "Curso completo", "licitação", "contratos",
		"Pregoeiros", "Módulo 1", "Fase interna", "Maria",
		"Especialista em compras públicas", "40 horas",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("SearchableText missing %q", want)
		}
	}
}

func TestSearchableText_Empty(t *testing.T) {
	c := Course{}
	if got := c.SearchableText(); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestFallbackExpansion(t *testing.T) {
	exp := FallbackExpansion("compras públicas sustentáveis")
	if !exp.UsedFallback {
		t.Error("expected UsedFallback")
	}
	if exp.Intent != "compras públicas sustentáveis" {
		t.Errorf("intent = %q", exp.Intent)
	}
	want := []string{"compras públicas sustentáveis", "compras", "públicas", "sustentáveis"}
	if !reflect.DeepEqual(exp.Terms, want) {
		t.Errorf("terms = %v, want %v", exp.Terms, want)
	}
	if len(exp.TargetRoles) != 0 {
		t.Errorf("expected no roles, got %v", exp.TargetRoles)
	}
}

func TestFallbackExpansion_SingleWord(t *testing.T) {
	exp := FallbackExpansion("licitação")
	// single word equals the whole query; no duplicate
	if len(exp.Terms) != 1 || exp.Terms[0] != "licitação" {
		t.Errorf("terms = %v", exp.Terms)
	}
}
