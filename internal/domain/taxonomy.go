package domain

// Taxonomy is the catalog's configurable classification data.
// Acronyms is the scorer's short-word allow-list: words shorter than
// the minimum length still contribute score when listed here. Its
// membership is a business decision, so it lives in data, not code.
type Taxonomy struct {
	Categories []string `json:"categories"`
	Modalities []string `json:"modalities"`
	Acronyms   []string `json:"acronyms"`
}

// DefaultTaxonomy returns the taxonomy used until an admin saves one.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Categories: []string{
			"licitações e contratos",
			"gestão pública",
			"controle e auditoria",
			"orçamento e finanças",
			"recursos humanos",
		},
		Modalities: []string{"online", "presencial", "híbrido"},
		Acronyms:   []string{"tcu", "cgu", "agu", "stn", "rdc", "lrf"},
	}
}
