// Package extract pulls plain text out of uploaded documents.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/capacita-cloud/capacita/internal/domain"
)

// maxTextRunes caps extracted text so a large upload cannot blow up
// downstream AI prompts.
const maxTextRunes = 20000

// Supported reports whether the filename has an extension we can extract.
func Supported(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// Text extracts the text layer of a PDF. Pages without a text layer
// (scanned images) contribute nothing.
func Text(filename string, data []byte) (string, error) {
	if !Supported(filename) {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFile, filepath.Ext(filename))
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}

	return clamp(strings.TrimSpace(sb.String()), maxTextRunes), nil
}

func clamp(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
