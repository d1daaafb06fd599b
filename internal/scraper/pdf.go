package scraper

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPDFBytes caps how much of a PDF is downloaded before extraction.
const maxPDFBytes = 20 << 20

// extractPDF pulls the plain text out of a PDF response body. Unreadable
// pages are skipped rather than failing the whole document.
func (s *Scraper) extractPDF(body io.Reader, rawURL string) (*Page, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxPDFBytes))
	if err != nil {
		return nil, fmt.Errorf("reading pdf body: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing pdf: %w", err)
	}

	var sb strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		p := reader.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(strings.TrimSpace(text))
		sb.WriteString("\n\n")
		if sb.Len() > s.maxChars {
			break
		}
	}

	content := cleanText(sb.String())
	if content == "" {
		return nil, fmt.Errorf("pdf %s contained no extractable text", rawURL)
	}
	if len(content) > s.maxChars {
		content = content[:s.maxChars] + "..."
	}
	return &Page{URL: rawURL, Content: content}, nil
}
