package out

import (
	"context"
	"fmt"
	"strings"

	"rsc.io/pdf"

	resourcesout "mindful/internal/modules/resources/port/out"
)

type LocalPDFReader struct{}

func NewLocalPDFReader() resourcesout.PDFReader {
	return &LocalPDFReader{}
}

func (r *LocalPDFReader) ReadText(ctx context.Context, path string) (pages []string, err error) {
	// rsc.io/pdf panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			pages, err = nil, fmt.Errorf("parse pdf: %v", rec)
		}
	}()
	doc, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	total := doc.NumPage()
	pages = make([]string, 0, total)
	for n := 1; n <= total; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := doc.Page(n)
		if p.V.IsNull() {
			return nil, fmt.Errorf("pdf page %d is null", n)
		}
		content := p.Content()
		parts := make([]string, 0, len(content.Text))
		for _, text := range content.Text {
			if strings.TrimSpace(text.S) == "" {
				continue
			}
			parts = append(parts, text.S)
		}
		pages = append(pages, strings.Join(parts, " "))
	}
	return pages, nil
}
