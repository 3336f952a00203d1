package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

type DocumentKind string

const (
	DocumentMarkdown DocumentKind = "markdown"
	DocumentPDF      DocumentKind = "pdf"
)

// KindOf infers the document kind from the file extension.
func KindOf(path string) (DocumentKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return DocumentMarkdown, nil
	case ".pdf":
		return DocumentPDF, nil
	default:
		return "", fmt.Errorf("unsupported document type: %s", filepath.Ext(path))
	}
}

type Document struct {
	ResourceID string
	Title      string
	Kind       DocumentKind
	Path       string
	// Body is markdown for markdown files and extracted text for PDFs.
	Body  string
	Pages int
}
