package out

import (
	"context"

	"mindful/internal/modules/resources/domain"
)

// Catalog supplies the current resource list. File paths in the returned
// resources are absolute.
type Catalog interface {
	Load(ctx context.Context) ([]domain.Resource, error)
}

type MarkdownReader interface {
	Read(ctx context.Context, path string) (string, error)
}

type PDFReader interface {
	// ReadText returns the text of every page, in order.
	ReadText(ctx context.Context, path string) ([]string, error)
}

type ExternalLauncher interface {
	Open(ctx context.Context, target string) error
}

// CatalogWatcher signals on changes when the catalog changes on disk.
type CatalogWatcher interface {
	Start(ctx context.Context, changes chan<- struct{}) error
	Stop()
}
