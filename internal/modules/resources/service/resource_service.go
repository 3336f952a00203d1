package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"mindful/internal/modules/resources/domain"
	resourcesout "mindful/internal/modules/resources/port/out"
	apperrors "mindful/internal/platform/errors"
)

type ResourceService struct {
	catalog  resourcesout.Catalog
	markdown resourcesout.MarkdownReader
	pdf      resourcesout.PDFReader
	launcher resourcesout.ExternalLauncher
	logger   *zap.Logger

	mu        sync.RWMutex
	resources []domain.Resource
	loaded    bool
}

func NewResourceService(
	catalog resourcesout.Catalog,
	markdown resourcesout.MarkdownReader,
	pdf resourcesout.PDFReader,
	launcher resourcesout.ExternalLauncher,
	logger *zap.Logger,
) *ResourceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceService{
		catalog:  catalog,
		markdown: markdown,
		pdf:      pdf,
		launcher: launcher,
		logger:   logger.Named("resources"),
	}
}

// Reload replaces the cached catalog. On failure the previous catalog stays
// in place.
func (s *ResourceService) Reload(ctx context.Context) error {
	resources, err := s.catalog.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.resources = resources
	s.loaded = true
	s.mu.Unlock()
	s.logger.Debug("resource catalog loaded", zap.Int("count", len(resources)))
	return nil
}

func (s *ResourceService) All(ctx context.Context) ([]domain.Resource, error) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if !loaded {
		if err := s.Reload(ctx); err != nil {
			return nil, err
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Resource(nil), s.resources...), nil
}

func (s *ResourceService) Filter(ctx context.Context, search, category string) ([]domain.Resource, error) {
	category = strings.TrimSpace(category)
	if category != "" && !domain.KnownCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrInvalidInput, category)
	}
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Filter(all, search, category), nil
}

func (s *ResourceService) Get(ctx context.Context, resourceID string) (domain.Resource, error) {
	all, err := s.All(ctx)
	if err != nil {
		return domain.Resource{}, err
	}
	for _, r := range all {
		if r.ID == resourceID {
			return r, nil
		}
	}
	return domain.Resource{}, fmt.Errorf("%w: resource %s", apperrors.ErrNotFound, resourceID)
}

// Open reads the resource's local document.
func (s *ResourceService) Open(ctx context.Context, resourceID string) (domain.Document, error) {
	r, err := s.Get(ctx, resourceID)
	if err != nil {
		return domain.Document{}, err
	}
	if r.File == "" {
		return domain.Document{}, fmt.Errorf("%w: resource %s has no local document", apperrors.ErrInvalidInput, r.ID)
	}
	kind, err := domain.KindOf(r.File)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	doc := domain.Document{ResourceID: r.ID, Title: r.Title, Kind: kind, Path: r.File}
	switch kind {
	case domain.DocumentMarkdown:
		body, err := s.markdown.Read(ctx, r.File)
		if err != nil {
			return domain.Document{}, err
		}
		doc.Body = body
		doc.Pages = 1
	case domain.DocumentPDF:
		pages, err := s.pdf.ReadText(ctx, r.File)
		if err != nil {
			return domain.Document{}, err
		}
		doc.Body = strings.Join(pages, "\n\n")
		doc.Pages = len(pages)
	}
	return doc, nil
}

// Browse opens the resource externally, preferring its URL over a local file.
func (s *ResourceService) Browse(ctx context.Context, resourceID string) error {
	r, err := s.Get(ctx, resourceID)
	if err != nil {
		return err
	}
	target := r.URL
	if target == "" {
		target = r.File
	}
	if err := s.launcher.Open(ctx, target); err != nil {
		return err
	}
	s.logger.Info("resource opened externally", zap.String("resource_id", r.ID))
	return nil
}

// Watch reloads the catalog on every change reported by watcher and sends
// the outcome of each reload. The channel closes once ctx is done.
func (s *ResourceService) Watch(ctx context.Context, watcher resourcesout.CatalogWatcher) (<-chan error, error) {
	changes := make(chan struct{}, 1)
	if err := watcher.Start(ctx, changes); err != nil {
		return nil, err
	}
	results := make(chan error, 1)
	go func() {
		defer close(results)
		defer watcher.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				err := s.Reload(ctx)
				if err != nil {
					s.logger.Warn("resource catalog reload failed", zap.Error(err))
				}
				select {
				case results <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return results, nil
}
