package usecase

import (
	"context"

	"mindful/internal/modules/resources/domain"
	resourcesdto "mindful/internal/modules/resources/dto"
	resourcesout "mindful/internal/modules/resources/port/out"
	"mindful/internal/modules/resources/service"
)

type Interactor struct {
	svc *service.ResourceService
}

func NewInteractor(svc *service.ResourceService) *Interactor {
	return &Interactor{svc: svc}
}

func (i *Interactor) Categories() []resourcesdto.CategoryOutput {
	cats := domain.Categories()
	out := make([]resourcesdto.CategoryOutput, 0, len(cats))
	for _, c := range cats {
		out = append(out, resourcesdto.CategoryOutput{ID: c.ID, Name: c.Name})
	}
	return out
}

func (i *Interactor) Filter(ctx context.Context, input resourcesdto.FilterInput) ([]resourcesdto.ResourceOutput, error) {
	resources, err := i.svc.Filter(ctx, input.Search, input.Category)
	if err != nil {
		return nil, err
	}
	out := make([]resourcesdto.ResourceOutput, 0, len(resources))
	for _, r := range resources {
		out = append(out, toOutput(r))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, resourceID string) (resourcesdto.ResourceOutput, error) {
	r, err := i.svc.Get(ctx, resourceID)
	if err != nil {
		return resourcesdto.ResourceOutput{}, err
	}
	return toOutput(r), nil
}

func (i *Interactor) Open(ctx context.Context, resourceID string) (resourcesdto.DocumentOutput, error) {
	doc, err := i.svc.Open(ctx, resourceID)
	if err != nil {
		return resourcesdto.DocumentOutput{}, err
	}
	return resourcesdto.DocumentOutput{
		ResourceID: doc.ResourceID,
		Title:      doc.Title,
		Kind:       string(doc.Kind),
		Path:       doc.Path,
		Body:       doc.Body,
		Pages:      doc.Pages,
	}, nil
}

func (i *Interactor) Browse(ctx context.Context, resourceID string) error {
	return i.svc.Browse(ctx, resourceID)
}

func (i *Interactor) Reload(ctx context.Context) error {
	return i.svc.Reload(ctx)
}

func (i *Interactor) Watch(ctx context.Context, watcher resourcesout.CatalogWatcher) (<-chan error, error) {
	return i.svc.Watch(ctx, watcher)
}

func toOutput(r domain.Resource) resourcesdto.ResourceOutput {
	return resourcesdto.ResourceOutput{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Type:        string(r.Type),
		URL:         r.URL,
		Tags:        append([]string(nil), r.Tags...),
		ReadTime:    r.ReadTime,
		HasDocument: r.File != "",
	}
}
