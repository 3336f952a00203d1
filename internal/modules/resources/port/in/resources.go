package in

import (
	"context"

	"mindful/internal/modules/resources/dto"
)

type Usecase interface {
	Categories() []dto.CategoryOutput
	Filter(ctx context.Context, input dto.FilterInput) ([]dto.ResourceOutput, error)
	Get(ctx context.Context, resourceID string) (dto.ResourceOutput, error)
	Open(ctx context.Context, resourceID string) (dto.DocumentOutput, error)
	Browse(ctx context.Context, resourceID string) error
	Reload(ctx context.Context) error
}
