package in

import (
	"context"

	resourcesdto "mindful/internal/modules/resources/dto"
	resourcesin "mindful/internal/modules/resources/port/in"
)

type CLIHandler struct {
	usecase resourcesin.Usecase
}

func NewCLIHandler(usecase resourcesin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Categories() []resourcesdto.CategoryOutput {
	return h.usecase.Categories()
}

func (h CLIHandler) List(ctx context.Context, search, category string) ([]resourcesdto.ResourceOutput, error) {
	return h.usecase.Filter(ctx, resourcesdto.FilterInput{Search: search, Category: category})
}

func (h CLIHandler) Open(ctx context.Context, resourceID string) (resourcesdto.DocumentOutput, error) {
	return h.usecase.Open(ctx, resourceID)
}

func (h CLIHandler) Browse(ctx context.Context, resourceID string) error {
	return h.usecase.Browse(ctx, resourceID)
}
