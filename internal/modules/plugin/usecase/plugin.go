package usecase

import (
	"context"

	"mindful/internal/modules/plugin/dto"
	pluginin "mindful/internal/modules/plugin/port/in"
	"mindful/internal/modules/plugin/service"
)

type Interactor struct {
	svc *service.PluginService
}

func NewInteractor(svc *service.PluginService) pluginin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Respond(ctx context.Context, input dto.RespondInput) (dto.RespondOutput, error) {
	return i.svc.Respond(ctx, input)
}
