package in

import (
	"context"

	"mindful/internal/modules/plugin/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Respond(ctx context.Context, input dto.RespondInput) (dto.RespondOutput, error)
}
