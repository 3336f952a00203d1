package in

import (
	"context"

	"mindful/internal/modules/chat/dto"
)

type Usecase interface {
	Send(ctx context.Context, input dto.SendInput) (dto.SendOutput, error)
	// History returns messages oldest first, or the welcome greeting when the
	// user has none.
	History(ctx context.Context, userID string) ([]dto.MessageOutput, error)
}
