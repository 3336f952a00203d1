package in

import (
	"context"

	chatdto "mindful/internal/modules/chat/dto"
	chatin "mindful/internal/modules/chat/port/in"
)

type CLIHandler struct {
	usecase chatin.Usecase
}

func NewCLIHandler(usecase chatin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Send(ctx context.Context, userID, content string) (chatdto.SendOutput, error) {
	return h.usecase.Send(ctx, chatdto.SendInput{UserID: userID, Content: content})
}

func (h CLIHandler) History(ctx context.Context, userID string) ([]chatdto.MessageOutput, error) {
	return h.usecase.History(ctx, userID)
}
