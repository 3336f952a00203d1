package usecase

import (
	"context"

	"mindful/internal/modules/chat/domain"
	chatdto "mindful/internal/modules/chat/dto"
	"mindful/internal/modules/chat/service"
	"mindful/internal/platform/clock"
)

type Interactor struct {
	svc   *service.ChatService
	clock clock.Clock
}

func NewInteractor(svc *service.ChatService, clock clock.Clock) *Interactor {
	return &Interactor{svc: svc, clock: clock}
}

func (i *Interactor) Send(ctx context.Context, input chatdto.SendInput) (chatdto.SendOutput, error) {
	exchange, err := i.svc.Send(ctx, input.UserID, input.Content)
	if err != nil {
		return chatdto.SendOutput{}, err
	}
	return chatdto.SendOutput{
		UserMessage: toOutput(exchange.UserMessage),
		Reply:       toOutput(exchange.Reply),
		Category:    string(exchange.Category),
		Source:      string(exchange.Source),
		Stored:      exchange.Stored,
	}, nil
}

// History returns the stored conversation. Without a signed-in user there is
// nothing stored, so only the welcome greeting is returned.
func (i *Interactor) History(ctx context.Context, userID string) ([]chatdto.MessageOutput, error) {
	if userID == "" {
		return []chatdto.MessageOutput{Welcome(i.clock)}, nil
	}
	messages, err := i.svc.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return []chatdto.MessageOutput{Welcome(i.clock)}, nil
	}
	out := make([]chatdto.MessageOutput, 0, len(messages))
	for _, m := range messages {
		out = append(out, toOutput(m))
	}
	return out, nil
}

// Welcome is the unsaved greeting for a conversation with no history.
func Welcome(clock clock.Clock) chatdto.MessageOutput {
	return chatdto.MessageOutput{ID: domain.WelcomeID, Content: domain.WelcomeMessage, CreatedAt: clock.Now()}
}

func toOutput(m domain.Message) chatdto.MessageOutput {
	return chatdto.MessageOutput{ID: m.ID, Content: m.Content, FromUser: m.FromUser, CreatedAt: m.CreatedAt}
}
