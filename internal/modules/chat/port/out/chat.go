package out

import (
	"context"

	"mindful/internal/modules/chat/domain"
)

type MessageStore interface {
	Save(ctx context.Context, message domain.Message) error
	ListByUser(ctx context.Context, userID string) ([]domain.Message, error)
}

// Responder is an optional external source of replies. Handled false means
// it declined and the keyword replies apply.
type Responder interface {
	Respond(ctx context.Context, userID, message string) (reply domain.Reply, handled bool, err error)
}
