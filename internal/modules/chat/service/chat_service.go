package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mindful/internal/modules/chat/domain"
	chatout "mindful/internal/modules/chat/port/out"
	"mindful/internal/platform/clock"
	apperrors "mindful/internal/platform/errors"
	"mindful/internal/platform/id"
)

type ChatService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     chatout.MessageStore
	responder chatout.Responder
	logger    *zap.Logger
}

// NewChatService builds the service. responder may be nil, in which case
// only keyword replies are used.
func NewChatService(clock clock.Clock, idGen id.Generator, store chatout.MessageStore, responder chatout.Responder, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{clock: clock, idGen: idGen, store: store, responder: responder, logger: logger.Named("chat")}
}

type Exchange struct {
	UserMessage domain.Message
	Reply       domain.Message
	Category    domain.Category
	Source      domain.ReplySource
	Stored      bool
}

// Send records the user's message, produces a reply and records that too.
// Storage failures are logged and do not prevent the reply.
func (s *ChatService) Send(ctx context.Context, userID, content string) (Exchange, error) {
	content = strings.TrimSpace(content)
	if err := domain.ValidateContent(content); err != nil {
		return Exchange{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	userMessage := domain.Message{
		ID:        s.idGen.New(),
		UserID:    userID,
		Content:   content,
		FromUser:  true,
		CreatedAt: s.clock.Now(),
	}
	stored := s.save(ctx, userMessage)

	reply := s.reply(ctx, userID, content)
	replyMessage := domain.Message{
		ID:        s.idGen.New(),
		UserID:    userID,
		Content:   reply.Content,
		CreatedAt: s.clock.Now(),
	}
	stored = s.save(ctx, replyMessage) && stored

	return Exchange{
		UserMessage: userMessage,
		Reply:       replyMessage,
		Category:    reply.Category,
		Source:      reply.Source,
		Stored:      stored,
	}, nil
}

func (s *ChatService) History(ctx context.Context, userID string) ([]domain.Message, error) {
	if userID == "" {
		return nil, apperrors.ErrNotSignedIn
	}
	return s.store.ListByUser(ctx, userID)
}

func (s *ChatService) reply(ctx context.Context, userID, content string) domain.Reply {
	fallback := domain.KeywordReply(content)
	if s.responder == nil {
		return fallback
	}
	// Crisis messages always get the hotline reply.
	if fallback.Category == domain.CategoryCrisis {
		return fallback
	}
	reply, handled, err := s.responder.Respond(ctx, userID, content)
	if err != nil {
		s.logger.Warn("responder plugin failed, using keyword reply", zap.Error(err))
		return fallback
	}
	if !handled || strings.TrimSpace(reply.Content) == "" {
		return fallback
	}
	if reply.Category == "" {
		reply.Category = domain.CategoryGeneral
	}
	reply.Source = domain.SourcePlugin
	return reply
}

func (s *ChatService) save(ctx context.Context, message domain.Message) bool {
	if message.UserID == "" {
		return false
	}
	if err := s.store.Save(ctx, message); err != nil {
		s.logger.Warn("chat message not stored",
			zap.String("user_id", message.UserID),
			zap.Bool("from_user", message.FromUser),
			zap.Error(err))
		return false
	}
	return true
}
