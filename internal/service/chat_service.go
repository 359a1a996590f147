// FILE: internal/service/chat_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"techjays-chat-be/internal/constant"
	"techjays-chat-be/internal/entity"
	"techjays-chat-be/internal/repository/contract"
	"techjays-chat-be/internal/repository/specification"
	"techjays-chat-be/internal/repository/unitofwork"

	"techjays-chat-be/pkg/events"
	"techjays-chat-be/pkg/gemini"
	"techjays-chat-be/pkg/naming"
	pktNats "techjays-chat-be/pkg/nats"

	"github.com/google/uuid"
)

type IChatService interface {
	// StartNewSession creates the next numbered session, seeds the bot
	// greeting and marks it active.
	StartNewSession(ctx context.Context, userId uuid.UUID) (string, error)

	// OpenChat resolves which session the user should see (requested,
	// then remembered, then the default) and returns its transcript
	// together with the full session list.
	OpenChat(ctx context.Context, userId uuid.UUID, requestedLabel string) (string, []*entity.ChatMessage, []string, error)

	// SendMessage runs the full submit flow and returns the bot reply
	// plus the label the conversation ended up under (it changes when
	// the first message triggers auto-naming).
	SendMessage(ctx context.Context, userId uuid.UUID, label, text string) (string, string, error)

	ListSessions(ctx context.Context, userId uuid.UUID) ([]string, error)
	GetSessionHistory(ctx context.Context, userId uuid.UUID, label string) ([]*entity.ChatMessage, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, label string) (int64, error)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	activeSessions contract.ActiveSessionRepository
	completion     gemini.CompletionClient
	namer          *naming.Namer
	eventPublisher *pktNats.Publisher
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	activeSessions contract.ActiveSessionRepository,
	completion gemini.CompletionClient,
	namer *naming.Namer,
	eventPublisher *pktNats.Publisher,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		activeSessions: activeSessions,
		completion:     completion,
		namer:          namer,
		eventPublisher: eventPublisher,
	}
}

func (s *chatService) StartNewSession(ctx context.Context, userId uuid.UUID) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	labels, err := uow.ChatMessageRepository().DistinctSessionLabels(ctx, userId)
	if err != nil {
		return "", err
	}

	label := fmt.Sprintf("%s%d", constant.DefaultSessionPrefix, len(labels)+1)

	if err := s.seedGreeting(ctx, uow, userId, label); err != nil {
		return "", err
	}

	s.activeSessions.Save(ctx, userId, label)
	return label, nil
}

func (s *chatService) OpenChat(ctx context.Context, userId uuid.UUID, requestedLabel string) (string, []*entity.ChatMessage, []string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	label := requestedLabel
	if label == "" {
		if remembered, ok := s.activeSessions.Get(ctx, userId); ok {
			label = remembered
		}
	}
	if label == "" {
		label = constant.DefaultSessionLabel
	}

	transcript, err := s.transcript(ctx, uow, userId, label)
	if err != nil {
		return "", nil, nil, err
	}

	// A brand new user lands on an empty default session: greet them so
	// the transcript is never blank.
	if len(transcript) == 0 && label == constant.DefaultSessionLabel {
		if err := s.seedGreeting(ctx, uow, userId, label); err != nil {
			return "", nil, nil, err
		}
		transcript, err = s.transcript(ctx, uow, userId, label)
		if err != nil {
			return "", nil, nil, err
		}
	}

	labels, err := uow.ChatMessageRepository().DistinctSessionLabels(ctx, userId)
	if err != nil {
		return "", nil, nil, err
	}

	s.activeSessions.Save(ctx, userId, label)
	return label, transcript, labels, nil
}

func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, label, text string) (string, string, error) {
	if strings.TrimSpace(text) == "" {
		return "", "", ErrEmptyInput
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if label == "" {
		if remembered, ok := s.activeSessions.Get(ctx, userId); ok {
			label = remembered
		} else {
			label = constant.DefaultSessionLabel
		}
	}

	// Auto-naming fires exactly once: only while the session still
	// carries the default numbered label and has no user message yet.
	userMessages, err := uow.ChatMessageRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.BySessionLabel{Label: label},
		specification.BySender{Sender: constant.ChatSenderUser},
	)
	if err != nil {
		return "", "", err
	}

	finalLabel := label
	if userMessages == 0 && strings.HasPrefix(label, constant.DefaultSessionPrefix) {
		finalLabel = s.namer.Title(ctx, text)
	}

	// The completion call happens outside the transaction so a slow
	// model never holds row locks.
	reply := s.completion.GenerateOrApology(ctx, text)

	if err := uow.Begin(ctx); err != nil {
		return "", "", err
	}
	defer uow.Rollback()

	userRow := &entity.ChatMessage{
		Id:           uuid.New(),
		UserId:       userId,
		SessionLabel: label,
		Message:      text,
		Sender:       constant.ChatSenderUser,
		CreatedAt:    time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, userRow); err != nil {
		return "", "", err
	}

	if finalLabel != label {
		if err := uow.ChatMessageRepository().RetargetSessionLabel(ctx, userId, label, finalLabel); err != nil {
			return "", "", err
		}
	}

	botRow := &entity.ChatMessage{
		Id:           uuid.New(),
		UserId:       userId,
		SessionLabel: finalLabel,
		Message:      reply,
		Sender:       constant.ChatSenderBot,
		CreatedAt:    time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, botRow); err != nil {
		return "", "", err
	}

	if err := uow.Commit(); err != nil {
		return "", "", err
	}

	s.activeSessions.Save(ctx, userId, finalLabel)
	return reply, finalLabel, nil
}

func (s *chatService) ListSessions(ctx context.Context, userId uuid.UUID) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatMessageRepository().DistinctSessionLabels(ctx, userId)
}

func (s *chatService) GetSessionHistory(ctx context.Context, userId uuid.UUID, label string) ([]*entity.ChatMessage, error) {
	if label == "" {
		return nil, ErrMissingLabel
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	transcript, err := s.transcript(ctx, uow, userId, label)
	if err != nil {
		return nil, err
	}

	// Loading a transcript is how the frontend switches sessions.
	s.activeSessions.Save(ctx, userId, label)
	return transcript, nil
}

func (s *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, label string) (int64, error) {
	if label == "" {
		return 0, ErrMissingLabel
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.ChatMessageRepository().DeleteBySessionLabel(ctx, userId, label)
	if err != nil {
		return 0, err
	}

	// If the deleted session was the one the user had open, fall back to
	// their most recently touched surviving session.
	if active, ok := s.activeSessions.Get(ctx, userId); ok && active == label {
		next, err := uow.ChatMessageRepository().LatestSessionLabel(ctx, userId)
		if err != nil {
			return count, err
		}
		if next == "" {
			next = constant.DefaultSessionLabel
		}
		s.activeSessions.Save(ctx, userId, next)
	}

	if s.eventPublisher != nil && count > 0 {
		event := events.BaseEvent{
			Type: events.TypeChatSessionDeleted,
			Data: map[string]interface{}{
				"user_id":       userId,
				"session_name":  label,
				"deleted_count": count,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish CHAT_SESSION_DELETED event: %v\n", err)
		}
	}

	return count, nil
}

func (s *chatService) seedGreeting(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, label string) error {
	greeting := &entity.ChatMessage{
		Id:           uuid.New(),
		UserId:       userId,
		SessionLabel: label,
		Message:      constant.SessionGreeting,
		Sender:       constant.ChatSenderBot,
		CreatedAt:    time.Now(),
	}
	return uow.ChatMessageRepository().Create(ctx, greeting)
}

func (s *chatService) transcript(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, label string) ([]*entity.ChatMessage, error) {
	return uow.ChatMessageRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.BySessionLabel{Label: label},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
}
