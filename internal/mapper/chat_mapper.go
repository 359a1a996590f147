package mapper

import (
	"techjays-chat-be/internal/entity"
	"techjays-chat-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:           msg.Id,
		UserId:       msg.UserId,
		SessionLabel: msg.SessionLabel,
		Message:      msg.Message,
		Sender:       msg.Sender,
		CreatedAt:    msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:           msg.Id,
		UserId:       msg.UserId,
		SessionLabel: msg.SessionLabel,
		Message:      msg.Message,
		Sender:       msg.Sender,
		CreatedAt:    msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessagesToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ChatMessageToEntity(msg)
	}
	return entities
}
