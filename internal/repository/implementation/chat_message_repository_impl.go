package implementation

import (
	"context"
	"errors"

	"techjays-chat-be/internal/entity"
	"techjays-chat-be/internal/mapper"
	"techjays-chat-be/internal/model"
	"techjays-chat-be/internal/repository/contract"
	"techjays-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatMessageRepositoryImpl) Create(ctx context.Context, message *entity.ChatMessage) error {
	m := r.mapper.ChatMessageToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.ChatMessageToEntity(m)
	return nil
}

func (r *ChatMessageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	var m model.ChatMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ChatMessageToEntity(&m), nil
}

func (r *ChatMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var models []*model.ChatMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ChatMessagesToEntities(models), nil
}

func (r *ChatMessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatMessage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ChatMessageRepositoryImpl) DistinctSessionLabels(ctx context.Context, userId uuid.UUID) ([]string, error) {
	var labels []string
	err := r.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("user_id = ?", userId).
		Where("session_label IS NOT NULL AND session_label <> ''").
		Distinct().
		Order("session_label ASC").
		Pluck("session_label", &labels).Error
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *ChatMessageRepositoryImpl) LatestSessionLabel(ctx context.Context, userId uuid.UUID) (string, error) {
	var m model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Where("session_label IS NOT NULL AND session_label <> ''").
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return m.SessionLabel, nil
}

func (r *ChatMessageRepositoryImpl) RetargetSessionLabel(ctx context.Context, userId uuid.UUID, oldLabel, newLabel string) error {
	return r.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("user_id = ? AND session_label = ?", userId, oldLabel).
		Update("session_label", newLabel).Error
}

func (r *ChatMessageRepositoryImpl) DeleteBySessionLabel(ctx context.Context, userId uuid.UUID, label string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND session_label = ?", userId, label).
		Delete(&model.ChatMessage{})
	return result.RowsAffected, result.Error
}

func (r *ChatMessageRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Delete(&model.ChatMessage{}).Error
}
