// FILE: internal/service/user_service.go
package service

import (
	"context"
	"time"

	"techjays-chat-be/internal/dto"
	"techjays-chat-be/internal/repository/contract"
	"techjays-chat-be/internal/repository/specification"
	"techjays-chat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error
	DeleteAccount(ctx context.Context, userId uuid.UUID) error
}

type userService struct {
	uowFactory     unitofwork.RepositoryFactory
	activeSessions contract.ActiveSessionRepository
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, activeSessions contract.ActiveSessionRepository) IUserService {
	return &userService{
		uowFactory:     uowFactory,
		activeSessions: activeSessions,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	avatarURL := ""
	if user.AvatarURL != nil {
		avatarURL = *user.AvatarURL
	}

	return &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		Status:    string(user.Status),
		AvatarURL: avatarURL,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if req.Email != "" && req.Email != user.Email {
		existing, _ := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
		if existing != nil {
			return ErrEmailInUse
		}
		user.Email = req.Email
	}

	user.FullName = req.FullName
	user.UpdatedAt = time.Now()

	return uow.UserRepository().Update(ctx, user)
}

// DeleteAccount removes the user together with every chat row they own.
// Their remembered session label is dropped as well so a recreated
// account starts clean.
func (s *userService) DeleteAccount(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteAllByUserId(ctx, userId); err != nil {
		return err
	}

	if err := uow.UserRepository().Delete(ctx, userId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.activeSessions.Delete(ctx, userId)
	return nil
}
