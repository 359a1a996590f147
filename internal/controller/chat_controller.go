// FILE: internal/controller/chat_controller.go
package controller

import (
	"errors"
	"net/url"

	"techjays-chat-be/internal/constant"
	"techjays-chat-be/internal/dto"
	"techjays-chat-be/internal/entity"
	"techjays-chat-be/internal/pkg/serverutils"
	"techjays-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	NewSession(ctx *fiber.Ctx) error
	Open(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	SessionHistory(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1", serverutils.JwtMiddleware)
	h.Post("/session/new", c.NewSession)
	h.Get("/", c.Open)
	h.Get("/open/:label?", c.Open)
	h.Post("/message", c.SendMessage)
	h.Get("/sessions", c.ListSessions)
	h.Get("/session/:label", c.SessionHistory)
	h.Post("/session/delete", c.DeleteSession)
}

func (c *chatController) NewSession(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	label, err := c.service.StartNewSession(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", dto.NewSessionResponse{
		SessionName: label,
	}))
}

func (c *chatController) Open(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	requested, err := url.QueryUnescape(ctx.Params("label"))
	if err != nil {
		requested = ctx.Params("label")
	}

	label, transcript, sessions, err := c.service.OpenChat(ctx.Context(), userId, requested)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success open chat", dto.OpenChatResponse{
		Chats:       toChatEntries(transcript),
		SessionName: label,
		Sessions:    sessions,
	}))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request payload"))
	}

	reply, label, err := c.service.SendMessage(ctx.Context(), userId, "", req.Message)
	if errors.Is(err, service.ErrEmptyInput) {
		// Blank input gets the fixed prompt back, with no session echo.
		return ctx.JSON(serverutils.SuccessResponse("Success send message", dto.SendMessageResponse{
			Reply: constant.EmptyInputReply,
		}))
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", dto.SendMessageResponse{
		Reply:       reply,
		SessionName: label,
	}))
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	sessions, err := c.service.ListSessions(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", dto.SessionListResponse{
		Sessions: sessions,
	}))
}

func (c *chatController) SessionHistory(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	// Labels come from model output and may carry spaces or punctuation.
	label, err := url.QueryUnescape(ctx.Params("label"))
	if err != nil {
		label = ctx.Params("label")
	}

	transcript, err := c.service.GetSessionHistory(ctx.Context(), userId, label)
	if errors.Is(err, service.ErrMissingLabel) {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success load session", dto.SessionHistoryResponse{
		Chats:       toChatEntries(transcript),
		SessionName: label,
	}))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.DeleteSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request payload"))
	}

	count, err := c.service.DeleteSession(ctx.Context(), userId, req.SessionName)
	if errors.Is(err, service.ErrMissingLabel) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
			"data":    dto.DeleteSessionResponse{Deleted: false},
		})
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete session", dto.DeleteSessionResponse{
		Deleted:      count > 0,
		SessionName:  req.SessionName,
		DeletedCount: count,
	}))
}

// currentUserId reads the authenticated subject the JWT middleware set.
// A subject that does not parse as a UUID is a badly minted token, so the
// request is rejected instead of silently running as the nil id.
func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token subject")
	}
	return userId, nil
}

func toChatEntries(transcript []*entity.ChatMessage) []dto.ChatEntry {
	entries := make([]dto.ChatEntry, len(transcript))
	for i, row := range transcript {
		entries[i] = dto.ChatEntry{
			Sender:  row.Sender,
			Message: row.Message,
		}
	}
	return entries
}
