// FILE: internal/controller/chat_controller_test.go
package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"techjays-chat-be/internal/constant"
	"techjays-chat-be/internal/entity"
	"techjays-chat-be/internal/pkg/serverutils"
	"techjays-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChatService answers every operation with canned values so the
// tests exercise only the HTTP surface.
type stubChatService struct {
	sendReply string
	sendLabel string
	sendErr   error
}

func (s *stubChatService) StartNewSession(ctx context.Context, userId uuid.UUID) (string, error) {
	return constant.DefaultSessionLabel, nil
}

func (s *stubChatService) OpenChat(ctx context.Context, userId uuid.UUID, requestedLabel string) (string, []*entity.ChatMessage, []string, error) {
	return constant.DefaultSessionLabel, nil, []string{constant.DefaultSessionLabel}, nil
}

func (s *stubChatService) SendMessage(ctx context.Context, userId uuid.UUID, label, text string) (string, string, error) {
	if s.sendErr != nil {
		return "", "", s.sendErr
	}
	return s.sendReply, s.sendLabel, nil
}

func (s *stubChatService) ListSessions(ctx context.Context, userId uuid.UUID) ([]string, error) {
	return []string{constant.DefaultSessionLabel}, nil
}

func (s *stubChatService) GetSessionHistory(ctx context.Context, userId uuid.UUID, label string) ([]*entity.ChatMessage, error) {
	return nil, nil
}

func (s *stubChatService) DeleteSession(ctx context.Context, userId uuid.UUID, label string) (int64, error) {
	return 0, nil
}

func newChatTestApp(svc service.IChatService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatController(svc).RegisterRoutes(app)
	return app
}

func signTestToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": subject,
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := app.Test(req)
	require.NoError(t, err)
	return res
}

func decodeBody(t *testing.T, res *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}

func TestSendMessage_MalformedBodyIs400(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newChatTestApp(&stubChatService{sendReply: "hi"})
	token := signTestToken(t, uuid.NewString())

	res := doJSON(t, app, http.MethodPost, "/chat/v1/message", token, `{"message": nope`)
	defer res.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	body := decodeBody(t, res)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(400), body["code"])
	assert.Equal(t, "Invalid request payload", body["message"])
}

func TestDeleteSession_MalformedBodyIs400(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newChatTestApp(&stubChatService{})
	token := signTestToken(t, uuid.NewString())

	res := doJSON(t, app, http.MethodPost, "/chat/v1/session/delete", token, `not json at all`)
	defer res.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	body := decodeBody(t, res)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(400), body["code"])
}

func TestSendMessage_BlankInputKeepsNormalShape(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newChatTestApp(&stubChatService{sendErr: service.ErrEmptyInput})
	token := signTestToken(t, uuid.NewString())

	res := doJSON(t, app, http.MethodPost, "/chat/v1/message", token, `{"message":"   "}`)
	defer res.Body.Close()

	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	body := decodeBody(t, res)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, constant.EmptyInputReply, data["reply"])
	_, hasLabel := data["session_name"]
	assert.False(t, hasLabel)
}

func TestSendMessage_StoreFailureIs500(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newChatTestApp(&stubChatService{sendErr: assert.AnError})
	token := signTestToken(t, uuid.NewString())

	res := doJSON(t, app, http.MethodPost, "/chat/v1/message", token, `{"message":"hello"}`)
	defer res.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
	body := decodeBody(t, res)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(500), body["code"])
}

func TestChatRoutes_NonUuidSubjectIs401(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newChatTestApp(&stubChatService{sendReply: "hi"})
	token := signTestToken(t, "not-a-uuid")

	res := doJSON(t, app, http.MethodPost, "/chat/v1/message", token, `{"message":"hello"}`)
	defer res.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	body := decodeBody(t, res)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid token subject", body["message"])
}

func TestChatRoutes_MissingTokenIs401(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newChatTestApp(&stubChatService{})

	res := doJSON(t, app, http.MethodGet, "/chat/v1/sessions", "", "")
	defer res.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}
