// FILE: internal/service/oauth_service_test.go
package service

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuedState(t *testing.T, loginURL string) string {
	t.Helper()
	parsed, err := url.Parse(loginURL)
	require.NoError(t, err)
	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}

func TestGetLoginURL_UnsupportedProvider(t *testing.T) {
	svc := NewOAuthService(nil)

	_, err := svc.GetLoginURL("github")
	assert.EqualError(t, err, "unsupported provider")
}

func TestGetLoginURL_IssuesFreshState(t *testing.T) {
	svc := NewOAuthService(nil)

	first, err := svc.GetLoginURL("google")
	require.NoError(t, err)
	second, err := svc.GetLoginURL("google")
	require.NoError(t, err)

	// Every login attempt gets its own state.
	assert.NotEqual(t, issuedState(t, first), issuedState(t, second))
}

func TestGetLoginURL_StateIsRemembered(t *testing.T) {
	svc := NewOAuthService(nil).(*oauthService)

	loginURL, err := svc.GetLoginURL("google")
	require.NoError(t, err)

	_, ok := svc.states.Get(issuedState(t, loginURL))
	assert.True(t, ok)
}

func TestHandleCallback_RejectsUnknownState(t *testing.T) {
	svc := NewOAuthService(nil)

	_, err := svc.HandleCallback(context.Background(), "google", "some-code", "forged-state")
	assert.ErrorIs(t, err, ErrInvalidOAuthState)
}

func TestHandleCallback_RejectsEmptyState(t *testing.T) {
	svc := NewOAuthService(nil)

	_, err := svc.HandleCallback(context.Background(), "google", "some-code", "")
	assert.ErrorIs(t, err, ErrInvalidOAuthState)
}
