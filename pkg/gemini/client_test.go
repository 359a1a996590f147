package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techjays-chat-be/internal/constant"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient("test-key", "gemini-2.5-flash", 0.7, 10000).WithBaseURL(server.URL)
	return client, server
}

func TestGenerate_Success(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Hello there!  "}]},"finishReason":"STOP"}]}`))
	})
	defer server.Close()

	text, err := client.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello there!", text)
}

func TestGenerate_NotConfigured(t *testing.T) {
	client := NewClient("", "gemini-2.5-flash", 0.7, 10000)

	_, err := client.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerate_SafetyBlocked(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"finishReason":"SAFETY"}]}`))
	})
	defer server.Close()

	_, err := client.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrSafetyBlocked)
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	})
	defer server.Close()

	_, err := client.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrEmptyCandidate)
}

func TestGenerate_StatusError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})
	defer server.Close()

	_, err := client.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstream))
	assert.Contains(t, err.Error(), "429")
}

func TestGenerate_ModelOverride(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/custom-model:generateContent", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]},"finishReason":"STOP"}]}`))
	})
	defer server.Close()

	text, err := client.Generate(context.Background(), "hi", WithModel("custom-model"))
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}

func TestGenerateOrApology(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		client := NewClient("", "gemini-2.5-flash", 0.7, 10000)
		reply := client.GenerateOrApology(context.Background(), "hi")
		assert.Equal(t, constant.ReplyNotConfigured, reply)
	})

	t.Run("safety block", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[{"finishReason":"SAFETY"}]}`))
		})
		defer server.Close()
		reply := client.GenerateOrApology(context.Background(), "hi")
		assert.Equal(t, constant.ReplySafetyBlocked, reply)
	})

	t.Run("no candidate", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		})
		defer server.Close()
		reply := client.GenerateOrApology(context.Background(), "hi")
		assert.Equal(t, constant.ReplyNoCandidate, reply)
	})

	t.Run("transport failure", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
		server.Close()
		reply := client.GenerateOrApology(context.Background(), "hi")
		assert.Equal(t, constant.ReplyConnectionErr, reply)
	})

	t.Run("api status error", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		})
		defer server.Close()
		reply := client.GenerateOrApology(context.Background(), "hi")
		assert.Equal(t, constant.ReplyConnectionErr, reply)
	})

	t.Run("unparseable response body", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>not json</html>`))
		})
		defer server.Close()
		reply := client.GenerateOrApology(context.Background(), "hi")
		assert.Equal(t, constant.ReplyProcessing, reply)
	})

	t.Run("success passes through", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"fine"}]},"finishReason":"STOP"}]}`))
		})
		defer server.Close()
		reply := client.GenerateOrApology(context.Background(), "hi")
		assert.Equal(t, "fine", reply)
	})
}
