package naming

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"techjays-chat-be/pkg/gemini"
)

type stubCompletion struct {
	reply string
	err   error
}

func (s *stubCompletion) Generate(ctx context.Context, prompt string, options ...gemini.Option) (string, error) {
	return s.reply, s.err
}

func (s *stubCompletion) GenerateOrApology(ctx context.Context, prompt string, options ...gemini.Option) string {
	if s.err != nil {
		return "apology"
	}
	return s.reply
}

func TestFallbackTitle(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{
			name:     "short message capitalized",
			message:  "hello",
			expected: "Hello",
		},
		{
			name:     "surrounding whitespace trimmed",
			message:  "  plan my trip to Japan  ",
			expected: "Plan my trip to Japan",
		},
		{
			name:     "already capitalized unchanged",
			message:  "What is Go?",
			expected: "What is Go?",
		},
		{
			name:     "exactly fifty runes kept whole",
			message:  strings.Repeat("a", 50),
			expected: "A" + strings.Repeat("a", 49),
		},
		{
			name:     "long message clamped with ellipsis",
			message:  strings.Repeat("b", 80),
			expected: "B" + strings.Repeat("b", 46) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackTitle(tt.message)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, len([]rune(got)), 50)
		})
	}
}

func TestNamer_Title(t *testing.T) {
	tests := []struct {
		name     string
		client   *stubCompletion
		message  string
		expected string
	}{
		{
			name:     "model title used as-is",
			client:   &stubCompletion{reply: "Japan Trip Planning"},
			message:  "help me plan a trip to japan",
			expected: "Japan Trip Planning",
		},
		{
			name:     "wrapping quotes stripped",
			client:   &stubCompletion{reply: `"Resume Review Help"`},
			message:  "can you review my resume",
			expected: "Resume Review Help",
		},
		{
			name:     "only first line kept",
			client:   &stubCompletion{reply: "Debugging Session\nHere is a title for you"},
			message:  "why does my code crash",
			expected: "Debugging Session",
		},
		{
			name:     "model failure falls back to message",
			client:   &stubCompletion{err: gemini.ErrNotConfigured},
			message:  "hello there",
			expected: "Hello there",
		},
		{
			name:     "too-short reply falls back",
			client:   &stubCompletion{reply: "ok"},
			message:  "what is the weather today",
			expected: "What is the weather today",
		},
		{
			name:     "blank reply falls back",
			client:   &stubCompletion{reply: "   "},
			message:  "tell me a story",
			expected: "Tell me a story",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			namer := NewNamer(tt.client)
			assert.Equal(t, tt.expected, namer.Title(context.Background(), tt.message))
		})
	}
}
