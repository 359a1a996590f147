package naming

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"techjays-chat-be/internal/constant"
	"techjays-chat-be/pkg/gemini"
)

const (
	// Titles are sidebar entries, so the fallback clamps hard.
	maxFallbackLen = 50
	minTitleLen    = 3

	titleTemperature = 0.3
	titleMaxTokens   = 20
)

// Namer derives a human-readable session title from the first user
// message of a session. It never returns an error: when the model cannot
// produce a usable title the message itself becomes the title.
type Namer struct {
	client gemini.CompletionClient
}

func NewNamer(client gemini.CompletionClient) *Namer {
	return &Namer{client: client}
}

// Title asks the model for a 3-6 word title and falls back to
// FallbackTitle on any failure or unusable reply.
func (n *Namer) Title(ctx context.Context, firstMessage string) string {
	prompt := fmt.Sprintf(constant.SessionTitlePromptV1, firstMessage)

	title, err := n.client.Generate(
		ctx,
		prompt,
		gemini.WithTemperature(titleTemperature),
		gemini.WithMaxOutputTokens(titleMaxTokens),
	)
	if err != nil {
		return FallbackTitle(firstMessage)
	}

	title = sanitizeTitle(title)
	if utf8.RuneCountInString(title) < minTitleLen {
		return FallbackTitle(firstMessage)
	}

	return title
}

// FallbackTitle derives a title directly from the message: trimmed,
// first letter capitalized, clamped to 50 runes with an ellipsis.
func FallbackTitle(message string) string {
	title := strings.TrimSpace(message)
	title = capitalizeFirst(title)

	runes := []rune(title)
	if len(runes) > maxFallbackLen {
		return string(runes[:maxFallbackLen-3]) + "..."
	}
	return title
}

// sanitizeTitle strips wrapping quotes and stray newlines that models
// tend to add despite the prompt asking them not to.
func sanitizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if idx := strings.IndexAny(title, "\r\n"); idx >= 0 {
		title = strings.TrimSpace(title[:idx])
	}
	title = strings.Trim(title, `"'`)
	return strings.TrimSpace(title)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
