package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"techjays-chat-be/internal/constant"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Typed failure modes of the completion boundary. Callers that want the
// no-throw contract use GenerateOrApology instead of matching these.
var (
	ErrNotConfigured  = errors.New("gemini: api key not configured")
	ErrSafetyBlocked  = errors.New("gemini: response blocked by safety filter")
	ErrEmptyCandidate = errors.New("gemini: no usable candidate in response")

	// ErrUpstream wraps transport failures and non-200 answers from the
	// API. Anything else (bad payload, unreadable body) is a local
	// processing failure and degrades to a different apology.
	ErrUpstream = errors.New("gemini: upstream api error")
)

type generateContentPart struct {
	Text string `json:"text"`
}

type generateContentBlock struct {
	Parts []*generateContentPart `json:"parts"`
	Role  string                 `json:"role,omitempty"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateContentRequest struct {
	Contents         []*generateContentBlock `json:"contents"`
	GenerationConfig *generationConfig       `json:"generationConfig,omitempty"`
}

type generateContentCandidate struct {
	Content      *generateContentBlock `json:"content"`
	FinishReason string                `json:"finishReason"`
}

type generateContentResponse struct {
	Candidates []*generateContentCandidate `json:"candidates"`
}

// Option allows for optional sampling parameters per call.
type Option func(*Options)

type Options struct {
	Temperature     float64
	MaxOutputTokens int
	Model           string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxOutputTokens(n int) Option {
	return func(o *Options) {
		o.MaxOutputTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// CompletionClient is the contract consumed by the chat flow and the
// session-naming policy.
type CompletionClient interface {
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
	GenerateOrApology(ctx context.Context, prompt string, options ...Option) string
}

type Client struct {
	apiKey          string
	model           string
	baseURL         string
	temperature     float64
	maxOutputTokens int
	httpClient      *http.Client
}

var _ CompletionClient = &Client{}

func NewClient(apiKey, model string, temperature float64, maxOutputTokens int) *Client {
	return &Client{
		apiKey:          apiKey,
		model:           model,
		baseURL:         defaultBaseURL,
		temperature:     temperature,
		maxOutputTokens: maxOutputTokens,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// WithBaseURL points the client at a different endpoint (tests).
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Generate sends a single prompt and returns the generated text, or a
// typed error: ErrNotConfigured, ErrSafetyBlocked, ErrEmptyCandidate, or
// a transport/status error.
func (c *Client) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	opts := &Options{
		Temperature:     c.temperature,
		MaxOutputTokens: c.maxOutputTokens,
		Model:           c.model,
	}
	for _, o := range options {
		o(opts)
	}

	payload := generateContentRequest{
		Contents: []*generateContentBlock{
			{
				Parts: []*generateContentPart{{Text: prompt}},
				Role:  "user",
			},
		},
		GenerationConfig: &generationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxOutputTokens,
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, opts.Model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"%w: got status %d. with response body %s",
			ErrUpstream,
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes generateContentResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", err
	}

	if len(geminiRes.Candidates) == 0 {
		return "", ErrEmptyCandidate
	}

	candidate := geminiRes.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		// Commonly a content-safety rejection; the finish reason tells
		// which apology the degraded path should pick.
		if strings.EqualFold(candidate.FinishReason, "SAFETY") {
			return "", ErrSafetyBlocked
		}
		return "", ErrEmptyCandidate
	}

	return strings.TrimSpace(candidate.Content.Parts[0].Text), nil
}

// GenerateOrApology is the no-throw variant used by the chat flow: every
// failure of the model dependency degrades into fixed user-visible text
// that is persisted as ordinary bot content.
func (c *Client) GenerateOrApology(ctx context.Context, prompt string, options ...Option) string {
	text, err := c.Generate(ctx, prompt, options...)
	if err == nil {
		return text
	}

	switch {
	case errors.Is(err, ErrNotConfigured):
		return constant.ReplyNotConfigured
	case errors.Is(err, ErrSafetyBlocked):
		return constant.ReplySafetyBlocked
	case errors.Is(err, ErrEmptyCandidate):
		return constant.ReplyNoCandidate
	case errors.Is(err, ErrUpstream):
		return constant.ReplyConnectionErr
	default:
		return constant.ReplyProcessing
	}
}
