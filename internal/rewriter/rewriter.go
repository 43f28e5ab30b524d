// Package rewriter serves the refine-message function locally, rewriting
// drafts through an OpenAI-compatible chat model.
package rewriter

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
	openai "github.com/sashabaranov/go-openai"
)

// SystemPrompt instructs the model how to rewrite a visitor's draft.
const SystemPrompt = `You rewrite short messages that visitors send to a software engineer through their portfolio site.
Turn the draft into a clear, friendly and professional message.
Keep the sender's intent and every concrete detail. Do not invent facts, names or dates.
Reply with the rewritten message only, without a subject line or commentary.`

// ErrEmptyCompletion is returned when the model answers with no text.
var ErrEmptyCompletion = errors.New("model returned no content")

// Rewriter turns a draft into a polished message.
type Rewriter interface {
	Rewrite(ctx context.Context, message string) (string, error)
}

// OpenAIRewriter calls the Chat Completions API.
type OpenAIRewriter struct {
	client *openai.Client
	model  string
}

// NewOpenAIRewriter creates a rewriter. baseURL may point at any
// OpenAI-compatible gateway; empty uses the default API.
func NewOpenAIRewriter(apiKey, baseURL, model string) *OpenAIRewriter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIRewriter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Rewrite implements Rewriter.
func (r *OpenAIRewriter) Rewrite(ctx context.Context, message string) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens:   512,
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// ResilientRewriter retries a failed rewrite once and bounds the whole call.
type ResilientRewriter struct {
	inner   Rewriter
	timeout time.Duration
}

// NewResilientRewriter wraps inner with a retry and a 60s timeout.
func NewResilientRewriter(inner Rewriter) *ResilientRewriter {
	return &ResilientRewriter{inner: inner, timeout: 60 * time.Second}
}

// Rewrite implements Rewriter.
func (r *ResilientRewriter) Rewrite(ctx context.Context, message string) (string, error) {
	rt := retry.New[string](retry.Config{
		MaxAttempts:   2,
		InitialDelay:  500 * time.Millisecond,
		BackoffPolicy: retry.BackoffExponential,
	})
	t := timeout.New[string](timeout.Config{
		DefaultTimeout: r.timeout,
	})

	return t.Execute(ctx, r.timeout, func(ctx context.Context) (string, error) {
		return rt.Do(ctx, func(ctx context.Context) (string, error) {
			return r.inner.Rewrite(ctx, message)
		})
	})
}
