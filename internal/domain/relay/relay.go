// Package relay forwards a prompt built from a user profile to the chat completion provider and
// hands back the provider's JSON plan once it passes a structural check.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fitai/fitai-api/internal/infra/llm/chatgpt"
	apperrors "github.com/fitai/fitai-api/pkg/errors"
	"github.com/fitai/fitai-api/pkg/metrics"
	"github.com/fitai/fitai-api/pkg/util"
)

// MissingKeyMessage is reported for every plan request while no provider credential is configured.
const MissingKeyMessage = "API key is not configured. Please set the LLM_API_KEY (or OPENAI_API_KEY) environment variable."

// ChatClient is the provider contract used by every relay.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// TokenCounter estimates prompt size for logging.
type TokenCounter interface {
	Count(text string) int
}

// Settings carries the per-relay provider knobs, credential included.
type Settings struct {
	APIKey       string
	Model        string
	Temperature  float32
	MaxTokens    int
	StrictSchema bool
}

// Template describes one kind of plan: how to prompt for it and what a usable answer looks like.
type Template[P any] struct {
	// Name is used in error messages and logs, e.g. "diet plan".
	Name         string
	SystemPrompt string
	// ArrayField is the top-level member that must be a JSON array.
	ArrayField  string
	BuildPrompt func(P) (string, error)
	// Validate runs only when Settings.StrictSchema is set.
	Validate func(raw []byte) error
}

// Plan is the provider output as returned to callers.
type Plan struct {
	Body       json.RawMessage
	Usage      metrics.TokenUsage
	DurationMs int64
}

// Relay runs the request lifecycle for one template. It holds no mutable state.
type Relay[P any] struct {
	settings Settings
	tmpl     Template[P]
	client   ChatClient
	counter  TokenCounter
	logger   *slog.Logger
}

// New builds a relay. counter may be nil. The caller is expected to tag logger with its component.
func New[P any](settings Settings, tmpl Template[P], client ChatClient, counter TokenCounter, logger *slog.Logger) *Relay[P] {
	return &Relay[P]{
		settings: settings,
		tmpl:     tmpl,
		client:   client,
		counter:  counter,
		logger:   logger.With("plan", tmpl.Name),
	}
}

// Ready reports config_error when no credential is configured.
func (r *Relay[P]) Ready() error {
	if strings.TrimSpace(r.settings.APIKey) == "" {
		return apperrors.Wrap(apperrors.CodeConfig, MissingKeyMessage, nil)
	}
	return nil
}

// Generate builds the prompt, performs exactly one provider call and validates the answer.
func (r *Relay[P]) Generate(ctx context.Context, profile P) (Plan, error) {
	if err := r.Ready(); err != nil {
		return Plan{}, err
	}

	prompt, err := r.tmpl.BuildPrompt(profile)
	if err != nil {
		return Plan{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("cannot build %s prompt", r.tmpl.Name), err)
	}

	promptTokens := 0
	if r.counter != nil {
		promptTokens = r.counter.Count(r.tmpl.SystemPrompt) + r.counter.Count(prompt)
	}

	start := util.NowUTC()
	resp, err := r.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model: r.settings.Model,
		Messages: []chatgpt.Message{
			{Role: "system", Content: r.tmpl.SystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:    r.settings.Temperature,
		MaxTokens:      r.settings.MaxTokens,
		ResponseFormat: &chatgpt.ResponseFormat{Type: chatgpt.ResponseFormatJSONObject},
	})
	elapsed := util.ElapsedMs(start)
	if err != nil {
		r.logger.Error("provider call failed", "error", err, "duration_ms", elapsed)
		return Plan{}, apperrors.Wrap(apperrors.CodeUpstream, fmt.Sprintf("failed to generate %s", r.tmpl.Name), err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return Plan{}, apperrors.Wrap(apperrors.CodeEmptyResponse, "no response from provider", nil)
	}
	content := resp.Choices[0].Message.Content
	r.logger.Debug("provider response received", "content", content)

	body, err := r.decode(content)
	if err != nil {
		r.logger.Error("provider response rejected", "error", err)
		return Plan{}, err
	}

	usage := toUsage(resp.Usage)
	if usage.IsZero() {
		r.logger.Debug("provider reported no token usage")
	}
	r.logger.Info("plan generated",
		"model", r.settings.Model,
		"prompt_tokens_estimate", promptTokens,
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens,
		"finish_reason", resp.Choices[0].FinishReason,
		"duration_ms", elapsed,
	)

	return Plan{Body: body, Usage: usage, DurationMs: elapsed}, nil
}

func (r *Relay[P]) decode(content string) (json.RawMessage, error) {
	raw := []byte(stripCodeFence(content))
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeParse, fmt.Sprintf("failed to parse %s response", r.tmpl.Name), err)
	}
	if err := requireArrayField(raw, r.tmpl.ArrayField); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeShape, fmt.Sprintf("invalid %s structure", r.tmpl.Name), err)
	}
	if r.settings.StrictSchema && r.tmpl.Validate != nil {
		if err := r.tmpl.Validate(raw); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeShape, fmt.Sprintf("invalid %s structure", r.tmpl.Name), err)
		}
	}
	return json.RawMessage(raw), nil
}

// requireArrayField checks that raw is an object whose field member is an array. Empty arrays pass.
func requireArrayField(raw []byte, field string) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return errors.New("top-level value must be a JSON object")
	}
	value, ok := top[field]
	if !ok {
		return fmt.Errorf("missing %q array", field)
	}
	value = bytes.TrimSpace(value)
	if len(value) == 0 || value[0] != '[' {
		return fmt.Errorf("%q must be an array", field)
	}
	return nil
}

// stripCodeFence removes surrounding whitespace and a markdown ```json fence if the model added one.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimPrefix(trimmed, "json")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func toUsage(u *chatgpt.Usage) metrics.TokenUsage {
	if u == nil {
		return metrics.TokenUsage{}
	}
	return metrics.TokenUsage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}
