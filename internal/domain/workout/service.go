// Package workout turns a fitness profile into a training prompt and relays it to the provider.
package workout

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/fitai/fitai-api/internal/domain/relay"
	"github.com/fitai/fitai-api/pkg/util"
)

// DefaultSplit names the training style used when the profile does not pick one.
const DefaultSplit = "full body"

//go:embed prompts/workout.tmpl
var promptText string

var promptTemplate = template.Must(template.New("workout").Funcs(util.PromptFuncs).Parse(promptText))

// Service exposes workout plan generation.
type Service interface {
	Ready() error
	Generate(ctx context.Context, profile Profile) (relay.Plan, error)
}

// SplitLabeler resolves split ids to display names.
type SplitLabeler interface {
	SplitLabel(id string) (string, bool)
}

type service struct {
	relay *relay.Relay[Profile]
}

// NewService wires up the workout relay. splits resolves split ids to the titles used in the prompt.
func NewService(cfg Config, splits SplitLabeler, client relay.ChatClient, counter relay.TokenCounter, logger *slog.Logger) Service {
	tmpl := relay.Template[Profile]{
		Name:         "workout plan",
		SystemPrompt: cfg.SystemPrompt,
		ArrayField:   "routines",
		BuildPrompt: func(p Profile) (string, error) {
			return BuildPrompt(p, splits)
		},
		Validate: relay.StrictJSON[WorkoutPlan](),
	}
	return &service{
		relay: relay.New(cfg.Settings, tmpl, client, counter, logger.With("component", "workout.service")),
	}
}

func (s *service) Ready() error {
	return s.relay.Ready()
}

func (s *service) Generate(ctx context.Context, profile Profile) (relay.Plan, error) {
	return s.relay.Generate(ctx, profile)
}

type promptData struct {
	Profile
	Split string
}

// BuildPrompt renders the training prompt. A split id that splits cannot resolve is an error.
func BuildPrompt(p Profile, splits SplitLabeler) (string, error) {
	split, err := splitName(p.WorkoutSplit, splits)
	if err != nil {
		return "", err
	}
	p.UserConcerns = strings.TrimSpace(p.UserConcerns)
	data := promptData{Profile: p, Split: split}

	var b strings.Builder
	if err := promptTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func splitName(id string, splits SplitLabeler) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return DefaultSplit, nil
	}
	if splits != nil {
		if label, ok := splits.SplitLabel(id); ok {
			return label, nil
		}
	}
	return "", fmt.Errorf("unknown workout split %q", id)
}
