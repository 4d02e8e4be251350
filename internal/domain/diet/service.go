// Package diet turns a diet profile into a nutrition prompt and relays it to the provider.
package diet

import (
	"context"
	_ "embed"
	"log/slog"
	"strings"
	"text/template"

	"github.com/fitai/fitai-api/internal/domain/relay"
	"github.com/fitai/fitai-api/pkg/util"
)

//go:embed prompts/diet.tmpl
var promptText string

var promptTemplate = template.Must(template.New("diet").Funcs(util.PromptFuncs).Parse(promptText))

// Service exposes diet plan generation.
type Service interface {
	Ready() error
	Generate(ctx context.Context, profile Profile) (relay.Plan, error)
}

type service struct {
	relay *relay.Relay[Profile]
}

// NewService wires up the diet relay.
func NewService(cfg Config, client relay.ChatClient, counter relay.TokenCounter, logger *slog.Logger) Service {
	tmpl := relay.Template[Profile]{
		Name:         "diet plan",
		SystemPrompt: cfg.SystemPrompt,
		ArrayField:   "mealPlan",
		BuildPrompt:  BuildPrompt,
		Validate:     relay.StrictJSON[DietPlan](),
	}
	return &service{
		relay: relay.New(cfg.Settings, tmpl, client, counter, logger.With("component", "diet.service")),
	}
}

func (s *service) Ready() error {
	return s.relay.Ready()
}

func (s *service) Generate(ctx context.Context, profile Profile) (relay.Plan, error) {
	return s.relay.Generate(ctx, profile)
}

// BuildPrompt renders the nutrition prompt. The Country and State lines repeat weight and height.
func BuildPrompt(p Profile) (string, error) {
	p.Allergies = strings.TrimSpace(p.Allergies)
	p.MedicalConditions = strings.TrimSpace(p.MedicalConditions)
	p.UserPref = strings.TrimSpace(p.UserPref)

	var b strings.Builder
	if err := promptTemplate.Execute(&b, p); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
