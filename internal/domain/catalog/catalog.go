// Package catalog serves the static reference data the plan forms are built from: the training
// split guide and the accepted values of every enumerated profile field.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	apperrors "github.com/fitai/fitai-api/pkg/errors"
)

//go:embed data/catalog.yaml
var catalogYAML []byte

// Split describes one training split option.
type Split struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Subtitle    string   `yaml:"subtitle" json:"subtitle"`
	Description string   `yaml:"description" json:"description"`
	Benefits    []string `yaml:"benefits" json:"benefits"`
	Example     string   `yaml:"example" json:"example"`
}

// Option is one selectable value of an enumerated profile field.
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Options groups the enumerated profile fields.
type Options struct {
	FitnessLevels      []Option `yaml:"fitnessLevels" json:"fitnessLevels"`
	Genders            []Option `yaml:"genders" json:"genders"`
	ActivityLevels     []Option `yaml:"activityLevels" json:"activityLevels"`
	DietaryPreferences []Option `yaml:"dietaryPreferences" json:"dietaryPreferences"`
	Goals              []Option `yaml:"goals" json:"goals"`
	WorkoutSplits      []Option `yaml:"-" json:"workoutSplits"`
}

type document struct {
	Splits  []Split `yaml:"splits"`
	Options Options `yaml:"options"`
}

// Catalog is read-only after Load and safe for concurrent use.
type Catalog struct {
	splits  []Split
	byID    map[string]int
	options Options
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return parse(catalogYAML)
}

func parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := &Catalog{
		splits:  doc.Splits,
		byID:    make(map[string]int, len(doc.Splits)),
		options: doc.Options,
	}
	for i, split := range doc.Splits {
		if split.ID == "" {
			return nil, fmt.Errorf("parse catalog: split %d has no id", i)
		}
		if _, dup := c.byID[split.ID]; dup {
			return nil, fmt.Errorf("parse catalog: duplicate split %q", split.ID)
		}
		c.byID[split.ID] = i
		c.options.WorkoutSplits = append(c.options.WorkoutSplits, Option{Value: split.ID, Label: split.Title})
	}
	return c, nil
}

// Splits returns every split in display order.
func (c *Catalog) Splits() []Split {
	out := make([]Split, len(c.splits))
	copy(out, c.splits)
	return out
}

// Split looks a split up by id.
func (c *Catalog) Split(id string) (Split, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Split{}, apperrors.Wrap(apperrors.CodeNotFound, fmt.Sprintf("unknown workout split %q", id), nil)
	}
	return c.splits[idx], nil
}

// SplitLabel returns the display title for a split id.
func (c *Catalog) SplitLabel(id string) (string, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return "", false
	}
	return c.splits[idx].Title, true
}

// Options returns the enumerated profile values.
func (c *Catalog) Options() Options {
	return c.options
}
