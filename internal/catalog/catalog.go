// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gridkit/gridkit/internal/dataset"
	"github.com/gridkit/gridkit/internal/tui"
)

var (
	// ErrUnknownStory is returned when no story has the requested name.
	ErrUnknownStory = errors.New("unknown story")
	// ErrDuplicateStory is returned when a story name is registered twice.
	ErrDuplicateStory = errors.New("duplicate story")
	// ErrInvalidStory is returned when a story has no name, component or renderer.
	ErrInvalidStory = errors.New("invalid story")
)

type (
	// Story renders one component configuration.
	Story struct {
		// Name is unique within a catalog, e.g. "input/password".
		Name string
		// Component is the component the story shows.
		Component tui.ComponentType
		// Description is a one-line summary.
		Description string
		// Render returns the component's static view. cfg carries the
		// theme provider and the available width.
		Render func(cfg tui.Config) (string, error)
	}

	// Catalog holds stories in registration order.
	Catalog struct {
		stories []Story
		index   map[string]int
	}

	// UnknownStoryError names the missing story and, when one is close
	// enough, the story that was probably meant.
	UnknownStoryError struct {
		Name       string
		Suggestion string
	}
)

func (e *UnknownStoryError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown story %q, did you mean %q?", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown story %q", e.Name)
}

func (e *UnknownStoryError) Unwrap() error { return ErrUnknownStory }

// New returns a catalog holding the built-in stories.
func New() *Catalog {
	c := &Catalog{index: make(map[string]int)}
	for _, s := range builtinStories() {
		if err := c.Register(s); err != nil {
			panic(err)
		}
	}
	return c
}

// Register adds s to the catalog.
func (c *Catalog) Register(s Story) error {
	if s.Name == "" || s.Render == nil {
		return fmt.Errorf("%w: %q needs a name and a renderer", ErrInvalidStory, s.Name)
	}
	if ok, errs := s.Component.IsValid(); !ok {
		return fmt.Errorf("%w: %q: %w", ErrInvalidStory, s.Name, errors.Join(errs...))
	}
	if _, exists := c.index[s.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateStory, s.Name)
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[s.Name] = len(c.stories)
	c.stories = append(c.stories, s)
	return nil
}

// Stories returns all stories in registration order.
func (c *Catalog) Stories() []Story {
	return slices.Clone(c.stories)
}

// Names returns the story names in registration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.stories))
	for i, s := range c.stories {
		names[i] = s.Name
	}
	return names
}

// ByComponent returns the stories showing ct.
func (c *Catalog) ByComponent(ct tui.ComponentType) []Story {
	var out []Story
	for _, s := range c.stories {
		if s.Component == ct {
			out = append(out, s)
		}
	}
	return out
}

// Lookup returns the story called name. A miss yields an *UnknownStoryError.
func (c *Catalog) Lookup(name string) (Story, error) {
	if i, ok := c.index[name]; ok {
		return c.stories[i], nil
	}
	return Story{}, &UnknownStoryError{Name: name, Suggestion: dataset.Suggest(name, c.Names())}
}

// Render looks up the story called name and renders it with cfg.
func (c *Catalog) Render(name string, cfg tui.Config) (string, error) {
	s, err := c.Lookup(name)
	if err != nil {
		return "", err
	}
	out, err := s.Render(cfg)
	if err != nil {
		return "", fmt.Errorf("render story %q: %w", name, err)
	}
	return out, nil
}
