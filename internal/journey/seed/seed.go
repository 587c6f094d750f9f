// Package seed holds the curated interview-prep list used to populate an
// empty journey database.
package seed

import (
	_ "embed"
	"fmt"

	"github.com/colonyops/journey/internal/core/todo"
	"gopkg.in/yaml.v3"
)

//go:embed todos.yaml
var todosYAML []byte

// Entry is one seed todo as written in the YAML list.
type Entry struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Priority    string `yaml:"priority"`
	Progress    string `yaml:"progress"`
}

// Input converts the entry into a create input. Empty optional fields are
// left absent so create applies its defaults.
func (e Entry) Input() todo.Input {
	in := todo.Input{Title: todo.Some(e.Title)}
	if e.Description != "" {
		in.Description = todo.Some(e.Description)
	}
	if e.Category != "" {
		in.Category = todo.Some(e.Category)
	}
	if e.Priority != "" {
		in.Priority = todo.Some(e.Priority)
	}
	if e.Progress != "" {
		in.Progress = todo.Some(e.Progress)
	}
	return in
}

// Parse decodes a YAML list of entries.
func Parse(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return entries, nil
}

// Default returns the embedded seed list as create inputs.
func Default() ([]todo.Input, error) {
	entries, err := Parse(todosYAML)
	if err != nil {
		return nil, err
	}

	inputs := make([]todo.Input, 0, len(entries))
	for _, e := range entries {
		inputs = append(inputs, e.Input())
	}
	return inputs, nil
}
