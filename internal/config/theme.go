package config

import (
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-fieldlist/pkg/widget"
)

// Theme is a named set of widget class tokens. Token keys are the short
// element names (container, row, control, input, select, add, remove, errors).
type Theme struct {
	Variant string            `yaml:"variant,omitempty" koanf:"variant"`
	Tokens  map[string]string `yaml:"tokens,omitempty" koanf:"tokens"`
}

var tokenKeys = map[string]string{
	"container": widget.TokenContainer,
	"row":       widget.TokenRow,
	"control":   widget.TokenControl,
	"input":     widget.TokenInput,
	"select":    widget.TokenSelect,
	"add":       widget.TokenAdd,
	"remove":    widget.TokenRemove,
	"errors":    widget.TokenErrors,
}

// ThemeSelector serves the configured themes to the widget renderer.
func (c *Config) ThemeSelector() theme.ThemeSelector {
	return themeSelector{themes: c.Themes}
}

type themeSelector struct {
	themes map[string]Theme
}

func (s themeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	t, ok := s.themes[name]
	if !ok {
		return nil, fmt.Errorf("config: unknown theme %q", name)
	}
	if variant == "" {
		variant = t.Variant
	}

	tokens := make(map[string]string, len(t.Tokens))
	for key, value := range t.Tokens {
		if full, ok := tokenKeys[key]; ok {
			tokens[full] = value
		}
	}
	return &theme.Selection{
		Theme:   name,
		Variant: variant,
		Manifest: &theme.Manifest{
			Name:   name,
			Tokens: tokens,
		},
	}, nil
}
