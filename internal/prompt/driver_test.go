package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/core"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// answering stands in for survey.AskOne and writes ans the way survey does.
func answering(t *testing.T, ans any, seen *survey.Prompt) func(survey.Prompt, any, ...survey.AskOpt) error {
	t.Helper()
	return func(p survey.Prompt, response any, _ ...survey.AskOpt) error {
		if seen != nil {
			*seen = p
		}
		return core.WriteAnswer(response, "", ans)
	}
}

func TestSurveySelectKeepsIndexOfRepeatedLabels(t *testing.T) {
	var seen survey.Prompt
	d := NewSurveyDriver()
	d.ask = answering(t, core.OptionAnswer{Value: "(no id)", Index: 1}, &seen)

	idx, err := d.Select(context.Background(), SelectConfig{
		Message:      "Field list",
		Options:      []string{"(no id)", "(no id)", "tags"},
		DefaultIndex: 2,
	})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if idx != 1 {
		t.Fatalf("index = %d, want 1", idx)
	}

	sel, ok := seen.(*survey.Select)
	if !ok {
		t.Fatalf("expected *survey.Select, got %T", seen)
	}
	if sel.Default != 2 {
		t.Fatalf("default = %v, want index 2", sel.Default)
	}
}

func TestSurveyInputAndConfirm(t *testing.T) {
	d := NewSurveyDriver()
	d.ask = answering(t, "rust", nil)
	got, err := d.Input(context.Background(), InputConfig{Message: "tags[0]"})
	if err != nil || got != "rust" {
		t.Fatalf("input = %q, %v", got, err)
	}

	d.ask = answering(t, true, nil)
	ok, err := d.Confirm(context.Background(), ConfirmConfig{Message: "Overwrite?"})
	if err != nil || !ok {
		t.Fatalf("confirm = %v, %v", ok, err)
	}
}

func TestSurveyInterruptMapsToAborted(t *testing.T) {
	d := NewSurveyDriver()
	d.ask = func(survey.Prompt, any, ...survey.AskOpt) error { return terminal.InterruptErr }

	if _, err := d.Select(context.Background(), SelectConfig{Message: "x", Options: []string{"a"}}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if _, err := d.Select(context.Background(), SelectConfig{Message: "empty"}); err == nil {
		t.Fatalf("expected error for select without options")
	}
}
