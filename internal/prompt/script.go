package prompt

import (
	"context"
	"errors"
	"fmt"
)

// ErrScriptExhausted is returned by Script when a prompt has no answer left.
var ErrScriptExhausted = errors.New("prompt: script exhausted")

// Answer is one scripted reply. Select answers match an option by label.
type Answer struct {
	Select  string
	Input   string
	Confirm bool
	Err     error
}

// Script replays canned answers in order and records every message shown.
// Tests use it in place of a terminal.
type Script struct {
	Answers  []Answer
	Messages []string
	Prompts  []string
}

var _ Driver = (*Script)(nil)

func (s *Script) next(message string) (Answer, error) {
	s.Prompts = append(s.Prompts, message)
	if len(s.Answers) == 0 {
		return Answer{}, fmt.Errorf("%w at %q", ErrScriptExhausted, message)
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, answer.Err
}

func (s *Script) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	answer, err := s.next(cfg.Message)
	if err != nil {
		return "", err
	}
	value := answer.Input
	if value == "" {
		value = cfg.Default
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(value); err != nil {
			return "", err
		}
	}
	return value, nil
}

func (s *Script) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	answer, err := s.next(cfg.Message)
	if err != nil {
		return false, err
	}
	return answer.Confirm, nil
}

func (s *Script) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	answer, err := s.next(cfg.Message)
	if err != nil {
		return 0, err
	}
	idx := IndexOf(cfg.Options, answer.Select)
	if idx < 0 {
		return 0, fmt.Errorf("prompt: %q is not one of %q", answer.Select, cfg.Options)
	}
	return idx, nil
}

func (s *Script) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Messages = append(s.Messages, msg)
	return nil
}
