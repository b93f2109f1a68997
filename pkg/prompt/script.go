package prompt

import (
	"context"
	"fmt"
	"sync"

	"github.com/formsmith/onboard/pkg/state"
)

// Script is a Driver fed from a fixed answer queue. Each prompt consumes the
// next queued answer, which must match the prompt's result type. Headings and
// info lines consume nothing and are recorded in Transcript alongside every
// prompt message, so tests can assert on what the operator was asked.
type Script struct {
	mu         sync.Mutex
	answers    []interface{}
	Transcript []string
}

// NewScript builds a scripted driver from the queued answers.
func NewScript(answers ...interface{}) *Script {
	return &Script{answers: answers}
}

func (s *Script) next(message string) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Transcript = append(s.Transcript, message)
	if len(s.answers) == 0 {
		return nil, fmt.Errorf("prompt: script exhausted at %q", message)
	}
	ans := s.answers[0]
	s.answers = s.answers[1:]
	return ans, nil
}

func (s *Script) Heading(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Transcript = append(s.Transcript, "== "+text+" ==")
	return nil
}

func (s *Script) Info(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Transcript = append(s.Transcript, text)
	return nil
}

func (s *Script) Input(ctx context.Context, cfg InputConfig) (string, error) {
	ans, err := s.next(cfg.Message)
	if err != nil {
		return "", err
	}
	out, ok := ans.(string)
	if !ok {
		return "", fmt.Errorf("prompt: script answer for %q is %T, want string", cfg.Message, ans)
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(out); err != nil {
			return "", fmt.Errorf("prompt: scripted answer %q rejected: %w", out, err)
		}
	}
	return out, nil
}

func (s *Script) TextArea(ctx context.Context, cfg InputConfig) (string, error) {
	return s.Input(ctx, cfg)
}

func (s *Script) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	ans, err := s.next(cfg.Message)
	if err != nil {
		return false, err
	}
	out, ok := ans.(bool)
	if !ok {
		return false, fmt.Errorf("prompt: script answer for %q is %T, want bool", cfg.Message, ans)
	}
	return out, nil
}

func (s *Script) Select(ctx context.Context, cfg SelectConfig) (string, error) {
	ans, err := s.next(cfg.Message)
	if err != nil {
		return "", err
	}
	out, ok := ans.(string)
	if !ok {
		return "", fmt.Errorf("prompt: script answer for %q is %T, want string", cfg.Message, ans)
	}
	if len(cfg.Options) > 0 && indexOf(cfg.Options, out) < 0 {
		return "", fmt.Errorf("prompt: scripted answer %q not in options for %q", out, cfg.Message)
	}
	return out, nil
}

func (s *Script) MultiSelect(ctx context.Context, cfg SelectConfig) ([]string, error) {
	ans, err := s.next(cfg.Message)
	if err != nil {
		return nil, err
	}
	out, ok := ans.([]string)
	if !ok {
		return nil, fmt.Errorf("prompt: script answer for %q is %T, want []string", cfg.Message, ans)
	}
	for _, value := range out {
		if indexOf(cfg.Options, value) < 0 {
			return nil, fmt.Errorf("prompt: scripted answer %q not in options for %q", value, cfg.Message)
		}
	}
	return out, nil
}

func (s *Script) Number(ctx context.Context, cfg NumberConfig) (int, error) {
	ans, err := s.next(cfg.Message)
	if err != nil {
		return 0, err
	}
	out, ok := ans.(int)
	if !ok {
		return 0, fmt.Errorf("prompt: script answer for %q is %T, want int", cfg.Message, ans)
	}
	return out, nil
}

func (s *Script) Date(ctx context.Context, cfg DateConfig) (string, error) {
	ans, err := s.next(cfg.Message)
	if err != nil {
		return "", err
	}
	out, ok := ans.(string)
	if !ok {
		return "", fmt.Errorf("prompt: script answer for %q is %T, want string", cfg.Message, ans)
	}
	if v := dateValidator(cfg); out != "" {
		if err := v(out); err != nil {
			return "", fmt.Errorf("prompt: scripted date %q rejected: %w", out, err)
		}
	}
	return out, nil
}

func (s *Script) Upload(ctx context.Context, cfg UploadConfig) ([]*state.File, error) {
	ans, err := s.next(cfg.Message)
	if err != nil {
		return nil, err
	}
	switch out := ans.(type) {
	case nil:
		return nil, nil
	case *state.File:
		return []*state.File{out}, nil
	case []*state.File:
		return out, nil
	default:
		return nil, fmt.Errorf("prompt: script answer for %q is %T, want files", cfg.Message, ans)
	}
}
