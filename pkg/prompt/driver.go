// Package prompt abstracts the interactive surface the form engine renders
// into. The survey-backed driver is the production implementation; tests use
// the scripted driver so render traversals run without a terminal.
package prompt

import (
	"context"

	"github.com/formsmith/onboard/pkg/state"
)

// InputConfig configures a single-line or multi-line text prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures a single or multi-select prompt. Descriptions, when
// present, are displayed instead of the raw option values (which are what get
// stored).
type SelectConfig struct {
	Message      string
	Options      []string
	Descriptions []string
	Default      string
	Help         string
	PageSize     int
}

// NumberConfig configures a non-negative integer prompt.
type NumberConfig struct {
	Message string
	Default int
	Min     int
	Max     int // 0 means unbounded
	Help    string
}

// DateConfig configures a date prompt. Bounds are inclusive and optional
// (empty means unbounded). Values use the YYYY/MM/DD layout.
type DateConfig struct {
	Message string
	Default string
	Min     string
	Max     string
	Help    string
}

// UploadConfig configures a file upload prompt.
type UploadConfig struct {
	Message  string
	Multiple bool
	Help     string
}

// Driver is the capability set a render traversal needs. Implementations
// return the entered value; persistence is the caller's job.
type Driver interface {
	Heading(ctx context.Context, text string) error
	Info(ctx context.Context, text string) error
	Input(ctx context.Context, cfg InputConfig) (string, error)
	TextArea(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (string, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]string, error)
	Number(ctx context.Context, cfg NumberConfig) (int, error)
	Date(ctx context.Context, cfg DateConfig) (string, error)
	Upload(ctx context.Context, cfg UploadConfig) ([]*state.File, error)
}
