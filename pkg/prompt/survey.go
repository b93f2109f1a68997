package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/formsmith/onboard/pkg/state"
)

// DateLayout is the wire and display layout for every date prompt.
const DateLayout = "2006/01/02"

type surveyDriver struct {
	out     io.Writer
	askOpts []survey.AskOpt
}

// Option adjusts the terminal-backed driver.
type Option func(*surveyDriver)

// WithStdio redirects the prompts, for tests or embedding in another TTY.
func WithStdio(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) Option {
	return func(d *surveyDriver) {
		d.out = out
		d.askOpts = append(d.askOpts, survey.WithStdio(in, out, errOut))
	}
}

// NewSurveyDriver returns the terminal-backed driver.
func NewSurveyDriver(opts ...Option) Driver {
	d := &surveyDriver{out: os.Stdout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *surveyDriver) ask(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	return survey.AskOne(p, response, append(opts, d.askOpts...)...)
}

func (d *surveyDriver) Heading(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(d.out, "\n== %s ==\n", text)
	return err
}

func (d *surveyDriver) Info(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, text)
	return err
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	p := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	var opts []survey.AskOpt
	if cfg.Validator != nil {
		opts = append(opts, survey.WithValidator(stringValidator(cfg.Validator)))
	}
	if err := d.ask(p, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	p := &survey.Multiline{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := d.ask(p, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	p := &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := d.ask(p, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	display := displayOptions(cfg)
	p := &survey.Select{
		Message: cfg.Message,
		Options: display,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		p.PageSize = cfg.PageSize
	}
	if idx := indexOf(cfg.Options, cfg.Default); idx >= 0 {
		p.Default = display[idx]
	}
	var out string
	if err := d.ask(p, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	if idx := indexOf(display, out); idx >= 0 {
		return cfg.Options[idx], nil
	}
	return out, nil
}

func (d *surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	display := displayOptions(cfg)
	p := &survey.MultiSelect{
		Message: cfg.Message,
		Options: display,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		p.PageSize = cfg.PageSize
	}
	var out []string
	if err := d.ask(p, &out); err != nil {
		return nil, translateSurveyErr(err)
	}
	values := make([]string, 0, len(out))
	for _, chosen := range out {
		if idx := indexOf(display, chosen); idx >= 0 {
			values = append(values, cfg.Options[idx])
		}
	}
	return values, nil
}

func (d *surveyDriver) Number(ctx context.Context, cfg NumberConfig) (int, error) {
	raw, err := d.Input(ctx, InputConfig{
		Message:   cfg.Message,
		Default:   strconv.Itoa(cfg.Default),
		Help:      cfg.Help,
		Validator: numberValidator(cfg),
	})
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("prompt: parse number %q: %w", raw, err)
	}
	return n, nil
}

func (d *surveyDriver) Date(ctx context.Context, cfg DateConfig) (string, error) {
	help := cfg.Help
	if help == "" {
		help = "Use the YYYY/MM/DD format."
	}
	raw, err := d.Input(ctx, InputConfig{
		Message:   cfg.Message,
		Default:   cfg.Default,
		Help:      help,
		Validator: dateValidator(cfg),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// Upload asks for file paths. Multiple paths are comma separated. An empty
// answer means nothing uploaded.
func (d *surveyDriver) Upload(ctx context.Context, cfg UploadConfig) ([]*state.File, error) {
	message := cfg.Message
	if cfg.Multiple {
		message += " (comma-separated paths)"
	}
	raw, err := d.Input(ctx, InputConfig{
		Message:   message,
		Help:      cfg.Help,
		Validator: uploadValidator(cfg),
	})
	if err != nil {
		return nil, err
	}
	paths := splitPaths(raw, cfg.Multiple)
	files := make([]*state.File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("prompt: read upload %q: %w", path, err)
		}
		files = append(files, &state.File{Name: filepath.Base(path), Data: data})
	}
	return files, nil
}

func stringValidator(fn func(string) error) survey.Validator {
	return func(ans interface{}) error {
		s, ok := ans.(string)
		if !ok {
			return fmt.Errorf("expected text, got %T", ans)
		}
		return fn(s)
	}
}

func numberValidator(cfg NumberConfig) func(string) error {
	return func(raw string) error {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return errors.New("enter a whole number")
		}
		if n < cfg.Min {
			return fmt.Errorf("enter a number of at least %d", cfg.Min)
		}
		if cfg.Max > 0 && n > cfg.Max {
			return fmt.Errorf("enter a number of at most %d", cfg.Max)
		}
		return nil
	}
}

func dateValidator(cfg DateConfig) func(string) error {
	return func(raw string) error {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		t, err := time.Parse(DateLayout, raw)
		if err != nil {
			return errors.New("enter a date as YYYY/MM/DD")
		}
		if cfg.Min != "" {
			if min, err := time.Parse(DateLayout, cfg.Min); err == nil && t.Before(min) {
				return fmt.Errorf("enter a date on or after %s", cfg.Min)
			}
		}
		if cfg.Max != "" {
			if max, err := time.Parse(DateLayout, cfg.Max); err == nil && t.After(max) {
				return fmt.Errorf("enter a date on or before %s", cfg.Max)
			}
		}
		return nil
	}
}

func uploadValidator(cfg UploadConfig) func(string) error {
	return func(raw string) error {
		for _, path := range splitPaths(raw, cfg.Multiple) {
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("cannot read %q", path)
			}
		}
		return nil
	}
}

func splitPaths(raw string, multiple bool) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if !multiple {
		return []string{raw}
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

func displayOptions(cfg SelectConfig) []string {
	if len(cfg.Descriptions) != len(cfg.Options) {
		return cfg.Options
	}
	return cfg.Descriptions
}
