package forms

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/formsmith/onboard/pkg/prompt"
	"github.com/formsmith/onboard/pkg/state"
)

// DateLayout is the single date format used across prompts, validation and
// serialized payloads.
const DateLayout = prompt.DateLayout

// Engine walks a FormSpec against a session environment. It is stateless;
// everything it reads and writes goes through env.Store.
type Engine struct {
	env      *Env
	resolver ComponentResolver
}

// NewEngine wires an engine. The store and resolver are mandatory; the prompt
// driver may be nil for validate/serialize-only use.
func NewEngine(env *Env, resolver ComponentResolver) (*Engine, error) {
	if env == nil || env.Store == nil {
		return nil, fmt.Errorf("forms: engine requires a session store")
	}
	if resolver == nil {
		return nil, fmt.Errorf("forms: engine requires a component resolver")
	}
	return &Engine{env: env, resolver: resolver}, nil
}

// Render walks every section in order, prompting for each field and writing
// answers into the store under the spec's namespace. Re-rendering offers the
// stored values as defaults.
func (e *Engine) Render(ctx context.Context, spec *FormSpec) error {
	if err := spec.Check(); err != nil {
		return err
	}
	if e.env.Prompt == nil {
		return fmt.Errorf("forms: render requires a prompt driver")
	}

	for i := range spec.Sections {
		sec := &spec.Sections[i]
		if err := e.env.Prompt.Heading(ctx, sec.Title); err != nil {
			return err
		}
		if sec.Intro != "" {
			if err := e.env.Prompt.Info(ctx, sec.Intro); err != nil {
				return err
			}
		}

		if sec.IsComponent() {
			comp, err := e.resolver.Resolve(sec.ComponentID)
			if err != nil {
				return fmt.Errorf("forms: section %q: %w", sec.Title, err)
			}
			if err := comp.Render(ctx, e.env, spec.Name, sec.Config); err != nil {
				return fmt.Errorf("forms: section %q: %w", sec.Title, err)
			}
			continue
		}

		for j := range sec.Fields {
			if err := e.renderField(ctx, spec.Name, &sec.Fields[j]); err != nil {
				return fmt.Errorf("forms: section %q: %w", sec.Title, err)
			}
		}
	}
	return nil
}

// Validate re-reads the whole store and returns every finding, each prefixed
// with its section title. It never stops at the first problem. A non-nil
// error means the spec or its wiring is broken, not that the data is bad.
// In dev mode findings are logged and discarded.
func (e *Engine) Validate(spec *FormSpec) ([]string, error) {
	if err := spec.Check(); err != nil {
		return nil, err
	}

	var findings []string
	for i := range spec.Sections {
		sec := &spec.Sections[i]

		var raw []string
		if sec.IsComponent() {
			comp, err := e.resolver.Resolve(sec.ComponentID)
			if err != nil {
				return nil, fmt.Errorf("forms: section %q: %w", sec.Title, err)
			}
			raw, err = comp.Validate(e.env, spec.Name, sec.Config)
			if err != nil {
				return nil, fmt.Errorf("forms: section %q: %w", sec.Title, err)
			}
		} else {
			for j := range sec.Fields {
				raw = append(raw, e.validateField(spec.Name, &sec.Fields[j])...)
			}
			for _, rule := range sec.Rules {
				raw = append(raw, rule(e.env, spec.Name, sec)...)
			}
		}

		for _, finding := range raw {
			findings = append(findings, fmt.Sprintf("[%s] %s", sec.Title, finding))
		}
	}

	if e.env.DevMode && len(findings) > 0 {
		e.env.Log().Warn("dev mode: suppressing validation findings",
			zap.String("spec", spec.Name),
			zap.Int("count", len(findings)))
		return nil, nil
	}
	return findings, nil
}

// Serialize reads the store and produces one payload per section, in section
// order, together with every captured upload in encounter order. Each upload
// carries the title of the section it came from. Serialize does not validate;
// callers gate it behind Validate.
func (e *Engine) Serialize(spec *FormSpec) (*Answers, []Upload, error) {
	if err := spec.Check(); err != nil {
		return nil, nil, err
	}

	answers := NewAnswers(spec.Name, spec.Title)
	var uploads []Upload
	for i := range spec.Sections {
		sec := &spec.Sections[i]

		var payload *Payload
		if sec.IsComponent() {
			comp, err := e.resolver.Resolve(sec.ComponentID)
			if err != nil {
				return nil, nil, fmt.Errorf("forms: section %q: %w", sec.Title, err)
			}
			var ups []Upload
			payload, ups, err = comp.Serialize(e.env, spec.Name, sec.Config)
			if err != nil {
				return nil, nil, fmt.Errorf("forms: section %q: %w", sec.Title, err)
			}
			for _, up := range ups {
				up.Section = sec.Title
				uploads = append(uploads, up)
			}
		} else {
			fields := NewFields()
			for j := range sec.Fields {
				fld := &sec.Fields[j]
				fields.Set(fld.Label, e.fieldValue(spec.Name, fld))
				if fld.Kind == KindFile {
					for _, f := range state.GetFiles(e.env.Store, state.NsKey(spec.Name, fld.ID)) {
						uploads = append(uploads, Upload{
							File:         f,
							Section:      sec.Title,
							DocumentType: fld.Label,
						})
					}
				}
			}
			payload = FlatPayload(fields)
		}

		if err := payload.Check(); err != nil {
			return nil, nil, fmt.Errorf("forms: section %q: %w", sec.Title, err)
		}
		answers.Add(sec.Title, payload)
	}
	return answers, uploads, nil
}

func (e *Engine) renderField(ctx context.Context, ns string, fld *Field) error {
	key := state.NsKey(ns, fld.ID)
	store := e.env.Store

	switch fld.Kind {
	case KindText:
		out, err := e.env.Prompt.Input(ctx, prompt.InputConfig{
			Message: fld.Label,
			Default: state.GetString(store, key, ""),
			Help:    fld.Help,
		})
		if err != nil {
			return err
		}
		store.Set(key, strings.TrimSpace(out))

	case KindTextArea:
		out, err := e.env.Prompt.TextArea(ctx, prompt.InputConfig{
			Message: fld.Label,
			Default: state.GetString(store, key, ""),
			Help:    fld.Help,
		})
		if err != nil {
			return err
		}
		store.Set(key, strings.TrimSpace(out))

	case KindNumber:
		min, max := numberBounds(fld)
		out, err := e.env.Prompt.Number(ctx, prompt.NumberConfig{
			Message: fld.Label,
			Default: state.GetInt(store, key, min),
			Min:     min,
			Max:     max,
			Help:    fld.Help,
		})
		if err != nil {
			return err
		}
		store.Set(key, out)

	case KindDate:
		out, err := e.env.Prompt.Date(ctx, prompt.DateConfig{
			Message: fld.Label,
			Default: state.GetString(store, key, ""),
			Min:     fld.Min,
			Max:     fld.Max,
			Help:    fld.Help,
		})
		if err != nil {
			return err
		}
		store.Set(key, out)

	case KindSelect:
		out, err := e.env.Prompt.Select(ctx, prompt.SelectConfig{
			Message:      fld.Label,
			Options:      fld.Options,
			Descriptions: fld.Descriptions,
			Default:      state.GetString(store, key, ""),
			Help:         fld.Help,
		})
		if err != nil {
			return err
		}
		store.Set(key, out)

	case KindMultiSelect:
		out, err := e.env.Prompt.MultiSelect(ctx, prompt.SelectConfig{
			Message:      fld.Label,
			Options:      fld.Options,
			Descriptions: fld.Descriptions,
			Help:         fld.Help,
		})
		if err != nil {
			return err
		}
		store.Set(key, out)

	case KindCheckbox:
		out, err := e.env.Prompt.Confirm(ctx, prompt.ConfirmConfig{
			Message: fld.Label,
			Default: state.GetBool(store, key, false),
			Help:    fld.Help,
		})
		if err != nil {
			return err
		}
		store.Set(key, out)

	case KindFile:
		files, err := e.env.Prompt.Upload(ctx, prompt.UploadConfig{
			Message:  fld.Label,
			Multiple: fld.AcceptMultiple,
			Help:     fld.Help,
		})
		if err != nil {
			return err
		}
		if len(files) > 0 {
			store.Set(key, files)
		}

	default:
		return fmt.Errorf("forms: field %q: unknown kind %q", fld.ID, fld.Kind)
	}
	return nil
}

func (e *Engine) validateField(ns string, fld *Field) []string {
	key := state.NsKey(ns, fld.ID)
	store := e.env.Store
	var out []string

	switch fld.Kind {
	case KindNumber:
		n := state.GetInt(store, key, -1)
		min, max := numberBounds(fld)
		if n < 0 {
			if fld.Required {
				out = append(out, fld.Label+" is required.")
			}
			return out
		}
		if n < min {
			out = append(out, fmt.Sprintf("%s must be at least %d.", fld.Label, min))
		}
		if max > 0 && n > max {
			out = append(out, fmt.Sprintf("%s must be at most %d.", fld.Label, max))
		}

	case KindMultiSelect:
		values, _ := store.Get(key, nil).([]string)
		if fld.Required && len(values) == 0 {
			out = append(out, fld.Label+" is required.")
		}

	case KindCheckbox:
		if fld.Required && !state.GetBool(store, key, false) {
			out = append(out, fld.Label+" is required.")
		}

	case KindFile:
		if fld.Required && len(state.GetFiles(store, key)) == 0 {
			out = append(out, fld.Label+" is required.")
		}

	default:
		value := state.GetString(store, key, "")
		if value == "" {
			if fld.Required {
				out = append(out, fld.Label+" is required.")
			}
			return out
		}
		if fld.Kind == KindDate {
			out = append(out, validateDate(fld, value)...)
		}
		if fld.Check != nil {
			if finding := fld.Check(value); finding != "" {
				out = append(out, fmt.Sprintf("%s %s", fld.Label, finding))
			}
		}
	}
	return out
}

func (e *Engine) fieldValue(ns string, fld *Field) any {
	key := state.NsKey(ns, fld.ID)
	store := e.env.Store

	switch fld.Kind {
	case KindNumber:
		// An absent optional number serializes as an empty placeholder, not
		// as a zero the operator never entered.
		if store.Get(key, nil) == nil {
			return ""
		}
		return state.GetInt(store, key, 0)
	case KindMultiSelect:
		values, _ := store.Get(key, nil).([]string)
		return strings.Join(values, ", ")
	case KindCheckbox:
		if state.GetBool(store, key, false) {
			return "Yes"
		}
		return "No"
	case KindFile:
		files := state.GetFiles(store, key)
		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, f.Name)
		}
		return strings.Join(names, ", ")
	default:
		return state.GetString(store, key, "")
	}
}

func validateDate(fld *Field, value string) []string {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return []string{fld.Label + " must be a valid date in YYYY/MM/DD format."}
	}
	var out []string
	if fld.Min != "" {
		if min, err := time.Parse(DateLayout, fld.Min); err == nil && t.Before(min) {
			out = append(out, fmt.Sprintf("%s must be on or after %s.", fld.Label, fld.Min))
		}
	}
	if fld.Max != "" {
		if max, err := time.Parse(DateLayout, fld.Max); err == nil && t.After(max) {
			out = append(out, fmt.Sprintf("%s must be on or before %s.", fld.Label, fld.Max))
		}
	}
	return out
}

func numberBounds(fld *Field) (min, max int) {
	if n, err := strconv.Atoi(fld.Min); err == nil {
		min = n
	}
	if n, err := strconv.Atoi(fld.Max); err == nil {
		max = n
	}
	return min, max
}
