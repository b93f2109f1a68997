// Package forms defines the declarative form model and the engine that walks
// it. A FormSpec is immutable once built; all answer state lives in the
// session store under the spec's namespace.
package forms

import (
	"fmt"
	"strings"
)

// Kind enumerates the built-in field widgets for plain sections.
type Kind string

const (
	KindText        Kind = "text"
	KindTextArea    Kind = "textarea"
	KindNumber      Kind = "number"
	KindDate        Kind = "date"
	KindSelect      Kind = "select"
	KindMultiSelect Kind = "multiselect"
	KindCheckbox    Kind = "checkbox"
	KindFile        Kind = "file"
)

var validKinds = map[Kind]struct{}{
	KindText: {}, KindTextArea: {}, KindNumber: {}, KindDate: {},
	KindSelect: {}, KindMultiSelect: {}, KindCheckbox: {}, KindFile: {},
}

// Field describes one prompt in a plain section. ID is the store key suffix
// within the spec's namespace; Label is what the operator sees and what the
// serialized payload uses.
type Field struct {
	ID       string
	Label    string
	Kind     Kind
	Required bool
	Help     string

	// Options and Descriptions apply to select/multiselect. When
	// Descriptions is set it must be parallel to Options; prompts display
	// descriptions while the store carries option values.
	Options      []string
	Descriptions []string

	// Min and Max bound date fields (YYYY/MM/DD) and number fields
	// (decimal strings). Empty means unbounded.
	Min string
	Max string

	// AcceptMultiple lets a file field collect more than one upload.
	AcceptMultiple bool

	// Check runs during validation on the trimmed string form of the
	// value. A non-empty return is a finding; the label prefix is added
	// by the engine. Empty values are not passed to Check.
	Check func(value string) string
}

// Rule is a cross-field validation hook on a plain section. It reads the
// store directly and returns findings already phrased for display, without
// the section prefix.
type Rule func(env *Env, ns string, sec *Section) []string

// Section is one step of a form. Exactly one of Fields or ComponentID is
// set: plain sections list their fields inline, component sections delegate
// to a registered SectionComponent.
type Section struct {
	Title string
	Intro string

	Fields []Field
	Rules  []Rule

	ComponentID string
	Config      ComponentConfig
}

// IsComponent reports whether the section delegates to a component.
func (s *Section) IsComponent() bool { return s.ComponentID != "" }

// FormSpec is a complete declarative form. Name doubles as the store
// namespace, so two specs with the same name share (and clobber) state.
type FormSpec struct {
	Name     string
	Title    string
	Sections []Section
}

// Check validates the spec's structure: namespace and title present, section
// titles unique, each section either plain or component-backed, component
// sections carrying a checked config with a non-empty instance.
func (f *FormSpec) Check() error {
	if f == nil {
		return fmt.Errorf("forms: nil spec")
	}
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("forms: spec name is required")
	}
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("forms: spec %q: title is required", f.Name)
	}
	if len(f.Sections) == 0 {
		return fmt.Errorf("forms: spec %q: at least one section is required", f.Name)
	}

	titles := make(map[string]struct{}, len(f.Sections))
	for i := range f.Sections {
		sec := &f.Sections[i]
		if strings.TrimSpace(sec.Title) == "" {
			return fmt.Errorf("forms: spec %q: section %d has no title", f.Name, i)
		}
		if _, dup := titles[sec.Title]; dup {
			return fmt.Errorf("forms: spec %q: duplicate section title %q", f.Name, sec.Title)
		}
		titles[sec.Title] = struct{}{}

		if err := checkSection(f.Name, sec); err != nil {
			return err
		}
	}
	return nil
}

func checkSection(specName string, sec *Section) error {
	hasFields := len(sec.Fields) > 0
	if hasFields == sec.IsComponent() {
		return fmt.Errorf("forms: spec %q: section %q must have exactly one of fields or component", specName, sec.Title)
	}

	if sec.IsComponent() {
		if sec.Config == nil {
			return fmt.Errorf("forms: spec %q: section %q: component %q has no config", specName, sec.Title, sec.ComponentID)
		}
		if strings.TrimSpace(sec.Config.Instance()) == "" {
			return fmt.Errorf("forms: spec %q: section %q: component config has no instance id", specName, sec.Title)
		}
		if err := sec.Config.Check(); err != nil {
			return fmt.Errorf("forms: spec %q: section %q: %w", specName, sec.Title, err)
		}
		return nil
	}

	ids := make(map[string]struct{}, len(sec.Fields))
	for i := range sec.Fields {
		fld := &sec.Fields[i]
		if strings.TrimSpace(fld.ID) == "" {
			return fmt.Errorf("forms: spec %q: section %q: field %d has no id", specName, sec.Title, i)
		}
		if _, dup := ids[fld.ID]; dup {
			return fmt.Errorf("forms: spec %q: section %q: duplicate field id %q", specName, sec.Title, fld.ID)
		}
		ids[fld.ID] = struct{}{}
		if strings.TrimSpace(fld.Label) == "" {
			return fmt.Errorf("forms: spec %q: section %q: field %q has no label", specName, sec.Title, fld.ID)
		}
		if _, ok := validKinds[fld.Kind]; !ok {
			return fmt.Errorf("forms: spec %q: section %q: field %q has unknown kind %q", specName, sec.Title, fld.ID, fld.Kind)
		}
		if len(fld.Descriptions) > 0 && len(fld.Descriptions) != len(fld.Options) {
			return fmt.Errorf("forms: spec %q: section %q: field %q descriptions do not match options", specName, sec.Title, fld.ID)
		}
		if (fld.Kind == KindSelect || fld.Kind == KindMultiSelect) && len(fld.Options) == 0 {
			return fmt.Errorf("forms: spec %q: section %q: field %q has no options", specName, sec.Title, fld.ID)
		}
	}
	return nil
}
