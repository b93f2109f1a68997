package forms

import "fmt"

// Fields is an insertion-ordered label/value map. Exporters walk it in order,
// so two serializations of the same store always produce identical artifacts.
type Fields struct {
	keys   []string
	values map[string]any
}

// NewFields returns an empty ordered field map.
func NewFields() *Fields {
	return &Fields{values: make(map[string]any)}
}

// Set stores value under label, keeping first-insertion order on re-set.
func (f *Fields) Set(label string, value any) {
	if _, ok := f.values[label]; !ok {
		f.keys = append(f.keys, label)
	}
	f.values[label] = value
}

// Get returns the value for label and whether it is present.
func (f *Fields) Get(label string) (any, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.values[label]
	return v, ok
}

// Keys returns the labels in insertion order.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.keys...)
}

// Len reports the number of entries.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Repeat is the serialized form of a repeating section: how many records the
// operator captured and one ordered field map per record.
type Repeat struct {
	Count   int
	Records []*Fields
}

// Payload is the serialized output of one section. Exactly one arm is set:
// Flat for single-record sections, Rep for repeating ones.
type Payload struct {
	Flat *Fields
	Rep  *Repeat
}

// FlatPayload wraps a single-record field map.
func FlatPayload(fields *Fields) *Payload {
	return &Payload{Flat: fields}
}

// RepeatPayload wraps a repeating record set.
func RepeatPayload(count int, records []*Fields) *Payload {
	return &Payload{Rep: &Repeat{Count: count, Records: records}}
}

// Check confirms exactly one arm is populated.
func (p *Payload) Check() error {
	if p == nil {
		return fmt.Errorf("forms: nil payload")
	}
	if (p.Flat == nil) == (p.Rep == nil) {
		return fmt.Errorf("forms: payload must carry exactly one of flat or repeating data")
	}
	return nil
}

// Answers is the full serialized submission: one payload per section, in the
// FormSpec's section order, plus sections injected at submit time (survey
// metadata, declaration).
type Answers struct {
	FormName  string
	FormTitle string

	order    []string
	sections map[string]*Payload
}

// NewAnswers creates an empty answer set for the named spec.
func NewAnswers(name, title string) *Answers {
	return &Answers{
		FormName:  name,
		FormTitle: title,
		sections:  make(map[string]*Payload),
	}
}

// Add appends a section payload. Section titles are unique per spec, so a
// duplicate add replaces the payload without changing the order.
func (a *Answers) Add(sectionTitle string, payload *Payload) {
	if _, ok := a.sections[sectionTitle]; !ok {
		a.order = append(a.order, sectionTitle)
	}
	a.sections[sectionTitle] = payload
}

// Section returns the payload stored for a section title.
func (a *Answers) Section(title string) (*Payload, bool) {
	if a == nil {
		return nil, false
	}
	p, ok := a.sections[title]
	return p, ok
}

// Titles returns section titles in submission order.
func (a *Answers) Titles() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.order...)
}
