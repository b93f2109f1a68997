// Package components provides the reusable section implementations shared by
// every onboarding spec, plus the registry that resolves them by ID.
package components

import (
	"fmt"
	"sort"
	"sync"

	"github.com/formsmith/onboard/pkg/forms"
)

// Component IDs as referenced by specs and YAML definitions.
const (
	IDAddress            = "address"
	IDPhone              = "phone"
	IDNaturalPersons     = "natural_persons"
	IDControllingPersons = "controlling_persons"
	IDRelatedEntities    = "related_entities"
	IDRepresentative     = "representative"
	IDFATCA              = "fatca"
	IDCRS                = "crs"
)

type entry struct {
	component forms.SectionComponent
	newConfig func() forms.ComponentConfig
}

// Registry maps component IDs to implementations and their typed configs. It
// implements forms.ComponentResolver and forms.ConfigFactory.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a component under id. Registering a duplicate id or a nil
// component is an error.
func (r *Registry) Register(id string, component forms.SectionComponent, newConfig func() forms.ComponentConfig) error {
	if id == "" {
		return fmt.Errorf("components: empty component id")
	}
	if component == nil {
		return fmt.Errorf("components: nil component for %q", id)
	}
	if newConfig == nil {
		return fmt.Errorf("components: nil config factory for %q", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.entries[id]; dup {
		return fmt.Errorf("components: component %q already registered", id)
	}
	r.entries[id] = entry{component: component, newConfig: newConfig}
	return nil
}

// Resolve returns the component registered under id.
func (r *Registry) Resolve(id string) (forms.SectionComponent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("components: component %q not registered", id)
	}
	return e.component, nil
}

// NewConfig returns an empty typed config for id, for YAML decoding.
func (r *Registry) NewConfig(id string) (forms.ComponentConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("components: component %q not registered", id)
	}
	return e.newConfig(), nil
}

// IDs returns the registered component IDs, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for id := range r.entries {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Default builds the registry with every built-in component. Registration is
// explicit so a missing wiring fails loudly at startup rather than mid-form.
func Default() *Registry {
	r := New()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	persons := &PersonsComponent{}
	must(r.Register(IDAddress, &AddressComponent{}, func() forms.ComponentConfig { return &AddressConfig{} }))
	must(r.Register(IDPhone, &PhoneComponent{}, func() forms.ComponentConfig { return &PhoneConfig{} }))
	must(r.Register(IDNaturalPersons, persons, func() forms.ComponentConfig { return &PersonsConfig{} }))
	must(r.Register(IDControllingPersons, &ControllingPersonsComponent{Persons: persons}, func() forms.ComponentConfig { return &ControllingPersonsConfig{} }))
	must(r.Register(IDRelatedEntities, &EntitiesComponent{}, func() forms.ComponentConfig { return &EntitiesConfig{} }))
	must(r.Register(IDRepresentative, &RepresentativeComponent{}, func() forms.ComponentConfig { return &RepresentativeConfig{} }))
	must(r.Register(IDFATCA, &FATCAComponent{}, func() forms.ComponentConfig { return &FATCAConfig{} }))
	must(r.Register(IDCRS, &CRSComponent{}, func() forms.ComponentConfig { return &CRSConfig{} }))
	return r
}
