package specs

import (
	"fmt"
	"sort"

	"github.com/formsmith/onboard/pkg/forms"
	"github.com/formsmith/onboard/pkg/lists"
)

// Builder constructs a fresh FormSpec against a controlled-list catalog.
type Builder func(*lists.Catalog) *forms.FormSpec

var builders = map[string]Builder{
	"company":            Company,
	"trust":              Trust,
	"partnership":        Partnership,
	"closed_corporation": ClosedCorporation,
}

// Names returns the built-in spec names, sorted.
func Names() []string {
	out := make([]string, 0, len(builders))
	for name := range builders {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Get builds the named spec and verifies its structure.
func Get(name string, cat *lists.Catalog) (*forms.FormSpec, error) {
	builder, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("specs: unknown form %q (available: %v)", name, Names())
	}
	spec := builder(cat)
	if err := spec.Check(); err != nil {
		return nil, err
	}
	return spec, nil
}
