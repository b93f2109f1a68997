package forms

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ConfigFactory produces an empty typed config for a component ID so the
// loader can decode YAML into it. The component registry implements this.
type ConfigFactory interface {
	NewConfig(id string) (ComponentConfig, error)
}

type specDoc struct {
	Name     string       `yaml:"name"`
	Title    string       `yaml:"title"`
	Sections []sectionDoc `yaml:"sections"`
}

type sectionDoc struct {
	Title     string     `yaml:"title"`
	Intro     string     `yaml:"intro"`
	Fields    []fieldDoc `yaml:"fields"`
	Component string     `yaml:"component"`
	Config    yaml.Node  `yaml:"config"`
}

type fieldDoc struct {
	ID             string   `yaml:"id"`
	Label          string   `yaml:"label"`
	Kind           string   `yaml:"kind"`
	Required       bool     `yaml:"required"`
	Help           string   `yaml:"help"`
	Options        []string `yaml:"options"`
	Descriptions   []string `yaml:"descriptions"`
	Min            string   `yaml:"min"`
	Max            string   `yaml:"max"`
	AcceptMultiple bool     `yaml:"accept_multiple"`
}

// LoadSpec reads a YAML form definition. Component config blocks are decoded
// into the typed config the factory hands out for that component ID, so a
// typo in a config key fails at load time rather than mid-render. Cross-field
// rules and custom checks cannot be expressed in YAML; specs that need them
// are built in code.
func LoadSpec(r io.Reader, configs ConfigFactory) (*FormSpec, error) {
	var doc specDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("forms: decode spec: %w", err)
	}

	spec := &FormSpec{
		Name:     doc.Name,
		Title:    doc.Title,
		Sections: make([]Section, 0, len(doc.Sections)),
	}

	for _, sd := range doc.Sections {
		sec := Section{Title: sd.Title, Intro: sd.Intro}

		if sd.Component != "" {
			if configs == nil {
				return nil, fmt.Errorf("forms: spec %q: section %q uses component %q but no config factory was given", doc.Name, sd.Title, sd.Component)
			}
			cfg, err := configs.NewConfig(sd.Component)
			if err != nil {
				return nil, fmt.Errorf("forms: spec %q: section %q: %w", doc.Name, sd.Title, err)
			}
			if sd.Config.Kind != 0 {
				if err := sd.Config.Decode(cfg); err != nil {
					return nil, fmt.Errorf("forms: spec %q: section %q: decode %q config: %w", doc.Name, sd.Title, sd.Component, err)
				}
			}
			sec.ComponentID = sd.Component
			sec.Config = cfg
		}

		for _, fd := range sd.Fields {
			sec.Fields = append(sec.Fields, Field{
				ID:             fd.ID,
				Label:          fd.Label,
				Kind:           Kind(fd.Kind),
				Required:       fd.Required,
				Help:           fd.Help,
				Options:        fd.Options,
				Descriptions:   fd.Descriptions,
				Min:            fd.Min,
				Max:            fd.Max,
				AcceptMultiple: fd.AcceptMultiple,
			})
		}

		spec.Sections = append(spec.Sections, sec)
	}

	if err := spec.Check(); err != nil {
		return nil, err
	}
	return spec, nil
}
