package forms

import (
	"fmt"
	"strings"
	"testing"
)

type yamlAddressConfig struct {
	InstanceID string `yaml:"instance"`
	Label      string `yaml:"label"`
}

func (c *yamlAddressConfig) Instance() string { return c.InstanceID }
func (c *yamlAddressConfig) Check() error     { return nil }

type yamlFactory struct{}

func (yamlFactory) NewConfig(id string) (ComponentConfig, error) {
	if id != "address" {
		return nil, fmt.Errorf("component %q not registered", id)
	}
	return &yamlAddressConfig{}, nil
}

const specYAML = `
name: company
title: Company Onboarding
sections:
  - title: Entity Details
    fields:
      - id: entity_name
        label: Entity Name
        kind: text
        required: true
      - id: entity_type
        label: Entity Type
        kind: select
        options: [Company, Trust]
  - title: Physical Address
    component: address
    config:
      instance: physical_address
      label: Physical Address
`

func TestLoadSpec(t *testing.T) {
	spec, err := LoadSpec(strings.NewReader(specYAML), yamlFactory{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "company" || len(spec.Sections) != 2 {
		t.Fatalf("unexpected spec shape: %+v", spec)
	}

	entity := spec.Sections[0]
	if entity.IsComponent() || len(entity.Fields) != 2 {
		t.Fatalf("entity section shape: %+v", entity)
	}
	if entity.Fields[0].Kind != KindText || !entity.Fields[0].Required {
		t.Fatalf("field decode: %+v", entity.Fields[0])
	}

	address := spec.Sections[1]
	if !address.IsComponent() || address.ComponentID != "address" {
		t.Fatalf("address section shape: %+v", address)
	}
	cfg, ok := address.Config.(*yamlAddressConfig)
	if !ok {
		t.Fatalf("config type: %T", address.Config)
	}
	if cfg.Instance() != "physical_address" || cfg.Label != "Physical Address" {
		t.Fatalf("config decode: %+v", cfg)
	}
}

func TestLoadSpecRejectsUnknownComponent(t *testing.T) {
	doc := strings.Replace(specYAML, "component: address", "component: widget", 1)
	if _, err := LoadSpec(strings.NewReader(doc), yamlFactory{}); err == nil {
		t.Fatal("expected error for unknown component")
	}
}

func TestLoadSpecRunsStructuralCheck(t *testing.T) {
	doc := strings.Replace(specYAML, "title: Physical Address\n    component", "title: Entity Details\n    component", 1)
	_, err := LoadSpec(strings.NewReader(doc), yamlFactory{})
	if err == nil || !strings.Contains(err.Error(), "duplicate section title") {
		t.Fatalf("expected duplicate-title error, got %v", err)
	}
}
