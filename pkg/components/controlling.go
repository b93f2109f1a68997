package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/formsmith/onboard/pkg/forms"
	"github.com/formsmith/onboard/pkg/state"
)

// ControllingPersonsSuffix extends an owning instance ID to the sub-instance
// holding its controlling-person records.
const ControllingPersonsSuffix = "_controlling_persons"

// KeyEquals is a declarative activation trigger: the store value at
// instance/suffix must equal Value.
type KeyEquals struct {
	Instance string `yaml:"instance"`
	Suffix   string `yaml:"suffix"`
	Value    string `yaml:"value"`
}

// ControllingPersonsConfig configures a controlling-persons block. With no
// triggers the block is always active and needs at least one record; with
// triggers it only activates when some trigger matches, which is how passive
// FATCA and CRS classifications pull in their controlling persons.
type ControllingPersonsConfig struct {
	InstanceID string     `yaml:"instance"`
	MinCount   int        `yaml:"min_count"`
	TriggerAny []KeyEquals `yaml:"trigger_any"`
}

func (c *ControllingPersonsConfig) Instance() string { return c.InstanceID }

func (c *ControllingPersonsConfig) Check() error {
	if strings.TrimSpace(c.InstanceID) == "" {
		return fmt.Errorf("components: controlling persons config requires an instance id")
	}
	for i, trig := range c.TriggerAny {
		if trig.Instance == "" || trig.Suffix == "" {
			return fmt.Errorf("components: controlling persons trigger %d is incomplete", i)
		}
	}
	return nil
}

// ControllingPersonsComponent captures the natural persons who ultimately
// control a passive entity. It is the persons component under a derived
// sub-instance, so two compliance sections can both hang controlling persons
// off their own instance without key collisions. An inactive block renders
// nothing and serializes an empty record set.
type ControllingPersonsComponent struct {
	Persons *PersonsComponent
}

func controllingConfig(cfg forms.ComponentConfig) (*ControllingPersonsConfig, error) {
	c, ok := cfg.(*ControllingPersonsConfig)
	if !ok {
		return nil, fmt.Errorf("components: controlling persons got config type %T", cfg)
	}
	return c, nil
}

func (c *ControllingPersonsComponent) active(env *forms.Env, ns string, cfg *ControllingPersonsConfig) bool {
	if len(cfg.TriggerAny) == 0 {
		return true
	}
	for _, trig := range cfg.TriggerAny {
		key := state.InstKey(ns, trig.Instance, trig.Suffix)
		if state.GetString(env.Store, key, "") == trig.Value {
			return true
		}
	}
	return false
}

func (c *ControllingPersonsComponent) derive(cfg *ControllingPersonsConfig) *PersonsConfig {
	min := cfg.MinCount
	if min < 1 {
		min = 1
	}
	return &PersonsConfig{
		InstanceID:          cfg.InstanceID + ControllingPersonsSuffix,
		Noun:                "Controlling Person",
		MinCount:            min,
		CollectContact:      true,
		CollectUploads:      true,
		CollectTaxResidence: true,
		CollectAddress:      true,
	}
}

func (c *ControllingPersonsComponent) Render(ctx context.Context, env *forms.Env, ns string, cfg forms.ComponentConfig) error {
	conf, err := controllingConfig(cfg)
	if err != nil {
		return err
	}
	if !c.active(env, ns, conf) {
		derived := c.derive(conf)
		env.Store.Set(state.InstKey(ns, derived.InstanceID, sufCount), 0)
		return env.Prompt.Info(ctx, "No controlling persons are required for the selected classification.")
	}
	return c.Persons.Render(ctx, env, ns, c.derive(conf))
}

func (c *ControllingPersonsComponent) Validate(env *forms.Env, ns string, cfg forms.ComponentConfig) ([]string, error) {
	conf, err := controllingConfig(cfg)
	if err != nil {
		return nil, err
	}
	if !c.active(env, ns, conf) {
		return nil, nil
	}
	return c.Persons.Validate(env, ns, c.derive(conf))
}

func (c *ControllingPersonsComponent) Serialize(env *forms.Env, ns string, cfg forms.ComponentConfig) (*forms.Payload, []forms.Upload, error) {
	conf, err := controllingConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	if !c.active(env, ns, conf) {
		return forms.RepeatPayload(0, nil), nil, nil
	}
	return c.Persons.Serialize(env, ns, c.derive(conf))
}
