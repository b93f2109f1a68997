package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/formsmith/onboard/pkg/forms"
	"github.com/formsmith/onboard/pkg/lists"
	"github.com/formsmith/onboard/pkg/prompt"
	"github.com/formsmith/onboard/pkg/state"
)

// EntitiesConfig configures a repeating juristic-entity section, for
// shareholders or partners that are themselves entities rather than people.
type EntitiesConfig struct {
	InstanceID string   `yaml:"instance"`
	Noun       string   `yaml:"noun"`
	MinCount   int      `yaml:"min_count"`
	MaxCount   int      `yaml:"max_count"`
	Roles      []string `yaml:"roles"`

	// CollectOwnership adds a 0-100 shareholding percentage per record.
	CollectOwnership bool `yaml:"collect_ownership"`
}

func (c *EntitiesConfig) Instance() string { return c.InstanceID }

func (c *EntitiesConfig) Check() error {
	if strings.TrimSpace(c.InstanceID) == "" {
		return fmt.Errorf("components: entities config requires an instance id")
	}
	if c.MaxCount > 0 && c.MaxCount < c.MinCount {
		return fmt.Errorf("components: entities max_count %d below min_count %d", c.MaxCount, c.MinCount)
	}
	return nil
}

func (c *EntitiesConfig) noun() string {
	if c.Noun != "" {
		return c.Noun
	}
	return "Entity"
}

// EntitiesComponent captures zero or more juristic entities. A registration
// number, when given, pulls in its country of registration.
type EntitiesComponent struct{}

const (
	sufEntityName = "entity_name"
	sufEntityType = "entity_type"
	sufRegNumber  = "registration_number"
	sufRegCountry = "country_of_registration"
	sufEntityRole = "role"
	sufOwnership  = "ownership_percent"
	minRegNumber  = 3
	maxRegNumber  = 50
)

var entitySuffixes = []string{sufEntityName, sufEntityType, sufRegNumber, sufRegCountry, sufEntityRole, sufOwnership}

func entitiesConfig(cfg forms.ComponentConfig) (*EntitiesConfig, error) {
	c, ok := cfg.(*EntitiesConfig)
	if !ok {
		return nil, fmt.Errorf("components: entities got config type %T", cfg)
	}
	return c, nil
}

func (e *EntitiesComponent) Render(ctx context.Context, env *forms.Env, ns string, cfg forms.ComponentConfig) error {
	c, err := entitiesConfig(cfg)
	if err != nil {
		return err
	}
	store := env.Store
	countKey := state.InstKey(ns, c.InstanceID, sufCount)
	prevCount := state.GetInt(store, countKey, 0)

	count, err := env.Prompt.Number(ctx, prompt.NumberConfig{
		Message: fmt.Sprintf("How many %ss?", strings.ToLower(c.noun())),
		Default: maxInt(prevCount, c.MinCount),
		Min:     c.MinCount,
		Max:     c.MaxCount,
	})
	if err != nil {
		return err
	}
	store.Set(countKey, count)

	for i := count; i < prevCount; i++ {
		for _, suffix := range entitySuffixes {
			store.Delete(state.RepeatKey(ns, c.InstanceID, suffix, i))
		}
	}

	for i := 0; i < count; i++ {
		if err := env.Prompt.Info(ctx, fmt.Sprintf("%s %d of %d", c.noun(), i+1, count)); err != nil {
			return err
		}
		key := func(suffix string) string { return state.RepeatKey(ns, c.InstanceID, suffix, i) }

		name, err := env.Prompt.Input(ctx, prompt.InputConfig{
			Message: "Entity Name",
			Default: state.GetString(store, key(sufEntityName), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufEntityName), strings.TrimSpace(name))

		entityType, err := env.Prompt.Select(ctx, prompt.SelectConfig{
			Message: "Entity Type",
			Options: env.Lists.EntityTypes(false),
			Default: state.GetString(store, key(sufEntityType), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufEntityType), entityType)

		reg, err := env.Prompt.Input(ctx, prompt.InputConfig{
			Message: "Registration Number (optional)",
			Default: state.GetString(store, key(sufRegNumber), ""),
		})
		if err != nil {
			return err
		}
		reg = strings.TrimSpace(reg)
		store.Set(key(sufRegNumber), reg)

		if reg != "" {
			country, err := env.Prompt.Select(ctx, prompt.SelectConfig{
				Message: "Country of Registration",
				Options: env.Lists.Countries(false),
				Default: state.GetString(store, key(sufRegCountry), lists.SentinelCountry),
			})
			if err != nil {
				return err
			}
			store.Set(key(sufRegCountry), country)
		}

		if len(c.Roles) > 0 {
			role, err := env.Prompt.Select(ctx, prompt.SelectConfig{
				Message: "Role",
				Options: c.Roles,
				Default: state.GetString(store, key(sufEntityRole), ""),
			})
			if err != nil {
				return err
			}
			store.Set(key(sufEntityRole), role)
		}

		if c.CollectOwnership {
			percent, err := env.Prompt.Number(ctx, prompt.NumberConfig{
				Message: "Shareholding (%)",
				Default: state.GetInt(store, key(sufOwnership), 0),
				Min:     0,
				Max:     100,
			})
			if err != nil {
				return err
			}
			store.Set(key(sufOwnership), percent)
		}
	}
	return nil
}

func (e *EntitiesComponent) Validate(env *forms.Env, ns string, cfg forms.ComponentConfig) ([]string, error) {
	c, err := entitiesConfig(cfg)
	if err != nil {
		return nil, err
	}
	store := env.Store
	count := state.GetInt(store, state.InstKey(ns, c.InstanceID, sufCount), 0)

	var findings []string
	if count < c.MinCount {
		findings = append(findings, fmt.Sprintf("At least %d %s record(s) are required.", c.MinCount, strings.ToLower(c.noun())))
	}

	for i := 0; i < count; i++ {
		label := fmt.Sprintf("%s %d", c.noun(), i+1)
		key := func(suffix string) string { return state.RepeatKey(ns, c.InstanceID, suffix, i) }

		if state.GetString(store, key(sufEntityName), "") == "" {
			findings = append(findings, label+": Entity Name is required.")
		}
		if state.GetString(store, key(sufEntityType), "") == "" {
			findings = append(findings, label+": Entity Type is required.")
		}

		reg := state.GetString(store, key(sufRegNumber), "")
		if reg != "" {
			if len(reg) < minRegNumber || len(reg) > maxRegNumber {
				findings = append(findings, fmt.Sprintf("%s: Registration Number must be between %d and %d characters.", label, minRegNumber, maxRegNumber))
			}
			if state.GetString(store, key(sufRegCountry), "") == "" {
				findings = append(findings, label+": Country of Registration is required when a Registration Number is given.")
			}
		}
		if len(c.Roles) > 0 && state.GetString(store, key(sufEntityRole), "") == "" {
			findings = append(findings, label+": Role is required.")
		}
		if c.CollectOwnership {
			percent := state.GetInt(store, key(sufOwnership), -1)
			if percent < 0 || percent > 100 {
				findings = append(findings, label+": Shareholding must be between 0 and 100 percent.")
			}
		}
	}
	return findings, nil
}

func (e *EntitiesComponent) Serialize(env *forms.Env, ns string, cfg forms.ComponentConfig) (*forms.Payload, []forms.Upload, error) {
	c, err := entitiesConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	store := env.Store
	count := state.GetInt(store, state.InstKey(ns, c.InstanceID, sufCount), 0)

	records := make([]*forms.Fields, 0, count)
	for i := 0; i < count; i++ {
		key := func(suffix string) string { return state.RepeatKey(ns, c.InstanceID, suffix, i) }

		fields := forms.NewFields()
		fields.Set("Entity Name", state.GetString(store, key(sufEntityName), ""))
		fields.Set("Entity Type", state.GetString(store, key(sufEntityType), ""))
		fields.Set("Registration Number", state.GetString(store, key(sufRegNumber), ""))
		fields.Set("Country of Registration", state.GetString(store, key(sufRegCountry), ""))
		if len(c.Roles) > 0 {
			fields.Set("Role", state.GetString(store, key(sufEntityRole), ""))
		}
		if c.CollectOwnership {
			fields.Set("Shareholding", fmt.Sprintf("%d%%", state.GetInt(store, key(sufOwnership), 0)))
		}
		records = append(records, fields)
	}
	return forms.RepeatPayload(count, records), nil, nil
}
