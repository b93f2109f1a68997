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

// AddressConfig configures one address block. Optional skips the required
// checks, for a postal address that may match the physical one.
type AddressConfig struct {
	InstanceID string `yaml:"instance"`
	Label      string `yaml:"label"`
	Optional   bool   `yaml:"optional"`
}

func (c *AddressConfig) Instance() string { return c.InstanceID }

func (c *AddressConfig) Check() error {
	if strings.TrimSpace(c.InstanceID) == "" {
		return fmt.Errorf("components: address config requires an instance id")
	}
	return nil
}

// AddressComponent captures a street address. The country drives the rest:
// the sentinel country gets a fixed province list and a 4-digit postal code
// rule, everything else gets free-text provinces and free-form postal codes.
type AddressComponent struct{}

const (
	sufCountry  = "country"
	sufLine1    = "line1"
	sufLine2    = "line2"
	sufSuburb   = "suburb"
	sufCity     = "city"
	sufProvince = "province"
	sufPostal   = "postal_code"
)

func addressConfig(cfg forms.ComponentConfig) (*AddressConfig, error) {
	c, ok := cfg.(*AddressConfig)
	if !ok {
		return nil, fmt.Errorf("components: address got config type %T", cfg)
	}
	return c, nil
}

func (a *AddressComponent) Render(ctx context.Context, env *forms.Env, ns string, cfg forms.ComponentConfig) error {
	c, err := addressConfig(cfg)
	if err != nil {
		return err
	}
	store := env.Store
	key := func(suffix string) string { return state.InstKey(ns, c.InstanceID, suffix) }

	country := state.GetString(store, key(sufCountry), lists.SentinelCountry)
	country, err = env.Prompt.Select(ctx, prompt.SelectConfig{
		Message: "Country",
		Options: env.Lists.Countries(false),
		Default: country,
	})
	if err != nil {
		return err
	}
	store.Set(key(sufCountry), country)

	inputs := []struct {
		suffix  string
		message string
	}{
		{sufLine1, "Street Address"},
		{sufLine2, "Address Line 2 (optional)"},
		{sufSuburb, "Suburb"},
		{sufCity, "City"},
	}
	for _, in := range inputs {
		out, err := env.Prompt.Input(ctx, prompt.InputConfig{
			Message: in.message,
			Default: state.GetString(store, key(in.suffix), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(in.suffix), strings.TrimSpace(out))
	}

	if country == lists.SentinelCountry {
		province, err := env.Prompt.Select(ctx, prompt.SelectConfig{
			Message: "Province",
			Options: env.Lists.Provinces(false),
			Default: state.GetString(store, key(sufProvince), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufProvince), province)
	} else {
		province, err := env.Prompt.Input(ctx, prompt.InputConfig{
			Message: "Province / State / Region",
			Default: state.GetString(store, key(sufProvince), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufProvince), strings.TrimSpace(province))
	}

	postal, err := env.Prompt.Input(ctx, prompt.InputConfig{
		Message: "Postal Code",
		Default: state.GetString(store, key(sufPostal), ""),
	})
	if err != nil {
		return err
	}
	store.Set(key(sufPostal), strings.TrimSpace(postal))
	return nil
}

func (a *AddressComponent) Validate(env *forms.Env, ns string, cfg forms.ComponentConfig) ([]string, error) {
	c, err := addressConfig(cfg)
	if err != nil {
		return nil, err
	}
	store := env.Store
	key := func(suffix string) string { return state.InstKey(ns, c.InstanceID, suffix) }

	country := state.GetString(store, key(sufCountry), "")
	line1 := state.GetString(store, key(sufLine1), "")
	city := state.GetString(store, key(sufCity), "")
	province := state.GetString(store, key(sufProvince), "")
	postal := state.GetString(store, key(sufPostal), "")

	blank := country == "" && line1 == "" && city == "" && postal == ""
	if c.Optional && blank {
		return nil, nil
	}

	var findings []string
	if country == "" {
		findings = append(findings, "Country is required.")
	}
	if line1 == "" {
		findings = append(findings, "Street Address is required.")
	}
	if city == "" {
		findings = append(findings, "City is required.")
	}
	if country == lists.SentinelCountry && province == "" {
		findings = append(findings, "Province is required for "+lists.SentinelCountry+".")
	}

	switch {
	case postal == "":
		findings = append(findings, "Postal Code is required.")
	case country == lists.SentinelCountry && !isPostal4(postal):
		findings = append(findings, "Postal Code must be 4 digits.")
	case country != lists.SentinelCountry && len(postal) > 10:
		findings = append(findings, "Postal Code must be at most 10 characters.")
	}
	return findings, nil
}

func (a *AddressComponent) Serialize(env *forms.Env, ns string, cfg forms.ComponentConfig) (*forms.Payload, []forms.Upload, error) {
	c, err := addressConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	store := env.Store
	key := func(suffix string) string { return state.InstKey(ns, c.InstanceID, suffix) }

	country := state.GetString(store, key(sufCountry), "")
	province := state.GetString(store, key(sufProvince), "")
	if country != "" && country != lists.SentinelCountry && province == "" {
		province = lists.ProvinceOther
	}

	fields := forms.NewFields()
	fields.Set("Street Address", state.GetString(store, key(sufLine1), ""))
	fields.Set("Address Line 2", state.GetString(store, key(sufLine2), ""))
	fields.Set("Suburb", state.GetString(store, key(sufSuburb), ""))
	fields.Set("City", state.GetString(store, key(sufCity), ""))
	fields.Set("Province", province)
	fields.Set("Postal Code", state.GetString(store, key(sufPostal), ""))
	fields.Set("Country", country)
	return forms.FlatPayload(fields), nil, nil
}

func isPostal4(s string) bool {
	if len(s) != 4 {
		return false
	}
	return DigitsOnly(s) == s
}
