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

// FATCAConfig configures the FATCA classification block.
type FATCAConfig struct {
	InstanceID string `yaml:"instance"`
}

func (c *FATCAConfig) Instance() string { return c.InstanceID }

func (c *FATCAConfig) Check() error {
	if strings.TrimSpace(c.InstanceID) == "" {
		return fmt.Errorf("components: fatca config requires an instance id")
	}
	return nil
}

// FATCAComponent walks the FATCA classification tree. The top-level
// classification decides which branch fields are live; switching
// classification clears the abandoned branches so no stale answers leak into
// validation or serialization.
type FATCAComponent struct{}

// Store key suffixes for the FATCA tree. SufFATCAClassification and
// SufNFFEType are exported so specs can hang controlling-person triggers off
// them.
const (
	SufFATCAClassification = "classification"
	SufNFFEType            = "nffe_type"
	sufUSPersonType        = "us_person_type"
	sufUSTIN               = "us_tin"
	sufFFICategory         = "ffi_category"
	sufGIIN                = "giin"
	sufSponsorName         = "sponsoring_entity"
)

func fatcaConfig(cfg forms.ComponentConfig) (*FATCAConfig, error) {
	c, ok := cfg.(*FATCAConfig)
	if !ok {
		return nil, fmt.Errorf("components: fatca got config type %T", cfg)
	}
	return c, nil
}

func (f *FATCAComponent) Render(ctx context.Context, env *forms.Env, ns string, cfg forms.ComponentConfig) error {
	c, err := fatcaConfig(cfg)
	if err != nil {
		return err
	}
	store := env.Store
	key := func(suffix string) string { return state.InstKey(ns, c.InstanceID, suffix) }

	opts := env.Lists.FATCAClassifications()
	classification, err := env.Prompt.Select(ctx, prompt.SelectConfig{
		Message:      "FATCA Classification",
		Options:      lists.Codes(opts),
		Descriptions: descriptions(opts),
		Default:      state.GetString(store, key(SufFATCAClassification), ""),
	})
	if err != nil {
		return err
	}
	store.Set(key(SufFATCAClassification), classification)

	if classification != lists.FATCAUSPerson {
		store.Delete(key(sufUSPersonType))
		store.Delete(key(sufUSTIN))
	}
	if classification != lists.FATCAFFI {
		store.Delete(key(sufFFICategory))
		store.Delete(key(sufGIIN))
		store.Delete(key(sufSponsorName))
	}
	if classification != lists.FATCANFFE {
		store.Delete(key(SufNFFEType))
	}

	switch classification {
	case lists.FATCAUSPerson:
		personTypes := env.Lists.USPersonTypes()
		personType, err := env.Prompt.Select(ctx, prompt.SelectConfig{
			Message:      "US Person Type",
			Options:      lists.Codes(personTypes),
			Descriptions: descriptions(personTypes),
			Default:      state.GetString(store, key(sufUSPersonType), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufUSPersonType), personType)

		tin, err := env.Prompt.Input(ctx, prompt.InputConfig{
			Message: "US Tax Identification Number",
			Default: state.GetString(store, key(sufUSTIN), ""),
			Help:    "9 to 11 digits.",
		})
		if err != nil {
			return err
		}
		store.Set(key(sufUSTIN), strings.TrimSpace(tin))

	case lists.FATCAFFI:
		categories := env.Lists.FFICategories()
		category, err := env.Prompt.Select(ctx, prompt.SelectConfig{
			Message:      "FFI Category",
			Options:      lists.Codes(categories),
			Descriptions: descriptions(categories),
			Default:      state.GetString(store, key(sufFFICategory), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufFFICategory), category)

		giin, err := env.Prompt.Input(ctx, prompt.InputConfig{
			Message: "GIIN",
			Default: state.GetString(store, key(sufGIIN), ""),
			Help:    "Format XXXXXX.XXXXX.XX.XXX.",
		})
		if err != nil {
			return err
		}
		store.Set(key(sufGIIN), strings.ToUpper(strings.TrimSpace(giin)))

		if category == lists.FFISponsored {
			sponsor, err := env.Prompt.Input(ctx, prompt.InputConfig{
				Message: "Sponsoring Entity Name",
				Default: state.GetString(store, key(sufSponsorName), ""),
			})
			if err != nil {
				return err
			}
			store.Set(key(sufSponsorName), strings.TrimSpace(sponsor))
		} else {
			store.Delete(key(sufSponsorName))
		}

	case lists.FATCANFFE:
		nffeTypes := env.Lists.NFFETypes()
		nffeType, err := env.Prompt.Select(ctx, prompt.SelectConfig{
			Message:      "NFFE Type",
			Options:      lists.Codes(nffeTypes),
			Descriptions: descriptions(nffeTypes),
			Default:      state.GetString(store, key(SufNFFEType), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(SufNFFEType), nffeType)
	}
	return nil
}

func (f *FATCAComponent) Validate(env *forms.Env, ns string, cfg forms.ComponentConfig) ([]string, error) {
	c, err := fatcaConfig(cfg)
	if err != nil {
		return nil, err
	}
	store := env.Store
	key := func(suffix string) string { return state.InstKey(ns, c.InstanceID, suffix) }

	classification := state.GetString(store, key(SufFATCAClassification), "")
	if classification == "" {
		return []string{"FATCA Classification is required."}, nil
	}

	var findings []string
	switch classification {
	case lists.FATCAUSPerson:
		if state.GetString(store, key(sufUSPersonType), "") == "" {
			findings = append(findings, "US Person Type is required.")
		}
		tin := state.GetString(store, key(sufUSTIN), "")
		switch {
		case tin == "":
			findings = append(findings, "US Tax Identification Number is required.")
		case !ValidUSTIN(tin):
			findings = append(findings, "US Tax Identification Number must be 9 to 11 digits.")
		}

	case lists.FATCAFFI:
		category := state.GetString(store, key(sufFFICategory), "")
		if category == "" {
			findings = append(findings, "FFI Category is required.")
		}
		giin := state.GetString(store, key(sufGIIN), "")
		giinRequired := category == lists.FFIReporting || category == lists.FFIRegisteredDeemed
		switch {
		case giin == "" && giinRequired:
			findings = append(findings, "GIIN is required for the selected FFI category.")
		case giin != "" && !ValidGIIN(giin):
			findings = append(findings, "GIIN must match the format XXXXXX.XXXXX.XX.XXX.")
		}
		if category == lists.FFISponsored && state.GetString(store, key(sufSponsorName), "") == "" {
			findings = append(findings, "Sponsoring Entity Name is required for a sponsored FFI.")
		}

	case lists.FATCANFFE:
		if state.GetString(store, key(SufNFFEType), "") == "" {
			findings = append(findings, "NFFE Type is required.")
		}
	}
	return findings, nil
}

func (f *FATCAComponent) Serialize(env *forms.Env, ns string, cfg forms.ComponentConfig) (*forms.Payload, []forms.Upload, error) {
	c, err := fatcaConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	store := env.Store
	key := func(suffix string) string { return state.InstKey(ns, c.InstanceID, suffix) }

	classification := state.GetString(store, key(SufFATCAClassification), "")
	fields := forms.NewFields()
	fields.Set("FATCA Classification", lists.Describe(env.Lists.FATCAClassifications(), classification))

	switch classification {
	case lists.FATCAUSPerson:
		fields.Set("US Person Type", lists.Describe(env.Lists.USPersonTypes(), state.GetString(store, key(sufUSPersonType), "")))
		fields.Set("US Tax Identification Number", state.GetString(store, key(sufUSTIN), ""))
	case lists.FATCAFFI:
		category := state.GetString(store, key(sufFFICategory), "")
		fields.Set("FFI Category", lists.Describe(env.Lists.FFICategories(), category))
		fields.Set("GIIN", state.GetString(store, key(sufGIIN), ""))
		if category == lists.FFISponsored {
			fields.Set("Sponsoring Entity", state.GetString(store, key(sufSponsorName), ""))
		}
	case lists.FATCANFFE:
		fields.Set("NFFE Type", lists.Describe(env.Lists.NFFETypes(), state.GetString(store, key(SufNFFEType), "")))
	}
	return forms.FlatPayload(fields), nil, nil
}

func descriptions(opts []lists.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Description
	}
	return out
}
