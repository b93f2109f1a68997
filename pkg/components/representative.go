package components

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/formsmith/onboard/pkg/forms"
	"github.com/formsmith/onboard/pkg/lists"
	"github.com/formsmith/onboard/pkg/prompt"
	"github.com/formsmith/onboard/pkg/state"
)

// RepresentativeConfig configures the authorised-representative block: the
// single natural person signing the onboarding on the entity's behalf.
type RepresentativeConfig struct {
	InstanceID string `yaml:"instance"`
}

func (c *RepresentativeConfig) Instance() string { return c.InstanceID }

func (c *RepresentativeConfig) Check() error {
	if strings.TrimSpace(c.InstanceID) == "" {
		return fmt.Errorf("components: representative config requires an instance id")
	}
	return nil
}

// RepresentativeComponent captures the authorised representative: identity,
// capacity, and contact details. Unlike the persons repeater this is always
// exactly one record.
type RepresentativeComponent struct{}

const (
	sufFullName = "full_name"
	sufCapacity = "capacity"
	sufGender   = "gender"
	sufMarital  = "marital_status"
)

func representativeConfig(cfg forms.ComponentConfig) (*RepresentativeConfig, error) {
	c, ok := cfg.(*RepresentativeConfig)
	if !ok {
		return nil, fmt.Errorf("components: representative got config type %T", cfg)
	}
	return c, nil
}

func (r *RepresentativeComponent) Render(ctx context.Context, env *forms.Env, ns string, cfg forms.ComponentConfig) error {
	c, err := representativeConfig(cfg)
	if err != nil {
		return err
	}
	store := env.Store
	key := func(suffix string) string { return state.InstKey(ns, c.InstanceID, suffix) }

	title, err := env.Prompt.Select(ctx, prompt.SelectConfig{
		Message: "Title",
		Options: env.Lists.Titles(false),
		Default: state.GetString(store, key(sufPTitle), ""),
	})
	if err != nil {
		return err
	}
	store.Set(key(sufPTitle), title)

	gender, err := env.Prompt.Select(ctx, prompt.SelectConfig{
		Message: "Gender",
		Options: env.Lists.Genders(true),
		Default: state.GetString(store, key(sufGender), ""),
	})
	if err != nil {
		return err
	}
	store.Set(key(sufGender), gender)

	marital, err := env.Prompt.Select(ctx, prompt.SelectConfig{
		Message: "Marital Status",
		Options: env.Lists.MaritalStatuses(true),
		Default: state.GetString(store, key(sufMarital), ""),
	})
	if err != nil {
		return err
	}
	store.Set(key(sufMarital), marital)

	for _, in := range []struct{ suffix, message string }{
		{sufFullName, "Full Name"},
		{sufCapacity, "Capacity (e.g. Director, Trustee)"},
	} {
		out, err := env.Prompt.Input(ctx, prompt.InputConfig{
			Message: in.message,
			Default: state.GetString(store, key(in.suffix), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(in.suffix), strings.TrimSpace(out))
	}

	idType, err := env.Prompt.Select(ctx, prompt.SelectConfig{
		Message: "ID Type",
		Options: env.Lists.IDTypes(false),
		Default: state.GetString(store, key(sufIDType), IDTypeSAID),
	})
	if err != nil {
		return err
	}
	store.Set(key(sufIDType), idType)

	idNumber, err := env.Prompt.Input(ctx, prompt.InputConfig{
		Message: idType,
		Default: state.GetString(store, key(sufIDNumber), ""),
	})
	if err != nil {
		return err
	}
	store.Set(key(sufIDNumber), strings.TrimSpace(idNumber))

	dob, err := env.Prompt.Date(ctx, prompt.DateConfig{
		Message: "Date of Birth",
		Default: state.GetString(store, key(sufDateOfBirth), ""),
		Max:     time.Now().Format(prompt.DateLayout),
	})
	if err != nil {
		return err
	}
	store.Set(key(sufDateOfBirth), dob)

	email, err := env.Prompt.Input(ctx, prompt.InputConfig{
		Message: "Email Address",
		Default: state.GetString(store, key(sufEmail), ""),
	})
	if err != nil {
		return err
	}
	store.Set(key(sufEmail), strings.TrimSpace(email))

	dial, err := env.Prompt.Select(ctx, prompt.SelectConfig{
		Message: "Contact Number dialing code",
		Options: env.Lists.DialCodes(),
		Default: state.GetString(store, key(sufPhoneDial), lists.SentinelDialCode),
	})
	if err != nil {
		return err
	}
	store.Set(key(sufPhoneDial), dial)

	number, err := env.Prompt.Input(ctx, prompt.InputConfig{
		Message: "Contact Number",
		Default: state.GetString(store, key(sufPhoneNumber), ""),
		Help:    "Digits only, without the dialing code.",
	})
	if err != nil {
		return err
	}
	store.Set(key(sufPhoneNumber), strings.TrimSpace(number))
	return nil
}

func (r *RepresentativeComponent) Validate(env *forms.Env, ns string, cfg forms.ComponentConfig) ([]string, error) {
	c, err := representativeConfig(cfg)
	if err != nil {
		return nil, err
	}
	store := env.Store
	key := func(suffix string) string { return state.InstKey(ns, c.InstanceID, suffix) }

	var findings []string
	if state.GetString(store, key(sufFullName), "") == "" {
		findings = append(findings, "Full Name is required.")
	}
	if state.GetString(store, key(sufCapacity), "") == "" {
		findings = append(findings, "Capacity is required.")
	}

	idType := state.GetString(store, key(sufIDType), "")
	idNumber := state.GetString(store, key(sufIDNumber), "")
	switch {
	case idType == "":
		findings = append(findings, "ID Type is required.")
	case idNumber == "":
		findings = append(findings, idType+" is required.")
	case !ValidIDNumber(idType, idNumber):
		if idType == IDTypeSAID {
			findings = append(findings, "SA ID Number is not a valid 13-digit ID number.")
		} else {
			findings = append(findings, idType+" is too short.")
		}
	}

	dob := state.GetString(store, key(sufDateOfBirth), "")
	switch {
	case dob == "":
		findings = append(findings, "Date of Birth is required.")
	default:
		if t, err := time.Parse(prompt.DateLayout, dob); err != nil {
			findings = append(findings, "Date of Birth must be a valid date in YYYY/MM/DD format.")
		} else if t.After(time.Now().AddDate(-18, 0, 0)) {
			findings = append(findings, "The authorised representative must be at least 18 years old.")
		}
	}

	email := state.GetString(store, key(sufEmail), "")
	switch {
	case email == "":
		findings = append(findings, "Email Address is required.")
	case !ValidEmail(email):
		findings = append(findings, "Email Address is not a valid email address.")
	}

	dial := state.GetString(store, key(sufPhoneDial), "")
	number := state.GetString(store, key(sufPhoneNumber), "")
	if number == "" {
		findings = append(findings, "Contact Number is required.")
	} else if finding := CheckPhone(dial, number); finding != "" {
		findings = append(findings, "Contact Number "+finding)
	}
	return findings, nil
}

func (r *RepresentativeComponent) Serialize(env *forms.Env, ns string, cfg forms.ComponentConfig) (*forms.Payload, []forms.Upload, error) {
	c, err := representativeConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	store := env.Store
	key := func(suffix string) string { return state.InstKey(ns, c.InstanceID, suffix) }

	fields := forms.NewFields()
	fields.Set("Title", state.GetString(store, key(sufPTitle), ""))
	fields.Set("Gender", state.GetString(store, key(sufGender), ""))
	fields.Set("Marital Status", state.GetString(store, key(sufMarital), ""))
	fields.Set("Full Name", state.GetString(store, key(sufFullName), ""))
	fields.Set("Capacity", state.GetString(store, key(sufCapacity), ""))
	fields.Set("ID Type", state.GetString(store, key(sufIDType), ""))
	fields.Set("ID Number", state.GetString(store, key(sufIDNumber), ""))
	fields.Set("Date of Birth", state.GetString(store, key(sufDateOfBirth), ""))
	fields.Set("Email Address", state.GetString(store, key(sufEmail), ""))
	fields.Set("Contact Number", FormatPhone(
		state.GetString(store, key(sufPhoneDial), ""),
		state.GetString(store, key(sufPhoneNumber), ""),
	))
	return forms.FlatPayload(fields), nil, nil
}
