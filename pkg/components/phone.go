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

// PhoneConfig configures one phone capture. Label names the number in
// prompts and findings ("Contact Number", "Mobile Number").
type PhoneConfig struct {
	InstanceID string `yaml:"instance"`
	Label      string `yaml:"label"`
	Optional   bool   `yaml:"optional"`
}

func (c *PhoneConfig) Instance() string { return c.InstanceID }

func (c *PhoneConfig) Check() error {
	if strings.TrimSpace(c.InstanceID) == "" {
		return fmt.Errorf("components: phone config requires an instance id")
	}
	return nil
}

func (c *PhoneConfig) label() string {
	if c.Label != "" {
		return c.Label
	}
	return "Contact Number"
}

// PhoneComponent captures a dialing code and subscriber number. The sentinel
// dialing code gets the strict local rule (exactly nine digits, no leading
// zero); all other codes accept six to fifteen digits.
type PhoneComponent struct{}

const (
	sufDialCode = "dial_code"
	sufNumber   = "number"
)

func phoneConfig(cfg forms.ComponentConfig) (*PhoneConfig, error) {
	c, ok := cfg.(*PhoneConfig)
	if !ok {
		return nil, fmt.Errorf("components: phone got config type %T", cfg)
	}
	return c, nil
}

func (p *PhoneComponent) Render(ctx context.Context, env *forms.Env, ns string, cfg forms.ComponentConfig) error {
	c, err := phoneConfig(cfg)
	if err != nil {
		return err
	}
	store := env.Store
	key := func(suffix string) string { return state.InstKey(ns, c.InstanceID, suffix) }

	dial, err := env.Prompt.Select(ctx, prompt.SelectConfig{
		Message: c.label() + " dialing code",
		Options: env.Lists.DialCodes(),
		Default: state.GetString(store, key(sufDialCode), lists.SentinelDialCode),
	})
	if err != nil {
		return err
	}
	store.Set(key(sufDialCode), dial)

	number, err := env.Prompt.Input(ctx, prompt.InputConfig{
		Message: c.label(),
		Default: state.GetString(store, key(sufNumber), ""),
		Help:    "Digits only, without the dialing code.",
	})
	if err != nil {
		return err
	}
	store.Set(key(sufNumber), strings.TrimSpace(number))
	return nil
}

func (p *PhoneComponent) Validate(env *forms.Env, ns string, cfg forms.ComponentConfig) ([]string, error) {
	c, err := phoneConfig(cfg)
	if err != nil {
		return nil, err
	}
	dial := state.GetString(env.Store, state.InstKey(ns, c.InstanceID, sufDialCode), "")
	number := state.GetString(env.Store, state.InstKey(ns, c.InstanceID, sufNumber), "")

	if number == "" {
		if c.Optional {
			return nil, nil
		}
		return []string{c.label() + " is required."}, nil
	}
	if finding := CheckPhone(dial, number); finding != "" {
		return []string{fmt.Sprintf("%s %s", c.label(), finding)}, nil
	}
	return nil, nil
}

func (p *PhoneComponent) Serialize(env *forms.Env, ns string, cfg forms.ComponentConfig) (*forms.Payload, []forms.Upload, error) {
	c, err := phoneConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	dial := state.GetString(env.Store, state.InstKey(ns, c.InstanceID, sufDialCode), "")
	number := state.GetString(env.Store, state.InstKey(ns, c.InstanceID, sufNumber), "")

	fields := forms.NewFields()
	fields.Set(c.label(), FormatPhone(dial, number))
	return forms.FlatPayload(fields), nil, nil
}

// CheckPhone applies the dialing-code-dependent number rule and returns a
// finding fragment ("must be ...") or "" when the number is acceptable.
func CheckPhone(dial, number string) string {
	digits := DigitsOnly(number)
	if digits != strings.ReplaceAll(strings.TrimSpace(number), " ", "") {
		return "must contain digits only."
	}
	if dial == lists.SentinelDialCode {
		if len(digits) != 9 {
			return "must be exactly 9 digits after the dialing code."
		}
		if digits[0] == '0' {
			return "must not start with 0 after the dialing code."
		}
		return ""
	}
	if len(digits) < 6 || len(digits) > 15 {
		return "must be between 6 and 15 digits."
	}
	return ""
}

// FormatPhone joins a dialing code and subscriber number for display.
func FormatPhone(dial, number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return ""
	}
	if dial == "" {
		return number
	}
	return dial + " " + DigitsOnly(number)
}
