package components

import (
	"strings"
	"testing"

	"github.com/formsmith/onboard/pkg/state"
)

func TestEntitiesRegistrationNumberRules(t *testing.T) {
	comp := &EntitiesComponent{}
	cfg := &EntitiesConfig{InstanceID: "corporate_shareholders", Noun: "Corporate Shareholder"}
	ns := "company"

	tests := []struct {
		name    string
		reg     string
		country string
		wantSub string
	}{
		{"no reg number is fine", "", "", ""},
		{"reg number needs country", "2001/123456/07", "", "Country of Registration is required"},
		{"reg number too short", "ab", "South Africa", "between 3 and 50 characters"},
		{"reg number too long", strings.Repeat("x", 51), "South Africa", "between 3 and 50 characters"},
		{"complete", "2001/123456/07", "South Africa", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := componentEnv(nil)
			env.Store.Set(state.InstKey(ns, "corporate_shareholders", "count"), 1)
			env.Store.Set(state.RepeatKey(ns, "corporate_shareholders", "entity_name", 0), "Holdings Ltd")
			env.Store.Set(state.RepeatKey(ns, "corporate_shareholders", "entity_type", 0), "Company")
			env.Store.Set(state.RepeatKey(ns, "corporate_shareholders", "registration_number", 0), tc.reg)
			env.Store.Set(state.RepeatKey(ns, "corporate_shareholders", "country_of_registration", 0), tc.country)

			findings, err := comp.Validate(env, ns, cfg)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if tc.wantSub == "" {
				if len(findings) != 0 {
					t.Fatalf("unexpected findings: %v", findings)
				}
				return
			}
			joined := strings.Join(findings, " | ")
			if !strings.Contains(joined, tc.wantSub) {
				t.Fatalf("findings %v missing %q", findings, tc.wantSub)
			}
		})
	}
}

func TestEntitiesSerialize(t *testing.T) {
	comp := &EntitiesComponent{}
	cfg := &EntitiesConfig{
		InstanceID: "corporate_shareholders",
		Noun:       "Corporate Shareholder",
		Roles:      []string{"Shareholder"},
	}
	ns := "company"
	env := componentEnv(nil)
	env.Store.Set(state.InstKey(ns, "corporate_shareholders", "count"), 1)
	env.Store.Set(state.RepeatKey(ns, "corporate_shareholders", "entity_name", 0), "Holdings Ltd")
	env.Store.Set(state.RepeatKey(ns, "corporate_shareholders", "entity_type", 0), "Company")
	env.Store.Set(state.RepeatKey(ns, "corporate_shareholders", "registration_number", 0), "2001/123456/07")
	env.Store.Set(state.RepeatKey(ns, "corporate_shareholders", "country_of_registration", 0), "South Africa")
	env.Store.Set(state.RepeatKey(ns, "corporate_shareholders", "role", 0), "Shareholder")

	payload, _, err := comp.Serialize(env, ns, cfg)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if payload.Rep == nil || payload.Rep.Count != 1 {
		t.Fatalf("shape: %+v", payload)
	}
	record := payload.Rep.Records[0]
	if v, _ := record.Get("Entity Name"); v != "Holdings Ltd" {
		t.Fatalf("entity name: got %v", v)
	}
	if v, _ := record.Get("Role"); v != "Shareholder" {
		t.Fatalf("role: got %v", v)
	}
}

func TestEntitiesOwnership(t *testing.T) {
	comp := &EntitiesComponent{}
	cfg := &EntitiesConfig{
		InstanceID:       "corporate_shareholders",
		Noun:             "Corporate Shareholder",
		CollectOwnership: true,
	}
	ns := "company"
	env := componentEnv(nil)
	env.Store.Set(state.InstKey(ns, "corporate_shareholders", "count"), 1)
	env.Store.Set(state.RepeatKey(ns, "corporate_shareholders", "entity_name", 0), "Holdings Ltd")
	env.Store.Set(state.RepeatKey(ns, "corporate_shareholders", "entity_type", 0), "Company")

	findings, err := comp.Validate(env, ns, cfg)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := "Corporate Shareholder 1: Shareholding must be between 0 and 100 percent."
	if !strings.Contains(strings.Join(findings, " | "), want) {
		t.Fatalf("findings %v missing %q", findings, want)
	}

	env.Store.Set(state.RepeatKey(ns, "corporate_shareholders", "ownership_percent", 0), 40)
	findings, err = comp.Validate(env, ns, cfg)
	if err != nil || len(findings) != 0 {
		t.Fatalf("expected clean record, got %v, %v", findings, err)
	}

	payload, _, err := comp.Serialize(env, ns, cfg)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if v, _ := payload.Rep.Records[0].Get("Shareholding"); v != "40%" {
		t.Fatalf("shareholding: got %v", v)
	}
}

func TestEntitiesZeroRecordsSerializeAsEmptyRepeat(t *testing.T) {
	comp := &EntitiesComponent{}
	cfg := &EntitiesConfig{InstanceID: "corporate_shareholders"}
	env := componentEnv(nil)

	payload, _, err := comp.Serialize(env, "company", cfg)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if payload.Rep == nil || payload.Rep.Count != 0 || len(payload.Rep.Records) != 0 {
		t.Fatalf("expected empty repeat, got %+v", payload)
	}
}
