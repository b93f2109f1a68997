package components

import (
	"context"
	"strings"
	"testing"

	"github.com/formsmith/onboard/pkg/forms"
	"github.com/formsmith/onboard/pkg/lists"
	"github.com/formsmith/onboard/pkg/prompt"
	"github.com/formsmith/onboard/pkg/state"
)

func componentEnv(driver prompt.Driver) *forms.Env {
	return &forms.Env{
		Store:  state.NewMemoryStore(),
		Prompt: driver,
		Lists:  lists.MustDefault(),
	}
}

func setAddress(store state.Store, ns, instance, country, line1, city, province, postal string) {
	store.Set(state.InstKey(ns, instance, "country"), country)
	store.Set(state.InstKey(ns, instance, "line1"), line1)
	store.Set(state.InstKey(ns, instance, "city"), city)
	store.Set(state.InstKey(ns, instance, "province"), province)
	store.Set(state.InstKey(ns, instance, "postal_code"), postal)
}

func TestAddressPostalCodeByCountry(t *testing.T) {
	comp := &AddressComponent{}
	cfg := &AddressConfig{InstanceID: "physical_address"}

	tests := []struct {
		name    string
		country string
		postal  string
		wantSub string
	}{
		{"sa four digits ok", "South Africa", "1234", ""},
		{"sa rejects letters", "South Africa", "12a4", "must be 4 digits"},
		{"sa rejects five digits", "South Africa", "12345", "must be 4 digits"},
		{"foreign freeform ok", "Kenya", "00100", ""},
		{"foreign ten characters ok", "Kenya", "ABC-123456", ""},
		{"foreign rejects eleven characters", "Kenya", "12345678901", "at most 10 characters"},
		{"empty is required", "Kenya", "", "Postal Code is required."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := componentEnv(nil)
			setAddress(env.Store, "company", "physical_address", tc.country, "1 Main Rd", "Nairobi", "Gauteng", tc.postal)

			findings, err := comp.Validate(env, "company", cfg)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if tc.wantSub == "" {
				if len(findings) != 0 {
					t.Fatalf("unexpected findings: %v", findings)
				}
				return
			}
			found := false
			for _, f := range findings {
				if strings.Contains(f, tc.wantSub) {
					found = true
				}
			}
			if !found {
				t.Fatalf("findings %v missing %q", findings, tc.wantSub)
			}
		})
	}
}

func TestAddressProvinceRequiredForSentinelCountry(t *testing.T) {
	comp := &AddressComponent{}
	cfg := &AddressConfig{InstanceID: "physical_address"}
	env := componentEnv(nil)
	setAddress(env.Store, "company", "physical_address", lists.SentinelCountry, "12 Long St", "Cape Town", "", "8001")

	findings, err := comp.Validate(env, "company", cfg)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(findings) != 1 || !strings.Contains(findings[0], "Province is required for South Africa") {
		t.Fatalf("got %v", findings)
	}

	env.Store.Set(state.InstKey("company", "physical_address", "province"), "Western Cape")
	findings, err = comp.Validate(env, "company", cfg)
	if err != nil || len(findings) != 0 {
		t.Fatalf("province set should validate, got %v, %v", findings, err)
	}
}

func TestAddressRequiredFields(t *testing.T) {
	comp := &AddressComponent{}
	cfg := &AddressConfig{InstanceID: "physical_address"}
	env := componentEnv(nil)

	findings, err := comp.Validate(env, "company", cfg)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := []string{
		"Country is required.",
		"Street Address is required.",
		"City is required.",
		"Postal Code is required.",
	}
	if len(findings) != len(want) {
		t.Fatalf("got %v, want %v", findings, want)
	}
}

func TestAddressOptionalBlankIsClean(t *testing.T) {
	comp := &AddressComponent{}
	cfg := &AddressConfig{InstanceID: "postal_address", Optional: true}
	env := componentEnv(nil)

	findings, err := comp.Validate(env, "company", cfg)
	if err != nil || len(findings) != 0 {
		t.Fatalf("blank optional address: got %v, %v", findings, err)
	}

	// Partially captured optional addresses still get checked.
	env.Store.Set(state.InstKey("company", "postal_address", "line1"), "1 Main Rd")
	findings, err = comp.Validate(env, "company", cfg)
	if err != nil || len(findings) == 0 {
		t.Fatalf("partial optional address should have findings, got %v, %v", findings, err)
	}
}

func TestAddressRenderAndSerialize(t *testing.T) {
	comp := &AddressComponent{}
	cfg := &AddressConfig{InstanceID: "physical_address"}
	script := prompt.NewScript(
		"South Africa", // country
		"12 Long St",   // street
		"",             // line 2
		"Gardens",      // suburb
		"Cape Town",    // city
		"Western Cape", // province
		"8001",         // postal
	)
	env := componentEnv(script)

	if err := comp.Render(context.Background(), env, "company", cfg); err != nil {
		t.Fatalf("render: %v", err)
	}
	findings, err := comp.Validate(env, "company", cfg)
	if err != nil || len(findings) != 0 {
		t.Fatalf("rendered address should validate, got %v, %v", findings, err)
	}

	payload, _, err := comp.Serialize(env, "company", cfg)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if payload.Flat == nil {
		t.Fatal("address payload must be flat")
	}
	if v, _ := payload.Flat.Get("City"); v != "Cape Town" {
		t.Fatalf("city: got %v", v)
	}
	if v, _ := payload.Flat.Get("Province"); v != "Western Cape" {
		t.Fatalf("province: got %v", v)
	}
}

func TestAddressForeignProvinceDefaultsToOther(t *testing.T) {
	comp := &AddressComponent{}
	cfg := &AddressConfig{InstanceID: "physical_address"}
	env := componentEnv(nil)
	setAddress(env.Store, "company", "physical_address", "Kenya", "1 Main Rd", "Nairobi", "", "00100")

	payload, _, err := comp.Serialize(env, "company", cfg)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if v, _ := payload.Flat.Get("Province"); v != lists.ProvinceOther {
		t.Fatalf("province: got %v, want %q", v, lists.ProvinceOther)
	}
}
