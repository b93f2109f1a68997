package components

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/formsmith/onboard/pkg/prompt"
	"github.com/formsmith/onboard/pkg/state"
)

func TestRepresentativeValidateEmpty(t *testing.T) {
	comp := &RepresentativeComponent{}
	cfg := &RepresentativeConfig{InstanceID: "authorised_representative"}
	env := componentEnv(nil)

	findings, err := comp.Validate(env, "company", cfg)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	joined := strings.Join(findings, " | ")
	for _, want := range []string{
		"Full Name is required.",
		"Capacity is required.",
		"ID Type is required.",
		"Date of Birth is required.",
		"Email Address is required.",
		"Contact Number is required.",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("findings %v missing %q", findings, want)
		}
	}
}

func TestRepresentativeRenderRoundTrip(t *testing.T) {
	comp := &RepresentativeComponent{}
	cfg := &RepresentativeConfig{InstanceID: "authorised_representative"}
	script := prompt.NewScript(
		"Mr",
		"Male",
		"Married",
		"John Smith",
		"Director",
		IDTypeSAID,
		validSAID,
		"1980/01/01",
		"john@example.com",
		"+27",
		"825551234",
	)
	env := componentEnv(script)
	ns := "company"

	if err := comp.Render(context.Background(), env, ns, cfg); err != nil {
		t.Fatalf("render: %v", err)
	}
	findings, err := comp.Validate(env, ns, cfg)
	if err != nil || len(findings) != 0 {
		t.Fatalf("rendered representative should validate, got %v, %v", findings, err)
	}

	payload, _, err := comp.Serialize(env, ns, cfg)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if v, _ := payload.Flat.Get("Full Name"); v != "John Smith" {
		t.Fatalf("full name: got %v", v)
	}
	if v, _ := payload.Flat.Get("Contact Number"); v != "+27 825551234" {
		t.Fatalf("contact number: got %v", v)
	}
}

func TestRepresentativeRejectsBadID(t *testing.T) {
	comp := &RepresentativeComponent{}
	cfg := &RepresentativeConfig{InstanceID: "authorised_representative"}
	env := componentEnv(nil)
	ns := "company"
	key := func(suffix string) string { return state.InstKey(ns, "authorised_representative", suffix) }

	env.Store.Set(key("full_name"), "John Smith")
	env.Store.Set(key("capacity"), "Director")
	env.Store.Set(key("id_type"), IDTypeSAID)
	env.Store.Set(key("id_number"), "8001015009088")
	env.Store.Set(key("date_of_birth"), "1980/01/01")
	env.Store.Set(key("email"), "john@example.com")
	env.Store.Set(key("phone_dial"), "+27")
	env.Store.Set(key("phone_number"), "825551234")

	findings, err := comp.Validate(env, ns, cfg)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(findings) != 1 || !strings.Contains(findings[0], "not a valid 13-digit ID number") {
		t.Fatalf("got %v", findings)
	}
}

func TestRepresentativeMustBeAnAdult(t *testing.T) {
	comp := &RepresentativeComponent{}
	cfg := &RepresentativeConfig{InstanceID: "authorised_representative"}
	env := componentEnv(nil)
	ns := "company"
	key := func(suffix string) string { return state.InstKey(ns, "authorised_representative", suffix) }

	env.Store.Set(key("full_name"), "Jo Young")
	env.Store.Set(key("capacity"), "Director")
	env.Store.Set(key("id_type"), IDTypeForeignID)
	env.Store.Set(key("id_number"), "A1234567")
	env.Store.Set(key("date_of_birth"), time.Now().AddDate(-17, 0, 0).Format(prompt.DateLayout))
	env.Store.Set(key("email"), "jo@example.com")
	env.Store.Set(key("phone_dial"), "+27")
	env.Store.Set(key("phone_number"), "825551234")

	findings, err := comp.Validate(env, ns, cfg)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(findings) != 1 || !strings.Contains(findings[0], "at least 18 years old") {
		t.Fatalf("got %v", findings)
	}
}
