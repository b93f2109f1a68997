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

func setPerson(store state.Store, ns, instance string, i int, overrides map[string]string) {
	values := map[string]string{
		"title":         "Mr",
		"first_name":    "John",
		"surname":       "Smith",
		"id_type":       IDTypeSAID,
		"id_number":     validSAID,
		"date_of_birth": "1980/01/01",
		"email":         "john@example.com",
		"phone_dial":    "+27",
		"phone_number":  "825551234",
	}
	for k, v := range overrides {
		values[k] = v
	}
	for suffix, value := range values {
		store.Set(state.RepeatKey(ns, instance, suffix, i), value)
	}
	store.Set(state.RepeatKey(ns, instance, "id_document", i),
		[]*state.File{{Name: "id.pdf", Data: []byte("%PDF")}})
}

func fullPersonsConfig() *PersonsConfig {
	return &PersonsConfig{
		InstanceID:     "directors",
		Noun:           "Director",
		MinCount:       1,
		Roles:          []string{"Director", "Shareholder"},
		CollectContact: true,
		CollectUploads: true,
	}
}

func TestPersonsMinCount(t *testing.T) {
	comp := &PersonsComponent{}
	env := componentEnv(nil)

	findings, err := comp.Validate(env, "company", fullPersonsConfig())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(findings) != 1 || !strings.Contains(findings[0], "At least 1 director record(s) are required.") {
		t.Fatalf("got %v", findings)
	}
}

func TestPersonsValidateRecord(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		wantSub   string
	}{
		{"complete record", map[string]string{"role": "Director"}, ""},
		{"missing first name", map[string]string{"role": "Director", "first_name": ""}, "First Name is required."},
		{"bad sa id", map[string]string{"role": "Director", "id_number": "8001015009088"}, "not a valid 13-digit ID number"},
		{"future dob", map[string]string{"role": "Director", "date_of_birth": "2100/01/01"}, "must not be in the future"},
		{"bad email", map[string]string{"role": "Director", "email": "not-an-email"}, "not a valid email address"},
		{"bad phone", map[string]string{"role": "Director", "phone_number": "082555123"}, "must not start with 0"},
		{"missing role", map[string]string{}, "Role is required."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			comp := &PersonsComponent{}
			env := componentEnv(nil)
			env.Store.Set(state.InstKey("company", "directors", "count"), 1)
			setPerson(env.Store, "company", "directors", 0, tc.overrides)

			findings, err := comp.Validate(env, "company", fullPersonsConfig())
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
			if !strings.Contains(joined, "Director 1:") {
				t.Fatalf("findings %v missing record label", findings)
			}
		})
	}
}

func TestPersonsPassportFields(t *testing.T) {
	ns := "company"
	passport := map[string]string{
		"role": "Director", "id_type": IDTypeForeignPassport, "id_number": "P1234567",
	}

	t.Run("missing passport details", func(t *testing.T) {
		comp := &PersonsComponent{}
		env := componentEnv(nil)
		env.Store.Set(state.InstKey(ns, "directors", "count"), 1)
		setPerson(env.Store, ns, "directors", 0, passport)

		findings, err := comp.Validate(env, ns, fullPersonsConfig())
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		joined := strings.Join(findings, " | ")
		for _, want := range []string{
			"Director 1: Passport Issue Country is required.",
			"Director 1: Passport Expiry Date is required.",
		} {
			if !strings.Contains(joined, want) {
				t.Fatalf("findings %v missing %q", findings, want)
			}
		}
	})

	t.Run("expired passport", func(t *testing.T) {
		comp := &PersonsComponent{}
		env := componentEnv(nil)
		env.Store.Set(state.InstKey(ns, "directors", "count"), 1)
		setPerson(env.Store, ns, "directors", 0, passport)
		env.Store.Set(state.RepeatKey(ns, "directors", "passport_country", 0), "Germany")
		env.Store.Set(state.RepeatKey(ns, "directors", "passport_expiry", 0), "2001/01/01")

		findings, err := comp.Validate(env, ns, fullPersonsConfig())
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		want := "Director 1: Passport Expiry Date must be in the future."
		if !strings.Contains(strings.Join(findings, " | "), want) {
			t.Fatalf("findings %v missing %q", findings, want)
		}
	})

	t.Run("valid passport serializes its fields", func(t *testing.T) {
		comp := &PersonsComponent{}
		env := componentEnv(nil)
		env.Store.Set(state.InstKey(ns, "directors", "count"), 1)
		setPerson(env.Store, ns, "directors", 0, passport)
		env.Store.Set(state.RepeatKey(ns, "directors", "passport_country", 0), "Germany")
		env.Store.Set(state.RepeatKey(ns, "directors", "passport_expiry", 0), "2100/01/01")

		findings, err := comp.Validate(env, ns, fullPersonsConfig())
		if err != nil || len(findings) != 0 {
			t.Fatalf("expected clean record, got %v, %v", findings, err)
		}
		payload, _, err := comp.Serialize(env, ns, fullPersonsConfig())
		if err != nil {
			t.Fatalf("serialize: %v", err)
		}
		if v, _ := payload.Rep.Records[0].Get("Passport Issue Country"); v != "Germany" {
			t.Fatalf("passport country: got %v", v)
		}
	})
}

func TestPersonsRenderClearsOrphanedRecords(t *testing.T) {
	comp := &PersonsComponent{}
	cfg := &PersonsConfig{InstanceID: "directors", Noun: "Director", MinCount: 1}
	env := componentEnv(nil)
	ns := "company"

	env.Store.Set(state.InstKey(ns, "directors", "count"), 2)
	env.Store.Set(state.RepeatKey(ns, "directors", "first_name", 0), "John")
	env.Store.Set(state.RepeatKey(ns, "directors", "first_name", 1), "Jane")

	// Re-render with count 1: Title, First Name, Surname, ID Type, ID
	// Number, Date of Birth for the surviving record.
	script := prompt.NewScript(1, "Mr", "John", "Smith", IDTypeSAID, validSAID, "1980/01/01")
	env.Prompt = script
	if err := comp.Render(context.Background(), env, ns, cfg); err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := state.GetInt(env.Store, state.InstKey(ns, "directors", "count"), -1); got != 1 {
		t.Fatalf("count: got %d", got)
	}
	if got := env.Store.Get(state.RepeatKey(ns, "directors", "first_name", 1), nil); got != nil {
		t.Fatalf("orphaned record survived: %v", got)
	}
}

func TestPersonsSerializeRepeatShape(t *testing.T) {
	comp := &PersonsComponent{}
	env := componentEnv(nil)
	env.Store.Set(state.InstKey("company", "directors", "count"), 2)
	setPerson(env.Store, "company", "directors", 0, map[string]string{"role": "Director"})
	setPerson(env.Store, "company", "directors", 1, map[string]string{
		"role": "Shareholder", "first_name": "Jane",
	})

	payload, _, err := comp.Serialize(env, "company", fullPersonsConfig())
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if payload.Rep == nil {
		t.Fatal("persons payload must be repeating")
	}
	if payload.Rep.Count != 2 || len(payload.Rep.Records) != 2 {
		t.Fatalf("shape: count=%d records=%d", payload.Rep.Count, len(payload.Rep.Records))
	}
	if v, _ := payload.Rep.Records[1].Get("First Name"); v != "Jane" {
		t.Fatalf("record 2 first name: got %v", v)
	}
	if v, _ := payload.Rep.Records[0].Get("Contact Number"); v != "+27 825551234" {
		t.Fatalf("record 1 phone: got %v", v)
	}
	if v, _ := payload.Rep.Records[0].Get("ID Document"); v != "id.pdf" {
		t.Fatalf("record 1 upload: got %v", v)
	}
}

func TestPersonsSerializeReturnsUploads(t *testing.T) {
	comp := &PersonsComponent{}
	env := componentEnv(nil)
	env.Store.Set(state.InstKey("company", "directors", "count"), 1)
	setPerson(env.Store, "company", "directors", 0, map[string]string{"role": "Director"})

	_, uploads, err := comp.Serialize(env, "company", fullPersonsConfig())
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if len(uploads) != 1 {
		t.Fatalf("expected one upload, got %d", len(uploads))
	}
	up := uploads[0]
	if up.File == nil || up.File.Name != "id.pdf" {
		t.Fatalf("upload file: %+v", up.File)
	}
	if up.Person != "John Smith" || up.PersonRef != "Director 1" {
		t.Fatalf("upload person context: %+v", up)
	}
	if up.DocumentType != "SA ID Document" {
		t.Fatalf("document type: got %q", up.DocumentType)
	}
}

func TestPersonName(t *testing.T) {
	env := componentEnv(nil)
	setPerson(env.Store, "company", "directors", 0, nil)
	if got := PersonName(env.Store, "company", "directors", 0); got != "John Smith" {
		t.Fatalf("got %q", got)
	}
}

func TestControllingPersonsTriggers(t *testing.T) {
	comp := &ControllingPersonsComponent{Persons: &PersonsComponent{}}
	cfg := &ControllingPersonsConfig{
		InstanceID: "fatca",
		TriggerAny: []KeyEquals{
			{Instance: "fatca", Suffix: SufNFFEType, Value: lists.NFFEPassive},
		},
	}
	env := componentEnv(nil)
	ns := "company"

	// Inactive: no classification stored.
	findings, err := comp.Validate(env, ns, cfg)
	if err != nil || len(findings) != 0 {
		t.Fatalf("inactive block: got %v, %v", findings, err)
	}
	payload, _, err := comp.Serialize(env, ns, cfg)
	if err != nil || payload.Rep == nil || payload.Rep.Count != 0 {
		t.Fatalf("inactive serialize: got %+v, %v", payload, err)
	}

	// Passive NFFE activates the block, which then needs a record.
	env.Store.Set(state.InstKey(ns, "fatca", SufNFFEType), lists.NFFEPassive)
	findings, err = comp.Validate(env, ns, cfg)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(findings) != 1 || !strings.Contains(findings[0], "At least 1 controlling person") {
		t.Fatalf("got %v", findings)
	}
}

func TestControllingPersonsUseDerivedSubInstance(t *testing.T) {
	comp := &ControllingPersonsComponent{Persons: &PersonsComponent{}}
	cfg := &ControllingPersonsConfig{InstanceID: "fatca"}
	env := componentEnv(nil)
	ns := "company"

	sub := "fatca" + ControllingPersonsSuffix
	env.Store.Set(state.InstKey(ns, sub, "count"), 1)
	setPerson(env.Store, ns, sub, 0, nil)

	payload, _, err := comp.Serialize(env, ns, cfg)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if payload.Rep == nil || payload.Rep.Count != 1 {
		t.Fatalf("expected one controlling person, got %+v", payload)
	}
	if v, _ := payload.Rep.Records[0].Get("Surname"); v != "Smith" {
		t.Fatalf("surname: got %v", v)
	}
}

func TestControllingPersonRecordsCarryTaxAndAddress(t *testing.T) {
	comp := &ControllingPersonsComponent{Persons: &PersonsComponent{}}
	cfg := &ControllingPersonsConfig{InstanceID: "crs"}
	env := componentEnv(nil)
	ns := "company"
	sub := "crs" + ControllingPersonsSuffix

	env.Store.Set(state.InstKey(ns, sub, "count"), 1)
	setPerson(env.Store, ns, sub, 0, nil)

	findings, err := comp.Validate(env, ns, cfg)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	joined := strings.Join(findings, " | ")
	for _, want := range []string{
		"Controlling Person 1: Country of Tax Residence is required.",
		"Controlling Person 1: Tax Identification Number status is required.",
		"Controlling Person 1: Street Address is required.",
		"Controlling Person 1: Postal Code is required.",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("findings %v missing %q", findings, want)
		}
	}

	set := func(suffix, value string) {
		env.Store.Set(state.RepeatKey(ns, sub, suffix, 0), value)
	}
	set("tax_residence_country", lists.SentinelCountry)
	set("tin_option", lists.TINHas)
	set("tin", "9012345678")
	set("address_country", lists.SentinelCountry)
	set("address_line1", "12 Long St")
	set("address_city", "Cape Town")
	set("address_postal_code", "8001")

	findings, err = comp.Validate(env, ns, cfg)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(findings) != 1 || !strings.Contains(findings[0], "Province is required for South Africa") {
		t.Fatalf("got %v", findings)
	}

	set("address_province", "Western Cape")
	findings, err = comp.Validate(env, ns, cfg)
	if err != nil || len(findings) != 0 {
		t.Fatalf("complete record should validate, got %v, %v", findings, err)
	}

	payload, _, err := comp.Serialize(env, ns, cfg)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	rec := payload.Rep.Records[0]
	if v, _ := rec.Get("Country of Tax Residence"); v != lists.SentinelCountry {
		t.Fatalf("tax residence: got %v", v)
	}
	if v, _ := rec.Get("Tax Identification Number"); v != "9012345678" {
		t.Fatalf("tin: got %v", v)
	}
	if v, _ := rec.Get("Province"); v != "Western Cape" {
		t.Fatalf("province: got %v", v)
	}
}

func TestControllingPersonForeignAddressProvinceCollapses(t *testing.T) {
	comp := &ControllingPersonsComponent{Persons: &PersonsComponent{}}
	cfg := &ControllingPersonsConfig{InstanceID: "crs"}
	env := componentEnv(nil)
	ns := "company"
	sub := "crs" + ControllingPersonsSuffix

	env.Store.Set(state.InstKey(ns, sub, "count"), 1)
	setPerson(env.Store, ns, sub, 0, nil)
	for suffix, value := range map[string]string{
		"address_country":     "Kenya",
		"address_line1":       "1 Main Rd",
		"address_city":        "Nairobi",
		"address_postal_code": "00100",
	} {
		env.Store.Set(state.RepeatKey(ns, sub, suffix, 0), value)
	}

	payload, _, err := comp.Serialize(env, ns, cfg)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if v, _ := payload.Rep.Records[0].Get("Province"); v != lists.ProvinceOther {
		t.Fatalf("foreign province should collapse to %q, got %v", lists.ProvinceOther, v)
	}
}

var _ forms.SectionComponent = (*PersonsComponent)(nil)
var _ forms.SectionComponent = (*ControllingPersonsComponent)(nil)
