package forms

import (
	"strings"
	"testing"
)

type fakeConfig struct {
	instance string
	checkErr error
}

func (c *fakeConfig) Instance() string { return c.instance }
func (c *fakeConfig) Check() error     { return c.checkErr }

func validSpec() *FormSpec {
	return &FormSpec{
		Name:  "company",
		Title: "Company Onboarding",
		Sections: []Section{
			{
				Title: "Entity Details",
				Fields: []Field{
					{ID: "entity_name", Label: "Entity Name", Kind: KindText, Required: true},
					{ID: "entity_type", Label: "Entity Type", Kind: KindSelect, Options: []string{"Company", "Trust"}},
				},
			},
			{
				Title:       "Physical Address",
				ComponentID: "address",
				Config:      &fakeConfig{instance: "physical_address"},
			},
		},
	}
}

func TestSpecCheckAcceptsValidSpec(t *testing.T) {
	if err := validSpec().Check(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSpecCheckRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FormSpec)
		wantSub string
	}{
		{
			name:    "empty name",
			mutate:  func(s *FormSpec) { s.Name = " " },
			wantSub: "name is required",
		},
		{
			name: "duplicate section title",
			mutate: func(s *FormSpec) {
				s.Sections[1].Title = s.Sections[0].Title
			},
			wantSub: "duplicate section title",
		},
		{
			name: "fields and component on one section",
			mutate: func(s *FormSpec) {
				s.Sections[0].ComponentID = "address"
				s.Sections[0].Config = &fakeConfig{instance: "x"}
			},
			wantSub: "exactly one of fields or component",
		},
		{
			name:    "component without config",
			mutate:  func(s *FormSpec) { s.Sections[1].Config = nil },
			wantSub: "no config",
		},
		{
			name: "component config without instance",
			mutate: func(s *FormSpec) {
				s.Sections[1].Config = &fakeConfig{instance: "  "}
			},
			wantSub: "no instance id",
		},
		{
			name: "duplicate field id",
			mutate: func(s *FormSpec) {
				s.Sections[0].Fields[1].ID = s.Sections[0].Fields[0].ID
			},
			wantSub: "duplicate field id",
		},
		{
			name: "select without options",
			mutate: func(s *FormSpec) {
				s.Sections[0].Fields[1].Options = nil
			},
			wantSub: "no options",
		},
		{
			name: "unknown kind",
			mutate: func(s *FormSpec) {
				s.Sections[0].Fields[0].Kind = Kind("slider")
			},
			wantSub: "unknown kind",
		},
		{
			name: "mismatched descriptions",
			mutate: func(s *FormSpec) {
				s.Sections[0].Fields[1].Descriptions = []string{"only one"}
			},
			wantSub: "descriptions do not match options",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := validSpec()
			tc.mutate(spec)
			err := spec.Check()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestPayloadCheck(t *testing.T) {
	if err := FlatPayload(NewFields()).Check(); err != nil {
		t.Fatalf("flat payload: %v", err)
	}
	if err := RepeatPayload(0, nil).Check(); err != nil {
		t.Fatalf("repeat payload: %v", err)
	}
	if err := (&Payload{}).Check(); err == nil {
		t.Fatal("empty payload should fail")
	}
	both := &Payload{Flat: NewFields(), Rep: &Repeat{}}
	if err := both.Check(); err == nil {
		t.Fatal("payload with both arms should fail")
	}
}

func TestFieldsPreserveInsertionOrder(t *testing.T) {
	fields := NewFields()
	fields.Set("Full Name", "John Smith")
	fields.Set("Role", "Director")
	fields.Set("Full Name", "Jane Smith")

	keys := fields.Keys()
	if len(keys) != 2 || keys[0] != "Full Name" || keys[1] != "Role" {
		t.Fatalf("unexpected key order: %v", keys)
	}
	if v, _ := fields.Get("Full Name"); v != "Jane Smith" {
		t.Fatalf("re-set should replace value, got %v", v)
	}
}

func TestAnswersKeepSectionOrder(t *testing.T) {
	answers := NewAnswers("company", "Company Onboarding")
	answers.Add("Entity Details", FlatPayload(NewFields()))
	answers.Add("Directors", RepeatPayload(0, nil))
	answers.Add("Entity Details", FlatPayload(NewFields()))

	titles := answers.Titles()
	if len(titles) != 2 || titles[0] != "Entity Details" || titles[1] != "Directors" {
		t.Fatalf("unexpected title order: %v", titles)
	}
}
