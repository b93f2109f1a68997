package components

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/formsmith/onboard/pkg/forms"
)

func TestDefaultRegistryResolvesEveryBuiltin(t *testing.T) {
	reg := Default()
	want := []string{
		IDAddress, IDControllingPersons, IDCRS, IDFATCA,
		IDNaturalPersons, IDPhone, IDRelatedEntities, IDRepresentative,
	}
	if diff := cmp.Diff(want, reg.IDs()); diff != "" {
		t.Fatalf("registered ids mismatch (-want +got):\n%s", diff)
	}

	for _, id := range want {
		if _, err := reg.Resolve(id); err != nil {
			t.Fatalf("resolve %q: %v", id, err)
		}
		cfg, err := reg.NewConfig(id)
		if err != nil {
			t.Fatalf("new config %q: %v", id, err)
		}
		if cfg == nil {
			t.Fatalf("nil config for %q", id)
		}
	}
}

func TestRegistryUnknownComponent(t *testing.T) {
	reg := Default()
	if _, err := reg.Resolve("widget"); err == nil {
		t.Fatal("expected error for unknown component")
	}
	if _, err := reg.NewConfig("widget"); err == nil {
		t.Fatal("expected error for unknown component config")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := New()
	comp := &AddressComponent{}
	factory := func() forms.ComponentConfig { return &AddressConfig{} }
	if err := reg.Register("address", comp, factory); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := reg.Register("address", comp, factory); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := reg.Register("", comp, factory); err == nil {
		t.Fatal("expected empty id error")
	}
	if err := reg.Register("other", nil, factory); err == nil {
		t.Fatal("expected nil component error")
	}
}
