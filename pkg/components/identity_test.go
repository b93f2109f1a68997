package components

import "testing"

// 8001015009087 is the well-known structurally valid SA ID test number.
const validSAID = "8001015009087"

func TestValidSAID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"valid", validSAID, true},
		{"valid with spaces", "800101 5009087", true},
		{"wrong check digit", "8001015009088", false},
		{"too short", "800101500908", false},
		{"too long", "80010150090871", false},
		{"impossible month", "8013015009087", false},
		{"impossible day", "8001325009087", false},
		{"letters", "80010150090a7", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidSAID(tc.id); got != tc.want {
				t.Fatalf("ValidSAID(%q) = %v, want %v", tc.id, got, tc.want)
			}
		})
	}
}

func TestValidIDNumberByType(t *testing.T) {
	if !ValidIDNumber(IDTypeSAID, validSAID) {
		t.Fatal("valid SA ID rejected")
	}
	if ValidIDNumber(IDTypeSAID, "12345") {
		t.Fatal("short SA ID accepted")
	}
	if !ValidIDNumber(IDTypeForeignPassport, "A12345") {
		t.Fatal("plausible passport rejected")
	}
	if ValidIDNumber(IDTypeForeignID, "12") {
		t.Fatal("trivial foreign ID accepted")
	}
}

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"a@b.co", "john.smith@example.org", " padded@example.com "} {
		if !ValidEmail(ok) {
			t.Fatalf("rejected valid email %q", ok)
		}
	}
	for _, bad := range []string{"", "plain", "a@b", "a b@c.d", "@example.com"} {
		if ValidEmail(bad) {
			t.Fatalf("accepted invalid email %q", bad)
		}
	}
}

func TestValidGIIN(t *testing.T) {
	if !ValidGIIN("98Q96B.00000.LE.250") {
		t.Fatal("rejected valid GIIN")
	}
	if !ValidGIIN("98q96b.00000.le.250") {
		t.Fatal("GIIN matching should be case-insensitive")
	}
	for _, bad := range []string{"", "98Q96B00000LE250", "98Q96B.00000.LE.25", "98Q96B.00000.LEX.250"} {
		if ValidGIIN(bad) {
			t.Fatalf("accepted invalid GIIN %q", bad)
		}
	}
}

func TestValidUSTIN(t *testing.T) {
	if !ValidUSTIN("123-45-6789") {
		t.Fatal("rejected 9-digit TIN with separators")
	}
	if !ValidUSTIN("12345678901") {
		t.Fatal("rejected 11-digit TIN")
	}
	if ValidUSTIN("12345678") {
		t.Fatal("accepted 8-digit TIN")
	}
	if ValidUSTIN("123456789012") {
		t.Fatal("accepted 12-digit TIN")
	}
}

func TestDigitsOnly(t *testing.T) {
	if got := DigitsOnly("+27 (0)82-555 1234"); got != "270825551234" {
		t.Fatalf("DigitsOnly: got %q", got)
	}
}
