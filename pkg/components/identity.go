package components

import (
	"regexp"
	"strings"
)

// ID document types offered for natural persons.
const (
	IDTypeSAID            = "SA ID Number"
	IDTypeForeignID       = "Foreign ID Number"
	IDTypeForeignPassport = "Foreign Passport Number"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether s looks like a deliverable address. The check is
// deliberately loose; the mail server is the real authority.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// DigitsOnly strips everything but ASCII digits.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidSAID reports whether s is a structurally valid 13-digit South African
// ID number: digits only, a plausible date prefix and a Luhn check digit.
func ValidSAID(s string) bool {
	s = DigitsOnly(strings.TrimSpace(s))
	if len(s) != 13 {
		return false
	}
	month := (int(s[2]-'0') * 10) + int(s[3]-'0')
	day := (int(s[4]-'0') * 10) + int(s[5]-'0')
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	return luhnOK(s)
}

func luhnOK(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ValidIDNumber applies the format rule for the given ID type. Foreign IDs
// and passports only need a non-trivial length.
func ValidIDNumber(idType, value string) bool {
	value = strings.TrimSpace(value)
	switch idType {
	case IDTypeSAID:
		return ValidSAID(value)
	default:
		return len(value) >= 5
	}
}
