// Package export turns a serialized submission into its outward-facing
// artifacts: attachment filenames, a CSV table, a PDF document and an HTML
// summary. Everything here is deterministic over the same Answers so repeated
// exports are byte-identical.
package export

import (
	"strings"

	"github.com/formsmith/onboard/pkg/state"
)

// maxFilenameLen caps the generated stem so filesystems and mail gateways
// never truncate for us.
const maxFilenameLen = 200

// Attachment pairs an uploaded file with the context needed to name it in an
// outgoing email: whose document it is and which part of the form it came
// from.
type Attachment struct {
	File *state.File

	Entity       string // entity name, e.g. "Acme Corp"
	Form         string // form title short name, e.g. "Company"
	Section      string // originating section, e.g. "Company Directors"
	Person       string // person name when the upload belongs to a record
	PersonRef    string // positional reference, e.g. "Director 1"
	DocumentType string // e.g. "SA ID Document"
}

// Filename builds the sanitized attachment name. Every contextual part is
// reduced to [A-Za-z0-9_], empty parts are skipped, the stem is capped at 200
// characters and the extension comes from the uploaded file ("bin" when it
// has none). A missing document type falls back to "Document".
func (a Attachment) Filename() string {
	docType := a.DocumentType
	if strings.TrimSpace(docType) == "" {
		docType = "Document"
	}

	parts := make([]string, 0, 6)
	for _, raw := range []string{a.Entity, a.Form, a.Section, a.Person, a.PersonRef, docType} {
		if p := sanitizePart(raw); p != "" {
			parts = append(parts, p)
		}
	}

	stem := strings.Join(parts, "_")
	if stem == "" {
		stem = "Document"
	}
	if len(stem) > maxFilenameLen {
		stem = strings.Trim(stem[:maxFilenameLen], "_")
	}

	ext := a.File.Ext()
	if ext == "" {
		ext = "bin"
	}
	return stem + "." + ext
}

// sanitizePart maps a free-text part onto the filename alphabet: runs of
// anything outside [A-Za-z0-9] collapse to single underscores.
func sanitizePart(s string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}

// DocumentTypeForID maps a stored ID type to its attachment document type.
func DocumentTypeForID(idType string) string {
	switch idType {
	case "SA ID Number":
		return "SA ID Document"
	case "Foreign ID Number":
		return "Foreign ID Document"
	case "Foreign Passport Number":
		return "Foreign Passport Document"
	default:
		return "ID Document"
	}
}
