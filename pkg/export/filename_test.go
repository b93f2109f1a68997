package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/formsmith/onboard/pkg/state"
)

func TestAttachmentFilenameContract(t *testing.T) {
	a := Attachment{
		File:         &state.File{Name: "scan of id.PDF"},
		Entity:       "Acme Corp",
		Form:         "Company",
		Section:      "Company Directors",
		Person:       "John Smith",
		PersonRef:    "Director 1",
		DocumentType: "SA ID Document",
	}
	assert.Equal(t, "Acme_Corp_Company_Company_Directors_John_Smith_Director_1_SA_ID_Document.pdf", a.Filename())
}

func TestAttachmentFilenameFallbacks(t *testing.T) {
	a := Attachment{File: &state.File{Name: "noextension"}}
	assert.Equal(t, "Document.bin", a.Filename())

	a = Attachment{
		File:   &state.File{Name: "x.jpg"},
		Entity: "???", // sanitizes to nothing
	}
	assert.Equal(t, "Document.jpg", a.Filename())
}

func TestAttachmentFilenameSanitizesHostileParts(t *testing.T) {
	a := Attachment{
		File:         &state.File{Name: "x.pdf"},
		Entity:       "../../etc/passwd",
		Section:      "A  B\tC",
		DocumentType: "Proof (of) Address!",
	}
	name := a.Filename()
	assert.Equal(t, "etc_passwd_A_B_C_Proof_of_Address.pdf", name)
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "..")
}

func TestAttachmentFilenameCapsLength(t *testing.T) {
	a := Attachment{
		File:   &state.File{Name: "x.pdf"},
		Entity: strings.Repeat("VeryLongEntityName", 30),
	}
	name := a.Filename()
	assert.LessOrEqual(t, len(name), maxFilenameLen+len(".pdf"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))
}

func TestDocumentTypeForID(t *testing.T) {
	assert.Equal(t, "SA ID Document", DocumentTypeForID("SA ID Number"))
	assert.Equal(t, "Foreign Passport Document", DocumentTypeForID("Foreign Passport Number"))
	assert.Equal(t, "ID Document", DocumentTypeForID("something else"))
}
