package submit

import (
	"github.com/formsmith/onboard/pkg/export"
	"github.com/formsmith/onboard/pkg/forms"
)

// CollectUploads turns the uploads gathered during serialization into named
// attachments. Encounter order is preserved: section order first, record
// order within a section, so the attachment list is stable across runs.
func CollectUploads(uploads []forms.Upload, entity, form string) []export.Attachment {
	out := make([]export.Attachment, 0, len(uploads))
	for _, up := range uploads {
		out = append(out, export.Attachment{
			File:         up.File,
			Entity:       entity,
			Form:         form,
			Section:      up.Section,
			Person:       up.Person,
			PersonRef:    up.PersonRef,
			DocumentType: up.DocumentType,
		})
	}
	return out
}
