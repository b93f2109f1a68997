package specs

import (
	"github.com/formsmith/onboard/pkg/components"
	"github.com/formsmith/onboard/pkg/forms"
	"github.com/formsmith/onboard/pkg/lists"
)

// ClosedCorporation is the onboarding form for close corporations.
func ClosedCorporation(cat *lists.Catalog) *forms.FormSpec {
	sections := []forms.Section{
		{
			Title:  "Close Corporation Details",
			Fields: entityDetailsFields(cat, true),
			Rules:  []forms.Rule{registrationCountryRule},
		},
	}
	sections = append(sections, addressSections()...)
	sections = append(sections,
		contactSection(cat),
		forms.Section{
			Title:       "Members",
			ComponentID: components.IDNaturalPersons,
			Config: &components.PersonsConfig{
				InstanceID:     "members",
				Noun:           "Member",
				MinCount:       1,
				Roles:          []string{"Member", "Accounting Officer"},
				CollectContact: true,
				CollectUploads: true,
			},
		},
		representativeSection(),
	)
	sections = append(sections, complianceSections()...)
	sections = append(sections, supportingDocumentsSection())

	return &forms.FormSpec{
		Name:     "closed_corporation",
		Title:    "Close Corporation Onboarding",
		Sections: sections,
	}
}
