package specs

import (
	"github.com/formsmith/onboard/pkg/components"
	"github.com/formsmith/onboard/pkg/forms"
	"github.com/formsmith/onboard/pkg/lists"
)

// Partnership is the onboarding form for partnerships. Partnerships have no
// registrar, so the registration number stays optional and at least two
// partners are required.
func Partnership(cat *lists.Catalog) *forms.FormSpec {
	sections := []forms.Section{
		{
			Title:  "Partnership Details",
			Fields: entityDetailsFields(cat, false),
			Rules:  []forms.Rule{registrationCountryRule},
		},
	}
	sections = append(sections, addressSections()...)
	sections = append(sections,
		contactSection(cat),
		forms.Section{
			Title:       "Partners",
			ComponentID: components.IDNaturalPersons,
			Config: &components.PersonsConfig{
				InstanceID:     "partners",
				Noun:           "Partner",
				MinCount:       2,
				CollectContact: true,
				CollectUploads: true,
			},
		},
		forms.Section{
			Title:       "Corporate Partners",
			Intro:       "Juristic entities that are partners. Enter 0 if all partners are natural persons.",
			ComponentID: components.IDRelatedEntities,
			Config: &components.EntitiesConfig{
				InstanceID:       "corporate_partners",
				Noun:             "Corporate Partner",
				Roles:            []string{"Partner"},
				CollectOwnership: true,
			},
		},
		representativeSection(),
	)
	sections = append(sections, complianceSections()...)
	sections = append(sections, supportingDocumentsSection())

	return &forms.FormSpec{
		Name:     "partnership",
		Title:    "Partnership Onboarding",
		Sections: sections,
	}
}
