package specs

import (
	"github.com/formsmith/onboard/pkg/components"
	"github.com/formsmith/onboard/pkg/forms"
	"github.com/formsmith/onboard/pkg/lists"
)

// Company is the onboarding form for registered companies.
func Company(cat *lists.Catalog) *forms.FormSpec {
	sections := []forms.Section{
		{
			Title:  "Company Details",
			Fields: entityDetailsFields(cat, true),
			Rules:  []forms.Rule{registrationCountryRule},
		},
	}
	sections = append(sections, addressSections()...)
	sections = append(sections,
		contactSection(cat),
		forms.Section{
			Title:       "Company Directors",
			ComponentID: components.IDNaturalPersons,
			Config: &components.PersonsConfig{
				InstanceID:     "company_directors",
				Noun:           "Director",
				MinCount:       1,
				Roles:          []string{"Director", "Chairperson", "Secretary"},
				CollectContact: true,
				CollectUploads: true,
			},
		},
		forms.Section{
			Title:       "Corporate Shareholders",
			Intro:       "Juristic entities holding shares. Enter 0 if all shareholders are natural persons.",
			ComponentID: components.IDRelatedEntities,
			Config: &components.EntitiesConfig{
				InstanceID:       "corporate_shareholders",
				Noun:             "Corporate Shareholder",
				Roles:            []string{"Shareholder"},
				CollectOwnership: true,
			},
		},
		representativeSection(),
	)
	sections = append(sections, complianceSections()...)
	sections = append(sections, supportingDocumentsSection())

	return &forms.FormSpec{
		Name:     "company",
		Title:    "Company Onboarding",
		Sections: sections,
	}
}
