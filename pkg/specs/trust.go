package specs

import (
	"github.com/formsmith/onboard/pkg/components"
	"github.com/formsmith/onboard/pkg/forms"
	"github.com/formsmith/onboard/pkg/lists"
)

// Trust is the onboarding form for trusts. The trust deed number stands in
// for a company registration number and the Master's Office reference is
// capped the way downstream systems store it.
func Trust(cat *lists.Catalog) *forms.FormSpec {
	details := forms.Section{
		Title: "Trust Details",
		Fields: []forms.Field{
			{ID: "entity_name", Label: "Trust Name", Kind: forms.KindText, Required: true},
			{
				ID: "registration_number", Label: "Trust Deed Number", Kind: forms.KindText,
				Required: true, Check: checkLengthBetween(3, 50),
			},
			{
				ID: "masters_office", Label: "Master's Office of Registration", Kind: forms.KindText,
				Required: true, Check: checkMaxLength(200),
			},
			{
				ID: "country_of_registration", Label: "Country of Registration", Kind: forms.KindSelect,
				Options: cat.Countries(true),
			},
			{
				ID: "date_of_establishment", Label: "Date of Establishment", Kind: forms.KindDate,
				Required: true, Min: "1800/01/01", Max: today(),
			},
			{
				ID: "source_of_funds", Label: "Source of Funds", Kind: forms.KindTextArea,
				Required: true, Check: checkMaxLength(500),
			},
		},
		Rules: []forms.Rule{registrationCountryRule},
	}

	sections := []forms.Section{details}
	sections = append(sections, addressSections()...)
	sections = append(sections,
		contactSection(cat),
		forms.Section{
			Title:       "Trustees",
			ComponentID: components.IDNaturalPersons,
			Config: &components.PersonsConfig{
				InstanceID:     "trustees",
				Noun:           "Trustee",
				MinCount:       1,
				CollectContact: true,
				CollectUploads: true,
			},
		},
		forms.Section{
			Title:       "Beneficiaries",
			Intro:       "Named natural-person beneficiaries. Enter 0 for a discretionary class.",
			ComponentID: components.IDNaturalPersons,
			Config: &components.PersonsConfig{
				InstanceID: "beneficiaries",
				Noun:       "Beneficiary",
			},
		},
		representativeSection(),
	)
	sections = append(sections, complianceSections()...)
	sections = append(sections, supportingDocumentsSection())

	return &forms.FormSpec{
		Name:     "trust",
		Title:    "Trust Onboarding",
		Sections: sections,
	}
}
