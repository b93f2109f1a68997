// Package specs holds the built-in onboarding form definitions. Each entity
// type assembles the shared sections in its own order; anything interactive
// or validated lives in the components and fields, not here.
package specs

import (
	"fmt"
	"time"

	"github.com/formsmith/onboard/pkg/components"
	"github.com/formsmith/onboard/pkg/forms"
	"github.com/formsmith/onboard/pkg/lists"
	"github.com/formsmith/onboard/pkg/state"
)

func today() string {
	return time.Now().Format("2006/01/02")
}

func checkLengthBetween(min, max int) func(string) string {
	return func(v string) string {
		if len(v) < min || len(v) > max {
			return fmt.Sprintf("must be between %d and %d characters.", min, max)
		}
		return ""
	}
}

func checkMaxLength(max int) func(string) string {
	return func(v string) string {
		if len(v) > max {
			return fmt.Sprintf("must be at most %d characters.", max)
		}
		return ""
	}
}

func checkEmail(v string) string {
	if !components.ValidEmail(v) {
		return "is not a valid email address."
	}
	return ""
}

// registrationCountryRule requires a country of registration whenever a
// registration number was captured.
func registrationCountryRule(env *forms.Env, ns string, _ *forms.Section) []string {
	reg := state.GetString(env.Store, state.NsKey(ns, "registration_number"), "")
	country := state.GetString(env.Store, state.NsKey(ns, "country_of_registration"), "")
	if reg != "" && country == "" {
		return []string{"Country of Registration is required when a Registration Number is given."}
	}
	return nil
}

func entityDetailsFields(cat *lists.Catalog, registrationRequired bool) []forms.Field {
	return []forms.Field{
		{ID: "entity_name", Label: "Entity Name", Kind: forms.KindText, Required: true},
		{
			ID: "registration_number", Label: "Registration Number", Kind: forms.KindText,
			Required: registrationRequired,
			Check:    checkLengthBetween(3, 50),
		},
		{
			ID: "country_of_registration", Label: "Country of Registration", Kind: forms.KindSelect,
			Options: cat.Countries(true),
		},
		{
			ID: "date_of_establishment", Label: "Date of Establishment", Kind: forms.KindDate,
			Required: true, Min: "1800/01/01", Max: today(),
		},
		{ID: "industry", Label: "Industry / Nature of Business", Kind: forms.KindText, Required: true},
		{
			ID: "source_of_funds", Label: "Source of Funds", Kind: forms.KindTextArea,
			Required: true, Check: checkMaxLength(500),
		},
		{ID: "vat_registered", Label: "VAT registered", Kind: forms.KindCheckbox},
	}
}

func contactSection(cat *lists.Catalog) forms.Section {
	return forms.Section{
		Title: "Contact Details",
		Fields: []forms.Field{
			{ID: "contact_email", Label: "Email Address", Kind: forms.KindText, Required: true, Check: checkEmail},
			{
				ID: "contact_dial_code", Label: "Contact Number dialing code", Kind: forms.KindSelect,
				Options: cat.DialCodes(), Required: true,
			},
			{ID: "contact_number", Label: "Contact Number", Kind: forms.KindText, Required: true},
		},
		Rules: []forms.Rule{contactNumberRule},
	}
}

func contactNumberRule(env *forms.Env, ns string, _ *forms.Section) []string {
	dial := state.GetString(env.Store, state.NsKey(ns, "contact_dial_code"), "")
	number := state.GetString(env.Store, state.NsKey(ns, "contact_number"), "")
	if number == "" {
		return nil
	}
	if finding := components.CheckPhone(dial, number); finding != "" {
		return []string{"Contact Number " + finding}
	}
	return nil
}

func addressSections() []forms.Section {
	return []forms.Section{
		{
			Title:       "Physical Address",
			ComponentID: components.IDAddress,
			Config:      &components.AddressConfig{InstanceID: "physical_address", Label: "Physical Address"},
		},
		{
			Title:       "Postal Address",
			Intro:       "Leave blank if the postal address matches the physical address.",
			ComponentID: components.IDAddress,
			Config:      &components.AddressConfig{InstanceID: "postal_address", Label: "Postal Address", Optional: true},
		},
	}
}

func representativeSection() forms.Section {
	return forms.Section{
		Title:       "Authorised Representative",
		ComponentID: components.IDRepresentative,
		Config:      &components.RepresentativeConfig{InstanceID: "authorised_representative"},
	}
}

func complianceSections() []forms.Section {
	return []forms.Section{
		{
			Title:       "FATCA Classification",
			ComponentID: components.IDFATCA,
			Config:      &components.FATCAConfig{InstanceID: "fatca"},
		},
		{
			Title:       "FATCA Controlling Persons",
			ComponentID: components.IDControllingPersons,
			Config: &components.ControllingPersonsConfig{
				InstanceID: "fatca",
				TriggerAny: []components.KeyEquals{
					{Instance: "fatca", Suffix: components.SufNFFEType, Value: lists.NFFEPassive},
				},
			},
		},
		{
			Title:       "CRS Classification",
			ComponentID: components.IDCRS,
			Config:      &components.CRSConfig{InstanceID: "crs"},
		},
		{
			Title:       "CRS Controlling Persons",
			ComponentID: components.IDControllingPersons,
			Config: &components.ControllingPersonsConfig{
				InstanceID: "crs",
				TriggerAny: []components.KeyEquals{
					{Instance: "crs", Suffix: components.SufCRSClassification, Value: lists.CRSPassiveNFE},
					{Instance: "crs", Suffix: components.SufInvestmentEntityType, Value: lists.InvestmentEntityNonPart},
				},
			},
		},
	}
}

func supportingDocumentsSection() forms.Section {
	return forms.Section{
		Title: "Supporting Documents",
		Fields: []forms.Field{
			{
				ID: "proof_of_address", Label: "Proof of Address", Kind: forms.KindFile,
				Required: true,
			},
			{
				ID: "registration_documents", Label: "Registration Documents", Kind: forms.KindFile,
				AcceptMultiple: true,
			},
		},
	}
}
