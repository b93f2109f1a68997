package components

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/formsmith/onboard/pkg/export"
	"github.com/formsmith/onboard/pkg/forms"
	"github.com/formsmith/onboard/pkg/lists"
	"github.com/formsmith/onboard/pkg/prompt"
	"github.com/formsmith/onboard/pkg/state"
)

// PersonsConfig configures a repeating natural-person section. Noun is the
// singular record name used in prompts and findings ("Director", "Trustee").
type PersonsConfig struct {
	InstanceID     string   `yaml:"instance"`
	Noun           string   `yaml:"noun"`
	MinCount       int      `yaml:"min_count"`
	MaxCount       int      `yaml:"max_count"`
	Roles          []string `yaml:"roles"`
	CollectContact bool     `yaml:"collect_contact"`
	CollectUploads bool     `yaml:"collect_uploads"`

	// CollectTaxResidence adds a country of tax residence and TIN block per
	// record; CollectAddress adds a physical address per record. Controlling
	// persons carry both.
	CollectTaxResidence bool `yaml:"collect_tax_residence"`
	CollectAddress      bool `yaml:"collect_address"`
}

func (c *PersonsConfig) Instance() string { return c.InstanceID }

func (c *PersonsConfig) Check() error {
	if strings.TrimSpace(c.InstanceID) == "" {
		return fmt.Errorf("components: persons config requires an instance id")
	}
	if c.MinCount < 0 {
		return fmt.Errorf("components: persons min_count must not be negative")
	}
	if c.MaxCount > 0 && c.MaxCount < c.MinCount {
		return fmt.Errorf("components: persons max_count %d below min_count %d", c.MaxCount, c.MinCount)
	}
	return nil
}

func (c *PersonsConfig) noun() string {
	if c.Noun != "" {
		return c.Noun
	}
	return "Person"
}

// PersonsComponent captures zero or more natural persons: identity fields,
// an ID-type-dependent number check, and optional contact details and ID
// document uploads. Records are stored under indexed key suffixes; the count
// key decides how many indices are live, so reducing the count orphans the
// higher records rather than corrupting them.
type PersonsComponent struct{}

const (
	sufCount       = "count"
	sufPTitle      = "title"
	sufFirstName   = "first_name"
	sufSurname     = "surname"
	sufIDType      = "id_type"
	sufIDNumber    = "id_number"
	sufDateOfBirth = "date_of_birth"
	sufRole        = "role"
	sufEmail       = "email"
	sufPhoneDial   = "phone_dial"
	sufPhoneNumber = "phone_number"
	sufIDDocument  = "id_document"

	sufPassportCountry = "passport_country"
	sufPassportExpiry  = "passport_expiry"

	sufTINOption   = "tin_option"
	sufAddrCountry = "address_country"
	sufAddrLine1   = "address_line1"
	sufAddrCity    = "address_city"
	sufAddrProv    = "address_province"
	sufAddrPostal  = "address_postal_code"
)

var personSuffixes = []string{
	sufPTitle, sufFirstName, sufSurname, sufIDType, sufIDNumber,
	sufPassportCountry, sufPassportExpiry,
	sufDateOfBirth, sufRole, sufEmail, sufPhoneDial, sufPhoneNumber, sufIDDocument,
	sufTaxResidenceCountry, sufTINOption, sufTIN,
	sufAddrCountry, sufAddrLine1, sufAddrCity, sufAddrProv, sufAddrPostal,
}

func personsConfig(cfg forms.ComponentConfig) (*PersonsConfig, error) {
	c, ok := cfg.(*PersonsConfig)
	if !ok {
		return nil, fmt.Errorf("components: persons got config type %T", cfg)
	}
	return c, nil
}

func (p *PersonsComponent) Render(ctx context.Context, env *forms.Env, ns string, cfg forms.ComponentConfig) error {
	c, err := personsConfig(cfg)
	if err != nil {
		return err
	}
	store := env.Store
	countKey := state.InstKey(ns, c.InstanceID, sufCount)
	prevCount := state.GetInt(store, countKey, 0)

	count, err := env.Prompt.Number(ctx, prompt.NumberConfig{
		Message: fmt.Sprintf("How many %ss?", strings.ToLower(c.noun())),
		Default: maxInt(prevCount, c.MinCount),
		Min:     c.MinCount,
		Max:     c.MaxCount,
	})
	if err != nil {
		return err
	}
	store.Set(countKey, count)

	for i := count; i < prevCount; i++ {
		for _, suffix := range personSuffixes {
			store.Delete(state.RepeatKey(ns, c.InstanceID, suffix, i))
		}
	}

	for i := 0; i < count; i++ {
		if err := env.Prompt.Info(ctx, fmt.Sprintf("%s %d of %d", c.noun(), i+1, count)); err != nil {
			return err
		}
		if err := p.renderRecord(ctx, env, ns, c, i); err != nil {
			return err
		}
	}
	return nil
}

func (p *PersonsComponent) renderRecord(ctx context.Context, env *forms.Env, ns string, c *PersonsConfig, i int) error {
	store := env.Store
	key := func(suffix string) string { return state.RepeatKey(ns, c.InstanceID, suffix, i) }

	title, err := env.Prompt.Select(ctx, prompt.SelectConfig{
		Message: "Title",
		Options: env.Lists.Titles(false),
		Default: state.GetString(store, key(sufPTitle), ""),
	})
	if err != nil {
		return err
	}
	store.Set(key(sufPTitle), title)

	for _, in := range []struct{ suffix, message string }{
		{sufFirstName, "First Name"},
		{sufSurname, "Surname"},
	} {
		out, err := env.Prompt.Input(ctx, prompt.InputConfig{
			Message: in.message,
			Default: state.GetString(store, key(in.suffix), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(in.suffix), strings.TrimSpace(out))
	}

	idType, err := env.Prompt.Select(ctx, prompt.SelectConfig{
		Message: "ID Type",
		Options: env.Lists.IDTypes(false),
		Default: state.GetString(store, key(sufIDType), IDTypeSAID),
	})
	if err != nil {
		return err
	}
	store.Set(key(sufIDType), idType)

	idNumber, err := env.Prompt.Input(ctx, prompt.InputConfig{
		Message: idType,
		Default: state.GetString(store, key(sufIDNumber), ""),
	})
	if err != nil {
		return err
	}
	store.Set(key(sufIDNumber), strings.TrimSpace(idNumber))

	if idType == IDTypeForeignPassport {
		country, err := env.Prompt.Select(ctx, prompt.SelectConfig{
			Message: "Passport Issue Country",
			Options: env.Lists.Countries(false),
			Default: state.GetString(store, key(sufPassportCountry), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufPassportCountry), country)

		expiry, err := env.Prompt.Date(ctx, prompt.DateConfig{
			Message: "Passport Expiry Date",
			Default: state.GetString(store, key(sufPassportExpiry), ""),
			Min:     time.Now().Format(prompt.DateLayout),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufPassportExpiry), expiry)
	} else {
		store.Delete(key(sufPassportCountry))
		store.Delete(key(sufPassportExpiry))
	}

	dob, err := env.Prompt.Date(ctx, prompt.DateConfig{
		Message: "Date of Birth",
		Default: state.GetString(store, key(sufDateOfBirth), ""),
		Max:     time.Now().Format(prompt.DateLayout),
	})
	if err != nil {
		return err
	}
	store.Set(key(sufDateOfBirth), dob)

	if len(c.Roles) > 0 {
		role, err := env.Prompt.Select(ctx, prompt.SelectConfig{
			Message: "Role",
			Options: c.Roles,
			Default: state.GetString(store, key(sufRole), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufRole), role)
	}

	if c.CollectContact {
		email, err := env.Prompt.Input(ctx, prompt.InputConfig{
			Message: "Email Address",
			Default: state.GetString(store, key(sufEmail), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufEmail), strings.TrimSpace(email))

		dial, err := env.Prompt.Select(ctx, prompt.SelectConfig{
			Message: "Contact Number dialing code",
			Options: env.Lists.DialCodes(),
			Default: state.GetString(store, key(sufPhoneDial), lists.SentinelDialCode),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufPhoneDial), dial)

		number, err := env.Prompt.Input(ctx, prompt.InputConfig{
			Message: "Contact Number",
			Default: state.GetString(store, key(sufPhoneNumber), ""),
			Help:    "Digits only, without the dialing code.",
		})
		if err != nil {
			return err
		}
		store.Set(key(sufPhoneNumber), strings.TrimSpace(number))
	}

	if c.CollectTaxResidence {
		country, err := env.Prompt.Select(ctx, prompt.SelectConfig{
			Message: "Country of Tax Residence",
			Options: env.Lists.Countries(false),
			Default: state.GetString(store, key(sufTaxResidenceCountry), lists.SentinelCountry),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufTaxResidenceCountry), country)

		tinOpts := env.Lists.TINOptions()
		option, err := env.Prompt.Select(ctx, prompt.SelectConfig{
			Message:      "Tax Identification Number status",
			Options:      lists.Codes(tinOpts),
			Descriptions: descriptions(tinOpts),
			Default:      state.GetString(store, key(sufTINOption), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufTINOption), option)

		if option == lists.TINHas {
			tin, err := env.Prompt.Input(ctx, prompt.InputConfig{
				Message: "Tax Identification Number",
				Default: state.GetString(store, key(sufTIN), ""),
			})
			if err != nil {
				return err
			}
			store.Set(key(sufTIN), strings.TrimSpace(tin))
		} else {
			store.Delete(key(sufTIN))
		}
	}

	if c.CollectAddress {
		country, err := env.Prompt.Select(ctx, prompt.SelectConfig{
			Message: "Country",
			Options: env.Lists.Countries(false),
			Default: state.GetString(store, key(sufAddrCountry), lists.SentinelCountry),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufAddrCountry), country)

		for _, in := range []struct{ suffix, message string }{
			{sufAddrLine1, "Street Address"},
			{sufAddrCity, "City"},
		} {
			out, err := env.Prompt.Input(ctx, prompt.InputConfig{
				Message: in.message,
				Default: state.GetString(store, key(in.suffix), ""),
			})
			if err != nil {
				return err
			}
			store.Set(key(in.suffix), strings.TrimSpace(out))
		}

		if country == lists.SentinelCountry {
			province, err := env.Prompt.Select(ctx, prompt.SelectConfig{
				Message: "Province",
				Options: env.Lists.Provinces(false),
				Default: state.GetString(store, key(sufAddrProv), ""),
			})
			if err != nil {
				return err
			}
			store.Set(key(sufAddrProv), province)
		} else {
			store.Set(key(sufAddrProv), lists.ProvinceOther)
		}

		postal, err := env.Prompt.Input(ctx, prompt.InputConfig{
			Message: "Postal Code",
			Default: state.GetString(store, key(sufAddrPostal), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufAddrPostal), strings.TrimSpace(postal))
	}

	if c.CollectUploads {
		files, err := env.Prompt.Upload(ctx, prompt.UploadConfig{
			Message: "ID Document",
		})
		if err != nil {
			return err
		}
		if len(files) > 0 {
			store.Set(key(sufIDDocument), files)
		}
	}
	return nil
}

func (p *PersonsComponent) Validate(env *forms.Env, ns string, cfg forms.ComponentConfig) ([]string, error) {
	c, err := personsConfig(cfg)
	if err != nil {
		return nil, err
	}
	store := env.Store
	count := state.GetInt(store, state.InstKey(ns, c.InstanceID, sufCount), 0)

	var findings []string
	if count < c.MinCount {
		findings = append(findings, fmt.Sprintf("At least %d %s record(s) are required.", c.MinCount, strings.ToLower(c.noun())))
	}

	for i := 0; i < count; i++ {
		label := fmt.Sprintf("%s %d", c.noun(), i+1)
		key := func(suffix string) string { return state.RepeatKey(ns, c.InstanceID, suffix, i) }

		first := state.GetString(store, key(sufFirstName), "")
		surname := state.GetString(store, key(sufSurname), "")
		if first == "" {
			findings = append(findings, label+": First Name is required.")
		}
		if surname == "" {
			findings = append(findings, label+": Surname is required.")
		}

		idType := state.GetString(store, key(sufIDType), "")
		idNumber := state.GetString(store, key(sufIDNumber), "")
		switch {
		case idType == "":
			findings = append(findings, label+": ID Type is required.")
		case idNumber == "":
			findings = append(findings, fmt.Sprintf("%s: %s is required.", label, idType))
		case !ValidIDNumber(idType, idNumber):
			if idType == IDTypeSAID {
				findings = append(findings, label+": SA ID Number is not a valid 13-digit ID number.")
			} else {
				findings = append(findings, fmt.Sprintf("%s: %s is too short.", label, idType))
			}
		}

		if idType == IDTypeForeignPassport {
			if state.GetString(store, key(sufPassportCountry), "") == "" {
				findings = append(findings, label+": Passport Issue Country is required.")
			}
			expiry := state.GetString(store, key(sufPassportExpiry), "")
			switch {
			case expiry == "":
				findings = append(findings, label+": Passport Expiry Date is required.")
			default:
				if t, err := time.Parse(prompt.DateLayout, expiry); err != nil {
					findings = append(findings, label+": Passport Expiry Date must be a valid date in YYYY/MM/DD format.")
				} else if !t.After(time.Now()) {
					findings = append(findings, label+": Passport Expiry Date must be in the future.")
				}
			}
		}

		dob := state.GetString(store, key(sufDateOfBirth), "")
		switch {
		case dob == "":
			findings = append(findings, label+": Date of Birth is required.")
		default:
			if t, err := time.Parse(prompt.DateLayout, dob); err != nil {
				findings = append(findings, label+": Date of Birth must be a valid date in YYYY/MM/DD format.")
			} else if t.After(time.Now()) {
				findings = append(findings, label+": Date of Birth must not be in the future.")
			}
		}

		if len(c.Roles) > 0 && state.GetString(store, key(sufRole), "") == "" {
			findings = append(findings, label+": Role is required.")
		}

		if c.CollectContact {
			email := state.GetString(store, key(sufEmail), "")
			switch {
			case email == "":
				findings = append(findings, label+": Email Address is required.")
			case !ValidEmail(email):
				findings = append(findings, label+": Email Address is not a valid email address.")
			}
			dial := state.GetString(store, key(sufPhoneDial), "")
			number := state.GetString(store, key(sufPhoneNumber), "")
			if number == "" {
				findings = append(findings, label+": Contact Number is required.")
			} else if finding := CheckPhone(dial, number); finding != "" {
				findings = append(findings, fmt.Sprintf("%s: Contact Number %s", label, finding))
			}
		}

		if c.CollectTaxResidence {
			if state.GetString(store, key(sufTaxResidenceCountry), "") == "" {
				findings = append(findings, label+": Country of Tax Residence is required.")
			}
			option := state.GetString(store, key(sufTINOption), "")
			switch option {
			case "":
				findings = append(findings, label+": Tax Identification Number status is required.")
			case lists.TINHas:
				if state.GetString(store, key(sufTIN), "") == "" {
					findings = append(findings, label+": Tax Identification Number is required.")
				}
			}
		}

		if c.CollectAddress {
			country := state.GetString(store, key(sufAddrCountry), "")
			if country == "" {
				findings = append(findings, label+": Country is required.")
			}
			if state.GetString(store, key(sufAddrLine1), "") == "" {
				findings = append(findings, label+": Street Address is required.")
			}
			if state.GetString(store, key(sufAddrCity), "") == "" {
				findings = append(findings, label+": City is required.")
			}
			if country == lists.SentinelCountry && state.GetString(store, key(sufAddrProv), "") == "" {
				findings = append(findings, label+": Province is required for "+lists.SentinelCountry+".")
			}
			postal := state.GetString(store, key(sufAddrPostal), "")
			switch {
			case postal == "":
				findings = append(findings, label+": Postal Code is required.")
			case country == lists.SentinelCountry && !isPostal4(postal):
				findings = append(findings, label+": Postal Code must be 4 digits.")
			case country != lists.SentinelCountry && len(postal) > 10:
				findings = append(findings, label+": Postal Code must be at most 10 characters.")
			}
		}

		if c.CollectUploads && len(state.GetFiles(store, key(sufIDDocument))) == 0 {
			findings = append(findings, label+": ID Document is required.")
		}
	}
	return findings, nil
}

func (p *PersonsComponent) Serialize(env *forms.Env, ns string, cfg forms.ComponentConfig) (*forms.Payload, []forms.Upload, error) {
	c, err := personsConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	store := env.Store
	count := state.GetInt(store, state.InstKey(ns, c.InstanceID, sufCount), 0)

	records := make([]*forms.Fields, 0, count)
	var uploads []forms.Upload
	for i := 0; i < count; i++ {
		key := func(suffix string) string { return state.RepeatKey(ns, c.InstanceID, suffix, i) }

		fields := forms.NewFields()
		fields.Set("Title", state.GetString(store, key(sufPTitle), ""))
		fields.Set("First Name", state.GetString(store, key(sufFirstName), ""))
		fields.Set("Surname", state.GetString(store, key(sufSurname), ""))
		idType := state.GetString(store, key(sufIDType), "")
		fields.Set("ID Type", idType)
		fields.Set("ID Number", state.GetString(store, key(sufIDNumber), ""))
		if idType == IDTypeForeignPassport {
			fields.Set("Passport Issue Country", state.GetString(store, key(sufPassportCountry), ""))
			fields.Set("Passport Expiry Date", state.GetString(store, key(sufPassportExpiry), ""))
		}
		fields.Set("Date of Birth", state.GetString(store, key(sufDateOfBirth), ""))
		if len(c.Roles) > 0 {
			fields.Set("Role", state.GetString(store, key(sufRole), ""))
		}
		if c.CollectContact {
			fields.Set("Email Address", state.GetString(store, key(sufEmail), ""))
			fields.Set("Contact Number", FormatPhone(
				state.GetString(store, key(sufPhoneDial), ""),
				state.GetString(store, key(sufPhoneNumber), ""),
			))
		}
		if c.CollectTaxResidence {
			fields.Set("Country of Tax Residence", state.GetString(store, key(sufTaxResidenceCountry), ""))
			option := state.GetString(store, key(sufTINOption), "")
			fields.Set("TIN Option", lists.Describe(env.Lists.TINOptions(), option))
			if option == lists.TINHas {
				fields.Set("Tax Identification Number", state.GetString(store, key(sufTIN), ""))
			}
		}
		if c.CollectAddress {
			country := state.GetString(store, key(sufAddrCountry), "")
			province := state.GetString(store, key(sufAddrProv), "")
			if country != "" && country != lists.SentinelCountry {
				province = lists.ProvinceOther
			}
			fields.Set("Street Address", state.GetString(store, key(sufAddrLine1), ""))
			fields.Set("City", state.GetString(store, key(sufAddrCity), ""))
			fields.Set("Province", province)
			fields.Set("Postal Code", state.GetString(store, key(sufAddrPostal), ""))
			fields.Set("Country", country)
		}
		if c.CollectUploads {
			files := state.GetFiles(store, key(sufIDDocument))
			names := make([]string, 0, len(files))
			for _, f := range files {
				names = append(names, f.Name)
				uploads = append(uploads, forms.Upload{
					File:         f,
					Person:       PersonName(store, ns, c.InstanceID, i),
					PersonRef:    fmt.Sprintf("%s %d", c.noun(), i+1),
					DocumentType: export.DocumentTypeForID(idType),
				})
			}
			fields.Set("ID Document", strings.Join(names, ", "))
		}
		records = append(records, fields)
	}
	return forms.RepeatPayload(count, records), uploads, nil
}

// PersonName returns "First Surname" for a stored record, for attachment
// naming and summaries.
func PersonName(store state.Store, ns, instance string, i int) string {
	first := state.GetString(store, state.RepeatKey(ns, instance, sufFirstName, i), "")
	surname := state.GetString(store, state.RepeatKey(ns, instance, sufSurname, i), "")
	return strings.TrimSpace(first + " " + surname)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
