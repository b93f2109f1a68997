package lists

// SentinelCountry is the country that triggers the fixed province list and
// the 4-digit postal code rule.
const SentinelCountry = "South Africa"

// SentinelDialCode is the dialing code with the strict 9-digit phone rule.
const SentinelDialCode = "+27"

// ProvinceOther is the fixed province value used for non-sentinel countries.
const ProvinceOther = "Other"

var saProvinces = []string{
	"Eastern Cape", "Free State", "Gauteng", "KwaZulu-Natal",
	"Limpopo", "Mpumalanga", "North West", "Northern Cape", "Western Cape",
}

var titles = []string{"Mr", "Ms", "Mrs", "Miss", "Dr", "Prof"}

var genders = []string{"Male", "Female", "Other", "Prefer not to say"}

var maritalStatuses = []string{"Single", "Married", "Divorced", "Widowed", "Other"}

var memberRoles = []string{
	"Director", "Shareholder", "Partner", "Trustee", "Beneficiary",
	"Member", "Chairperson", "Treasurer", "Secretary", "Settlor",
}

var entityTypes = []string{
	"Company", "Closed Corporation", "Partnership", "Trust",
	"Burial Society", "Charity Organisation", "Church", "Community Group",
	"Cultural Association", "Savings Club", "School", "Sports Club",
	"Stokvel", "Other",
}

var idTypes = []string{"SA ID Number", "Foreign ID Number", "Foreign Passport Number"}

var agreementScale = []string{"Strongly Disagree", "Disagree", "Neutral", "Agree", "Strongly Agree"}

var satisfactionScale = []string{"Very Dissatisfied", "Dissatisfied", "Neutral", "Satisfied", "Very Satisfied"}

var frequencyScale = []string{"Never", "Rarely", "Sometimes", "Often", "Always"}

// Provinces returns the fixed province list for the sentinel country.
func (c *Catalog) Provinces(includeEmpty bool) []string {
	return withEmpty(saProvinces, includeEmpty)
}

func (c *Catalog) Titles(includeEmpty bool) []string { return withEmpty(titles, includeEmpty) }

func (c *Catalog) Genders(includeEmpty bool) []string { return withEmpty(genders, includeEmpty) }

func (c *Catalog) MaritalStatuses(includeEmpty bool) []string {
	return withEmpty(maritalStatuses, includeEmpty)
}

func (c *Catalog) MemberRoles(includeEmpty bool) []string {
	return withEmpty(memberRoles, includeEmpty)
}

func (c *Catalog) EntityTypes(includeEmpty bool) []string {
	return withEmpty(entityTypes, includeEmpty)
}

// IDTypes returns the identification document types accepted for natural
// persons.
func (c *Catalog) IDTypes(includeEmpty bool) []string { return withEmpty(idTypes, includeEmpty) }

func (c *Catalog) YesNo(includeEmpty bool) []string {
	return withEmpty([]string{"Yes", "No"}, includeEmpty)
}

func (c *Catalog) AgreementScale(includeEmpty bool) []string {
	return withEmpty(agreementScale, includeEmpty)
}

func (c *Catalog) SatisfactionScale(includeEmpty bool) []string {
	return withEmpty(satisfactionScale, includeEmpty)
}

func (c *Catalog) FrequencyScale(includeEmpty bool) []string {
	return withEmpty(frequencyScale, includeEmpty)
}
