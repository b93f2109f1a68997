package lists

// Option pairs a stable code (what the store and payloads carry) with a
// human-readable description (what prompts display).
type Option struct {
	Code        string
	Description string
}

// TIN option codes.
const (
	TINHas            = "HAS_TIN"
	TINNotProvided    = "NO_TIN_PROVIDED"
	TINUnableToObtain = "UNABLE_TO_OBTAIN"
)

// FATCA classification codes.
const (
	FATCAUSPerson = "US_PERSON"
	FATCAFFI      = "FFI"
	FATCANFFE     = "NFFE"
)

// US person type codes.
const (
	USPersonSpecified    = "SPECIFIED_US_PERSON"
	USPersonNonSpecified = "NON_SPECIFIED_US_PERSON"
)

// FFI category codes.
const (
	FFIReporting          = "REPORTING_FFI"
	FFIRegisteredDeemed   = "REGISTERED_DEEMED_COMPLIANT"
	FFINonReporting       = "NON_REPORTING_FFI"
	FFIExemptBeneficial   = "EXEMPT_BENEFICIAL_OWNER"
	FFINonParticipating   = "NON_PARTICIPATING_FFI"
	FFICertifiedCompliant = "CERTIFIED_DEEMED_COMPLIANT"
	FFISponsored          = "SPONSORED_FFI"
)

// NFFE type codes.
const (
	NFFEActive          = "ACTIVE_NFFE"
	NFFEPassive         = "PASSIVE_NFFE"
	NFFEDirectReporting = "DIRECT_REPORTING_NFFE"
)

// CRS classification codes.
const (
	CRSInvestmentEntity      = "FI_INVESTMENT_ENTITY"
	CRSDepositoryCustodial   = "FI_DEPOSITORY_CUSTODIAL_INSURANCE"
	CRSNonReportingFI        = "NON_REPORTING_FI"
	CRSActiveNFEStocks       = "ACTIVE_NFE_STOCK_EXCHANGE"
	CRSOtherActiveNFE        = "OTHER_ACTIVE_NFE"
	CRSPassiveNFE            = "PASSIVE_NFE"
	InvestmentEntityNonPart  = "NON_PARTICIPATING_JURISDICTION"
	InvestmentEntityStandard = "OTHER_INVESTMENT_ENTITY"
)

var tinOptions = []Option{
	{TINHas, "I have a Tax Identification Number"},
	{TINNotProvided, "TIN not provided"},
	{TINUnableToObtain, "Unable to obtain a TIN"},
}

var fatcaClassifications = []Option{
	{FATCAUSPerson, "US Person"},
	{FATCAFFI, "Foreign Financial Institution (FFI)"},
	{FATCANFFE, "Non-Financial Foreign Entity (NFFE)"},
}

var usPersonTypes = []Option{
	{USPersonSpecified, "Specified US Person"},
	{USPersonNonSpecified, "Non-Specified US Person"},
}

var ffiCategories = []Option{
	{FFIReporting, "Reporting FFI"},
	{FFIRegisteredDeemed, "Registered Deemed-Compliant FFI"},
	{FFINonReporting, "Non-Reporting FFI"},
	{FFIExemptBeneficial, "Exempt Beneficial Owner"},
	{FFINonParticipating, "Non-Participating FFI"},
	{FFICertifiedCompliant, "Certified Deemed-Compliant FFI"},
	{FFISponsored, "Sponsored FFI"},
}

var nffeTypes = []Option{
	{NFFEActive, "Active NFFE"},
	{NFFEPassive, "Passive NFFE"},
	{NFFEDirectReporting, "Direct-Reporting NFFE"},
}

var crsClassifications = []Option{
	{CRSInvestmentEntity, "Financial Institution: Investment Entity"},
	{CRSDepositoryCustodial, "Financial Institution: Depository, Custodial or Insurance"},
	{CRSNonReportingFI, "Non-Reporting Financial Institution"},
	{CRSActiveNFEStocks, "Active NFE: listed on a stock exchange"},
	{CRSOtherActiveNFE, "Other Active NFE"},
	{CRSPassiveNFE, "Passive NFE"},
}

var investmentEntityTypes = []Option{
	{InvestmentEntityNonPart, "Investment Entity in a non-participating jurisdiction"},
	{InvestmentEntityStandard, "Other Investment Entity"},
}

func (c *Catalog) TINOptions() []Option           { return copyOptions(tinOptions) }
func (c *Catalog) FATCAClassifications() []Option { return copyOptions(fatcaClassifications) }
func (c *Catalog) USPersonTypes() []Option        { return copyOptions(usPersonTypes) }
func (c *Catalog) FFICategories() []Option        { return copyOptions(ffiCategories) }
func (c *Catalog) NFFETypes() []Option            { return copyOptions(nffeTypes) }
func (c *Catalog) CRSClassifications() []Option   { return copyOptions(crsClassifications) }
func (c *Catalog) InvestmentEntityTypes() []Option {
	return copyOptions(investmentEntityTypes)
}

// Codes projects the code column of a coded option list.
func Codes(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Code
	}
	return out
}

// Describe returns the description for code, falling back to the code itself
// so unknown values stay visible rather than vanishing.
func Describe(opts []Option, code string) string {
	for _, o := range opts {
		if o.Code == code {
			return o.Description
		}
	}
	return code
}

func copyOptions(src []Option) []Option {
	return append([]Option(nil), src...)
}
