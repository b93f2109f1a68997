package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/formsmith/onboard/pkg/forms"
	"github.com/formsmith/onboard/pkg/lists"
	"github.com/formsmith/onboard/pkg/prompt"
	"github.com/formsmith/onboard/pkg/state"
)

// CRSConfig configures the CRS classification block.
type CRSConfig struct {
	InstanceID string `yaml:"instance"`
}

func (c *CRSConfig) Instance() string { return c.InstanceID }

func (c *CRSConfig) Check() error {
	if strings.TrimSpace(c.InstanceID) == "" {
		return fmt.Errorf("components: crs config requires an instance id")
	}
	return nil
}

// CRSComponent walks the CRS classification tree plus the tax-residency TIN
// block. Like the FATCA component, changing the classification clears the
// branches it abandons.
type CRSComponent struct{}

// Store key suffixes for the CRS tree. The exported ones anchor
// controlling-person triggers.
const (
	SufCRSClassification    = "classification"
	SufInvestmentEntityType = "investment_entity_type"
	sufStockExchange        = "stock_exchange"
	sufListedEntity         = "listed_entity"
	sufTaxResidenceCountry  = "tax_residence_country"
	sufTINStatus            = "tin_status"
	sufTIN                  = "tin"
	sufTINReason            = "tin_reason"
)

func crsConfig(cfg forms.ComponentConfig) (*CRSConfig, error) {
	c, ok := cfg.(*CRSConfig)
	if !ok {
		return nil, fmt.Errorf("components: crs got config type %T", cfg)
	}
	return c, nil
}

func (s *CRSComponent) Render(ctx context.Context, env *forms.Env, ns string, cfg forms.ComponentConfig) error {
	c, err := crsConfig(cfg)
	if err != nil {
		return err
	}
	store := env.Store
	key := func(suffix string) string { return state.InstKey(ns, c.InstanceID, suffix) }

	opts := env.Lists.CRSClassifications()
	classification, err := env.Prompt.Select(ctx, prompt.SelectConfig{
		Message:      "CRS Classification",
		Options:      lists.Codes(opts),
		Descriptions: descriptions(opts),
		Default:      state.GetString(store, key(SufCRSClassification), ""),
	})
	if err != nil {
		return err
	}
	store.Set(key(SufCRSClassification), classification)

	if classification != lists.CRSInvestmentEntity {
		store.Delete(key(SufInvestmentEntityType))
	}
	if classification != lists.CRSActiveNFEStocks {
		store.Delete(key(sufStockExchange))
		store.Delete(key(sufListedEntity))
	}

	if classification == lists.CRSActiveNFEStocks {
		exchange, err := env.Prompt.Input(ctx, prompt.InputConfig{
			Message: "Stock Exchange",
			Default: state.GetString(store, key(sufStockExchange), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufStockExchange), strings.TrimSpace(exchange))

		listed, err := env.Prompt.Input(ctx, prompt.InputConfig{
			Message: "Listed Entity Name",
			Default: state.GetString(store, key(sufListedEntity), ""),
			Help:    "The related entity whose stock is traded, if the applicant itself is not listed.",
		})
		if err != nil {
			return err
		}
		store.Set(key(sufListedEntity), strings.TrimSpace(listed))
	}

	if classification == lists.CRSInvestmentEntity {
		entityTypes := env.Lists.InvestmentEntityTypes()
		entityType, err := env.Prompt.Select(ctx, prompt.SelectConfig{
			Message:      "Investment Entity Type",
			Options:      lists.Codes(entityTypes),
			Descriptions: descriptions(entityTypes),
			Default:      state.GetString(store, key(SufInvestmentEntityType), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(SufInvestmentEntityType), entityType)
	}

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
	status, err := env.Prompt.Select(ctx, prompt.SelectConfig{
		Message:      "Tax Identification Number status",
		Options:      lists.Codes(tinOpts),
		Descriptions: descriptions(tinOpts),
		Default:      state.GetString(store, key(sufTINStatus), ""),
	})
	if err != nil {
		return err
	}
	store.Set(key(sufTINStatus), status)

	if status != lists.TINHas {
		store.Delete(key(sufTIN))
	}
	if status != lists.TINUnableToObtain {
		store.Delete(key(sufTINReason))
	}

	switch status {
	case lists.TINHas:
		tin, err := env.Prompt.Input(ctx, prompt.InputConfig{
			Message: "Tax Identification Number",
			Default: state.GetString(store, key(sufTIN), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufTIN), strings.TrimSpace(tin))
	case lists.TINUnableToObtain:
		reason, err := env.Prompt.TextArea(ctx, prompt.InputConfig{
			Message: "Reason a TIN cannot be obtained",
			Default: state.GetString(store, key(sufTINReason), ""),
		})
		if err != nil {
			return err
		}
		store.Set(key(sufTINReason), strings.TrimSpace(reason))
	}
	return nil
}

func (s *CRSComponent) Validate(env *forms.Env, ns string, cfg forms.ComponentConfig) ([]string, error) {
	c, err := crsConfig(cfg)
	if err != nil {
		return nil, err
	}
	store := env.Store
	key := func(suffix string) string { return state.InstKey(ns, c.InstanceID, suffix) }

	classification := state.GetString(store, key(SufCRSClassification), "")
	if classification == "" {
		return []string{"CRS Classification is required."}, nil
	}

	var findings []string
	if classification == lists.CRSInvestmentEntity &&
		state.GetString(store, key(SufInvestmentEntityType), "") == "" {
		findings = append(findings, "Investment Entity Type is required.")
	}
	if classification == lists.CRSActiveNFEStocks &&
		state.GetString(store, key(sufStockExchange), "") == "" {
		findings = append(findings, "Stock Exchange is required for a listed NFE.")
	}

	if state.GetString(store, key(sufTaxResidenceCountry), "") == "" {
		findings = append(findings, "Country of Tax Residence is required.")
	}

	status := state.GetString(store, key(sufTINStatus), "")
	switch status {
	case "":
		findings = append(findings, "Tax Identification Number status is required.")
	case lists.TINHas:
		if state.GetString(store, key(sufTIN), "") == "" {
			findings = append(findings, "Tax Identification Number is required.")
		}
	case lists.TINUnableToObtain:
		if state.GetString(store, key(sufTINReason), "") == "" {
			findings = append(findings, "A reason is required when a TIN cannot be obtained.")
		}
	}
	return findings, nil
}

func (s *CRSComponent) Serialize(env *forms.Env, ns string, cfg forms.ComponentConfig) (*forms.Payload, []forms.Upload, error) {
	c, err := crsConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	store := env.Store
	key := func(suffix string) string { return state.InstKey(ns, c.InstanceID, suffix) }

	classification := state.GetString(store, key(SufCRSClassification), "")
	fields := forms.NewFields()
	fields.Set("CRS Classification", lists.Describe(env.Lists.CRSClassifications(), classification))
	if classification == lists.CRSInvestmentEntity {
		fields.Set("Investment Entity Type", lists.Describe(env.Lists.InvestmentEntityTypes(), state.GetString(store, key(SufInvestmentEntityType), "")))
	}
	if classification == lists.CRSActiveNFEStocks {
		fields.Set("Stock Exchange", state.GetString(store, key(sufStockExchange), ""))
		if listed := state.GetString(store, key(sufListedEntity), ""); listed != "" {
			fields.Set("Listed Entity", listed)
		}
	}
	fields.Set("Country of Tax Residence", state.GetString(store, key(sufTaxResidenceCountry), ""))

	status := state.GetString(store, key(sufTINStatus), "")
	fields.Set("Tax Identification Number status", lists.Describe(env.Lists.TINOptions(), status))
	switch status {
	case lists.TINHas:
		fields.Set("Tax Identification Number", state.GetString(store, key(sufTIN), ""))
	case lists.TINUnableToObtain:
		fields.Set("Reason a TIN cannot be obtained", state.GetString(store, key(sufTINReason), ""))
	}
	return forms.FlatPayload(fields), nil, nil
}
