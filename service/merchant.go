package service

import (
	"net/url"

	"github.com/finmarkets/checkout.api.finmarkets.io/config"
	"github.com/finmarkets/checkout.api.finmarkets.io/models"
	"github.com/shopspring/decimal"
)

const sdkBaseURL = "https://www.paypal.com/sdk/js"

// fallbackProAmount is used when the configured pro plan amount is missing
// or not a parseable decimal
var fallbackProAmount = decimal.NewFromInt(19)

// MerchantService assembles the merchant configuration served to checkout pages
type MerchantService struct {
	Config config.Config
}

// MerchantConfig returns the merchant configuration. ClientID is nil when the
// PayPal integration is not configured; callers must treat that as a
// configuration error and halt before rendering buttons.
func (m *MerchantService) MerchantConfig() *models.MerchantConfigRest {
	amount, err := decimal.NewFromString(m.Config.ProPlanAmount)
	if err != nil || amount.IsNegative() {
		amount = fallbackProAmount
	}

	currency := m.Config.Currency
	if currency == "" {
		currency = "USD"
	}

	merchantConfig := &models.MerchantConfigRest{
		AmountPro: amount.StringFixed(2),
		Currency:  currency,
		Brand:     m.Config.Brand,
	}

	if m.Config.PaypalClientID == "" {
		return merchantConfig
	}

	clientID := m.Config.PaypalClientID
	merchantConfig.ClientID = &clientID
	merchantConfig.SDKURL = SDKScriptURL(clientID, currency, "capture", m.Config.DisabledFundingSources)

	return merchantConfig
}

// SDKScriptURL builds the PayPal JS SDK script URL for the given parameters.
// The output is deterministic, so a page injecting the script keyed on the
// URL stays idempotent.
func SDKScriptURL(clientID, currency, intent, disabledFunding string) string {
	params := url.Values{}
	params.Set("client-id", clientID)
	params.Set("currency", currency)
	params.Set("intent", intent)
	if disabledFunding != "" {
		params.Set("disable-funding", disabledFunding)
	}

	return sdkBaseURL + "?" + params.Encode()
}
