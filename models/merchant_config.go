package models

// MerchantConfigRest is the merchant configuration served to checkout pages.
// ClientID is nil when the PayPal integration has not been configured, in
// which case no SDKURL is returned and the page must not render buttons.
type MerchantConfigRest struct {
	AmountPro string  `json:"amount_pro"`
	Currency  string  `json:"currency"`
	Brand     string  `json:"brand"`
	ClientID  *string `json:"client_id"`
	SDKURL    string  `json:"sdk_url,omitempty"`
}
