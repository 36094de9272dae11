package models

import "time"

// IncomingCheckoutResourceRequest is the data received in the body of the incoming request
type IncomingCheckoutResourceRequest struct {
	RedirectURI string `json:"redirect_uri" validate:"required"`
	Reference   string `json:"reference"`
	State       string `json:"state"`
	Amount      string `json:"amount"`
}

// CheckoutResourceRest is public facing checkout details to be returned in the response
type CheckoutResourceRest struct {
	Amount        string               `json:"amount"`
	Currency      string               `json:"currency"`
	Brand         string               `json:"brand"`
	DiscountCode  string               `json:"discount_code,omitempty"`
	PaymentMethod string               `json:"payment_method,omitempty"`
	Status        string               `json:"status"`
	Reference     string               `json:"reference,omitempty"`
	CreatedAt     time.Time            `json:"created_at,omitempty"`
	CompletedAt   time.Time            `json:"completed_at,omitempty"`
	CreatedBy     CreatedByRest        `json:"created_by"`
	Links         CheckoutLinksRest    `json:"links"`
	MetaData      CheckoutMetaDataRest `json:"-"`
}

// CreatedByRest is the user the checkout session belongs to
type CreatedByRest struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// CheckoutLinksRest is a set of URLs related to the resource, including self
type CheckoutLinksRest struct {
	Journey  string `json:"journey"`
	Self     string `json:"self" validate:"required"`
	Resource string `json:"resource,omitempty"`
}

// CheckoutMetaDataRest contains fields stored alongside the checkout data
// which are never returned in a response body
type CheckoutMetaDataRest struct {
	ID                    string
	RedirectURI           string
	State                 string
	ExternalOrderID       string
	ExternalTransactionID string
	DiscountAttempt       int
}

// CheckoutOrderRest is returned when a provider order has been created for a
// checkout session
type CheckoutOrderRest struct {
	OrderID string `json:"order_id"`
	NextURL string `json:"next_url"`
}

// RedirectParams are the query parameters appended to the post-payment redirect
type RedirectParams struct {
	State  string
	Ref    string
	Status string
}

// StatusResponse is the provider status of an external payment
type StatusResponse struct {
	Status string `json:"status"`
}
