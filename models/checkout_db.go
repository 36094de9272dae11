package models

import "time"

// CheckoutResourceDB contains all checkout details to be stored in the DB
type CheckoutResourceDB struct {
	ID                    string                 `bson:"_id"`
	RedirectURI           string                 `bson:"redirect_uri"`
	State                 string                 `bson:"state"`
	ExternalOrderID       string                 `bson:"external_order_id"`
	ExternalTransactionID string                 `bson:"external_transaction_id"`
	DiscountAttempt       int                    `bson:"discount_attempt"`
	Data                  CheckoutResourceDataDB `bson:"data"`
}

// CheckoutResourceDataDB is the data block of the stored checkout resource
type CheckoutResourceDataDB struct {
	Amount        string          `bson:"amount"`
	Currency      string          `bson:"currency"`
	Brand         string          `bson:"brand"`
	DiscountCode  string          `bson:"discount_code,omitempty"`
	PaymentMethod string          `bson:"payment_method"`
	Status        string          `bson:"status"`
	Reference     string          `bson:"reference,omitempty"`
	CreatedAt     time.Time       `bson:"created_at,omitempty"`
	CompletedAt   time.Time       `bson:"completed_at,omitempty"`
	CreatedBy     CreatedByDB     `bson:"created_by"`
	Links         CheckoutLinksDB `bson:"links"`
}

// CreatedByDB is the user the checkout session belongs to
type CreatedByDB struct {
	ID    string `bson:"id"`
	Email string `bson:"email"`
}

// CheckoutLinksDB is a set of URLs related to the resource, including self
type CheckoutLinksDB struct {
	Journey  string `bson:"journey"`
	Self     string `bson:"self"`
	Resource string `bson:"resource,omitempty"`
}
