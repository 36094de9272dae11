package models

import "time"

// Discount code types
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// DiscountCodeDB is a redeemable discount code stored in the DB
type DiscountCodeDB struct {
	Code      string     `bson:"_id"`
	Type      string     `bson:"type"`
	Value     string     `bson:"value"`
	Active    bool       `bson:"active"`
	ValidFrom *time.Time `bson:"valid_from,omitempty"`
	ValidTo   *time.Time `bson:"valid_to,omitempty"`
}

// ValidateDiscountRequest is the body of a discount validation request
type ValidateDiscountRequest struct {
	Code string `json:"code"`
}

// ValidateDiscountResponse reports whether a discount code can be redeemed
type ValidateDiscountResponse struct {
	Valid bool `json:"valid"`
}

// ApplyDiscountRequest is the body of a discount application request. The
// attempt counter is supplied by the client and increases with every apply
// click so that a stale in-flight response can never overwrite a newer one.
type ApplyDiscountRequest struct {
	Code       string `json:"code"`
	Amount     string `json:"amount" validate:"required"`
	CheckoutID string `json:"checkout_id"`
	Attempt    int    `json:"attempt"`
}

// ApplyDiscountResponse carries the discounted amount for an order summary
type ApplyDiscountResponse struct {
	Valid       bool   `json:"valid"`
	FinalAmount string `json:"final_amount"`
}
