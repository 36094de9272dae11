package models

import "time"

// PaymentRecordRest is the body of an incoming record-payment request and the
// payload handed to the payment recorder after a successful capture
type PaymentRecordRest struct {
	UserID        string    `json:"user_id" validate:"required"`
	Amount        string    `json:"amount" validate:"required"`
	DiscountCode  *string   `json:"discount_code"`
	PaymentDate   time.Time `json:"payment_date"`
	TransactionID string    `json:"transaction_id,omitempty"`
	CheckoutID    string    `json:"checkout_id,omitempty"`
}

// PaymentRecordDB is a completed payment persisted for revenue reporting
type PaymentRecordDB struct {
	ID            string    `bson:"_id"`
	UserID        string    `bson:"user_id"`
	Amount        string    `bson:"amount"`
	DiscountCode  *string   `bson:"discount_code,omitempty"`
	PaymentDate   time.Time `bson:"payment_date"`
	TransactionID string    `bson:"transaction_id,omitempty"`
	CheckoutID    string    `bson:"checkout_id,omitempty"`
	CreatedAt     time.Time `bson:"created_at"`
}
