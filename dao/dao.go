package dao

import "github.com/finmarkets/checkout.api.finmarkets.io/models"

// DAO is an interface for accessing data from a backend store
type DAO interface {
	CreateCheckoutResource(checkoutResource *models.CheckoutResourceDB) error
	GetCheckoutResource(id string) (*models.CheckoutResourceDB, error)
	PatchCheckoutResource(id string, checkoutUpdate *models.CheckoutResourceDB) error
	// ApplyDiscountToCheckout stores a discounted amount against a checkout
	// session, but only when attempt is greater than the attempt already
	// stored. It returns false when the update was rejected as stale, and
	// a "not found" error when no session exists with the given id.
	ApplyDiscountToCheckout(id string, code string, amount string, attempt int) (bool, error)
	GetDiscountCode(code string) (*models.DiscountCodeDB, error)
	CreatePaymentRecord(record *models.PaymentRecordDB) error
}
