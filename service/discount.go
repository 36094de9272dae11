package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/finmarkets/checkout.api.finmarkets.io/config"
	"github.com/finmarkets/checkout.api.finmarkets.io/dao"
	"github.com/finmarkets/checkout.api.finmarkets.io/models"
	"github.com/shopspring/decimal"
)

// DiscountOutcome distinguishes a genuinely invalid code from a discount
// subsystem failure, so callers can keep checkout unblocked without
// collapsing the two into one message
type DiscountOutcome int

const (
	// DiscountValid means the code can be redeemed
	DiscountValid DiscountOutcome = iota

	// DiscountInvalidCode means the code does not exist, is inactive or is
	// outside its validity window
	DiscountInvalidCode

	// DiscountProviderError means the discount store could not be reached;
	// the base amount is returned unchanged
	DiscountProviderError
)

var discountOutcomes = [...]string{
	"valid",
	"invalid-code",
	"provider-error",
}

// String representation of `DiscountOutcome`
func (o DiscountOutcome) String() string {
	return discountOutcomes[o]
}

// DiscountService validates and applies discount codes held in the DB
type DiscountService struct {
	DAO    dao.DAO
	Config config.Config
}

// getRedeemableCode fetches a code and checks it can be redeemed right now.
// An empty or whitespace code short-circuits to invalid without touching the
// store.
func (service *DiscountService) getRedeemableCode(code string) (*models.DiscountCodeDB, DiscountOutcome, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, DiscountInvalidCode, nil
	}

	discount, err := service.DAO.GetDiscountCode(code)
	if err != nil {
		return nil, DiscountProviderError, fmt.Errorf("error getting discount code from db: [%v]", err)
	}
	if discount == nil || !discount.Active {
		return nil, DiscountInvalidCode, nil
	}

	now := time.Now()
	if discount.ValidFrom != nil && now.Before(*discount.ValidFrom) {
		return nil, DiscountInvalidCode, nil
	}
	if discount.ValidTo != nil && now.After(*discount.ValidTo) {
		return nil, DiscountInvalidCode, nil
	}

	return discount, DiscountValid, nil
}

// ValidateDiscount checks whether a code can be redeemed
func (service *DiscountService) ValidateDiscount(code string) (DiscountOutcome, error) {
	_, outcome, err := service.getRedeemableCode(code)
	return outcome, err
}

// ApplyDiscount computes the discounted amount for a code against a base
// amount. Whatever the outcome, the returned amount is safe to charge: the
// base amount on invalid/error, and a final amount within [0, base] on valid.
func (service *DiscountService) ApplyDiscount(code string, baseAmount string) (DiscountOutcome, string, error) {
	base, err := decimal.NewFromString(baseAmount)
	if err != nil || base.IsNegative() {
		return DiscountInvalidCode, baseAmount, fmt.Errorf("amount [%s] format incorrect", baseAmount)
	}

	discount, outcome, err := service.getRedeemableCode(code)
	if outcome != DiscountValid {
		return outcome, base.StringFixed(2), err
	}

	value, err := decimal.NewFromString(discount.Value)
	if err != nil {
		return DiscountProviderError, base.StringFixed(2), fmt.Errorf("discount value [%s] format incorrect for code [%s]", discount.Value, discount.Code)
	}

	var final decimal.Decimal
	switch discount.Type {
	case models.DiscountTypePercentage:
		final = base.Sub(base.Mul(value).Div(decimal.NewFromInt(100)))
	case models.DiscountTypeFixed:
		final = base.Sub(value)
	default:
		return DiscountProviderError, base.StringFixed(2), fmt.Errorf("discount type [%s] not recognised for code [%s]", discount.Type, discount.Code)
	}

	// A discounted amount never leaves the [0, base] range
	if final.IsNegative() {
		final = decimal.Zero
	}
	if final.GreaterThan(base) {
		final = base
	}

	return DiscountValid, final.StringFixed(2), nil
}

// ApplyDiscountToCheckout applies a code to a stored checkout session. The
// write is conditional on the attempt counter, so an older in-flight apply
// cannot overwrite the amount written by a newer one.
func (service *DiscountService) ApplyDiscountToCheckout(checkoutID string, code string, baseAmount string, attempt int) (DiscountOutcome, string, ResponseType, error) {
	outcome, final, err := service.ApplyDiscount(code, baseAmount)
	if outcome != DiscountValid {
		return outcome, final, Success, err
	}

	applied, err := service.DAO.ApplyDiscountToCheckout(checkoutID, strings.TrimSpace(code), final, attempt)
	if err != nil {
		if err.Error() == "not found" {
			return outcome, final, NotFound, fmt.Errorf("could not find checkout session [%s] to apply discount to", checkoutID)
		}
		return DiscountProviderError, FormatAmount(baseAmount), Error, fmt.Errorf("error storing discounted amount: [%v]", err)
	}
	if !applied {
		return outcome, final, Conflict, fmt.Errorf("stale discount apply attempt [%d] for checkout [%s]", attempt, checkoutID)
	}

	return DiscountValid, final, Success, nil
}
