package fixtures

import (
	"time"

	"github.com/finmarkets/checkout.api.finmarkets.io/models"
	"github.com/plutov/paypal/v4"
)

// GetCheckoutResourceDB returns a pending checkout session as stored in the DB
func GetCheckoutResourceDB(id string, userID string) *models.CheckoutResourceDB {
	return &models.CheckoutResourceDB{
		ID:          id,
		RedirectURI: "https://finmarkets.io/dashboard",
		State:       "state123",
		Data: models.CheckoutResourceDataDB{
			Amount:    "19.00",
			Currency:  "USD",
			Brand:     "FinMarkets Retail Trade Scanner",
			Status:    "pending",
			CreatedAt: time.Now().Truncate(time.Millisecond),
			CreatedBy: models.CreatedByDB{
				ID:    userID,
				Email: "trader@finmarkets.io",
			},
			Links: models.CheckoutLinksDB{
				Journey: "https://finmarkets.io/checkouts/" + id + "/pay",
				Self:    "checkouts/" + id,
			},
		},
	}
}

// GetPercentageDiscountCode returns an active percentage discount code
func GetPercentageDiscountCode(code string, percent string) *models.DiscountCodeDB {
	return &models.DiscountCodeDB{
		Code:   code,
		Type:   models.DiscountTypePercentage,
		Value:  percent,
		Active: true,
	}
}

// GetFixedDiscountCode returns an active fixed amount discount code
func GetFixedDiscountCode(code string, amount string) *models.DiscountCodeDB {
	return &models.DiscountCodeDB{
		Code:   code,
		Type:   models.DiscountTypeFixed,
		Value:  amount,
		Active: true,
	}
}

// GetCaptureOrderResponse returns a completed capture response with the given
// transaction id
func GetCaptureOrderResponse(orderID string, transactionID string) *paypal.CaptureOrderResponse {
	return &paypal.CaptureOrderResponse{
		ID:     orderID,
		Status: paypal.OrderStatusCompleted,
		PurchaseUnits: []paypal.CapturedPurchaseUnit{
			{
				Payments: &paypal.CapturedPayments{
					Captures: []paypal.CaptureAmount{
						{ID: transactionID},
					},
				},
			},
		},
	}
}
