package service

import (
	"context"
	"fmt"

	"github.com/companieshouse/chs.go/log"
	"github.com/finmarkets/checkout.api.finmarkets.io/config"
	"github.com/finmarkets/checkout.api.finmarkets.io/models"
	"github.com/plutov/paypal/v4"
)

var client *paypal.Client

// GetPayPalClient returns an authenticated PayPal client, reusing the
// process-wide instance once one has been created
func GetPayPalClient(cfg config.Config) (*paypal.Client, error) {
	if client != nil {
		return client, nil
	}

	paypalAPIBase := getPayPalAPIBase(cfg.PaypalEnv)
	if paypalAPIBase == "" {
		return nil, fmt.Errorf("invalid paypal env in config: %s", cfg.PaypalEnv)
	}

	c, err := paypal.NewClient(cfg.PaypalClientID, cfg.PaypalSecret, paypalAPIBase)
	if err != nil {
		return nil, fmt.Errorf("error creating paypal client: [%v]", err)
	}
	_, err = c.GetAccessToken(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error getting access token: [%v]", err)
	}

	client = c
	return client, nil
}

// PayPalSDK is an interface for all the PayPal client methods that will be used
// in this service
type PayPalSDK interface {
	GetAccessToken(ctx context.Context) (*paypal.TokenResponse, error)
	CreateOrder(ctx context.Context, intent string, purchaseUnits []paypal.PurchaseUnitRequest, payer *paypal.CreateOrderPayer, appContext *paypal.ApplicationContext) (*paypal.Order, error)
	GetOrder(ctx context.Context, orderID string) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, orderID string, captureOrderRequest paypal.CaptureOrderRequest) (*paypal.CaptureOrderResponse, error)
}

// PayPalService handles the specific functionality of integrating PayPal into checkout sessions
type PayPalService struct {
	Client          PayPalSDK
	CheckoutService CheckoutService
}

// CheckPaymentProviderStatus checks the status of the order with PayPal
func (pp *PayPalService) CheckPaymentProviderStatus(checkoutResource *models.CheckoutResourceRest) (*models.StatusResponse, ResponseType, error) {

	res, err := pp.Client.GetOrder(
		context.Background(),
		checkoutResource.MetaData.ExternalOrderID,
	)
	if err != nil {
		return nil, Error, fmt.Errorf("error checking order status with PayPal: [%w]", err)
	}

	return &models.StatusResponse{Status: res.Status}, Success, nil
}

// CreateCheckoutOrder creates a PayPal order for the given checkout session.
// The purchase unit amount is always formatted to two decimal places and the
// description carries the brand shown on the order summary.
func (pp *PayPalService) CreateCheckoutOrder(checkoutResource *models.CheckoutResourceRest) (*models.CheckoutOrderRest, ResponseType, error) {

	id := checkoutResource.MetaData.ID

	order, err := pp.Client.CreateOrder(
		context.Background(),
		paypal.OrderIntentCapture,
		[]paypal.PurchaseUnitRequest{
			{
				ReferenceID: id,
				Description: checkoutResource.Brand,
				Amount: &paypal.PurchaseUnitAmount{
					Value:    FormatAmount(checkoutResource.Amount),
					Currency: checkoutResource.Currency,
				},
			},
		},
		nil,
		&paypal.ApplicationContext{
			BrandName: checkoutResource.Brand,
			ReturnURL: fmt.Sprintf("%s/callback/checkouts/paypal/%s",
				pp.CheckoutService.Config.CheckoutAPIURL, id),
		},
	)
	if err != nil {
		return nil, Error, fmt.Errorf("error creating order: [%v]", err)
	}

	if order.Status != paypal.OrderStatusCreated {
		log.Debug(fmt.Sprintf("paypal order response status: %s", order.Status))
		return nil, Error, fmt.Errorf("failed to correctly create paypal order - status is not CREATED")
	}

	var nextURL string
	for _, link := range order.Links {
		if link.Rel == "approve" {
			nextURL = link.Href
		}
	}

	err = pp.CheckoutService.StoreExternalOrderDetails(id, order.ID)
	if err != nil {
		return nil, Error, fmt.Errorf("error storing external order details for checkout session: [%s]", err)
	}

	return &models.CheckoutOrderRest{OrderID: order.ID, NextURL: nextURL}, Success, nil
}

// CapturePayment captures the approved order in PayPal and returns the
// transaction id of the resulting capture
func (pp *PayPalService) CapturePayment(orderID string) (string, ResponseType, error) {
	res, err := pp.Client.CaptureOrder(
		context.Background(),
		orderID,
		paypal.CaptureOrderRequest{},
	)
	if err != nil {
		return "", Error, fmt.Errorf("error capturing order: [%v]", err)
	}

	if res.Status != paypal.OrderStatusCompleted {
		return "", Error, fmt.Errorf("failed to capture paypal order - status is %s", res.Status)
	}

	transactionID := res.ID
	for _, unit := range res.PurchaseUnits {
		if unit.Payments == nil {
			continue
		}
		for _, capture := range unit.Payments.Captures {
			transactionID = capture.ID
		}
	}

	return transactionID, Success, nil
}

func getPayPalAPIBase(env string) string {
	switch env {
	case "live":
		return paypal.APIBaseLive
	case "test":
		return paypal.APIBaseSandBox
	default:
		return ""
	}
}
