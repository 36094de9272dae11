package service

import (
	"fmt"
	"testing"

	"github.com/finmarkets/checkout.api.finmarkets.io/config"
	"github.com/finmarkets/checkout.api.finmarkets.io/dao"
	"github.com/finmarkets/checkout.api.finmarkets.io/fixtures"
	"github.com/finmarkets/checkout.api.finmarkets.io/models"
	"github.com/golang/mock/gomock"
	"github.com/plutov/paypal/v4"
	. "github.com/smartystreets/goconvey/convey"
)

func createMockPayPalService(sdk PayPalSDK, checkoutService CheckoutService) PayPalService {
	return PayPalService{
		Client:          sdk,
		CheckoutService: checkoutService,
	}
}

func checkoutResourceForOrder(id string) *models.CheckoutResourceRest {
	return &models.CheckoutResourceRest{
		Amount:   "19",
		Currency: "USD",
		Brand:    "FinMarkets Retail Trade Scanner",
		MetaData: models.CheckoutMetaDataRest{ID: id},
	}
}

func TestUnitGetPayPalAPIBase(t *testing.T) {
	Convey("Get PayPal API Base", t, func() {
		So(getPayPalAPIBase("live"), ShouldEqual, paypal.APIBaseLive)
		So(getPayPalAPIBase("test"), ShouldEqual, paypal.APIBaseSandBox)
		So(getPayPalAPIBase("qa"), ShouldBeEmpty)
	})
}

func TestUnitCreateCheckoutOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	Convey("Error creating order with PayPal", t, func() {
		mockSDK := NewMockPayPalSDK(mockCtrl)
		mockService := createMockPayPalService(mockSDK, createMockCheckoutService(dao.NewMockDAO(mockCtrl), cfg))

		mockSDK.EXPECT().CreateOrder(gomock.Any(), paypal.OrderIntentCapture, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("error"))

		order, responseType, err := mockService.CreateCheckoutOrder(checkoutResourceForOrder("123"))

		So(order, ShouldBeNil)
		So(responseType, ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "error creating order")
	})

	Convey("Order status is not CREATED", t, func() {
		mockSDK := NewMockPayPalSDK(mockCtrl)
		mockService := createMockPayPalService(mockSDK, createMockCheckoutService(dao.NewMockDAO(mockCtrl), cfg))

		mockSDK.EXPECT().CreateOrder(gomock.Any(), paypal.OrderIntentCapture, gomock.Any(), gomock.Any(), gomock.Any()).Return(&paypal.Order{Status: paypal.OrderStatusVoided}, nil)

		order, responseType, err := mockService.CreateCheckoutOrder(checkoutResourceForOrder("123"))

		So(order, ShouldBeNil)
		So(responseType, ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "status is not CREATED")
	})

	Convey("Error storing external order details", t, func() {
		mockSDK := NewMockPayPalSDK(mockCtrl)
		mockDAO := dao.NewMockDAO(mockCtrl)
		mockService := createMockPayPalService(mockSDK, createMockCheckoutService(mockDAO, cfg))

		mockSDK.EXPECT().CreateOrder(gomock.Any(), paypal.OrderIntentCapture, gomock.Any(), gomock.Any(), gomock.Any()).Return(&paypal.Order{ID: "order123", Status: paypal.OrderStatusCreated}, nil)
		mockDAO.EXPECT().PatchCheckoutResource("123", gomock.Any()).Return(fmt.Errorf("error"))

		order, responseType, err := mockService.CreateCheckoutOrder(checkoutResourceForOrder("123"))

		So(order, ShouldBeNil)
		So(responseType, ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "error storing external order details")
	})

	Convey("Successfully create order with two decimal place amount", t, func() {
		mockSDK := NewMockPayPalSDK(mockCtrl)
		mockDAO := dao.NewMockDAO(mockCtrl)
		mockService := createMockPayPalService(mockSDK, createMockCheckoutService(mockDAO, cfg))

		mockSDK.EXPECT().CreateOrder(gomock.Any(), paypal.OrderIntentCapture, gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, _ string, purchaseUnits []paypal.PurchaseUnitRequest, _ *paypal.CreateOrderPayer, appContext *paypal.ApplicationContext) (*paypal.Order, error) {
				So(purchaseUnits, ShouldHaveLength, 1)
				So(purchaseUnits[0].Amount.Value, ShouldEqual, "19.00")
				So(purchaseUnits[0].Description, ShouldEqual, "FinMarkets Retail Trade Scanner")
				So(appContext.ReturnURL, ShouldContainSubstring, "/callback/checkouts/paypal/123")
				return &paypal.Order{
					ID:     "order123",
					Status: paypal.OrderStatusCreated,
					Links: []paypal.Link{
						{Rel: "self", Href: "https://api.paypal.com/v2/checkout/orders/order123"},
						{Rel: "approve", Href: "https://www.paypal.com/checkoutnow?token=order123"},
					},
				}, nil
			})
		mockDAO.EXPECT().PatchCheckoutResource("123", gomock.Any()).Return(nil)

		order, responseType, err := mockService.CreateCheckoutOrder(checkoutResourceForOrder("123"))

		So(err, ShouldBeNil)
		So(responseType, ShouldEqual, Success)
		So(order.OrderID, ShouldEqual, "order123")
		So(order.NextURL, ShouldEqual, "https://www.paypal.com/checkoutnow?token=order123")
	})
}

func TestUnitCapturePayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	Convey("Error capturing order with PayPal", t, func() {
		mockSDK := NewMockPayPalSDK(mockCtrl)
		mockService := createMockPayPalService(mockSDK, createMockCheckoutService(dao.NewMockDAO(mockCtrl), cfg))

		mockSDK.EXPECT().CaptureOrder(gomock.Any(), "order123", gomock.Any()).Return(nil, fmt.Errorf("error"))

		transactionID, responseType, err := mockService.CapturePayment("order123")

		So(transactionID, ShouldBeEmpty)
		So(responseType, ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "error capturing order")
	})

	Convey("Capture status is not COMPLETED", t, func() {
		mockSDK := NewMockPayPalSDK(mockCtrl)
		mockService := createMockPayPalService(mockSDK, createMockCheckoutService(dao.NewMockDAO(mockCtrl), cfg))

		mockSDK.EXPECT().CaptureOrder(gomock.Any(), "order123", gomock.Any()).Return(&paypal.CaptureOrderResponse{Status: paypal.OrderStatusVoided}, nil)

		transactionID, responseType, err := mockService.CapturePayment("order123")

		So(transactionID, ShouldBeEmpty)
		So(responseType, ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "failed to capture paypal order")
	})

	Convey("Successfully capture payment", t, func() {
		mockSDK := NewMockPayPalSDK(mockCtrl)
		mockService := createMockPayPalService(mockSDK, createMockCheckoutService(dao.NewMockDAO(mockCtrl), cfg))

		mockSDK.EXPECT().CaptureOrder(gomock.Any(), "order123", gomock.Any()).Return(fixtures.GetCaptureOrderResponse("order123", "txn456"), nil)

		transactionID, responseType, err := mockService.CapturePayment("order123")

		So(err, ShouldBeNil)
		So(responseType, ShouldEqual, Success)
		So(transactionID, ShouldEqual, "txn456")
	})

	Convey("Capture without purchase unit captures falls back to the order id", t, func() {
		mockSDK := NewMockPayPalSDK(mockCtrl)
		mockService := createMockPayPalService(mockSDK, createMockCheckoutService(dao.NewMockDAO(mockCtrl), cfg))

		mockSDK.EXPECT().CaptureOrder(gomock.Any(), "order123", gomock.Any()).Return(&paypal.CaptureOrderResponse{ID: "order123", Status: paypal.OrderStatusCompleted}, nil)

		transactionID, _, err := mockService.CapturePayment("order123")

		So(err, ShouldBeNil)
		So(transactionID, ShouldEqual, "order123")
	})
}

func TestUnitCheckPaymentProviderStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	Convey("Error getting order status from PayPal", t, func() {
		mockSDK := NewMockPayPalSDK(mockCtrl)
		mockService := createMockPayPalService(mockSDK, createMockCheckoutService(dao.NewMockDAO(mockCtrl), cfg))

		mockSDK.EXPECT().GetOrder(gomock.Any(), "order123").Return(nil, fmt.Errorf("error"))

		status, responseType, err := mockService.CheckPaymentProviderStatus(&models.CheckoutResourceRest{MetaData: models.CheckoutMetaDataRest{ExternalOrderID: "order123"}})

		So(status, ShouldBeNil)
		So(responseType, ShouldEqual, Error)
		So(err.Error(), ShouldContainSubstring, "error checking order status")
	})

	Convey("Successfully get order status from PayPal", t, func() {
		mockSDK := NewMockPayPalSDK(mockCtrl)
		mockService := createMockPayPalService(mockSDK, createMockCheckoutService(dao.NewMockDAO(mockCtrl), cfg))

		mockSDK.EXPECT().GetOrder(gomock.Any(), "order123").Return(&paypal.Order{Status: paypal.OrderStatusApproved}, nil)

		status, responseType, err := mockService.CheckPaymentProviderStatus(&models.CheckoutResourceRest{MetaData: models.CheckoutMetaDataRest{ExternalOrderID: "order123"}})

		So(err, ShouldBeNil)
		So(responseType, ShouldEqual, Success)
		So(status.Status, ShouldEqual, paypal.OrderStatusApproved)
	})
}
