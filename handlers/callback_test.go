package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finmarkets/checkout.api.finmarkets.io/config"
	"github.com/finmarkets/checkout.api.finmarkets.io/dao"
	"github.com/finmarkets/checkout.api.finmarkets.io/fixtures"
	"github.com/finmarkets/checkout.api.finmarkets.io/models"
	"github.com/finmarkets/checkout.api.finmarkets.io/service"
	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/jarcoal/httpmock"
	. "github.com/smartystreets/goconvey/convey"
)

// approvedCheckoutResourceDB returns a stored session for which a PayPal
// order has been created
func approvedCheckoutResourceDB(id string) *models.CheckoutResourceDB {
	checkoutResource := fixtures.GetCheckoutResourceDB(id, "user1")
	checkoutResource.ExternalOrderID = "order123"
	checkoutResource.Data.PaymentMethod = "PayPal"
	checkoutResource.Data.Status = service.OrderCreated.String()
	return checkoutResource
}

func registerCaptureResponder(orderID string, transactionID string) {
	captureResponse := fmt.Sprintf(
		`{"id": "%s", "status": "COMPLETED", "purchase_units": [{"payments": {"captures": [{"id": "%s"}]}}]}`,
		orderID, transactionID)
	httpmock.RegisterResponder("POST", paypalSandboxAPI+"/v2/checkout/orders/"+orderID+"/capture", httpmock.NewStringResponder(201, captureResponse))
}

func registerOrderStatusResponder(orderID string, status string) {
	orderResponse := fmt.Sprintf(`{"id": "%s", "status": "%s"}`, orderID, status)
	httpmock.RegisterResponder("GET", paypalSandboxAPI+"/v2/checkout/orders/"+orderID, httpmock.NewStringResponder(200, orderResponse))
}

func TestUnitHandlePayPalCallback(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	cfg, _ := config.Get()

	Convey("Checkout ID not supplied", t, func() {
		checkoutService = createMockCheckoutService(dao.NewMockDAO(mockCtrl), cfg)

		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		HandlePayPalCallback(w, req)

		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Error getting checkout session", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		checkoutService = createMockCheckoutService(mockDAO, cfg)

		mockDAO.EXPECT().GetCheckoutResource("123").Return(nil, fmt.Errorf("error"))

		req := httptest.NewRequest("GET", "/test", nil)
		req = mux.SetURLVars(req, map[string]string{"checkout_id": "123"})
		w := httptest.NewRecorder()
		HandlePayPalCallback(w, req)

		So(w.Code, ShouldEqual, http.StatusInternalServerError)
	})

	Convey("Checkout session not found", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		checkoutService = createMockCheckoutService(mockDAO, cfg)

		mockDAO.EXPECT().GetCheckoutResource("123").Return(nil, nil)

		req := httptest.NewRequest("GET", "/test", nil)
		req = mux.SetURLVars(req, map[string]string{"checkout_id": "123"})
		w := httptest.NewRecorder()
		HandlePayPalCallback(w, req)

		So(w.Code, ShouldEqual, http.StatusNotFound)
	})

	Convey("Expired checkout session is patched and forbidden", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		checkoutService = createMockCheckoutService(mockDAO, cfg)

		checkoutResource := approvedCheckoutResourceDB("123")
		checkoutResource.Data.CreatedAt = time.Now().Add(-2 * time.Hour)
		mockDAO.EXPECT().GetCheckoutResource("123").Return(checkoutResource, nil)
		mockDAO.EXPECT().PatchCheckoutResource("123", gomock.Any()).Return(nil)

		req := httptest.NewRequest("GET", "/test", nil)
		req = mux.SetURLVars(req, map[string]string{"checkout_id": "123"})
		w := httptest.NewRecorder()
		HandlePayPalCallback(w, req)

		So(w.Code, ShouldEqual, http.StatusForbidden)
	})

	Convey("Payment method not recognised", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		checkoutService = createMockCheckoutService(mockDAO, cfg)

		checkoutResource := approvedCheckoutResourceDB("123")
		checkoutResource.Data.PaymentMethod = "credit-card"
		mockDAO.EXPECT().GetCheckoutResource("123").Return(checkoutResource, nil)

		req := httptest.NewRequest("GET", "/test", nil)
		req = mux.SetURLVars(req, map[string]string{"checkout_id": "123"})
		w := httptest.NewRecorder()
		HandlePayPalCallback(w, req)

		So(w.Code, ShouldEqual, http.StatusPreconditionFailed)
	})

	Convey("Callback token does not match the stored order", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		checkoutService = createMockCheckoutService(mockDAO, cfg)

		mockDAO.EXPECT().GetCheckoutResource("123").Return(approvedCheckoutResourceDB("123"), nil)

		req := httptest.NewRequest("GET", "/test?token=other-order", nil)
		req = mux.SetURLVars(req, map[string]string{"checkout_id": "123"})
		w := httptest.NewRecorder()
		HandlePayPalCallback(w, req)

		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Capture failure marks the session failed", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		checkoutService = createMockCheckoutService(mockDAO, paypalTestConfig(cfg))
		recorderService = service.NewRecorderService(mockDAO, *cfg)

		mockDAO.EXPECT().GetCheckoutResource("123").Return(approvedCheckoutResourceDB("123"), nil)
		mockDAO.EXPECT().PatchCheckoutResource("123", gomock.Any()).Return(nil)

		httpmock.Activate()
		defer httpmock.DeactivateAndReset()
		registerPayPalTokenResponder()
		registerOrderStatusResponder("order123", "APPROVED")
		httpmock.RegisterResponder("POST", paypalSandboxAPI+"/v2/checkout/orders/order123/capture", httpmock.NewStringResponder(500, "internal server error"))

		req := httptest.NewRequest("GET", "/test?token=order123", nil)
		req = mux.SetURLVars(req, map[string]string{"checkout_id": "123"})
		w := httptest.NewRecorder()
		HandlePayPalCallback(w, req)

		So(w.Code, ShouldEqual, http.StatusBadGateway)
	})

	Convey("Successful capture redirects the user", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		checkoutService = createMockCheckoutService(mockDAO, paypalTestConfig(cfg))
		recorderService = service.NewRecorderService(mockDAO, *cfg)

		mockDAO.EXPECT().GetCheckoutResource("123").Return(approvedCheckoutResourceDB("123"), nil)
		mockDAO.EXPECT().PatchCheckoutResource("123", gomock.Any()).Return(nil)

		httpmock.Activate()
		defer httpmock.DeactivateAndReset()
		registerPayPalTokenResponder()
		registerOrderStatusResponder("order123", "APPROVED")
		registerCaptureResponder("order123", "txn456")

		req := httptest.NewRequest("GET", "/test?token=order123", nil)
		req = mux.SetURLVars(req, map[string]string{"checkout_id": "123"})
		w := httptest.NewRecorder()
		HandlePayPalCallback(w, req)

		So(w.Code, ShouldEqual, http.StatusSeeOther)
		location := w.Header().Get("Location")
		So(location, ShouldStartWith, "https://finmarkets.io/dashboard?")
		So(location, ShouldContainSubstring, "state=state123")
		So(location, ShouldContainSubstring, "status=captured")
	})

	Convey("User is redirected even when recording cannot be queued", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		checkoutService = createMockCheckoutService(mockDAO, paypalTestConfig(cfg))
		recorderService = service.NewRecorderService(mockDAO, *cfg)

		// fill the recorder queue so this capture's record is dropped
		for i := 0; i <= 64; i++ {
			recorderService.Record(models.PaymentRecordRest{UserID: "user1", Amount: "19.00"})
		}

		mockDAO.EXPECT().GetCheckoutResource("123").Return(approvedCheckoutResourceDB("123"), nil)
		mockDAO.EXPECT().PatchCheckoutResource("123", gomock.Any()).Return(nil)

		httpmock.Activate()
		defer httpmock.DeactivateAndReset()
		registerPayPalTokenResponder()
		registerOrderStatusResponder("order123", "APPROVED")
		registerCaptureResponder("order123", "txn456")

		req := httptest.NewRequest("GET", "/test?token=order123", nil)
		req = mux.SetURLVars(req, map[string]string{"checkout_id": "123"})
		w := httptest.NewRecorder()
		HandlePayPalCallback(w, req)

		So(w.Code, ShouldEqual, http.StatusSeeOther)
		So(w.Header().Get("Location"), ShouldContainSubstring, "status=captured")
	})

	Convey("Replayed callback for a captured session redirects without capturing again", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		checkoutService = createMockCheckoutService(mockDAO, paypalTestConfig(cfg))
		recorderService = service.NewRecorderService(mockDAO, *cfg)

		checkoutResource := approvedCheckoutResourceDB("123")
		checkoutResource.Data.Status = service.Captured.String()
		// outside the expiry window: a paid session never expires
		checkoutResource.Data.CreatedAt = time.Now().Add(-2 * time.Hour)
		// no patch or capture expectations: a replay must not touch the session
		mockDAO.EXPECT().GetCheckoutResource("123").Return(checkoutResource, nil)

		httpmock.Activate()
		defer httpmock.DeactivateAndReset()
		registerPayPalTokenResponder()

		req := httptest.NewRequest("GET", "/test?token=order123", nil)
		req = mux.SetURLVars(req, map[string]string{"checkout_id": "123"})
		w := httptest.NewRecorder()
		HandlePayPalCallback(w, req)

		So(w.Code, ShouldEqual, http.StatusSeeOther)
		So(httpmock.GetTotalCallCount(), ShouldEqual, 0)
		location := w.Header().Get("Location")
		So(location, ShouldStartWith, "https://finmarkets.io/dashboard?")
		So(location, ShouldContainSubstring, "status=captured")
	})

	Convey("Session without a created order does not allow capture", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		checkoutService = createMockCheckoutService(mockDAO, paypalTestConfig(cfg))
		recorderService = service.NewRecorderService(mockDAO, *cfg)

		checkoutResource := approvedCheckoutResourceDB("123")
		checkoutResource.Data.Status = service.Failed.String()
		mockDAO.EXPECT().GetCheckoutResource("123").Return(checkoutResource, nil)

		req := httptest.NewRequest("GET", "/test?token=order123", nil)
		req = mux.SetURLVars(req, map[string]string{"checkout_id": "123"})
		w := httptest.NewRecorder()
		HandlePayPalCallback(w, req)

		So(w.Code, ShouldEqual, http.StatusPreconditionFailed)
	})

	Convey("Order not yet approved is not captured", t, func() {
		mockDAO := dao.NewMockDAO(mockCtrl)
		checkoutService = createMockCheckoutService(mockDAO, paypalTestConfig(cfg))
		recorderService = service.NewRecorderService(mockDAO, *cfg)

		mockDAO.EXPECT().GetCheckoutResource("123").Return(approvedCheckoutResourceDB("123"), nil)

		httpmock.Activate()
		defer httpmock.DeactivateAndReset()
		registerPayPalTokenResponder()
		registerOrderStatusResponder("order123", "CREATED")

		req := httptest.NewRequest("GET", "/test?token=order123", nil)
		req = mux.SetURLVars(req, map[string]string{"checkout_id": "123"})
		w := httptest.NewRecorder()
		HandlePayPalCallback(w, req)

		So(w.Code, ShouldEqual, http.StatusPreconditionFailed)
	})
}
