package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/finmarkets/checkout.api.finmarkets.io/models"
	"github.com/finmarkets/checkout.api.finmarkets.io/service"
	"github.com/gorilla/mux"
	"github.com/plutov/paypal/v4"
)

// HandlePayPalCallback handles the return from PayPal after the user has
// approved the order: the order is captured, a payment record is handed to
// the recorder and the user is redirected. Recording is best effort and
// never blocks the redirect.
func HandlePayPalCallback(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	id := vars["checkout_id"]
	if id == "" {
		log.ErrorR(req, fmt.Errorf("checkout id not supplied"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	checkoutSession, _, err := checkoutService.GetCheckoutSession(req, id)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error getting checkout session: [%v]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if checkoutSession == nil {
		log.ErrorR(req, fmt.Errorf("checkout session not found. id: %s", id))
		w.WriteHeader(http.StatusNotFound)
		return
	}

	// A replayed callback for a session already paid, e.g. the user
	// refreshing the landing page or PayPal re-delivering the return URL,
	// must not capture again. Redirect as the original callback did.
	if checkoutSession.Status == service.Captured.String() || checkoutSession.Status == service.Recorded.String() {
		log.InfoR(req, "checkout session already captured, redirecting", log.Data{"checkout_id": id})
		redirectUser(w, req, checkoutSession.MetaData.RedirectURI, models.RedirectParams{
			State:  checkoutSession.MetaData.State,
			Ref:    checkoutSession.Reference,
			Status: checkoutSession.Status,
		})
		return
	}

	// Check if the checkout session is expired
	isExpired, err := service.IsExpired(*checkoutSession, &checkoutService.Config)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error checking checkout session expiry status: [%v]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if isExpired {
		checkoutSession.Status = service.Expired.String()
		responseType, err := checkoutService.PatchCheckoutSession(id, *checkoutSession)
		if err != nil {
			log.ErrorR(req, fmt.Errorf("error setting checkout status of expired checkout session: [%v]", err), log.Data{"service_response_type": responseType.String()})
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		log.ErrorR(req, fmt.Errorf("checkout session has expired"))
		w.WriteHeader(http.StatusForbidden)
		return
	}

	// Ensure payment method matches endpoint
	if strings.ToLower(checkoutSession.PaymentMethod) != "paypal" {
		log.ErrorR(req, fmt.Errorf("payment method, [%s], for resource [%s] not recognised", checkoutSession.PaymentMethod, id))
		w.WriteHeader(http.StatusPreconditionFailed)
		return
	}

	if checkoutSession.Status != service.OrderCreated.String() {
		log.ErrorR(req, fmt.Errorf("checkout session status, [%s], for resource [%s] does not allow capture", checkoutSession.Status, id))
		w.WriteHeader(http.StatusPreconditionFailed)
		return
	}

	// PayPal passes the order id back as the token query parameter; it must
	// match the order created for this session
	orderID := checkoutSession.MetaData.ExternalOrderID
	if token := req.URL.Query().Get("token"); token != "" && token != orderID {
		log.ErrorR(req, fmt.Errorf("callback token does not match order for resource [%s]", id))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	paypalSDK, err := service.GetPayPalClient(checkoutService.Config)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error getting PayPal client: [%v]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	pp := &service.PayPalService{
		Client:          paypalSDK,
		CheckoutService: *checkoutService,
	}

	// The order must have been approved by the user before it can be captured
	providerStatus, responseType, err := pp.CheckPaymentProviderStatus(checkoutSession)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error checking order status with PayPal: [%v]", err), log.Data{"service_response_type": responseType.String()})
		w.WriteHeader(http.StatusBadGateway)
		return
	}
	if providerStatus.Status != paypal.OrderStatusApproved {
		log.ErrorR(req, fmt.Errorf("paypal order status, [%s], for resource [%s] does not allow capture", providerStatus.Status, id))
		w.WriteHeader(http.StatusPreconditionFailed)
		return
	}

	transactionID, responseType, err := pp.CapturePayment(orderID)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error capturing order with PayPal: [%v]", err), log.Data{"service_response_type": responseType.String()})

		checkoutSession.Status = service.Failed.String()
		if _, patchErr := checkoutService.PatchCheckoutSession(id, *checkoutSession); patchErr != nil {
			log.ErrorR(req, fmt.Errorf("error setting checkout status of failed capture: [%v]", patchErr))
		}
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	checkoutSession.Status = service.Captured.String()
	// To match the format time is saved to mongo, e.g. "2018-11-22T08:39:16.782Z", truncate the time
	checkoutSession.CompletedAt = time.Now().Truncate(time.Millisecond)
	checkoutSession.MetaData.ExternalTransactionID = transactionID

	responseType, err = checkoutService.PatchCheckoutSession(id, *checkoutSession)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error setting checkout status: [%v]", err), log.Data{"service_response_type": responseType.String()})
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	log.InfoR(req, "Successfully captured checkout session", log.Data{"checkout_id": id, "transaction_id": transactionID})

	// Recording is best effort: whatever happens here the user is redirected
	var discountCode *string
	if checkoutSession.DiscountCode != "" {
		discountCode = &checkoutSession.DiscountCode
	}
	recorderService.Record(models.PaymentRecordRest{
		UserID:        checkoutSession.CreatedBy.ID,
		Amount:        checkoutSession.Amount,
		DiscountCode:  discountCode,
		PaymentDate:   checkoutSession.CompletedAt,
		TransactionID: transactionID,
		CheckoutID:    id,
	})

	params := models.RedirectParams{
		State:  checkoutSession.MetaData.State,
		Ref:    checkoutSession.Reference,
		Status: checkoutSession.Status,
	}

	redirectUser(w, req, checkoutSession.MetaData.RedirectURI, params)
}
