package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/finmarkets/checkout.api.finmarkets.io/helpers"
	"github.com/finmarkets/checkout.api.finmarkets.io/models"
	"github.com/finmarkets/checkout.api.finmarkets.io/service"
)

// HandleCreateOrder creates a provider order for a pending checkout session
// and returns the URL the user must be sent to for approval
func HandleCreateOrder(w http.ResponseWriter, req *http.Request) {

	// get checkout resource from context, put there by CheckoutAuthenticationInterceptor
	checkoutSession, ok := req.Context().Value(helpers.ContextKeyCheckoutSession).(*models.CheckoutResourceRest)

	if !ok {
		log.ErrorR(req, fmt.Errorf("invalid CheckoutResourceRest in request context"))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	id := checkoutSession.MetaData.ID

	isExpired, err := service.IsExpired(*checkoutSession, &checkoutService.Config)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error checking checkout session expiry status: [%v]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if isExpired {
		log.ErrorR(req, fmt.Errorf("checkout session has expired"))
		w.WriteHeader(http.StatusForbidden)
		return
	}

	// An order can only be created once for a session still pending
	if checkoutSession.Status != service.Pending.String() {
		log.ErrorR(req, fmt.Errorf("checkout session status, [%s], for resource [%s] does not allow order creation", checkoutSession.Status, id))
		w.WriteHeader(http.StatusPreconditionFailed)
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

	checkoutOrder, responseType, err := pp.CreateCheckoutOrder(checkoutSession)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error creating order with PayPal: [%v]", err), log.Data{"service_response_type": responseType.String()})
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	err = json.NewEncoder(w).Encode(checkoutOrder)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error writing response: %v", err))
		return
	}

	log.InfoR(req, "Successful POST request to create order", log.Data{"checkout_id": id, "order_id": checkoutOrder.OrderID})
}
