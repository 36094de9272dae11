package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/finmarkets/checkout.api.finmarkets.io/helpers"
	"github.com/finmarkets/checkout.api.finmarkets.io/models"
	"github.com/finmarkets/checkout.api.finmarkets.io/service"

	"github.com/go-playground/validator/v10"
)

// HandleCreateCheckoutSession creates a checkout session and returns a journey URL for the calling app to redirect to
func HandleCreateCheckoutSession(w http.ResponseWriter, req *http.Request) {
	if req.Body == nil {
		log.ErrorR(req, fmt.Errorf("request body empty"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	userID := req.Header.Get("X-User-ID")
	if userID == "" {
		log.ErrorR(req, fmt.Errorf("no user identity supplied"))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	requestDecoder := json.NewDecoder(req.Body)
	var incomingCheckoutResourceRequest models.IncomingCheckoutResourceRequest
	err := requestDecoder.Decode(&incomingCheckoutResourceRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("request body invalid: [%v]", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err = validateCheckoutCreate(incomingCheckoutResourceRequest); err != nil {
		log.ErrorR(req, fmt.Errorf("invalid POST request to create checkout session: [%v]", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	checkoutResource, responseType, err := checkoutService.CreateCheckoutSession(req, incomingCheckoutResourceRequest, userID, req.Header.Get("X-User-Email"))

	if err != nil {
		log.ErrorR(req, fmt.Errorf("error creating checkout resource: [%v]", err))
		switch responseType {
		case service.InvalidData:
			w.WriteHeader(http.StatusBadRequest)
			return
		default:
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", checkoutResource.Links.Journey)
	w.WriteHeader(http.StatusCreated)

	err = json.NewEncoder(w).Encode(checkoutResource)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error writing response: %v", err))
		return
	}

	log.InfoR(req, "Successful POST request for new checkout resource", log.Data{"checkout_id": checkoutResource.MetaData.ID, "status": http.StatusCreated})
}

func validateCheckoutCreate(incomingCheckoutResourceRequest models.IncomingCheckoutResourceRequest) error {
	validate := validator.New()
	return validate.Struct(incomingCheckoutResourceRequest)
}

// HandleGetCheckoutSession retrieves the checkout session from request context
func HandleGetCheckoutSession(w http.ResponseWriter, req *http.Request) {

	// get checkout resource from context, put there by CheckoutAuthenticationInterceptor
	checkoutSession, ok := req.Context().Value(helpers.ContextKeyCheckoutSession).(*models.CheckoutResourceRest)

	if !ok {
		log.ErrorR(req, fmt.Errorf("invalid CheckoutResourceRest in request context"))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Check if the checkout session is expired
	isExpired, err := service.IsExpired(*checkoutSession, &checkoutService.Config)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error checking checkout session expiry status: [%v]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if isExpired && checkoutSession.Status != service.Captured.String() && checkoutSession.Status != service.Recorded.String() {
		checkoutSession.Status = service.Expired.String()
	}

	w.Header().Set("Content-Type", "application/json")

	err = json.NewEncoder(w).Encode(checkoutSession)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error writing response: %v", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	log.InfoR(req, "Successful GET request for checkout resource", log.Data{"checkout_id": checkoutSession.MetaData.ID})
}
