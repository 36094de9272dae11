package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/finmarkets/checkout.api.finmarkets.io/models"
	"github.com/finmarkets/checkout.api.finmarkets.io/service"
	"github.com/finmarkets/checkout.api.finmarkets.io/utils"

	"github.com/go-playground/validator/v10"
)

// HandleValidateDiscount reports whether a discount code can be redeemed.
// A discount subsystem failure is answered with 502 rather than disguised
// as an invalid code, but still carries valid=false so checkout proceeds
// on the base amount.
func HandleValidateDiscount(w http.ResponseWriter, req *http.Request) {
	if req.Body == nil {
		log.ErrorR(req, fmt.Errorf("request body empty"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var validateRequest models.ValidateDiscountRequest
	err := json.NewDecoder(req.Body).Decode(&validateRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("request body invalid: [%v]", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	outcome, err := discountService.ValidateDiscount(validateRequest.Code)
	if outcome == service.DiscountProviderError {
		log.ErrorR(req, fmt.Errorf("error validating discount code: [%v]", err))
		utils.WriteJSONWithStatus(w, req, models.ValidateDiscountResponse{Valid: false}, http.StatusBadGateway)
		return
	}

	utils.WriteJSONWithStatus(w, req, models.ValidateDiscountResponse{Valid: outcome == service.DiscountValid}, http.StatusOK)

	log.InfoR(req, "Successful POST request to validate discount", log.Data{"outcome": outcome.String()})
}

// HandleApplyDiscount computes the discounted amount for a code and, when a
// checkout id is supplied, stores it against the checkout session. Stale
// apply attempts are rejected with 409 so they cannot overwrite a newer
// amount.
func HandleApplyDiscount(w http.ResponseWriter, req *http.Request) {
	if req.Body == nil {
		log.ErrorR(req, fmt.Errorf("request body empty"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var applyRequest models.ApplyDiscountRequest
	err := json.NewDecoder(req.Body).Decode(&applyRequest)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("request body invalid: [%v]", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err = validate.Struct(applyRequest); err != nil {
		log.ErrorR(req, fmt.Errorf("invalid POST request to apply discount: [%v]", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var outcome service.DiscountOutcome
	var final string
	responseType := service.Success

	if applyRequest.CheckoutID != "" {
		outcome, final, responseType, err = discountService.ApplyDiscountToCheckout(applyRequest.CheckoutID, applyRequest.Code, applyRequest.Amount, applyRequest.Attempt)
	} else {
		outcome, final, err = discountService.ApplyDiscount(applyRequest.Code, applyRequest.Amount)
	}

	response := models.ApplyDiscountResponse{
		Valid:       outcome == service.DiscountValid && responseType == service.Success,
		FinalAmount: final,
	}

	switch {
	case responseType == service.NotFound:
		log.ErrorR(req, fmt.Errorf("error applying discount code: [%v]", err))
		utils.WriteJSONWithStatus(w, req, response, http.StatusNotFound)
	case responseType == service.Conflict:
		log.InfoR(req, "stale discount apply attempt ignored", log.Data{"checkout_id": applyRequest.CheckoutID, "attempt": applyRequest.Attempt})
		utils.WriteJSONWithStatus(w, req, response, http.StatusConflict)
	case outcome == service.DiscountProviderError:
		log.ErrorR(req, fmt.Errorf("error applying discount code: [%v]", err))
		utils.WriteJSONWithStatus(w, req, response, http.StatusBadGateway)
	default:
		utils.WriteJSONWithStatus(w, req, response, http.StatusOK)
		log.InfoR(req, "Successful POST request to apply discount", log.Data{"outcome": outcome.String(), "final_amount": final})
	}
}
