package handlers

import (
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/finmarkets/checkout.api.finmarkets.io/utils"
)

// configurationErrorMessage is returned when the PayPal integration has not
// been set up; the checkout page shows it verbatim and renders no buttons
const configurationErrorMessage = "payment integration is not configured, please contact the site administrator"

// HandleGetMerchantConfig serves the merchant configuration needed to
// initialise the payment SDK on a checkout page
func HandleGetMerchantConfig(w http.ResponseWriter, req *http.Request) {
	merchantConfig := merchantService.MerchantConfig()

	if merchantConfig.ClientID == nil {
		log.ErrorR(req, fmt.Errorf("no paypal client id configured"))
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse(configurationErrorMessage), http.StatusServiceUnavailable)
		return
	}

	utils.WriteJSONWithStatus(w, req, merchantConfig, http.StatusOK)

	log.InfoR(req, "Successful GET request for merchant config")
}
