package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/finmarkets/checkout.api.finmarkets.io/models"
	"github.com/finmarkets/checkout.api.finmarkets.io/utils"

	"github.com/go-playground/validator/v10"
)

// HandleRecordPayment accepts a completed payment record from a legacy
// checkout client and hands it to the recorder. The work is asynchronous,
// so a well-formed request is always accepted.
func HandleRecordPayment(w http.ResponseWriter, req *http.Request) {
	if req.Body == nil {
		log.ErrorR(req, fmt.Errorf("request body empty"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var record models.PaymentRecordRest
	err := json.NewDecoder(req.Body).Decode(&record)
	if err != nil {
		log.ErrorR(req, fmt.Errorf("request body invalid: [%v]", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err = validate.Struct(record); err != nil {
		log.ErrorR(req, fmt.Errorf("invalid POST request to record payment: [%v]", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	recorderService.Record(record)

	utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse("payment record accepted"), http.StatusAccepted)

	log.InfoR(req, "Successful POST request to record payment", log.Data{"user_id": record.UserID})
}
