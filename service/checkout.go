package service

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/finmarkets/checkout.api.finmarkets.io/config"
	"github.com/finmarkets/checkout.api.finmarkets.io/dao"
	"github.com/finmarkets/checkout.api.finmarkets.io/models"
	"github.com/finmarkets/checkout.api.finmarkets.io/transformers"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutService contains the DAO for db access
type CheckoutService struct {
	DAO    dao.DAO
	Config config.Config
}

// CheckoutStatus Enum Type
type CheckoutStatus int

// Enumeration containing all possible checkout statuses
const (
	Pending CheckoutStatus = 1 + iota
	OrderCreated
	Approved
	Captured
	Recorded
	Failed
	Expired
)

// String representation of checkout statuses
var checkoutStatuses = [...]string{
	"pending",
	"order-created",
	"approved",
	"captured",
	"recorded",
	"failed",
	"expired",
}

func (checkoutStatus CheckoutStatus) String() string {
	return checkoutStatuses[checkoutStatus-1]
}

var amountFormat = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// CreateCheckoutSession creates a checkout session for the authenticated user
// and returns the decorated REST resource
func (service *CheckoutService) CreateCheckoutSession(req *http.Request, incoming models.IncomingCheckoutResourceRequest, userID string, userEmail string) (*models.CheckoutResourceRest, ResponseType, error) {

	amount := incoming.Amount
	if amount == "" {
		amount = service.Config.ProPlanAmount
	}
	if !amountFormat.MatchString(amount) {
		return nil, InvalidData, fmt.Errorf("amount [%s] format incorrect", amount)
	}

	var checkoutResourceRest models.CheckoutResourceRest
	checkoutResourceRest.Amount = FormatAmount(amount)
	checkoutResourceRest.Currency = service.Config.Currency
	checkoutResourceRest.Brand = service.Config.Brand
	checkoutResourceRest.Status = Pending.String()
	checkoutResourceRest.Reference = incoming.Reference
	// To match the format time is saved to mongo, e.g. "2018-11-22T08:39:16.782Z", truncate the time
	checkoutResourceRest.CreatedAt = time.Now().Truncate(time.Millisecond)
	checkoutResourceRest.CreatedBy = models.CreatedByRest{
		ID:    userID,
		Email: userEmail,
	}

	id := uuid.NewString()
	journeyURL := service.Config.CheckoutWebURL + "/checkouts/" + id + "/pay"
	checkoutResourceRest.Links = models.CheckoutLinksRest{
		Journey: journeyURL,
		Self:    fmt.Sprintf("checkouts/%s", id),
	}
	checkoutResourceRest.MetaData = models.CheckoutMetaDataRest{
		ID:          id,
		RedirectURI: incoming.RedirectURI,
		State:       incoming.State,
	}

	checkoutResourceDB := transformers.CheckoutTransformer{}.TransformToDB(checkoutResourceRest)

	err := service.DAO.CreateCheckoutResource(&checkoutResourceDB)
	if err != nil {
		return nil, Error, fmt.Errorf("error writing to MongoDB: %v", err)
	}

	log.InfoR(req, "created checkout session", log.Data{"checkout_id": id, "amount": checkoutResourceRest.Amount})

	return &checkoutResourceRest, Success, nil
}

// GetCheckoutSession retrieves the checkout session with the given id
func (service *CheckoutService) GetCheckoutSession(req *http.Request, id string) (*models.CheckoutResourceRest, ResponseType, error) {
	checkoutResource, err := service.DAO.GetCheckoutResource(id)
	if err != nil {
		return nil, Error, fmt.Errorf("error getting checkout resource from db: [%v]", err)
	}
	if checkoutResource == nil {
		log.TraceR(req, "checkout session not found", log.Data{"checkout_id": id})
		return nil, NotFound, nil
	}

	checkoutResourceRest := transformers.CheckoutTransformer{}.TransformToRest(*checkoutResource)

	return &checkoutResourceRest, Success, nil
}

// PatchCheckoutSession patches the stored checkout session
func (service *CheckoutService) PatchCheckoutSession(id string, update models.CheckoutResourceRest) (ResponseType, error) {
	updateDB := transformers.CheckoutTransformer{}.TransformToDB(update)

	err := service.DAO.PatchCheckoutResource(id, &updateDB)
	if err != nil {
		if err.Error() == "not found" {
			return NotFound, fmt.Errorf("could not find checkout resource to patch")
		}
		return Error, fmt.Errorf("error patching checkout session on database: [%v]", err)
	}

	return Success, nil
}

// StoreExternalOrderDetails saves the provider order id against the checkout
// session and moves it to order-created
func (service *CheckoutService) StoreExternalOrderDetails(id string, orderID string) error {
	update := models.CheckoutResourceDB{
		ExternalOrderID: orderID,
		Data: models.CheckoutResourceDataDB{
			PaymentMethod: "PayPal",
			Status:        OrderCreated.String(),
		},
	}
	return service.DAO.PatchCheckoutResource(id, &update)
}

// IsExpired returns true when the checkout session is older than the
// configured expiry window
func IsExpired(checkoutSession models.CheckoutResourceRest, cfg *config.Config) (bool, error) {
	expiryTimeInMinutes, err := strconv.Atoi(cfg.ExpiryTimeInMinutes)
	if err != nil {
		return false, fmt.Errorf("error converting expiry time in minutes to int: [%v]", err)
	}

	expiryTime := checkoutSession.CreatedAt.Add(time.Minute * time.Duration(expiryTimeInMinutes))

	return time.Now().After(expiryTime), nil
}

// FormatAmount normalises a decimal amount string to exactly two decimal
// places, e.g. "19" becomes "19.00"
func FormatAmount(amount string) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}
	return d.StringFixed(2)
}
