package handlers

import (
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/finmarkets/checkout.api.finmarkets.io/config"
	"github.com/finmarkets/checkout.api.finmarkets.io/dao"
	"github.com/finmarkets/checkout.api.finmarkets.io/interceptors"
	"github.com/finmarkets/checkout.api.finmarkets.io/service"
	"github.com/gorilla/mux"
)

var checkoutService *service.CheckoutService
var discountService *service.DiscountService
var merchantService *service.MerchantService
var recorderService *service.RecorderService

// Register defines the route mappings for the main router and its subrouters
func Register(mainRouter *mux.Router, cfg config.Config) {
	m := dao.NewDAO(&cfg)

	checkoutService = &service.CheckoutService{
		DAO:    m,
		Config: cfg,
	}

	discountService = &service.DiscountService{
		DAO:    m,
		Config: cfg,
	}

	merchantService = &service.MerchantService{
		Config: cfg,
	}

	recorderService = service.NewRecorderService(m, cfg)
	recorderService.Start()

	ca := &interceptors.CheckoutAuthenticationInterceptor{
		Service: *checkoutService,
	}

	// The limiter is optional: with no Redis configured the discount
	// endpoints run unlimited.
	var rateLimiter *interceptors.RateLimiter
	if cfg.RedisURL != "" {
		var err error
		rateLimiter, err = interceptors.NewRateLimiter(cfg.RedisURL, cfg.DiscountRequestsPerMin)
		if err != nil {
			log.Error(fmt.Errorf("error creating rate limiter, discount endpoints will not be limited: [%v]", err))
		}
	}

	mainRouter.HandleFunc("/healthcheck", healthCheck).Methods("GET").Name("get-healthcheck")
	mainRouter.HandleFunc("/paypal-config", HandleGetMerchantConfig).Methods("GET").Name("get-merchant-config")

	// Create subrouters. Routes need different middleware, so the router is
	// split up to allow per-subrouter middleware.

	// create-checkout endpoint should not be intercepted by the checkout auth interceptor, so needs to be its own subrouter
	rootCheckoutRouter := mainRouter.PathPrefix("/checkouts").Subrouter()
	rootCheckoutRouter.HandleFunc("", HandleCreateCheckoutSession).Methods("POST").Name("create-checkout")

	// get-checkout endpoint needs ownership auth, so needs to be its own subrouter
	getCheckoutRouter := rootCheckoutRouter.PathPrefix("/{checkout_id}").Subrouter()
	getCheckoutRouter.HandleFunc("", HandleGetCheckoutSession).Methods("GET").Name("get-checkout")

	// order creation also needs ownership auth
	orderRouter := mainRouter.PathPrefix("/checkouts/{checkout_id}/orders").Subrouter()
	orderRouter.HandleFunc("", HandleCreateOrder).Methods("POST").Name("create-order")

	// discount and record-payment endpoints are rate limited
	revenueRouter := mainRouter.PathPrefix("/revenue").Subrouter()
	revenueRouter.HandleFunc("/validate-discount", HandleValidateDiscount).Methods("POST").Name("validate-discount")
	revenueRouter.HandleFunc("/apply-discount", HandleApplyDiscount).Methods("POST").Name("apply-discount")
	revenueRouter.HandleFunc("/record-payment/", HandleRecordPayment).Methods("POST").Name("record-payment")

	// callback endpoints should not be intercepted by the checkout auth interceptor, so need to be their own subrouter
	callbackRouter := mainRouter.PathPrefix("/callback").Subrouter()
	callbackRouter.HandleFunc("/checkouts/paypal/{checkout_id}", HandlePayPalCallback).Methods("GET").Name("handle-paypal-callback")

	// Set middleware for subrouters
	rootCheckoutRouter.Use(log.Handler)
	getCheckoutRouter.Use(log.Handler, ca.CheckoutAuthenticationIntercept)
	orderRouter.Use(log.Handler, ca.CheckoutAuthenticationIntercept)
	revenueRouter.Use(log.Handler, rateLimiter.RateLimitIntercept)
	callbackRouter.Use(log.Handler)
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
