package interceptors

import (
	"context"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/finmarkets/checkout.api.finmarkets.io/helpers"
	"github.com/finmarkets/checkout.api.finmarkets.io/service"
	"github.com/gorilla/mux"
)

// CheckoutAuthenticationInterceptor contains the checkout service used in the interceptor
type CheckoutAuthenticationInterceptor struct {
	Service service.CheckoutService
}

// CheckoutAuthenticationIntercept checks that the requesting user owns the
// checkout session and stores the session in the request context
func (interceptor CheckoutAuthenticationInterceptor) CheckoutAuthenticationIntercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id := vars["checkout_id"]
		if id == "" {
			log.ErrorR(r, fmt.Errorf("CheckoutAuthenticationInterceptor error: no checkout id"))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			log.ErrorR(r, fmt.Errorf("CheckoutAuthenticationInterceptor unauthorised: no user identity"))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		checkoutSession, responseType, err := interceptor.Service.GetCheckoutSession(r, id)
		if err != nil {
			log.ErrorR(r, fmt.Errorf("CheckoutAuthenticationInterceptor error getting checkout session: [%v]", err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if responseType == service.NotFound || checkoutSession == nil {
			log.ErrorR(r, fmt.Errorf("CheckoutAuthenticationInterceptor: checkout session not found. id: %s", id))
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if checkoutSession.CreatedBy.ID != userID {
			log.ErrorR(r, fmt.Errorf("CheckoutAuthenticationInterceptor unauthorised: user does not own checkout session"), log.Data{"checkout_id": id})
			w.WriteHeader(http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), helpers.ContextKeyCheckoutSession, checkoutSession)
		ctx = context.WithValue(ctx, helpers.ContextKeyUserID, userID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
