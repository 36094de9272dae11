package interceptors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitRateLimitIntercept(t *testing.T) {
	Convey("A nil rate limiter passes every request through", t, func() {
		var rateLimiter *RateLimiter

		req := httptest.NewRequest("POST", "/revenue/validate-discount", nil)
		w := httptest.NewRecorder()
		rateLimiter.RateLimitIntercept(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})).ServeHTTP(w, req)

		So(w.Code, ShouldEqual, http.StatusOK)
	})

	Convey("Closing a nil rate limiter is a no-op", t, func() {
		var rateLimiter *RateLimiter

		So(rateLimiter.Close(), ShouldBeNil)
	})
}

func TestUnitNewRateLimiter(t *testing.T) {
	Convey("Invalid redis URL", t, func() {
		rateLimiter, err := NewRateLimiter("not-a-redis-url", 30)

		So(rateLimiter, ShouldBeNil)
		So(err.Error(), ShouldContainSubstring, "invalid redis URL")
	})
}
