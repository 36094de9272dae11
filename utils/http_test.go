package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitWriteJSONWithStatus(t *testing.T) {
	Convey("Write JSON response with status", t, func() {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		WriteJSONWithStatus(w, req, NewMessageResponse("message"), http.StatusTeapot)

		So(w.Code, ShouldEqual, http.StatusTeapot)
		So(w.Header().Get("Content-Type"), ShouldEqual, "application/json")
		So(w.Body.String(), ShouldContainSubstring, `"message":"message"`)
	})
}

func TestUnitClientIP(t *testing.T) {
	Convey("X-Forwarded-For takes precedence, first hop wins", t, func() {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		req.Header.Set("X-Real-IP", "198.51.100.2")

		So(ClientIP(req), ShouldEqual, "203.0.113.7")
	})

	Convey("X-Real-IP is used when no X-Forwarded-For", t, func() {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Real-IP", "198.51.100.2")

		So(ClientIP(req), ShouldEqual, "198.51.100.2")
	})

	Convey("RemoteAddr is used with the port stripped", t, func() {
		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "192.0.2.1:45678"

		So(ClientIP(req), ShouldEqual, "192.0.2.1")
	})
}
