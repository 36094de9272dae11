package handlers

import (
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/finmarkets/checkout.api.finmarkets.io/models"
)

// redirectUser redirects the user to the provided redirect_uri with query params.
// Defaults to the site root when the session carries no redirect URI.
func redirectUser(w http.ResponseWriter, r *http.Request, redirectURI string, params models.RedirectParams) {
	if redirectURI == "" {
		redirectURI = "/"
	}

	req, err := http.NewRequest("GET", redirectURI, nil)
	if err != nil {
		log.ErrorR(r, fmt.Errorf("error redirecting user: [%s]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	query := req.URL.Query()
	query.Add("state", params.State)
	query.Add("ref", params.Ref)
	query.Add("status", params.Status)

	generatedURL := fmt.Sprintf("%s?%s", redirectURI, query.Encode())
	log.InfoR(r, "Redirecting to:", log.Data{"generated_url": generatedURL})

	http.Redirect(w, r, generatedURL, http.StatusSeeOther)
}
