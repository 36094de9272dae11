package main

import (
	"net/http"
	"os"

	"github.com/companieshouse/chs.go/log"

	"github.com/finmarkets/checkout.api.finmarkets.io/config"
	"github.com/finmarkets/checkout.api.finmarkets.io/handlers"

	"github.com/gorilla/mux"
)

func main() {
	log.Namespace = "checkout.api.finmarkets.io"

	cfg, err := config.Get()
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	mainRouter := mux.NewRouter()
	handlers.Register(mainRouter, *cfg)

	log.Info("Starting checkout.api.finmarkets.io service")
	err = http.ListenAndServe(cfg.BindAddr, mainRouter)

	if err != nil {
		log.Error(err)
	}
	log.Trace("Exiting checkout.api.finmarkets.io service")
}
