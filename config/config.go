// Package config defines the environment variable and command-line flags
// supported by this service and includes default values for particular
// fields.
package config

import (
	"sync"

	"github.com/companieshouse/gofigure"
)

var cfg *Config
var mtx sync.Mutex

// Config defines the configuration options for this service.
type Config struct {
	BindAddr               string   `env:"BIND_ADDR"                    flag:"bind-addr"                    flagDesc:"Bind address"`
	MongoDBURL             string   `env:"MONGODB_URL"                  flag:"mongodb-url"                  flagDesc:"MongoDB server URL"`
	Database               string   `env:"MONGODB_DATABASE"             flag:"mongodb-database"             flagDesc:"MongoDB database for data"`
	CheckoutsCollection    string   `env:"MONGODB_CHECKOUTS_COLLECTION" flag:"mongodb-checkouts-collection" flagDesc:"MongoDB collection for checkout sessions"`
	DiscountsCollection    string   `env:"MONGODB_DISCOUNTS_COLLECTION" flag:"mongodb-discounts-collection" flagDesc:"MongoDB collection for discount codes"`
	RecordsCollection      string   `env:"MONGODB_RECORDS_COLLECTION"   flag:"mongodb-records-collection"   flagDesc:"MongoDB collection for payment records"`
	RedisURL               string   `env:"REDIS_URL"                    flag:"redis-url"                    flagDesc:"Redis server URL used for rate limiting"`
	BrokerAddr             []string `env:"KAFKA_BROKER_ADDR"            flag:"broker-addr"                  flagDesc:"Kafka broker address"`
	SchemaRegistryURL      string   `env:"SCHEMA_REGISTRY_URL"          flag:"schema-registry-url"          flagDesc:"Schema registry URL"`
	CheckoutWebURL         string   `env:"CHECKOUT_WEB_URL"             flag:"checkout-web-url"             flagDesc:"Base URL for the checkout web journey"`
	CheckoutAPIURL         string   `env:"CHECKOUT_API_URL"             flag:"checkout-api-url"             flagDesc:"Base URL for this service, used for provider return URLs"`
	PaypalEnv              string   `env:"PAYPAL_ENV"                   flag:"paypal-env"                   flagDesc:"PayPal environment - live or test"`
	PaypalClientID         string   `env:"PAYPAL_CLIENT_ID"             flag:"paypal-client-id"             flagDesc:"Client ID used to authenticate API calls with PayPal"`
	PaypalSecret           string   `env:"PAYPAL_SECRET"                flag:"paypal-secret"                flagDesc:"Secret used to authenticate API calls with PayPal"`
	Brand                  string   `env:"BRAND"                        flag:"brand"                        flagDesc:"Brand name shown on order summaries"`
	ProPlanAmount          string   `env:"PRO_PLAN_AMOUNT"              flag:"pro-plan-amount"              flagDesc:"Price of the pro plan"`
	Currency               string   `env:"CURRENCY"                     flag:"currency"                     flagDesc:"ISO 4217 currency code for checkouts"`
	ExpiryTimeInMinutes    string   `env:"EXPIRY_TIME_IN_MINUTES"       flag:"expiry-time-in-minutes"       flagDesc:"Checkout session expiry time in minutes"`
	DisabledFundingSources string   `env:"DISABLED_FUNDING_SOURCES"     flag:"disabled-funding-sources"     flagDesc:"Comma separated funding sources disabled on the PayPal buttons"`
	DiscountRequestsPerMin int      `env:"DISCOUNT_REQUESTS_PER_MIN"    flag:"discount-requests-per-min"    flagDesc:"Rate limit applied to the discount endpoints"`
}

// DefaultConfig returns a pointer to a Config instance that has been populated
// with default values.
func DefaultConfig() *Config {
	return &Config{
		Database:               "checkouts",
		CheckoutsCollection:    "checkouts",
		DiscountsCollection:    "discounts",
		RecordsCollection:      "payment-records",
		Brand:                  "FinMarkets Retail Trade Scanner",
		ProPlanAmount:          "19",
		Currency:               "USD",
		ExpiryTimeInMinutes:    "60",
		DisabledFundingSources: "card,credit",
		DiscountRequestsPerMin: 30,
	}
}

// Get returns a pointer to a Config instance that has been populated with
// values provided by the environment or command-line flags, or with default
// values if none are provided.
func Get() (*Config, error) {
	mtx.Lock()
	defer mtx.Unlock()

	if cfg != nil {
		return cfg, nil
	}

	cfg = DefaultConfig()

	err := gofigure.Gofigure(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
