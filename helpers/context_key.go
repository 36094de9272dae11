package helpers

// ContextKey is a type for creating context keys
type ContextKey string

// ContextKeyCheckoutSession is a specific key for identifying "checkout_session" contexts added to the http request
var ContextKeyCheckoutSession = ContextKey("checkout_session")

// ContextKeyUserID is a specific key for identifying "user_id" contexts added to the http request
var ContextKeyUserID = ContextKey("user_id")
