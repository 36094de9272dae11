package service

// ResponseType enumerates the categories of outcome a service call can have
type ResponseType int

const (
	// InvalidData response
	InvalidData ResponseType = iota

	// Error response
	Error

	// Forbidden response
	Forbidden

	// NotFound response
	NotFound

	// Success response
	Success

	// Conflict response, returned when a stale update is rejected
	Conflict
)

var vals = [...]string{
	"invalid-data",
	"error",
	"forbidden",
	"not-found",
	"success",
	"conflict",
}

// String representation of `ResponseType`
func (a ResponseType) String() string {
	return vals[a]
}
