package client

import (
	"errors"
	"net/http"

	fiber "github.com/gofiber/fiber/v2"
)

// Failure classes returned by the client. Every error from an APIClient
// method wraps exactly one of them.
var (
	// ErrNetworkFailure means the request could not be sent or no response was received
	ErrNetworkFailure = errors.New("network failure")
	// ErrServerFailure means the API answered with a non-success status
	ErrServerFailure = errors.New("server failure")
	// ErrMalformedResponse means the response body did not have the expected shape
	ErrMalformedResponse = errors.New("malformed response")
)

// ErrorResponse represents the standard error response from the API
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusCode returns the HTTP status carried by a server failure, or 0.
func StatusCode(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return 0
}

// IsNotFound reports whether err is a server failure with a 404 status
func IsNotFound(err error) bool {
	return errors.Is(err, ErrServerFailure) && StatusCode(err) == http.StatusNotFound
}

// Kind returns a short name of the failure class of err, for logging.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNetworkFailure):
		return "network"
	case errors.Is(err, ErrServerFailure):
		return "server"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	default:
		return "unknown"
	}
}
