// Package service provides application-level services that compose the
// scheduling engine with the persistence layer: user accounts, vocabulary
// management, review submission, schedule planning and notification advice.
package service

import "errors"

// Common service errors - sentinel errors used across service
// implementations. Callers check for them with errors.Is(); the API layer
// maps them to HTTP status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than
	// the one making the request. Maps to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrNothingDue indicates the user has no words due for review right
	// now. Maps to HTTP 204 No Content.
	ErrNothingDue = errors.New("no words due for review")

	// ErrInvalidCredentials indicates an authentication attempt with an
	// unknown email or wrong password. Maps to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
