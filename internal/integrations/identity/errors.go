package identity

import "errors"

var (
	// ErrPatientNotFound is returned when the identity service has no such patient
	ErrPatientNotFound = errors.New("patient not found")

	// ErrProviderNotFound is returned when the identity service has no such provider
	ErrProviderNotFound = errors.New("provider not found")

	// ErrInternal is returned on client-side failures
	ErrInternal = errors.New("identity client: internal error")

	// ErrInvalidResponse is returned when the identity service replies with
	// something the client cannot interpret
	ErrInvalidResponse = errors.New("identity client: invalid response")
)
