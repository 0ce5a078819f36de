// Package common defines shared constants and sentinel errors used across
// the recipebox client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("not authenticated")

	// Persisted state that could not be decoded. Recovered by callers, never
	// shown to the user.
	ErrMalformedState = errors.New("malformed persisted state")

	// Preference validation errors.
	ErrInvalidPreferenceValue = errors.New("invalid preference value")
)
