// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"errors"
	"fmt"
)

// Sentinel errors for session lookup and creation. Callers wrap these
// with the offending session id via fmt.Errorf("...%w", ...), so tests
// and transports match with errors.Is.
var (
	// ErrSessionNotFound reports a session id that is not active (or,
	// for export, not known at all).
	ErrSessionNotFound = errors.New("session not found")

	// ErrDuplicateSession reports an id collision on creation. Creation
	// never retries with a fresh id; the caller decides.
	ErrDuplicateSession = errors.New("session id already in use")
)

// ValidationError reports malformed step data, such as an ideas field
// that is not a list of strings.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid step data: field %q %s", e.Field, e.Reason)
}
