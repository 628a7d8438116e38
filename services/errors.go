package services

import "errors"

// Sentinel errors surfaced to handlers, which map them to HTTP status
// codes. Wrap with fmt.Errorf("...: %w", err) so errors.Is keeps working.
var (
	// ErrInvalidLimit is returned when setting a limit with amount <= 0.
	ErrInvalidLimit = errors.New("limit amount must be greater than zero")

	// ErrStoreUnavailable wraps database failures so callers can present
	// them as a temporary outage rather than a crash.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrNotFound is returned when a requested row does not exist or
	// belongs to another user.
	ErrNotFound = errors.New("not found")
)
