package place

import "errors"

var (
	// ErrCapacityExhausted is returned when no unused custom type id or group
	// bit is left in the registry.
	ErrCapacityExhausted = errors.New("place: registry capacity exhausted")
	// ErrInvalidType is returned by Registry.Set for a source it cannot use.
	ErrInvalidType = errors.New("place: invalid place type source")
	// ErrNotFound is returned by stores when a handle is unknown.
	ErrNotFound = errors.New("place: not found")
	// ErrNotOpen is returned when closing a registry no database holds.
	ErrNotOpen = errors.New("place: registry not open")
	// ErrBadDate is returned when date text cannot be parsed.
	ErrBadDate = errors.New("place: invalid date")
)
