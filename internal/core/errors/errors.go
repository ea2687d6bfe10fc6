package errors

import "errors"

var (
	// ErrOutOfOrder is returned when a transition is older than the last one
	// stored for its device. The event is dropped.
	ErrOutOfOrder = errors.New("transition out of order")

	// ErrInvalidRange is returned for inverted or empty query ranges.
	ErrInvalidRange = errors.New("invalid range")

	ErrInvalidState       = errors.New("invalid presence state")
	ErrInvalidGranularity = errors.New("invalid granularity")
	ErrInvalidDeviceID    = errors.New("invalid device id")
)
