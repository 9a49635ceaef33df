package cstring

import (
	"github.com/juju/errors"
)

var (
	// ErrCapacityExceeded is the cause of every error returned by an
	// operation which would need to hold more elements than the buffer
	// capacity. The buffer is left unmodified.
	ErrCapacityExceeded = errors.New("insufficient capacity")

	// ErrEmptyBuffer is the cause of the error returned by PopBack on an
	// empty buffer.
	ErrEmptyBuffer = errors.New("pop from empty buffer")

	// ErrCapacityMismatch is returned by Assign when the two buffers have
	// different capacities.
	ErrCapacityMismatch = errors.New("capacity mismatch")
)

// IsCapacityExceeded returns whether the cause of err is ErrCapacityExceeded.
func IsCapacityExceeded(err error) bool {
	return err != nil && errors.Cause(err) == ErrCapacityExceeded
}

// IsEmptyBuffer returns whether the cause of err is ErrEmptyBuffer.
func IsEmptyBuffer(err error) bool {
	return err != nil && errors.Cause(err) == ErrEmptyBuffer
}

func capacityErrorf(op string, need, capacity int) error {
	return errors.Annotatef(
		ErrCapacityExceeded, "%s: need %d elements, capacity is %d", op, need, capacity,
	)
}
