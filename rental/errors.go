package rental

import "errors"

var (
	// ErrInvalidArgument signals misuse by the caller: out-of-range construction parameters, missing
	// required values, unknown confirmation numbers or a lease handed to the wrong unit.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRentalDate signals a date range the unit cannot accept: outside the global bounds, badly
	// ordered, misaligned to the unit's week boundary, too long, or overlapping an existing lease.
	ErrRentalDate = errors.New("rental date error")

	// ErrRentalCapacity signals more occupants than the unit holds.
	ErrRentalCapacity = errors.New("rental capacity exceeded")

	// ErrRentalOutOfService signals a unit that currently accepts no reservations.
	ErrRentalOutOfService = errors.New("rental unit out of service")
)
