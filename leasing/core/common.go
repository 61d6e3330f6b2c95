package core

import (
	"time"
)

// ClientIDString represents a client identifier
type ClientIDString = string

// UnitKeyString represents a rental unit location in "FF-RR" form
type UnitKeyString = string

// DateString represents a calendar date in YYYY-MM-DD form
type DateString = string

// OccurredAt represents when an event occurred
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

// JournalEventTypes returns every event type the property manager writes, in a stable order.
func JournalEventTypes() []string {
	return []string{
		ClientAddedEventType,
		RentalUnitAddedEventType,
		LeaseReservedEventType,
		LeaseCanceledEventType,
		RentalUnitRemovedFromServiceEventType,
		RentalUnitReturnedToServiceEventType,
		ReservingRentalUnitFailedEventType,
	}
}
