package core

import (
	"time"
)

// RentalUnitAddedEventType is the event type identifier.
const RentalUnitAddedEventType = "RentalUnitAdded"

// RentalUnitAdded represents a conference room or hotel suite being added to the inventory.
type RentalUnitAdded struct {
	UnitKey    UnitKeyString
	UnitKind   string
	Capacity   int
	OccurredAt OccurredAt
}

// BuildRentalUnitAdded creates a new RentalUnitAdded event.
func BuildRentalUnitAdded(unitKey UnitKeyString, unitKind string, capacity int, occurredAt time.Time) RentalUnitAdded {
	return RentalUnitAdded{
		UnitKey:    unitKey,
		UnitKind:   unitKind,
		Capacity:   capacity,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e RentalUnitAdded) IsEventType() string {
	return RentalUnitAddedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RentalUnitAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e RentalUnitAdded) IsErrorEvent() bool {
	return false
}
