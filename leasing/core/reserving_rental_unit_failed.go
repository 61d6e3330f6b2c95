package core

import (
	"time"
)

// ReservingRentalUnitFailedEventType is the event type identifier.
const ReservingRentalUnitFailedEventType = "ReservingRentalUnitFailed"

// ReservingRentalUnitFailed represents a reservation rejected by a date, capacity or service rule.
type ReservingRentalUnitFailed struct {
	ClientID    ClientIDString
	UnitKey     UnitKeyString
	StartDate   DateString
	Duration    int
	Occupants   int
	FailureInfo string
	OccurredAt  OccurredAt
}

// BuildReservingRentalUnitFailed creates a new ReservingRentalUnitFailed event.
func BuildReservingRentalUnitFailed(
	clientID ClientIDString,
	unitKey UnitKeyString,
	startDate DateString,
	duration int,
	occupants int,
	failureInfo string,
	occurredAt time.Time,
) ReservingRentalUnitFailed {

	return ReservingRentalUnitFailed{
		ClientID:    clientID,
		UnitKey:     unitKey,
		StartDate:   startDate,
		Duration:    duration,
		Occupants:   occupants,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ReservingRentalUnitFailed) IsEventType() string {
	return ReservingRentalUnitFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservingRentalUnitFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed reservation.
func (e ReservingRentalUnitFailed) IsErrorEvent() bool {
	return true
}
