package core

import (
	"time"
)

// LeaseReservedEventType is the event type identifier.
const LeaseReservedEventType = "LeaseReserved"

// LeaseReserved represents a client reserving a rental unit. StartDate and EndDate are inclusive.
type LeaseReserved struct {
	ConfirmationNumber int
	ClientID           ClientIDString
	UnitKey            UnitKeyString
	StartDate          DateString
	EndDate            DateString
	Occupants          int
	OccurredAt         OccurredAt
}

// BuildLeaseReserved creates a new LeaseReserved event.
func BuildLeaseReserved(
	confirmationNumber int,
	clientID ClientIDString,
	unitKey UnitKeyString,
	startDate DateString,
	endDate DateString,
	occupants int,
	occurredAt time.Time,
) LeaseReserved {

	return LeaseReserved{
		ConfirmationNumber: confirmationNumber,
		ClientID:           clientID,
		UnitKey:            unitKey,
		StartDate:          startDate,
		EndDate:            endDate,
		Occupants:          occupants,
		OccurredAt:         ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LeaseReserved) IsEventType() string {
	return LeaseReservedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LeaseReserved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LeaseReserved) IsErrorEvent() bool {
	return false
}
