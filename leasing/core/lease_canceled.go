package core

import (
	"time"
)

// LeaseCanceledEventType is the event type identifier.
const LeaseCanceledEventType = "LeaseCanceled"

// LeaseCanceled represents a lease being removed from both its client and its rental unit.
type LeaseCanceled struct {
	ConfirmationNumber int
	ClientID           ClientIDString
	UnitKey            UnitKeyString
	OccurredAt         OccurredAt
}

// BuildLeaseCanceled creates a new LeaseCanceled event.
func BuildLeaseCanceled(confirmationNumber int, clientID ClientIDString, unitKey UnitKeyString, occurredAt time.Time) LeaseCanceled {
	return LeaseCanceled{
		ConfirmationNumber: confirmationNumber,
		ClientID:           clientID,
		UnitKey:            unitKey,
		OccurredAt:         ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LeaseCanceled) IsEventType() string {
	return LeaseCanceledEventType
}

// HasOccurredAt returns when this event occurred.
func (e LeaseCanceled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LeaseCanceled) IsErrorEvent() bool {
	return false
}
