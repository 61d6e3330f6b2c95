package core

import (
	"time"
)

// RentalUnitReturnedToServiceEventType is the event type identifier.
const RentalUnitReturnedToServiceEventType = "RentalUnitReturnedToService"

// RentalUnitReturnedToService represents an out-of-service unit accepting reservations again.
type RentalUnitReturnedToService struct {
	UnitKey    UnitKeyString
	OccurredAt OccurredAt
}

// BuildRentalUnitReturnedToService creates a new RentalUnitReturnedToService event.
func BuildRentalUnitReturnedToService(unitKey UnitKeyString, occurredAt time.Time) RentalUnitReturnedToService {
	return RentalUnitReturnedToService{
		UnitKey:    unitKey,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e RentalUnitReturnedToService) IsEventType() string {
	return RentalUnitReturnedToServiceEventType
}

// HasOccurredAt returns when this event occurred.
func (e RentalUnitReturnedToService) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e RentalUnitReturnedToService) IsErrorEvent() bool {
	return false
}
