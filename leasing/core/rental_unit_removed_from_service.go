package core

import (
	"time"
)

// RentalUnitRemovedFromServiceEventType is the event type identifier.
const RentalUnitRemovedFromServiceEventType = "RentalUnitRemovedFromService"

// RentalUnitRemovedFromService represents a unit leaving service as of EffectiveDate.
// The leases it dropped are listed so readers of the journal need not recompute them.
type RentalUnitRemovedFromService struct {
	UnitKey                    UnitKeyString
	EffectiveDate              DateString
	RemovedConfirmationNumbers []int
	OccurredAt                 OccurredAt
}

// BuildRentalUnitRemovedFromService creates a new RentalUnitRemovedFromService event.
func BuildRentalUnitRemovedFromService(
	unitKey UnitKeyString,
	effectiveDate DateString,
	removedConfirmationNumbers []int,
	occurredAt time.Time,
) RentalUnitRemovedFromService {

	if removedConfirmationNumbers == nil {
		removedConfirmationNumbers = []int{}
	}

	return RentalUnitRemovedFromService{
		UnitKey:                    unitKey,
		EffectiveDate:              effectiveDate,
		RemovedConfirmationNumbers: removedConfirmationNumbers,
		OccurredAt:                 ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e RentalUnitRemovedFromService) IsEventType() string {
	return RentalUnitRemovedFromServiceEventType
}

// HasOccurredAt returns when this event occurred.
func (e RentalUnitRemovedFromService) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e RentalUnitRemovedFromService) IsErrorEvent() bool {
	return false
}
