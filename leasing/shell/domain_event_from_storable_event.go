package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/alexraum/PropertyManager/eventstore"
	"github.com/alexraum/PropertyManager/leasing/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.ClientAddedEventType:
		return unmarshalPayload[core.ClientAdded](storableEvent.PayloadJSON)

	case core.RentalUnitAddedEventType:
		return unmarshalPayload[core.RentalUnitAdded](storableEvent.PayloadJSON)

	case core.LeaseReservedEventType:
		return unmarshalPayload[core.LeaseReserved](storableEvent.PayloadJSON)

	case core.LeaseCanceledEventType:
		return unmarshalPayload[core.LeaseCanceled](storableEvent.PayloadJSON)

	case core.RentalUnitRemovedFromServiceEventType:
		return unmarshalPayload[core.RentalUnitRemovedFromService](storableEvent.PayloadJSON)

	case core.RentalUnitReturnedToServiceEventType:
		return unmarshalPayload[core.RentalUnitReturnedToService](storableEvent.PayloadJSON)

	case core.ReservingRentalUnitFailedEventType:
		return unmarshalPayload[core.ReservingRentalUnitFailed](storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

// unmarshalPayload decodes the payload into the value type E so the returned DomainEvent holds E, not *E.
func unmarshalPayload[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var payload E

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &payload)
	if err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return payload, nil
}
