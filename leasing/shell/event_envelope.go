package shell

import (
	"errors"
	"fmt"

	"github.com/alexraum/PropertyManager/eventstore"
	"github.com/alexraum/PropertyManager/leasing/core"
)

// ErrEventEnvelopeFromStorableEventFailed is returned when a journaled event cannot be restored.
var ErrEventEnvelopeFromStorableEventFailed = errors.New("event envelope from storable event failed")

// EventEnvelopes is the restored journal in sequence order.
type EventEnvelopes = []EventEnvelope

// EventEnvelope is a journaled lease event together with the metadata it was written with.
// Position is the event's zero-based index in the replayed stream.
type EventEnvelope struct {
	DomainEvent   core.DomainEvent
	EventMetadata EventMetadata
	Position      int
}

// BuildEventEnvelope pairs a domain event with its metadata.
func BuildEventEnvelope(domainEvent core.DomainEvent, eventMetadata EventMetadata, position int) EventEnvelope {
	return EventEnvelope{
		DomainEvent:   domainEvent,
		EventMetadata: eventMetadata,
		Position:      position,
	}
}

// String identifies the envelope in replay errors, e.g.
// "LeaseReserved #3 (message 5f0c..., caused by 5f0c...)".
// Events journaled without metadata only show type and position.
func (e EventEnvelope) String() string {
	label := fmt.Sprintf("%s #%d", e.DomainEvent.IsEventType(), e.Position)

	if e.EventMetadata.MessageID == "" {
		return label
	}

	return fmt.Sprintf("%s (message %s, caused by %s)",
		label, e.EventMetadata.MessageID, e.EventMetadata.CausationID)
}

// EventEnvelopeFrom restores the domain event and metadata of a single journaled event.
func EventEnvelopeFrom(storableEvent eventstore.StorableEvent, position int) (EventEnvelope, error) {
	domainEvent, err := DomainEventFrom(storableEvent)
	if err != nil {
		return EventEnvelope{}, errors.Join(ErrEventEnvelopeFromStorableEventFailed, err)
	}

	metadata, err := EventMetadataFrom(storableEvent)
	if err != nil {
		return EventEnvelope{}, errors.Join(
			ErrEventEnvelopeFromStorableEventFailed,
			fmt.Errorf("%s #%d: %w", storableEvent.EventType, position, err),
		)
	}

	return BuildEventEnvelope(domainEvent, metadata, position), nil
}

// EventEnvelopesFrom restores a journal. It stops at the first event that cannot be restored.
func EventEnvelopesFrom(storableEvents eventstore.StorableEvents) (EventEnvelopes, error) {
	envelopes := make(EventEnvelopes, 0, len(storableEvents))

	for position, storableEvent := range storableEvents {
		envelope, err := EventEnvelopeFrom(storableEvent, position)
		if err != nil {
			return nil, err
		}

		envelopes = append(envelopes, envelope)
	}

	return envelopes, nil
}
