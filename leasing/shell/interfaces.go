package shell

import (
	"context"

	"github.com/alexraum/PropertyManager/eventstore"
)

// QueriesEvents is the read side of an event store.
type QueriesEvents interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// AppendsEvents is the write side of an event store.
type AppendsEvents interface {
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		event eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// EventStore is satisfied by both postgresengine.EventStore and *memengine.EventStore.
type EventStore interface {
	QueriesEvents
	AppendsEvents
}
