package manager

import (
	"context"
	"errors"

	"github.com/alexraum/PropertyManager/eventstore"
	"github.com/alexraum/PropertyManager/leasing/core"
	"github.com/alexraum/PropertyManager/leasing/shell"
)

// rejectionFilter selects journaled reservation rejections. Empty clientID or unitKey values are
// dropped by the filter builder, so they do not narrow the result.
func rejectionFilter(clientID string, unitKey string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.ReservingRentalUnitFailedEventType).
		AndAllPredicatesOf(
			eventstore.P("ClientID", clientID),
			eventstore.P("UnitKey", unitKey),
		).
		Finalize()
}

// RejectedReservations reads the rejected reservation attempts from the journal, oldest first.
// A non-empty clientID or unitKey narrows the result; given both, an attempt must match both.
//
// The read does not touch the in-memory state and may be served by a read replica, so attempts
// rejected moments ago can be missing.
func (m *PropertyManager) RejectedReservations(
	ctx context.Context,
	clientID string,
	unitKey string,
) ([]core.ReservingRentalUnitFailed, error) {

	if m.eventStore == nil {
		return nil, ErrNoEventStore
	}

	storableEvents, _, err := m.eventStore.Query(
		eventstore.WithEventualConsistency(ctx),
		rejectionFilter(clientID, unitKey),
	)
	if err != nil {
		return nil, errors.Join(ErrReadingRejectionsFailed, err)
	}

	domainEvents, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return nil, errors.Join(ErrReadingRejectionsFailed, err)
	}

	rejections := make([]core.ReservingRentalUnitFailed, 0, len(domainEvents))

	for _, domainEvent := range domainEvents {
		if rejection, ok := domainEvent.(core.ReservingRentalUnitFailed); ok {
			rejections = append(rejections, rejection)
		}
	}

	return rejections, nil
}
