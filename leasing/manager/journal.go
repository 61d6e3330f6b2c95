package manager

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexraum/PropertyManager/eventstore"
	"github.com/alexraum/PropertyManager/leasing/core"
	"github.com/alexraum/PropertyManager/leasing/shell"
	"github.com/alexraum/PropertyManager/rental"
)

// journalFilter selects every event the manager writes. Appends are guarded against the
// highest sequence number in this stream.
func journalFilter() eventstore.Filter {
	eventTypes := core.JournalEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		Finalize()
}

// record appends the decision's event, if any, and returns the decision's error joined with a
// journaling error.
func (m *PropertyManager) record(ctx context.Context, decision core.DecisionResult) error {
	decisionErr := decision.HasError()

	if m.eventStore == nil || !decision.HasEventToAppend() {
		return decisionErr
	}

	if err := m.journal(ctx, decision.Event); err != nil {
		return errors.Join(decisionErr, err)
	}

	return decisionErr
}

func (m *PropertyManager) journal(ctx context.Context, event core.DomainEvent) error {
	storableEvent, err := shell.StorableEventFrom(event, shell.BuildRootEventMetadata())
	if err != nil {
		return errors.Join(ErrJournalingFailed, err)
	}

	filter := journalFilter()

	retryOptions := make([]shell.RetryOption, 0, len(m.retryOptions)+1)
	retryOptions = append(retryOptions, m.retryOptions...)
	if m.logger != nil {
		retryOptions = append(retryOptions, shell.WithRetryLogger(m.logger, event.IsEventType()))
	}

	_, err = shell.RetryWithExponentialBackoff(
		ctx,
		func(ctx context.Context) error {
			_, maxSequenceNumber, queryErr := m.eventStore.Query(ctx, filter)
			if queryErr != nil {
				return queryErr
			}

			return m.eventStore.Append(ctx, filter, maxSequenceNumber, storableEvent)
		},
		retryOptions...,
	)

	if err != nil {
		m.logError(logMsgJournalingFailed, logAttrEventType, event.IsEventType(), logAttrError, err.Error())
		return errors.Join(ErrJournalingFailed, err)
	}

	return nil
}

// Load rebuilds clients, units and leases by replaying the journal in sequence order.
// Recorded leases are re-created with their confirmation numbers. Replay journals nothing.
func (m *PropertyManager) Load(ctx context.Context) error {
	if m.eventStore == nil {
		return ErrNoEventStore
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.clients) > 0 || len(m.units) > 0 {
		return ErrManagerNotEmpty
	}

	storableEvents, _, err := m.eventStore.Query(ctx, journalFilter())
	if err != nil {
		return errors.Join(ErrReplayingJournalFailed, err)
	}

	envelopes, err := shell.EventEnvelopesFrom(storableEvents)
	if err != nil {
		return errors.Join(ErrReplayingJournalFailed, err)
	}

	for _, envelope := range envelopes {
		if err := m.apply(envelope.DomainEvent); err != nil {
			return errors.Join(
				ErrReplayingJournalFailed,
				fmt.Errorf("applying %s: %w", envelope, err),
			)
		}
	}

	m.logInfo(logMsgJournalReplayed, logAttrEventCount, len(envelopes))

	return nil
}

func (m *PropertyManager) apply(domainEvent core.DomainEvent) error {
	switch event := domainEvent.(type) {
	case core.ClientAdded:
		_, err := m.addClient(event.ClientName, event.ClientID)
		return err

	case core.RentalUnitAdded:
		_, err := m.addUnit(rental.UnitKind(event.UnitKind), event.UnitKey, event.Capacity)
		return err

	case core.LeaseReserved:
		return m.applyLeaseReserved(event)

	case core.LeaseCanceled:
		client, lease, err := m.findLease(event.ConfirmationNumber)
		if err != nil {
			return err
		}

		return cancelLease(client, lease)

	case core.RentalUnitRemovedFromService:
		unit, err := m.findUnit(event.UnitKey)
		if err != nil {
			return err
		}

		date, err := rental.ParseDate(event.EffectiveDate)
		if err != nil {
			return err
		}

		m.removeFromService(unit, date)

		return nil

	case core.RentalUnitReturnedToService:
		unit, err := m.findUnit(event.UnitKey)
		if err != nil {
			return err
		}

		unit.ReturnToService()

		return nil

	case core.ReservingRentalUnitFailed:
		return nil
	}

	return shell.ErrMappingToDomainEventUnknownEventType
}

func (m *PropertyManager) applyLeaseReserved(event core.LeaseReserved) error {
	client, err := m.findClient(event.ClientID)
	if err != nil {
		return err
	}

	unit, err := m.findUnit(event.UnitKey)
	if err != nil {
		return err
	}

	startDate, err := rental.ParseDate(event.StartDate)
	if err != nil {
		return err
	}

	endDate, err := rental.ParseDate(event.EndDate)
	if err != nil {
		return err
	}

	lease, err := unit.RecordExistingLease(event.ConfirmationNumber, client, startDate, endDate, event.Occupants)
	if err != nil {
		return err
	}

	return client.AddNewLease(lease)
}
