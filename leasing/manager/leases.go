package manager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexraum/PropertyManager/leasing/core"
	"github.com/alexraum/PropertyManager/rental"
)

// CreateLease reserves the unit at location for the client registered under clientID and adds the
// lease to the client. Duration is in days for conference rooms and in weeks for hotel suites.
//
// Date, capacity and out-of-service failures are journaled as ReservingRentalUnitFailed and returned.
func (m *PropertyManager) CreateLease(
	ctx context.Context,
	clientID string,
	location string,
	startDate time.Time,
	duration int,
	occupants int,
) (*rental.Lease, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	client, err := m.findClient(clientID)
	if err != nil {
		return nil, err
	}

	unit, err := m.findUnit(location)
	if err != nil {
		return nil, err
	}

	lease, err := unit.Reserve(client, startDate, duration, occupants)
	if err != nil {
		if !isRecoverable(err) {
			return nil, err
		}

		m.logWarn(
			logMsgReservationRejected,
			logAttrClientID, client.ID(),
			logAttrUnit, unit.Key().String(),
			logAttrReason, err.Error(),
		)

		failure := core.BuildReservingRentalUnitFailed(
			client.ID(),
			unit.Key().String(),
			rental.FormatDate(startDate),
			duration,
			occupants,
			err.Error(),
			m.now(),
		)

		return nil, m.record(ctx, core.ErrorDecision(failure, err))
	}

	if err := client.AddNewLease(lease); err != nil {
		_, _ = unit.CancelLeaseByNumber(lease.ConfirmationNumber())
		return nil, err
	}

	event := core.BuildLeaseReserved(
		lease.ConfirmationNumber(),
		client.ID(),
		unit.Key().String(),
		rental.FormatDate(lease.Start()),
		rental.FormatDate(lease.End()),
		lease.Occupants(),
		m.now(),
	)

	if err := m.record(ctx, core.SuccessDecision(event)); err != nil {
		return lease, err
	}

	m.logInfo(
		logMsgLeaseCreated,
		logAttrClientID, client.ID(),
		logAttrUnit, unit.Key().String(),
		logAttrConfirmationNumber, lease.ConfirmationNumber(),
	)

	return lease, nil
}

// CancelClientsLease cancels the lease at index in the client's lease list, on both the client and the unit.
func (m *PropertyManager) CancelClientsLease(ctx context.Context, clientID string, index int) (*rental.Lease, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	client, err := m.findClient(clientID)
	if err != nil {
		return nil, err
	}

	lease, err := client.LeaseAt(index)
	if err != nil {
		return nil, err
	}

	return m.cancelAndRecord(ctx, client, lease)
}

// CancelLease cancels the lease with the given confirmation number, on both its client and its unit.
func (m *PropertyManager) CancelLease(ctx context.Context, confirmationNumber int) (*rental.Lease, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	client, lease, err := m.findLease(confirmationNumber)
	if err != nil {
		return nil, err
	}

	return m.cancelAndRecord(ctx, client, lease)
}

func (m *PropertyManager) cancelAndRecord(ctx context.Context, client *rental.Client, lease *rental.Lease) (*rental.Lease, error) {
	if err := cancelLease(client, lease); err != nil {
		return nil, err
	}

	unitKey := lease.Property().Key().String()
	event := core.BuildLeaseCanceled(lease.ConfirmationNumber(), client.ID(), unitKey, m.now())

	if err := m.record(ctx, core.SuccessDecision(event)); err != nil {
		return lease, err
	}

	m.logInfo(
		logMsgLeaseCanceled,
		logAttrClientID, client.ID(),
		logAttrUnit, unitKey,
		logAttrConfirmationNumber, lease.ConfirmationNumber(),
	)

	return lease, nil
}

// cancelLease removes the lease from its unit first; that is the only step that can fail,
// so either both sides drop the lease or neither does.
func cancelLease(client *rental.Client, lease *rental.Lease) error {
	if _, err := lease.Property().CancelLeaseByNumber(lease.ConfirmationNumber()); err != nil {
		return err
	}

	_, err := client.CancelLeaseWithNumber(lease.ConfirmationNumber())

	return err
}

func (m *PropertyManager) findLease(confirmationNumber int) (*rental.Client, *rental.Lease, error) {
	for _, client := range m.clients {
		for _, lease := range client.Leases() {
			if lease.ConfirmationNumber() == confirmationNumber {
				return client, lease, nil
			}
		}
	}

	return nil, nil, fmt.Errorf("%w: %w: %06d", rental.ErrInvalidArgument, ErrUnknownLease, confirmationNumber)
}

func isRecoverable(err error) bool {
	return errors.Is(err, rental.ErrRentalDate) ||
		errors.Is(err, rental.ErrRentalCapacity) ||
		errors.Is(err, rental.ErrRentalOutOfService)
}
