package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/alexraum/PropertyManager/leasing/core"
	"github.com/alexraum/PropertyManager/rental"
)

// RemoveFromService takes the unit at location out of service as of date. Leases starting on or after
// date are removed from the unit and from their clients and returned; leases crossing date are shortened.
func (m *PropertyManager) RemoveFromService(ctx context.Context, location string, date time.Time) ([]*rental.Lease, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	unit, err := m.findUnit(location)
	if err != nil {
		return nil, err
	}

	if date.IsZero() {
		return nil, fmt.Errorf("%w: removal date must not be empty", rental.ErrInvalidArgument)
	}

	removed := m.removeFromService(unit, date)

	numbers := make([]int, 0, len(removed))
	for _, lease := range removed {
		numbers = append(numbers, lease.ConfirmationNumber())
	}

	event := core.BuildRentalUnitRemovedFromService(unit.Key().String(), rental.FormatDate(date), numbers, m.now())
	if err := m.record(ctx, core.SuccessDecision(event)); err != nil {
		return removed, err
	}

	m.logInfo(
		logMsgRemovedFromService,
		logAttrUnit, unit.Key().String(),
		logAttrEffectiveDate, rental.FormatDate(date),
		logAttrRemovedLeaseCount, len(removed),
	)

	return removed, nil
}

// ReturnToService puts the unit at location back into service. Returning a unit that is in service
// changes nothing and journals nothing.
func (m *PropertyManager) ReturnToService(ctx context.Context, location string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	unit, err := m.findUnit(location)
	if err != nil {
		return err
	}

	if unit.IsInService() {
		return m.record(ctx, core.IdempotentDecision())
	}

	unit.ReturnToService()

	event := core.BuildRentalUnitReturnedToService(unit.Key().String(), m.now())
	if err := m.record(ctx, core.SuccessDecision(event)); err != nil {
		return err
	}

	m.logInfo(logMsgReturnedToService, logAttrUnit, unit.Key().String())

	return nil
}

func (m *PropertyManager) removeFromService(unit rental.RentalUnit, date time.Time) []*rental.Lease {
	removed := unit.RemoveFromServiceStarting(date).All()

	for _, lease := range removed {
		if _, err := lease.Client().CancelLeaseWithNumber(lease.ConfirmationNumber()); err != nil {
			m.logWarn(
				logMsgRemovedLeaseHadNoClient,
				logAttrUnit, unit.Key().String(),
				logAttrConfirmationNumber, lease.ConfirmationNumber(),
			)
		}
	}

	return removed
}
