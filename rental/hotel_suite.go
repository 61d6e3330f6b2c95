package rental

import (
	"fmt"
	"time"
)

const (
	// HotelSuiteMaxCapacity is the largest capacity a hotel suite can be built with.
	HotelSuiteMaxCapacity = 2

	// HotelSuiteDefaultCapacity is the capacity of a suite built without an explicit one.
	HotelSuiteDefaultCapacity = 1

	hotelSuitePrefix = "Hotel Suite:     "
)

// HotelSuite is rented in whole weeks running from one Sunday to another.
type HotelSuite struct {
	unit
}

// NewHotelSuite creates an in-service hotel suite at location "FF-RR".
func NewHotelSuite(location string, capacity int, options ...UnitOption) (*HotelSuite, error) {
	u, err := newUnit(location, capacity, HotelSuiteMaxCapacity, options...)
	if err != nil {
		return nil, err
	}

	return &HotelSuite{unit: u}, nil
}

// NewSingleHotelSuite creates a suite with HotelSuiteDefaultCapacity.
func NewSingleHotelSuite(location string, options ...UnitOption) (*HotelSuite, error) {
	return NewHotelSuite(location, HotelSuiteDefaultCapacity, options...)
}

// Kind returns KindHotelSuite.
func (s *HotelSuite) Kind() UnitKind {
	return KindHotelSuite
}

// Reserve books the suite for duration weeks; startDate must be a Sunday.
func (s *HotelSuite) Reserve(client *Client, startDate time.Time, duration int, occupants int) (*Lease, error) {
	if err := s.checkLeaseConditions(client, startDate, duration, occupants); err != nil {
		return nil, err
	}

	startDate = ToDate(startDate)
	endDate := addDays(startDate, 7*duration)

	if !isWeekBoundary(startDate) || !isWeekBoundary(endDate) {
		return nil, fmt.Errorf("%w: hotel suite leases run %s to %s", ErrRentalDate, WeekBoundaryDay, WeekBoundaryDay)
	}

	if err := s.checkConflicts(startDate, endDate); err != nil {
		return nil, err
	}

	if err := s.checkCapacity(occupants); err != nil {
		return nil, err
	}

	if err := s.CheckDates(startDate, endDate); err != nil {
		return nil, err
	}

	lease, err := s.newLease(s, client, startDate, endDate, occupants)
	if err != nil {
		return nil, err
	}

	if err := s.AddLease(lease); err != nil {
		return nil, err
	}

	return lease, nil
}

// RecordExistingLease re-creates a recorded lease with the same conflict checks as Reserve.
func (s *HotelSuite) RecordExistingLease(
	confirmationNumber int,
	client *Client,
	startDate time.Time,
	endDate time.Time,
	occupants int,
) (*Lease, error) {

	if client == nil || startDate.IsZero() || endDate.IsZero() {
		return nil, fmt.Errorf("%w: recorded lease needs a client, a start and an end date", ErrInvalidArgument)
	}

	startDate, endDate = ToDate(startDate), ToDate(endDate)

	if err := s.checkCapacity(occupants); err != nil {
		return nil, err
	}

	if err := s.checkConflicts(startDate, endDate); err != nil {
		return nil, err
	}

	if err := s.CheckDates(startDate, endDate); err != nil {
		return nil, err
	}

	lease, err := s.existingLease(s, confirmationNumber, client, startDate, endDate, occupants)
	if err != nil {
		return nil, err
	}

	if err := s.AddLease(lease); err != nil {
		return nil, err
	}

	return lease, nil
}

// CheckDates adds two rules to the shared bounds check: startDate must be strictly before endDate,
// and both must fall on WeekBoundaryDay.
func (s *HotelSuite) CheckDates(startDate time.Time, endDate time.Time) error {
	if err := s.checkDateBounds(startDate, endDate); err != nil {
		return err
	}

	if !ToDate(startDate).Before(ToDate(endDate)) {
		return fmt.Errorf("%w: start date %s must be before end date %s", ErrRentalDate, FormatDate(startDate), FormatDate(endDate))
	}

	if !isWeekBoundary(startDate) || !isWeekBoundary(endDate) {
		return fmt.Errorf("%w: hotel suite leases run %s to %s", ErrRentalDate, WeekBoundaryDay, WeekBoundaryDay)
	}

	return nil
}

// RemoveFromServiceStarting splits off the leases starting on or after date. Remaining leases that
// reach date end on date when it is a Sunday, otherwise on the Sunday before it.
func (s *HotelSuite) RemoveFromServiceStarting(date time.Time) *LeaseCollection {
	date = ToDate(date)
	removed := s.removeFromServiceStarting(date)

	newEnd := previousWeekBoundary(date)
	for _, lease := range s.leases.All() {
		if !lease.End().Before(date) {
			lease.SetEndDateEarlier(newEnd)
		}
	}

	return removed
}

// Description prefixes the shared unit description with "Hotel Suite:     ".
func (s *HotelSuite) Description() string {
	return hotelSuitePrefix + s.description()
}

// checkConflicts uses the exclusive test (end > other.start AND start < other.end) and also
// rejects a second lease starting on the same day.
func (s *HotelSuite) checkConflicts(startDate time.Time, endDate time.Time) error {
	for _, lease := range s.leases.All() {
		if endDate.After(lease.Start()) && startDate.Before(lease.End()) {
			return fmt.Errorf("%w: %s..%s overlaps lease %06d", ErrRentalDate,
				FormatDate(startDate), FormatDate(endDate), lease.ConfirmationNumber())
		}

		if lease.Start().Equal(startDate) {
			return fmt.Errorf("%w: lease %06d already starts on %s", ErrRentalDate,
				lease.ConfirmationNumber(), FormatDate(startDate))
		}
	}

	return nil
}
