package rental

import (
	"fmt"
	"time"
)

const (
	// ConferenceRoomMaxCapacity is the largest capacity a conference room can be built with.
	ConferenceRoomMaxCapacity = 25

	// ConferenceRoomMaxDuration is the longest conference room lease, in days.
	ConferenceRoomMaxDuration = 7

	conferenceRoomPrefix = "Conference Room: "
)

// ConferenceRoom is rented by the day for up to ConferenceRoomMaxDuration days.
type ConferenceRoom struct {
	unit
}

// NewConferenceRoom creates an in-service conference room at location "FF-RR".
func NewConferenceRoom(location string, capacity int, options ...UnitOption) (*ConferenceRoom, error) {
	u, err := newUnit(location, capacity, ConferenceRoomMaxCapacity, options...)
	if err != nil {
		return nil, err
	}

	return &ConferenceRoom{unit: u}, nil
}

// Kind returns KindConferenceRoom.
func (r *ConferenceRoom) Kind() UnitKind {
	return KindConferenceRoom
}

// Reserve books the room for duration days starting at startDate; the end date is
// startDate + duration - 1. Any shared day with an existing lease is a conflict.
func (r *ConferenceRoom) Reserve(client *Client, startDate time.Time, duration int, occupants int) (*Lease, error) {
	if err := r.checkLeaseConditions(client, startDate, duration, occupants); err != nil {
		return nil, err
	}

	startDate = ToDate(startDate)
	endDate := addDays(startDate, duration-1)

	if duration > ConferenceRoomMaxDuration {
		return nil, fmt.Errorf("%w: %d days exceeds the maximum of %d", ErrRentalDate, duration, ConferenceRoomMaxDuration)
	}

	if err := r.checkCapacity(occupants); err != nil {
		return nil, err
	}

	if conflict := r.findOverlap(startDate, endDate); conflict != nil {
		return nil, fmt.Errorf("%w: %s..%s overlaps lease %06d", ErrRentalDate,
			FormatDate(startDate), FormatDate(endDate), conflict.ConfirmationNumber())
	}

	if err := r.CheckDates(startDate, endDate); err != nil {
		return nil, err
	}

	lease, err := r.newLease(r, client, startDate, endDate, occupants)
	if err != nil {
		return nil, err
	}

	if err := r.AddLease(lease); err != nil {
		return nil, err
	}

	return lease, nil
}

// RecordExistingLease re-creates a recorded lease. It checks dates, capacity and the duration cap
// but, unlike Reserve, trusts the caller not to hand in overlapping leases.
func (r *ConferenceRoom) RecordExistingLease(
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

	if err := r.CheckDates(startDate, endDate); err != nil {
		return nil, err
	}

	if err := r.checkCapacity(occupants); err != nil {
		return nil, err
	}

	if !addDays(endDate, -ConferenceRoomMaxDuration).Before(startDate) {
		return nil, fmt.Errorf("%w: %s..%s is longer than %d days", ErrRentalDate,
			FormatDate(startDate), FormatDate(endDate), ConferenceRoomMaxDuration)
	}

	lease, err := r.existingLease(r, confirmationNumber, client, startDate, endDate, occupants)
	if err != nil {
		return nil, err
	}

	if err := r.AddLease(lease); err != nil {
		return nil, err
	}

	return lease, nil
}

// RemoveFromServiceStarting splits off the leases starting on or after date and ends every
// remaining lease that reaches date on the day before it.
func (r *ConferenceRoom) RemoveFromServiceStarting(date time.Time) *LeaseCollection {
	date = ToDate(date)
	removed := r.removeFromServiceStarting(date)

	dayBefore := addDays(date, -1)
	for _, lease := range r.leases.All() {
		if !lease.End().Before(date) {
			lease.SetEndDateEarlier(dayBefore)
		}
	}

	return removed
}

// Description prefixes the shared unit description with "Conference Room: ".
func (r *ConferenceRoom) Description() string {
	return conferenceRoomPrefix + r.description()
}

// findOverlap uses the inclusive test: end >= other.start AND start <= other.end.
func (r *ConferenceRoom) findOverlap(startDate time.Time, endDate time.Time) *Lease {
	for _, lease := range r.leases.All() {
		if !endDate.Before(lease.Start()) && !startDate.After(lease.End()) {
			return lease
		}
	}

	return nil
}
