package rental

import (
	"fmt"
	"strconv"
	"time"
)

// Lease is a confirmed reservation of a RentalUnit by a Client over an inclusive date range.
//
// A Lease is shared by reference between the unit's and the client's lease lists,
// so shortening its end date is visible through both.
type Lease struct {
	confirmationNumber int
	client             *Client
	property           RentalUnit
	start              time.Time
	end                time.Time
	occupants          int
}

// NewLease creates a lease with the next number of the given sequence.
func NewLease(
	confirmations *ConfirmationSequence,
	client *Client,
	property RentalUnit,
	start time.Time,
	end time.Time,
	occupants int,
) (*Lease, error) {

	if confirmations == nil {
		return nil, fmt.Errorf("%w: confirmation sequence must not be nil", ErrInvalidArgument)
	}

	if err := validateLeaseFields(client, property, start, end, occupants); err != nil {
		return nil, err
	}

	return buildLease(confirmations.Next(), client, property, start, end, occupants), nil
}

// NewExistingLease creates a lease with a supplied confirmation number, e.g. when re-hydrating
// leases recorded earlier. The sequence, when given, is advanced past the number.
func NewExistingLease(
	confirmations *ConfirmationSequence,
	confirmationNumber int,
	client *Client,
	property RentalUnit,
	start time.Time,
	end time.Time,
	occupants int,
) (*Lease, error) {

	if confirmationNumber < 0 {
		return nil, fmt.Errorf("%w: confirmation number %d is negative", ErrInvalidArgument, confirmationNumber)
	}

	if err := validateLeaseFields(client, property, start, end, occupants); err != nil {
		return nil, err
	}

	if confirmations != nil {
		confirmations.Observe(confirmationNumber)
	}

	return buildLease(confirmationNumber, client, property, start, end, occupants), nil
}

func validateLeaseFields(client *Client, property RentalUnit, start time.Time, end time.Time, occupants int) error {
	if client == nil || property == nil {
		return fmt.Errorf("%w: lease needs a client and a property", ErrInvalidArgument)
	}

	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: lease needs a start and an end date", ErrInvalidArgument)
	}

	if occupants < 1 {
		return fmt.Errorf("%w: lease needs at least one occupant", ErrInvalidArgument)
	}

	if ToDate(start).After(ToDate(end)) {
		return fmt.Errorf("%w: lease start %s is after its end %s", ErrRentalDate, FormatDate(start), FormatDate(end))
	}

	return nil
}

func buildLease(confirmationNumber int, client *Client, property RentalUnit, start time.Time, end time.Time, occupants int) *Lease {
	return &Lease{
		confirmationNumber: confirmationNumber,
		client:             client,
		property:           property,
		start:              ToDate(start),
		end:                ToDate(end),
		occupants:          occupants,
	}
}

// ConfirmationNumber returns the lease's unique number.
func (l *Lease) ConfirmationNumber() int {
	return l.confirmationNumber
}

// Client returns the client holding the lease.
func (l *Lease) Client() *Client {
	return l.client
}

// Property returns the leased unit.
func (l *Lease) Property() RentalUnit {
	return l.property
}

// Start returns the first day of the lease.
func (l *Lease) Start() time.Time {
	return l.start
}

// End returns the last day of the lease.
func (l *Lease) End() time.Time {
	return l.end
}

// Occupants returns the number of people the lease was made for.
func (l *Lease) Occupants() int {
	return l.occupants
}

// SetEndDateEarlier moves the end date to newEnd.
//
// The owning unit guarantees that newEnd is not before the start and not after the current end.
func (l *Lease) SetEndDateEarlier(newEnd time.Time) {
	l.end = ToDate(newEnd)
}

// Compare orders leases by start date.
func (l *Lease) Compare(other *Lease) int {
	return l.start.Compare(other.start)
}

// LeaseData returns the reporting fields in fixed order:
// confirmation number, client name, client id, property description, start, end, occupants.
func (l *Lease) LeaseData() []string {
	return []string{
		fmt.Sprintf("%06d", l.confirmationNumber),
		l.client.Name(),
		l.client.ID(),
		l.property.Description(),
		FormatDate(l.start),
		FormatDate(l.end),
		strconv.Itoa(l.occupants),
	}
}

const (
	leaseDataConfirmation = iota
	leaseDataClientName
	leaseDataClientID
	leaseDataProperty
	leaseDataStart
	leaseDataEnd
	leaseDataOccupants
)
