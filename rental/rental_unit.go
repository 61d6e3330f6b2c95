package rental

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// MinFloor and MaxFloor bound the floor part of a unit location.
	MinFloor = 1
	MaxFloor = 45

	// MinRoom and MaxRoom bound the room part of a unit location.
	MinRoom = 10
	MaxRoom = 99

	locationDelimiter = "-"
)

// UnitKind names the closed set of rental unit variants.
type UnitKind string

const (
	KindConferenceRoom UnitKind = "ConferenceRoom"
	KindHotelSuite     UnitKind = "HotelSuite"
)

// UnitKey identifies a rental unit. Units with the same key are the same unit,
// regardless of capacity or service state.
type UnitKey struct {
	Floor int
	Room  int
}

// String renders the key as the "FF-RR" location string.
func (k UnitKey) String() string {
	return strconv.Itoa(k.Floor) + locationDelimiter + strconv.Itoa(k.Room)
}

// ParseLocation parses an "FF-RR" location string into a UnitKey and checks its bounds.
func ParseLocation(location string) (UnitKey, error) {
	parts := strings.Split(strings.TrimSpace(location), locationDelimiter)
	if len(parts) != 2 {
		return UnitKey{}, fmt.Errorf("%w: location %q is not FLOOR-ROOM", ErrInvalidArgument, location)
	}

	floor, floorErr := strconv.Atoi(strings.TrimSpace(parts[0]))
	room, roomErr := strconv.Atoi(strings.TrimSpace(parts[1]))

	if floorErr != nil || roomErr != nil {
		return UnitKey{}, fmt.Errorf("%w: location %q is not FLOOR-ROOM", ErrInvalidArgument, location)
	}

	if floor < MinFloor || floor > MaxFloor {
		return UnitKey{}, fmt.Errorf("%w: floor %d out of range [%d,%d]", ErrInvalidArgument, floor, MinFloor, MaxFloor)
	}

	if room < MinRoom || room > MaxRoom {
		return UnitKey{}, fmt.Errorf("%w: room %d out of range [%d,%d]", ErrInvalidArgument, room, MinRoom, MaxRoom)
	}

	return UnitKey{Floor: floor, Room: room}, nil
}

// RentalUnit is a leasable space. The variants ConferenceRoom and HotelSuite implement
// Reserve, RecordExistingLease, RemoveFromServiceStarting, CheckDates and Description
// with their own rules on top of shared validation and lease bookkeeping.
type RentalUnit interface {
	Kind() UnitKind
	Key() UnitKey
	Floor() int
	Room() int
	Capacity() int

	IsInService() bool
	TakeOutOfService()
	ReturnToService()

	// Reserve creates a new lease starting at startDate. The meaning of duration is unit-specific
	// (days for conference rooms, weeks for hotel suites).
	Reserve(client *Client, startDate time.Time, duration int, occupants int) (*Lease, error)

	// RecordExistingLease re-creates a lease recorded earlier, keeping its confirmation number.
	RecordExistingLease(
		confirmationNumber int,
		client *Client,
		startDate time.Time,
		endDate time.Time,
		occupants int,
	) (*Lease, error)

	CheckDates(startDate time.Time, endDate time.Time) error

	// RemoveFromServiceStarting takes the unit out of service, removes and returns all leases
	// starting on or after date, and shortens the remaining leases that still cross date.
	RemoveFromServiceStarting(date time.Time) *LeaseCollection

	CancelLeaseByNumber(confirmationNumber int) (*Lease, error)
	AddLease(lease *Lease) error
	Leases() []*Lease
	ListLeases() []string
	Description() string
}

// Compare orders units by floor, then room.
func Compare(a RentalUnit, b RentalUnit) int {
	if c := cmp.Compare(a.Floor(), b.Floor()); c != 0 {
		return c
	}

	return cmp.Compare(a.Room(), b.Room())
}

// SameUnit reports whether a and b identify the same unit.
func SameUnit(a RentalUnit, b RentalUnit) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Key() == b.Key()
}

// UnitOption configures a rental unit at construction time.
type UnitOption func(*unit) error

// WithDateBounds sets the global date window the unit validates leases against.
func WithDateBounds(bounds DateBounds) UnitOption {
	return func(u *unit) error {
		if err := bounds.Validate(); err != nil {
			return err
		}

		u.bounds = DateBounds{Earliest: ToDate(bounds.Earliest), Latest: ToDate(bounds.Latest)}

		return nil
	}
}

// WithConfirmationSequence sets the sequence new leases draw their confirmation numbers from.
func WithConfirmationSequence(confirmations *ConfirmationSequence) UnitOption {
	return func(u *unit) error {
		if confirmations == nil {
			return fmt.Errorf("%w: confirmation sequence must not be nil", ErrInvalidArgument)
		}

		u.confirmations = confirmations

		return nil
	}
}

// unit holds the state and the validation shared by all variants.
type unit struct {
	key           UnitKey
	capacity      int
	inService     bool
	leases        *LeaseCollection
	bounds        DateBounds
	confirmations *ConfirmationSequence
}

func newUnit(location string, capacity int, maxCapacity int, options ...UnitOption) (unit, error) {
	if capacity <= 0 {
		return unit{}, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidArgument, capacity)
	}

	key, err := ParseLocation(location)
	if err != nil {
		return unit{}, err
	}

	if capacity > maxCapacity {
		return unit{}, fmt.Errorf("%w: capacity %d exceeds the maximum of %d", ErrInvalidArgument, capacity, maxCapacity)
	}

	u := unit{
		key:           key,
		capacity:      capacity,
		inService:     true,
		leases:        NewLeaseCollection(),
		bounds:        DefaultDateBounds(),
		confirmations: defaultConfirmations,
	}

	for _, option := range options {
		if err := option(&u); err != nil {
			return unit{}, err
		}
	}

	return u, nil
}

// Key returns the unit's identity.
func (u *unit) Key() UnitKey {
	return u.key
}

// Floor returns the floor number.
func (u *unit) Floor() int {
	return u.key.Floor
}

// Room returns the room number.
func (u *unit) Room() int {
	return u.key.Room
}

// Capacity returns the maximum number of occupants per lease.
func (u *unit) Capacity() int {
	return u.capacity
}

// IsInService reports whether the unit currently accepts reservations.
func (u *unit) IsInService() bool {
	return u.inService
}

// TakeOutOfService stops the unit from accepting reservations. Existing leases stay untouched.
func (u *unit) TakeOutOfService() {
	u.inService = false
}

// ReturnToService lets the unit accept reservations again.
func (u *unit) ReturnToService() {
	u.inService = true
}

// CheckDates applies the global bounds and requires startDate not to be after endDate.
func (u *unit) CheckDates(startDate time.Time, endDate time.Time) error {
	if err := u.checkDateBounds(startDate, endDate); err != nil {
		return err
	}

	if ToDate(startDate).After(ToDate(endDate)) {
		return fmt.Errorf("%w: start date %s is after end date %s", ErrRentalDate, FormatDate(startDate), FormatDate(endDate))
	}

	return nil
}

func (u *unit) checkDateBounds(startDate time.Time, endDate time.Time) error {
	if ToDate(startDate).Before(u.bounds.Earliest) {
		return fmt.Errorf("%w: lease cannot start before %s", ErrRentalDate, FormatDate(u.bounds.Earliest))
	}

	if ToDate(endDate).After(u.bounds.Latest) {
		return fmt.Errorf("%w: lease cannot end after %s", ErrRentalDate, FormatDate(u.bounds.Latest))
	}

	return nil
}

// checkLeaseConditions validates the request arguments, then the service state.
func (u *unit) checkLeaseConditions(client *Client, startDate time.Time, duration int, occupants int) error {
	if client == nil || startDate.IsZero() || duration < 1 || occupants < 1 {
		return fmt.Errorf("%w: reservation needs a client, a start date, duration >= 1 and occupants >= 1", ErrInvalidArgument)
	}

	if !u.inService {
		return fmt.Errorf("%w: unit %s", ErrRentalOutOfService, u.key)
	}

	return nil
}

func (u *unit) checkCapacity(occupants int) error {
	if occupants > u.capacity {
		return fmt.Errorf("%w: %d occupants for a capacity of %d", ErrRentalCapacity, occupants, u.capacity)
	}

	return nil
}

// removeFromServiceStarting takes the unit out of service and splits off all leases starting on or
// after date. Shortening the leases that remain is left to the variants.
func (u *unit) removeFromServiceStarting(date time.Time) *LeaseCollection {
	u.TakeOutOfService()

	cutoff := u.cutoffIndex(ToDate(date))
	if cutoff < 0 {
		return NewLeaseCollection()
	}

	removed, err := u.leases.Truncate(cutoff)
	if err != nil {
		// cutoff comes from the collection itself
		return NewLeaseCollection()
	}

	return removed
}

// cutoffIndex returns the index of the first lease starting on or after date, or -1.
func (u *unit) cutoffIndex(date time.Time) int {
	for i, lease := range u.leases.All() {
		if !lease.Start().Before(date) {
			return i
		}
	}

	return -1
}

// CancelLeaseByNumber removes and returns the lease with the given confirmation number.
func (u *unit) CancelLeaseByNumber(confirmationNumber int) (*Lease, error) {
	idx := u.leases.IndexOf(confirmationNumber)
	if idx < 0 {
		return nil, fmt.Errorf("%w: no lease %06d on unit %s", ErrInvalidArgument, confirmationNumber, u.key)
	}

	return u.leases.Remove(idx)
}

// AddLease inserts the lease in start date order.
//
// While the unit is out of service the call is a silent no-op: the lease is neither added nor
// rejected. Leases for a different unit are rejected.
func (u *unit) AddLease(lease *Lease) error {
	if !u.inService {
		return nil
	}

	if lease == nil || lease.Property() == nil || lease.Property().Key() != u.key {
		return fmt.Errorf("%w: lease does not belong to unit %s", ErrInvalidArgument, u.key)
	}

	return u.leases.Add(lease)
}

// Leases returns the unit's leases ordered by start date.
func (u *unit) Leases() []*Lease {
	return u.leases.All()
}

// ListLeases renders each lease as "conf | client name | client id | start (end)".
func (u *unit) ListLeases() []string {
	leases := u.leases.All()
	out := make([]string, len(leases))

	for i, lease := range leases {
		data := lease.LeaseData()
		out[i] = data[leaseDataConfirmation] + " | " + data[leaseDataClientName] + " | " +
			data[leaseDataClientID] + " | " + data[leaseDataStart] + " (" + data[leaseDataEnd] + ")"
	}

	return out
}

// description renders "FF-RR | CCC" with an " Unavailable" suffix when out of service.
func (u *unit) description() string {
	d := fmt.Sprintf("%2d-%d | %3d", u.key.Floor, u.key.Room, u.capacity)
	if !u.inService {
		d += " Unavailable"
	}

	return d
}

func (u *unit) newLease(property RentalUnit, client *Client, startDate time.Time, endDate time.Time, occupants int) (*Lease, error) {
	return NewLease(u.confirmations, client, property, startDate, endDate, occupants)
}

func (u *unit) existingLease(
	property RentalUnit,
	confirmationNumber int,
	client *Client,
	startDate time.Time,
	endDate time.Time,
	occupants int,
) (*Lease, error) {

	return NewExistingLease(u.confirmations, confirmationNumber, client, property, startDate, endDate, occupants)
}
