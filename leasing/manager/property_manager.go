package manager

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/alexraum/PropertyManager/leasing/core"
	"github.com/alexraum/PropertyManager/leasing/shell"
	"github.com/alexraum/PropertyManager/rental"
)

const (
	logMsgClientAdded             = "client added"
	logMsgRentalUnitAdded         = "rental unit added"
	logMsgLeaseCreated            = "lease created"
	logMsgLeaseCanceled           = "lease canceled"
	logMsgReservationRejected     = "reservation rejected"
	logMsgRemovedFromService      = "rental unit removed from service"
	logMsgReturnedToService       = "rental unit returned to service"
	logMsgRemovedLeaseHadNoClient = "removed lease was not held by its client"
	logMsgJournalingFailed        = "journaling event failed"
	logMsgJournalReplayed         = "journal replayed"
	logAttrClientID               = "client_id"
	logAttrUnit                   = "unit"
	logAttrConfirmationNumber     = "confirmation_number"
	logAttrReason                 = "reason"
	logAttrEffectiveDate          = "effective_date"
	logAttrRemovedLeaseCount      = "removed_lease_count"
	logAttrEventType              = "event_type"
	logAttrEventCount             = "event_count"
	logAttrError                  = "error"
)

// PropertyManager registers clients and rental units and creates and cancels leases between them.
// It is safe for concurrent use; operations are serialized.
type PropertyManager struct {
	mu            sync.Mutex
	clients       []*rental.Client
	units         []rental.RentalUnit // ordered by floor, then room
	bounds        rental.DateBounds
	confirmations *rental.ConfirmationSequence
	eventStore    shell.EventStore
	logger        shell.Logger
	now           func() time.Time
	retryOptions  []shell.RetryOption
}

// NewPropertyManager creates an empty PropertyManager. Without options it works purely in memory
// with the default date bounds and a fresh confirmation sequence.
func NewPropertyManager(options ...Option) (*PropertyManager, error) {
	m := &PropertyManager{
		clients:       make([]*rental.Client, 0),
		units:         make([]rental.RentalUnit, 0),
		bounds:        rental.DefaultDateBounds(),
		confirmations: rental.NewConfirmationSequence(),
		now:           time.Now,
	}

	for _, option := range options {
		if err := option(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// AddNewClient registers a client. Client ids are unique.
func (m *PropertyManager) AddNewClient(ctx context.Context, name string, id string) (*rental.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	client, err := m.addClient(name, id)
	if err != nil {
		return nil, err
	}

	event := core.BuildClientAdded(client.ID(), client.Name(), m.now())
	if err := m.record(ctx, core.SuccessDecision(event)); err != nil {
		return client, err
	}

	m.logInfo(logMsgClientAdded, logAttrClientID, client.ID())

	return client, nil
}

// AddNewUnit registers a conference room or hotel suite at location ("FF-RR"). Locations are unique.
func (m *PropertyManager) AddNewUnit(ctx context.Context, kind rental.UnitKind, location string, capacity int) (rental.RentalUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	unit, err := m.addUnit(kind, location, capacity)
	if err != nil {
		return nil, err
	}

	event := core.BuildRentalUnitAdded(unit.Key().String(), string(unit.Kind()), unit.Capacity(), m.now())
	if err := m.record(ctx, core.SuccessDecision(event)); err != nil {
		return unit, err
	}

	m.logInfo(logMsgRentalUnitAdded, logAttrUnit, unit.Key().String())

	return unit, nil
}

// Client returns the client registered under id.
func (m *PropertyManager) Client(id string) (*rental.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.findClient(id)
}

// RentalUnit returns the unit registered at location.
func (m *PropertyManager) RentalUnit(location string) (rental.RentalUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.findUnit(location)
}

// ListClients renders each client as "name (id)" in registration order.
func (m *PropertyManager) ListClients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]string, 0, len(m.clients))
	for _, client := range m.clients {
		list = append(list, fmt.Sprintf("%s (%s)", client.Name(), client.ID()))
	}

	return list
}

// ListRentalUnits returns the description of every unit ordered by floor, then room.
func (m *PropertyManager) ListRentalUnits() []string {
	return m.FilterRentalUnits("", false)
}

// FilterRentalUnits is like ListRentalUnits restricted to one kind (empty for all kinds)
// and optionally to units in service.
func (m *PropertyManager) FilterRentalUnits(kind rental.UnitKind, inServiceOnly bool) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]string, 0, len(m.units))
	for _, unit := range m.units {
		if kind != "" && unit.Kind() != kind {
			continue
		}

		if inServiceOnly && !unit.IsInService() {
			continue
		}

		list = append(list, unit.Description())
	}

	return list
}

// ListClientLeases lists the leases of the client registered under id.
func (m *PropertyManager) ListClientLeases(id string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	client, err := m.findClient(id)
	if err != nil {
		return nil, err
	}

	return client.ListLeases(), nil
}

// ListLeasesForRentalUnit lists the leases of the unit at location ordered by start date.
func (m *PropertyManager) ListLeasesForRentalUnit(location string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	unit, err := m.findUnit(location)
	if err != nil {
		return nil, err
	}

	return unit.ListLeases(), nil
}

func (m *PropertyManager) addClient(name string, id string) (*rental.Client, error) {
	client, err := rental.NewClient(name, id)
	if err != nil {
		return nil, err
	}

	if _, err := m.findClient(client.ID()); err == nil {
		return nil, fmt.Errorf("%w: %w: %q", rental.ErrInvalidArgument, ErrDuplicateClient, client.ID())
	}

	m.clients = append(m.clients, client)

	return client, nil
}

func (m *PropertyManager) addUnit(kind rental.UnitKind, location string, capacity int) (rental.RentalUnit, error) {
	key, err := rental.ParseLocation(location)
	if err != nil {
		return nil, err
	}

	idx, found := m.unitIndex(key)
	if found {
		return nil, fmt.Errorf("%w: %w: %s", rental.ErrInvalidArgument, ErrDuplicateUnit, key)
	}

	unitOptions := []rental.UnitOption{
		rental.WithDateBounds(m.bounds),
		rental.WithConfirmationSequence(m.confirmations),
	}

	var unit rental.RentalUnit

	switch kind {
	case rental.KindConferenceRoom:
		unit, err = rental.NewConferenceRoom(location, capacity, unitOptions...)
	case rental.KindHotelSuite:
		unit, err = rental.NewHotelSuite(location, capacity, unitOptions...)
	default:
		return nil, fmt.Errorf("%w: %w: %q", rental.ErrInvalidArgument, ErrUnknownUnitKind, kind)
	}

	if err != nil {
		return nil, err
	}

	m.units = slices.Insert(m.units, idx, unit)

	return unit, nil
}

func (m *PropertyManager) findClient(id string) (*rental.Client, error) {
	for _, client := range m.clients {
		if client.ID() == id {
			return client, nil
		}
	}

	return nil, fmt.Errorf("%w: %w: %q", rental.ErrInvalidArgument, ErrUnknownClient, id)
}

func (m *PropertyManager) findUnit(location string) (rental.RentalUnit, error) {
	key, err := rental.ParseLocation(location)
	if err != nil {
		return nil, err
	}

	idx, found := m.unitIndex(key)
	if !found {
		return nil, fmt.Errorf("%w: %w: %s", rental.ErrInvalidArgument, ErrUnknownUnit, key)
	}

	return m.units[idx], nil
}

// unitIndex returns where key is, or where it would be inserted.
func (m *PropertyManager) unitIndex(key rental.UnitKey) (int, bool) {
	return slices.BinarySearchFunc(m.units, key, func(unit rental.RentalUnit, target rental.UnitKey) int {
		if c := cmp.Compare(unit.Floor(), target.Floor); c != 0 {
			return c
		}

		return cmp.Compare(unit.Room(), target.Room)
	})
}

func (m *PropertyManager) logInfo(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Info(msg, args...)
	}
}

func (m *PropertyManager) logWarn(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Warn(msg, args...)
	}
}

func (m *PropertyManager) logError(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Error(msg, args...)
	}
}
