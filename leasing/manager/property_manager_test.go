package manager_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexraum/PropertyManager/eventstore"
	"github.com/alexraum/PropertyManager/eventstore/memengine"
	"github.com/alexraum/PropertyManager/leasing/core"
	"github.com/alexraum/PropertyManager/leasing/manager"
	"github.com/alexraum/PropertyManager/rental"
	"github.com/alexraum/PropertyManager/testutil/helper"
)

var fixedNow = time.Date(2023, time.December, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func newJournaledManager(t *testing.T, options ...manager.Option) (*manager.PropertyManager, *memengine.EventStore, *helper.LogHandlerSpy) {
	t.Helper()

	es, err := memengine.NewEventStore()
	require.NoError(t, err)

	logger, spy := helper.NewSpyLogger()

	allOptions := []manager.Option{
		manager.WithEventStore(es),
		manager.WithLogger(logger),
		manager.WithClock(fixedClock),
	}
	allOptions = append(allOptions, options...)

	m, err := manager.NewPropertyManager(allOptions...)
	require.NoError(t, err)

	return m, es, spy
}

func journaledEventTypes(t *testing.T, es *memengine.EventStore) []string {
	t.Helper()

	events, _, err := es.Query(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent())
	require.NoError(t, err)

	eventTypes := make([]string, 0, len(events))
	for _, event := range events {
		eventTypes = append(eventTypes, event.EventType)
	}

	return eventTypes
}

func Test_PropertyManager_AddNewClient(t *testing.T) {
	// arrange
	ctx := context.Background()
	m, es, spy := newJournaledManager(t)

	// act
	ada, err := m.AddNewClient(ctx, "Ada Lovelace", "ada")
	require.NoError(t, err)
	_, err = m.AddNewClient(ctx, "Grace Hopper", "grace")
	require.NoError(t, err)
	_, duplicateErr := m.AddNewClient(ctx, "Someone Else", "ada")
	_, blankErr := m.AddNewClient(ctx, " ", "x")

	// assert
	assert.Equal(t, "ada", ada.ID())
	assert.ErrorIs(t, duplicateErr, manager.ErrDuplicateClient)
	assert.ErrorIs(t, duplicateErr, rental.ErrInvalidArgument)
	assert.ErrorIs(t, blankErr, rental.ErrInvalidArgument)
	assert.Equal(t, []string{"Ada Lovelace (ada)", "Grace Hopper (grace)"}, m.ListClients())
	assert.Equal(t, []string{core.ClientAddedEventType, core.ClientAddedEventType}, journaledEventTypes(t, es))
	assert.True(t, spy.HasInfoLogWithMessage("client added").WithAttrValue("client_id", "ada").Assert())
}

func Test_PropertyManager_AddNewUnit_KeepsUnitsOrdered(t *testing.T) {
	// arrange
	ctx := context.Background()
	m, es, _ := newJournaledManager(t)

	// act
	_, err := m.AddNewUnit(ctx, rental.KindHotelSuite, "5-20", 2)
	require.NoError(t, err)
	_, err = m.AddNewUnit(ctx, rental.KindConferenceRoom, "3-10", 10)
	require.NoError(t, err)
	_, err = m.AddNewUnit(ctx, rental.KindConferenceRoom, "3-9", 10)
	assert.ErrorIs(t, err, rental.ErrInvalidArgument)
	_, err = m.AddNewUnit(ctx, rental.KindConferenceRoom, "12-11", 25)
	require.NoError(t, err)

	// assert
	assert.Equal(t, []string{
		"Conference Room:  3-10 |  10",
		"Hotel Suite:      5-20 |   2",
		"Conference Room: 12-11 |  25",
	}, m.ListRentalUnits())
	assert.Len(t, journaledEventTypes(t, es), 3)
}

func Test_PropertyManager_AddNewUnit_Failures(t *testing.T) {
	ctx := context.Background()
	m, es, _ := newJournaledManager(t)

	_, err := m.AddNewUnit(ctx, rental.KindConferenceRoom, "3-10", 10)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		kind     rental.UnitKind
		location string
		capacity int
		wantErr  error
	}{
		{"duplicate location", rental.KindHotelSuite, "3-10", 1, manager.ErrDuplicateUnit},
		{"unknown kind", rental.UnitKind("Ballroom"), "4-10", 10, manager.ErrUnknownUnitKind},
		{"capacity above the suite cap", rental.KindHotelSuite, "4-10", 3, rental.ErrInvalidArgument},
		{"malformed location", rental.KindConferenceRoom, "four-ten", 3, rental.ErrInvalidArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.AddNewUnit(ctx, tc.kind, tc.location, tc.capacity)

			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, rental.ErrInvalidArgument)
		})
	}

	assert.Len(t, journaledEventTypes(t, es), 1)
}

func Test_PropertyManager_FilterRentalUnits(t *testing.T) {
	// arrange
	ctx := context.Background()
	m, _, _ := newJournaledManager(t)

	for _, location := range []string{"3-10", "3-11"} {
		_, err := m.AddNewUnit(ctx, rental.KindConferenceRoom, location, 10)
		require.NoError(t, err)
	}
	_, err := m.AddNewUnit(ctx, rental.KindHotelSuite, "5-20", 2)
	require.NoError(t, err)
	_, err = m.RemoveFromService(ctx, "3-11", rental.Date(2024, time.January, 1))
	require.NoError(t, err)

	// act + assert
	assert.Equal(t, []string{
		"Conference Room:  3-10 |  10",
		"Conference Room:  3-11 |  10 Unavailable",
	}, m.FilterRentalUnits(rental.KindConferenceRoom, false))

	assert.Equal(t, []string{
		"Conference Room:  3-10 |  10",
		"Hotel Suite:      5-20 |   2",
	}, m.FilterRentalUnits("", true))

	assert.Equal(t, []string{"Hotel Suite:      5-20 |   2"}, m.FilterRentalUnits(rental.KindHotelSuite, true))
}

func Test_PropertyManager_WorksWithoutEventStore(t *testing.T) {
	// arrange
	ctx := context.Background()
	m, err := manager.NewPropertyManager()
	require.NoError(t, err)

	// act
	_, err = m.AddNewClient(ctx, "Ada Lovelace", "ada")
	require.NoError(t, err)
	_, err = m.AddNewUnit(ctx, rental.KindConferenceRoom, "3-10", 10)
	require.NoError(t, err)
	lease, err := m.CreateLease(ctx, "ada", "3-10", rental.Date(2024, time.January, 1), 3, 4)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, lease.ConfirmationNumber())
	assert.ErrorIs(t, m.Load(ctx), manager.ErrNoEventStore)
}

func Test_NewPropertyManager_RejectsInvalidOptions(t *testing.T) {
	testCases := []struct {
		name    string
		option  manager.Option
		wantErr error
	}{
		{"nil event store", manager.WithEventStore(nil), manager.ErrNilEventStore},
		{"nil logger", manager.WithLogger(nil), manager.ErrNilLogger},
		{"nil clock", manager.WithClock(nil), manager.ErrNilClock},
		{"nil sequence", manager.WithConfirmationSequence(nil), manager.ErrNilConfirmationSequence},
		{"inverted bounds", manager.WithDateBounds(rental.DateBounds{
			Earliest: rental.Date(2025, time.January, 1),
			Latest:   rental.Date(2024, time.January, 1),
		}), rental.ErrInvalidArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := manager.NewPropertyManager(tc.option)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func Test_PropertyManager_WithDateBounds_AppliesToNewUnits(t *testing.T) {
	// arrange
	ctx := context.Background()
	bounds, err := rental.BuildDateBounds(rental.Date(2024, time.January, 1), rental.Date(2024, time.December, 31))
	require.NoError(t, err)

	m, _, _ := newJournaledManager(t, manager.WithDateBounds(bounds))
	_, err = m.AddNewClient(ctx, "Ada Lovelace", "ada")
	require.NoError(t, err)
	_, err = m.AddNewUnit(ctx, rental.KindConferenceRoom, "3-10", 10)
	require.NoError(t, err)

	// act
	_, err = m.CreateLease(ctx, "ada", "3-10", rental.Date(2023, time.December, 30), 2, 4)

	// assert
	assert.ErrorIs(t, err, rental.ErrRentalDate)
}
