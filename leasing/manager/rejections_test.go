package manager_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexraum/PropertyManager/eventstore"
	"github.com/alexraum/PropertyManager/leasing/manager"
	"github.com/alexraum/PropertyManager/leasing/shell"
	"github.com/alexraum/PropertyManager/rental"
)

// consistencyRecordingEventStore remembers the consistency level of every query, or fails every query with queryErr.
type consistencyRecordingEventStore struct {
	shell.EventStore
	levels   []eventstore.ConsistencyLevel
	queryErr error
}

func (s *consistencyRecordingEventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	s.levels = append(s.levels, eventstore.GetConsistencyLevel(ctx))

	if s.queryErr != nil {
		return nil, 0, s.queryErr
	}

	return s.EventStore.Query(ctx, filter)
}

func Test_PropertyManager_RejectedReservations(t *testing.T) {
	// arrange
	ctx := context.Background()
	m, _, _ := newJournaledManager(t)

	_, err := m.AddNewClient(ctx, "Ada Lovelace", "ada")
	require.NoError(t, err)
	_, err = m.AddNewClient(ctx, "Grace Hopper", "grace")
	require.NoError(t, err)
	_, err = m.AddNewUnit(ctx, rental.KindConferenceRoom, "3-10", 10)
	require.NoError(t, err)
	_, err = m.AddNewUnit(ctx, rental.KindHotelSuite, "5-20", 2)
	require.NoError(t, err)

	_, err = m.CreateLease(ctx, "ada", "3-10", rental.Date(2024, time.January, 1), 1, 11)
	require.ErrorIs(t, err, rental.ErrRentalCapacity)
	_, err = m.CreateLease(ctx, "grace", "3-10", rental.Date(2024, time.January, 2), 1, 12)
	require.ErrorIs(t, err, rental.ErrRentalCapacity)
	_, err = m.CreateLease(ctx, "ada", "5-20", rental.Date(2024, time.January, 7), 1, 3)
	require.ErrorIs(t, err, rental.ErrRentalCapacity)
	_, err = m.CreateLease(ctx, "grace", "3-10", rental.Date(2024, time.January, 3), 1, 4)
	require.NoError(t, err)

	testCases := []struct {
		name      string
		clientID  string
		unitKey   string
		occupants []int
	}{
		{"all", "", "", []int{11, 12, 3}},
		{"by client", "ada", "", []int{11, 3}},
		{"by unit", "", "3-10", []int{11, 12}},
		{"by client and unit", "grace", "3-10", []int{12}},
		{"no match", "grace", "5-20", []int{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			rejections, err := m.RejectedReservations(ctx, tc.clientID, tc.unitKey)

			// assert
			require.NoError(t, err)
			occupants := make([]int, 0, len(rejections))
			for _, rejection := range rejections {
				occupants = append(occupants, rejection.Occupants)
				assert.NotEmpty(t, rejection.FailureInfo)
			}
			assert.Equal(t, tc.occupants, occupants)
		})
	}
}

func Test_PropertyManager_RejectedReservations_ReadsWithEventualConsistency(t *testing.T) {
	// arrange
	ctx := context.Background()
	_, es, _ := newJournaledManager(t)
	recording := &consistencyRecordingEventStore{EventStore: es}

	m, err := manager.NewPropertyManager(manager.WithEventStore(recording))
	require.NoError(t, err)
	_, err = m.AddNewClient(ctx, "Ada Lovelace", "ada")
	require.NoError(t, err)
	recording.levels = nil

	// act
	_, err = m.RejectedReservations(ctx, "ada", "")

	// assert
	require.NoError(t, err)
	assert.Equal(t, []eventstore.ConsistencyLevel{eventstore.EventualConsistency}, recording.levels)
}

func Test_PropertyManager_Journal_ReadsWithStrongConsistency(t *testing.T) {
	// arrange
	ctx := context.Background()
	_, es, _ := newJournaledManager(t)
	recording := &consistencyRecordingEventStore{EventStore: es}

	m, err := manager.NewPropertyManager(manager.WithEventStore(recording))
	require.NoError(t, err)

	// act
	_, err = m.AddNewClient(ctx, "Ada Lovelace", "ada")

	// assert
	require.NoError(t, err)
	require.NotEmpty(t, recording.levels)
	for _, level := range recording.levels {
		assert.Equal(t, eventstore.StrongConsistency, level)
	}
}

func Test_PropertyManager_RejectedReservations_Failures(t *testing.T) {
	t.Run("without event store", func(t *testing.T) {
		m, err := manager.NewPropertyManager()
		require.NoError(t, err)

		_, err = m.RejectedReservations(context.Background(), "", "")

		assert.ErrorIs(t, err, manager.ErrNoEventStore)
	})

	t.Run("query fails", func(t *testing.T) {
		_, es, _ := newJournaledManager(t)
		errConnectionLost := errors.New("connection lost")
		m, err := manager.NewPropertyManager(
			manager.WithEventStore(&consistencyRecordingEventStore{EventStore: es, queryErr: errConnectionLost}),
		)
		require.NoError(t, err)

		_, err = m.RejectedReservations(context.Background(), "", "")

		assert.ErrorIs(t, err, manager.ErrReadingRejectionsFailed)
		assert.ErrorIs(t, err, errConnectionLost)
	})
}
