package rental_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexraum/PropertyManager/rental"
)

func newConferenceRoom(t *testing.T, location string, capacity int) *rental.ConferenceRoom {
	t.Helper()

	room, err := rental.NewConferenceRoom(location, capacity, rental.WithConfirmationSequence(rental.NewConfirmationSequence()))
	require.NoError(t, err)

	return room
}

func newClient(t *testing.T, name string, id string) *rental.Client {
	t.Helper()

	client, err := rental.NewClient(name, id)
	require.NoError(t, err)

	return client
}

func Test_ConferenceRoom_Reserve_ComputesInclusiveEndDate(t *testing.T) {
	// arrange
	room := newConferenceRoom(t, "3-10", 10)
	clientA := newClient(t, "Client A", "a")

	// act
	lease, err := room.Reserve(clientA, rental.Date(2024, time.January, 1), 3, 4)

	// assert
	require.NoError(t, err)
	assert.Equal(t, rental.Date(2024, time.January, 1), lease.Start())
	assert.Equal(t, rental.Date(2024, time.January, 3), lease.End())
	assert.Equal(t, 1, lease.ConfirmationNumber())
	assert.Same(t, clientA, lease.Client())
	assert.True(t, rental.SameUnit(room, lease.Property()))
	assert.Len(t, room.Leases(), 1)
}

func Test_ConferenceRoom_Reserve_RejectsOverlapOnSharedDay(t *testing.T) {
	// arrange
	room := newConferenceRoom(t, "3-10", 10)
	_, err := room.Reserve(newClient(t, "Client A", "a"), rental.Date(2024, time.January, 1), 3, 4)
	require.NoError(t, err)

	// act
	_, err = room.Reserve(newClient(t, "Client B", "b"), rental.Date(2024, time.January, 3), 2, 4)

	// assert
	assert.ErrorIs(t, err, rental.ErrRentalDate)
	assert.Len(t, room.Leases(), 1)
}

func Test_ConferenceRoom_Reserve_AcceptsAdjacentLease(t *testing.T) {
	// arrange
	room := newConferenceRoom(t, "3-10", 10)
	_, err := room.Reserve(newClient(t, "Client A", "a"), rental.Date(2024, time.January, 1), 3, 4)
	require.NoError(t, err)

	// act
	lease, err := room.Reserve(newClient(t, "Client B", "b"), rental.Date(2024, time.January, 4), 1, 4)

	// assert
	require.NoError(t, err)
	assert.Equal(t, lease.Start(), lease.End())
	assert.Len(t, room.Leases(), 2)
}

func Test_ConferenceRoom_Reserve_Failures(t *testing.T) {
	start := rental.Date(2024, time.March, 4)

	tests := []struct {
		name      string
		prepare   func(room *rental.ConferenceRoom)
		client    *rental.Client
		start     time.Time
		duration  int
		occupants int
		wantErr   error
	}{
		{
			name:      "nil_client",
			client:    nil,
			start:     start,
			duration:  1,
			occupants: 1,
			wantErr:   rental.ErrInvalidArgument,
		},
		{
			name:      "zero_start_date",
			client:    &rental.Client{},
			start:     time.Time{},
			duration:  1,
			occupants: 1,
			wantErr:   rental.ErrInvalidArgument,
		},
		{
			name:      "zero_duration",
			client:    &rental.Client{},
			start:     start,
			duration:  0,
			occupants: 1,
			wantErr:   rental.ErrInvalidArgument,
		},
		{
			name:      "zero_occupants",
			client:    &rental.Client{},
			start:     start,
			duration:  1,
			occupants: 0,
			wantErr:   rental.ErrInvalidArgument,
		},
		{
			name:      "out_of_service",
			prepare:   func(room *rental.ConferenceRoom) { room.TakeOutOfService() },
			client:    &rental.Client{},
			start:     start,
			duration:  1,
			occupants: 1,
			wantErr:   rental.ErrRentalOutOfService,
		},
		{
			name:      "duration_above_maximum",
			client:    &rental.Client{},
			start:     start,
			duration:  rental.ConferenceRoomMaxDuration + 1,
			occupants: 1,
			wantErr:   rental.ErrRentalDate,
		},
		{
			name:      "occupants_above_capacity",
			client:    &rental.Client{},
			start:     start,
			duration:  2,
			occupants: 11,
			wantErr:   rental.ErrRentalCapacity,
		},
		{
			name:      "starts_before_earliest_date",
			client:    &rental.Client{},
			start:     rental.Date(2019, time.December, 31),
			duration:  2,
			occupants: 1,
			wantErr:   rental.ErrRentalDate,
		},
		{
			name:      "ends_after_latest_date",
			client:    &rental.Client{},
			start:     rental.Date(2029, time.December, 30),
			duration:  3,
			occupants: 1,
			wantErr:   rental.ErrRentalDate,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			room := newConferenceRoom(t, "3-10", 10)
			if tc.prepare != nil {
				tc.prepare(room)
			}

			// act
			lease, err := room.Reserve(tc.client, tc.start, tc.duration, tc.occupants)

			// assert
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, lease)
			assert.Empty(t, room.Leases())
		})
	}
}

func Test_ConferenceRoom_Reserve_ChecksDurationBeforeCapacity(t *testing.T) {
	// arrange
	room := newConferenceRoom(t, "3-10", 10)

	// act
	_, err := room.Reserve(newClient(t, "Client A", "a"), rental.Date(2024, time.March, 4), 8, 11)

	// assert
	assert.ErrorIs(t, err, rental.ErrRentalDate)
	assert.NotErrorIs(t, err, rental.ErrRentalCapacity)
}

func Test_ConferenceRoom_Reserve_KeepsLeasesOrderedByStart(t *testing.T) {
	// arrange
	room := newConferenceRoom(t, "3-10", 10)
	client := newClient(t, "Client A", "a")

	// act
	for _, day := range []int{20, 5, 12} {
		_, err := room.Reserve(client, rental.Date(2024, time.May, day), 2, 1)
		require.NoError(t, err)
	}

	// assert
	leases := room.Leases()
	require.Len(t, leases, 3)
	assert.Equal(t, 5, leases[0].Start().Day())
	assert.Equal(t, 12, leases[1].Start().Day())
	assert.Equal(t, 20, leases[2].Start().Day())
}

func Test_ConferenceRoom_RecordExistingLease(t *testing.T) {
	t.Run("keeps_the_supplied_confirmation_number", func(t *testing.T) {
		// arrange
		sequence := rental.NewConfirmationSequence()
		room, err := rental.NewConferenceRoom("3-10", 10, rental.WithConfirmationSequence(sequence))
		require.NoError(t, err)

		// act
		lease, err := room.RecordExistingLease(42, newClient(t, "Client A", "a"),
			rental.Date(2024, time.January, 1), rental.Date(2024, time.January, 7), 10)

		// assert
		require.NoError(t, err)
		assert.Equal(t, 42, lease.ConfirmationNumber())
		assert.Equal(t, 43, sequence.Peek())
	})

	t.Run("rejects_a_span_longer_than_seven_days", func(t *testing.T) {
		// arrange
		room := newConferenceRoom(t, "3-10", 10)

		// act
		_, err := room.RecordExistingLease(1, newClient(t, "Client A", "a"),
			rental.Date(2024, time.January, 1), rental.Date(2024, time.January, 8), 1)

		// assert
		assert.ErrorIs(t, err, rental.ErrRentalDate)
	})

	t.Run("rejects_occupants_above_capacity", func(t *testing.T) {
		// arrange
		room := newConferenceRoom(t, "3-10", 10)

		// act
		_, err := room.RecordExistingLease(1, newClient(t, "Client A", "a"),
			rental.Date(2024, time.January, 1), rental.Date(2024, time.January, 2), 11)

		// assert
		assert.ErrorIs(t, err, rental.ErrRentalCapacity)
	})

	t.Run("does_not_check_overlap", func(t *testing.T) {
		// arrange
		room := newConferenceRoom(t, "3-10", 10)
		client := newClient(t, "Client A", "a")
		_, err := room.RecordExistingLease(1, client, rental.Date(2024, time.January, 1), rental.Date(2024, time.January, 3), 1)
		require.NoError(t, err)

		// act
		_, err = room.RecordExistingLease(2, client, rental.Date(2024, time.January, 2), rental.Date(2024, time.January, 4), 1)

		// assert
		require.NoError(t, err)
		assert.Len(t, room.Leases(), 2)
	})

	t.Run("rejects_a_duplicate_confirmation_number", func(t *testing.T) {
		// arrange
		room := newConferenceRoom(t, "3-10", 10)
		client := newClient(t, "Client A", "a")
		_, err := room.RecordExistingLease(7, client, rental.Date(2024, time.January, 1), rental.Date(2024, time.January, 1), 1)
		require.NoError(t, err)

		// act
		_, err = room.RecordExistingLease(7, client, rental.Date(2024, time.February, 1), rental.Date(2024, time.February, 1), 1)

		// assert
		assert.ErrorIs(t, err, rental.ErrInvalidArgument)
	})
}

func Test_ConferenceRoom_RemoveFromServiceStarting_TruncatesCrossingLease(t *testing.T) {
	// arrange
	room := newConferenceRoom(t, "3-10", 10)
	client := newClient(t, "Client A", "a")
	crossing, err := room.Reserve(client, rental.Date(2023, time.December, 30), 7, 2)
	require.NoError(t, err)
	require.Equal(t, rental.Date(2024, time.January, 5), crossing.End())

	// act
	removed := room.RemoveFromServiceStarting(rental.Date(2024, time.January, 2))

	// assert
	assert.True(t, removed.IsEmpty())
	assert.Equal(t, rental.Date(2024, time.January, 1), crossing.End())
	assert.False(t, room.IsInService())

	late, err := rental.NewExistingLease(nil, 99, client, room, rental.Date(2024, time.February, 1), rental.Date(2024, time.February, 2), 1)
	require.NoError(t, err)
	assert.NoError(t, room.AddLease(late))
	assert.Len(t, room.Leases(), 1)
}

func Test_ConferenceRoom_RemoveFromServiceStarting_ReturnsLaterLeases(t *testing.T) {
	// arrange
	room := newConferenceRoom(t, "3-10", 10)
	client := newClient(t, "Client A", "a")
	early, err := room.Reserve(client, rental.Date(2024, time.June, 1), 2, 1)
	require.NoError(t, err)
	onCutoff, err := room.Reserve(client, rental.Date(2024, time.June, 10), 2, 1)
	require.NoError(t, err)
	later, err := room.Reserve(client, rental.Date(2024, time.June, 20), 2, 1)
	require.NoError(t, err)

	// act
	removed := room.RemoveFromServiceStarting(rental.Date(2024, time.June, 10))

	// assert
	assert.Equal(t, []*rental.Lease{onCutoff, later}, removed.All())
	assert.Equal(t, []*rental.Lease{early}, room.Leases())
	assert.Equal(t, rental.Date(2024, time.June, 2), early.End())
	for _, lease := range room.Leases() {
		assert.True(t, lease.Start().Before(rental.Date(2024, time.June, 10)))
		assert.True(t, lease.End().Before(rental.Date(2024, time.June, 10)))
	}
}

func Test_ConferenceRoom_ReturnToService_AcceptsReservationsAgain(t *testing.T) {
	// arrange
	room := newConferenceRoom(t, "3-10", 10)
	room.RemoveFromServiceStarting(rental.Date(2024, time.January, 1))

	// act
	room.ReturnToService()
	_, err := room.Reserve(newClient(t, "Client A", "a"), rental.Date(2024, time.January, 8), 1, 1)

	// assert
	assert.NoError(t, err)
	assert.True(t, room.IsInService())
}

func Test_ConferenceRoom_CancelLeaseByNumber(t *testing.T) {
	// arrange
	room := newConferenceRoom(t, "3-10", 10)
	client := newClient(t, "Client A", "a")
	first, err := room.Reserve(client, rental.Date(2024, time.January, 1), 1, 1)
	require.NoError(t, err)
	second, err := room.Reserve(client, rental.Date(2024, time.January, 2), 1, 1)
	require.NoError(t, err)

	// act
	canceled, err := room.CancelLeaseByNumber(first.ConfirmationNumber())
	_, unknownErr := room.CancelLeaseByNumber(first.ConfirmationNumber())

	// assert
	require.NoError(t, err)
	assert.Same(t, first, canceled)
	assert.Equal(t, []*rental.Lease{second}, room.Leases())
	assert.ErrorIs(t, unknownErr, rental.ErrInvalidArgument)
	assert.Len(t, room.Leases(), 1)
}

func Test_ConferenceRoom_AddLease_RejectsLeaseOfOtherUnit(t *testing.T) {
	// arrange
	room := newConferenceRoom(t, "3-10", 10)
	other := newConferenceRoom(t, "3-11", 10)
	lease, err := other.Reserve(newClient(t, "Client A", "a"), rental.Date(2024, time.January, 1), 1, 1)
	require.NoError(t, err)

	// act
	err = room.AddLease(lease)

	// assert
	assert.ErrorIs(t, err, rental.ErrInvalidArgument)
	assert.Empty(t, room.Leases())
}

func Test_ConferenceRoom_ListLeases(t *testing.T) {
	// arrange
	room := newConferenceRoom(t, "3-10", 10)
	_, err := room.Reserve(newClient(t, "Ada Lovelace", "ada"), rental.Date(2024, time.January, 1), 3, 4)
	require.NoError(t, err)

	// act
	listed := room.ListLeases()

	// assert
	assert.Equal(t, []string{"000001 | Ada Lovelace | ada | 2024-01-01 (2024-01-03)"}, listed)
}
