package core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexraum/PropertyManager/leasing/core"
)

func Test_ToOccurredAt_NormalizesToUTCMicroseconds(t *testing.T) {
	// arrange
	berlin := time.FixedZone("CET", 3600)
	input := time.Date(2024, 1, 7, 10, 30, 0, 123456789, berlin)

	// act
	occurredAt := core.ToOccurredAt(input)

	// assert
	assert.Equal(t, time.UTC, occurredAt.Location())
	assert.Equal(t, 9, occurredAt.Hour())
	assert.Equal(t, 123456000, occurredAt.Nanosecond())
}

func Test_DomainEvents_ReportTypeAndErrorFlag(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		event     core.DomainEvent
		eventType string
		isError   bool
	}{
		{core.BuildClientAdded("ada", "Ada Lovelace", now), core.ClientAddedEventType, false},
		{core.BuildRentalUnitAdded("3-10", "ConferenceRoom", 10, now), core.RentalUnitAddedEventType, false},
		{core.BuildLeaseReserved(1, "ada", "3-10", "2024-01-01", "2024-01-03", 4, now), core.LeaseReservedEventType, false},
		{core.BuildLeaseCanceled(1, "ada", "3-10", now), core.LeaseCanceledEventType, false},
		{core.BuildRentalUnitRemovedFromService("3-10", "2024-01-02", nil, now), core.RentalUnitRemovedFromServiceEventType, false},
		{core.BuildRentalUnitReturnedToService("3-10", now), core.RentalUnitReturnedToServiceEventType, false},
		{core.BuildReservingRentalUnitFailed("ada", "3-10", "2024-01-03", 2, 4, "overlap", now), core.ReservingRentalUnitFailedEventType, true},
	}

	for _, tc := range testCases {
		t.Run(tc.eventType, func(t *testing.T) {
			assert.Equal(t, tc.eventType, tc.event.IsEventType())
			assert.Equal(t, tc.isError, tc.event.IsErrorEvent())
			assert.Equal(t, core.ToOccurredAt(now), tc.event.HasOccurredAt())
		})
	}

	assert.Len(t, core.JournalEventTypes(), len(testCases))
}

func Test_BuildRentalUnitRemovedFromService_NeverHoldsNilNumbers(t *testing.T) {
	event := core.BuildRentalUnitRemovedFromService("3-10", "2024-01-02", nil, time.Now())

	assert.NotNil(t, event.RemovedConfirmationNumbers)
	assert.Empty(t, event.RemovedConfirmationNumbers)
}

func Test_DecisionResult(t *testing.T) {
	event := core.BuildRentalUnitReturnedToService("3-10", time.Now())
	failure := core.BuildReservingRentalUnitFailed("ada", "3-10", "2024-01-03", 2, 4, "overlap", time.Now())
	errBoom := errors.New("boom")

	t.Run("idempotent", func(t *testing.T) {
		result := core.IdempotentDecision()

		assert.False(t, result.HasEventToAppend())
		assert.NoError(t, result.HasError())
	})

	t.Run("success", func(t *testing.T) {
		result := core.SuccessDecision(event)

		assert.True(t, result.HasEventToAppend())
		assert.NoError(t, result.HasError())
	})

	t.Run("error", func(t *testing.T) {
		result := core.ErrorDecision(failure, errBoom)

		assert.True(t, result.HasEventToAppend())
		assert.ErrorIs(t, result.HasError(), errBoom)
	})
}
