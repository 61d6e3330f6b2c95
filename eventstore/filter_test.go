package eventstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexraum/PropertyManager/eventstore"
)

func Test_FilterBuilder_ValidCombinations(t *testing.T) {
	tests := []struct {
		name     string
		build    func() eventstore.Filter
		validate func(t *testing.T, f eventstore.Filter)
	}{
		{
			name: "matching_any_event_creates_empty_filter",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().MatchingAnyEvent()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Empty(t, f.Items())
				assert.True(t, f.IsEmpty())
			},
		},
		{
			name: "event_types_are_sorted_and_deduplicated",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("LeaseReserved", "ClientAdded", "", "LeaseReserved").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				require.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"ClientAdded", "LeaseReserved"}, f.Items()[0].EventTypes())
				assert.Empty(t, f.Items()[0].Predicates())
				assert.False(t, f.IsEmpty())
			},
		},
		{
			name: "event_types_and_any_predicate",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("LeaseReserved").
					AndAnyPredicateOf(eventstore.P("UnitKey", "3-10"), eventstore.P("ClientID", "ada"), eventstore.P("", "x")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				require.Len(t, f.Items(), 1)
				item := f.Items()[0]
				assert.Equal(t, []string{"LeaseReserved"}, item.EventTypes())
				assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("ClientID", "ada"), eventstore.P("UnitKey", "3-10")}, item.Predicates())
				assert.False(t, item.AllPredicatesMustMatch())
			},
		},
		{
			name: "all_predicates_then_event_types",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AllPredicatesOf(eventstore.P("UnitKey", "3-10"), eventstore.P("ClientID", "ada")).
					AndAnyEventTypeOf("LeaseCanceled").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				require.Len(t, f.Items(), 1)
				assert.True(t, f.Items()[0].AllPredicatesMustMatch())
				assert.Len(t, f.Items()[0].Predicates(), 2)
				assert.Equal(t, []string{"LeaseCanceled"}, f.Items()[0].EventTypes())
			},
		},
		{
			name: "event_types_and_all_predicates",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("ReservingRentalUnitFailed").
					AndAllPredicatesOf(eventstore.P("UnitKey", "3-10"), eventstore.P("ClientID", "ada")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				require.Len(t, f.Items(), 1)
				item := f.Items()[0]
				assert.Equal(t, []string{"ReservingRentalUnitFailed"}, item.EventTypes())
				assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("ClientID", "ada"), eventstore.P("UnitKey", "3-10")}, item.Predicates())
				assert.True(t, item.AllPredicatesMustMatch())
			},
		},
		{
			name: "all_predicates_with_empty_values_do_not_restrict",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("ReservingRentalUnitFailed").
					AndAllPredicatesOf(eventstore.P("ClientID", ""), eventstore.P("UnitKey", "")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				require.Len(t, f.Items(), 1)
				assert.Empty(t, f.Items()[0].Predicates())
				assert.Equal(t, []string{"ReservingRentalUnitFailed"}, f.Items()[0].EventTypes())
			},
		},
		{
			name: "or_matching_creates_multiple_items",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("ClientAdded").
					OrMatching().
					AnyPredicateOf(eventstore.P("UnitKey", "5-20")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				require.Len(t, f.Items(), 2)
				assert.Equal(t, []string{"ClientAdded"}, f.Items()[0].EventTypes())
				assert.Empty(t, f.Items()[1].EventTypes())
				assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("UnitKey", "5-20")}, f.Items()[1].Predicates())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.validate(t, tc.build())
		})
	}
}

func Test_FilterBuilder_IsImmutableBetweenBranches(t *testing.T) {
	// arrange
	base := eventstore.BuildEventFilter().Matching().AnyEventTypeOf("ClientAdded")

	// act
	withPredicate := base.AndAnyPredicateOf(eventstore.P("ClientID", "ada")).Finalize()
	withoutPredicate := base.Finalize()

	// assert
	assert.Len(t, withPredicate.Items()[0].Predicates(), 1)
	assert.Empty(t, withoutPredicate.Items()[0].Predicates())
}
