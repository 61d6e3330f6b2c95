// Package eventstore provides the store-agnostic building blocks of the leasing journal.
//
// It defines the Filter builder used to select a "dynamic event stream", the StorableEvent DTO,
// consistency level context helpers and the sentinel errors shared by the engines in
// eventstore/postgresengine and eventstore/memengine.
//
// The event store supports dynamic filtering of events based on:
//   - Event types
//   - JSON payload predicates (top-level string values)
//
// Common usage pattern:
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(core.LeaseReservedEventType, core.LeaseCanceledEventType).
//		AndAnyPredicateOf(eventstore.P("UnitKey", "3-10")).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	err = store.Append(ctx, filter, maxSeq, newEvent)
//	if errors.Is(err, eventstore.ErrConcurrencyConflict) {
//		// re-query and retry
//	}
package eventstore
