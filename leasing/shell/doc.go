// Package shell is the imperative shell around the leasing domain events.
//
// It maps domain events to and from eventstore.StorableEvent, wraps them with message, causation and
// correlation IDs, and retries appends that lost an optimistic concurrency race.
package shell
