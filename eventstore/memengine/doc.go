// Package memengine provides an in-memory event store with the Query/Append contract of
// eventstore/postgresengine.
//
// Events get gap-free sequence numbers starting at 1. Append is guarded the same way as the
// Postgres CTE insert: it only succeeds when the highest sequence number among the events matching
// the filter still equals the expected one, otherwise it returns eventstore.ErrConcurrencyConflict.
//
// Payload predicates compare top-level JSON string fields, mirroring the jsonb containment
// operator the Postgres engine uses.
package memengine
