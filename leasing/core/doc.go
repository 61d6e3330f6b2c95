// Package core contains the domain events of the leasing journal: clients and rental units being
// added, leases being reserved and canceled, units leaving and re-entering service, and
// reservations that failed on a business rule.
//
// Events carry plain values (ids, "FF-RR" unit keys, YYYY-MM-DD dates) so they serialize to flat
// JSON payloads the event store can filter on.
package core
