// Package manager provides PropertyManager, the registry of clients and rental units.
//
// PropertyManager is the one caller that keeps the client-side and unit-side lease lists in lockstep:
// it cancels leases from both sides, and drops leases a unit lost on removal from service from their
// clients. With an event store configured, every accepted change is journaled as a domain event
// and Load rebuilds the registry by replaying that journal.
package manager
