// Command leasing-demo wires configuration, logging, the event store and the property manager,
// replays the journal and runs the reference leasing scenarios against it.
//
// Configuration comes from the LEASING_* environment variables; without LEASING_POSTGRES_DSN
// everything stays in memory.
package main
