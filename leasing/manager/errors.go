package manager

import "errors"

var (
	// ErrDuplicateClient is returned when a client id is already registered.
	ErrDuplicateClient = errors.New("client already registered")

	// ErrDuplicateUnit is returned when a rental unit location is already registered.
	ErrDuplicateUnit = errors.New("rental unit already registered")

	// ErrUnknownClient is returned when no client has the given id.
	ErrUnknownClient = errors.New("unknown client")

	// ErrUnknownUnit is returned when no rental unit has the given location.
	ErrUnknownUnit = errors.New("unknown rental unit")

	// ErrUnknownLease is returned when no client holds a lease with the given confirmation number.
	ErrUnknownLease = errors.New("unknown lease")

	// ErrUnknownUnitKind is returned for a unit kind other than conference room or hotel suite.
	ErrUnknownUnitKind = errors.New("unknown rental unit kind")

	// ErrJournalingFailed is returned when an accepted change could not be appended to the event store.
	// The in-memory change stays applied.
	ErrJournalingFailed = errors.New("journaling event failed")

	// ErrReplayingJournalFailed is returned when Load can not apply a journaled event.
	ErrReplayingJournalFailed = errors.New("replaying journal failed")

	// ErrReadingRejectionsFailed is returned when rejected reservations can not be read from the journal.
	ErrReadingRejectionsFailed = errors.New("reading rejected reservations failed")

	// ErrNoEventStore is returned by Load and RejectedReservations when the manager has no event store.
	ErrNoEventStore = errors.New("no event store configured")

	// ErrManagerNotEmpty is returned by Load when clients or units are already registered.
	ErrManagerNotEmpty = errors.New("property manager already holds clients or rental units")

	// ErrNilEventStore is returned when a nil event store is provided to WithEventStore.
	ErrNilEventStore = errors.New("event store must not be nil")

	// ErrNilLogger is returned when a nil logger is provided to WithLogger.
	ErrNilLogger = errors.New("logger must not be nil")

	// ErrNilClock is returned when a nil clock is provided to WithClock.
	ErrNilClock = errors.New("clock must not be nil")

	// ErrNilConfirmationSequence is returned when a nil sequence is provided to WithConfirmationSequence.
	ErrNilConfirmationSequence = errors.New("confirmation sequence must not be nil")
)
