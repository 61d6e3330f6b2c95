// Package rental contains the lease reservation model for a property-rental business:
// rental units (conference rooms and hotel suites), clients, and the leases joining them.
//
// The package is the functional core of the module. It is synchronous, keeps everything in memory
// and never logs. All failures are returned as errors wrapping one of the sentinel errors
// ErrInvalidArgument, ErrRentalDate, ErrRentalCapacity or ErrRentalOutOfService, so callers
// classify them with errors.Is.
//
// Reservation rules differ per unit type:
//   - ConferenceRoom: up to 7 days, inclusive overlap test (end >= other.start AND start <= other.end)
//   - HotelSuite: whole weeks from Sunday to Sunday, exclusive overlap test
//     (end > other.start AND start < other.end) plus no two leases starting on the same Sunday
//
// Typical usage:
//
//	room, err := rental.NewConferenceRoom("3-10", 10)
//	client, err := rental.NewClient("Ada Lovelace", "ada")
//	lease, err := room.Reserve(client, rental.Date(2024, time.January, 1), 3, 4)
//	if errors.Is(err, rental.ErrRentalDate) {
//		// pick other dates
//	}
//
// A Lease is shared by reference between its RentalUnit and its Client. Keeping both sides in
// lockstep (e.g. on cancellation) is the caller's job; leasing/manager does it for you.
package rental
