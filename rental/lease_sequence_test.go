package rental_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexraum/PropertyManager/rental"
)

// leaseStep either reserves (label set, cancel empty) or cancels the lease reserved under cancel.
type leaseStep struct {
	label    string
	start    time.Time
	duration int
	accepted bool
	cancel   string
}

func reserveStep(label string, start time.Time, duration int, accepted bool) leaseStep {
	return leaseStep{label: label, start: start, duration: duration, accepted: accepted}
}

func cancelStep(label string) leaseStep {
	return leaseStep{cancel: label}
}

// sharesADay is the conference room rule: leases touching on the same day overlap.
func sharesADay(a, b *rental.Lease) bool {
	return !a.End().Before(b.Start()) && !a.Start().After(b.End())
}

// sharesANight is the hotel suite rule: a lease may start on the day the previous one ends.
func sharesANight(a, b *rental.Lease) bool {
	return (a.End().After(b.Start()) && a.Start().Before(b.End())) || a.Start().Equal(b.Start())
}

func Test_RentalUnit_NoOverlapAfterReservesAndCancels(t *testing.T) {
	jan := func(day int) time.Time { return rental.Date(2024, time.January, day) }

	testCases := []struct {
		name      string
		unit      func(t *testing.T) rental.RentalUnit
		occupants int
		overlaps  func(a, b *rental.Lease) bool
		steps     []leaseStep
	}{
		{
			name:      "conference room",
			unit:      func(t *testing.T) rental.RentalUnit { return newConferenceRoom(t, "3-10", 10) },
			occupants: 2,
			overlaps:  sharesADay,
			steps: []leaseStep{
				reserveStep("a", jan(1), 3, true),
				reserveStep("b", jan(3), 2, false),
				reserveStep("c", jan(4), 2, true),
				cancelStep("a"),
				reserveStep("d", jan(2), 2, true),
				reserveStep("e", rental.Date(2023, time.December, 31), 2, true),
				reserveStep("f", jan(5), 1, false),
				cancelStep("c"),
				reserveStep("g", jan(4), 5, true),
				reserveStep("h", jan(1), 1, false),
				cancelStep("d"),
				reserveStep("i", jan(2), 2, true),
				reserveStep("j", jan(8), 3, false),
			},
		},
		{
			name:      "hotel suite",
			unit:      func(t *testing.T) rental.RentalUnit { return newHotelSuite(t, "5-20", 2) },
			occupants: 2,
			overlaps:  sharesANight,
			steps: []leaseStep{
				reserveStep("a", jan(7), 2, true),
				reserveStep("b", jan(14), 1, false),
				reserveStep("c", jan(21), 1, true),
				cancelStep("a"),
				reserveStep("d", jan(14), 1, true),
				reserveStep("e", jan(7), 1, true),
				reserveStep("f", jan(7), 3, false),
				cancelStep("c"),
				reserveStep("g", jan(21), 2, true),
				reserveStep("h", jan(28), 1, false),
				cancelStep("e"),
				reserveStep("i", jan(7), 1, true),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			unit := tc.unit(t)
			client := newClient(t, "Client A", "a")
			reserved := make(map[string]*rental.Lease)
			held := 0

			for i, step := range tc.steps {
				// act
				if step.cancel != "" {
					lease, ok := reserved[step.cancel]
					require.True(t, ok, "step %d cancels unknown lease %q", i, step.cancel)

					_, err := unit.CancelLeaseByNumber(lease.ConfirmationNumber())
					require.NoError(t, err, "step %d", i)

					delete(reserved, step.cancel)
					held--
				} else {
					lease, err := unit.Reserve(client, step.start, step.duration, tc.occupants)

					if step.accepted {
						require.NoError(t, err, "step %d (%s)", i, step.label)
						reserved[step.label] = lease
						held++
					} else {
						require.ErrorIs(t, err, rental.ErrRentalDate, "step %d (%s)", i, step.label)
					}
				}

				// assert
				leases := unit.Leases()
				require.Len(t, leases, held, "step %d", i)

				for x := 0; x < len(leases); x++ {
					for y := x + 1; y < len(leases); y++ {
						assert.False(t, tc.overlaps(leases[x], leases[y]),
							"step %d: lease %06d overlaps lease %06d", i,
							leases[x].ConfirmationNumber(), leases[y].ConfirmationNumber())
					}
				}
			}
		})
	}
}
