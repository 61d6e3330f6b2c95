package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexraum/PropertyManager/leasing/manager"
	"github.com/alexraum/PropertyManager/rental"
)

// runScenarios registers a small building and walks through the reservation rules:
// overlapping conference bookings, week-aligned suite bookings and removal from service.
func runScenarios(ctx context.Context, pm *manager.PropertyManager, out io.Writer) error {
	if err := setup(ctx, pm); err != nil {
		return err
	}

	attempts := []struct {
		clientID  string
		location  string
		start     time.Time
		duration  int
		occupants int
	}{
		{"ada", "3-10", rental.Date(2024, time.January, 1), 3, 8},
		{"grace", "3-10", rental.Date(2024, time.January, 3), 2, 4},
		{"grace", "5-20", rental.Date(2024, time.January, 7), 1, 2},
		{"ada", "5-20", rental.Date(2024, time.January, 8), 1, 1},
		{"grace", "3-10", rental.Date(2024, time.January, 4), 2, 12},
		{"grace", "3-10", rental.Date(2023, time.December, 30), 1, 2},
	}

	for _, a := range attempts {
		lease, err := pm.CreateLease(ctx, a.clientID, a.location, a.start, a.duration, a.occupants)

		switch {
		case err == nil:
			_, _ = fmt.Fprintf(out, "reserved %06d: %s at %s from %s to %s\n",
				lease.ConfirmationNumber(), a.clientID, a.location, rental.FormatDate(lease.Start()), rental.FormatDate(lease.End()))
		case isRejection(err):
			_, _ = fmt.Fprintf(out, "rejected: %s at %s from %s: %v\n", a.clientID, a.location, rental.FormatDate(a.start), err)
		default:
			return err
		}
	}

	removed, err := pm.RemoveFromService(ctx, "3-10", rental.Date(2024, time.January, 2))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "3-10 removed from service on 2024-01-02, %d lease(s) dropped\n", len(removed))

	return nil
}

func setup(ctx context.Context, pm *manager.PropertyManager) error {
	for _, c := range [][2]string{{"Ada Lovelace", "ada"}, {"Grace Hopper", "grace"}} {
		if _, err := pm.AddNewClient(ctx, c[0], c[1]); err != nil {
			return err
		}
	}

	units := []struct {
		kind     rental.UnitKind
		location string
		capacity int
	}{
		{rental.KindConferenceRoom, "3-10", 10},
		{rental.KindHotelSuite, "5-20", 2},
		{rental.KindConferenceRoom, "12-11", 25},
	}

	for _, u := range units {
		if _, err := pm.AddNewUnit(ctx, u.kind, u.location, u.capacity); err != nil {
			return err
		}
	}

	return nil
}

func isRejection(err error) bool {
	return !errors.Is(err, manager.ErrJournalingFailed) &&
		(errors.Is(err, rental.ErrRentalDate) ||
			errors.Is(err, rental.ErrRentalCapacity) ||
			errors.Is(err, rental.ErrRentalOutOfService))
}

// locationOf extracts "FF-RR" from a unit description.
func locationOf(description string) string {
	_, rest, _ := strings.Cut(description, ":")
	location, _, _ := strings.Cut(rest, "|")

	return strings.TrimSpace(location)
}
