package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexraum/PropertyManager/leasing/manager"
	"github.com/alexraum/PropertyManager/leasing/shell/config"
)

func main() {
	seed := flag.Bool("seed", true, "run the reference scenarios when the journal is empty")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *seed, os.Stdout); err != nil {
		stop()
		log.Fatalf("leasing-demo: %v", err)
	}
}

func run(ctx context.Context, seed bool, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := config.NewLogger(cfg.LogLevel)

	bounds, err := cfg.DateBounds()
	if err != nil {
		return err
	}

	eventStore, closeEventStore, err := config.NewEventStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeEventStore()

	pm, err := manager.NewPropertyManager(
		manager.WithEventStore(eventStore),
		manager.WithLogger(logger),
		manager.WithDateBounds(bounds),
	)
	if err != nil {
		return err
	}

	if err := pm.Load(ctx); err != nil {
		return err
	}

	if seed && len(pm.ListClients()) == 0 {
		if err := runScenarios(ctx, pm, out); err != nil {
			return err
		}
	}

	return report(ctx, pm, out)
}

func report(ctx context.Context, pm *manager.PropertyManager, out io.Writer) error {
	var errs []error

	printSection(out, "Rental units", pm.ListRentalUnits())
	printSection(out, "Clients", pm.ListClients())

	for _, unit := range pm.ListRentalUnits() {
		location := locationOf(unit)

		leases, err := pm.ListLeasesForRentalUnit(location)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		printSection(out, "Leases of "+location, leases)
	}

	rejections, err := pm.RejectedReservations(ctx, "", "")
	if err != nil {
		errs = append(errs, err)
	}

	lines := make([]string, 0, len(rejections))
	for _, r := range rejections {
		lines = append(lines, fmt.Sprintf("%s at %s from %s for %d, %d occupant(s): %s",
			r.ClientID, r.UnitKey, r.StartDate, r.Duration, r.Occupants, r.FailureInfo))
	}

	printSection(out, "Rejected reservations", lines)

	return errors.Join(errs...)
}

func printSection(out io.Writer, title string, lines []string) {
	_, _ = fmt.Fprintf(out, "\n%s\n", title)

	if len(lines) == 0 {
		_, _ = fmt.Fprintln(out, "  (none)")
		return
	}

	for _, line := range lines {
		_, _ = fmt.Fprintf(out, "  %s\n", line)
	}
}
