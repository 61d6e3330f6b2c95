package config

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alexraum/PropertyManager/eventstore/memengine"
	"github.com/alexraum/PropertyManager/eventstore/postgresengine"
	"github.com/alexraum/PropertyManager/leasing/shell"
)

// ErrUnsupportedDBAdapter is returned for a DBAdapter value NewEventStore does not know.
var ErrUnsupportedDBAdapter = errors.New("unsupported db adapter")

// CloseFunc releases the resources behind an event store.
type CloseFunc func()

// NewEventStore builds the event store described by cfg. With a DSN it connects through the configured
// adapter and ensures the event table exists; without one it returns an in-memory store.
// With a replica DSN, eventually consistent queries are served by a second pgx pool.
func NewEventStore(ctx context.Context, cfg Config, logger *slog.Logger) (shell.EventStore, CloseFunc, error) {
	if !cfg.UsesPostgres() {
		var memOptions []memengine.Option
		if logger != nil {
			memOptions = append(memOptions, memengine.WithLogger(logger))
		}

		es, err := memengine.NewEventStore(memOptions...)
		if err != nil {
			return nil, nil, err
		}

		return es, func() {}, nil
	}

	if cfg.UsesReplica() && cfg.DBAdapter != AdapterPGXPool {
		return nil, nil, ErrReplicaNeedsPGXPool
	}

	options := []postgresengine.Option{postgresengine.WithTableName(cfg.EventTable)}
	if logger != nil {
		options = append(options, postgresengine.WithLogger(logger))
	}

	var (
		es      postgresengine.EventStore
		closeFn CloseFunc
		err     error
	)

	switch cfg.DBAdapter {
	case AdapterPGXPool:
		pool, connErr := NewPostgresPGXPool(ctx, cfg.PostgresDSN)
		if connErr != nil {
			return nil, nil, connErr
		}

		if !cfg.UsesReplica() {
			closeFn = pool.Close
			es, err = postgresengine.NewEventStoreFromPGXPool(pool, options...)

			break
		}

		replica, connErr := NewPostgresPGXPool(ctx, cfg.PostgresReplicaDSN)
		if connErr != nil {
			pool.Close()
			return nil, nil, connErr
		}

		closeFn = func() {
			replica.Close()
			pool.Close()
		}
		es, err = postgresengine.NewEventStoreFromPGXPoolAndReplica(pool, replica, options...)

	case AdapterSQLDB:
		db, connErr := NewPostgresSQLDB(ctx, cfg.PostgresDSN)
		if connErr != nil {
			return nil, nil, connErr
		}

		closeFn = func() { _ = db.Close() }
		es, err = postgresengine.NewEventStoreFromSQLDB(db, options...)

	case AdapterSQLXDB:
		db, connErr := NewPostgresSQLX(ctx, cfg.PostgresDSN)
		if connErr != nil {
			return nil, nil, connErr
		}

		closeFn = func() { _ = db.Close() }
		es, err = postgresengine.NewEventStoreFromSQLX(db, options...)

	default:
		return nil, nil, ErrUnsupportedDBAdapter
	}

	if err != nil {
		closeFn()
		return nil, nil, err
	}

	if err := es.EnsureEventTable(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}

	return es, closeFn, nil
}
