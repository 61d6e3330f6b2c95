// Package postgresengine provides a PostgreSQL implementation of the leasing journal.
//
// It runs on pgxpool.Pool, sql.DB (lib/pq driver) or sqlx.DB. Queries are built with goqu.
// Append is an INSERT ... SELECT guarded by a CTE computing the highest sequence number of the
// events matching the filter, so the insert only happens when nobody appended to the same
// "dynamic event stream" since the caller queried it. Otherwise eventstore.ErrConcurrencyConflict
// is returned.
//
// Usage:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(
//		pool,
//		postgresengine.WithTableName("leasing_events"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//	_ = store.EnsureEventTable(ctx)
//
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvent)
package postgresengine
