// Package config loads the process-wide leasing configuration from the environment and builds the
// infrastructure it describes: the slog logger, the PostgreSQL connection (pgx.Pool, sql.DB or
// sqlx.DB) and the event store on top of it.
//
// Without a PostgreSQL DSN the in-memory event store is used.
package config
