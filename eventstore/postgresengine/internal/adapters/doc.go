// Package adapters lets the PostgreSQL event store run on pgxpool.Pool, sql.DB or sqlx.DB
// through the common DBAdapter interface.
package adapters
