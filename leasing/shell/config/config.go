package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/alexraum/PropertyManager/rental"
)

// Environment variables read by Load.
const (
	EnvEarliestDate       = "LEASING_EARLIEST_DATE"
	EnvLatestDate         = "LEASING_LATEST_DATE"
	EnvPostgresDSN        = "LEASING_POSTGRES_DSN"
	EnvPostgresReplicaDSN = "LEASING_POSTGRES_REPLICA_DSN"
	EnvDBAdapter          = "LEASING_DB_ADAPTER"
	EnvEventTable         = "LEASING_EVENT_TABLE"
	EnvLogLevel           = "LEASING_LOG_LEVEL"
)

// Supported database adapters.
const (
	AdapterPGXPool = "pgx.pool"
	AdapterSQLDB   = "sql.db"
	AdapterSQLXDB  = "sqlx.db"
)

const (
	defaultEventTable = "leasing_events"
	defaultLogLevel   = "info"
)

var (
	// ErrInvalidConfig is returned when the environment holds a value that fails validation.
	ErrInvalidConfig = errors.New("invalid leasing configuration")

	// ErrReplicaNeedsPGXPool is returned when a replica DSN is combined with an adapter other than pgx.pool.
	ErrReplicaNeedsPGXPool = errors.New("a read replica is only supported with the pgx.pool adapter")

	validate = validator.New()
)

// Config is the process-wide leasing configuration.
// A replica DSN needs a primary DSN and the pgx.pool adapter.
type Config struct {
	EarliestDate       time.Time `validate:"required"`
	LatestDate         time.Time `validate:"required,gtefield=EarliestDate"`
	PostgresDSN        string    `validate:"omitempty,url"`
	PostgresReplicaDSN string    `validate:"omitempty,excluded_without=PostgresDSN,url"`
	DBAdapter          string    `validate:"required,oneof=pgx.pool sql.db sqlx.db"`
	EventTable         string    `validate:"required,max=63"`
	LogLevel           string    `validate:"required,oneof=debug info warn error"`
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom reads the configuration through lookup, applies defaults for unset variables and validates the result.
func LoadFrom(lookup LookupFunc) (Config, error) {
	defaults := rental.DefaultDateBounds()

	earliest, err := dateOrDefault(lookup, EnvEarliestDate, defaults.Earliest)
	if err != nil {
		return Config{}, err
	}

	latest, err := dateOrDefault(lookup, EnvLatestDate, defaults.Latest)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		EarliestDate: earliest,
		LatestDate:   latest,
		PostgresDSN:        stringOrDefault(lookup, EnvPostgresDSN, ""),
		PostgresReplicaDSN: stringOrDefault(lookup, EnvPostgresReplicaDSN, ""),
		DBAdapter:          stringOrDefault(lookup, EnvDBAdapter, AdapterPGXPool),
		EventTable:         stringOrDefault(lookup, EnvEventTable, defaultEventTable),
		LogLevel:           stringOrDefault(lookup, EnvLogLevel, defaultLogLevel),
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	if cfg.UsesReplica() && cfg.DBAdapter != AdapterPGXPool {
		return Config{}, fmt.Errorf("%w: %w: %s", ErrInvalidConfig, ErrReplicaNeedsPGXPool, cfg.DBAdapter)
	}

	return cfg, nil
}

// DateBounds returns the configured global reservation window.
func (c Config) DateBounds() (rental.DateBounds, error) {
	return rental.BuildDateBounds(c.EarliestDate, c.LatestDate)
}

// UsesReplica reports whether eventually consistent reads go to a read replica.
func (c Config) UsesReplica() bool {
	return c.PostgresReplicaDSN != ""
}

// UsesPostgres reports whether a PostgreSQL DSN is configured.
func (c Config) UsesPostgres() bool {
	return c.PostgresDSN != ""
}

func stringOrDefault(lookup LookupFunc, key string, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}

	return fallback
}

func dateOrDefault(lookup LookupFunc, key string, fallback time.Time) (time.Time, error) {
	value, ok := lookup(key)
	if !ok || value == "" {
		return fallback, nil
	}

	date, err := rental.ParseDate(value)
	if err != nil {
		return time.Time{}, errors.Join(ErrInvalidConfig, err)
	}

	return date, nil
}
