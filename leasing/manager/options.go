package manager

import (
	"time"

	"github.com/alexraum/PropertyManager/leasing/shell"
	"github.com/alexraum/PropertyManager/rental"
)

// Option defines a functional option for configuring PropertyManager.
type Option func(*PropertyManager) error

// WithEventStore journals every accepted change to es and enables Load.
func WithEventStore(es shell.EventStore) Option {
	return func(m *PropertyManager) error {
		if es == nil {
			return ErrNilEventStore
		}

		m.eventStore = es

		return nil
	}
}

// WithLogger sets the logger. Accepted changes are logged at Info, rejected reservations at Warn
// and journaling failures at Error.
func WithLogger(logger shell.Logger) Option {
	return func(m *PropertyManager) error {
		if logger == nil {
			return ErrNilLogger
		}

		m.logger = logger

		return nil
	}
}

// WithDateBounds sets the global window all rental units validate lease dates against.
func WithDateBounds(bounds rental.DateBounds) Option {
	return func(m *PropertyManager) error {
		if err := bounds.Validate(); err != nil {
			return err
		}

		m.bounds = bounds

		return nil
	}
}

// WithConfirmationSequence sets the sequence all rental units draw confirmation numbers from.
func WithConfirmationSequence(confirmations *rental.ConfirmationSequence) Option {
	return func(m *PropertyManager) error {
		if confirmations == nil {
			return ErrNilConfirmationSequence
		}

		m.confirmations = confirmations

		return nil
	}
}

// WithClock sets the time source for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *PropertyManager) error {
		if now == nil {
			return ErrNilClock
		}

		m.now = now

		return nil
	}
}

// WithRetryOptions tunes the backoff used when a journal append loses a concurrency race.
func WithRetryOptions(options ...shell.RetryOption) Option {
	return func(m *PropertyManager) error {
		m.retryOptions = append(m.retryOptions, options...)
		return nil
	}
}
