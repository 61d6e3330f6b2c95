package postgresengine

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"github.com/alexraum/PropertyManager/eventstore"
)

const (
	logMsgEventTableEnsured     = "event table ensured"
	logMsgEnsureEventTableError = "failed to create the event table"
	logAttrTable                = "table"
)

// schemaStatements returns the DDL for the event table and its indexes. The GIN index serves the
// jsonb containment predicates of Query and Append.
func (es EventStore) schemaStatements() []sqlQueryString {
	table := pq.QuoteIdentifier(es.eventTableName)
	eventTypeIndex := pq.QuoteIdentifier(es.eventTableName + "_event_type_idx")
	payloadIndex := pq.QuoteIdentifier(es.eventTableName + "_payload_idx")

	return []sqlQueryString{
		`CREATE TABLE IF NOT EXISTS ` + table + ` (
			sequence_number BIGSERIAL PRIMARY KEY,
			occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
			event_type TEXT NOT NULL,
			payload JSONB NOT NULL,
			metadata JSONB NOT NULL DEFAULT '{}'::jsonb
		)`,
		`CREATE INDEX IF NOT EXISTS ` + eventTypeIndex + ` ON ` + table + ` (event_type)`,
		`CREATE INDEX IF NOT EXISTS ` + payloadIndex + ` ON ` + table + ` USING gin (payload jsonb_path_ops)`,
	}
}

// EnsureEventTable creates the event table and its indexes unless they exist.
func (es EventStore) EnsureEventTable(ctx context.Context) error {
	for _, statement := range es.schemaStatements() {
		_, _, err := es.exec(ctx, statement, logActionSchema)
		if err != nil {
			if es.logger != nil {
				es.logger.Error(logMsgEnsureEventTableError, logAttrError, err.Error(), logAttrTable, es.eventTableName)
			}

			return errors.Join(eventstore.ErrCreatingEventTableFailed, err)
		}
	}

	es.logOperation(logMsgEventTableEnsured, logAttrTable, es.eventTableName)

	return nil
}
