package core

import (
	"time"
)

// ClientAddedEventType is the event type identifier.
const ClientAddedEventType = "ClientAdded"

// ClientAdded represents a new client being registered with the property manager.
type ClientAdded struct {
	ClientID   ClientIDString
	ClientName string
	OccurredAt OccurredAt
}

// BuildClientAdded creates a new ClientAdded event.
func BuildClientAdded(clientID ClientIDString, clientName string, occurredAt time.Time) ClientAdded {
	return ClientAdded{
		ClientID:   clientID,
		ClientName: clientName,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ClientAdded) IsEventType() string {
	return ClientAddedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ClientAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ClientAdded) IsErrorEvent() bool {
	return false
}
