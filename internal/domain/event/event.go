package event

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	AggregateType() string
	OccurredAt() time.Time
}

// BaseEvent provides a default implementation of DomainEvent. Concrete events
// embed it and add their own JSON fields.
type BaseEvent struct {
	ID        uuid.UUID `json:"event_id"`
	Type      string    `json:"event_type"`
	Aggregate uuid.UUID `json:"aggregate_id"`
	Kind      string    `json:"aggregate_type"`
	Occurred  time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a new BaseEvent with a generated UUID and the current time.
func NewBaseEvent(eventType string, aggregateID uuid.UUID, aggregateType string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Aggregate: aggregateID,
		Kind:      aggregateType,
		Occurred:  time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID     { return e.ID }
func (e BaseEvent) EventType() string      { return e.Type }
func (e BaseEvent) AggregateID() uuid.UUID { return e.Aggregate }
func (e BaseEvent) AggregateType() string  { return e.Kind }
func (e BaseEvent) OccurredAt() time.Time  { return e.Occurred }

// Collector is embedded in aggregates to collect domain events during state transitions.
type Collector struct {
	events []DomainEvent
}

// Record appends a domain event to the collector.
func (c *Collector) Record(evt DomainEvent) {
	c.events = append(c.events, evt)
}

// ClearEvents returns the collected domain events and clears the internal slice.
func (c *Collector) ClearEvents() []DomainEvent {
	collected := c.events
	c.events = nil
	return collected
}
