package events

// Collector is embedded in aggregates to gather domain events raised during
// state transitions until the application layer drains them.
type Collector struct {
	events []DomainEvent
}

// Record appends a domain event.
func (c *Collector) Record(event DomainEvent) {
	c.events = append(c.events, event)
}

// Events returns the recorded events without clearing them.
func (c *Collector) Events() []DomainEvent {
	return c.events
}

// Drain returns the recorded events and resets the collector.
func (c *Collector) Drain() []DomainEvent {
	drained := c.events
	c.events = nil
	return drained
}
