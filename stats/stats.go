/*
DESCRIPTION
  stats.go provides Sink, an injected event-reporting interface that
  replaces a global mutable singleton stats struct: components report
  events to whichever Sink they were constructed with, and tests can
  substitute a deterministic Counting sink instead of asserting on
  process-wide state.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package stats provides an injected event-reporting sink in place of
// global mutable counters.
package stats

import "sync"

// Event is one reported occurrence: a named counter bumped by Value.
type Event struct {
	Name  string
	Value float64
}

// Sink receives reported events. Implementations must be safe for
// concurrent use, since the quick-lane consumer and the orchestrator
// tick loop may both report.
type Sink interface {
	Report(Event)
}

// Noop discards every event. The zero value is ready to use.
type Noop struct{}

// Report implements Sink by discarding e.
func (Noop) Report(Event) {}

// Counting accumulates event totals in memory, for tests and for a
// simple in-process summary.
type Counting struct {
	mu     sync.Mutex
	totals map[string]float64
}

// NewCounting returns an empty Counting sink.
func NewCounting() *Counting {
	return &Counting{totals: make(map[string]float64)}
}

// Report adds e.Value to the running total for e.Name.
func (c *Counting) Report(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totals[e.Name] += e.Value
}

// Snapshot returns a copy of the current totals.
func (c *Counting) Snapshot() map[string]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]float64, len(c.totals))
	for k, v := range c.totals {
		out[k] = v
	}
	return out
}
