/*
DESCRIPTION
  guard.go provides Scope, a single enter/exit hook reporting duration
  and memory growth, replacing a deep polymorphic guard/worker hierarchy
  with one reusable wrapper.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package scope provides an optional, self-reporting enter/exit wrapper
// for timing and memory-tracking any orchestrator phase. It is not
// load-bearing in the core pipeline; callers that don't want it simply
// never call Enter.
package scope

import (
	"runtime"
	"time"

	"github.com/ausocean/utils/logging"
)

// Scope reports phase duration and heap growth through a Logger. A
// disabled Scope's Enter returns an Active whose Exit is a no-op, so
// callers can wrap code unconditionally without branching on whether
// guarding is turned on.
type Scope struct {
	log     logging.Logger
	enabled bool
}

// New returns a Scope that reports through log when enabled is true.
func New(log logging.Logger, enabled bool) *Scope {
	return &Scope{log: log, enabled: enabled}
}

// Active is one in-flight enter/exit span.
type Active struct {
	s          *Scope
	name       string
	start      time.Time
	startAlloc uint64
}

// Enter begins a named span. Callers should defer the returned Active's
// Exit.
func (s *Scope) Enter(name string) *Active {
	if !s.enabled {
		return &Active{}
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &Active{s: s, name: name, start: time.Now(), startAlloc: m.Alloc}
}

// Exit closes the span, logging its duration and heap-alloc delta.
func (a *Active) Exit() {
	if a.s == nil {
		return
	}
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	dur := time.Since(a.start)
	deltaBytes := int64(m.Alloc) - int64(a.startAlloc)
	a.s.log.Debug("scope exit", "name", a.name, "duration_ms", dur.Milliseconds(), "heap_delta_bytes", deltaBytes)
}
