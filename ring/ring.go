/*
DESCRIPTION
  ring.go provides a fixed-capacity, lock-free single-producer/single-
  consumer ring used to hand changed frames from the capture loop to a
  downstream sink without blocking the producer.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ring provides a lock-free SPSC ring buffer: the capture
// fabric's "quick lane".
package ring

import "sync/atomic"

// SPSC is a fixed-capacity single-producer/single-consumer ring. Capacity
// is rounded up to a power of two. Push drops silently when full; there
// is no blocking. Contract: at most one goroutine may call Push, and at
// most one (possibly different) goroutine may call Pop; using more than
// one producer or consumer is a contract violation with undefined
// behaviour; this is not detected at runtime, consistent with how the
// fabric treats violations of single-owner call contracts elsewhere.
type SPSC[T any] struct {
	buf  []T
	mask uint64
	head atomic.Uint64 // next slot the producer will write.
	tail atomic.Uint64 // next slot the consumer will read.
}

// New returns an SPSC ring whose capacity is the next power of two >= n
// (minimum 1, rounded to 1).
func New[T any](n int) *SPSC[T] {
	if n < 1 {
		n = 1
	}
	cap := nextPow2(n)
	return &SPSC[T]{
		buf:  make([]T, cap),
		mask: uint64(cap - 1),
	}
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Cap returns the ring's fixed capacity.
func (r *SPSC[T]) Cap() int { return len(r.buf) }

// Push appends x to the ring. It returns false, dropping x silently,
// if the ring is full. Only the single producer goroutine may call Push.
func (r *SPSC[T]) Push(x T) bool {
	head := r.head.Load()
	tail := r.tail.Load() // acquire: synchronizes with Pop's release on tail.
	if head-tail >= uint64(len(r.buf)) {
		return false
	}
	r.buf[head&r.mask] = x
	r.head.Store(head + 1) // release: publishes buf[head] to the consumer.
	return true
}

// Pop removes and returns the oldest item. ok is false if the ring is
// empty. Only the single consumer goroutine may call Pop.
func (r *SPSC[T]) Pop() (x T, ok bool) {
	tail := r.tail.Load()
	head := r.head.Load() // acquire: synchronizes with Push's release on head.
	if tail >= head {
		return x, false
	}
	x = r.buf[tail&r.mask]
	r.tail.Store(tail + 1) // release: frees the slot for reuse by the producer.
	return x, true
}

// Len reports the approximate number of items currently queued. Because
// head/tail are read independently, this is a snapshot that may be stale
// by the time the caller acts on it.
func (r *SPSC[T]) Len() int {
	return int(r.head.Load() - r.tail.Load())
}
