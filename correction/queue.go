/*
DESCRIPTION
  queue.go provides Queue, an ordered, thread-safe queue of in-place frame
  transforms split into persistent (run every frame) and one-shot (drained
  after their next application) lists.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package correction provides the CorrectionQueue that applies opaque,
// in-place per-frame transforms (grayscale, gamma, brightness, contrast,
// pixelate, or any caller-supplied function) ahead of the dedupe decision.
package correction

import (
	"sync"
	"sync/atomic"

	"github.com/ausocean/framefab/raster"
)

// Transform mutates img in place.
type Transform func(img raster.Image)

// Queue holds persistent transforms (applied every frame) and one-shot
// transforms (applied once then discarded), both run in registration
// order. All mutation is guarded by a mutex; a dirty flag lets ApplyAll
// skip lock acquisition when both lists are empty.
type Queue struct {
	mu        sync.Mutex
	persist   []Transform
	oneshot   []Transform
	dirty     atomic.Bool
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{}
}

// EnqueuePersistent registers fn to run on every future ApplyAll call,
// until Clear is called.
func (q *Queue) EnqueuePersistent(fn Transform) {
	q.mu.Lock()
	q.persist = append(q.persist, fn)
	q.mu.Unlock()
	q.dirty.Store(true)
}

// EnqueueOneshot registers fn to run on the next ApplyAll call only.
func (q *Queue) EnqueueOneshot(fn Transform) {
	q.mu.Lock()
	q.oneshot = append(q.oneshot, fn)
	q.mu.Unlock()
	q.dirty.Store(true)
}

// ApplyAll snapshots the persistent list (copy) and drains the one-shot
// list (swap), then runs them in registration order on img in place.
// It returns false (identity) if there was nothing to apply, matching
// the "apply_all on an empty queue is identity and returns false"
// idempotence requirement.
func (q *Queue) ApplyAll(img raster.Image) bool {
	if !q.dirty.Load() {
		return false
	}

	q.mu.Lock()
	persist := make([]Transform, len(q.persist))
	copy(persist, q.persist)
	oneshot := q.oneshot
	q.oneshot = nil
	stillDirty := len(q.persist) > 0
	q.mu.Unlock()
	q.dirty.Store(stillDirty)

	if len(persist) == 0 && len(oneshot) == 0 {
		return false
	}

	for _, fn := range persist {
		fn(img)
	}
	for _, fn := range oneshot {
		fn(img)
	}
	return true
}

// Clear removes all persistent and one-shot transforms.
func (q *Queue) Clear() {
	q.mu.Lock()
	q.persist = nil
	q.oneshot = nil
	q.mu.Unlock()
	q.dirty.Store(false)
}
