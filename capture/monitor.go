/*
DESCRIPTION
  monitor.go provides StaticEnumerator, a DisplayEnumerator backed by a
  fixed list of Monitor records.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package capture

// StaticEnumerator is a DisplayEnumerator over a fixed, caller-supplied
// list of monitors. Per-OS display discovery (querying X11/Wayland/Win32
// for the live monitor topology) is a non-goal of this fabric; callers
// that need it populate the list themselves (e.g. by shelling out to a
// platform tool at startup) and hand it to StaticEnumerator.
type StaticEnumerator struct {
	monitors []Monitor
}

// NewStaticEnumerator returns a StaticEnumerator over the given monitors.
func NewStaticEnumerator(monitors []Monitor) *StaticEnumerator {
	return &StaticEnumerator{monitors: monitors}
}

// Enumerate returns all configured monitors.
func (e *StaticEnumerator) Enumerate() ([]Monitor, error) {
	out := make([]Monitor, len(e.monitors))
	copy(out, e.monitors)
	return out, nil
}

// ByIndex returns the monitor with the given ID, if present.
func (e *StaticEnumerator) ByIndex(i uint32) (Monitor, bool) {
	for _, m := range e.monitors {
		if m.ID == i {
			return m, true
		}
	}
	return Monitor{}, false
}
