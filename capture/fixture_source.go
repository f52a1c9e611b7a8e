/*
DESCRIPTION
  fixture_source.go provides FixtureSource, a file-backed capture.Source
  for tests and development: it watches a directory for frame files and
  serves the most recently written one on each Capture call.

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

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/framefab/raster"
)

// Used to indicate package in logging.
const pkgFixture = "fixture-source: "

// FixtureSource serves raw BGRA frame files from a directory as a
// call-and-return Source: each Capture call serves the frame file named
// by the most recent fsnotify Create/Write event in Dir, or, before any
// event arrives, the file in Dir that sorts last by name. There is no
// directory poll per tick.
type FixtureSource struct {
	log    logging.Logger
	Dir    string
	Width  int
	Height int

	mu      sync.Mutex
	current string
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewFixtureSource returns a FixtureSource watching dir for w x h raw
// BGRA frame files, seeded with whatever files already exist there.
func NewFixtureSource(l logging.Logger, dir string, w, h int) (*FixtureSource, error) {
	s := &FixtureSource{log: l, Dir: dir, Width: w, Height: h, done: make(chan struct{})}

	if err := s.refresh(); err != nil {
		l.Warning(pkgFixture+"initial directory scan failed", "error", err.Error())
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}
	s.watcher = watcher

	go s.watch()

	return s, nil
}

func (s *FixtureSource) watch() {
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				s.mu.Lock()
				s.current = ev.Name
				s.mu.Unlock()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warning(pkgFixture+"watch error", "error", err.Error())
		}
	}
}

// refresh seeds current with the lexicographically last file in Dir, for
// the window between construction and the first fsnotify event.
func (s *FixtureSource) refresh() error {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	s.mu.Lock()
	s.current = filepath.Join(s.Dir, names[len(names)-1])
	s.mu.Unlock()
	return nil
}

// Capture reads the currently tracked frame file and returns it as a raw
// BGRA image. The display argument is unused: a fixture source serves
// whatever its directory holds regardless of display index.
func (s *FixtureSource) Capture(display uint32) raster.Image {
	s.mu.Lock()
	path := s.current
	s.mu.Unlock()

	if path == "" {
		return raster.Image{}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		s.log.Warning(pkgFixture+"could not read frame file", "path", path, "error", err.Error())
		return raster.Image{}
	}

	return raster.NewFromBytes(s.Width, s.Height, b)
}

// Close stops the fsnotify watch.
func (s *FixtureSource) Close() error {
	close(s.done)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
