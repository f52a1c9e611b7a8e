/*
DESCRIPTION
  metrics.go provides Metrics, a JSONL metrics stream emitting a record
  per captured frame plus periodic aggregate records summarizing the
  recent window, rotated via lumberjack.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Metrics configuration for rotation, mirroring cmd/rv/main.go's
// lumberjack.Logger construction.
type MetricsConfig struct {
	Path           string
	MaxSizeMB      int
	MaxBackups     int
	MaxAgeDays     int
	AggregateEvery float64 // Seconds between aggregate records. Default 1.
}

func (c MetricsConfig) withDefaults() MetricsConfig {
	if c.MaxSizeMB <= 0 {
		c.MaxSizeMB = 50
	}
	if c.MaxBackups <= 0 {
		c.MaxBackups = 5
	}
	if c.MaxAgeDays <= 0 {
		c.MaxAgeDays = 28
	}
	if c.AggregateEvery <= 0 {
		c.AggregateEvery = 1.0
	}
	return c
}

// FrameRecord is one per-frame JSONL line.
type FrameRecord struct {
	Type            string  `json:"type"`
	T               float64 `json:"t"`
	FrameIndex      int64   `json:"frame_index"`
	TSec            float64 `json:"tsec"`
	Unique          int     `json:"unique"`
	DupSkippedTotal int64   `json:"dup_skipped_total"`
	PoolFrames      int     `json:"pool_frames"`
	RSSMB           float64 `json:"rss_mb"`
	DiffRatio       float64 `json:"diff_ratio"`
	DedupeBlock     int     `json:"dedupe_block"`
}

// AggregateRecord summarizes diff_ratio over the preceding window.
type AggregateRecord struct {
	Type            string  `json:"type"`
	T               float64 `json:"t"`
	WindowSeconds   float64 `json:"window_seconds"`
	FrameCount      int     `json:"frame_count"`
	MeanDiffRatio   float64 `json:"mean_diff_ratio"`
	StdDevDiffRatio float64 `json:"stddev_diff_ratio"`
	UniqueCount     int     `json:"unique_count"`
	DupSkippedTotal int64   `json:"dup_skipped_total"`
}

// Metrics writes FrameRecord/AggregateRecord lines to a rotated JSONL
// file. Not safe for concurrent use from multiple goroutines; the
// orchestrator calls RecordFrame from its single tick loop.
type Metrics struct {
	cfg MetricsConfig
	out io.WriteCloser
	enc *json.Encoder

	mu          sync.Mutex
	windowStart float64
	ratios      []float64
	uniqueCount int
	dupTotal    int64
}

// NewMetrics opens (creating if needed) the rotated JSONL file at
// cfg.Path.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	cfg = cfg.withDefaults()
	if cfg.Path == "" {
		return nil, fmt.Errorf("sink: metrics path must not be empty")
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	return &Metrics{cfg: cfg, out: lj, enc: json.NewEncoder(lj)}, nil
}

// RecordFrame writes rec as a JSONL line, then emits an aggregate record
// if AggregateEvery seconds have elapsed since the last one.
func (m *Metrics) RecordFrame(rec FrameRecord) error {
	rec.Type = "frame"
	m.mu.Lock()
	m.ratios = append(m.ratios, rec.DiffRatio)
	if rec.Unique != 0 {
		m.uniqueCount++
	}
	m.dupTotal = rec.DupSkippedTotal
	elapsed := rec.T - m.windowStart
	flush := elapsed >= m.cfg.AggregateEvery
	m.mu.Unlock()

	if err := m.enc.Encode(rec); err != nil {
		return fmt.Errorf("sink: could not write frame record: %w", err)
	}
	if flush {
		return m.flushAggregate(rec.T)
	}
	return nil
}

func (m *Metrics) flushAggregate(t float64) error {
	m.mu.Lock()
	ratios := m.ratios
	m.ratios = nil
	unique := m.uniqueCount
	m.uniqueCount = 0
	dupTotal := m.dupTotal
	windowStart := m.windowStart
	m.windowStart = t
	m.mu.Unlock()

	if len(ratios) == 0 {
		return nil
	}

	mean, std := stat.MeanStdDev(ratios, nil)
	agg := AggregateRecord{
		Type:            "aggregate",
		T:               t,
		WindowSeconds:   t - windowStart,
		FrameCount:      len(ratios),
		MeanDiffRatio:   mean,
		StdDevDiffRatio: std,
		UniqueCount:     unique,
		DupSkippedTotal: dupTotal,
	}
	if err := m.enc.Encode(agg); err != nil {
		return fmt.Errorf("sink: could not write aggregate record: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying rotated file.
func (m *Metrics) Close() error {
	return m.out.Close()
}
