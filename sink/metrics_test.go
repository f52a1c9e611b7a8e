package sink

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestMetricsWritesFrameAndAggregateRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.jsonl")
	m, err := NewMetrics(MetricsConfig{Path: path, AggregateEvery: 1.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.RecordFrame(FrameRecord{T: 0.0, FrameIndex: 0, Unique: 1, DiffRatio: 0.1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.RecordFrame(FrameRecord{T: 0.5, FrameIndex: 1, Unique: 0, DiffRatio: 0.2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Crosses the 1s aggregate window.
	if err := m.RecordFrame(FrameRecord{T: 1.1, FrameIndex: 2, Unique: 1, DiffRatio: 0.3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("unexpected error closing metrics: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("could not open metrics file: %v", err)
	}
	defer f.Close()

	var types []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var probe struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(sc.Bytes(), &probe); err != nil {
			t.Fatalf("invalid json line %q: %v", sc.Text(), err)
		}
		types = append(types, probe.Type)
	}

	var frameCount, aggregateCount int
	for _, ty := range types {
		switch ty {
		case "frame":
			frameCount++
		case "aggregate":
			aggregateCount++
		}
	}
	if frameCount != 3 {
		t.Fatalf("expected 3 frame records, got %d", frameCount)
	}
	if aggregateCount != 1 {
		t.Fatalf("expected 1 aggregate record, got %d", aggregateCount)
	}
}

func TestMetricsRejectsEmptyPath(t *testing.T) {
	if _, err := NewMetrics(MetricsConfig{}); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
