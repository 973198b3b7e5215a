// Package trace loads recorded action-state traces and replays them frame by frame.
package trace

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/verte-zerg/gcdstats/internal/model"
)

// row is one CSV record of a trace file.
type row struct {
	Time          float64 `csv:"time"`
	Delta         float64 `csv:"delta"`
	InCombat      bool    `csv:"in_combat"`
	Sequence      uint64  `csv:"sequence"`
	GCDRecast     bool    `csv:"gcd_recast"`
	Queued        bool    `csv:"queued"`
	AnimationLock float32 `csv:"animation_lock"`
}

// Load decodes a CSV trace.
func Load(r io.Reader) ([]model.Frame, error) {
	var rows []*row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("trace is empty")
	}
	frames := make([]model.Frame, 0, len(rows))
	prev := rows[0].Time
	for i, rec := range rows {
		if rec.Delta < 0 {
			return nil, fmt.Errorf("frame %d: negative delta %v", i+1, rec.Delta)
		}
		if rec.Time < prev {
			return nil, fmt.Errorf("frame %d: time %v goes backwards from %v", i+1, rec.Time, prev)
		}
		if rec.Sequence > math.MaxUint16 {
			return nil, fmt.Errorf("frame %d: sequence %d out of range", i+1, rec.Sequence)
		}
		prev = rec.Time
		frames = append(frames, model.Frame{
			Time:     rec.Time,
			Delta:    rec.Delta,
			InCombat: rec.InCombat,
			Sample: model.Sample{
				CurrentSequence:   uint16(rec.Sequence),
				IsGCDRecastActive: rec.GCDRecast,
				IsQueued:          rec.Queued,
				AnimationLock:     rec.AnimationLock,
			},
		})
	}
	return frames, nil
}

// LoadFile reads a CSV trace from disk.
func LoadFile(path string) ([]model.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only trace.
			_ = cerr
		}
	}()
	return Load(file)
}
