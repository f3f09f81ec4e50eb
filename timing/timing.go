// Package timing records the per-phase wall-clock breakdown of a
// discovery run (§4.8, §6).
package timing

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// AlgoDuration holds the wall-clock duration of each discovery phase
// plus the total (§6). Field names match the wire contract exactly.
type AlgoDuration struct {
	LoopRepair  time.Duration `json:"loop_repair"`
	SkipRepair  time.Duration `json:"skip_repair"`
	FilterDFG   time.Duration `json:"filter_dfg"`
	CndBuilding time.Duration `json:"cnd_building"`
	PruneCnd    time.Duration `json:"prune_cnd"`
	BuildNet    time.Duration `json:"build_net"`
	Total       time.Duration `json:"total"`
}

// Seconds returns d as floating-point seconds, matching §6's
// "floating-point seconds" wire contract.
func (d AlgoDuration) Seconds() map[string]float64 {
	return map[string]float64{
		"loop_repair":  d.LoopRepair.Seconds(),
		"skip_repair":  d.SkipRepair.Seconds(),
		"filter_dfg":   d.FilterDFG.Seconds(),
		"cnd_building": d.CndBuilding.Seconds(),
		"prune_cnd":    d.PruneCnd.Seconds(),
		"build_net":    d.BuildNet.Seconds(),
		"total":        d.Total.Seconds(),
	}
}

// String renders a human-readable one-line summary, handy for log
// lines around a discovery call.
func (d AlgoDuration) String() string {
	return fmt.Sprintf(
		"total=%s (loop_repair=%s skip_repair=%s filter_dfg=%s cnd_building=%s prune_cnd=%s build_net=%s)",
		d.Total, d.LoopRepair, d.SkipRepair, d.FilterDFG, d.CndBuilding, d.PruneCnd, d.BuildNet,
	)
}

// FormatScale renders a large candidate/edge count in the same
// reader-friendly form the teacher's miner used for log summaries
// (e.g. "12,480" instead of "12480").
func FormatScale(n uint64) string {
	return humanize.Comma(int64(n))
}

// Stopwatch accumulates named phase durations in call order, the
// pattern the teacher's miner used to report its own phase timings.
type Stopwatch struct {
	start  time.Time
	phase  time.Time
	Result AlgoDuration
}

// NewStopwatch starts timing from now.
func NewStopwatch() *Stopwatch {
	now := time.Now()
	return &Stopwatch{start: now, phase: now}
}

// Lap records the elapsed time since the last Lap (or since
// NewStopwatch) into the named field of Result, then resets the phase
// clock.
func (s *Stopwatch) Lap(field *time.Duration) {
	now := time.Now()
	*field = now.Sub(s.phase)
	s.phase = now
}

// Finish records Result.Total as the elapsed time since NewStopwatch
// and returns Result.
func (s *Stopwatch) Finish() AlgoDuration {
	s.Result.Total = time.Since(s.start)
	return s.Result
}
