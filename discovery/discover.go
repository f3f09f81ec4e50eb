package discovery

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/erikwrede/alphappp/config"
	"github.com/erikwrede/alphappp/petri"
	"github.com/erikwrede/alphappp/projection"
	"github.com/erikwrede/alphappp/repair"
	"github.com/erikwrede/alphappp/timing"
)

// Discover runs the full Alpha+++ pipeline on proj: Start/End
// augmentation, loop repair, skip repair, DFG filtering, candidate
// building, candidate pruning, and Petri-net assembly (§4, §5). The
// input projection is cloned at entry; proj is never mutated.
//
// Discovery is single-shot and synchronous: this call either returns a
// complete net or a fatal error, never a partial result (§5, §7).
func Discover(proj *projection.Projection, cfg config.AlphaPPPConfig) (*petri.Net, timing.AlgoDuration, error) {
	sw := timing.NewStopwatch()

	if err := cfg.Validate(); err != nil {
		return nil, timing.AlgoDuration{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := proj.Validate(); err != nil {
		return nil, timing.AlgoDuration{}, fmt.Errorf("%w: %v", ErrInconsistentProjection, err)
	}
	if len(proj.Traces) == 0 {
		return nil, timing.AlgoDuration{}, ErrEmptyLog
	}

	augmented := projection.AddStartEnd(proj)

	repaired, loopThresh, err := repairLoops(augmented, cfg)
	if err != nil {
		return nil, timing.AlgoDuration{}, err
	}
	sw.Lap(&sw.Result.LoopRepair)
	slog.Debug("discovery: loop repair complete", "threshold", loopThresh)

	repaired, skipThresh, err := repairSkips(repaired, cfg)
	if err != nil {
		return nil, timing.AlgoDuration{}, err
	}
	sw.Lap(&sw.Result.SkipRepair)
	slog.Debug("discovery: skip repair complete", "threshold", skipThresh)

	rawDFG := projection.BuildDFG(repaired)
	filtered := rawDFG.Filter(cfg.AbsoluteDFCleanThresh, cfg.RelativeDFCleanThresh)
	sw.Lap(&sw.Result.FilterDFG)
	slog.Debug("discovery: DFG filtered", "raw_edges", timing.FormatScale(uint64(len(rawDFG.Edges))), "filtered_edges", timing.FormatScale(uint64(len(filtered.Edges))))

	if len(filtered.Edges) == 0 {
		// §7's last paragraph: an all-weak DFG must not crash discovery;
		// return a trivial net with no places (see trivialNet).
		net := trivialNet(repaired)
		sw.Lap(&sw.Result.CndBuilding)
		sw.Lap(&sw.Result.PruneCnd)
		sw.Lap(&sw.Result.BuildNet)
		return net, sw.Finish(), nil
	}

	candidates := BuildCandidates(filtered)
	sw.Lap(&sw.Result.CndBuilding)
	slog.Debug("discovery: candidates built", "count", timing.FormatScale(uint64(len(candidates))))

	counts := repaired.ActivityCounts()
	survivors := PruneCandidates(candidates, repaired, counts, cfg.BalanceThresh, cfg.FitnessThresh, cfg.ReplayThresh)
	sw.Lap(&sw.Result.PruneCnd)
	slog.Debug("discovery: candidates pruned", "survivors", timing.FormatScale(uint64(len(survivors))))

	net := BuildNet(repaired, survivors)
	sw.Lap(&sw.Result.BuildNet)

	if err := net.Validate(); err != nil {
		return nil, timing.AlgoDuration{}, fmt.Errorf("discovery: assembled an invalid net: %w", err)
	}

	return net, sw.Finish(), nil
}

// repairLoops computes loop_df_threshold from mean_dfg (§4.3) and
// applies loop repair. An empty DFG at this point is EmptyLog, since
// discovery on zero traces/edges is undefined.
func repairLoops(p *projection.Projection, cfg config.AlphaPPPConfig) (*projection.Projection, uint64, error) {
	dfg := projection.BuildDFG(p)
	mean, err := dfg.Mean()
	if err != nil {
		if errors.Is(err, projection.ErrEmptyDFG) {
			return nil, 0, ErrEmptyLog
		}
		return nil, 0, err
	}
	threshold := ceilThreshold(cfg.LogRepairLoopDFThreshRel, mean)
	out, _, err := repair.Loops(p, threshold)
	if err != nil {
		return nil, 0, err
	}
	return out, threshold, nil
}

// repairSkips computes skip_df_threshold from the DFG rebuilt on the
// loop-repaired projection (§4.4: "rebuilt from the mutated projection
// before filtering") and applies skip repair.
func repairSkips(p *projection.Projection, cfg config.AlphaPPPConfig) (*projection.Projection, uint64, error) {
	dfg := projection.BuildDFG(p)
	mean, err := dfg.Mean()
	if err != nil {
		if errors.Is(err, projection.ErrEmptyDFG) {
			return nil, 0, ErrEmptyLog
		}
		return nil, 0, err
	}
	threshold := ceilThreshold(cfg.LogRepairSkipDFThreshRel, mean)
	out, _, err := repair.Skips(p, threshold)
	if err != nil {
		return nil, 0, err
	}
	return out, threshold, nil
}

func ceilThreshold(rel float32, mean float64) uint64 {
	v := math.Ceil(float64(rel) * mean)
	if v < 0 {
		return 0
	}
	return uint64(v)
}

// trivialNet builds the degenerate net for an all-weak-DFG input: one
// transition per non-Start/End activity, all unwired, with the silent
// ones pruned away immediately (§7). It adds no places, so its initial
// marking is empty and it carries no final marking; no Start or End
// place is created.
func trivialNet(p *projection.Projection) *petri.Net {
	net := petri.NewNet()
	startIdx, hasStart := p.ActToIndex[projection.StartEvent]
	endIdx, hasEnd := p.ActToIndex[projection.EndEvent]

	for idx, name := range p.Activities {
		if (hasStart && idx == startIdx) || (hasEnd && idx == endIdx) {
			continue
		}
		if projection.IsSilent(name) {
			net.AddTransition(name, nil)
		} else {
			label := name
			net.AddTransition(name, &label)
		}
	}
	net.PruneOrphanSilentTransitions()
	return net
}
