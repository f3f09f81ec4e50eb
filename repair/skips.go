package repair

import (
	"github.com/google/uuid"

	"github.com/erikwrede/alphappp/projection"
)

// Skips detects, for each activity x, whether x's causal predecessors
// directly connect to x's causal successors (bypassing x) with
// combined weight exceeding threshold. Any single bypass edge counts;
// no minimum fraction of x's predecessors or successors is required.
// When the combined weight exceeds threshold, one silent activity is
// inserted on the bypass path for every occurrence of such a
// predecessor/successor pair in the log (§4.4).
//
// Applied after loop repair; Skips builds its DFG from p itself, so on
// the loop-repaired projection it sees the rebuilt DFG, which is not
// filtered between the two passes (§4.4).
func Skips(p *projection.Projection, threshold uint64) (*projection.Projection, []string, error) {
	dfg := projection.BuildDFG(p)

	var added []string
	out := p.Clone()

	for _, x := range dfg.Activities() {
		if projection.IsSilent(out.Activities[x]) {
			continue
		}
		preds := causalPredecessors(dfg, x)
		succs := causalSuccessors(dfg, x)
		if len(preds) == 0 || len(succs) == 0 {
			continue
		}

		var bypassWeight uint64
		var bypassPairs [][2]int
		for _, a := range preds {
			for _, b := range succs {
				if dfg.HasEdge(a, b) {
					bypassWeight += dfg.Weight(a, b)
					bypassPairs = append(bypassPairs, [2]int{a, b})
				}
			}
		}
		if bypassWeight == 0 || bypassWeight <= threshold {
			continue
		}

		name := projection.SilentActPrefix + uuid.NewString()
		silentIdx := out.AddActivity(name)
		added = append(added, name)
		for _, pair := range bypassPairs {
			insertBetweenPair(out, pair[0], pair[1], silentIdx)
		}
	}

	return out, added, nil
}

// insertBetweenPair inserts silentIdx between every adjacent (a,b)
// occurrence in every trace of p, modeling the silent activity sitting
// on the bypass path between a and b.
func insertBetweenPair(p *projection.Projection, a, b, silentIdx int) {
	for ti, t := range p.Traces {
		seq := t.Sequence
		out := make([]int, 0, len(seq)+1)
		for i := 0; i < len(seq); i++ {
			out = append(out, seq[i])
			if i+1 < len(seq) && seq[i] == a && seq[i+1] == b {
				out = append(out, silentIdx)
			}
		}
		p.Traces[ti].Sequence = out
	}
}

func causalPredecessors(dfg *projection.DFG, x int) []int {
	var out []int
	for _, a := range dfg.Activities() {
		if a == x {
			continue
		}
		if dfg.HasEdge(a, x) && !dfg.HasEdge(x, a) {
			out = append(out, a)
		}
	}
	return out
}

func causalSuccessors(dfg *projection.DFG, x int) []int {
	var out []int
	for _, b := range dfg.Activities() {
		if b == x {
			continue
		}
		if dfg.HasEdge(x, b) && !dfg.HasEdge(b, x) {
			out = append(out, b)
		}
	}
	return out
}
