// Package repair implements the Alpha+++ log repair passes: detecting
// loop and skip patterns on the directly-follows graph and rewriting
// the projection with synthetic silent activities that model them
// (§4.3, §4.4).
package repair

import (
	"strconv"

	"github.com/google/uuid"

	lvgraph "github.com/katalvlaran/lvlath/graph"

	"github.com/erikwrede/alphappp/projection"
)

// Loops detects loop signatures on the DFG of p and inserts one
// synthetic silent activity per detected loop, splicing it into every
// trace position where the loop pattern occurs. Returns the mutated
// projection and the names of the activities added.
//
// A loop signature is an edge (u,v) whose weight exceeds threshold and
// that closes a cycle: u==v (length-1 self loop), or v directly
// follows back to u (length-2 loop), or a longer back-edge where v can
// reach u via the DFG's existing causal paths. The longer case is
// detected with a DFS over a lvlath/graph.Graph backing of the DFG,
// since a hand-rolled reachability scan would duplicate what that
// package already provides.
func Loops(p *projection.Projection, threshold uint64) (*projection.Projection, []string, error) {
	dfg := projection.BuildDFG(p)
	g := dfg.ToGraph()

	var added []string
	out := p.Clone()

	for _, u := range dfg.Activities() {
		for _, v := range dfg.Activities() {
			w := dfg.Weight(u, v)
			if w == 0 || w <= threshold {
				continue
			}
			if !isLoopSignature(dfg, g, u, v) {
				continue
			}

			name := projection.SilentActPrefix + uuid.NewString()
			silentIdx := out.AddActivity(name)
			added = append(added, name)
			spliceAfterLoopClose(out, u, v, silentIdx)
		}
	}

	return out, added, nil
}

// isLoopSignature decides whether edge (u,v) closes a cycle.
func isLoopSignature(dfg *projection.DFG, g *lvgraph.Graph, u, v int) bool {
	if u == v {
		return true // length-1 self loop
	}
	if dfg.HasEdge(v, u) {
		return true // length-2 loop: u -> v -> u
	}

	res, err := g.DFS(strconv.Itoa(v), nil)
	if err != nil {
		return false
	}
	return res.Visited[strconv.Itoa(u)]
}

// spliceAfterLoopClose inserts silentIdx immediately after every
// occurrence of the adjacent pair (u,v) in every trace of p, modeling
// the silent transition that closes the loop back toward u.
func spliceAfterLoopClose(p *projection.Projection, u, v, silentIdx int) {
	for ti, t := range p.Traces {
		seq := t.Sequence
		out := make([]int, 0, len(seq)+1)
		for i := 0; i < len(seq); i++ {
			out = append(out, seq[i])
			if i+1 < len(seq) && seq[i] == u && seq[i+1] == v {
				out = append(out, seq[i+1], silentIdx)
				i++ // already emitted seq[i+1] above
			}
		}
		p.Traces[ti].Sequence = out
	}
}
