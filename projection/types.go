// Package projection implements the compact, integer-indexed event log
// representation that the Alpha+++ discovery core consumes: a dense
// activity index space, weighted traces, and the directly-follows
// graph (DFG) derived from them.
package projection

import "sort"

// Reserved activity names. Stable across a binary's lifetime; external
// log ingesters and downstream exporters depend on these exact values.
const (
	StartEvent = "START_EVENT"
	EndEvent   = "END_EVENT"

	// SilentActPrefix marks synthetic activities inserted by log repair.
	// It is the only signal downstream assembly uses to decide whether a
	// transition is silent (unlabeled); renaming it is a breaking change.
	SilentActPrefix = "silent_"
)

// IsSilent reports whether an activity name was synthesized by repair.
func IsSilent(name string) bool {
	return len(name) >= len(SilentActPrefix) && name[:len(SilentActPrefix)] == SilentActPrefix
}

// Trace is a sequence of activity indices observed with a given
// multiplicity weight (how many cases followed exactly this sequence).
type Trace struct {
	Sequence []int
	Weight   uint64
}

// Projection is the dense, integer-indexed event log the discovery core
// operates on. Activities holds the name for each index; ActToIndex is
// its inverse. Every index referenced by a Trace must be a valid
// position in Activities (InconsistentProjection otherwise).
type Projection struct {
	Activities []string
	ActToIndex map[string]int
	Traces     []Trace
}

// New creates an empty projection.
func New() *Projection {
	return &Projection{
		Activities: make([]string, 0),
		ActToIndex: make(map[string]int),
		Traces:     make([]Trace, 0),
	}
}

// Clone deep-copies the projection so callers retain their original
// (§5: the input projection is cloned at entry to a discovery call).
func (p *Projection) Clone() *Projection {
	out := &Projection{
		Activities: append([]string(nil), p.Activities...),
		ActToIndex: make(map[string]int, len(p.ActToIndex)),
		Traces:     make([]Trace, len(p.Traces)),
	}
	for k, v := range p.ActToIndex {
		out.ActToIndex[k] = v
	}
	for i, t := range p.Traces {
		out.Traces[i] = Trace{Sequence: append([]int(nil), t.Sequence...), Weight: t.Weight}
	}
	return out
}

// AddActivity returns the index for name, appending it if absent.
func (p *Projection) AddActivity(name string) int {
	if idx, ok := p.ActToIndex[name]; ok {
		return idx
	}
	idx := len(p.Activities)
	p.Activities = append(p.Activities, name)
	p.ActToIndex[name] = idx
	return idx
}

// Validate checks the InconsistentProjection invariant: every index
// appearing in a trace is a valid position in Activities.
func (p *Projection) Validate() error {
	n := len(p.Activities)
	for _, t := range p.Traces {
		for _, act := range t.Sequence {
			if act < 0 || act >= n {
				return ErrInconsistentProjection
			}
		}
	}
	return nil
}

// ActivityCounts returns, per activity index, the weighted occurrence
// count: sum over traces of multiplicity * occurrences. This is the
// weighted form called for by the discovery core's candidate pruner
// (see DESIGN.md's Open Question resolution).
func (p *Projection) ActivityCounts() []uint64 {
	counts := make([]uint64, len(p.Activities))
	for _, t := range p.Traces {
		for _, act := range t.Sequence {
			counts[act] += t.Weight
		}
	}
	return counts
}

// SortedActivityIndices returns 0..len(Activities)-1, mostly useful so
// callers iterate in a deterministic, reproducible order.
func (p *Projection) SortedActivityIndices() []int {
	idx := make([]int, len(p.Activities))
	for i := range idx {
		idx[i] = i
	}
	sort.Ints(idx)
	return idx
}
