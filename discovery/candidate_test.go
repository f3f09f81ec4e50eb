package discovery

import (
	"testing"

	"github.com/bits-and-blooms/bitset"

	"github.com/erikwrede/alphappp/projection"
)

func bitsetOf(n uint, members ...int) *bitset.BitSet {
	b := bitset.New(n)
	for _, m := range members {
		b.Set(uint(m))
	}
	return b
}

func TestPlaceCandidateIDIsCanonical(t *testing.T) {
	pc := NewPlaceCandidate(bitsetOf(4, 0, 2), bitsetOf(4, 1))
	if pc.ID() != "A{0,2}B{1}" {
		t.Errorf("ID() = %q, want A{0,2}B{1}", pc.ID())
	}
}

func TestBuildCandidatesSequence(t *testing.T) {
	// A -> B -> C, each edge its own candidate (A,B disjoint anti-chains).
	proj := projection.New()
	a := proj.AddActivity("A")
	b := proj.AddActivity("B")
	c := proj.AddActivity("C")
	proj.Traces = append(proj.Traces, projection.Trace{Sequence: []int{a, b, c}, Weight: 1})

	dfg := projection.BuildDFG(proj)
	candidates := BuildCandidates(dfg)

	if len(candidates) != 2 {
		t.Fatalf("len(candidates) = %d, want 2", len(candidates))
	}
}

func TestBuildCandidatesEmptyDFG(t *testing.T) {
	dfg := projection.NewDFG()
	candidates := BuildCandidates(dfg)
	if len(candidates) != 0 {
		t.Errorf("expected no candidates on an empty DFG")
	}
}

func TestSortedCandidateIDsDeterministic(t *testing.T) {
	candidates := map[string]*PlaceCandidate{
		"A{1}B{2}": NewPlaceCandidate(bitsetOf(4, 1), bitsetOf(4, 2)),
		"A{0}B{1}": NewPlaceCandidate(bitsetOf(4, 0), bitsetOf(4, 1)),
	}
	ids := SortedCandidateIDs(candidates)
	if ids[0] != "A{0}B{1}" || ids[1] != "A{1}B{2}" {
		t.Errorf("SortedCandidateIDs() = %v, want lexicographic order", ids)
	}
}
