// Package discovery implements the Alpha+++ place-candidate building,
// pruning, and Petri-net assembly phases, and orchestrates the full
// discovery pipeline (§4.6-§4.8).
package discovery

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/erikwrede/alphappp/projection"
)

// PlaceCandidate is a pair (A, B) of non-empty, disjoint activity-index
// sets such that every a in A has an edge to every b in B on the
// filtered DFG (§3, §4.6). Sets are kept as bitsets, since activity
// indices are dense small integers, plus a cached canonical sorted
// slice for deterministic iteration and hashing.
type PlaceCandidate struct {
	A, B       *bitset.BitSet
	sortedA    []int
	sortedB    []int
	canonicalID string
}

// NewPlaceCandidate builds a PlaceCandidate from two bitsets, computing
// and caching its canonical form.
func NewPlaceCandidate(a, b *bitset.BitSet) *PlaceCandidate {
	pc := &PlaceCandidate{A: a, B: b}
	pc.sortedA = sortedMembers(a)
	pc.sortedB = sortedMembers(b)
	pc.canonicalID = canonicalID(pc.sortedA, pc.sortedB)
	return pc
}

// ID returns the canonicalized sorted (A,B) string used for set
// identity (equality/hashing) and as the deterministic sort key (§4.7,
// §9).
func (pc *PlaceCandidate) ID() string { return pc.canonicalID }

// SortedA returns A as a sorted slice of activity indices.
func (pc *PlaceCandidate) SortedA() []int { return pc.sortedA }

// SortedB returns B as a sorted slice of activity indices.
func (pc *PlaceCandidate) SortedB() []int { return pc.sortedB }

func sortedMembers(b *bitset.BitSet) []int {
	out := make([]int, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

func canonicalID(a, b []int) string {
	var sb strings.Builder
	sb.WriteString("A{")
	for i, x := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(x))
	}
	sb.WriteString("}B{")
	for i, x := range b {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(x))
	}
	sb.WriteByte('}')
	return sb.String()
}

// isSubset reports whether every bit set in small is also set in big.
func isSubset(small, big *bitset.BitSet) bool {
	return small.Difference(big).Count() == 0
}

// unrelated reports whether adding candidate x to set s preserves the
// anti-chain invariant: no member of s has a DFG edge to or from x.
func unrelated(dfg *projection.DFG, s []int, x int) bool {
	for _, m := range s {
		if m == x {
			return false
		}
		if dfg.HasEdge(m, x) || dfg.HasEdge(x, m) {
			return false
		}
	}
	return true
}

// causallyConnectedToAll reports whether x has a DFG edge to (or from,
// depending on dir) every member of s.
func causallyConnectedToAll(dfg *projection.DFG, s []int, x int, xIsSource bool) bool {
	for _, m := range s {
		if xIsSource {
			if !dfg.HasEdge(x, m) {
				return false
			}
		} else {
			if !dfg.HasEdge(m, x) {
				return false
			}
		}
	}
	return true
}

// BuildCandidates enumerates the set of maximal place candidates on
// the filtered DFG (§4.6). It seeds a candidate from every edge and
// grows A and B monotonically while the anti-chain and causal-
// connection invariants hold, then deduplicates by canonical ID.
func BuildCandidates(dfg *projection.DFG) map[string]*PlaceCandidate {
	activities := dfg.Activities()
	if len(activities) == 0 {
		return map[string]*PlaceCandidate{}
	}
	maxIdx := activities[len(activities)-1]
	n := uint(maxIdx + 1)

	candidates := make(map[string]*PlaceCandidate)

	for e := range dfg.Edges {
		if dfg.Weight(e.U, e.V) == 0 {
			continue
		}
		a := []int{e.U}
		b := []int{e.V}
		growCandidate(dfg, activities, &a, &b)

		bsA := bitset.New(n)
		for _, x := range a {
			bsA.Set(uint(x))
		}
		bsB := bitset.New(n)
		for _, x := range b {
			bsB.Set(uint(x))
		}
		pc := NewPlaceCandidate(bsA, bsB)
		candidates[pc.ID()] = pc
	}

	return candidates
}

// growCandidate grows a and b monotonically in place until no
// activity can be added to either side without violating the
// anti-chain or causal-connection invariants (§4.6).
func growCandidate(dfg *projection.DFG, activities []int, a, b *[]int) {
	for {
		changed := false

		for _, x := range activities {
			if contains(*a, x) || contains(*b, x) {
				continue
			}
			if unrelated(dfg, *a, x) && causallyConnectedToAll(dfg, *b, x, true) {
				*a = append(*a, x)
				sort.Ints(*a)
				changed = true
			}
		}

		for _, x := range activities {
			if contains(*a, x) || contains(*b, x) {
				continue
			}
			if unrelated(dfg, *b, x) && causallyConnectedToAll(dfg, *a, x, false) {
				*b = append(*b, x)
				sort.Ints(*b)
				changed = true
			}
		}

		if !changed {
			return
		}
	}
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// SortedCandidateIDs returns candidate IDs in deterministic
// lexicographic order (§4.7, §9).
func SortedCandidateIDs(candidates map[string]*PlaceCandidate) []string {
	ids := make([]string, 0, len(candidates))
	for id := range candidates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
