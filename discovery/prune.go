package discovery

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/erikwrede/alphappp/projection"
)

// Score holds the three orthogonal quality measurements a candidate is
// judged on (§4.7).
type Score struct {
	Balance float32
	Fitness float32
	Replay  float32
}

// scoreCandidate computes Score for a single candidate against the
// repaired projection and its per-activity weighted counts.
func scoreCandidate(pc *PlaceCandidate, proj *projection.Projection, counts []uint64) Score {
	return Score{
		Balance: balanceScore(pc, counts),
		Fitness: fitnessScore(pc, proj),
		Replay:  replayScore(pc, proj),
	}
}

func balanceScore(pc *PlaceCandidate, counts []uint64) float32 {
	var sumA, sumB uint64
	for _, a := range pc.SortedA() {
		sumA += counts[a]
	}
	for _, b := range pc.SortedB() {
		sumB += counts[b]
	}
	lo, hi := sumA, sumB
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi == 0 {
		return 0
	}
	return float32(lo) / float32(hi)
}

// fitnessScore returns the fraction of trace positions at which every
// occurrence of a B member is preceded, since the last Start or the
// last time the place was consumed, by an occurrence of some A
// member (§4.7).
func fitnessScore(pc *PlaceCandidate, proj *projection.Projection) float32 {
	inA := toSet(pc.SortedA())
	inB := toSet(pc.SortedB())

	var consistent, total uint64
	for _, t := range proj.Traces {
		produced := false
		for _, act := range t.Sequence {
			if inA[act] {
				produced = true
			}
			if inB[act] {
				total += t.Weight
				if produced {
					consistent += t.Weight
				}
				produced = false
			}
		}
	}
	if total == 0 {
		return 1
	}
	return float32(consistent) / float32(total)
}

// replayScore returns the weighted fraction of traces that replay to
// completion on the single-place subnet implied by (A,B) without the
// place ever going negative (§4.7): A members produce a token, B
// members consume one.
func replayScore(pc *PlaceCandidate, proj *projection.Projection) float32 {
	inA := toSet(pc.SortedA())
	inB := toSet(pc.SortedB())

	var fit, total uint64
	for _, t := range proj.Traces {
		total += t.Weight
		tokens := 0
		ok := true
		for _, act := range t.Sequence {
			if inA[act] {
				tokens++
			}
			if inB[act] {
				tokens--
				if tokens < 0 {
					ok = false
					break
				}
			}
		}
		if ok {
			fit += t.Weight
		}
	}
	if total == 0 {
		return 1
	}
	return float32(fit) / float32(total)
}

func toSet(xs []int) map[int]bool {
	out := make(map[int]bool, len(xs))
	for _, x := range xs {
		out[x] = true
	}
	return out
}

// PruneCandidates scores every candidate in parallel (§5: candidate
// scoring is a data-parallel inner loop), rejects those below any
// threshold, discards non-maximal survivors, and returns the remainder
// sorted by canonical ID for deterministic output (§4.7).
func PruneCandidates(
	candidates map[string]*PlaceCandidate,
	proj *projection.Projection,
	counts []uint64,
	balanceThresh, fitnessThresh, replayThresh float32,
) []*PlaceCandidate {
	ids := SortedCandidateIDs(candidates)
	scores := make([]Score, len(ids))

	g, _ := errgroup.WithContext(context.Background())
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			scores[i] = scoreCandidate(candidates[id], proj, counts)
			return nil
		})
	}
	_ = g.Wait() // scoreCandidate never errors

	survivors := make([]*PlaceCandidate, 0, len(ids))
	for i, id := range ids {
		s := scores[i]
		if s.Balance < balanceThresh || s.Fitness < fitnessThresh || s.Replay < replayThresh {
			continue
		}
		survivors = append(survivors, candidates[id])
	}

	return filterMaximal(survivors)
}

// filterMaximal discards any candidate (A,B) dominated by another
// surviving candidate (A',B') with A⊆A', B⊆B', and strict containment
// in at least one side (§4.7). Survivors are returned in canonical-ID
// (lexicographic) order for a deterministic tie-break.
func filterMaximal(cands []*PlaceCandidate) []*PlaceCandidate {
	dominated := make([]bool, len(cands))
	for i, pc := range cands {
		for j, other := range cands {
			if i == j {
				continue
			}
			if dominates(other, pc) {
				dominated[i] = true
				break
			}
		}
	}

	out := make([]*PlaceCandidate, 0, len(cands))
	for i, pc := range cands {
		if !dominated[i] {
			out = append(out, pc)
		}
	}
	sortByID(out)
	return out
}

// dominates reports whether candidate x strictly dominates y: both of
// y's sides are subsets of x's corresponding side, with strict
// containment on at least one side.
func dominates(x, y *PlaceCandidate) bool {
	if !isSubset(y.A, x.A) || !isSubset(y.B, x.B) {
		return false
	}
	return x.A.Count() > y.A.Count() || x.B.Count() > y.B.Count()
}

func sortByID(cands []*PlaceCandidate) {
	sort.Slice(cands, func(i, j int) bool { return cands[i].ID() < cands[j].ID() })
}
