package discovery

import (
	"strconv"

	"github.com/erikwrede/alphappp/petri"
	"github.com/erikwrede/alphappp/projection"
)

// BuildNet assembles the final labeled Petri net from the repaired
// projection and the pruned, maximal candidate set (§4.8).
func BuildNet(proj *projection.Projection, candidates []*PlaceCandidate) *petri.Net {
	net := petri.NewNet()

	startIdx, hasStart := proj.ActToIndex[projection.StartEvent]
	endIdx, hasEnd := proj.ActToIndex[projection.EndEvent]

	for idx, name := range proj.Activities {
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

	finalMarking := make(petri.Marking)

	for i, pc := range candidates {
		placeID := placeName(i)
		net.AddPlace(placeID)

		for _, a := range pc.SortedA() {
			if hasStart && a == startIdx {
				net.InitialMarking.Add(placeID, 1)
				continue
			}
			net.AddArc(petri.TransitionToPlace, proj.Activities[a], placeID)
		}
		for _, b := range pc.SortedB() {
			if hasEnd && b == endIdx {
				finalMarking.Add(placeID, 1)
				continue
			}
			net.AddArc(petri.PlaceToTransition, placeID, proj.Activities[b])
		}
	}

	if len(finalMarking) > 0 {
		net.FinalMarkings = append(net.FinalMarkings, finalMarking)
	}

	net.PruneOrphanSilentTransitions()
	return net
}

func placeName(i int) string {
	return "p" + strconv.Itoa(i)
}
