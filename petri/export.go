package petri

// ExportModel is a dependency-free, JSON-serializable snapshot of a
// Net, the lossless contract an external exporter (e.g. PNML) is
// expected to consume (§6). It owns no references back into Net.
type ExportModel struct {
	Transitions []ExportTransition `json:"transitions"`
	Places      []string           `json:"places"`
	Arcs        []ExportArc        `json:"arcs"`

	InitialMarking map[string]uint64   `json:"initial_marking"`
	FinalMarkings  []map[string]uint64 `json:"final_markings"`
}

// ExportTransition is a transition with its optional label flattened
// to a pointer-free, JSON-friendly shape.
type ExportTransition struct {
	ID     string `json:"id"`
	Label  string `json:"label,omitempty"`
	Silent bool   `json:"silent"`
}

// ExportArc mirrors Arc with the direction spelled out for a reader
// who doesn't have the ArcKind enum.
type ExportArc struct {
	Direction  string `json:"direction"` // "transition_to_place" or "place_to_transition"
	Transition string `json:"transition"`
	Place      string `json:"place"`
}

// Export produces a lossless snapshot of the net for downstream
// serialization.
func (n *Net) Export() *ExportModel {
	out := &ExportModel{
		Transitions:    make([]ExportTransition, 0, len(n.Transitions)),
		Places:         n.SortedPlaceIDs(),
		Arcs:           make([]ExportArc, 0, len(n.Arcs)),
		InitialMarking: make(map[string]uint64, len(n.InitialMarking)),
		FinalMarkings:  make([]map[string]uint64, 0, len(n.FinalMarkings)),
	}
	for place, tokens := range n.InitialMarking {
		out.InitialMarking[place] = tokens
	}

	for _, id := range n.SortedTransitionIDs() {
		t := n.Transitions[id]
		et := ExportTransition{ID: t.ID, Silent: t.Label == nil}
		if t.Label != nil {
			et.Label = *t.Label
		}
		out.Transitions = append(out.Transitions, et)
	}

	for _, a := range n.Arcs {
		dir := "transition_to_place"
		if a.Kind == PlaceToTransition {
			dir = "place_to_transition"
		}
		out.Arcs = append(out.Arcs, ExportArc{Direction: dir, Transition: a.Transition, Place: a.Place})
	}

	for _, m := range n.FinalMarkings {
		fm := make(map[string]uint64, len(m))
		for place, tokens := range m {
			fm[place] = tokens
		}
		out.FinalMarkings = append(out.FinalMarkings, fm)
	}

	return out
}
