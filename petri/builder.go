package petri

// Builder provides a fluent API for constructing a discovered net by
// hand, chiefly useful in tests that assert against an expected net
// shape (§8's end-to-end scenarios).
//
// Example:
//
//	net := petri.Build().
//	    Transition("A", nil).
//	    Transition("B", nil).
//	    Place("p1").
//	    Arc(TransitionToPlace, "A", "p1").
//	    Arc(PlaceToTransition, "p1", "B").
//	    Done()
type Builder struct {
	net *Net
}

// Build creates a new Builder for constructing a Petri net.
func Build() *Builder {
	return &Builder{net: NewNet()}
}

// Transition adds a transition, labeled unless label is nil.
func (b *Builder) Transition(id string, label *string) *Builder {
	b.net.AddTransition(id, label)
	return b
}

// Place adds a place.
func (b *Builder) Place(id string) *Builder {
	b.net.AddPlace(id)
	return b
}

// Arc adds a directed arc of the given kind from source to target
// (see Net.AddArc).
func (b *Builder) Arc(kind ArcKind, from, to string) *Builder {
	b.net.AddArc(kind, from, to)
	return b
}

// InitialTokens sets the initial marking token count at place.
func (b *Builder) InitialTokens(place string, count uint64) *Builder {
	b.net.InitialMarking.Add(place, count)
	return b
}

// Done returns the constructed net.
func (b *Builder) Done() *Net {
	return b.net
}
