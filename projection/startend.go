package projection

// AddStartEnd brackets every trace with StartEvent/EndEvent, appending
// those activities to the index if they are not already present. After
// this call every trace begins with the start index and ends with the
// end index (§4.1).
func AddStartEnd(p *Projection) *Projection {
	out := p.Clone()
	startIdx := out.AddActivity(StartEvent)
	endIdx := out.AddActivity(EndEvent)

	for i, t := range out.Traces {
		seq := make([]int, 0, len(t.Sequence)+2)
		seq = append(seq, startIdx)
		seq = append(seq, t.Sequence...)
		seq = append(seq, endIdx)
		out.Traces[i].Sequence = seq
	}
	return out
}
