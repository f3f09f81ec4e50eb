package projection

import (
	"sort"

	"github.com/erikwrede/alphappp/eventlog"
)

// FromEventLog projects a parsed eventlog.EventLog (e.g. from CSV or
// JSONL ingestion) down to the dense, integer-indexed, multiplicity-
// weighted representation the discovery core consumes (§6: "Supplied
// by an external log ingester"). Traces with an identical activity
// sequence are merged, accumulating their weight, since the discovery
// core's trace multiplicity model has no use for duplicate sequences
// kept apart by case id.
func FromEventLog(log *eventlog.EventLog) *Projection {
	p := New()

	variantWeight := make(map[string]uint64)
	variantSeq := make(map[string][]int)

	for _, trace := range log.GetTraces() {
		seq := make([]int, len(trace.Events))
		for i, ev := range trace.Events {
			seq[i] = p.AddActivity(ev.Activity)
		}
		key := sequenceKey(seq)
		variantWeight[key]++
		if _, ok := variantSeq[key]; !ok {
			variantSeq[key] = seq
		}
	}

	keys := make([]string, 0, len(variantSeq))
	for k := range variantSeq {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		p.Traces = append(p.Traces, Trace{Sequence: variantSeq[k], Weight: variantWeight[k]})
	}

	return p
}

func sequenceKey(seq []int) string {
	b := make([]byte, 0, len(seq)*4)
	for _, s := range seq {
		b = append(b, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
		b = append(b, ',')
	}
	return string(b)
}
