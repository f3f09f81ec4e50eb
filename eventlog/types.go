// Package eventlog ingests case/activity/timestamp records from CSV or
// JSONL sources into the shape projection.FromEventLog consumes (§6:
// "supplied by an external log ingester"). It is the one boundary in
// this module that still sees per-event attributes, resources, and
// lifecycle transitions before FromEventLog collapses a trace down to
// a bare activity-index sequence.
package eventlog

import (
	"sort"
	"time"
)

// Event is a single recorded occurrence of an activity within a case.
type Event struct {
	CaseID     string
	Activity   string
	Timestamp  time.Time
	Resource   string
	Lifecycle  string
	Attributes map[string]interface{}
}

// Trace is every event recorded for one case. Events are not
// guaranteed sorted until SortTraces has run.
type Trace struct {
	CaseID string
	Events []Event
}

// EventLog groups traces by case id. Unlike the XES logs this
// ingester is often pointed at, it carries no extension or classifier
// metadata: none of that survives the trip through FromEventLog into a
// projection.Projection, so there is nothing here to carry it in.
type EventLog struct {
	Cases map[string]*Trace
}

// NewEventLog creates an empty event log.
func NewEventLog() *EventLog {
	return &EventLog{Cases: make(map[string]*Trace)}
}

// AddEvent appends event to its case's trace, creating the trace on
// first sight of that case id.
func (log *EventLog) AddEvent(event Event) {
	trace, ok := log.Cases[event.CaseID]
	if !ok {
		trace = &Trace{CaseID: event.CaseID}
		log.Cases[event.CaseID] = trace
	}
	trace.Events = append(trace.Events, event)
}

// SortTraces orders every trace's events by timestamp. Ingestion
// sources that don't guarantee row order (arbitrary CSV/JSONL line
// order) call this once parsing finishes.
func (log *EventLog) SortTraces() {
	for _, trace := range log.Cases {
		sort.SliceStable(trace.Events, func(i, j int) bool {
			return trace.Events[i].Timestamp.Before(trace.Events[j].Timestamp)
		})
	}
}

// GetTraces returns every trace ordered by case id. This is the walk
// order FromEventLog uses to build deterministic projection traces.
func (log *EventLog) GetTraces() []*Trace {
	ids := make([]string, 0, len(log.Cases))
	for id := range log.Cases {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*Trace, len(ids))
	for i, id := range ids {
		out[i] = log.Cases[id]
	}
	return out
}

// NumCases returns the number of distinct case ids recorded.
func (log *EventLog) NumCases() int { return len(log.Cases) }

// NumEvents returns the total event count across every case.
func (log *EventLog) NumEvents() int {
	n := 0
	for _, trace := range log.Cases {
		n += len(trace.Events)
	}
	return n
}

// GetActivities returns every distinct activity name across the log,
// sorted — the name set FromEventLog turns into a dense index space.
func (log *EventLog) GetActivities() []string {
	seen := make(map[string]struct{})
	for _, trace := range log.Cases {
		for _, event := range trace.Events {
			seen[event.Activity] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// GetResources returns every distinct non-empty resource name across
// the log, sorted.
func (log *EventLog) GetResources() []string {
	seen := make(map[string]struct{})
	for _, trace := range log.Cases {
		for _, event := range trace.Events {
			if event.Resource != "" {
				seen[event.Resource] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Variant returns the trace's activity sequence in event order — the
// same sequence FromEventLog turns into a projection.Trace.
func (trace *Trace) Variant() []string {
	out := make([]string, len(trace.Events))
	for i, event := range trace.Events {
		out[i] = event.Activity
	}
	return out
}

// VisibleVariant returns the trace's activity sequence with every
// activity for which silent reports true filtered out. Log repair
// (§4.3, §4.4) inserts synthetic silent activities under a recognizable
// prefix; re-ingesting a repaired log and calling this with that
// predicate recovers the sequence as originally observed, for
// reporting. silent may be nil, in which case no activity is filtered.
func (trace *Trace) VisibleVariant(silent func(activity string) bool) []string {
	out := make([]string, 0, len(trace.Events))
	for _, event := range trace.Events {
		if silent != nil && silent(event.Activity) {
			continue
		}
		out = append(out, event.Activity)
	}
	return out
}

// StartTime returns the timestamp of the trace's first event, or the
// zero time if the trace has none.
func (trace *Trace) StartTime() time.Time {
	if len(trace.Events) == 0 {
		return time.Time{}
	}
	return trace.Events[0].Timestamp
}

// EndTime returns the timestamp of the trace's last event, or the zero
// time if the trace has none.
func (trace *Trace) EndTime() time.Time {
	if len(trace.Events) == 0 {
		return time.Time{}
	}
	return trace.Events[len(trace.Events)-1].Timestamp
}

// Duration returns the span between the trace's first and last event.
func (trace *Trace) Duration() time.Duration {
	if len(trace.Events) == 0 {
		return 0
	}
	return trace.EndTime().Sub(trace.StartTime())
}
