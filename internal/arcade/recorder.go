package arcade

import "strings"

// Recorder is an append-only event log. It is the headless counterpart of
// the shell's on-screen event feed and is what tests assert against.
type Recorder struct {
	events []Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends e.
func (r *Recorder) Record(e Event) {
	r.events = append(r.events, e)
}

// Func returns r.Record as an EventFunc.
func (r *Recorder) Func() EventFunc {
	return r.Record
}

// Events returns every recorded event in order.
func (r *Recorder) Events() []Event {
	return r.events
}

// Filter returns the events of one kind. Pass "" to match all.
func (r *Recorder) Filter(kind EventKind) []Event {
	var out []Event
	for _, e := range r.events {
		if kind != "" && e.Kind() != kind {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns how many events of kind were recorded.
func (r *Recorder) Count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind() == kind {
			n++
		}
	}
	return n
}

// Last returns the most recent event of kind.
func (r *Recorder) Last(kind EventKind) (Event, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind() == kind {
			return r.events[i], true
		}
	}
	return nil, false
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.events = r.events[:0]
}

// Counts tallies events by kind.
func (r *Recorder) Counts() map[EventKind]int {
	out := make(map[EventKind]int)
	for _, e := range r.events {
		out[e.Kind()]++
	}
	return out
}

// String formats the log one event per line.
func (r *Recorder) String() string {
	var sb strings.Builder
	for _, e := range r.events {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
