package perform

import (
	"sort"

	"modlive/debug"
)

// PerformanceEvent is one recorded performer action, quantized to the
// performance row it arrived on. Never mutated once recorded.
type PerformanceEvent struct {
	Row    int     `json:"row"`
	Action Action  `json:"action"`
	Param  int     `json:"param"`
	Value  float64 `json:"value"`
}

// Performance holds the recorded timeline and its playback position.
// The timeline is kept sorted by row so the row-callback lookup is a
// bounded search over a subslice, with no allocation.
type Performance struct {
	events    []PerformanceEvent
	row       int
	recording bool
	playback  bool
}

// Recording reports whether performer input is being captured.
func (p *Performance) Recording() bool { return p.recording }

// SetRecording toggles capture. Recording never gates dispatch; it is
// observation only.
func (p *Performance) SetRecording(on bool) {
	p.recording = on
	debug.Log("perf", "recording=%v events=%d", on, len(p.events))
}

// Playback reports whether the timeline replays on row ticks.
func (p *Performance) Playback() bool { return p.playback }

// SetPlayback enables or disables timeline replay. Enabling an empty
// timeline is refused: a zero-event performance mode would silently
// do nothing.
func (p *Performance) SetPlayback(on bool) bool {
	if on && len(p.events) == 0 {
		debug.Log("perf", "playback refused: empty timeline")
		return false
	}
	p.playback = on
	debug.Log("perf", "playback=%v row=%d", on, p.row)
	return true
}

// Row returns the current performance row.
func (p *Performance) Row() int { return p.row }

// Len returns the number of recorded events.
func (p *Performance) Len() int { return len(p.events) }

// HasEvents reports whether anything has been recorded.
func (p *Performance) HasEvents() bool { return len(p.events) > 0 }

// Tick advances the performance row by one. Called once per decoder
// row callback while the transport is playing. Rows advance whenever
// the timeline is replaying or a take is being recorded; otherwise
// the row pointer holds still.
func (p *Performance) Tick() {
	if p.playback || p.recording {
		p.row++
	}
}

// ResetPos rewinds the row pointer to 0. Recorded events stay.
func (p *Performance) ResetPos() { p.row = 0 }

// Clear drops the whole timeline and rewinds.
func (p *Performance) Clear() {
	p.events = p.events[:0]
	p.row = 0
	p.playback = false
}

// Record appends an event at the current row. Insertion keeps the
// timeline sorted even if a new take starts at row 0 after an earlier
// one ended later, so EventsAt stays a plain range lookup.
func (p *Performance) Record(action Action, param int, value float64) {
	ev := PerformanceEvent{Row: p.row, Action: action, Param: param, Value: value}
	n := len(p.events)
	if n == 0 || p.events[n-1].Row <= ev.Row {
		p.events = append(p.events, ev)
	} else {
		i := sort.Search(n, func(i int) bool { return p.events[i].Row > ev.Row })
		p.events = append(p.events, PerformanceEvent{})
		copy(p.events[i+1:], p.events[i:])
		p.events[i] = ev
	}
	debug.Log("perf", "rec row=%d %s param=%d", ev.Row, action, param)
}

// EventsAt returns the recorded events for the given row as a
// subslice of the timeline. Out-of-range rows yield an empty slice;
// the timeline is sparse by nature.
func (p *Performance) EventsAt(row int) []PerformanceEvent {
	n := len(p.events)
	lo := sort.Search(n, func(i int) bool { return p.events[i].Row >= row })
	hi := lo
	for hi < n && p.events[hi].Row == row {
		hi++
	}
	return p.events[lo:hi]
}
