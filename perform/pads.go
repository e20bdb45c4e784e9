package perform

// MIDI device filter values for a pad binding.
const (
	PadDeviceAny      = -1
	PadDeviceDisabled = -2
)

// Pad is one trigger pad: a button bound to an action, optionally
// reachable from a MIDI note on a given device.
type Pad struct {
	Action     Action  `json:"action"`
	Param      int     `json:"param"`
	Value      float64 `json:"value"`
	MIDINote   int     `json:"midiNote"`
	MIDIDevice int     `json:"midiDevice"` // -1 = any device, -2 = disabled
}

// Enabled reports whether the pad has an action bound.
func (p Pad) Enabled() bool { return p.Action != ActionNone }

// NumAppPads is the size of the application pad bank. Song pads are
// addressed above it: pad parameter i >= NumAppPads hits song pad
// i - NumAppPads.
const NumAppPads = 16

// padAt resolves a partitioned pad index to a pad. ok is false for
// out-of-range indices.
func (e *Engine) padAt(idx int) (Pad, bool) {
	if idx < 0 {
		return Pad{}, false
	}
	if idx < NumAppPads {
		if idx < len(e.appPads) {
			return e.appPads[idx], true
		}
		return Pad{}, false
	}
	idx -= NumAppPads
	if idx < len(e.songPads) {
		return e.songPads[idx], true
	}
	return Pad{}, false
}

// PadForNote resolves a MIDI note-on to a partitioned pad index, or
// -1 if no enabled pad matches. Application pads are checked first,
// then song pads.
func (e *Engine) PadForNote(device, note int) int {
	for i, p := range e.appPads {
		if padMatches(p, device, note) {
			return i
		}
	}
	for i, p := range e.songPads {
		if padMatches(p, device, note) {
			return NumAppPads + i
		}
	}
	return -1
}

func padMatches(p Pad, device, note int) bool {
	if p.MIDIDevice == PadDeviceDisabled || !p.Enabled() {
		return false
	}
	if p.MIDINote != note {
		return false
	}
	return p.MIDIDevice == PadDeviceAny || p.MIDIDevice == device
}
