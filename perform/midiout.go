package perform

import "modlive/debug"

// NoteSender transmits MIDI messages. The gomidi-backed implementation
// lives in the input package; tests use a capture fake.
type NoteSender interface {
	NoteOn(ch, note, vel uint8)
	NoteOff(ch, note uint8)
	ControlChange(ch, cc, val uint8)
}

// MaxTrackerChannels bounds the per-channel active-note table. Module
// formats in the wild top out well below this.
const MaxTrackerChannels = 64

// NoteOffNote is the pseudo-note value the decoder delivers for an
// explicit key-off. It bypasses note mapping and releases the channel.
const NoteOffNote = -1

// ProTracker extended effect Ex, subcommand C = note cut.
const (
	effectExtended = 0xE
	extNoteCut     = 0xC
)

const allNotesOffCC = 123

type activeNote struct {
	on   bool
	ch   uint8
	note uint8
}

// MIDIOut translates decoder note events into MIDI messages, keeping
// one active note per tracker channel so retriggers and releases come
// out right. Fixed-size state; safe on the render path.
type MIDIOut struct {
	send   NoteSender
	active [MaxTrackerChannels]activeNote
}

// NewMIDIOut wraps a sender. A nil sender disables output; HandleNote
// still tracks state so enabling output later stays consistent.
func NewMIDIOut(send NoteSender) *MIDIOut {
	return &MIDIOut{send: send}
}

// HandleNote maps one decoder note event. Instrument selects the MIDI
// channel (mod 16), tracker note 0 maps to MIDI note 12, tracker
// volume 0-64 scales to velocity 0-127. An already-sounding note on
// the channel is released first.
func (m *MIDIOut) HandleNote(channel, note, instrument, volume, effect, effectParam int) {
	if channel < 0 || channel >= MaxTrackerChannels {
		return
	}
	cut := effect == effectExtended && effectParam>>4 == extNoteCut
	if note == NoteOffNote || cut {
		m.release(channel)
		return
	}
	if note < 0 {
		return
	}

	midiCh := uint8(instrument % 16)
	midiNote := note + 12
	if midiNote > 127 {
		midiNote = 127
	}
	vel := volume * 127 / 64
	if vel > 127 {
		vel = 127
	}

	m.release(channel)
	if vel <= 0 {
		return
	}
	if m.send != nil {
		m.send.NoteOn(midiCh, uint8(midiNote), uint8(vel))
	}
	m.active[channel] = activeNote{on: true, ch: midiCh, note: uint8(midiNote)}
}

// release clears a channel's active note, emitting its note-off.
func (m *MIDIOut) release(channel int) {
	a := &m.active[channel]
	if !a.on {
		return
	}
	if m.send != nil {
		m.send.NoteOff(a.ch, a.note)
	}
	a.on = false
}

// Reset releases every tracked note and sends all-notes-off on all 16
// MIDI channels. Used on stop, song change, and shutdown.
func (m *MIDIOut) Reset() {
	debug.Log("midiout", "reset")
	for ch := range m.active {
		m.release(ch)
	}
	if m.send == nil {
		return
	}
	for ch := uint8(0); ch < 16; ch++ {
		m.send.ControlChange(ch, allNotesOffCC, 0)
	}
}

// ActiveNote reports the sounding MIDI note for a tracker channel.
func (m *MIDIOut) ActiveNote(channel int) (ch, note uint8, on bool) {
	if channel < 0 || channel >= MaxTrackerChannels {
		return 0, 0, false
	}
	a := m.active[channel]
	return a.ch, a.note, a.on
}
