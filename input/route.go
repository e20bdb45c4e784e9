package input

import (
	"modlive/debug"
	"modlive/perform"
)

// MIDI status high nibbles this layer consumes.
const (
	statusNoteOn        = 0x9
	statusControlChange = 0xB
)

// Router turns raw MIDI messages into engine dispatches. Controller
// changes go through the mapping table; note-ons resolve against the
// trigger pad banks first and fall back to nothing (pads are the only
// note-on consumers). Dispatch runs inside Do, the transport lock
// that serializes control-context input with the render context.
type Router struct {
	Mapping *Mapping
	Engine  *perform.Engine
	Do      func(func())
}

// Handle routes one raw message. Safe to use as a Manager handler.
func (r *Router) Handle(raw RawMessage) {
	switch raw.Status >> 4 {
	case statusControlChange:
		ev, ok := r.Mapping.ResolveCC(raw.Device, int(raw.Data1), int(raw.Data2))
		if !ok {
			debug.Log("input", "cc %d/%d unmapped", raw.Device, raw.Data1)
			return
		}
		r.Do(func() {
			r.Engine.HandleAction(ev, perform.OriginUser)
		})

	case statusNoteOn:
		if raw.Data2 == 0 {
			// Running-status note-off; pads only care about presses.
			return
		}
		r.Do(func() {
			pad := r.Engine.PadForNote(raw.Device, int(raw.Data1))
			if pad < 0 {
				debug.Log("input", "note %d from device %d hit no pad", raw.Data1, raw.Device)
				return
			}
			r.Engine.HandleAction(perform.Event{
				Action: perform.ActionTriggerPad,
				Param:  pad,
				Value:  float64(raw.Data2),
			}, perform.OriginUser)
		})
	}
}
