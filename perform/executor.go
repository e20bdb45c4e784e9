package perform

import (
	"math"

	"modlive/debug"
)

// Pitch multiplier range for pitch_set: controller 0 maps to 0.25,
// the midpoint to 1.0, 127 to 3.0.
const (
	PitchMin = 0.25
	PitchMax = 3.0
)

// semitone step for pitch up/down
var pitchStep = math.Pow(2, 1.0/12)

// controller midpoint that lands on 1.0x
const pitchCenter = 64.0

// PitchForValue maps a 0-127 controller value onto the pitch
// multiplier range, linear on each side of the midpoint so the
// center of the knob is native speed.
func PitchForValue(v float64) float64 {
	if v < 0 {
		v = 0
	}
	if v > 127 {
		v = 127
	}
	if v <= pitchCenter {
		return PitchMin + v/pitchCenter*(1.0-PitchMin)
	}
	return 1.0 + (v-pitchCenter)/(127-pitchCenter)*(PitchMax-1.0)
}

// Execute applies one event to the player. It is a total function of
// (event, origin): every action is safe to call from any origin and
// any current state. Invalid targets (bad order, pattern, channel,
// pad, phrase) are logged and ignored; that is a boundary condition,
// not a fault.
func (e *Engine) Execute(ev Event, origin Origin) {
	debug.Log("exec", "%s param=%d value=%g origin=%s", ev.Action, ev.Param, ev.Value, origin)
	p := e.player

	switch ev.Action {
	case ActionNone:

	case ActionPlayPause:
		if p.Playing() {
			// Pause keeps performance position; Stop is the
			// hard reset.
			p.SetPaused(true)
		} else {
			e.startTransport(origin)
		}

	case ActionPlay:
		if !p.Playing() {
			e.startTransport(origin)
		}

	case ActionStop:
		p.SetPaused(true)
		e.perf.SetPlayback(false)
		e.perf.ResetPos()
		e.out.Reset()

	case ActionRetrigger:
		// Restart the current order from its first row.
		p.JumpOrder(p.CurrentOrder())

	case ActionNextOrder:
		e.jumpOrder(p.CurrentOrder() + 1)
	case ActionPrevOrder:
		e.jumpOrder(p.CurrentOrder() - 1)
	case ActionJumpOrder:
		e.jumpOrder(ev.Param)
	case ActionQueueOrder:
		if ev.Param >= 0 && ev.Param < p.OrderCount() {
			p.QueueOrder(ev.Param)
		} else {
			debug.Log("exec", "queue order %d ignored (%d orders)", ev.Param, p.OrderCount())
		}

	case ActionJumpPattern:
		e.jumpPattern(ev.Param)
	case ActionNextPattern:
		e.jumpPattern(p.PatternAt(p.CurrentOrder()) + 1)
	case ActionPrevPattern:
		e.jumpPattern(p.PatternAt(p.CurrentOrder()) - 1)
	case ActionQueuePattern:
		if ev.Param >= 0 && ev.Param < p.PatternCount() {
			p.QueuePattern(ev.Param)
		} else {
			debug.Log("exec", "queue pattern %d ignored (%d patterns)", ev.Param, p.PatternCount())
		}

	case ActionLoopTillRow:
		row := ev.Param
		if row <= 0 {
			row = p.CurrentRow()
		}
		if row > p.LoopStart() {
			p.SetLoop(p.LoopStart(), row)
		}
	case ActionLoopHalve:
		start, end := p.LoopStart(), p.LoopEnd()
		if end <= start {
			end = p.RowsInPattern(p.PatternAt(p.CurrentOrder())) - 1
		}
		half := start + (end-start)/2
		if half > start {
			p.SetLoop(start, half)
		}
	case ActionLoopFull:
		p.ClearLoop()

	case ActionMuteChannel:
		if ch := ev.Param; ch >= 0 && ch < p.ChannelCount() {
			p.SetChannelMuted(ch, !p.IsChannelMuted(ch))
		}
	case ActionSoloChannel:
		if ch := ev.Param; ch >= 0 && ch < p.ChannelCount() {
			p.SoloChannel(ch)
		}
	case ActionChannelVolume:
		if ch := ev.Param; ch >= 0 && ch < p.ChannelCount() {
			p.SetChannelVolume(ch, clamp01(ev.Value/127))
		}
	case ActionMuteAll:
		for ch := 0; ch < p.ChannelCount(); ch++ {
			p.SetChannelMuted(ch, true)
		}
	case ActionUnmuteAll:
		p.UnmuteAll()

	case ActionPitchUp:
		p.SetPitch(clampPitch(p.Pitch() * pitchStep))
	case ActionPitchDown:
		p.SetPitch(clampPitch(p.Pitch() / pitchStep))
	case ActionPitchSet:
		p.SetPitch(PitchForValue(ev.Value))

	case ActionTriggerPad:
		e.triggerPad(ev.Param, origin)

	case ActionTriggerPhrase:
		if origin == OriginPhrase {
			// A phrase must not trigger phrases.
			debug.Log("exec", "phrase trigger from phrase suppressed")
			return
		}
		e.TriggerPhrase(ev.Param)

	case ActionQuit:
		if e.onQuit != nil {
			e.onQuit()
		}

	case ActionFilePrev:
		e.loadFile(e.fileIndex() - 1)
	case ActionFileNext:
		e.loadFile(e.fileIndex() + 1)
	case ActionFileLoad:
		e.loadFile(ev.Param)

	default:
		debug.Log("exec", "unhandled action %d", ev.Action)
	}
	e.notify()
}

// startTransport starts playback. A recorded performance replays from
// the top of the song, unless this start came from a phrase script or
// a phrase is mid-execution: a phrase's own transport start must not
// hijack the song position.
func (e *Engine) startTransport(origin Origin) {
	if e.perf.HasEvents() && origin != OriginPhrase && !e.PhraseActive() {
		e.player.Restart()
		e.perf.ResetPos()
		e.perf.SetPlayback(true)
	}
	e.player.SetPaused(false)
}

func (e *Engine) jumpOrder(order int) {
	if order >= 0 && order < e.player.OrderCount() {
		e.player.JumpOrder(order)
	} else {
		debug.Log("exec", "jump order %d ignored (%d orders)", order, e.player.OrderCount())
	}
}

func (e *Engine) jumpPattern(pattern int) {
	if pattern >= 0 && pattern < e.player.PatternCount() {
		e.player.JumpPattern(pattern)
	} else {
		debug.Log("exec", "jump pattern %d ignored (%d patterns)", pattern, e.player.PatternCount())
	}
}

// triggerPad fires the action bound to a pad. A pad bound to another
// pad trigger is ignored rather than chased.
func (e *Engine) triggerPad(idx int, origin Origin) {
	pad, ok := e.padAt(idx)
	if !ok {
		debug.Log("exec", "pad %d out of range", idx)
		return
	}
	if !pad.Enabled() {
		debug.Log("exec", "pad %d disabled", idx)
		return
	}
	if pad.Action == ActionTriggerPad {
		debug.Log("exec", "pad %d bound to a pad trigger, ignored", idx)
		return
	}
	e.Execute(Event{Action: pad.Action, Param: pad.Param, Value: pad.Value}, origin)
}

func (e *Engine) fileIndex() int {
	if e.playlist == nil {
		return 0
	}
	return e.playlist.Current()
}

func (e *Engine) loadFile(idx int) {
	if e.playlist == nil {
		return
	}
	if idx < 0 || idx >= e.playlist.FileCount() {
		debug.Log("exec", "file %d out of range (%d files)", idx, e.playlist.FileCount())
		return
	}
	if err := e.playlist.Load(idx); err != nil {
		debug.Log("exec", "load file %d: %v", idx, err)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampPitch(v float64) float64 {
	if v < PitchMin {
		return PitchMin
	}
	if v > PitchMax {
		return PitchMax
	}
	return v
}
