package perform

import "modlive/debug"

// Engine is the performance layer's context: performance timeline,
// phrase slot, pad banks, MIDI output mapper, and the player they all
// act on. One Engine per loaded player; no package-level state.
//
// The engine takes no locks. OnRow/OnNote arrive on the render
// context inside the decoder's callbacks; control-context input must
// reach HandleAction through whatever mutex discipline serializes
// player access (driver.Clock.Do). Everything reachable from OnRow is
// allocation-free.
type Engine struct {
	player   Player
	playlist Playlist
	out      *MIDIOut

	perf    Performance
	phrase  phraseState
	phrases []Phrase

	appPads  []Pad
	songPads []Pad

	onQuit func()

	// UpdateChan gets a non-blocking nudge whenever engine state
	// changes, for the UI to redraw on.
	UpdateChan chan struct{}
}

// NewEngine builds an engine around a player. out may wrap a nil
// sender when no MIDI output port is configured.
func NewEngine(player Player, out *MIDIOut) *Engine {
	e := &Engine{
		player:     player,
		out:        out,
		UpdateChan: make(chan struct{}, 1),
	}
	e.phrase.idx = -1
	return e
}

// SetPlaylist wires file prev/next/load navigation.
func (e *Engine) SetPlaylist(pl Playlist) { e.playlist = pl }

// SetQuitFunc wires the quit action to the host application.
func (e *Engine) SetQuitFunc(f func()) { e.onQuit = f }

// SetAppPads installs the application pad bank (process-wide config).
func (e *Engine) SetAppPads(pads []Pad) {
	if len(pads) > NumAppPads {
		pads = pads[:NumAppPads]
	}
	e.appPads = pads
}

// SetSong installs song-owned metadata: phrases and the song pad
// bank. Cancels any running phrase and resets performance position;
// the timeline itself survives a song switch only if kept explicitly.
func (e *Engine) SetSong(phrases []Phrase, pads []Pad) {
	e.phrases = phrases
	e.songPads = pads
	e.phrase.idx = -1
	e.perf.Clear()
	e.out.Reset()
}

// Player returns the engine's player.
func (e *Engine) Player() Player { return e.player }

// Performance returns the performance timeline.
func (e *Engine) Performance() *Performance { return &e.perf }

// MIDIOut returns the output mapper.
func (e *Engine) MIDIOut() *MIDIOut { return e.out }

// Phrases returns the loaded phrase list.
func (e *Engine) Phrases() []Phrase { return e.phrases }

// HandleAction is the single entry point for resolved input from any
// source. Phrase triggers route to the phrase slot and are never
// recorded; everything else is recorded while a take is rolling (user
// origin only), then dispatched.
func (e *Engine) HandleAction(ev Event, origin Origin) {
	if ev.Action == ActionTriggerPhrase {
		e.Execute(ev, origin)
		return
	}
	if e.perf.Recording() && origin == OriginUser {
		e.perf.Record(ev.Action, ev.Param, ev.Value)
	}
	e.Execute(ev, origin)
}

// OnRow is the decoder's row callback. Ordering within one call:
// performance events for the row about to be left fire first, then
// the performance row advances, then the phrase slot ticks. All three
// happen before control returns to the decoder.
func (e *Engine) OnRow(order, row int) {
	if e.perf.Playback() {
		evs := e.perf.EventsAt(e.perf.Row())
		for i := range evs {
			ev := evs[i]
			e.HandleAction(Event{Action: ev.Action, Param: ev.Param, Value: ev.Value}, OriginPlayback)
		}
	}
	e.perf.Tick()
	e.phraseRowTick()
	e.notify()
}

// OnOrder is the decoder's order-change callback.
func (e *Engine) OnOrder(order, pattern int) {
	debug.Log("engine", "order %d pattern %d", order, pattern)
	e.notify()
}

// OnLoop is the decoder's song-loop callback. A looping song restarts
// its performance replay from the top.
func (e *Engine) OnLoop() {
	debug.Log("engine", "song loop")
	if e.perf.Playback() {
		e.perf.ResetPos()
	}
	e.notify()
}

// OnNote is the decoder's note-event callback.
func (e *Engine) OnNote(channel, note, instrument, volume, effect, effectParam int) {
	e.out.HandleNote(channel, note, instrument, volume, effect, effectParam)
}

func (e *Engine) notify() {
	select {
	case e.UpdateChan <- struct{}{}:
	default:
	}
}
