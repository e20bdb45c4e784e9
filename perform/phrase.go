package perform

import "modlive/debug"

// PhraseStep is one scripted action. DelayRows is how many row ticks
// to wait before the step fires, counted from the previous step's
// execution (or from the trigger for step 0).
type PhraseStep struct {
	Action    Action  `json:"action"`
	Param     int     `json:"param"`
	Value     float64 `json:"value"`
	DelayRows int     `json:"delayRows"`
}

// Phrase is an authored multi-step sequence, owned by song metadata
// and read-only here.
type Phrase struct {
	Name  string       `json:"name,omitempty"`
	Steps []PhraseStep `json:"steps"`
}

// phraseState is the single fixed phrase slot. idx == -1 means idle.
// At most one phrase plays at a time; triggering replaces whatever is
// in flight.
type phraseState struct {
	idx     int
	step    int
	counter int
}

// PhraseActive reports whether a phrase is mid-execution.
func (e *Engine) PhraseActive() bool { return e.phrase.idx >= 0 }

// ActivePhrase returns the running phrase index and step, or -1, -1
// when idle.
func (e *Engine) ActivePhrase() (idx, step int) {
	if e.phrase.idx < 0 {
		return -1, -1
	}
	return e.phrase.idx, e.phrase.step
}

// TriggerPhrase starts phrase idx, cancelling any phrase already in
// flight. Invalid indices and empty phrases are logged and ignored.
// A paused transport is resumed: phrase timing only exists while rows
// advance.
func (e *Engine) TriggerPhrase(idx int) {
	if idx < 0 || idx >= len(e.phrases) {
		debug.Log("phrase", "trigger ignored: index %d of %d", idx, len(e.phrases))
		return
	}
	if len(e.phrases[idx].Steps) == 0 {
		debug.Log("phrase", "trigger ignored: phrase %d has no steps", idx)
		return
	}
	if e.phrase.idx >= 0 {
		debug.Log("phrase", "cancel %d step %d", e.phrase.idx, e.phrase.step)
	}
	e.phrase.idx = idx
	e.phrase.step = 0
	e.phrase.counter = e.phrases[idx].Steps[0].DelayRows
	debug.Log("phrase", "trigger %d (%d steps, first delay %d)",
		idx, len(e.phrases[idx].Steps), e.phrase.counter)
	if !e.player.Playing() {
		e.player.SetPaused(false)
	}
}

// CancelPhrase idles the phrase slot without executing anything.
func (e *Engine) CancelPhrase() {
	e.phrase.idx = -1
}

// phraseRowTick advances the active phrase by one row. When the delay
// counter runs out the current step executes with OriginPhrase and
// the slot moves on; after the last step the phrase jumps the song
// back to order 0 and the slot goes idle.
func (e *Engine) phraseRowTick() {
	if e.phrase.idx < 0 {
		return
	}
	if e.phrase.counter > 0 {
		e.phrase.counter--
		return
	}
	steps := e.phrases[e.phrase.idx].Steps
	st := steps[e.phrase.step]
	debug.Log("phrase", "exec %d step %d: %s", e.phrase.idx, e.phrase.step, st.Action)
	e.Execute(Event{Action: st.Action, Param: st.Param, Value: st.Value}, OriginPhrase)
	e.phrase.step++
	if e.phrase.step < len(steps) {
		e.phrase.counter = steps[e.phrase.step].DelayRows
		return
	}
	// Complete: return to the top of the song.
	debug.Log("phrase", "complete %d", e.phrase.idx)
	e.phrase.idx = -1
	e.player.JumpOrder(0)
}
