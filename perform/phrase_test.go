package perform

import "testing"

func phraseOf(steps ...PhraseStep) Phrase {
	return Phrase{Steps: steps}
}

func TestTriggerInvalidPhraseIgnored(t *testing.T) {
	e, fp, _ := newTestEngine()
	e.SetSong([]Phrase{phraseOf(PhraseStep{Action: ActionMuteAll})}, nil)

	for _, idx := range []int{-1, 1, 99} {
		e.TriggerPhrase(idx)
		if e.PhraseActive() {
			t.Fatalf("phrase %d should not activate", idx)
		}
	}
	if fp.playing {
		t.Error("invalid trigger should not touch transport")
	}
}

func TestTriggerEmptyPhraseIgnored(t *testing.T) {
	e, _, _ := newTestEngine()
	e.SetSong([]Phrase{{Steps: nil}}, nil)

	e.TriggerPhrase(0)
	if e.PhraseActive() {
		t.Fatal("empty phrase should not activate")
	}
}

func TestStepZeroFiresAfterItsDelay(t *testing.T) {
	e, fp, _ := newTestEngine()
	e.SetSong([]Phrase{phraseOf(
		PhraseStep{Action: ActionMuteChannel, Param: 0, DelayRows: 2},
	)}, nil)
	fp.playing = true

	e.TriggerPhrase(0)

	tickRows(e, fp, 2)
	if fp.muted[0] {
		t.Fatal("step fired during its delay")
	}
	tickRows(e, fp, 1)
	if !fp.muted[0] {
		t.Fatal("step did not fire once the delay ran out")
	}
}

func TestZeroDelayFiresOnNextTick(t *testing.T) {
	e, fp, _ := newTestEngine()
	e.SetSong([]Phrase{phraseOf(
		PhraseStep{Action: ActionMuteChannel, Param: 3, DelayRows: 0},
	)}, nil)
	fp.playing = true

	e.TriggerPhrase(0)
	if fp.muted[3] {
		t.Fatal("step fired at trigger time, not on a row tick")
	}
	tickRows(e, fp, 1)
	if !fp.muted[3] {
		t.Fatal("zero-delay step should fire on the first row tick")
	}
}

func TestRetriggerCancelsActivePhrase(t *testing.T) {
	e, fp, _ := newTestEngine()
	e.SetSong([]Phrase{
		phraseOf(PhraseStep{Action: ActionMuteChannel, Param: 0, DelayRows: 4}),
		phraseOf(PhraseStep{Action: ActionMuteChannel, Param: 1, DelayRows: 1}),
	}, nil)
	fp.playing = true

	e.TriggerPhrase(0)
	tickRows(e, fp, 2)
	e.TriggerPhrase(1)
	tickRows(e, fp, 10)

	if fp.muted[0] {
		t.Error("cancelled phrase still executed its step")
	}
	if !fp.muted[1] {
		t.Error("replacement phrase never executed")
	}
}

func TestCompletionJumpsToOrderZero(t *testing.T) {
	mkSteps := func(n int) []PhraseStep {
		steps := make([]PhraseStep, n)
		for i := range steps {
			steps[i] = PhraseStep{Action: ActionUnmuteAll, DelayRows: 1}
		}
		return steps
	}

	for _, n := range []int{1, 2, 5} {
		e, fp, _ := newTestEngine()
		e.SetSong([]Phrase{{Steps: mkSteps(n)}}, nil)
		fp.playing = true
		fp.order = 2

		e.TriggerPhrase(0)
		tickRows(e, fp, 2*n+2)

		if e.PhraseActive() {
			t.Fatalf("%d-step phrase still active after enough ticks", n)
		}
		if len(fp.jumpOrders) == 0 || fp.jumpOrders[len(fp.jumpOrders)-1] != 0 {
			t.Errorf("%d-step phrase completion should jump to order 0, jumps=%v", n, fp.jumpOrders)
		}
	}
}

func TestTriggerResumesPausedTransport(t *testing.T) {
	e, fp, _ := newTestEngine()
	e.SetSong([]Phrase{phraseOf(PhraseStep{Action: ActionUnmuteAll})}, nil)
	fp.playing = false

	e.TriggerPhrase(0)
	if !fp.playing {
		t.Fatal("trigger should resume a paused transport")
	}
}

func TestPhraseCannotTriggerPhrase(t *testing.T) {
	e, fp, _ := newTestEngine()
	e.SetSong([]Phrase{
		phraseOf(
			PhraseStep{Action: ActionTriggerPhrase, Param: 1, DelayRows: 0},
			PhraseStep{Action: ActionMuteChannel, Param: 0, DelayRows: 1},
		),
		phraseOf(PhraseStep{Action: ActionMuteChannel, Param: 1, DelayRows: 0}),
	}, nil)
	fp.playing = true

	e.TriggerPhrase(0)
	tickRows(e, fp, 1)

	// The nested trigger must be suppressed: phrase 0 keeps running.
	if idx, _ := e.ActivePhrase(); idx != 0 {
		t.Fatalf("phrase 0 should still be active, got %d", idx)
	}
	tickRows(e, fp, 2)
	if fp.muted[1] {
		t.Error("suppressed phrase 1 ran anyway")
	}
	if !fp.muted[0] {
		t.Error("phrase 0's later step should have run")
	}
}

func TestPhraseTransportStartSkipsPerformanceAutoStart(t *testing.T) {
	e, fp, _ := newTestEngine()
	e.SetSong([]Phrase{phraseOf(
		PhraseStep{Action: ActionPlay, DelayRows: 0},
		PhraseStep{Action: ActionUnmuteAll, DelayRows: 4},
	)}, nil)

	// Record something so a performance timeline exists.
	p := e.Performance()
	p.SetRecording(true)
	e.HandleAction(Event{Action: ActionMuteChannel, Param: 0}, OriginUser)
	p.SetRecording(false)

	fp.playing = false
	e.TriggerPhrase(0) // resumes transport
	fp.playing = false // pause again so the Play step does the starting
	tickRows(e, fp, 1)

	if !fp.playing {
		t.Fatal("phrase Play step should start the transport")
	}
	if p.Playback() {
		t.Error("phrase-origin transport start must not enable performance replay")
	}
	if fp.restarts != 0 {
		t.Error("phrase-origin transport start must not reset song position")
	}
}
