package perform

// fakePlayer is an in-memory Player with call recording, standing in
// for the decoder transport.
type fakePlayer struct {
	playing bool
	order   int
	row     int

	orders      []int // pattern index per order
	patternRows []int

	loopStart int
	loopEnd   int
	looping   bool

	pitch    float64
	channels int
	muted    [MaxTrackerChannels]bool
	volume   [MaxTrackerChannels]float64

	restarts   int
	jumpOrders []int
	jumpPats   []int
	queued     []int
	queuedPats []int
}

func newFakePlayer() *fakePlayer {
	p := &fakePlayer{
		orders:      []int{0, 1, 2, 1},
		patternRows: []int{64, 64, 32},
		pitch:       1.0,
		channels:    4,
	}
	for i := range p.volume {
		p.volume[i] = 1.0
	}
	return p
}

func (p *fakePlayer) Playing() bool          { return p.playing }
func (p *fakePlayer) SetPaused(paused bool)  { p.playing = !paused }
func (p *fakePlayer) Restart()               { p.restarts++; p.order = 0; p.row = 0 }
func (p *fakePlayer) CurrentOrder() int      { return p.order }
func (p *fakePlayer) CurrentRow() int        { return p.row }
func (p *fakePlayer) OrderCount() int        { return len(p.orders) }
func (p *fakePlayer) PatternCount() int      { return len(p.patternRows) }
func (p *fakePlayer) PatternAt(o int) int {
	if o < 0 || o >= len(p.orders) {
		return -1
	}
	return p.orders[o]
}
func (p *fakePlayer) RowsInPattern(pat int) int {
	if pat < 0 || pat >= len(p.patternRows) {
		return 0
	}
	return p.patternRows[pat]
}
func (p *fakePlayer) JumpOrder(o int)   { p.jumpOrders = append(p.jumpOrders, o); p.order = o; p.row = 0 }
func (p *fakePlayer) JumpPattern(n int) { p.jumpPats = append(p.jumpPats, n) }
func (p *fakePlayer) QueueOrder(o int)  { p.queued = append(p.queued, o) }
func (p *fakePlayer) QueuePattern(n int) {
	p.queuedPats = append(p.queuedPats, n)
}
func (p *fakePlayer) LoopStart() int { return p.loopStart }
func (p *fakePlayer) LoopEnd() int   { return p.loopEnd }
func (p *fakePlayer) SetLoop(s, e int) {
	p.loopStart, p.loopEnd, p.looping = s, e, true
}
func (p *fakePlayer) ClearLoop()     { p.looping = false; p.loopStart, p.loopEnd = 0, 0 }
func (p *fakePlayer) Pitch() float64 { return p.pitch }
func (p *fakePlayer) SetPitch(m float64) {
	p.pitch = m
}
func (p *fakePlayer) ChannelCount() int { return p.channels }
func (p *fakePlayer) IsChannelMuted(ch int) bool {
	return p.muted[ch]
}
func (p *fakePlayer) SetChannelMuted(ch int, m bool) { p.muted[ch] = m }
func (p *fakePlayer) SetChannelVolume(ch int, v float64) {
	p.volume[ch] = v
}
func (p *fakePlayer) SoloChannel(ch int) {
	for i := 0; i < p.channels; i++ {
		p.muted[i] = i != ch
	}
}
func (p *fakePlayer) UnmuteAll() {
	for i := range p.muted {
		p.muted[i] = false
	}
}

// fakeSender captures outbound MIDI messages in order.
type midiMsg struct {
	kind string // "on", "off", "cc"
	ch   uint8
	a    uint8 // note or controller
	b    uint8 // velocity or value
}

type fakeSender struct {
	msgs []midiMsg
}

func (s *fakeSender) NoteOn(ch, note, vel uint8) {
	s.msgs = append(s.msgs, midiMsg{"on", ch, note, vel})
}
func (s *fakeSender) NoteOff(ch, note uint8) {
	s.msgs = append(s.msgs, midiMsg{"off", ch, note, 0})
}
func (s *fakeSender) ControlChange(ch, cc, val uint8) {
	s.msgs = append(s.msgs, midiMsg{"cc", ch, cc, val})
}

// fakePlaylist satisfies Playlist for file navigation tests.
type fakePlaylist struct {
	count  int
	cur    int
	loaded []int
	err    error
}

func (p *fakePlaylist) FileCount() int { return p.count }
func (p *fakePlaylist) Current() int   { return p.cur }
func (p *fakePlaylist) Load(idx int) error {
	if p.err != nil {
		return p.err
	}
	p.loaded = append(p.loaded, idx)
	p.cur = idx
	return nil
}

// newTestEngine wires an engine around fresh fakes.
func newTestEngine() (*Engine, *fakePlayer, *fakeSender) {
	p := newFakePlayer()
	s := &fakeSender{}
	e := NewEngine(p, NewMIDIOut(s))
	return e, p, s
}

// tickRows simulates n decoder row callbacks.
func tickRows(e *Engine, p *fakePlayer, n int) {
	for i := 0; i < n; i++ {
		e.OnRow(p.order, p.row)
		p.row++
	}
}
