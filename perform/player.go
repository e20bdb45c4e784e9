package perform

// Player is the capability surface the engine needs from the module
// player/decoder. The real transport implements it (driver.Clock), as
// do the test fakes. Mutators are intent: the player applies them at
// row or order boundaries, never mid-render.
type Player interface {
	// Transport
	Playing() bool
	SetPaused(paused bool)
	Restart() // back to order 0, row 0

	// Position
	CurrentOrder() int
	CurrentRow() int
	OrderCount() int
	PatternCount() int
	PatternAt(order int) int
	RowsInPattern(pattern int) int

	// Navigation. Jumps take effect at the next row boundary,
	// queues at the next order boundary.
	JumpOrder(order int)
	JumpPattern(pattern int)
	QueueOrder(order int)
	QueuePattern(pattern int)

	// Loop shaping within the current pattern, rows inclusive.
	LoopStart() int
	LoopEnd() int
	SetLoop(startRow, endRow int)
	ClearLoop()

	// Pitch multiplier, 1.0 = native tempo.
	Pitch() float64
	SetPitch(mult float64)

	// Mixer
	ChannelCount() int
	IsChannelMuted(ch int) bool
	SetChannelMuted(ch int, muted bool)
	SetChannelVolume(ch int, vol float64)
	SoloChannel(ch int)
	UnmuteAll()
}

// Playlist navigates between song files. Optional; the engine treats
// a nil playlist as a one-song session.
type Playlist interface {
	FileCount() int
	Current() int
	Load(idx int) error
}
