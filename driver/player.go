package driver

import "modlive/debug"

// perform.Player implementation. Every method expects the transport
// lock: they are reached either from inside the tick (engine
// callbacks) or from control code wrapped in Do.

func (c *Clock) Playing() bool { return !c.paused }

func (c *Clock) SetPaused(paused bool) {
	if c.paused == paused {
		return
	}
	c.paused = paused
	debug.Log("clock", "paused=%v", paused)
}

// Restart returns to order 0, row 0 immediately. Immediate is safe:
// whoever calls holds the lock, so no row is mid-flight. Pending and
// queued switches are dropped so nothing staged before the restart
// fires during the run that follows it.
func (c *Clock) Restart() {
	c.order = 0
	c.row = 0
	c.pendingOrder = -1
	c.pendingPattern = -1
	c.queuedOrder = -1
	c.queuedPattern = -1
	c.looping = false
}

func (c *Clock) CurrentOrder() int { return c.order }
func (c *Clock) CurrentRow() int   { return c.row }
func (c *Clock) OrderCount() int   { return len(c.song.Orders) }
func (c *Clock) PatternCount() int { return len(c.song.PatternRows) }

func (c *Clock) PatternAt(order int) int {
	if order < 0 || order >= len(c.song.Orders) {
		return -1
	}
	return c.song.Orders[order]
}

func (c *Clock) RowsInPattern(pattern int) int {
	if pattern < 0 || pattern >= len(c.song.PatternRows) {
		return 0
	}
	return c.song.PatternRows[pattern]
}

func (c *Clock) JumpOrder(order int) {
	if order < 0 || order >= len(c.song.Orders) {
		return
	}
	c.pendingOrder = order
	c.pendingPattern = -1
}

func (c *Clock) JumpPattern(pattern int) {
	if pattern < 0 || pattern >= len(c.song.PatternRows) {
		return
	}
	c.pendingPattern = pattern
	c.pendingOrder = -1
}

func (c *Clock) QueueOrder(order int) {
	if order < 0 || order >= len(c.song.Orders) {
		return
	}
	c.queuedOrder = order
	c.queuedPattern = -1
}

func (c *Clock) QueuePattern(pattern int) {
	if pattern < 0 || pattern >= len(c.song.PatternRows) {
		return
	}
	c.queuedPattern = pattern
	c.queuedOrder = -1
}

func (c *Clock) LoopStart() int { return c.loopStart }

func (c *Clock) LoopEnd() int {
	if !c.looping {
		return 0
	}
	return c.loopEnd
}

// Looping reports whether loop bounds are active.
func (c *Clock) Looping() bool { return c.looping }

func (c *Clock) SetLoop(startRow, endRow int) {
	rows := c.rowsInCurrentPattern()
	if startRow < 0 || endRow >= rows || endRow <= startRow {
		debug.Log("clock", "loop %d..%d ignored (%d rows)", startRow, endRow, rows)
		return
	}
	c.loopStart = startRow
	c.loopEnd = endRow
	c.looping = true
	debug.Log("clock", "loop %d..%d", startRow, endRow)
}

func (c *Clock) ClearLoop() {
	c.looping = false
	c.loopStart = 0
	c.loopEnd = 0
}

func (c *Clock) Pitch() float64 { return c.pitch }

func (c *Clock) SetPitch(mult float64) {
	if mult <= 0 {
		return
	}
	c.pitch = mult
}

func (c *Clock) ChannelCount() int { return c.song.Channels }

func (c *Clock) IsChannelMuted(ch int) bool {
	if ch < 0 || ch >= c.song.Channels {
		return false
	}
	return c.muted[ch]
}

func (c *Clock) SetChannelMuted(ch int, muted bool) {
	if ch < 0 || ch >= c.song.Channels {
		return
	}
	c.muted[ch] = muted
}

func (c *Clock) SetChannelVolume(ch int, vol float64) {
	if ch < 0 || ch >= c.song.Channels {
		return
	}
	if vol < 0 {
		vol = 0
	}
	if vol > 1 {
		vol = 1
	}
	c.volume[ch] = vol
}

// ChannelVolume returns the 0..1 volume for a channel.
func (c *Clock) ChannelVolume(ch int) float64 {
	if ch < 0 || ch >= c.song.Channels {
		return 0
	}
	return c.volume[ch]
}

// SoloChannel mutes everything but ch. If ch is already the only
// audible channel, solo toggles off and everything unmutes.
func (c *Clock) SoloChannel(ch int) {
	if ch < 0 || ch >= c.song.Channels {
		return
	}
	solo := true
	for i := 0; i < c.song.Channels; i++ {
		if c.muted[i] == (i == ch) {
			solo = false
			break
		}
	}
	if solo {
		c.UnmuteAll()
		return
	}
	for i := 0; i < c.song.Channels; i++ {
		c.muted[i] = i != ch
	}
}

func (c *Clock) UnmuteAll() {
	for i := 0; i < c.song.Channels; i++ {
		c.muted[i] = false
	}
}
