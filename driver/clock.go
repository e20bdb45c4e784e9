// Package driver provides the row-clock transport the performance
// engine runs against: a stand-in for the module decoder that walks
// the song's order/row grid in real time and fires the engine's
// callbacks. Decoding actual module data is out of scope; the clock
// reproduces the decoder's timing and callback contract.
package driver

import (
	"context"
	"sync"
	"time"

	"modlive/debug"
	"modlive/perform"
	"modlive/song"
)

// Clock walks the row grid at song tempo. It owns the mutex that
// serializes the render context (its own tick goroutine) with
// control-context input: all engine access from the outside goes
// through Do. Clock implements perform.Player; those methods expect
// the lock to be held, which is true both inside Do and inside the
// engine callbacks the tick invokes.
type Clock struct {
	mu     sync.Mutex
	engine *perform.Engine
	song   *song.Song

	paused bool
	order  int
	row    int

	pendingOrder   int // applied at next row boundary, -1 = none
	pendingPattern int
	queuedOrder    int // applied at next order boundary, -1 = none
	queuedPattern  int

	loopStart int
	loopEnd   int
	looping   bool

	pitch float64

	muted  [perform.MaxTrackerChannels]bool
	volume [perform.MaxTrackerChannels]float64
}

// NewClock builds a paused clock positioned at order 0, row 0.
func NewClock(s *song.Song) *Clock {
	c := &Clock{
		song:           s,
		paused:         true,
		pendingOrder:   -1,
		pendingPattern: -1,
		queuedOrder:    -1,
		queuedPattern:  -1,
		pitch:          1.0,
	}
	for i := range c.volume {
		c.volume[i] = 1.0
	}
	return c
}

// SetEngine wires the engine whose callbacks the clock drives.
func (c *Clock) SetEngine(e *perform.Engine) { c.engine = e }

// Do runs f with the transport lock held. This is the only way
// control-context code may touch the engine or the Player surface.
func (c *Clock) Do(f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f()
}

// SetSong swaps in a new song and rewinds. Caller holds the lock
// (call inside Do, or before Run starts).
func (c *Clock) SetSong(s *song.Song) {
	c.song = s
	c.order = 0
	c.row = 0
	c.pendingOrder = -1
	c.pendingPattern = -1
	c.queuedOrder = -1
	c.queuedPattern = -1
	c.looping = false
	c.loopStart = 0
	c.loopEnd = 0
	for i := range c.muted {
		c.muted[i] = false
		c.volume[i] = 1.0
	}
}

// Run ticks rows until ctx is done (blocking - run in goroutine).
func (c *Clock) Run(ctx context.Context) {
	timer := time.NewTimer(c.rowInterval())
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			c.mu.Lock()
			c.step()
			c.mu.Unlock()
			timer.Reset(c.rowInterval())
		}
	}
}

func (c *Clock) rowInterval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Classic tracker timing: ticks/sec = BPM*2/5, one row per
	// Speed ticks. Pitch scales the whole grid.
	rowsPerSec := float64(c.song.Tempo) * 2 / (5 * float64(c.song.Speed)) * c.pitch
	if rowsPerSec <= 0 {
		rowsPerSec = 1
	}
	return time.Duration(float64(time.Second) / rowsPerSec)
}

// step plays one row tick: fire the engine's row callback for the
// current position, then move to the next row, honoring pending
// jumps, queued order/pattern switches, loop bounds, and the end of
// the order list. Lock held.
func (c *Clock) step() {
	if c.paused || c.engine == nil {
		return
	}
	debug.LogEvery(64, "clock", "order=%d row=%d", c.order, c.row)
	c.engine.OnRow(c.order, c.row)
	c.advance()
}

func (c *Clock) advance() {
	// Jumps win over everything and land on the target's row 0.
	if c.pendingOrder >= 0 {
		c.setOrder(c.pendingOrder)
		c.pendingOrder = -1
		return
	}
	if c.pendingPattern >= 0 {
		if o := c.orderForPattern(c.pendingPattern); o >= 0 {
			c.setOrder(o)
		}
		c.pendingPattern = -1
		return
	}

	// Loop bounds trap the row within the current pattern.
	if c.looping && c.row >= c.loopEnd {
		c.row = c.loopStart
		return
	}

	c.row++
	if c.row < c.rowsInCurrentPattern() {
		return
	}

	// Order boundary: queued switches apply here.
	if c.queuedOrder >= 0 {
		c.setOrder(c.queuedOrder)
		c.queuedOrder = -1
		return
	}
	if c.queuedPattern >= 0 {
		o := c.orderForPattern(c.queuedPattern)
		c.queuedPattern = -1
		if o >= 0 {
			c.setOrder(o)
			return
		}
	}

	if c.order+1 < len(c.song.Orders) {
		c.setOrder(c.order + 1)
		return
	}

	// End of song.
	if c.song.LoopSong {
		c.setOrder(0)
		c.engine.OnLoop()
		return
	}
	c.row = 0
	c.paused = true
	debug.Log("clock", "end of song")
}

// setOrder enters an order at row 0 and fires the order callback.
func (c *Clock) setOrder(order int) {
	c.order = order
	c.row = 0
	c.looping = false
	c.engine.OnOrder(order, c.song.Orders[order])
}

// orderForPattern finds the first order playing a pattern, -1 if the
// pattern is not in the order list.
func (c *Clock) orderForPattern(pattern int) int {
	for o, p := range c.song.Orders {
		if p == pattern {
			return o
		}
	}
	return -1
}

func (c *Clock) rowsInCurrentPattern() int {
	return c.song.PatternRows[c.song.Orders[c.order]]
}
