package driver

// Status is a point-in-time copy of transport state for rendering.
type Status struct {
	Title      string
	Order      int
	Row        int
	OrderCount int
	Pattern    int
	Rows       int
	Paused     bool
	Pitch      float64
	Looping    bool
	LoopStart  int
	LoopEnd    int
	Channels   int
	Muted      []bool
	Volume     []float64
}

// Snapshot copies the transport state under the lock. Control-context
// only; the render path never calls this.
func (c *Clock) Snapshot() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{
		Title:      c.song.Title,
		Order:      c.order,
		Row:        c.row,
		OrderCount: len(c.song.Orders),
		Pattern:    c.song.Orders[c.order],
		Rows:       c.rowsInCurrentPattern(),
		Paused:     c.paused,
		Pitch:      c.pitch,
		Looping:    c.looping,
		LoopStart:  c.loopStart,
		LoopEnd:    c.loopEnd,
		Channels:   c.song.Channels,
		Muted:      make([]bool, c.song.Channels),
		Volume:     make([]float64, c.song.Channels),
	}
	copy(st.Muted, c.muted[:c.song.Channels])
	copy(st.Volume, c.volume[:c.song.Channels])
	return st
}
