package input

import (
	"context"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"modlive/debug"
)

// RawMessage is one incoming MIDI message with the numeric id of the
// device that produced it. Device ids are stable for the life of the
// process so pad/CC bindings can filter on them.
type RawMessage struct {
	Status uint8
	Data1  uint8
	Data2  uint8
	Device int
}

// Manager handles hot-plug detection of MIDI input ports and funnels
// their messages to a single handler. The handler runs on the
// driver's listener goroutine; keep it short and hand off into the
// engine through the transport lock.
type Manager struct {
	handler func(RawMessage)

	mu        sync.Mutex
	open      map[string]func() // port name -> stop func
	deviceIDs map[string]int
	nextID    int

	pollRate time.Duration
}

// NewManager creates a manager delivering to handler.
func NewManager(handler func(RawMessage)) *Manager {
	return &Manager{
		handler:   handler,
		open:      make(map[string]func()),
		deviceIDs: make(map[string]int),
		pollRate:  time.Second,
	}
}

// DeviceID returns the id assigned to a port name, or -1 if it has
// never been seen.
func (m *Manager) DeviceID(portName string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.deviceIDs[portName]; ok {
		return id
	}
	return -1
}

// Run polls for port changes until ctx is done (blocking - run in
// goroutine).
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.pollRate)
	defer ticker.Stop()

	m.scan()

	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			return
		case <-ticker.C:
			m.scan()
		}
	}
}

func (m *Manager) scan() {
	inPorts := gomidi.GetInPorts()

	seen := make(map[string]bool, len(inPorts))
	for i := range inPorts {
		port := inPorts[i]
		name := port.String()
		seen[name] = true

		m.mu.Lock()
		_, already := m.open[name]
		m.mu.Unlock()
		if already {
			continue
		}

		id := m.assignID(name)
		stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
			raw := msg.Bytes()
			if len(raw) < 3 {
				return
			}
			m.handler(RawMessage{Status: raw[0], Data1: raw[1], Data2: raw[2], Device: id})
		})
		if err != nil {
			debug.Log("input", "open %q: %v", name, err)
			continue
		}

		m.mu.Lock()
		m.open[name] = stop
		m.mu.Unlock()
		debug.Log("input", "connected %q as device %d", name, id)
	}

	// Drop listeners for ports that went away.
	m.mu.Lock()
	for name, stop := range m.open {
		if !seen[name] {
			stop()
			delete(m.open, name)
			debug.Log("input", "disconnected %q", name)
		}
	}
	m.mu.Unlock()
}

func (m *Manager) assignID(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.deviceIDs[name]; ok {
		return id
	}
	id := m.nextID
	m.nextID++
	m.deviceIDs[name] = id
	return id
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, stop := range m.open {
		stop()
		delete(m.open, name)
	}
}
