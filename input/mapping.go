package input

import (
	"modlive/config"
	"modlive/debug"
	"modlive/perform"
)

type ccKey struct {
	device     int
	controller int
}

// Mapping translates raw physical input into perform events. Built
// once from config, read-only afterwards.
type Mapping struct {
	keys map[string]perform.Event
	ccs  map[ccKey]perform.Event
}

// NewMapping compiles the config's bindings. Bindings naming unknown
// actions are logged and skipped.
func NewMapping(cfg *config.Config) *Mapping {
	m := &Mapping{
		keys: make(map[string]perform.Event, len(cfg.Keys)),
		ccs:  make(map[ccKey]perform.Event, len(cfg.CCs)),
	}
	for _, kb := range cfg.Keys {
		action, ok := perform.ActionByName(kb.Action)
		if !ok {
			debug.Log("input", "key %q: unknown action %q", kb.Key, kb.Action)
			continue
		}
		m.keys[kb.Key] = perform.Event{Action: action, Param: kb.Param, Value: kb.Value}
	}
	for _, cb := range cfg.CCs {
		action, ok := perform.ActionByName(cb.Action)
		if !ok {
			debug.Log("input", "cc %d/%d: unknown action %q", cb.Device, cb.Controller, cb.Action)
			continue
		}
		m.ccs[ccKey{cb.Device, cb.Controller}] = perform.Event{Action: action, Param: cb.Param}
	}
	return m
}

// ResolveKey looks up a keyboard key.
func (m *Mapping) ResolveKey(key string) (perform.Event, bool) {
	ev, ok := m.keys[key]
	return ev, ok
}

// ResolveCC looks up a controller change. A binding for the exact
// device wins over an any-device (-1) binding. The controller value
// becomes the event value so continuous actions track the knob.
func (m *Mapping) ResolveCC(device, controller, value int) (perform.Event, bool) {
	ev, ok := m.ccs[ccKey{device, controller}]
	if !ok {
		ev, ok = m.ccs[ccKey{-1, controller}]
	}
	if !ok {
		return perform.Event{}, false
	}
	ev.Value = float64(value)
	return ev, true
}
