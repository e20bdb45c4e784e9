package input

import (
	"fmt"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"

	"modlive/debug"
)

// Output sends the engine's outbound notes to a gomidi port. It
// implements perform.NoteSender.
type Output struct {
	portName string
	send     func(gomidi.Message) error
}

// OpenOutput opens the named MIDI output port. An empty name picks
// the first available port; no ports at all is an error.
func OpenOutput(portName string) (*Output, error) {
	outPorts := gomidi.GetOutPorts()
	if len(outPorts) == 0 {
		return nil, fmt.Errorf("no MIDI output ports available")
	}

	port := outPorts[0]
	if portName != "" {
		found := false
		for i := range outPorts {
			if strings.EqualFold(outPorts[i].String(), portName) {
				port = outPorts[i]
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("MIDI output port %q not found", portName)
		}
	}

	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open output %q: %w", port.String(), err)
	}
	debug.Log("output", "opened %q", port.String())
	return &Output{portName: port.String(), send: send}, nil
}

// PortName returns the opened port's name.
func (o *Output) PortName() string { return o.portName }

func (o *Output) NoteOn(ch, note, vel uint8) {
	if err := o.send(gomidi.NoteOn(ch, note, vel)); err != nil {
		debug.Log("output", "note on: %v", err)
	}
}

func (o *Output) NoteOff(ch, note uint8) {
	if err := o.send(gomidi.NoteOff(ch, note)); err != nil {
		debug.Log("output", "note off: %v", err)
	}
}

func (o *Output) ControlChange(ch, cc, val uint8) {
	if err := o.send(gomidi.ControlChange(ch, cc, val)); err != nil {
		debug.Log("output", "cc: %v", err)
	}
}
