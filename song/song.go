// Package song holds the song-side metadata the performance layer
// consumes: the row grid shape as the decoder reports it, authored
// phrases, and the song's trigger pad bank. Read-only at runtime.
package song

import (
	"encoding/json"
	"fmt"
	"os"

	"modlive/perform"
)

// Song is one loaded song's metadata.
type Song struct {
	Title    string `json:"title"`
	Tempo    int    `json:"tempo"`    // BPM
	Speed    int    `json:"speed"`    // ticks per row
	Channels int    `json:"channels"` // tracker channels

	Orders      []int `json:"orders"`      // pattern index per order position
	PatternRows []int `json:"patternRows"` // row count per pattern
	LoopSong    bool  `json:"loopSong"`

	Phrases []perform.Phrase `json:"phrases,omitempty"`
	Pads    []perform.Pad    `json:"pads,omitempty"`
}

// Load reads a song metadata file.
func Load(path string) (*Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read song: %w", err)
	}
	var s Song
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse song %s: %w", path, err)
	}
	s.applyDefaults()
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("song %s: %w", path, err)
	}
	return &s, nil
}

// Save writes the song metadata back out.
func (s *Song) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Song) applyDefaults() {
	if s.Tempo == 0 {
		s.Tempo = 125
	}
	if s.Speed == 0 {
		s.Speed = 6
	}
	if s.Channels == 0 {
		s.Channels = 4
	}
	for i, p := range s.Pads {
		if p.Action == perform.ActionNone && p.MIDIDevice == 0 && p.MIDINote == 0 {
			// Unconfigured entry in the JSON array.
			s.Pads[i].MIDINote = -1
			s.Pads[i].MIDIDevice = perform.PadDeviceDisabled
		}
	}
}

func (s *Song) validate() error {
	if len(s.Orders) == 0 {
		return fmt.Errorf("no orders")
	}
	if len(s.PatternRows) == 0 {
		return fmt.Errorf("no patterns")
	}
	for i, p := range s.Orders {
		if p < 0 || p >= len(s.PatternRows) {
			return fmt.Errorf("order %d references pattern %d of %d", i, p, len(s.PatternRows))
		}
	}
	for i, rows := range s.PatternRows {
		if rows <= 0 {
			return fmt.Errorf("pattern %d has %d rows", i, rows)
		}
	}
	if s.Channels < 1 || s.Channels > perform.MaxTrackerChannels {
		return fmt.Errorf("channel count %d out of range", s.Channels)
	}
	return nil
}

// Demo returns a small built-in song so the app runs without a file:
// four 64-row patterns, one practice phrase, one pad.
func Demo() *Song {
	return &Song{
		Title:       "demo",
		Tempo:       125,
		Speed:       6,
		Channels:    4,
		Orders:      []int{0, 1, 2, 3, 1, 0},
		PatternRows: []int{64, 64, 64, 64},
		LoopSong:    true,
		Phrases: []perform.Phrase{
			{
				Name: "drop",
				Steps: []perform.PhraseStep{
					{Action: perform.ActionMuteAll, DelayRows: 0},
					{Action: perform.ActionJumpOrder, Param: 2, DelayRows: 16},
					{Action: perform.ActionUnmuteAll, DelayRows: 16},
				},
			},
		},
		Pads: []perform.Pad{
			{Action: perform.ActionRetrigger, MIDINote: 36, MIDIDevice: perform.PadDeviceAny},
		},
	}
}
