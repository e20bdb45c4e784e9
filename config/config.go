package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"modlive/perform"
)

// KeyBinding maps a keyboard key (bubbletea key name) to an action.
type KeyBinding struct {
	Key    string  `json:"key"`
	Action string  `json:"action"`
	Param  int     `json:"param,omitempty"`
	Value  float64 `json:"value,omitempty"`
}

// CCBinding maps a MIDI controller-change to an action. Device -1
// matches any device. The controller value arrives as the event
// value, so continuous actions (volume, pitch) track the knob.
type CCBinding struct {
	Device     int    `json:"device"`
	Controller int    `json:"controller"`
	Action     string `json:"action"`
	Param      int    `json:"param,omitempty"`
}

// Config is the process-wide configuration: input bindings, the
// application pad bank, and port preferences.
type Config struct {
	Keys        []KeyBinding  `json:"keys,omitempty"`
	CCs         []CCBinding   `json:"ccs,omitempty"`
	AppPads     []perform.Pad `json:"appPads,omitempty"`
	MIDIOutPort string        `json:"midiOutPort,omitempty"`
	Debug       bool          `json:"debug,omitempty"`
}

// DefaultConfig returns a config with a full keyboard map and an
// empty pad bank.
func DefaultConfig() *Config {
	keys := []KeyBinding{
		{Key: " ", Action: "play_pause"},
		{Key: "enter", Action: "play"},
		{Key: "s", Action: "stop"},
		{Key: "r", Action: "retrigger"},
		{Key: "right", Action: "next_order"},
		{Key: "left", Action: "prev_order"},
		{Key: "down", Action: "next_pattern"},
		{Key: "up", Action: "prev_pattern"},
		{Key: "l", Action: "loop_till_row"},
		{Key: "h", Action: "loop_halve"},
		{Key: "f", Action: "loop_full"},
		{Key: "m", Action: "mute_all"},
		{Key: "u", Action: "unmute_all"},
		{Key: "+", Action: "pitch_up"},
		{Key: "=", Action: "pitch_up"},
		{Key: "-", Action: "pitch_down"},
		{Key: "0", Action: "pitch_set", Value: 64}, // back to 1.0x
		{Key: "tab", Action: "file_next"},
		{Key: "shift+tab", Action: "file_prev"},
		{Key: "q", Action: "quit"},
	}
	// 1-8 toggle channel mutes, shift variants solo
	for i := 0; i < 8; i++ {
		keys = append(keys,
			KeyBinding{Key: string(rune('1' + i)), Action: "mute_channel", Param: i},
			KeyBinding{Key: "alt+" + string(rune('1'+i)), Action: "solo_channel", Param: i},
		)
	}
	// F1-F8 fire pads, shift+F1.. fire phrases
	fkeys := []string{"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8"}
	for i, k := range fkeys {
		keys = append(keys,
			KeyBinding{Key: k, Action: "trigger_pad", Param: i},
			KeyBinding{Key: "shift+" + k, Action: "trigger_phrase", Param: i},
		)
	}

	pads := make([]perform.Pad, perform.NumAppPads)
	for i := range pads {
		pads[i] = perform.Pad{MIDINote: -1, MIDIDevice: perform.PadDeviceDisabled}
	}

	return &Config{
		Keys: keys,
		CCs: []CCBinding{
			{Device: -1, Controller: 7, Action: "pitch_set"},
		},
		AppPads: pads,
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "modlive"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadPath(path)
}

// LoadPath reads a config file, falling back to defaults when the
// file does not exist.
func LoadPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
