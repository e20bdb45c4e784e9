package song

import (
	"os"
	"path/filepath"
	"testing"

	"modlive/perform"
)

func writeSong(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeSong(t, t.TempDir(), "min.json", `{
		"title": "minimal",
		"orders": [0],
		"patternRows": [64]
	}`)

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Tempo != 125 || s.Speed != 6 || s.Channels != 4 {
		t.Errorf("defaults not applied: tempo=%d speed=%d channels=%d", s.Tempo, s.Speed, s.Channels)
	}
}

func TestLoadFull(t *testing.T) {
	path := writeSong(t, t.TempDir(), "full.json", `{
		"title": "full",
		"tempo": 140,
		"speed": 3,
		"channels": 8,
		"orders": [0, 1, 0],
		"patternRows": [64, 32],
		"loopSong": true,
		"phrases": [
			{"name": "break", "steps": [
				{"action": 16, "param": 0, "delayRows": 0},
				{"action": 20, "delayRows": 8}
			]}
		],
		"pads": [
			{"action": 4, "midiNote": 36, "midiDevice": -1}
		]
	}`)

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Tempo != 140 || s.Speed != 3 || s.Channels != 8 {
		t.Errorf("header not read: %+v", s)
	}
	if len(s.Phrases) != 1 || len(s.Phrases[0].Steps) != 2 {
		t.Errorf("phrases not read: %+v", s.Phrases)
	}
	if len(s.Pads) != 1 || s.Pads[0].MIDINote != 36 {
		t.Errorf("pads not read: %+v", s.Pads)
	}
}

func TestLoadRejectsBadSongs(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		body string
	}{
		{"no-orders", `{"patternRows": [64]}`},
		{"no-patterns", `{"orders": [0]}`},
		{"order-out-of-range", `{"orders": [2], "patternRows": [64]}`},
		{"zero-row-pattern", `{"orders": [0], "patternRows": [0]}`},
		{"too-many-channels", `{"orders": [0], "patternRows": [64], "channels": 200}`},
		{"garbage", `{nope`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSong(t, dir, tc.name+".json", tc.body)
			if _, err := Load(path); err == nil {
				t.Errorf("%s loaded without error", tc.name)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("missing file loaded")
	}
}

func TestDemoIsValid(t *testing.T) {
	s := Demo()
	if err := s.validate(); err != nil {
		t.Fatalf("built-in demo song invalid: %v", err)
	}
	if len(s.Phrases) == 0 || len(s.Pads) == 0 {
		t.Error("demo should come with a phrase and a pad")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	if err := Demo().Save(path); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Title != "demo" || len(s.Orders) != len(Demo().Orders) {
		t.Errorf("round trip lost data: %+v", s)
	}
}

func TestUnconfiguredPadDisabled(t *testing.T) {
	// A zero-valued pad entry in the JSON must not bind note 0 on
	// device 0.
	path := writeSong(t, t.TempDir(), "pads.json", `{
		"orders": [0],
		"patternRows": [64],
		"pads": [{}]
	}`)
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Pads[0].MIDIDevice != perform.PadDeviceDisabled {
		t.Errorf("zero pad entry left enabled: %+v", s.Pads[0])
	}
}

func TestPlaylistScanAndLoad(t *testing.T) {
	dir := t.TempDir()
	writeSong(t, dir, "b.json", `{"title":"b","orders":[0],"patternRows":[64]}`)
	writeSong(t, dir, "a.json", `{"title":"a","orders":[0],"patternRows":[32]}`)
	writeSong(t, dir, "notes.txt", "not a song")

	var loaded []string
	pl, err := NewPlaylist(dir, func(s *Song) error {
		loaded = append(loaded, s.Title)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if pl.FileCount() != 2 {
		t.Fatalf("found %d files, want 2", pl.FileCount())
	}

	// Files come back sorted, so index 0 is a.json.
	if err := pl.Load(0); err != nil {
		t.Fatal(err)
	}
	if err := pl.Load(1); err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 || loaded[0] != "a" || loaded[1] != "b" {
		t.Errorf("load order %v, want [a b]", loaded)
	}
	if pl.Current() != 1 {
		t.Errorf("current = %d, want 1", pl.Current())
	}
	if err := pl.Load(5); err == nil {
		t.Error("out-of-range load succeeded")
	}
}

func TestPlaylistEmptyDir(t *testing.T) {
	if _, err := NewPlaylist(t.TempDir(), nil); err == nil {
		t.Fatal("empty directory should be an error")
	}
}
