package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"modlive/config"
	"modlive/debug"
	"modlive/driver"
	"modlive/input"
	"modlive/perform"
	"modlive/song"
	"modlive/tui"
)

var (
	songPath    string
	midiOutPort string
	noMIDIOut   bool
	debugLog    bool
)

var rootCmd = &cobra.Command{
	Use:   "modlive",
	Short: "Live-performance layer for pattern-based module playback",
	Long: `modlive drives module playback live: transport, loop shaping,
channel mixing, and order jumps from keyboard and MIDI controllers,
with recordable row-quantized performances and scripted phrases.`,
	RunE: runRoot,
}

func init() {
	rootCmd.Flags().StringVarP(&songPath, "song", "s", "", "song metadata file or directory (default: built-in demo)")
	rootCmd.Flags().StringVarP(&midiOutPort, "midi-out", "o", "", "MIDI output port name (default: first available)")
	rootCmd.Flags().BoolVar(&noMIDIOut, "no-midi-out", false, "disable MIDI output")
	rootCmd.Flags().BoolVar(&debugLog, "debug", false, "write a debug log to ~/.config/modlive/debug.log")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if debugLog || cfg.Debug {
		if err := debug.Enable(); err != nil {
			return fmt.Errorf("enable debug log: %w", err)
		}
		defer debug.Disable()
	}

	// MIDI output is optional; missing ports degrade to silent
	// note tracking.
	var sender perform.NoteSender
	if !noMIDIOut {
		port := midiOutPort
		if port == "" {
			port = cfg.MIDIOutPort
		}
		out, err := input.OpenOutput(port)
		if err != nil {
			debug.Log("main", "midi out unavailable: %v", err)
			fmt.Fprintf(os.Stderr, "midi out unavailable: %v\n", err)
		} else {
			sender = out
		}
	}

	// Song: a file, a directory of songs, or the built-in demo.
	s, playlist, err := loadSongs(songPath)
	if err != nil {
		return err
	}

	clock := driver.NewClock(s)
	engine := perform.NewEngine(clock, perform.NewMIDIOut(sender))
	clock.SetEngine(engine)
	engine.SetAppPads(cfg.AppPads)
	engine.SetSong(s.Phrases, s.Pads)

	if playlist != nil {
		playlist.SetOnLoad(func(ns *song.Song) error {
			// Runs inside the engine dispatch, lock already held.
			clock.SetSong(ns)
			engine.SetSong(ns.Phrases, ns.Pads)
			return nil
		})
		engine.SetPlaylist(playlist)
	}

	mapping := input.NewMapping(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := &input.Router{Mapping: mapping, Engine: engine, Do: clock.Do}
	midiIn := input.NewManager(router.Handle)
	go midiIn.Run(ctx)
	go clock.Run(ctx)

	m := tui.NewModel(clock, engine, mapping)
	p := tea.NewProgram(m, tea.WithAltScreen())
	engine.SetQuitFunc(func() { go p.Quit() })

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	clock.Do(func() { engine.MIDIOut().Reset() })
	return nil
}

func loadSongs(path string) (*song.Song, *song.Playlist, error) {
	if path == "" {
		return song.Demo(), nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("song path: %w", err)
	}

	dir := path
	first := ""
	if !info.IsDir() {
		dir = filepath.Dir(path)
		first = path
	}

	playlist, err := song.NewPlaylist(dir, nil)
	if err != nil {
		return nil, nil, err
	}

	idx := 0
	if first != "" {
		for i := 0; i < playlist.FileCount(); i++ {
			if playlist.Path(i) == first {
				idx = i
				break
			}
		}
	}
	s, err := song.Load(playlist.Path(idx))
	if err != nil {
		return nil, nil, err
	}
	playlist.SetCurrent(idx)
	return s, playlist, nil
}
