package song

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Playlist scans a directory for song files and loads them on demand.
// Implements perform.Playlist.
type Playlist struct {
	files  []string
	cur    int
	onLoad func(*Song) error
}

// NewPlaylist scans dir for .json song files. onLoad is called with
// each successfully parsed song; it installs the song into the
// running engine and transport.
func NewPlaylist(dir string, onLoad func(*Song) error) (*Playlist, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no song files in %s", dir)
	}
	return &Playlist{files: files, onLoad: onLoad}, nil
}

// SetOnLoad installs the load hook after construction, for wiring
// that needs the playlist to exist first.
func (p *Playlist) SetOnLoad(onLoad func(*Song) error) { p.onLoad = onLoad }

// SetCurrent marks idx as the loaded song without re-parsing it.
func (p *Playlist) SetCurrent(idx int) {
	if idx >= 0 && idx < len(p.files) {
		p.cur = idx
	}
}

// FileCount returns the number of songs found.
func (p *Playlist) FileCount() int { return len(p.files) }

// Current returns the index of the loaded song.
func (p *Playlist) Current() int { return p.cur }

// Path returns the file path at idx, or "" when out of range.
func (p *Playlist) Path(idx int) string {
	if idx < 0 || idx >= len(p.files) {
		return ""
	}
	return p.files[idx]
}

// Load parses the song at idx and hands it to the onLoad hook.
func (p *Playlist) Load(idx int) error {
	if idx < 0 || idx >= len(p.files) {
		return fmt.Errorf("song index %d out of range", idx)
	}
	s, err := Load(p.files[idx])
	if err != nil {
		return err
	}
	if p.onLoad != nil {
		if err := p.onLoad(s); err != nil {
			return err
		}
	}
	p.cur = idx
	return nil
}
