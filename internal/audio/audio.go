// Package audio plays the looping background music.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
)

const SampleRate = 48000

type stream interface {
	io.ReadSeeker
	Length() int64
}

// Music is one looping track.
type Music struct {
	player *audio.Player
}

// decode picks a decoder by file extension.
func decode(ctx *audio.Context, path string, data []byte) (stream, error) {
	reader := bytes.NewReader(data)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode ogg %s: %w", path, err)
		}
		return s, nil
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode mp3 %s: %w", path, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported audio format %q (want .ogg or .mp3)", ext)
	}
}

// Load reads the track at path and wraps it in an infinite loop.
func Load(ctx *audio.Context, path string) (*Music, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read music: %w", err)
	}
	s, err := decode(ctx, path, data)
	if err != nil {
		return nil, err
	}

	player, err := ctx.NewPlayer(audio.NewInfiniteLoop(s, s.Length()))
	if err != nil {
		return nil, fmt.Errorf("music player for %s: %w", path, err)
	}
	return &Music{player: player}, nil
}

// Start loads and plays path at volume. Any failure is logged and leaves
// the game silent. An empty path means no music.
func Start(path string, volume float64) *Music {
	if path == "" {
		return nil
	}
	music, err := Load(audio.NewContext(SampleRate), path)
	if err != nil {
		log.Printf("[Audio] Warning: %v (continuing without music)", err)
		return nil
	}
	music.SetVolume(volume)
	music.Play()
	log.Printf("[Audio] playing %s", filepath.Base(path))
	return music
}

func (m *Music) Play() {
	if m != nil {
		m.player.Play()
	}
}

func (m *Music) Pause() {
	if m != nil {
		m.player.Pause()
	}
}

func (m *Music) SetVolume(v float64) {
	if m != nil {
		m.player.SetVolume(v)
	}
}

func (m *Music) Playing() bool {
	return m != nil && m.player.IsPlaying()
}
