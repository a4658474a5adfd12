package game

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/astraea/internal/camera"
	"github.com/plus3/astraea/internal/config"
	"github.com/plus3/astraea/internal/save"
)

// Options configures New. Zero fields take their defaults.
type Options struct {
	Width, Height int
	FovY          float32
	Follow        float32
	Settle        float32
	DragGain      float32

	// MagnitudeLimit drops stars fainter than this. Zero keeps all.
	MagnitudeLimit float64
	Home           string
	// Seed fixes the round order. Zero picks one at random.
	Seed uint64
	// Store receives finished games. Nil keeps records in memory.
	Store *save.Store
}

func (o *Options) defaults() {
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	if o.FovY <= 0 {
		o.FovY = camera.DefaultFovY
	}
	if o.Follow <= 0 {
		o.Follow = camera.DefaultFollow
	}
	if o.Settle <= 0 {
		o.Settle = camera.DefaultSettle
	}
	if o.DragGain <= 0 {
		o.DragGain = camera.DragGain
	}
	if o.Home == "" {
		o.Home = DefaultHome
	}
	if o.Seed == 0 {
		o.Seed = rand.Uint64()
	}
	if o.Store == nil {
		o.Store = save.NewStore(nil)
	}
}

// OptionsFrom maps a loaded configuration onto game options.
func OptionsFrom(cfg config.Config, store *save.Store) Options {
	return Options{
		Width:          cfg.Window.Width,
		Height:         cfg.Window.Height,
		FovY:           float32(cfg.Camera.FovDegrees * math.Pi / 180),
		Follow:         float32(cfg.Camera.Follow),
		Settle:         float32(cfg.Camera.Settle),
		DragGain:       float32(cfg.Camera.DragGain),
		MagnitudeLimit: cfg.Sky.MagnitudeLimit,
		Home:           cfg.Quiz.Home,
		Seed:           cfg.Quiz.Seed,
		Store:          store,
	}
}
