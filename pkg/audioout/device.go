//go:build (linux && cgo) || windows || darwin

package audioout

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/rs/zerolog"

	"github.com/jmarren/segplay/pkg/segplay"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

// Device decodes source bytes into Clips played through the beep speaker.
// The speaker runs at a fixed rate; clips are resampled to it.
type Device struct {
	mu sync.Mutex

	logger      zerolog.Logger
	sampleRate  beep.SampleRate
	initialized bool
	initErr     error
}

func NewDevice(logger zerolog.Logger) *Device {
	return &Device{
		logger:     logger,
		sampleRate: beep.SampleRate(44100),
	}
}

func (d *Device) initSpeaker() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initialized {
		return d.initErr
	}
	d.initialized = true
	d.initErr = speaker.Init(d.sampleRate, d.sampleRate.N(time.Second/10))
	if d.initErr != nil {
		d.logger.Error().Err(d.initErr).Msg("Speaker init")
	}
	return d.initErr
}

// Load decodes the bytes and returns a playable clip
func (d *Device) Load(data []byte) (segplay.Clip, error) {
	streamer, format, err := decode(data)
	if err != nil {
		return nil, err
	}
	return &clip{
		dev:      d,
		streamer: streamer,
		format:   format,
		volume:   1.0,
	}, nil
}

type clip struct {
	dev *Device

	mu sync.Mutex

	streamer beep.StreamSeekCloser
	format   beep.Format

	ctrl *beep.Ctrl
	vol  *effects.Volume

	volume     float64
	loops      int
	playing    bool
	onFinished func()
}

func (c *clip) Duration() time.Duration {
	return c.format.SampleRate.D(c.streamer.Len())
}

// Play starts output, or resumes it when paused. Reports false when the
// speaker could not be initialized.
func (c *clip) Play() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.dev.initSpeaker(); err != nil {
		return false
	}

	if c.ctrl != nil {
		speaker.Lock()
		c.ctrl.Paused = false
		speaker.Unlock()
		c.playing = true
		return true
	}

	var src beep.Streamer = c.streamer
	if c.loops != 0 {
		n := c.loops + 1
		if c.loops < 0 {
			n = -1
		}
		src = beep.Loop(n, c.streamer)
	}
	resampled := beep.Resample(4, c.format.SampleRate, c.dev.sampleRate, src)
	c.ctrl = &beep.Ctrl{Streamer: resampled}
	c.vol = &effects.Volume{Streamer: c.ctrl, Base: 2}
	applyVolume(c.vol, c.volume)

	speaker.Play(beep.Seq(c.vol, beep.Callback(c.finished)))
	c.playing = true
	return true
}

// finished runs on the speaker goroutine when the stream drains naturally
func (c *clip) finished() {
	c.mu.Lock()
	c.playing = false
	c.ctrl = nil
	c.vol = nil
	fn := c.onFinished
	c.mu.Unlock()
	if fn != nil {
		// separate goroutine so the handler may start new playback
		go fn()
	}
}

func (c *clip) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctrl != nil {
		speaker.Lock()
		c.ctrl.Paused = true
		speaker.Unlock()
	}
	c.playing = false
}

func (c *clip) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctrl != nil {
		speaker.Clear()
		c.ctrl = nil
		c.vol = nil
	}
	c.playing = false
}

func (c *clip) Seek(pos time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.format.SampleRate.N(pos)
	if n >= c.streamer.Len() {
		n = c.streamer.Len() - 1
	}
	if n < 0 {
		n = 0
	}
	speaker.Lock()
	if err := c.streamer.Seek(n); err != nil {
		c.dev.logger.Warn().Err(err).Msg("Seek")
	}
	speaker.Unlock()
}

func (c *clip) Position() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	speaker.Lock()
	pos := c.streamer.Position()
	speaker.Unlock()
	return c.format.SampleRate.D(pos)
}

func (c *clip) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

func (c *clip) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

func (c *clip) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = v
	if c.vol != nil {
		speaker.Lock()
		applyVolume(c.vol, v)
		speaker.Unlock()
	}
}

// applyVolume maps a linear [0,1] gain onto beep's logarithmic volume
func applyVolume(vol *effects.Volume, v float64) {
	if v <= 0 {
		vol.Silent = true
		return
	}
	vol.Silent = false
	vol.Volume = math.Log2(v)
}

func (c *clip) LoopCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loops
}

func (c *clip) SetLoopCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loops = n
}

func (c *clip) OnFinished(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFinished = fn
}

func (c *clip) Close() error {
	c.Stop()
	return c.streamer.Close()
}
