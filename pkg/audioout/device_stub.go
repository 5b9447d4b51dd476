//go:build !((linux && cgo) || windows || darwin)

package audioout

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/jmarren/segplay/pkg/segplay"
)

// AudioAvailable indicates whether audio playback is supported in this build.
// Output on linux needs cgo for the native sound libraries.
const AudioAvailable = false

// Device decodes sources but produces silent clips. Decoding and duration
// reporting still work, so scheduling logic behaves normally.
type Device struct {
	logger zerolog.Logger
}

func NewDevice(logger zerolog.Logger) *Device {
	return &Device{logger: logger}
}

func (d *Device) Load(data []byte) (segplay.Clip, error) {
	streamer, format, err := decode(data)
	if err != nil {
		return nil, err
	}
	duration := format.SampleRate.D(streamer.Len())
	streamer.Close()
	return &clip{duration: duration, volume: 1.0}, nil
}

type clip struct {
	duration time.Duration
	position time.Duration
	volume   float64
	loops    int
	playing  bool
}

func (c *clip) Duration() time.Duration { return c.duration }
func (c *clip) Play() bool              { c.playing = true; return true }
func (c *clip) Pause()                  { c.playing = false }
func (c *clip) Stop()                   { c.playing = false }
func (c *clip) Seek(pos time.Duration)  { c.position = pos }
func (c *clip) Position() time.Duration { return c.position }
func (c *clip) IsPlaying() bool         { return c.playing }
func (c *clip) Volume() float64         { return c.volume }
func (c *clip) SetVolume(v float64)     { c.volume = v }
func (c *clip) LoopCount() int          { return c.loops }
func (c *clip) SetLoopCount(n int)      { c.loops = n }
func (c *clip) OnFinished(fn func())    {}
func (c *clip) Close() error            { return nil }
