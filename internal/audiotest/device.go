package audiotest

import (
	"errors"
	"sync"
	"time"

	"github.com/jmarren/segplay/pkg/segplay"
)

// ErrBadBytes is what FakeDevice returns when told to fail decoding
var ErrBadBytes = errors.New("unsupported encoding")

// FakeDevice hands out FakeClips of a scripted duration. Position advances
// with the attached FakeClock while a clip is playing.
type FakeDevice struct {
	Clock    *FakeClock
	Duration time.Duration

	// FailLoad makes Load fail; RejectPlay makes clips refuse to start
	FailLoad   bool
	RejectPlay bool

	// LastClip is the most recently loaded clip
	LastClip *FakeClip
}

func (d *FakeDevice) Load(data []byte) (segplay.Clip, error) {
	if d.FailLoad {
		return nil, ErrBadBytes
	}
	c := &FakeClip{
		dev:      d,
		clock:    d.Clock,
		duration: d.Duration,
		volume:   1.0,
	}
	d.LastClip = c
	return c, nil
}

// FakeClip records every primitive call for assertions
type FakeClip struct {
	dev   *FakeDevice
	clock *FakeClock

	mu       sync.Mutex
	duration time.Duration
	playing  bool
	base     time.Duration // position when playback last started or seeked
	since    time.Time     // wall instant playback last started

	volume     float64
	loops      int
	onFinished func()
	closed     bool

	PlayCalls  int
	PauseCalls int
	StopCalls  int
	Seeks      []time.Duration
}

func (c *FakeClip) Duration() time.Duration { return c.duration }

func (c *FakeClip) Play() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.PlayCalls++
	if c.dev.RejectPlay {
		return false
	}
	if !c.playing {
		c.playing = true
		c.since = c.clock.Now()
	}
	return true
}

func (c *FakeClip) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.PauseCalls++
	c.freezeLocked()
}

func (c *FakeClip) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.StopCalls++
	c.freezeLocked()
}

func (c *FakeClip) freezeLocked() {
	if c.playing {
		c.base += c.clock.Now().Sub(c.since)
		c.playing = false
	}
}

func (c *FakeClip) Seek(pos time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Seeks = append(c.Seeks, pos)
	c.base = pos
	c.since = c.clock.Now()
}

func (c *FakeClip) Position() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing {
		return c.base + c.clock.Now().Sub(c.since)
	}
	return c.base
}

func (c *FakeClip) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

func (c *FakeClip) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

func (c *FakeClip) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = v
}

func (c *FakeClip) LoopCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loops
}

func (c *FakeClip) SetLoopCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loops = n
}

func (c *FakeClip) OnFinished(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFinished = fn
}

func (c *FakeClip) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *FakeClip) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// FinishNaturally simulates the primitive reaching end of file
func (c *FakeClip) FinishNaturally() {
	c.mu.Lock()
	c.freezeLocked()
	fn := c.onFinished
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}
