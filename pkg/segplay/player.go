package segplay

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// State of the player. The player is authoritative; the output primitive's
// own flags are treated as a cache of this.
type State int

const (
	StateIdle State = iota
	StateStopped
	StatePlayingWhole
	StatePlayingSegment
	StatePausedSegment
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStopped:
		return "stopped"
	case StatePlayingWhole:
		return "playing"
	case StatePlayingSegment:
		return "playing-segment"
	case StatePausedSegment:
		return "paused-segment"
	}
	return "unknown"
}

// SegmentPlayer plays an arbitrary sub-range of a loaded source once, a fixed
// number of extra times, or forever. Looping is driven by one-shot timers:
// each restart re-arms the next fire against a fixed wall-clock anchor, so
// cumulative drift stays bounded by the jitter of a single fire instead of
// the sum of all prior ones.
//
// Callers are expected to drive the player from a single goroutine. The
// internal mutex only exists because timer fires and completion callbacks
// arrive on their own goroutines; a generation counter discards fires that
// postdate a cancel, the same way the jukebox pattern drops stale
// finished-callbacks.
type SegmentPlayer struct {
	mu sync.Mutex

	dev    Device
	clock  Clock
	logger zerolog.Logger
	events EventLogger

	clip  Clip
	state State

	seg                *segment
	pausedRemaining    time.Duration
	hasPausedRemaining bool

	timer      Timer
	generation uint64

	volume     float64
	wholeLoops int

	onStateChange func(playing bool)
	onFinished    func()
}

// NewSegmentPlayer creates a player over the given output device and clock.
// Pass WallClock{} outside of tests.
func NewSegmentPlayer(dev Device, clock Clock, logger zerolog.Logger) *SegmentPlayer {
	return &SegmentPlayer{
		dev:    dev,
		clock:  clock,
		logger: logger,
		state:  StateIdle,
		volume: 1.0,
	}
}

// OnStateChange registers the playing/not-playing observer
func (p *SegmentPlayer) OnStateChange(fn func(playing bool)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onStateChange = fn
}

// OnFinished registers the whole-file natural-completion observer. It is
// never invoked for segment completion.
func (p *SegmentPlayer) OnFinished(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onFinished = fn
}

// SetEventLogger attaches an optional diagnostics logger
func (p *SegmentPlayer) SetEventLogger(ev EventLogger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = ev
}

// State returns the current player state
func (p *SegmentPlayer) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// IsPlaying reports whether the player is in either playing state
func (p *SegmentPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == StatePlayingWhole || p.state == StatePlayingSegment
}

// Load decodes source bytes and moves the player to the stopped state. Any
// pending timer, segment descriptor and paused position are discarded first.
// On decode failure no source is loaded and the player is idle.
func (p *SegmentPlayer) Load(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancelTimerLocked()
	p.seg = nil
	p.hasPausedRemaining = false

	if p.clip != nil {
		p.clip.Stop()
		p.clip.Close()
		p.clip = nil
	}
	p.state = StateIdle

	clip, err := p.dev.Load(data)
	if err != nil {
		p.logger.Error().Err(err).Msg("Decode source")
		return &DecodeError{Cause: err}
	}
	clip.SetLoopCount(p.wholeLoops)
	clip.SetVolume(p.volume)
	clip.OnFinished(p.handleFinished)
	p.clip = clip
	p.state = StateStopped
	sourcesLoaded.Inc()
	p.logger.Debug().Dur("duration", clip.Duration()).Msg("Source loaded")
	return nil
}

// Play starts whole-file playback from the current position, or, when a
// paused segment still has remaining time recorded, resumes that segment
// cycle instead. A paused segment is never discarded silently.
func (p *SegmentPlayer) Play() error {
	p.mu.Lock()
	if p.clip == nil {
		p.mu.Unlock()
		return ErrNotLoaded
	}

	if p.hasPausedRemaining && p.seg != nil {
		remaining := p.pausedRemaining
		if !p.clip.Play() {
			p.mu.Unlock()
			return ErrPlayFailed
		}
		p.hasPausedRemaining = false
		// re-anchor so that anchor+length lands at now+remaining
		p.seg.anchor = p.clock.Now().Add(remaining).Add(-p.seg.length)
		p.state = StatePlayingSegment
		p.armTimerLocked(remaining)
		p.logger.Debug().Dur("remaining", remaining).Msg("Segment resumed")
		notify := p.notifyLocked(true)
		p.mu.Unlock()
		notify()
		return nil
	}

	p.clip.SetLoopCount(p.wholeLoops)
	if !p.clip.Play() {
		p.mu.Unlock()
		return ErrPlayFailed
	}
	p.state = StatePlayingWhole
	notify := p.notifyLocked(true)
	p.mu.Unlock()
	notify()
	return nil
}

// Pause pauses the output. During an active segment the remaining cycle time
// is recorded so Play can resume without restarting the cycle. Pausing an
// already paused player is a no-op apart from the notification.
func (p *SegmentPlayer) Pause() {
	p.mu.Lock()
	if p.state == StatePlayingSegment && p.seg != nil {
		elapsed := p.clip.Position() - p.seg.start
		remaining := p.seg.length - elapsed
		if remaining < 0 {
			remaining = 0
		}
		p.pausedRemaining = remaining
		p.hasPausedRemaining = true
		p.cancelTimerLocked()
		p.state = StatePausedSegment
		p.logger.Debug().Dur("remaining", remaining).Msg("Segment paused")
	} else if p.state == StatePlayingWhole {
		p.state = StateStopped
	}
	if p.clip != nil {
		p.clip.Pause()
	}
	notify := p.notifyLocked(false)
	p.mu.Unlock()
	notify()
}

// Stop cancels any pending restart, clears the segment descriptor and the
// paused position, and stops the output.
func (p *SegmentPlayer) Stop() {
	p.mu.Lock()
	p.cancelTimerLocked()
	p.seg = nil
	p.hasPausedRemaining = false
	if p.clip != nil {
		p.clip.Stop()
		p.state = StateStopped
	} else {
		p.state = StateIdle
	}
	notify := p.notifyLocked(false)
	p.mu.Unlock()
	notify()
}

// PlaySegment plays [start, end) of the loaded source, restarting it as the
// loop spec demands. Out-of-bounds bounds are clamped to the source duration;
// only a range that collapses to nothing after clamping is rejected.
func (p *SegmentPlayer) PlaySegment(start, end time.Duration, loops LoopSpec) error {
	p.mu.Lock()
	if p.clip == nil {
		p.mu.Unlock()
		return ErrNotLoaded
	}

	dur := p.clip.Duration()
	cs := clampDur(start, 0, dur)
	ce := clampDur(end, cs, dur)
	length := ce - cs
	if length <= 0 {
		p.mu.Unlock()
		return &InvalidRangeError{Start: start, End: end, Duration: dur}
	}
	if cs != start || ce != end {
		p.logger.Debug().Dur("start", start).Dur("end", end).Dur("clampedStart", cs).Dur("clampedEnd", ce).Msg("Segment range clamped")
		if p.events != nil {
			p.events.LogRangeClamped(start, end, cs, ce)
		}
	}

	p.cancelTimerLocked()
	p.hasPausedRemaining = false
	p.clip.SetLoopCount(0)
	p.clip.Seek(cs)
	if !p.clip.Play() {
		p.seg = nil
		p.state = StateStopped
		p.mu.Unlock()
		return ErrPlayFailed
	}

	p.seg = &segment{
		start:     cs,
		length:    length,
		remaining: int(loops),
		anchor:    p.clock.Now(),
	}
	p.state = StatePlayingSegment
	p.armTimerLocked(length)
	segmentsStarted.Inc()
	p.logger.Debug().Dur("start", cs).Dur("length", length).Stringer("loops", loops).Msg("Segment started")
	notify := p.notifyLocked(true)
	p.mu.Unlock()
	notify()
	return nil
}

// Volume returns the player volume, or 1.0 when nothing is loaded
func (p *SegmentPlayer) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.clip == nil {
		return 1.0
	}
	return p.volume
}

// SetVolume clamps v to [0,1] and applies it to the output
func (p *SegmentPlayer) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	p.volume = v
	if p.clip != nil {
		p.clip.SetVolume(v)
	}
}

// LoopCount returns the stored whole-file loop counter
func (p *SegmentPlayer) LoopCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.wholeLoops
}

// SetLoopCount stores the whole-file loop counter. It is applied to the
// output at load time and at the start of whole-file playback; segment
// playback always manages its own restart loop.
func (p *SegmentPlayer) SetLoopCount(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wholeLoops = n
	if p.clip != nil {
		p.clip.SetLoopCount(n)
	}
}

// onCycleEnd runs when the one-shot timer for the current cycle fires. A
// fire whose generation predates a cancel never observes newer state.
func (p *SegmentPlayer) onCycleEnd(gen uint64) {
	p.mu.Lock()
	if gen != p.generation || p.seg == nil || p.state != StatePlayingSegment {
		p.mu.Unlock()
		return
	}
	s := p.seg

	if s.remaining == 0 {
		p.clip.Stop()
		p.seg = nil
		p.state = StateStopped
		p.logger.Debug().Msg("Segment finished")
		notify := p.notifyLocked(false)
		p.mu.Unlock()
		notify()
		return
	}

	if s.remaining > 0 {
		s.remaining--
	}
	wasPlaying := p.clip.IsPlaying()
	p.clip.Seek(s.start)
	started := p.clip.Play()

	// Advance by exactly one cycle length. Rescheduling relative to "now"
	// instead would accumulate each fire's jitter.
	s.anchor = s.anchor.Add(s.length)
	now := p.clock.Now()
	delay := s.anchor.Add(s.length).Sub(now)
	if delay < 0 {
		delay = 0
	}
	p.armTimerLocked(delay)
	loopRestarts.Inc()
	if p.events != nil {
		p.events.LogLoopRestart(s.remaining, now.Sub(s.anchor))
	}

	var notify func()
	if !wasPlaying && started {
		notify = p.notifyLocked(true)
	}
	p.mu.Unlock()
	if notify != nil {
		notify()
	}
}

// handleFinished forwards the primitive's natural-completion callback. It
// fires only for true whole-file completion; segment cycles end by timer.
func (p *SegmentPlayer) handleFinished() {
	p.mu.Lock()
	if p.state != StatePlayingWhole {
		p.mu.Unlock()
		return
	}
	p.state = StateStopped
	stateFn := p.onStateChange
	finFn := p.onFinished
	ev := p.events
	p.mu.Unlock()

	if ev != nil {
		ev.LogStateChange(false)
	}
	if stateFn != nil {
		stateFn(false)
	}
	if finFn != nil {
		finFn()
	}
}

func (p *SegmentPlayer) armTimerLocked(d time.Duration) {
	gen := p.generation
	p.timer = p.clock.AfterFunc(d, func() { p.onCycleEnd(gen) })
}

func (p *SegmentPlayer) cancelTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.generation++
}

// notifyLocked prepares the state-change notification. The returned func
// must be called after the lock is released so observers can call back in.
func (p *SegmentPlayer) notifyLocked(playing bool) func() {
	fn := p.onStateChange
	ev := p.events
	return func() {
		if ev != nil {
			ev.LogStateChange(playing)
		}
		if fn != nil {
			fn(playing)
		}
	}
}

func clampDur(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
