package segplay

import "time"

// Device decodes raw source bytes into a playable Clip. Decoding is
// synchronous and bounded by file size; only local assets are supported.
type Device interface {
	Load(data []byte) (Clip, error)
}

// Clip is the audio-output primitive the player drives. Its own
// playing/paused flags are a cache of the player's state, not a second
// source of truth.
type Clip interface {
	Duration() time.Duration
	// Play starts or resumes output. Reports false when the output device
	// rejects the request.
	Play() bool
	Pause()
	Stop()
	Seek(pos time.Duration)
	Position() time.Duration
	IsPlaying() bool
	Volume() float64
	SetVolume(v float64)
	// LoopCount is the whole-file loop counter: 0 plays once, n plays n
	// extra times, negative loops forever. Segment looping never uses it.
	LoopCount() int
	SetLoopCount(n int)
	// OnFinished registers the natural-completion callback, invoked once
	// per whole-file playthrough.
	OnFinished(fn func())
	Close() error
}
