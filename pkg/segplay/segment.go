package segplay

import (
	"strconv"
	"time"
)

// LoopSpec describes how often a segment restarts after its first play.
// LoopOnce means no restarts; LoopForever never decrements.
type LoopSpec int

const (
	LoopOnce    LoopSpec = 0
	LoopForever LoopSpec = -1
)

// LoopTimes plays the segment n extra times. Negative counts collapse to
// LoopOnce.
func LoopTimes(n int) LoopSpec {
	if n < 0 {
		return LoopOnce
	}
	return LoopSpec(n)
}

func (l LoopSpec) String() string {
	switch {
	case l < 0:
		return "forever"
	case l == 0:
		return "once"
	default:
		return "times(" + strconv.Itoa(int(l)) + ")"
	}
}

// segment is the descriptor held while a ranged play is active. It is
// replaced wholesale by each PlaySegment call, never partially mutated.
type segment struct {
	start  time.Duration
	length time.Duration
	// restarts remaining; -1 never decrements
	remaining int
	// wall-clock instant the current logical cycle began. Advanced by
	// exactly length on each restart, never by measured elapsed time.
	anchor time.Time
}

func (s *segment) infinite() bool { return s.remaining < 0 }
