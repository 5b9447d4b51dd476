package segplay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrames2Duration(t *testing.T) {
	var testdata = []struct {
		frames     int64
		sampleRate int
		expect     time.Duration
	}{
		{44100, 44100, time.Second},
		{22050, 44100, 500 * time.Millisecond},
		{48, 48000, time.Millisecond},
		{0, 44100, 0},
	}
	for _, elem := range testdata {
		assert.Equal(t, elem.expect, Frames2Duration(elem.frames, elem.sampleRate))
	}
}

func TestDuration2Frames(t *testing.T) {
	var testdata = []struct {
		duration   time.Duration
		sampleRate int
		expect     int64
	}{
		{time.Second, 44100, 44100},
		{time.Millisecond, 48000, 48},
		{time.Second + time.Millisecond, 1000, 1001},
		{-time.Second, 8000, -8000},
	}
	for _, elem := range testdata {
		assert.Equal(t, elem.expect, Duration2Frames(elem.duration, elem.sampleRate))
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 120*time.Millisecond, Round(123*time.Millisecond))
	assert.Equal(t, time.Second, RoundTo(1700*time.Millisecond, time.Second))
}
