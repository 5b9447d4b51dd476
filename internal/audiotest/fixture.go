package audiotest

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// SineWAV writes a mono 16-bit PCM sine clip and returns its bytes
func SineWAV(tb testing.TB, sampleRate int, d time.Duration, freq float64) []byte {
	tb.Helper()

	frames := int(int64(sampleRate) * int64(d) / int64(time.Second))
	data := make([]int, frames)
	for i := range data {
		t := float64(i) / float64(sampleRate)
		data[i] = int(math.Sin(2*math.Pi*freq*t) * 0.5 * 32767)
	}

	path := filepath.Join(tb.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create fixture: %v", err)
	}
	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           data,
	}
	if err := enc.Write(buf); err != nil {
		tb.Fatalf("write fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		tb.Fatalf("close fixture: %v", err)
	}
	f.Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture: %v", err)
	}
	return raw
}

// SilentWAV writes a mono 16-bit PCM silence clip and returns its bytes
func SilentWAV(tb testing.TB, sampleRate int, d time.Duration) []byte {
	tb.Helper()

	frames := int(int64(sampleRate) * int64(d) / int64(time.Second))
	path := filepath.Join(tb.TempDir(), "silence.wav")
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create fixture: %v", err)
	}
	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, frames),
	}
	if err := enc.Write(buf); err != nil {
		tb.Fatalf("write fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		tb.Fatalf("close fixture: %v", err)
	}
	f.Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture: %v", err)
	}
	return raw
}
