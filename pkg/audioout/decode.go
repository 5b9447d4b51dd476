// Package audioout implements the audio-output primitive over the beep
// speaker. Decoding is headless; actual output needs a platform backend and
// is build-tagged accordingly.
package audioout

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnknownFormat is returned for bytes that are not WAV, MP3 or Ogg Vorbis
var ErrUnknownFormat = errors.New("unknown audio format")

type fileFormat int

const (
	formatUnknown fileFormat = iota
	formatWav
	formatVorbis
	formatMp3
)

// sniff inspects the leading bytes. MP3 has no reliable magic (ID3 tag or a
// raw frame sync), so it is the fallback for anything that is not RIFF/Ogg.
func sniff(data []byte) fileFormat {
	switch {
	case len(data) < 4:
		return formatUnknown
	case bytes.HasPrefix(data, []byte("RIFF")):
		return formatWav
	case bytes.HasPrefix(data, []byte("OggS")):
		return formatVorbis
	case bytes.HasPrefix(data, []byte("ID3")) || (data[0] == 0xFF && data[1]&0xE0 == 0xE0):
		return formatMp3
	default:
		return formatUnknown
	}
}

// decode picks a decoder by content and returns the seekable PCM stream
func decode(data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	rc := nopCloser{bytes.NewReader(data)}
	switch sniff(data) {
	case formatWav:
		return wav.Decode(rc)
	case formatVorbis:
		return vorbis.Decode(rc)
	case formatMp3:
		return mp3.Decode(rc)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w (%d bytes)", ErrUnknownFormat, len(data))
	}
}

// Probe decodes the bytes just far enough to report their total duration
func Probe(data []byte) (time.Duration, error) {
	streamer, format, err := decode(data)
	if err != nil {
		return 0, err
	}
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()), nil
}

// nopCloser wraps a bytes.Reader to satisfy the decoder input contracts
type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }

var _ io.ReadCloser = nopCloser{}
