package audioout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmarren/segplay/internal/audiotest"
)

func TestProbeWav(t *testing.T) {
	data := audiotest.SineWAV(t, 8000, 250*time.Millisecond, 440)

	d, err := Probe(data)
	require.NoError(t, err)
	assert.InDelta(t, float64(250*time.Millisecond), float64(d), float64(time.Millisecond))
}

func TestProbeSilence(t *testing.T) {
	data := audiotest.SilentWAV(t, 44100, time.Second)

	d, err := Probe(data)
	require.NoError(t, err)
	assert.InDelta(t, float64(time.Second), float64(d), float64(time.Millisecond))
}

func TestProbeUnknownFormat(t *testing.T) {
	_, err := Probe([]byte("definitely not audio data"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Probe([]byte{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSniff(t *testing.T) {
	var testdata = []struct {
		name   string
		head   []byte
		expect fileFormat
	}{
		{"wav", []byte("RIFFxxxxWAVE"), formatWav},
		{"ogg", []byte("OggSxxxx"), formatVorbis},
		{"mp3 id3", []byte("ID3\x04xxxx"), formatMp3},
		{"mp3 sync", []byte{0xFF, 0xFB, 0x90, 0x00}, formatMp3},
		{"garbage", []byte("nope"), formatUnknown},
		{"short", []byte{0xFF}, formatUnknown},
	}
	for _, elem := range testdata {
		assert.Equal(t, elem.expect, sniff(elem.head), elem.name)
	}
}
