package segplay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, data, 0o644))
}

func TestBundleResolve(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "intro.wav", []byte("root-intro"))
	writeFile(t, root, "voice/intro.wav", []byte("voice-intro"))
	writeFile(t, root, "music/theme.mp3", []byte("theme"))

	b, err := OpenBundle(root, zerolog.Nop())
	require.NoError(t, err)

	// nil scope searches the root only
	data, err := b.Resolve("intro", "wav", nil)
	require.NoError(t, err)
	assert.Equal(t, "root-intro", string(data))

	// scope order wins
	data, err = b.Resolve("intro", "wav", []string{"voice", ""})
	require.NoError(t, err)
	assert.Equal(t, "voice-intro", string(data))

	data, err = b.Resolve("theme", "mp3", []string{"music"})
	require.NoError(t, err)
	assert.Equal(t, "theme", string(data))
}

func TestBundleNotFound(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "voice/intro.wav", []byte("x"))

	b, err := OpenBundle(root, zerolog.Nop())
	require.NoError(t, err)

	// unknown name
	_, err = b.Resolve("missing", "wav", nil)
	var nfe *ResourceNotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "missing", nfe.Name)

	// known name outside the requested scope
	_, err = b.Resolve("intro", "wav", []string{"music"})
	require.ErrorAs(t, err, &nfe)
}

func TestLibrary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sounds.json", []byte(`{
		"schema": 1,
		"id": "sounds",
		"scope": ["fx", ""],
		"items": [
			{"id": "blip", "file": "blip", "ext": "wav"},
			{"id": "boom", "file": "boom", "ext": "wav"}
		]
	}`))
	writeFile(t, root, "fx/blip.wav", []byte("blip-bytes"))
	writeFile(t, root, "boom.wav", []byte("boom-bytes"))

	b, err := OpenBundle(root, zerolog.Nop())
	require.NoError(t, err)

	lib := NewLibrary(b, zerolog.Nop())
	require.NoError(t, lib.AddCatalog("sounds"))
	assert.Equal(t, 2, lib.Count())

	data, err := lib.LoadResource("blip")
	require.NoError(t, err)
	assert.Equal(t, "blip-bytes", string(data))

	data, err = lib.LoadResource("boom")
	require.NoError(t, err)
	assert.Equal(t, "boom-bytes", string(data))

	_, err = lib.LoadResource("nope")
	assert.Error(t, err)

	item, ok := lib.Item("blip")
	require.True(t, ok)
	assert.Equal(t, "wav", item.Ext)
}

func TestLibraryBadCatalog(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "broken.json", []byte(`{"schema": 1, "items": []}`))

	b, err := OpenBundle(root, zerolog.Nop())
	require.NoError(t, err)

	lib := NewLibrary(b, zerolog.Nop())
	var jde *JSONDecodingError
	assert.ErrorAs(t, lib.AddCatalog("broken"), &jde)

	var nfe *ResourceNotFoundError
	assert.ErrorAs(t, lib.AddCatalog("absent"), &nfe)
}
