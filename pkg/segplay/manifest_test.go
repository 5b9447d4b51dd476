package segplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCatalog(t *testing.T) {
	doc := []byte(`{
		"schema": 1,
		"id": "sounds",
		"scope": ["voice", ""],
		"items": [
			{"id": "intro", "file": "intro", "ext": "wav"},
			{"id": "beep", "file": "beep01", "ext": "mp3",
			 "metadata": {"gain": 0.8, "category": "ui"}}
		],
		"futureField": {"ignored": true}
	}`)

	cat, err := DecodeCatalog("sounds", doc)
	require.NoError(t, err)
	assert.Equal(t, "sounds", cat.ID)
	assert.Equal(t, []string{"voice", ""}, cat.Scope)
	require.Len(t, cat.Items, 2)
	assert.Equal(t, "beep01", cat.Items[1].File)

	// free-form metadata stays untyped until asked for
	gain, ok := cat.Items[1].Metadata.Get("gain").NumberValue()
	require.True(t, ok)
	assert.Equal(t, 0.8, gain)
}

func TestCatalogValidation(t *testing.T) {
	var testdata = []struct {
		name string
		doc  string
	}{
		{"bad schema", `{"schema": 99, "id": "x", "items": []}`},
		{"zero schema", `{"id": "x", "items": []}`},
		{"no id", `{"schema": 1, "items": []}`},
		{"item no id", `{"schema": 1, "id": "x", "items": [{"file": "f", "ext": "wav"}]}`},
		{"item no file", `{"schema": 1, "id": "x", "items": [{"id": "a", "ext": "wav"}]}`},
		{"not json", `{"schema": `},
		{"wrong kind", `{"schema": "one", "id": "x", "items": []}`},
	}
	for _, elem := range testdata {
		_, err := DecodeCatalog(elem.name, []byte(elem.doc))
		var jde *JSONDecodingError
		assert.ErrorAs(t, err, &jde, elem.name)
	}
}

func TestPackageAndIndexValidation(t *testing.T) {
	p := Package{Schema: 1, ID: "core", Resources: []string{"a"}}
	assert.NoError(t, p.Validate())
	assert.Error(t, Package{Schema: 1}.Validate())
	assert.Error(t, Package{Schema: 2, ID: "x"}.Validate())

	x := Index{Schema: 1, Entries: []IndexEntry{{ID: "a", Package: "core"}}}
	assert.NoError(t, x.Validate())
	assert.Error(t, Index{Schema: 1, Entries: []IndexEntry{{ID: "a"}}}.Validate())
}
