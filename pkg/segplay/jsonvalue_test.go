package segplay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeKinds(t *testing.T) {
	var testdata = []struct {
		doc  string
		kind Kind
	}{
		{`null`, KindNull},
		{`true`, KindBool},
		{`false`, KindBool},
		{`0`, KindNumber},
		{`-12.5`, KindNumber},
		{`1e3`, KindNumber},
		{`""`, KindString},
		{`"true"`, KindString},
		{`[]`, KindArray},
		{`[1,2,3]`, KindArray},
		{`{}`, KindObject},
		{`{"a":null}`, KindObject},
	}
	for _, elem := range testdata {
		v, err := Decode([]byte(elem.doc))
		require.NoError(t, err, elem.doc)
		assert.Equal(t, elem.kind, v.Kind(), elem.doc)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, doc := range []string{``, `{`, `[1,`, `tru`, `"unterminated`} {
		_, err := Decode([]byte(doc))
		assert.Error(t, err, doc)
	}
}

// Round-trip stability: decode(encode(decode(D))) == decode(D)
func TestRoundTrip(t *testing.T) {
	var testdata = []string{
		`null`,
		`true`,
		`3.5`,
		`"hello"`,
		`[1,"two",false,null,[],{}]`,
		`{"schema":1,"id":"x","nested":{"deep":[{"a":1},{"b":[null,true]}]}}`,
		`{"int":42,"float":42.5}`,
	}
	for _, doc := range testdata {
		first, err := Decode([]byte(doc))
		require.NoError(t, err, doc)

		encoded, err := json.Marshal(first)
		require.NoError(t, err, doc)

		second, err := Decode(encoded)
		require.NoError(t, err, doc)
		assert.True(t, first.Equal(second), "round trip of %s: %s != %s", doc, first, second)
	}
}

// Integer literals are observed as floating point after decoding
func TestNumbersAreFloat(t *testing.T) {
	v, err := Decode([]byte(`{"n":7}`))
	require.NoError(t, err)
	n, ok := v.Get("n").NumberValue()
	require.True(t, ok)
	assert.Equal(t, 7.0, n)
}

func TestObjectAccess(t *testing.T) {
	v, err := Decode([]byte(`{"a":1,"b":"x"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, v.Keys())
	assert.True(t, v.Get("missing").IsNull())
	assert.True(t, Number(1).Get("anything").IsNull())

	s, ok := v.Get("b").StringValue()
	require.True(t, ok)
	assert.Equal(t, "x", s)
}

func TestEqualDistinguishesKinds(t *testing.T) {
	assert.False(t, Null().Equal(Bool(false)))
	assert.False(t, Number(0).Equal(String("0")))
	assert.False(t, Array().Equal(Object(nil)))
	assert.True(t, Array(Number(1)).Equal(Array(Number(1))))
	assert.False(t, Array(Number(1)).Equal(Array(Number(2))))
}

type fixtureMeta struct {
	Gain float64  `json:"gain"`
	Tags []string `json:"tags"`
}

func TestAsDecodesSubtree(t *testing.T) {
	v, err := Decode([]byte(`{"metadata":{"gain":0.5,"tags":["a","b"],"extra":true}}`))
	require.NoError(t, err)

	meta, err := As[fixtureMeta](v.Get("metadata"))
	require.NoError(t, err)
	assert.Equal(t, 0.5, meta.Gain)
	assert.Equal(t, []string{"a", "b"}, meta.Tags)
}

func TestAsWrongKind(t *testing.T) {
	v, err := Decode([]byte(`{"gain":"loud"}`))
	require.NoError(t, err)

	_, err = As[fixtureMeta](v)
	assert.Error(t, err)
}

func TestAsValidates(t *testing.T) {
	v, err := Decode([]byte(`{"schema":1,"items":[]}`))
	require.NoError(t, err)

	// missing required id field
	_, err = As[Catalog](v)
	assert.Error(t, err)

	v, err = Decode([]byte(`{"schema":1,"id":"main","items":[],"unknown":"ignored"}`))
	require.NoError(t, err)
	cat, err := As[Catalog](v)
	require.NoError(t, err)
	assert.Equal(t, "main", cat.ID)
}
