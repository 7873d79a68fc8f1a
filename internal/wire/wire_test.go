package wire

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalSortsKeys(t *testing.T) {
	got, err := Marshal(map[string]any{
		"zebra": int64(1),
		"apple": int64(2),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"apple":2,"zebra":1}`, string(got))
}

func TestMarshalUTF16KeyOrder(t *testing.T) {
	// Uppercase sorts before lowercase in UTF-16 code unit order.
	got, err := Marshal(map[string]any{
		"a":  int64(1),
		"A":  int64(2),
		"AA": int64(3),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"A":2,"AA":3,"a":1}`, string(got))
}

func TestMarshalDoesNotEscapeHTML(t *testing.T) {
	got, err := Marshal(map[string]any{
		"text": "<p>fry <em>loves</em> pearl</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"text":"<p>fry <em>loves</em> pearl</p>"}`, string(got))
}

func TestMarshalRunToTags(t *testing.T) {
	got, err := Marshal(map[string][]string{
		"leela": {"message", "vector"},
		"fry":   {"message"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"fry":["message"],"leela":["message","vector"]}`, string(got))
}

func TestMarshalFloats(t *testing.T) {
	cases := map[float64]string{
		0:              "0",
		1.5:            "1.5",
		1700000000.25:  "1700000000.25",
		-2.5:           "-2.5",
		0.000000002:    "2e-9",
	}
	for in, want := range cases {
		got, err := Marshal(in)
		require.NoError(t, err)
		assert.Equal(t, want, string(got), "%v", in)
	}
}

func TestMarshalControlCharsAndUnicode(t *testing.T) {
	got, err := Marshal("line1\nline2\ttab  💩")
	require.NoError(t, err)
	assert.Equal(t, `"line1\nline2\ttab  💩"`, string(got))

	// Output must remain parseable by a standard decoder.
	var back string
	require.NoError(t, json.Unmarshal(got, &back))
	assert.Equal(t, "line1\nline2\ttab  💩", back)
}

func TestMarshalRecordsArray(t *testing.T) {
	records := []any{
		map[string]any{"step": int64(0), "wall_time": 100.5, "text": "<p>a</p>"},
		map[string]any{"step": int64(1), "wall_time": 101.5, "text": "<p>b</p>"},
	}
	got, err := Marshal(records)
	require.NoError(t, err)
	assert.Equal(t,
		`[{"step":0,"text":"<p>a</p>","wall_time":100.5},{"step":1,"text":"<p>b</p>","wall_time":101.5}]`,
		string(got))
}

func TestMarshalRejectsUnsupported(t *testing.T) {
	_, err := Marshal(struct{}{})
	assert.Error(t, err)

	_, err = Marshal(map[string]any{"f": math.Inf(1)})
	assert.Error(t, err)
}
