package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRendersSeries(t *testing.T) {
	root := writeRunFixture(t)

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"text", "--logdir", root, "fry", "message"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t,
		"step 0 (wall_time 1.5):\n<p><strong>hello</strong></p>\n\n"+
			"step 1 (wall_time 2.5):\n<p><em>bye</em></p>\n\n",
		buf.String())
}

func TestTextJSONOutput(t *testing.T) {
	root := writeRunFixture(t)

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--format", "json", "text", "--logdir", root, "fry", "message"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t,
		`[{"step":0,"text":"<p><strong>hello</strong></p>","wall_time":1.5},`+
			`{"step":1,"text":"<p><em>bye</em></p>","wall_time":2.5}]`+"\n",
		buf.String())
}

func TestTextUnknownSeries(t *testing.T) {
	root := writeRunFixture(t)

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"text", "--logdir", root, "fry", "no-such-tag"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "series not found")
}

func TestTextWrongArgCount(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"text", "--logdir", t.TempDir(), "fry"})

	require.Error(t, cmd.Execute())
}
