package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportThenQuery(t *testing.T) {
	root := writeRunFixture(t)
	dbPath := filepath.Join(t.TempDir(), "events.db")

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"import", root, "--db", dbPath})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "imported")

	// The imported store answers the same discovery query as the logdir.
	buf.Reset()
	cmd = NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--format", "json", "tags", "--db", dbPath})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, `{"fry":["message"]}`+"\n", buf.String())
}

func TestImportMissingDatabaseFlag(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"import", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
	assert.Contains(t, err.Error(), "db")
}
