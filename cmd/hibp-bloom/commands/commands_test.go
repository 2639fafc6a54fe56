package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes a command with the given arguments and returns its output.
func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func filterPath(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "corpus.bf")
}

func TestCreate_InsertQuery(t *testing.T) {
	t.Parallel()

	path := filterPath(t)

	out, err := run(t, NewCreateCommand(), "-k", "5", "-b", "12", path)
	require.NoError(t, err)
	assert.Contains(t, out, "5 hash functions")

	_, err = run(t, NewInsertCommand(), path, "hunter2", "correcthorse")
	require.NoError(t, err)

	out, err = run(t, NewQueryCommand(), "--no-color", path, "hunter2", "swordfish")
	require.NoError(t, err)
	assert.Contains(t, out, "hunter2: "+verdictPresent)
	assert.Contains(t, out, "swordfish: "+verdictAbsent)
}

func TestInsertSHA_QuerySHA(t *testing.T) {
	t.Parallel()

	// SHA-1 of "abc".
	const digest = "a9993e364706816aba3e25717850c26c9cd0d89d"

	path := filterPath(t)

	_, err := run(t, NewCreateCommand(), "-k", "5", "-b", "12", path)
	require.NoError(t, err)

	_, err = run(t, NewInsertSHACommand(), path, digest)
	require.NoError(t, err)

	out, err := run(t, NewQuerySHACommand(), "--no-color", path, digest)
	require.NoError(t, err)
	assert.Contains(t, out, verdictPresent)

	// The raw string hashes to the inserted digest.
	out, err = run(t, NewQueryCommand(), "--no-color", path, "abc")
	require.NoError(t, err)
	assert.Contains(t, out, "abc: "+verdictPresent)
}

func TestInsertSHA_MalformedDigest(t *testing.T) {
	t.Parallel()

	path := filterPath(t)

	_, err := run(t, NewCreateCommand(), "-k", "5", "-b", "12", path)
	require.NoError(t, err)

	_, err = run(t, NewInsertSHACommand(), path, "not-a-digest")
	assert.Error(t, err)
}

func TestCreateFalsepos(t *testing.T) {
	t.Parallel()

	path := filterPath(t)

	out, err := run(t, NewCreateFalseposCommand(), "-n", "1000", "-p", "0.01", path)
	require.NoError(t, err)
	assert.Contains(t, out, "7 hash functions")
	assert.Contains(t, out, "2^14 bits")
}

func TestCreateMaxmem(t *testing.T) {
	t.Parallel()

	path := filterPath(t)

	out, err := run(t, NewCreateMaxmemCommand(), "-n", "1000000", "-m", "1MiB", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2^22 bits")
}

func TestFalsepos(t *testing.T) {
	t.Parallel()

	path := filterPath(t)

	_, err := run(t, NewCreateCommand(), "-k", "7", "-b", "16", path)
	require.NoError(t, err)

	out, err := run(t, NewFalseposCommand(), "--trials", "200", path)
	require.NoError(t, err)
	assert.Contains(t, out, "over 200 trials")
}

func TestSHA(t *testing.T) {
	t.Parallel()

	out, err := run(t, NewSHACommand(), "abc")
	require.NoError(t, err)
	assert.Contains(t, out, "a9993e364706816aba3e25717850c26c9cd0d89d")
}

func TestInfo(t *testing.T) {
	t.Parallel()

	path := filterPath(t)

	_, err := run(t, NewCreateCommand(), "-k", "5", "-b", "12", path)
	require.NoError(t, err)

	out, err := run(t, NewInfoCommand(), path)
	require.NoError(t, err)
	assert.Contains(t, out, "Hash functions")
	assert.Contains(t, out, "4096")
}

func TestQuery_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := run(t, NewQueryCommand(), filepath.Join(t.TempDir(), "absent.bf"), "abc")
	assert.Error(t, err)
}
