package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestWriteAndShow(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	root := t.TempDir()

	for _, msg := range []string{"one", "two", "three"} {
		_, err := run(t, "--root", root, "--name", "cli", "--limit", "2", "write", "warn", msg, "more")
		require.NoError(t, err)
	}

	out, err := run(t, "--root", root, "--name", "cli", "show")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(strings.HasSuffix(lines[0], "[WARN] : two more "), lines[0])
	assert.True(strings.HasSuffix(lines[1], "[WARN] : three more "), lines[1])

	out, err = run(t, "--root", root, "--name", "cli", "path")
	require.NoError(t, err)
	assert.Equal(filepath.Join(root, "cli.log")+"\n", out)

	_, err = run(t, "--root", root, "write", "fatal", "boom")
	assert.Error(err)
}

func TestBurst(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	root := t.TempDir()

	_, err := run(t, "--root", root, "--limit", "50", "burst", "--workers", "4", "--count", "25")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "Application.log"))
	require.NoError(t, err)
	assert.Equal(50, bytes.Count(data, []byte("\n")))
}

func TestConfigFile(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	root := t.TempDir()
	file := filepath.Join(root, "linelog.yaml")
	require.NoError(t, os.WriteFile(file, []byte("file_name: fromfile\ntime_pattern: yyyy\n"), 0o600))

	_, err := run(t, "--root", root, "--config", file, "write", "info", "hi")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "fromfile.log"))
	require.NoError(t, err)
	assert.Regexp(`^\d{4} \[INFO\] : hi \n$`, string(data))
}
