package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// run runs the app and returns stdout and the exit status.
func run(t *testing.T, args ...string) (string, int) {
	t.Helper()

	code := 0
	exiter := cli.OsExiter
	cli.OsExiter = func(c int) { code = c }
	defer func() { cli.OsExiter = exiter }()

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	app := newApp(stdout, stderr)
	_ = app.Run(arguments(args))

	return stdout.String(), code
}

func writeFile(t *testing.T, dir, name string, b []byte) string {
	t.Helper()
	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, b, 0o644))
	return file
}

func TestToolArguments(t *testing.T) {
	out, code := run(t, "ebf", "ebfEcho")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Usage: ebfEcho file1 file2\n", out)

	out, code = run(t, "ebf", "ebcComp", "a")
	assert.Equal(t, 1, code)
	assert.Equal(t, "ERROR: Bad Arguments\n", out)

	out, code = run(t, "ebf", "ebu2ebc", "a", "b", "c")
	assert.Equal(t, 1, code)
	assert.Equal(t, "ERROR: Bad Arguments\n", out)
}

func TestToolRun(t *testing.T) {
	dir := t.TempDir()

	in := writeFile(t, dir, "in.ebf", []byte("eb\n1 2\n0 31"))
	out := filepath.Join(dir, "out.ebf")

	stdout, code := run(t, "ebf", "ebfEcho", in, out)
	assert.Equal(t, 0, code)
	assert.Equal(t, "ECHOED\n", stdout)

	stdout, code = run(t, "ebf", "ebfComp", in, out)
	assert.Equal(t, 0, code)
	assert.Equal(t, "IDENTICAL\n", stdout)

	stdout, code = run(t, "ebf", "ebf2ebu", in, filepath.Join(dir, "out.ebu"))
	assert.Equal(t, 0, code)
	assert.Equal(t, "CONVERTED\n", stdout)
}

func TestToolErrors(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.ebf")
	stdout, code := run(t, "ebf", "ebfEcho", missing, filepath.Join(dir, "out.ebf"))
	assert.Equal(t, 2, code)
	assert.Equal(t, "ERROR: Bad File Name ("+missing+")\n", stdout)

	wrong := writeFile(t, dir, "wrong.ebf", []byte("eu\n1 1\n\x00"))
	stdout, code = run(t, "ebf", "ebfEcho", wrong, filepath.Join(dir, "out.ebf"))
	assert.Equal(t, 3, code)
	assert.Equal(t, "ERROR: Bad Magic Number ("+wrong+")\n", stdout)

	dim := writeFile(t, dir, "dim.ebf", []byte("eb\n262145 1\n0"))
	_, code = run(t, "ebf", "ebfComp", dim, dim)
	assert.Equal(t, 4, code)

	data := writeFile(t, dir, "data.ebf", []byte("eb\n1 1\n0 1"))
	_, code = run(t, "ebf", "ebfEcho", data, filepath.Join(dir, "out.ebf"))
	assert.Equal(t, 6, code)
}

func TestMultiCall(t *testing.T) {
	assert.Equal(t, []string{"/usr/bin/ebcEcho", "ebcEcho", "a", "b"}, arguments([]string{"/usr/bin/ebcEcho", "a", "b"}))
	assert.Equal(t, []string{"ebf", "scan", "dir"}, arguments([]string{"ebf", "scan", "dir"}))

	out, code := run(t, "/usr/local/bin/ebuComp")
	assert.Equal(t, 0, code)
	assert.Equal(t, "Usage: ebuComp file1 file2\n", out)
}

func TestScanAndFind(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(t.TempDir(), "catalog.db")

	a := writeFile(t, dir, "a.ebc", append([]byte("ec\n1 2\n"), 0, 31))
	writeFile(t, dir, "b.ebc", append([]byte("ec\n1 2\n"), 31, 0))

	_, code := run(t, "ebf", "--db", db, "scan", dir)
	require.Equal(t, 0, code)

	stdout, code := run(t, "ebf", "--db", db, "find", a)
	assert.Equal(t, 0, code)
	assert.Equal(t, a+"\n", stdout)
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "config.toml", []byte("max_pixels = 1\n"))
	in := writeFile(t, dir, "in.ebu", append([]byte("eu\n1 2\n"), 0, 1))

	stdout, code := run(t, "ebf", "--config", config, "ebuEcho", in, filepath.Join(dir, "out.ebu"))
	assert.Equal(t, 5, code)
	assert.Equal(t, "ERROR: Image Malloc Failed\n", stdout)
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "a.ebu", append([]byte("eu\n2 3\n"), 0, 1, 2, 3, 4, 5))

	stdout, code := run(t, "ebf", "info", in)
	assert.Equal(t, 0, code)
	assert.Equal(t, "ebu 2 3\n", stdout)

	bad := writeFile(t, dir, "b.ebu", []byte("zz\n1 1\n\x00"))
	stdout, code = run(t, "ebf", "info", bad)
	assert.Equal(t, 3, code)
	assert.Equal(t, "ERROR: Bad Magic Number ("+bad+")\n", stdout)
}
