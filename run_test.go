package ebf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MuhammadImtananWali/ebf/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ebcScenario = []byte{0x65, 0x63, 0x0a, 0x32, 0x20, 0x32, 0x0a, 0x00, 0x1f, 0x1f, 0x00}

func mustTool(t *testing.T, name string) Tool {
	t.Helper()
	tool, ok := LookupTool(name)
	require.True(t, ok, name)
	return tool
}

func TestRunEcho(t *testing.T) {
	dir := t.TempDir()
	e := newTestEBF(t, nil)

	tests := map[string]struct {
		tool  string
		input []byte
	}{
		"ebf": {
			tool:  "ebfEcho",
			input: []byte("eb\n2 3\n0 1 2\n3 4 31"),
		},
		"ebc": {
			tool:  "ebcEcho",
			input: ebcScenario,
		},
	}

	for name, table := range tests {
		t.Run(name, func(t *testing.T) {
			in := writeFile(t, dir, name+".in", table.input)
			out := filepath.Join(dir, name+".out")

			status, err := e.Run(mustTool(t, table.tool), in, out)
			require.NoError(t, err)
			assert.Equal(t, StatusEchoed, status)
			assert.Equal(t, table.input, readFile(t, out))
		})
	}
}

func TestRunEchoEBU(t *testing.T) {
	dir := t.TempDir()
	e := newTestEBF(t, nil)

	in := writeFile(t, dir, "in.ebu", append([]byte("eu\n1 3\n"), 3, 10, 31))
	out := filepath.Join(dir, "out.ebu")

	status, err := e.Run(mustTool(t, "ebuEcho"), in, out)
	require.NoError(t, err)
	assert.Equal(t, StatusEchoed, status)

	// The copy keeps the packed body but carries the "eb" tag
	assert.Equal(t, append([]byte("eb\n1 3\n"), 3, 10, 31), readFile(t, out))

	// so it is rejected by the ebu tools
	_, err = e.Run(mustTool(t, "ebuComp"), out, in)
	assert.Equal(t, BadMagicNumber, ExitStatus(err))
}

func TestRunConvert(t *testing.T) {
	dir := t.TempDir()
	e := newTestEBF(t, nil)

	tests := map[string]struct {
		tool  string
		input []byte
		want  []byte
	}{
		"ebf2ebu": {
			tool:  "ebf2ebu",
			input: []byte("eb\n2 2\n0 31\n31 0"),
			want:  append([]byte("eu\n2 2\n"), 0, 31, 31, 0),
		},
		"ebu2ebf": {
			tool:  "ebu2ebf",
			input: append([]byte("eu\n2 3\n"), 0, 1, 2, 3, 4, 5),
			want:  []byte("eb\n2 3\n1 2 3\n4 5 3"),
		},
		"ebu2ebc": {
			tool:  "ebu2ebc",
			input: append([]byte("eu\n1 2\n"), 0, 31),
			want:  append([]byte("ec\n1 2\n"), 255, 224),
		},
		"ebc2ebu": {
			tool:  "ebc2ebu",
			input: append([]byte("ec\n1 2\n"), 1, 30),
			want:  append([]byte("eu\n1 2\n"), 254, 225),
		},
	}

	for name, table := range tests {
		t.Run(name, func(t *testing.T) {
			in := writeFile(t, dir, name+".in", table.input)
			out := filepath.Join(dir, name+".out")

			status, err := e.Run(mustTool(t, table.tool), in, out)
			require.NoError(t, err)
			assert.Equal(t, StatusConverted, status)
			assert.Equal(t, table.want, readFile(t, out))
		})
	}
}

func TestRunCompare(t *testing.T) {
	dir := t.TempDir()
	e := newTestEBF(t, nil)

	a := writeFile(t, dir, "a.ebf", []byte("eb\n2 2\n0 1\n2 3"))
	b := writeFile(t, dir, "b.ebf", []byte("eb 2\n2 0 1 2 3\n"))
	c := writeFile(t, dir, "c.ebf", []byte("eb\n2 2\n0 1\n2 4"))
	d := writeFile(t, dir, "d.ebf", []byte("eb\n1 4\n0 1 2 3"))

	tool := mustTool(t, "ebfComp")

	status, err := e.Run(tool, a, b)
	require.NoError(t, err)
	assert.Equal(t, "IDENTICAL", status)

	status, err = e.Run(tool, a, c)
	require.NoError(t, err)
	assert.Equal(t, "DIFFERENT", status)

	status, err = e.Run(tool, a, d)
	require.NoError(t, err)
	assert.Equal(t, "DIFFERENT", status)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	e := newTestEBF(t, nil)

	good := writeFile(t, dir, "good.ebc", ebcScenario)

	tests := map[string]struct {
		tool   string
		file1  string
		file2  string
		status int
		path   string
	}{
		"missing input": {
			tool:   "ebcEcho",
			file1:  filepath.Join(dir, "missing.ebc"),
			file2:  filepath.Join(dir, "out.ebc"),
			status: BadFile,
			path:   filepath.Join(dir, "missing.ebc"),
		},
		"bad magic": {
			tool:   "ebuEcho",
			file1:  good,
			file2:  filepath.Join(dir, "out.ebu"),
			status: BadMagicNumber,
			path:   good,
		},
		"bad dimensions": {
			tool:   "ebfEcho",
			file1:  writeFile(t, dir, "dim.ebf", []byte("eb\n0 0\n")),
			file2:  filepath.Join(dir, "out.ebf"),
			status: BadDim,
			path:   filepath.Join(dir, "dim.ebf"),
		},
		"bad data": {
			tool:   "ebfComp",
			file1:  writeFile(t, dir, "data.ebf", []byte("eb\n1 1\n32")),
			file2:  good,
			status: BadData,
			path:   filepath.Join(dir, "data.ebf"),
		},
		"second file bad": {
			tool:   "ebcComp",
			file1:  good,
			file2:  writeFile(t, dir, "short.ebc", []byte("ec\n2 2\n\x00")),
			status: BadData,
			path:   filepath.Join(dir, "short.ebc"),
		},
		"unwritable output": {
			tool:   "ebcEcho",
			file1:  good,
			file2:  filepath.Join(dir, "no", "such", "dir.ebc"),
			status: BadFile,
			path:   filepath.Join(dir, "no", "such", "dir.ebc"),
		},
	}

	for name, table := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := e.Run(mustTool(t, table.tool), table.file1, table.file2)
			require.Error(t, err)
			assert.Equal(t, table.status, ExitStatus(err))

			var fe *FileError
			if assert.ErrorAs(t, err, &fe) {
				assert.Equal(t, table.path, fe.Path)
			}
		})
	}
}

func TestConvertFileSkipsOutputOnBadInput(t *testing.T) {
	dir := t.TempDir()
	e := newTestEBF(t, nil)

	in := writeFile(t, dir, "bad.ebf", []byte("eb\n1 2\n0 99"))
	out := filepath.Join(dir, "out.ebu")

	err := e.ConvertFile(raster.EBF, raster.EBU, nil, in, out)
	assert.Equal(t, BadData, ExitStatus(err))

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestRunAllocationLimit(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.MaxPixels = 3
	e := New(cfg, nil, newTestEBF(t, nil).logger)

	in := writeFile(t, dir, "big.ebu", append([]byte("eu\n2 2\n"), 0, 0, 0, 0))

	_, err := e.Run(mustTool(t, "ebuEcho"), in, filepath.Join(dir, "out.ebu"))
	assert.Equal(t, BadMalloc, ExitStatus(err))
	assert.Equal(t, "ERROR: Image Malloc Failed", Diagnostic(err))
}

func TestTools(t *testing.T) {
	assert.Len(t, Tools, 10)

	tool := mustTool(t, "ebu2ebf")
	assert.Equal(t, "Usage: ebu2ebf file1 file2", tool.Usage())
	assert.Equal(t, "Convert an ebu file to ebf", tool.Description())

	_, ok := LookupTool("ebfEcho2")
	assert.False(t, ok)
}
