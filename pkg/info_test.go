package pkg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ecopia-map/pcd_codec/internal/options"
	"github.com/ecopia-map/pcd_codec/internal/pcd"
	"github.com/ecopia-map/pcd_codec/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRaw(path, content string) error {
	return os.WriteFile(path, []byte(content), 0666)
}

func TestInfo_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cloud.pcd")
	writeTestCloud(t, path, [][]float64{{0, 0, 0, 1}, {2, 4, 6, 3}}, pcd.StorageASCII)

	var out bytes.Buffer
	err := NewInfo(tools.NewStandardFileFinder(), &out).Run(&options.Options{Input: path})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "file:      "+path)
	assert.Contains(t, text, "fields:    XYZI (float32)")
	assert.Contains(t, text, "size:      2 x 1")
	assert.Contains(t, text, "data:      ASCII")
	assert.Contains(t, text, "points: 2")
	assert.Contains(t, text, "mean:   [1 2 3 2]")
}

func TestInfo_EmptyCloud(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pcd")
	require.NoError(t, writeRaw(path, "FIELDS x y z\nSIZE 4 4 4\nTYPE F F F\nPOINTS 0\nDATA ascii\n"))

	var out bytes.Buffer
	require.NoError(t, NewInfo(tools.NewStandardFileFinder(), &out).Run(&options.Options{Input: path}))
	assert.Contains(t, out.String(), "points: 0")
}

func TestInfo_StrictHeader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "extra.pcd")
	require.NoError(t, writeRaw(path, "FIELDS x y z\nSIZE 4 4 4\nTYPE F F F\nCOLOR red\nPOINTS 1\nDATA ascii\n1 2 3\n"))

	var out bytes.Buffer
	runner := NewInfo(tools.NewStandardFileFinder(), &out)
	require.NoError(t, runner.Run(&options.Options{Input: path}))

	err := runner.Run(&options.Options{Input: path, StrictHeader: true})
	assert.ErrorIs(t, err, pcd.ErrFormat)
}
