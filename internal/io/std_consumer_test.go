package io

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/ecopia-map/pcd_codec/internal/converters/elevation/offset_elevation_corrector"
	"github.com/ecopia-map/pcd_codec/internal/options"
	"github.com/ecopia-map/pcd_codec/internal/pcd"
	"github.com/ecopia-map/pcd_codec/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCloud(t *testing.T, path string, rows [][]float64, storage pcd.StorageMode) {
	t.Helper()

	table, err := pcd.FromRows(pcd.Float32, rows)
	require.NoError(t, err)
	layout, ok := table.Layout()
	require.True(t, ok)
	h := pcd.NewHeader(layout, table.Len(), 1, "", table.Len())
	require.NoError(t, pcd.WriteFile(path, h, table, storage))
}

func runPool(t *testing.T, files []string, opts *options.Options, consumer Consumer) []error {
	t.Helper()

	workChannel := make(chan *WorkUnit, 4)
	errorChannel := make(chan error, len(files))
	var waitGroup sync.WaitGroup

	waitGroup.Add(2)
	go NewStandardProducer(files, opts).Produce(workChannel, &waitGroup)
	go consumer.Consume(workChannel, errorChannel, &waitGroup)
	waitGroup.Wait()
	close(errorChannel)

	var errs []error
	for err := range errorChannel {
		errs = append(errs, err)
	}
	return errs
}

func TestOutputPathFor(t *testing.T) {
	t.Parallel()

	single := &options.Options{Input: "in.pcd", ConvertOptions: &options.ConvertOptions{Output: "out.pcd"}}
	assert.Equal(t, "out.pcd", OutputPathFor("in.pcd", single))

	folder := &options.Options{
		Input:            filepath.Join("data", "in"),
		FolderProcessing: true,
		ConvertOptions:   &options.ConvertOptions{Output: "out"},
	}
	assert.Equal(t, filepath.Join("out", "sub", "a.pcd"), OutputPathFor(filepath.Join("data", "in", "sub", "a.pcd"), folder))
}

func TestStandardConsumer_Convert(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "in")
	output := filepath.Join(dir, "out")
	a := filepath.Join(input, "a.pcd")
	b := filepath.Join(input, "nested", "b.pcd")
	require.NoError(t, tools.CreateDirectoryIfDoesNotExist(filepath.Dir(b)))

	writeCloud(t, a, [][]float64{{0.1, 0.1, 0.1}, {0.2, 0.2, 0.2}, {5, 5, 5}}, pcd.StorageASCII)
	writeCloud(t, b, [][]float64{{1, 2, 3, 4}}, pcd.StorageBinary)

	opts := &options.Options{
		Input:            input,
		FolderProcessing: true,
		Storage:          pcd.StorageASCII,
		ConvertOptions:   &options.ConvertOptions{Output: output},
	}
	consumer := NewStandardConsumer(offset_elevation_corrector.NewOffsetElevationCorrector(10), nil, 1)

	errs := runPool(t, []string{a, b}, opts, consumer)
	require.Empty(t, errs)

	outA, err := pcd.ReadFile(filepath.Join(output, "a.pcd"), pcd.DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, pcd.StorageASCII, outA.Header.Storage)
	assert.Equal(t, 2, outA.Header.PointCount)
	assert.Equal(t, 2, outA.Header.Width)
	assert.Equal(t, 1, outA.Header.Height)
	assert.InDelta(t, 10.15, outA.Points.At(0, 2), 1e-5)
	assert.InDelta(t, 15, outA.Points.At(1, 2), 1e-5)

	outB, err := pcd.ReadFile(filepath.Join(output, "nested", "b.pcd"), pcd.DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, pcd.LayoutXYZI, outB.Header.Layout)
	assert.Equal(t, []float64{1, 2, 13, 4}, outB.Points.Row(0))
}

func TestStandardConsumer_KeepsSourceStorage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.pcd")
	out := filepath.Join(dir, "out.pcd")
	writeCloud(t, in, [][]float64{{1, 2, 3}}, pcd.StorageBinary)

	opts := &options.Options{Input: in, ConvertOptions: &options.ConvertOptions{Output: out}}
	errs := runPool(t, []string{in}, opts, NewStandardConsumer(nil, nil, 0))
	require.Empty(t, errs)

	cloud, err := pcd.ReadFile(out, pcd.DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, pcd.StorageBinary, cloud.Header.Storage)
	assert.Equal(t, [][]float64{{1, 2, 3}}, cloud.Points.Rows())
}

func TestStandardConsumer_ReportsErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.pcd")
	opts := &options.Options{Input: missing, ConvertOptions: &options.ConvertOptions{Output: filepath.Join(dir, "out.pcd")}}

	errs := runPool(t, []string{missing}, opts, NewStandardConsumer(nil, nil, 0))
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], pcd.ErrIO)
	assert.Contains(t, errs[0].Error(), "missing.pcd")
}
