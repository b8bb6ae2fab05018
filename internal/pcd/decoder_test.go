package pcd

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func binaryHeader(fields string, typ string, size int, points int) string {
	return "VERSION .7\n" +
		"FIELDS " + fields + "\n" +
		"SIZE " + strconv.Itoa(size) + "\n" +
		"TYPE " + typ + "\n" +
		"WIDTH " + strconv.Itoa(points) + "\n" +
		"HEIGHT 1\n" +
		"POINTS " + strconv.Itoa(points) + "\n" +
		"DATA binary\n"
}

func TestDecode_ASCIIScenario(t *testing.T) {
	t.Parallel()

	in := "FIELDS x y z\n" +
		"SIZE 4\n" +
		"TYPE F\n" +
		"WIDTH 2\n" +
		"HEIGHT 1\n" +
		"VIEWPOINT 0 0 0 1 0 0 0\n" +
		"POINTS 2\n" +
		"DATA ascii\n" +
		"1.00000000 2.00000000 3.00000000\n4.00000000 5.00000000 6.00000000\n"

	h, table, err := Decode(strings.NewReader(in), DecodeOptions{})
	require.NoError(t, err)

	assert.Equal(t, LayoutXYZ, h.Layout)
	assert.Equal(t, 2, h.PointCount)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 3, table.Cols())
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, table.Rows())
}

func TestDecode_ASCIIKeepsSinglePrecision(t *testing.T) {
	t.Parallel()

	in := binaryHeader("x y z", "F", 4, 1)
	in = strings.Replace(in, "DATA binary", "DATA ascii", 1) + "0.1 0.2 0.3\n"

	_, table, err := Decode(strings.NewReader(in), DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, float64(float32(0.1)), table.At(0, 0))
	assert.NotEqual(t, 0.1, table.At(0, 0))
}

func TestDecode_ASCIIBlankLinesAndTrailingRows(t *testing.T) {
	t.Parallel()

	in := strings.Replace(binaryHeader("x y z", "I", 2, 2), "DATA binary", "DATA ascii", 1) +
		"\n-1 2 -3\n\n  4\t5 6  \n7 8 9\n"

	_, table, err := Decode(strings.NewReader(in), DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, Int16, table.ElementType())
	assert.Equal(t, [][]float64{{-1, 2, -3}, {4, 5, 6}}, table.Rows())
}

func TestDecode_ASCIIFormatErrors(t *testing.T) {
	t.Parallel()

	header := strings.Replace(binaryHeader("x y z", "U", 1, 2), "DATA binary", "DATA ascii", 1)

	tests := []struct {
		name string
		body string
		line int
	}{
		{"short body", "1 2 3\n", 9},
		{"empty body", "", 0},
		{"missing column", "1 2 3\n4 5\n", 10},
		{"extra column", "1 2 3 4\n", 9},
		{"not a number", "1 2 3\n4 five 6\n", 10},
		{"out of range", "1 2 3\n4 256 6\n", 10},
		{"negative unsigned", "-1 2 3\n", 9},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Decode(strings.NewReader(header+tt.body), DecodeOptions{})
			require.Error(t, err)
			var formatErr *FormatError
			require.True(t, errors.As(err, &formatErr), "expected format error, got %v", err)
			assert.Equal(t, tt.line, formatErr.Line)
		})
	}
}

func TestDecode_BinaryTypes(t *testing.T) {
	t.Parallel()

	t.Run("uint8 xyzi", func(t *testing.T) {
		t.Parallel()
		body := []byte{1, 2, 3, 255, 4, 5, 6, 0}
		in := binaryHeader("x y z intensity", "U", 1, 2) + string(body)
		h, table, err := Decode(strings.NewReader(in), DecodeOptions{})
		require.NoError(t, err)
		assert.Equal(t, LayoutXYZI, h.Layout)
		assert.Equal(t, [][]float64{{1, 2, 3, 255}, {4, 5, 6, 0}}, table.Rows())
	})

	t.Run("int16", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		for _, v := range []int16{-1, 300, -32768} {
			require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
		}
		in := binaryHeader("x y z", "I", 2, 1) + buf.String()
		_, table, err := Decode(strings.NewReader(in), DecodeOptions{})
		require.NoError(t, err)
		assert.Equal(t, []float64{-1, 300, -32768}, table.Row(0))
	})

	t.Run("uint32", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		for _, v := range []uint32{0, 1, math.MaxUint32} {
			require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
		}
		in := binaryHeader("x y z", "U", 4, 1) + buf.String()
		_, table, err := Decode(strings.NewReader(in), DecodeOptions{})
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1, math.MaxUint32}, table.Row(0))
	})

	t.Run("float64", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		for _, v := range []float64{0.1, -2.5, 1e300} {
			require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
		}
		in := binaryHeader("x y z", "F", 8, 1) + buf.String()
		_, table, err := Decode(strings.NewReader(in), DecodeOptions{})
		require.NoError(t, err)
		assert.Equal(t, Float64, table.ElementType())
		assert.Equal(t, []float64{0.1, -2.5, 1e300}, table.Row(0))
	})
}

func TestDecode_BinaryTrailingBytesIgnored(t *testing.T) {
	t.Parallel()

	in := binaryHeader("x y z", "U", 1, 1) + string([]byte{7, 8, 9, 10, 11})
	_, table, err := Decode(strings.NewReader(in), DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{7, 8, 9}}, table.Rows())
}

func TestDecode_BinaryTruncated(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	for _, v := range []float32{1, 2, 3, 4, 5} {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, v))
	}
	in := binaryHeader("x y z", "F", 4, 2) + buf.String()

	_, _, err := Decode(strings.NewReader(in), DecodeOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)

	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	header := binaryHeader("x y z", "F", 4, 2)
	assert.Equal(t, int64(len(header)+20), formatErr.Offset)
	assert.False(t, formatErr.Body)
	assert.Contains(t, err.Error(), "20 of 24 bytes")
}

func TestDecodePoints_BodyRelativePositions(t *testing.T) {
	t.Parallel()

	h := Header{Layout: LayoutXYZ, ElementType: Uint8, PointCount: 2}

	t.Run("ascii", func(t *testing.T) {
		t.Parallel()
		h := h
		h.Storage = StorageASCII
		_, err := DecodePoints(strings.NewReader("1 2 3\n4 x 6\n"), h)
		var formatErr *FormatError
		require.True(t, errors.As(err, &formatErr))
		assert.True(t, formatErr.Body)
		assert.Equal(t, 2, formatErr.Line)
		assert.Contains(t, err.Error(), "pcd: body line 2:")
	})

	t.Run("binary", func(t *testing.T) {
		t.Parallel()
		h := h
		h.Storage = StorageBinary
		_, err := DecodePoints(bytes.NewReader([]byte{1, 2, 3, 4}), h)
		var formatErr *FormatError
		require.True(t, errors.As(err, &formatErr))
		assert.True(t, formatErr.Body)
		assert.Equal(t, int64(4), formatErr.Offset)
		assert.Contains(t, err.Error(), "pcd: body byte offset 4:")
	})
}

func TestDecode_ErrorLineCountsHeaderLines(t *testing.T) {
	t.Parallel()

	in := "# comment\nFIELDS x y z\nSIZE 4 4 4\nTYPE F F F\nWIDTH 2\nPOINTS 2\nDATA ascii\n1 2 3\n4 oops 6\n"
	_, _, err := Decode(strings.NewReader(in), DecodeOptions{})
	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, 9, formatErr.Line)
	assert.Contains(t, err.Error(), "pcd: line 9:")
}

func TestDecode_BinaryEmptyBody(t *testing.T) {
	t.Parallel()

	_, _, err := Decode(strings.NewReader(binaryHeader("x y z", "F", 4, 1)), DecodeOptions{})
	assert.ErrorIs(t, err, ErrFormat)

	_, table, err := Decode(strings.NewReader(binaryHeader("x y z", "F", 4, 0)), DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, 3, table.Cols())
}

func TestDecode_IntensityPositionsView(t *testing.T) {
	t.Parallel()

	in := strings.Replace(binaryHeader("x y z intensity", "F", 4, 2), "DATA binary", "DATA ascii", 1) +
		"1 2 3 10\n4 5 6 20\n"

	_, table, err := Decode(strings.NewReader(in), DecodeOptions{})
	require.NoError(t, err)

	positions := table.Positions()
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, positions.Rows())
	assert.Equal(t, 4, table.Cols())
	assert.Equal(t, [][]float64{{1, 2, 3, 10}, {4, 5, 6, 20}}, table.Rows())
}
