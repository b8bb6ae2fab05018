package pcd

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const headerComment = "# .PCD v.7 - Point Cloud Data file format"

// asciiFractionDigits is the number of digits written after the decimal point.
const asciiFractionDigits = 8

// Field declarations written for each layout. Fields are always written as
// 4-byte floats whatever the element type of the source table.
var layoutTemplates = map[FieldLayout][]string{
	LayoutXYZ: {
		"FIELDS x y z",
		"SIZE 4 4 4",
		"TYPE F F F",
		"COUNT 1 1 1",
	},
	LayoutXYZI: {
		"FIELDS x y z intensity",
		"SIZE 4 4 4 4",
		"TYPE F F F F",
		"COUNT 1 1 1 1",
	},
}

// Encode writes h and the full table t to w using the given storage mode.
// Arguments are validated before anything is written.
func Encode(w io.Writer, h Header, t *PointTable, storage StorageMode) error {
	if err := validateEncodeArgs(h, t, storage); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	writeHeader(bw, h, storage)

	var err error
	if storage == StorageASCII {
		err = writeASCIIPoints(bw, t)
	} else {
		err = writeBinaryPoints(bw, t)
	}
	if err != nil {
		return &IOError{Op: "write points", Err: err}
	}
	if err := bw.Flush(); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

func validateEncodeArgs(h Header, t *PointTable, storage StorageMode) error {
	if storage != StorageASCII && storage != StorageBinary {
		return &InvalidArgumentError{Msg: fmt.Sprintf("storage mode must be ASCII or BINARY, got %q", string(storage))}
	}
	if _, ok := layoutTemplates[h.Layout]; !ok {
		return &InvalidArgumentError{Msg: fmt.Sprintf("unsupported field layout %q", string(h.Layout))}
	}
	if t == nil {
		return &InvalidArgumentError{Msg: "nil point table"}
	}
	if t.Cols() != h.FieldCount() {
		return &InvalidArgumentError{Msg: fmt.Sprintf("table has %d columns, layout %s needs %d", t.Cols(), h.Layout, h.FieldCount())}
	}
	if t.Len() != h.PointCount {
		return &InvalidArgumentError{Msg: fmt.Sprintf("table has %d points, header declares %d", t.Len(), h.PointCount)}
	}
	if h.Width < 0 || h.Height < 0 {
		return &InvalidArgumentError{Msg: "negative WIDTH or HEIGHT"}
	}
	return nil
}

// writeHeader buffers the header lines; write errors surface on the final flush.
func writeHeader(w *bufio.Writer, h Header, storage StorageMode) {
	fmt.Fprintln(w, headerComment)
	fmt.Fprintln(w, "VERSION .7")
	for _, line := range layoutTemplates[h.Layout] {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "WIDTH %d\n", h.Width)
	fmt.Fprintf(w, "HEIGHT %d\n", h.Height)
	fmt.Fprintf(w, "VIEWPOINT %s\n", h.Viewpoint)
	fmt.Fprintf(w, "POINTS %d\n", h.PointCount)
	if storage == StorageASCII {
		fmt.Fprintln(w, "DATA ascii")
	} else {
		fmt.Fprintln(w, "DATA binary")
	}
}

func writeASCIIPoints(w *bufio.Writer, t *PointTable) error {
	for i := 0; i < t.Len(); i++ {
		for j := 0; j < t.Cols(); j++ {
			if j > 0 {
				if err := w.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := w.WriteString(formatFixed(t.At(i, j))); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// formatFixed rounds the exact binary value of v once to
// asciiFractionDigits digits. Negative values that round to zero keep their sign.
func formatFixed(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', asciiFractionDigits, 64)
	}
	s := decimal.NewFromFloatWithExponent(v, -asciiFractionDigits).StringFixed(asciiFractionDigits)
	if math.Signbit(v) && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return s
}

func writeBinaryPoints(w *bufio.Writer, t *PointTable) error {
	var buf [4]byte
	for _, v := range t.values {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(v)))
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return nil
}
