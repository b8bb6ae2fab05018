package pcd

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
)

const maxPreallocatedPoints = 1 << 20

// DecodePoints reads the point section described by h from r. Positions in
// the returned FormatError are relative to the start of r and flagged Body.
func DecodePoints(r io.Reader, h Header) (*PointTable, error) {
	table, err := decodePoints(r, h)
	var formatErr *FormatError
	if errors.As(err, &formatErr) {
		formatErr.Body = true
	}
	return table, err
}

func decodePoints(r io.Reader, h Header) (*PointTable, error) {
	if h.FieldCount() == 0 {
		return nil, newLineError(0, "unsupported field layout %q", h.Layout)
	}
	if !h.ElementType.Valid() {
		return nil, newLineError(0, "unsupported element type")
	}

	switch h.Storage {
	case StorageASCII:
		return decodeASCII(r, h)
	case StorageBinary:
		return decodeBinary(r, h)
	}
	return nil, newLineError(0, "unsupported DATA storage mode %q", h.Storage)
}

// Decode parses a complete PCD stream. Error positions count from the start
// of the stream.
func Decode(r io.Reader, opts DecodeOptions) (Header, *PointTable, error) {
	br := bufio.NewReader(r)
	h, offset, lines, err := parseHeader(br, opts)
	if err != nil {
		return Header{}, nil, err
	}
	table, err := DecodePoints(br, h)
	if err != nil {
		var formatErr *FormatError
		if errors.As(err, &formatErr) {
			formatErr.rebase(lines, offset)
		}
		return Header{}, nil, err
	}
	return h, table, nil
}

// decodeASCII reads exactly h.PointCount non blank lines of h.FieldCount()
// tokens each.
func decodeASCII(r io.Reader, h Header) (*PointTable, error) {
	fieldCount := h.FieldCount()
	values := make([]float64, 0, minInt(h.PointCount, maxPreallocatedPoints)*fieldCount)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	row, lineNo := 0, 0
	for row < h.PointCount && scanner.Scan() {
		lineNo++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) != fieldCount {
			return nil, newLineError(lineNo, "point %d has %d values, expected %d", row, len(tokens), fieldCount)
		}
		for _, token := range tokens {
			v, err := parseValue(token, h.ElementType)
			if err != nil {
				return nil, newLineError(lineNo, "invalid %s value %q", h.ElementType, token)
			}
			values = append(values, v)
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, newLineError(lineNo+1, "point line too long")
		}
		return nil, &IOError{Op: "read points", Err: err}
	}
	if row < h.PointCount {
		return nil, newLineError(lineNo, "truncated body: got %d of %d points", row, h.PointCount)
	}

	return &PointTable{elementType: h.ElementType, cols: fieldCount, values: values}, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func parseValue(token string, t ElementType) (float64, error) {
	switch t {
	case Float32:
		v, err := strconv.ParseFloat(token, 32)
		return v, err
	case Float64:
		return strconv.ParseFloat(token, 64)
	case Int8, Int16, Int32:
		v, err := strconv.ParseInt(token, 10, t.Size()*8)
		return float64(v), err
	default:
		v, err := strconv.ParseUint(token, 10, t.Size()*8)
		return float64(v), err
	}
}

func decodeBinary(r io.Reader, h Header) (*PointTable, error) {
	size := h.ElementType.Size()
	if h.PointCount > math.MaxInt/(h.FieldCount()*size) {
		return nil, newOffsetError(0, "binary body of %d points is too large", h.PointCount)
	}
	total := h.BodySize()

	// buf grows with the bytes actually present, not with the declared count
	buf, err := io.ReadAll(io.LimitReader(r, total))
	if err != nil {
		return nil, &IOError{Op: "read points", Err: err}
	}
	if int64(len(buf)) < total {
		return nil, newOffsetError(int64(len(buf)), "truncated body: got %d of %d bytes", len(buf), total)
	}

	table := NewPointTable(h.ElementType, h.PointCount, h.FieldCount())
	for i := range table.values {
		table.values[i] = readValue(buf[i*size:], h.ElementType)
	}
	return table, nil
}

func readValue(b []byte, t ElementType) float64 {
	switch t {
	case Uint8:
		return float64(b[0])
	case Int8:
		return float64(int8(b[0]))
	case Uint16:
		return float64(binary.LittleEndian.Uint16(b))
	case Int16:
		return float64(int16(binary.LittleEndian.Uint16(b)))
	case Uint32:
		return float64(binary.LittleEndian.Uint32(b))
	case Int32:
		return float64(int32(binary.LittleEndian.Uint32(b)))
	case Float32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	default:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
}
