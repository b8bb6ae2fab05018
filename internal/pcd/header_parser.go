package pcd

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/golang/glog"
)

// DecodeOptions tune header parsing.
type DecodeOptions struct {
	// Strict rejects header lines with an unknown keyword instead of skipping them.
	Strict bool
}

// viewpointPrefixLen is the length of "VIEWPOINT " including the separator.
const viewpointPrefixLen = 10

// headerBuilder accumulates header lines until DATA is seen.
type headerBuilder struct {
	version   string
	layout    FieldLayout
	size      int
	kind      ElementKind
	width     int
	height    int
	viewpoint string
	points    int

	seenFields bool
	seenSize   bool
	seenType   bool
}

// ParseHeader consumes header lines from r up to and including the DATA line
// and returns the header together with the number of bytes consumed, i.e. the
// offset of the first body byte. r is left positioned at the body.
func ParseHeader(r *bufio.Reader, opts DecodeOptions) (Header, int64, error) {
	h, offset, _, err := parseHeader(r, opts)
	return h, offset, err
}

// parseHeader also reports the number of header lines read.
func parseHeader(r *bufio.Reader, opts DecodeOptions) (Header, int64, int, error) {
	var (
		b      headerBuilder
		offset int64
		lineNo int
	)

	for {
		raw, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return Header{}, offset, lineNo, &IOError{Op: "read header", Err: err}
		}
		if raw == "" && err == io.EOF {
			return Header{}, offset, lineNo, newLineError(lineNo, "unterminated header: DATA line not found")
		}
		lineNo++
		offset += int64(len(raw))

		if !utf8.ValidString(raw) {
			return Header{}, offset, lineNo, newLineError(lineNo, "header line is not valid text")
		}
		line := strings.TrimRight(raw, "\r\n")

		if strings.HasPrefix(line, "#") {
			continue
		}
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}

		keyword := strings.ToUpper(tokens[0])
		if keyword == "DATA" {
			h, ferr := b.finalize(tokens, lineNo)
			if ferr != nil {
				return Header{}, offset, lineNo, ferr
			}
			return h, offset, lineNo, nil
		}

		if perr := b.apply(keyword, tokens, line, lineNo, opts); perr != nil {
			return Header{}, offset, lineNo, perr
		}
	}
}

func (b *headerBuilder) apply(keyword string, tokens []string, line string, lineNo int, opts DecodeOptions) error {
	var err error

	switch keyword {
	case "VERSION":
		if len(tokens) > 1 {
			b.version = tokens[1]
		}
	case "FIELDS":
		layout, ok := LayoutForFieldCount(len(tokens) - 1)
		if !ok {
			return newLineError(lineNo, "unsupported field layout with %d fields", len(tokens)-1)
		}
		b.layout = layout
		b.seenFields = true
	case "SIZE":
		if len(tokens) < 2 {
			return newLineError(lineNo, "SIZE has no value")
		}
		b.size, err = strconv.Atoi(tokens[1])
		if err != nil || b.size <= 0 {
			return newLineError(lineNo, "invalid SIZE value %q", tokens[1])
		}
		b.seenSize = true
	case "TYPE":
		if len(tokens) < 2 || len(tokens[1]) != 1 {
			return newLineError(lineNo, "invalid TYPE line %q", line)
		}
		b.kind = ElementKind(strings.ToUpper(tokens[1])[0])
		b.seenType = true
	case "COUNT":
		// every supported field has COUNT 1
	case "WIDTH":
		b.width, err = parseCount(keyword, tokens, lineNo)
	case "HEIGHT":
		b.height, err = parseCount(keyword, tokens, lineNo)
	case "POINTS":
		b.points, err = parseCount(keyword, tokens, lineNo)
	case "VIEWPOINT":
		if len(line) > viewpointPrefixLen {
			b.viewpoint = line[viewpointPrefixLen:]
		} else {
			b.viewpoint = ""
		}
	default:
		if opts.Strict {
			return newLineError(lineNo, "unknown header keyword %q", tokens[0])
		}
		if glog.V(1) {
			glog.Infof("pcd: skipping unknown header line %d: %q", lineNo, line)
		}
	}

	return err
}

func parseCount(keyword string, tokens []string, lineNo int) (int, error) {
	if len(tokens) < 2 {
		return 0, newLineError(lineNo, "%s has no value", keyword)
	}
	n, err := strconv.Atoi(tokens[1])
	if err != nil || n < 0 {
		return 0, newLineError(lineNo, "invalid %s value %q", keyword, tokens[1])
	}
	return n, nil
}

func (b *headerBuilder) finalize(tokens []string, lineNo int) (Header, error) {
	if len(tokens) < 2 {
		return Header{}, newLineError(lineNo, "DATA has no storage mode")
	}
	storage := StorageMode(strings.ToUpper(tokens[1]))
	if storage != StorageASCII && storage != StorageBinary {
		return Header{}, newLineError(lineNo, "unsupported DATA storage mode %q", tokens[1])
	}
	if !b.seenFields {
		return Header{}, newLineError(lineNo, "header has no FIELDS line")
	}
	if !b.seenSize || !b.seenType {
		return Header{}, newLineError(lineNo, "header is missing SIZE or TYPE")
	}
	elementType, err := LookupElementType(b.kind, b.size)
	if err != nil {
		return Header{}, newLineError(lineNo, "%v", err)
	}

	return Header{
		Version:     b.version,
		Layout:      b.layout,
		ElementType: elementType,
		Width:       b.width,
		Height:      b.height,
		Viewpoint:   b.viewpoint,
		PointCount:  b.points,
		Storage:     storage,
	}, nil
}
