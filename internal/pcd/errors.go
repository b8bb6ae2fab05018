package pcd

import (
	"errors"
	"fmt"
)

var (
	ErrFormat          = errors.New("pcd: format error")
	ErrIO              = errors.New("pcd: io error")
	ErrInvalidArgument = errors.New("pcd: invalid argument")
)

// FormatError reports malformed header or body content. Line is the 1-based
// line number of the offending line when known, Offset the byte offset for
// binary payloads. Unknown positions are zero and -1 respectively.
// Positions count from the start of the stream, except when Body is set:
// then they count from the first byte after the DATA line.
type FormatError struct {
	Line   int
	Offset int64
	Body   bool
	Msg    string
}

func newLineError(line int, format string, args ...interface{}) *FormatError {
	return &FormatError{Line: line, Offset: -1, Msg: fmt.Sprintf(format, args...)}
}

func newOffsetError(offset int64, format string, args ...interface{}) *FormatError {
	return &FormatError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func (e *FormatError) Error() string {
	where := ""
	if e.Body {
		where = "body "
	}
	switch {
	case e.Line > 0:
		return fmt.Sprintf("pcd: %sline %d: %s", where, e.Line, e.Msg)
	case e.Offset >= 0:
		return fmt.Sprintf("pcd: %sbyte offset %d: %s", where, e.Offset, e.Msg)
	default:
		return "pcd: " + e.Msg
	}
}

// rebase turns a body relative position into a stream position, given the
// number of header lines and bytes preceding the body.
func (e *FormatError) rebase(headerLines int, headerBytes int64) {
	if !e.Body {
		return
	}
	e.Body = false
	if e.Line > 0 {
		e.Line += headerLines
	} else if e.Offset >= 0 {
		e.Offset += headerBytes
	}
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// IOError wraps a failure of the underlying file or stream.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("pcd: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pcd: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// InvalidArgumentError is returned by the encoder before any byte is written.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string { return "pcd: invalid argument: " + e.Msg }

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }
