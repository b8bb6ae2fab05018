package pcd

import "strings"

type FieldLayout string
type StorageMode string

const (
	// Position only
	LayoutXYZ FieldLayout = "XYZ"
	// Position plus an intensity channel in column 3
	LayoutXYZI FieldLayout = "XYZI"
)

const (
	StorageASCII  StorageMode = "ASCII"
	StorageBinary StorageMode = "BINARY"
)

const (
	DefaultVersion   = ".7"
	DefaultViewpoint = "0 0 0 1 0 0 0"
)

// FieldCount returns the number of columns of the layout, 0 for an unknown layout.
func (l FieldLayout) FieldCount() int {
	switch l {
	case LayoutXYZ:
		return 3
	case LayoutXYZI:
		return 4
	}
	return 0
}

// LayoutForFieldCount derives the field layout from a FIELDS token count.
func LayoutForFieldCount(n int) (FieldLayout, bool) {
	switch n {
	case 3:
		return LayoutXYZ, true
	case 4:
		return LayoutXYZI, true
	}
	return "", false
}

func (m StorageMode) String() string {
	if m == StorageASCII {
		return "ASCII"
	} else if m == StorageBinary {
		return "BINARY"
	}
	return ""
}

// ParseStorageMode returns the storage mode named by value, ignoring case and
// surrounding spaces, or the empty mode when value names neither.
func ParseStorageMode(value string) StorageMode {
	normalizedValue := strings.Trim(strings.ToUpper(value), " ")
	if normalizedValue == "ASCII" {
		return StorageASCII
	} else if normalizedValue == "BINARY" {
		return StorageBinary
	}
	return ""
}

// Header describes a PCD file. It is built by ParseHeader or NewHeader and
// not modified afterwards.
type Header struct {
	Version     string
	Layout      FieldLayout
	ElementType ElementType
	Width       int
	Height      int
	Viewpoint   string
	PointCount  int
	Storage     StorageMode
}

// NewHeader builds the header metadata a producer hands to the encoder.
// An empty viewpoint is replaced by the identity viewpoint.
func NewHeader(layout FieldLayout, width, height int, viewpoint string, pointCount int) Header {
	if viewpoint == "" {
		viewpoint = DefaultViewpoint
	}
	return Header{
		Version:     DefaultVersion,
		Layout:      layout,
		ElementType: Float32,
		Width:       width,
		Height:      height,
		Viewpoint:   viewpoint,
		PointCount:  pointCount,
		Storage:     StorageBinary,
	}
}

func (h Header) FieldCount() int {
	return h.Layout.FieldCount()
}

// BodySize is the exact number of bytes of a binary point section.
func (h Header) BodySize() int64 {
	return int64(h.PointCount) * int64(h.FieldCount()) * int64(h.ElementType.Size())
}
