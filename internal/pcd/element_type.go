package pcd

import (
	"fmt"
	"math"
)

// ElementKind is the PCD TYPE letter of a field.
type ElementKind byte

const (
	KindFloat    ElementKind = 'F'
	KindUnsigned ElementKind = 'U'
	KindSigned   ElementKind = 'I'
)

func (k ElementKind) String() string {
	return string(k)
}

// ElementType is the numeric type of every field of a point record.
type ElementType int

const (
	InvalidElementType ElementType = iota
	Uint8
	Uint16
	Uint32
	Int8
	Int16
	Int32
	Float32
	Float64
)

type elementKey struct {
	kind ElementKind
	size int
}

type elementInfo struct {
	kind ElementKind
	size int
	name string
	min  float64
	max  float64
}

var elementTypes = map[elementKey]ElementType{
	{KindUnsigned, 1}: Uint8,
	{KindUnsigned, 2}: Uint16,
	{KindUnsigned, 4}: Uint32,
	{KindSigned, 1}:   Int8,
	{KindSigned, 2}:   Int16,
	{KindSigned, 4}:   Int32,
	{KindFloat, 4}:    Float32,
	{KindFloat, 8}:    Float64,
}

var elementInfos = map[ElementType]elementInfo{
	Uint8:   {KindUnsigned, 1, "uint8", 0, math.MaxUint8},
	Uint16:  {KindUnsigned, 2, "uint16", 0, math.MaxUint16},
	Uint32:  {KindUnsigned, 4, "uint32", 0, math.MaxUint32},
	Int8:    {KindSigned, 1, "int8", math.MinInt8, math.MaxInt8},
	Int16:   {KindSigned, 2, "int16", math.MinInt16, math.MaxInt16},
	Int32:   {KindSigned, 4, "int32", math.MinInt32, math.MaxInt32},
	Float32: {KindFloat, 4, "float32", -math.MaxFloat32, math.MaxFloat32},
	Float64: {KindFloat, 8, "float64", -math.MaxFloat64, math.MaxFloat64},
}

// LookupElementType maps a (TYPE, SIZE) pair to its element type.
func LookupElementType(kind ElementKind, size int) (ElementType, error) {
	t, ok := elementTypes[elementKey{kind, size}]
	if !ok {
		return InvalidElementType, fmt.Errorf("unsupported TYPE %q with SIZE %d", string(kind), size)
	}
	return t, nil
}

func (t ElementType) Valid() bool {
	_, ok := elementInfos[t]
	return ok
}

func (t ElementType) Kind() ElementKind {
	return elementInfos[t].kind
}

// Size is the width of one value in bytes.
func (t ElementType) Size() int {
	return elementInfos[t].size
}

func (t ElementType) String() string {
	if info, ok := elementInfos[t]; ok {
		return info.name
	}
	return "invalid"
}

// normalize converts v to the nearest value representable by t.
// Integer types round half away from zero and saturate at their bounds.
func (t ElementType) normalize(v float64) float64 {
	info := elementInfos[t]
	switch info.kind {
	case KindFloat:
		if t == Float32 {
			return float64(float32(v))
		}
		return v
	default:
		if math.IsNaN(v) {
			return 0
		}
		v = math.Round(v)
		if v < info.min {
			return info.min
		}
		if v > info.max {
			return info.max
		}
		return v
	}
}
