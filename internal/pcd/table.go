package pcd

import "fmt"

// PointTable is a row-major matrix of point records. Every stored value is
// exactly representable by the table's element type, so a float32 table
// keeps single precision even though values are held as float64.
type PointTable struct {
	elementType ElementType
	cols        int
	values      []float64
}

// NewPointTable allocates a zeroed table of rows x cols values.
func NewPointTable(elementType ElementType, rows, cols int) *PointTable {
	return &PointTable{
		elementType: elementType,
		cols:        cols,
		values:      make([]float64, rows*cols),
	}
}

// FromRows builds a table from rows that must all have the same length.
// Values are normalized to elementType.
func FromRows(elementType ElementType, rows [][]float64) (*PointTable, error) {
	if !elementType.Valid() {
		return nil, fmt.Errorf("invalid element type %d", elementType)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows")
	}
	cols := len(rows[0])
	t := NewPointTable(elementType, len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d columns, expected %d", i, len(row), cols)
		}
		for j, v := range row {
			t.Set(i, j, v)
		}
	}
	return t, nil
}

func (t *PointTable) Len() int {
	if t.cols == 0 {
		return 0
	}
	return len(t.values) / t.cols
}

func (t *PointTable) Cols() int {
	return t.cols
}

func (t *PointTable) ElementType() ElementType {
	return t.elementType
}

// Layout derives the field layout from the column count.
func (t *PointTable) Layout() (FieldLayout, bool) {
	return LayoutForFieldCount(t.cols)
}

func (t *PointTable) At(row, col int) float64 {
	return t.values[row*t.cols+col]
}

// Set stores v rounded to the table's element type.
func (t *PointTable) Set(row, col int, v float64) {
	t.values[row*t.cols+col] = t.elementType.normalize(v)
}

// Row returns a copy of one record.
func (t *PointTable) Row(row int) []float64 {
	out := make([]float64, t.cols)
	copy(out, t.values[row*t.cols:(row+1)*t.cols])
	return out
}

func (t *PointTable) Rows() [][]float64 {
	out := make([][]float64, t.Len())
	for i := range out {
		out[i] = t.Row(i)
	}
	return out
}

// Column returns a copy of one field across all records.
func (t *PointTable) Column(col int) []float64 {
	out := make([]float64, t.Len())
	for i := range out {
		out[i] = t.At(i, col)
	}
	return out
}

func (t *PointTable) Clone() *PointTable {
	values := make([]float64, len(t.values))
	copy(values, t.values)
	return &PointTable{elementType: t.elementType, cols: t.cols, values: values}
}

// Positions returns a 3-column copy holding x, y and z. For XYZI tables the
// intensity column is dropped; the receiver is left untouched.
func (t *PointTable) Positions() *PointTable {
	if t.cols <= 3 {
		return t.Clone()
	}
	out := NewPointTable(t.elementType, t.Len(), 3)
	for i := 0; i < t.Len(); i++ {
		copy(out.values[i*3:i*3+3], t.values[i*t.cols:i*t.cols+3])
	}
	return out
}

// Equal reports whether both tables hold the same element type, shape and values.
func (t *PointTable) Equal(other *PointTable) bool {
	if t.elementType != other.elementType || t.cols != other.cols || len(t.values) != len(other.values) {
		return false
	}
	for i, v := range t.values {
		if v != other.values[i] {
			return false
		}
	}
	return true
}
