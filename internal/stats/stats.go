package stats

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ecopia-map/pcd_codec/internal/pcd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var ErrEmptyTable = errors.New("point table is empty")

// Summary holds per-column bounds and means of a point table.
type Summary struct {
	Points int
	Min    []float64
	Max    []float64
	Mean   []float64
}

// Summarize computes the bounds and the centroid of every column.
func Summarize(table *pcd.PointTable) (Summary, error) {
	m, err := Dense(table)
	if err != nil {
		return Summary{}, err
	}
	rows, cols := m.Dims()

	s := Summary{
		Points: rows,
		Min:    make([]float64, cols),
		Max:    make([]float64, cols),
		Mean:   make([]float64, cols),
	}
	column := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(column, j, m)
		s.Min[j] = floats.Min(column)
		s.Max[j] = floats.Max(column)
		s.Mean[j] = stat.Mean(column, nil)
	}
	return s, nil
}

// Extent is the size of the bounding box along each column.
func (s Summary) Extent() []float64 {
	out := make([]float64, len(s.Max))
	floats.SubTo(out, s.Max, s.Min)
	return out
}

func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "points: %d\n", s.Points)
	fmt.Fprintf(&sb, "min:    %v\n", s.Min)
	fmt.Fprintf(&sb, "max:    %v\n", s.Max)
	fmt.Fprintf(&sb, "mean:   %v", s.Mean)
	return sb.String()
}

// Dense copies the table into a gonum matrix, one row per point.
func Dense(table *pcd.PointTable) (*mat.Dense, error) {
	if table.Len() == 0 || table.Cols() == 0 {
		return nil, ErrEmptyTable
	}
	values := make([]float64, 0, table.Len()*table.Cols())
	for i := 0; i < table.Len(); i++ {
		values = append(values, table.Row(i)...)
	}
	return mat.NewDense(table.Len(), table.Cols(), values), nil
}
