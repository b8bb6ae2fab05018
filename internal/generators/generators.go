// Package generators builds synthetic point clouds for testing and demos.
package generators

import (
	"errors"
	"fmt"
	"math"

	"github.com/ecopia-map/pcd_codec/internal/pcd"
)

// Offset translates every generated point.
type Offset struct {
	X, Y, Z float64
}

// Ellipse samples an elliptic cylinder: for z in [-height/2, height/2) and
// angle in [0, 2π), both advanced by step, it emits
// (radius*cos(angle), sin(angle), z) translated by offset.
func Ellipse(radius, height, step float64, offset Offset) (*pcd.PointTable, error) {
	if step <= 0 {
		return nil, errors.New("step must be positive")
	}

	zRange := math.Abs(height / 2)
	var rows [][]float64
	for _, z := range arange(-zRange, zRange, step) {
		for _, angle := range arange(0, 2*math.Pi, step) {
			rows = append(rows, []float64{
				radius*math.Cos(angle) + offset.X,
				math.Sin(angle) + offset.Y,
				z + offset.Z,
			})
		}
	}

	return toTable(rows)
}

// Box samples the six faces of an axis aligned box centred on offset. The
// box is as tall as it is wide along x.
func Box(xSize, ySize, step float64, offset Offset) (*pcd.PointTable, error) {
	if step <= 0 {
		return nil, errors.New("step must be positive")
	}

	xRange := math.Abs(xSize / 2)
	yRange := math.Abs(ySize / 2)
	zRange := math.Abs(xSize / 2)

	var rows [][]float64
	add := func(x, y, z float64) {
		rows = append(rows, []float64{x + offset.X, y + offset.Y, z + offset.Z})
	}

	for _, z := range []float64{-zRange, zRange} {
		for _, x := range arange(-xRange, xRange, step) {
			for _, y := range arange(-yRange, yRange, step) {
				add(x, y, z)
			}
		}
	}
	for _, y := range []float64{-yRange, yRange} {
		for _, x := range arange(-xRange, xRange, step) {
			for _, z := range arange(-zRange, zRange, step) {
				add(x, y, z)
			}
		}
	}
	for _, x := range []float64{-xRange, xRange} {
		for _, y := range arange(-yRange, yRange, step) {
			for _, z := range arange(-zRange, zRange, step) {
				add(x, y, z)
			}
		}
	}

	return toTable(rows)
}

// WithIntensity appends an intensity column computed from each position.
func WithIntensity(table *pcd.PointTable, intensity func(x, y, z float64) float64) (*pcd.PointTable, error) {
	if table.Cols() != 3 {
		return nil, fmt.Errorf("expected an XYZ table, got %d columns", table.Cols())
	}
	out := pcd.NewPointTable(table.ElementType(), table.Len(), 4)
	for i := 0; i < table.Len(); i++ {
		x, y, z := table.At(i, 0), table.At(i, 1), table.At(i, 2)
		out.Set(i, 0, x)
		out.Set(i, 1, y)
		out.Set(i, 2, z)
		out.Set(i, 3, intensity(x, y, z))
	}
	return out, nil
}

// Concat stacks tables of the same shape and element type.
func Concat(tables ...*pcd.PointTable) (*pcd.PointTable, error) {
	if len(tables) == 0 {
		return nil, errors.New("nothing to concatenate")
	}
	cols, elementType, total := tables[0].Cols(), tables[0].ElementType(), 0
	for i, t := range tables {
		if t.Cols() != cols || t.ElementType() != elementType {
			return nil, fmt.Errorf("table %d does not match the first table's shape", i)
		}
		total += t.Len()
	}

	out := pcd.NewPointTable(elementType, total, cols)
	row := 0
	for _, t := range tables {
		for i := 0; i < t.Len(); i++ {
			for j := 0; j < cols; j++ {
				out.Set(row, j, t.At(i, j))
			}
			row++
		}
	}
	return out, nil
}

// Header returns the metadata used to write a generated, unorganized cloud.
func Header(table *pcd.PointTable) (pcd.Header, error) {
	layout, ok := table.Layout()
	if !ok {
		return pcd.Header{}, fmt.Errorf("no field layout has %d columns", table.Cols())
	}
	return pcd.NewHeader(layout, table.Len(), 1, pcd.DefaultViewpoint, table.Len()), nil
}

// arange returns start, start+step, ... for values strictly below stop.
func arange(start, stop, step float64) []float64 {
	n := int(math.Ceil((stop - start) / step))
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func toTable(rows [][]float64) (*pcd.PointTable, error) {
	if len(rows) == 0 {
		return nil, errors.New("parameters produce no points")
	}
	return pcd.FromRows(pcd.Float32, rows)
}
