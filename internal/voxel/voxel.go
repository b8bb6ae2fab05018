package voxel

import (
	"errors"
	"math"

	"github.com/ecopia-map/pcd_codec/internal/pcd"
	"github.com/golang/glog"
)

// index of a cubic cell along the three axes
type gridIndex struct {
	x int
	y int
	z int
}

// a cell accumulates the column sums of the points falling into it
type gridCell struct {
	sums  []float64
	count int
}

// Downsample replaces all the points that fall in the same cubic cell of side
// cellSize with their mean. Every column is averaged, intensity included.
// Cells are emitted in the order their first point appears.
func Downsample(table *pcd.PointTable, cellSize float64) (*pcd.PointTable, error) {
	if cellSize <= 0 || math.IsNaN(cellSize) || math.IsInf(cellSize, 0) {
		return nil, errors.New("voxel cell size must be a positive number")
	}
	if table.Cols() < 3 {
		return nil, errors.New("voxel downsampling needs x, y and z columns")
	}

	cells := make(map[gridIndex]*gridCell)
	order := make([]*gridCell, 0)
	cols := table.Cols()

	for i := 0; i < table.Len(); i++ {
		index := getPointGridCellIndex(table.At(i, 0), table.At(i, 1), table.At(i, 2), cellSize)
		cell := cells[index]
		if cell == nil {
			cell = &gridCell{sums: make([]float64, cols)}
			cells[index] = cell
			order = append(order, cell)
		}
		for j := 0; j < cols; j++ {
			cell.sums[j] += table.At(i, j)
		}
		cell.count++
	}

	out := pcd.NewPointTable(table.ElementType(), len(order), cols)
	for i, cell := range order {
		for j := 0; j < cols; j++ {
			out.Set(i, j, cell.sums[j]/float64(cell.count))
		}
	}

	if glog.V(1) {
		glog.Infof("voxel: %d points reduced to %d cells of size %f", table.Len(), out.Len(), cellSize)
	}
	return out, nil
}

// returns the index of the cell where the input point is falling in
func getPointGridCellIndex(x, y, z, cellSize float64) gridIndex {
	return gridIndex{
		getDimensionIndex(x, cellSize),
		getDimensionIndex(y, cellSize),
		getDimensionIndex(z, cellSize),
	}
}

func getDimensionIndex(value float64, cellSize float64) int {
	return int(math.Floor(value / cellSize))
}
