package converters

import "github.com/ecopia-map/pcd_codec/internal/pcd"

type ElevationCorrector interface {
	CorrectElevation(x, y, z float64) float64
}

// CorrectElevations returns a copy of table with every z value passed
// through corrector.
func CorrectElevations(corrector ElevationCorrector, table *pcd.PointTable) *pcd.PointTable {
	out := table.Clone()
	for i := 0; i < out.Len(); i++ {
		out.Set(i, 2, corrector.CorrectElevation(out.At(i, 0), out.At(i, 1), out.At(i, 2)))
	}
	return out
}
