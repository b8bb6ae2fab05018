package algorithm_manager

import (
	"github.com/ecopia-map/pcd_codec/internal/converters"
)

// AlgorithmManager hands out the point transformations selected by the
// command line options. Disabled steps are reported as nil or zero values.
type AlgorithmManager interface {
	GetElevationCorrectionAlgorithm() converters.ElevationCorrector
	GetCoordinateConverterAlgorithm() converters.CoordinateConverter
	GetVoxelSize() float64
}
