package std_algorithm_manager

import (
	"github.com/ecopia-map/pcd_codec/internal/converters"
	"github.com/ecopia-map/pcd_codec/internal/converters/elevation/offset_elevation_corrector"
	"github.com/ecopia-map/pcd_codec/internal/converters/proj4_coordinate_converter"
	"github.com/ecopia-map/pcd_codec/internal/options"
	"github.com/ecopia-map/pcd_codec/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	options             *options.ConvertOptions
	elevationCorrector  converters.ElevationCorrector
	coordinateConverter converters.CoordinateConverter
}

func NewAlgorithmManager(opts *options.ConvertOptions) (algorithm_manager.AlgorithmManager, error) {
	manager := &StandardAlgorithmManager{options: opts}

	if opts.ZOffset != 0 {
		manager.elevationCorrector = offset_elevation_corrector.NewOffsetElevationCorrector(opts.ZOffset)
	}

	if opts.Reproject() {
		converter, err := proj4_coordinate_converter.NewProj4CoordinateConverter(opts.SourceProjection, opts.TargetProjection)
		if err != nil {
			return nil, err
		}
		manager.coordinateConverter = converter
	}

	return manager, nil
}

func (m *StandardAlgorithmManager) GetElevationCorrectionAlgorithm() converters.ElevationCorrector {
	return m.elevationCorrector
}

func (m *StandardAlgorithmManager) GetCoordinateConverterAlgorithm() converters.CoordinateConverter {
	return m.coordinateConverter
}

func (m *StandardAlgorithmManager) GetVoxelSize() float64 {
	return m.options.VoxelSize
}
