/*
 * This file is part of the pcdtool Point Cloud Data codec distribution (https://github.com/ecopia-map/pcd_codec).
 * Copyright (c) 2019 Massimo Federico Bonfigli - m.federico.bonfigli@gmail.com
 *
 * This program is free software; you can redistribute it and/or modify it
 * under the terms of the GNU Lesser General Public License Version 3 as
 * published by the Free Software Foundation;
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
 * Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 *
 * This software also uses third party components. You can find information
 * on their credits and licensing in the file LICENSE-3RD-PARTIES.md that
 * you should have received togheter with the source code.
 */

package io

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/ecopia-map/pcd_codec/internal/converters"
	"github.com/ecopia-map/pcd_codec/internal/pcd"
	"github.com/ecopia-map/pcd_codec/internal/voxel"
	"github.com/ecopia-map/pcd_codec/tools"
	"github.com/golang/glog"
)

type StandardConsumer struct {
	elevationCorrector  converters.ElevationCorrector
	coordinateConverter converters.CoordinateConverter
	voxelSize           float64
}

// Builds a consumer applying, in order, the elevation correction, the coordinate conversion and the voxel
// downsampling. A nil corrector or converter and a non positive voxel size disable the corresponding step.
func NewStandardConsumer(elevationCorrector converters.ElevationCorrector, coordinateConverter converters.CoordinateConverter, voxelSize float64) *StandardConsumer {
	return &StandardConsumer{
		elevationCorrector:  elevationCorrector,
		coordinateConverter: coordinateConverter,
		voxelSize:           voxelSize,
	}
}

// Continually consumes WorkUnits submitted to a work channel producing the corresponding pcd files.
// Continues working until work channel is closed. A failed file does not stop the worker: the error is
// submitted to the error channel, which must be able to hold one error per work unit.
func (c *StandardConsumer) Consume(workchan chan *WorkUnit, errchan chan error, waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()

	for work := range workchan {
		if err := c.doWork(work); err != nil {
			glog.Errorf("exception in consumer worker: %v", err)
			errchan <- fmt.Errorf("converting %s: %w", work.InputPath, err)
		}
	}
}

// Reads the input file of the workunit, transforms its points and writes the result
func (c *StandardConsumer) doWork(workUnit *WorkUnit) error {
	cloud, err := pcd.ReadFile(workUnit.InputPath, workUnit.Opts.DecodeOptions())
	if err != nil {
		return err
	}

	points, err := c.transform(cloud.Points)
	if err != nil {
		return err
	}

	header := outputHeader(cloud.Header, points)
	storage := workUnit.Opts.Storage
	if storage == "" {
		storage = cloud.Header.Storage
	}

	if err := tools.CreateDirectoryIfDoesNotExist(filepath.Dir(workUnit.OutputPath)); err != nil {
		return err
	}
	if err := pcd.WriteFile(workUnit.OutputPath, header, points, storage); err != nil {
		return err
	}

	glog.V(1).Infof("%s: %d points written to %s", workUnit.InputPath, points.Len(), workUnit.OutputPath)
	return nil
}

func (c *StandardConsumer) transform(points *pcd.PointTable) (*pcd.PointTable, error) {
	var err error
	if c.elevationCorrector != nil {
		points = converters.CorrectElevations(c.elevationCorrector, points)
	}
	if c.coordinateConverter != nil {
		points, err = c.coordinateConverter.ConvertCoordinates(points)
		if err != nil {
			return nil, err
		}
	}
	if c.voxelSize > 0 {
		points, err = voxel.Downsample(points, c.voxelSize)
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}

// Keeps the organization of the source cloud unless the number of points changed, in which case the
// cloud is written as unorganized.
func outputHeader(source pcd.Header, points *pcd.PointTable) pcd.Header {
	width, height := source.Width, source.Height
	if points.Len() != source.PointCount {
		width, height = points.Len(), 1
	}
	return pcd.NewHeader(source.Layout, width, height, source.Viewpoint, points.Len())
}
