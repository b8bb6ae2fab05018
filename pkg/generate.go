package pkg

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ecopia-map/pcd_codec/internal/generators"
	"github.com/ecopia-map/pcd_codec/internal/options"
	"github.com/ecopia-map/pcd_codec/internal/pcd"
	"github.com/ecopia-map/pcd_codec/tools"
)

const (
	ellipseRadius = 0.5
	ellipseHeight = 2.0
	boxXSize      = 1.0
	boxYSize      = 1.0
)

type Generator struct{}

func NewGenerator() IRunner {
	return &Generator{}
}

// Samples the requested shape and writes it as a pcd file
func (g *Generator) Run(opts *options.Options) error {
	genOpts := opts.GenerateOptions
	if genOpts == nil {
		return errors.New("missing generate options")
	}

	table, err := sample(genOpts)
	if err != nil {
		return err
	}
	if genOpts.Intensity {
		table, err = generators.WithIntensity(table, func(x, y, z float64) float64 { return z })
		if err != nil {
			return err
		}
	}

	h, err := generators.Header(table)
	if err != nil {
		return err
	}
	if err := tools.CreateDirectoryIfDoesNotExist(filepath.Dir(genOpts.Output)); err != nil {
		return err
	}
	if err := pcd.WriteFile(genOpts.Output, h, table, opts.Storage); err != nil {
		return err
	}

	tools.LogOutput(fmt.Sprintf("> %d points written to %s", table.Len(), genOpts.Output))
	return nil
}

func sample(genOpts *options.GenerateOptions) (*pcd.PointTable, error) {
	switch genOpts.Shape {
	case options.ShapeEllipse:
		return generators.Ellipse(ellipseRadius, ellipseHeight, genOpts.Step, generators.Offset{})
	case options.ShapeBox:
		return generators.Box(boxXSize, boxYSize, genOpts.Step, generators.Offset{})
	}
	return nil, fmt.Errorf("unknown shape %q", string(genOpts.Shape))
}
