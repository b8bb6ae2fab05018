package options

import (
	"strings"

	"github.com/ecopia-map/pcd_codec/internal/pcd"
)

type Shape string

const (
	// Elliptic cylinder sampled along z and around its axis
	ShapeEllipse Shape = "ELLIPSE"
	// Six faces of an axis aligned box
	ShapeBox Shape = "BOX"
)

func ParseShape(value string) Shape {
	normalizedValue := strings.Trim(strings.ToUpper(value), " ")
	if normalizedValue == "ELLIPSE" {
		return ShapeEllipse
	} else if normalizedValue == "BOX" {
		return ShapeBox
	}
	return ""
}

// Contains the options shared by all the commands
type Options struct {
	Input            string          // Input PCD file/folder
	StrictHeader     bool            // Rejects unknown header keywords
	FolderProcessing bool            // Enables the processing of all PCD files in folder
	Recursive        bool            // Recursive lookup of PCD files in subfolders
	Storage          pcd.StorageMode // Storage mode of written files

	Command         string
	ConvertOptions  *ConvertOptions
	GenerateOptions *GenerateOptions
}

type ConvertOptions struct {
	Output           string  // Output PCD file, or folder when FolderProcessing is set
	ZOffset          float64 // Z Offset to apply to points during conversion
	VoxelSize        float64 // Voxel cell size for downsampling, 0 disables it
	SourceProjection string  // proj4 definition of the input coordinates
	TargetProjection string  // proj4 definition of the output coordinates
	Workers          int     // Number of concurrent file conversions
}

type GenerateOptions struct {
	Output    string  // Output PCD file
	Shape     Shape   // Shape to sample
	Step      float64 // Sampling step
	Intensity bool    // Adds an intensity channel derived from z
}

// Reports whether the conversion changes coordinates between reference systems
func (opt *ConvertOptions) Reproject() bool {
	return opt.SourceProjection != "" && opt.TargetProjection != ""
}

func (opt *Options) Copy() *Options {
	newOpt := &Options{
		Input:            opt.Input,
		StrictHeader:     opt.StrictHeader,
		FolderProcessing: opt.FolderProcessing,
		Recursive:        opt.Recursive,
		Storage:          opt.Storage,
		Command:          opt.Command,
	}

	if opt.ConvertOptions != nil {
		convertOpt := *opt.ConvertOptions
		newOpt.ConvertOptions = &convertOpt
	}

	if opt.GenerateOptions != nil {
		generateOpt := *opt.GenerateOptions
		newOpt.GenerateOptions = &generateOpt
	}

	return newOpt
}

func (opt *Options) DecodeOptions() pcd.DecodeOptions {
	return pcd.DecodeOptions{Strict: opt.StrictHeader}
}
