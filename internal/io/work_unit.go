package io

import "github.com/ecopia-map/pcd_codec/internal/options"

// Contains the minimal data needed to convert a single pcd file
type WorkUnit struct {
	InputPath  string
	OutputPath string
	Opts       *options.Options
}
