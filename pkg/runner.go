package pkg

import "github.com/ecopia-map/pcd_codec/internal/options"

// IRunner is implemented by every command of the tool
type IRunner interface {
	Run(opts *options.Options) error
}
