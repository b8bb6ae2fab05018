package pkg

import (
	"errors"
	"fmt"
	"io"

	"github.com/ecopia-map/pcd_codec/internal/options"
	"github.com/ecopia-map/pcd_codec/internal/pcd"
	"github.com/ecopia-map/pcd_codec/internal/stats"
	"github.com/ecopia-map/pcd_codec/tools"
)

type Info struct {
	fileFinder tools.FileFinder
	out        io.Writer
}

func NewInfo(fileFinder tools.FileFinder, out io.Writer) IRunner {
	return &Info{
		fileFinder: fileFinder,
		out:        out,
	}
}

// Prints the header and the per column statistics of every input file
func (info *Info) Run(opts *options.Options) error {
	pcdFiles, err := info.fileFinder.GetPcdFilesToProcess(opts)
	if err != nil {
		return err
	}

	for _, filePath := range pcdFiles {
		cloud, err := pcd.ReadFile(filePath, opts.DecodeOptions())
		if err != nil {
			return err
		}
		if err := info.printCloud(filePath, cloud); err != nil {
			return err
		}
	}
	return nil
}

func (info *Info) printCloud(filePath string, cloud *pcd.PointCloud) error {
	h := cloud.Header
	fmt.Fprintf(info.out, "file:      %s\n", filePath)
	fmt.Fprintf(info.out, "version:   %s\n", h.Version)
	fmt.Fprintf(info.out, "fields:    %s (%s)\n", h.Layout, h.ElementType)
	fmt.Fprintf(info.out, "size:      %d x %d\n", h.Width, h.Height)
	fmt.Fprintf(info.out, "viewpoint: %s\n", h.Viewpoint)
	fmt.Fprintf(info.out, "data:      %s\n", h.Storage)

	summary, err := stats.Summarize(cloud.Points)
	if errors.Is(err, stats.ErrEmptyTable) {
		_, err = fmt.Fprintln(info.out, "points: 0")
		return err
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(info.out, summary.String())
	return err
}
