package io

import (
	"path/filepath"
	"sync"

	"github.com/ecopia-map/pcd_codec/internal/options"
)

type StandardProducer struct {
	files   []string
	options *options.Options
}

// Work units share a copy of opts taken at construction
func NewStandardProducer(files []string, opts *options.Options) *StandardProducer {
	return &StandardProducer{
		files:   files,
		options: opts.Copy(),
	}
}

// Submits a WorkUnit per input file to the provided workchannel and closes the channel when all work is submitted.
func (p *StandardProducer) Produce(work chan *WorkUnit, wg *sync.WaitGroup) {
	for _, file := range p.files {
		work <- &WorkUnit{
			InputPath:  file,
			OutputPath: OutputPathFor(file, p.options),
			Opts:       p.options,
		}
	}
	close(work)
	wg.Done()
}

// OutputPathFor maps an input file to its destination. In folder mode the
// output is a folder mirroring the layout of the input folder, otherwise the
// output flag names the destination file itself.
func OutputPathFor(inputPath string, opts *options.Options) string {
	output := opts.ConvertOptions.Output
	if !opts.FolderProcessing {
		return output
	}
	rel, err := filepath.Rel(opts.Input, inputPath)
	if err != nil {
		rel = filepath.Base(inputPath)
	}
	return filepath.Join(output, rel)
}
