package pkg

import (
	"errors"
	"runtime"
	"strconv"
	"sync"

	"github.com/ecopia-map/pcd_codec/internal/io"
	"github.com/ecopia-map/pcd_codec/internal/options"
	"github.com/ecopia-map/pcd_codec/pkg/algorithm_manager"
	"github.com/ecopia-map/pcd_codec/tools"
	"github.com/golang/glog"
)

type Converter struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
}

func NewConverter(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) IRunner {
	return &Converter{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
	}
}

// Starts the conversion process
func (converter *Converter) Run(opts *options.Options) error {
	if opts.ConvertOptions == nil {
		return errors.New("missing convert options")
	}
	if c := converter.algorithmManager.GetCoordinateConverterAlgorithm(); c != nil {
		defer c.Cleanup()
	}

	tools.LogOutput("Preparing list of files to process...")

	// Prepare list of files to process
	pcdFiles, err := converter.fileFinder.GetPcdFilesToProcess(opts)
	if err != nil {
		return err
	}
	if len(pcdFiles) == 0 {
		return errors.New("no pcd files found in " + opts.Input)
	}
	for i, filePath := range pcdFiles {
		glog.V(1).Infof("pcd_file path %d [%s]", i, filePath)
	}

	tools.LogOutput("Converting " + strconv.Itoa(len(pcdFiles)) + " file(s)...")
	return converter.convertFiles(pcdFiles, opts)
}

func (converter *Converter) convertFiles(pcdFiles []string, opts *options.Options) error {
	numConsumers := opts.ConvertOptions.Workers
	if numConsumers <= 0 {
		numConsumers = runtime.NumCPU()
	}
	if numConsumers > len(pcdFiles) {
		numConsumers = len(pcdFiles)
	}

	// init channel where to submit work with a buffer 5 times greater than the number of consumer
	workChannel := make(chan *io.WorkUnit, numConsumers*5)

	// every file can fail at most once
	errorChannel := make(chan error, len(pcdFiles))

	var waitGroup sync.WaitGroup

	// add producer to waitgroup and launch producer goroutine
	waitGroup.Add(1)
	producer := io.NewStandardProducer(pcdFiles, opts)
	go producer.Produce(workChannel, &waitGroup)

	// add consumers to waitgroup and launch them
	for i := 0; i < numConsumers; i++ {
		waitGroup.Add(1)
		consumer := io.NewStandardConsumer(
			converter.algorithmManager.GetElevationCorrectionAlgorithm(),
			converter.algorithmManager.GetCoordinateConverterAlgorithm(),
			converter.algorithmManager.GetVoxelSize(),
		)
		go consumer.Consume(workChannel, errorChannel, &waitGroup)
	}

	// wait for producers and consumers to finish
	waitGroup.Wait()

	// close error chan
	close(errorChannel)

	// find if there are errors in the error channel buffer
	var errs []error
	for err := range errorChannel {
		glog.Errorln(err)
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
