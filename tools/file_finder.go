package tools

import (
	"os"
	"path/filepath"

	"github.com/ecopia-map/pcd_codec/internal/options"
)

type FileFinder interface {
	GetPcdFilesToProcess(opts *options.Options) ([]string, error)
}

type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

func (f *StandardFileFinder) GetPcdFilesToProcess(opts *options.Options) ([]string, error) {
	// If folder processing is not enabled then pcd file is given by -input flag, otherwise look for pcd in -input folder
	// eventually excluding nested folders if Recursive flag is disabled
	if !opts.FolderProcessing {
		return []string{opts.Input}, nil
	}

	return f.getPcdFilesFromInputFolder(opts)
}

func (f *StandardFileFinder) getPcdFilesFromInputFolder(opts *options.Options) ([]string, error) {
	var pcdFiles = make([]string, 0)

	baseInfo, err := os.Stat(opts.Input)
	if err != nil {
		return nil, err
	}
	err = filepath.Walk(
		opts.Input,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() && !opts.Recursive && !os.SameFile(info, baseInfo) {
				return filepath.SkipDir
			} else if !info.IsDir() && IsPcdFile(info.Name()) {
				pcdFiles = append(pcdFiles, path)
			}
			return nil
		},
	)

	if err != nil {
		return nil, err
	}

	return pcdFiles, nil
}
