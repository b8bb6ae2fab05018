package tools

import (
	"flag"
	"runtime"

	"github.com/golang/glog"
)

const (
	CommandInfo     = "info"
	CommandConvert  = "convert"
	CommandGenerate = "generate"
)

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

type CommonFlags struct {
	Input        *string `json:"input"`
	Strict       *bool   `json:"strict"`
	Silent       *bool   `json:"silent"`
	LogTimestamp *bool   `json:"timestamp"`
	Help         *bool   `json:"help"`
}

type FlagsForCommandInfo struct {
	CommonFlags
}

type FlagsForCommandConvert struct {
	CommonFlags
	Output                    *string  `json:"output"`
	Data                      *string  `json:"data"`
	FolderProcessing          *bool    `json:"folder"`
	RecursiveFolderProcessing *bool    `json:"recursive"`
	ZOffset                   *float64 `json:"zoffset"`
	VoxelSize                 *float64 `json:"voxel"`
	SourceProjection          *string  `json:"src_proj"`
	TargetProjection          *string  `json:"dst_proj"`
	Workers                   *int     `json:"workers"`
}

type FlagsForCommandGenerate struct {
	Output       *string  `json:"output"`
	Data         *string  `json:"data"`
	Shape        *string  `json:"shape"`
	Step         *float64 `json:"step"`
	Intensity    *bool    `json:"intensity"`
	Silent       *bool    `json:"silent"`
	LogTimestamp *bool    `json:"timestamp"`
	Help         *bool    `json:"help"`
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	version := defineBoolFlag("version", "v", false, "Displays the version of pcdtool.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
	}
}

func ParseFlagsForCommandInfo(args []string) FlagsForCommandInfo {
	glog.V(1).Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-info", flag.ExitOnError)
	common := defineCommonFlags(flagCommand, "Specifies the input pcd file.")

	flagCommand.Parse(args)

	return FlagsForCommandInfo{CommonFlags: common}
}

func ParseFlagsForCommandConvert(args []string) FlagsForCommandConvert {
	glog.V(1).Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-convert", flag.ExitOnError)
	common := defineCommonFlags(flagCommand, "Specifies the input pcd file/folder.")

	output := defineStringFlagCommand(flagCommand, "output", "o", "", "Specifies the output pcd file, or the output folder when -folder is set.")
	data := defineStringFlagCommand(flagCommand, "data", "d", "binary", "Storage mode of the written files, can be 'ascii' or 'binary'.")
	folderProcessing := defineBoolFlagCommand(flagCommand, "folder", "f", false, "Enables processing of all pcd files from input folder. Input must be a folder if specified")
	recursiveFolderProcessing := defineBoolFlagCommand(flagCommand, "recursive", "r", false, "Enables recursive lookup for all .pcd files inside the subfolders")
	zOffset := defineFloat64FlagCommand(flagCommand, "zoffset", "z", 0, "Vertical offset to apply to points, in the units of the cloud.")
	voxelSize := defineFloat64FlagCommand(flagCommand, "voxel", "x", 0, "Voxel cell size used to downsample the cloud. 0 keeps every point.")
	sourceProjection := defineStringFlagCommand(flagCommand, "src-proj", "", "", "proj4 definition of the input coordinates. Requires -dst-proj.")
	targetProjection := defineStringFlagCommand(flagCommand, "dst-proj", "", "", "proj4 definition of the output coordinates. Requires -src-proj.")
	workers := defineIntFlagCommand(flagCommand, "workers", "w", runtime.NumCPU(), "Number of files converted concurrently in folder mode.")

	flagCommand.Parse(args)

	return FlagsForCommandConvert{
		CommonFlags:               common,
		Output:                    output,
		Data:                      data,
		FolderProcessing:          folderProcessing,
		RecursiveFolderProcessing: recursiveFolderProcessing,
		ZOffset:                   zOffset,
		VoxelSize:                 voxelSize,
		SourceProjection:          sourceProjection,
		TargetProjection:          targetProjection,
		Workers:                   workers,
	}
}

func ParseFlagsForCommandGenerate(args []string) FlagsForCommandGenerate {
	glog.V(1).Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-generate", flag.ExitOnError)

	output := defineStringFlagCommand(flagCommand, "output", "o", "", "Specifies the output pcd file.")
	data := defineStringFlagCommand(flagCommand, "data", "d", "binary", "Storage mode of the written file, can be 'ascii' or 'binary'.")
	shape := defineStringFlagCommand(flagCommand, "shape", "", "ellipse", "Shape to sample, can be 'ellipse' or 'box'.")
	step := defineFloat64FlagCommand(flagCommand, "step", "", 0.05, "Sampling step of the generated shape.")
	intensity := defineBoolFlagCommand(flagCommand, "intensity", "", false, "Adds an intensity channel equal to the z coordinate.")
	silent := defineBoolFlagCommand(flagCommand, "silent", "s", false, "Use to suppress all the non-error messages.")
	logTimestamp := defineBoolFlagCommand(flagCommand, "timestamp", "t", false, "Adds timestamp to log messages.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")

	flagCommand.Parse(args)

	return FlagsForCommandGenerate{
		Output:       output,
		Data:         data,
		Shape:        shape,
		Step:         step,
		Intensity:    intensity,
		Silent:       silent,
		LogTimestamp: logTimestamp,
		Help:         help,
	}
}

func defineCommonFlags(flagCommand *flag.FlagSet, inputUsage string) CommonFlags {
	return CommonFlags{
		Input:        defineStringFlagCommand(flagCommand, "input", "i", "", inputUsage),
		Strict:       defineBoolFlagCommand(flagCommand, "strict", "", false, "Rejects header lines with unknown keywords."),
		Silent:       defineBoolFlagCommand(flagCommand, "silent", "s", false, "Use to suppress all the non-error messages."),
		LogTimestamp: defineBoolFlagCommand(flagCommand, "timestamp", "t", false, "Adds timestamp to log messages."),
		Help:         defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help."),
	}
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineIntFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineFloat64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}
