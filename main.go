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

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ecopia-map/pcd_codec/internal/options"
	"github.com/ecopia-map/pcd_codec/internal/pcd"
	"github.com/ecopia-map/pcd_codec/pkg"
	"github.com/ecopia-map/pcd_codec/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/pcd_codec/tools"
	"github.com/golang/glog"
)

const VERSION = "0.3.0"

const logo = `
                 _   _              _
 _ __   ___ __| | | |_ ___   ___ | |
| '_ \ / __/ _  | | __/ _ \ / _ \| |
| |_) | (_| (_| | | || (_) | (_) | |
| .__/ \___\__,_|  \__\___/ \___/|_|
|_|  A Point Cloud Data codec written in golang
     Copyright YYYY - ecopia-map
`

func main() {
	log.SetPrefix("[pcdtool] ")
	log.SetFlags(log.LUTC | log.Ldate | log.Lmicroseconds | log.Lshortfile)

	flagsGlobal := tools.ParseFlagsGlobal()
	defer glog.Flush()
	glog.V(1).Infoln(tools.FmtJSONString(flagsGlobal))

	if *flagsGlobal.Help {
		showHelp()
		return
	}
	if *flagsGlobal.Version {
		printVersion()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		log.Fatal("Please specify a subcommand [info|convert|generate].")
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case tools.CommandInfo:
		mainCommandInfo(args)
	case tools.CommandConvert:
		mainCommandConvert(args)
	case tools.CommandGenerate:
		mainCommandGenerate(args)
	default:
		log.Fatalf("Unrecognized command [%q]. Command must be one of [info|convert|generate]", cmd)
	}
}

func mainCommandInfo(args []string) {
	flags := tools.ParseFlagsForCommandInfo(args)
	if *flags.Help {
		showHelp()
		return
	}
	setupLogger(*flags.Silent, *flags.LogTimestamp, false)

	opts := options.Options{
		Input:        *flags.Input,
		StrictHeader: *flags.Strict,
		Command:      tools.CommandInfo,
	}

	if msg, res := validateOptionsForCommandInfo(&opts); !res {
		log.Fatal("Error parsing input parameters: " + msg)
	}

	if err := pkg.NewInfo(tools.NewStandardFileFinder(), os.Stdout).Run(&opts); err != nil {
		log.Fatal("Error while reading: ", err)
	}
}

func validateOptionsForCommandInfo(opts *options.Options) (string, bool) {
	if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
		return "Input file not found", false
	}
	return "", true
}

func mainCommandConvert(args []string) {
	flags := tools.ParseFlagsForCommandConvert(args)
	if *flags.Help {
		showHelp()
		return
	}
	setupLogger(*flags.Silent, *flags.LogTimestamp, true)

	// Put args inside an Options struct
	opts := options.Options{
		Input:            *flags.Input,
		StrictHeader:     *flags.Strict,
		FolderProcessing: *flags.FolderProcessing,
		Recursive:        *flags.RecursiveFolderProcessing,
		Storage:          pcd.ParseStorageMode(*flags.Data),
		Command:          tools.CommandConvert,
		ConvertOptions: &options.ConvertOptions{
			Output:           *flags.Output,
			ZOffset:          *flags.ZOffset,
			VoxelSize:        *flags.VoxelSize,
			SourceProjection: *flags.SourceProjection,
			TargetProjection: *flags.TargetProjection,
			Workers:          *flags.Workers,
		},
	}

	if msg, res := validateOptionsForCommandConvert(&opts); !res {
		log.Fatal("Error parsing input parameters: " + msg)
	}

	defer timeTrack(time.Now(), "convert")
	algorithmManager, err := std_algorithm_manager.NewAlgorithmManager(opts.ConvertOptions)
	if err != nil {
		log.Fatal("Error preparing conversion: ", err)
	}

	err = pkg.NewConverter(tools.NewStandardFileFinder(), algorithmManager).Run(&opts)
	if err != nil {
		log.Fatal("Error while converting: ", err)
	} else {
		tools.LogOutput("Conversion Completed")
	}
}

// Validates the input options provided to the command line tool checking
// that input files exist and that the conversion parameters are consistent
func validateOptionsForCommandConvert(opts *options.Options) (string, bool) {
	if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
		return "Input file/folder not found", false
	}
	if opts.FolderProcessing && !tools.IsDirectory(opts.Input) {
		return "Input must be a folder when -folder is set", false
	}
	if opts.ConvertOptions.Output == "" {
		return "Output path is required", false
	}
	if opts.Storage == "" {
		return "data should be either ascii or binary", false
	}
	if opts.ConvertOptions.VoxelSize < 0 {
		return "voxel size cannot be negative", false
	}
	if (opts.ConvertOptions.SourceProjection == "") != (opts.ConvertOptions.TargetProjection == "") {
		return "src-proj and dst-proj must be given together", false
	}
	return "", true
}

func mainCommandGenerate(args []string) {
	flags := tools.ParseFlagsForCommandGenerate(args)
	if *flags.Help {
		showHelp()
		return
	}
	setupLogger(*flags.Silent, *flags.LogTimestamp, true)

	opts := options.Options{
		Storage: pcd.ParseStorageMode(*flags.Data),
		Command: tools.CommandGenerate,
		GenerateOptions: &options.GenerateOptions{
			Output:    *flags.Output,
			Shape:     options.ParseShape(*flags.Shape),
			Step:      *flags.Step,
			Intensity: *flags.Intensity,
		},
	}

	if msg, res := validateOptionsForCommandGenerate(&opts); !res {
		log.Fatal("Error parsing input parameters: " + msg)
	}

	if err := pkg.NewGenerator().Run(&opts); err != nil {
		log.Fatal("Error while generating: ", err)
	}
}

func validateOptionsForCommandGenerate(opts *options.Options) (string, bool) {
	if opts.GenerateOptions.Output == "" {
		return "Output file is required", false
	}
	if opts.Storage == "" {
		return "data should be either ascii or binary", false
	}
	if opts.GenerateOptions.Shape == "" {
		return "shape should be either ellipse or box", false
	}
	if opts.GenerateOptions.Step <= 0 {
		return "step must be positive", false
	}
	return "", true
}

// set logging and timestamp logging
func setupLogger(silent, timestamp, showLogo bool) {
	if silent {
		tools.DisableLogger()
	} else if showLogo {
		printLogo()
	}
	if !timestamp {
		tools.DisableLoggerTimestamp()
	}
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	tools.LogOutput(fmt.Sprintf("%s took %s", name, elapsed))
}

func printLogo() {
	fmt.Println(strings.ReplaceAll(logo, "YYYY", strconv.Itoa(time.Now().Year())))
}

func showHelp() {
	printLogo()
	fmt.Println("***")
	fmt.Println("pcdtool reads, writes, converts and generates PCD point cloud files")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Println("Usage: pcdtool [global flags] info|convert|generate [command flags]")
	fmt.Println("Global flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}
