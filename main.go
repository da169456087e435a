/*
 * This file is part of the Go Cesium Point Cloud Tiler distribution (https://github.com/mfbonfigli/gocesiumtiler).
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
	"image/png"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ecopia-map/plyraster/internal/perrors"
	"github.com/ecopia-map/plyraster/internal/pngbridge"
	"github.com/ecopia-map/plyraster/internal/point"
	"github.com/ecopia-map/plyraster/internal/ply"
	"github.com/ecopia-map/plyraster/internal/raster"
	"github.com/ecopia-map/plyraster/internal/rawwriter"
	"github.com/ecopia-map/plyraster/tools"
	"github.com/golang/glog"
)

const VERSION = "1.0.0"

const logo = `
       _                       _
 _ __ | |_   _ _ __ __ _ ___ | |_ ___ _ __
| '_ \| | | | | '__/ _  |/ __|| __/ _ \ '__|
| |_) | | |_| | | | (_| |\__ \| ||  __/ |
| .__/|_|\__, |_|  \__,_||___/ \__\___|_|
|_|      |___/  Copyright YYYY - point cloud to raster converter
`

// exit codes per the documented CLI contract. exitArgParseFail is
// returned when the "convert" subcommand is missing or unknown. A
// failure thrown by flag parsing itself (unknown flag, malformed value
// for a typed flag) never reaches these codes: flag.ExitOnError
// terminates the process directly, with the flag package's own exit
// status 2, inside tools.ParseFlagsGlobal or tools.ParseFlagsForRasterize.
// validateFlags runs strictly after a successful Parse, so every
// failure it reports - missing required flag, file not found, an
// invalid enum value, a --disable-raster conflict - is a semantic
// argument error, not a parse error, and exits exitGenericError.
const (
	exitSuccess      = 0
	exitGenericError = 2
	exitOSFailure    = 3
	exitArgParseFail = -1
)

func main() {
	flagsGlobal := tools.ParseFlagsGlobal()

	args := flag.Args()
	if *flagsGlobal.Help {
		showHelp()
		os.Exit(exitSuccess)
	}
	if *flagsGlobal.Version {
		printVersion()
		os.Exit(exitSuccess)
	}
	if len(args) == 0 || args[0] != "convert" {
		showHelp()
		os.Exit(exitArgParseFail)
	}

	os.Exit(runRasterize(args[1:]))
}

func runRasterize(args []string) int {
	flags := tools.ParseFlagsForRasterize(args)

	if *flags.Help {
		showHelp()
		return exitSuccess
	}
	if *flags.Version {
		printVersion()
		return exitSuccess
	}

	if *flags.Silent {
		tools.DisableLogger()
	} else {
		printLogo()
	}
	if !*flags.LogTimestamp {
		tools.DisableLoggerTimestamp()
	}

	if msg, ok := validateFlags(&flags); !ok {
		glog.Errorln("argument error:", msg)
		return exitGenericError
	}

	if err := rasterize(&flags); err != nil {
		if perr, ok := err.(*perrors.Error); ok && perr.Kind == perrors.IO {
			glog.Errorln("I/O error:", err)
			return exitOSFailure
		}
		glog.Errorln("error:", err)
		return exitGenericError
	}

	tools.LogOutput("Conversion completed")
	return exitSuccess
}

// raster-related flag names, used by validateFlags to reject
// --disable-raster combined with any of them.
var rasterRelatedFlags = []string{
	"raster-x-element", "raster-x-property",
	"raster-y-element", "raster-y-property",
	"raster-filter",
}

func validateFlags(flags *tools.FlagsForRasterize) (string, bool) {
	if *flags.Input == "" {
		return "--input is required", false
	}
	if _, err := os.Stat(*flags.Input); os.IsNotExist(err) {
		return "input file not found: " + *flags.Input, false
	}
	if *flags.Width <= 0 || *flags.Height <= 0 {
		return "--width and --height must be positive", false
	}
	if *flags.Output == "" {
		return "--output is required", false
	}
	if *flags.OutputFormat != "bbf" && *flags.OutputFormat != "png" {
		return "--output-format must be one of [bbf|png]", false
	}
	switch *flags.RasterFilter {
	case "min", "max", "none":
	default:
		return "--raster-filter must be one of [min|max|none]", false
	}

	if *flags.DisableRaster {
		for _, name := range rasterRelatedFlags {
			if flags.ExplicitlySet[name] {
				return "--disable-raster cannot be combined with --" + name, false
			}
		}
	}

	return "", true
}

func rasterize(flags *tools.FlagsForRasterize) error {
	file, _, err := ply.Load(*flags.Input)
	if err != nil {
		return err
	}

	opts, useRaster, err := buildExtractOptions(flags, file)
	if err != nil {
		return err
	}

	points, hasRaster, err := point.Extract(file, opts)
	if err != nil {
		return err
	}
	useRaster = useRaster && hasRaster

	var img *raster.Image
	if useRaster {
		img, err = raster.RasterAware(points, *flags.Width, *flags.Height, parseFilter(*flags.RasterFilter))
		if err != nil {
			return err
		}
	} else {
		dense := make([]point.Point, len(points))
		for i, p := range points {
			dense[i] = p.Point
		}
		img = raster.Dense(dense, *flags.Width, *flags.Height)
	}

	return writeOutput(flags, img)
}

// buildExtractOptions translates CLI flags into point.Options. When
// raster mode is requested but the user left the raster property
// selectors at their defaults and the file has no such properties, it
// downgrades to no-raster mode with a warning instead of failing; an
// explicitly chosen raster selector absent from the file surfaces
// through the normal column-not-found error in point.Extract.
func buildExtractOptions(flags *tools.FlagsForRasterize, file *ply.File) (point.Options, bool, error) {
	xPre, err := tools.ParseDecimal(*flags.X.Pre)
	if err != nil {
		return point.Options{}, false, perrors.New(perrors.Usage, "invalid --x-pre: %v", err)
	}
	xScale, err := tools.ParseDecimal(*flags.X.Scale)
	if err != nil {
		return point.Options{}, false, perrors.New(perrors.Usage, "invalid --x-scale: %v", err)
	}
	xPost, err := tools.ParseDecimal(*flags.X.Post)
	if err != nil {
		return point.Options{}, false, perrors.New(perrors.Usage, "invalid --x-post: %v", err)
	}
	yPre, err := tools.ParseDecimal(*flags.Y.Pre)
	if err != nil {
		return point.Options{}, false, perrors.New(perrors.Usage, "invalid --y-pre: %v", err)
	}
	yScale, err := tools.ParseDecimal(*flags.Y.Scale)
	if err != nil {
		return point.Options{}, false, perrors.New(perrors.Usage, "invalid --y-scale: %v", err)
	}
	yPost, err := tools.ParseDecimal(*flags.Y.Post)
	if err != nil {
		return point.Options{}, false, perrors.New(perrors.Usage, "invalid --y-post: %v", err)
	}
	vPre, err := tools.ParseDecimal(*flags.Value.Pre)
	if err != nil {
		return point.Options{}, false, perrors.New(perrors.Usage, "invalid --value-pre: %v", err)
	}
	vScale, err := tools.ParseDecimal(*flags.Value.Scale)
	if err != nil {
		return point.Options{}, false, perrors.New(perrors.Usage, "invalid --value-scale: %v", err)
	}
	vPost, err := tools.ParseDecimal(*flags.Value.Post)
	if err != nil {
		return point.Options{}, false, perrors.New(perrors.Usage, "invalid --value-post: %v", err)
	}

	opts := point.Options{
		X:     point.AxisSelector{Element: *flags.X.Element, Property: *flags.X.Property, Pre: xPre, Scale: xScale, Post: xPost},
		Y:     point.AxisSelector{Element: *flags.Y.Element, Property: *flags.Y.Property, Pre: yPre, Scale: yScale, Post: yPost},
		Value: point.AxisSelector{Element: *flags.Value.Element, Property: *flags.Value.Property, Pre: vPre, Scale: vScale, Post: vPost},
	}

	if *flags.DisableRaster {
		return opts, false, nil
	}

	rasterExplicit := flags.ExplicitlySet["raster-x-element"] || flags.ExplicitlySet["raster-x-property"] ||
		flags.ExplicitlySet["raster-y-element"] || flags.ExplicitlySet["raster-y-property"]

	present := point.PropertyPresent(file, *flags.RasterX.Element, *flags.RasterX.Property) &&
		point.PropertyPresent(file, *flags.RasterY.Element, *flags.RasterY.Property)

	if !present && !rasterExplicit {
		tools.LogOutput(fmt.Sprintf("warning: default raster properties %q/%q not found on element, falling back to dense mode",
			*flags.RasterX.Property, *flags.RasterY.Property))
		return opts, false, nil
	}

	opts.RX = &point.RasterSelector{Element: *flags.RasterX.Element, Property: *flags.RasterX.Property}
	opts.RY = &point.RasterSelector{Element: *flags.RasterY.Element, Property: *flags.RasterY.Property}
	return opts, true, nil
}

func parseFilter(name string) raster.Filter {
	switch name {
	case "max":
		return raster.FilterMax
	case "none":
		return raster.FilterNone
	default:
		return raster.FilterMin
	}
}

func writeOutput(flags *tools.FlagsForRasterize, img *raster.Image) error {
	f := tools.CreateFileOrFail(*flags.Output)
	defer f.Close()

	switch *flags.OutputFormat {
	case "png":
		rows, err := pngbridge.Convert(img)
		if err != nil {
			return err
		}
		return png.Encode(f, pngbridge.ToGrayAlpha(rows))
	default:
		return rawwriter.Write(f, img)
	}
}

func printLogo() {
	fmt.Println(strings.ReplaceAll(logo, "YYYY", strconv.Itoa(time.Now().Year())))
}

func showHelp() {
	printLogo()
	fmt.Println("***")
	fmt.Println("plyraster converts a 3D point cloud stored as PLY into a 2D raster image.")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Println("Command line flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}
