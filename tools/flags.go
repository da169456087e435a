package tools

import (
	"flag"
	"log"

	"github.com/shopspring/decimal"
)

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

// AxisFlags is one (element, property, pre, scale, post) selector as
// read from the command line; Pre/Scale/Post are parsed with
// shopspring/decimal so fractional CLI arguments decode the same way
// regardless of host locale, then converted to float64 once validated.
type AxisFlags struct {
	Element *string
	Property *string
	Pre     *string
	Scale   *string
	Post    *string
}

// RasterAxisFlags is one raster-index (element, property) selector; no
// scaling is applied to raster coordinates.
type RasterAxisFlags struct {
	Element  *string
	Property *string
}

type FlagsForRasterize struct {
	Input  *string
	Width  *int
	Height *int
	Output *string

	OutputFormat *string

	X     AxisFlags
	Y     AxisFlags
	Value AxisFlags

	RasterX RasterAxisFlags
	RasterY RasterAxisFlags

	RasterFilter  *string
	DisableRaster *bool

	Silent       *bool
	LogTimestamp *bool

	Help    *bool
	Version *bool

	// ExplicitlySet records which flag names the user passed on the
	// command line, as opposed to ones left at their default; the
	// driver uses it to tell a defaulted raster property selector
	// (silently downgradable) from an explicit one (hard error if
	// absent from the file), and to reject --disable-raster combined
	// with any raster-related flag.
	ExplicitlySet map[string]bool
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	version := defineBoolFlag("version", "v", false, "Displays the version of plyraster.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
	}
}

// ParseFlagsForRasterize reads every flag the rasterize command
// accepts, defaulting element selectors to "vertex", x/y/value
// property selectors to "x"/"y"/"z", raster property selectors to
// "raster_x"/"raster_y", the affine transform to "0"/"1"/"0", and the
// neighbor filter to "min", per the documented CLI surface.
func ParseFlagsForRasterize(args []string) FlagsForRasterize {
	log.Println(FmtJSONString(args))

	fc := flag.NewFlagSet("plyraster", flag.ExitOnError)

	input := defineStringFlagCommand(fc, "input", "i", "", "Specifies the input PLY file.")
	width := defineIntFlagCommand(fc, "width", "", 0, "Target image width, in pixels.")
	height := defineIntFlagCommand(fc, "height", "", 0, "Target image height, in pixels.")
	output := defineStringFlagCommand(fc, "output", "o", "", "Specifies the output image file.")
	outputFormat := defineStringFlagCommand(fc, "output-format", "", "bbf", "Output format, one of [bbf|png].")

	xElement := defineStringFlagCommand(fc, "x-element", "", "vertex", "PLY element supplying the x axis.")
	xProperty := defineStringFlagCommand(fc, "x-property", "", "x", "PLY property supplying the x axis.")
	xPre := defineStringFlagCommand(fc, "x-pre", "", "0", "Pre-scale offset applied to the x axis before scaling.")
	xScale := defineStringFlagCommand(fc, "x-scale", "", "1", "Scale factor applied to the x axis.")
	xPost := defineStringFlagCommand(fc, "x-post", "", "0", "Post-scale offset applied to the x axis after scaling.")

	yElement := defineStringFlagCommand(fc, "y-element", "", "vertex", "PLY element supplying the y axis.")
	yProperty := defineStringFlagCommand(fc, "y-property", "", "y", "PLY property supplying the y axis.")
	yPre := defineStringFlagCommand(fc, "y-pre", "", "0", "Pre-scale offset applied to the y axis before scaling.")
	yScale := defineStringFlagCommand(fc, "y-scale", "", "1", "Scale factor applied to the y axis.")
	yPost := defineStringFlagCommand(fc, "y-post", "", "0", "Post-scale offset applied to the y axis after scaling.")

	valueElement := defineStringFlagCommand(fc, "value-element", "", "vertex", "PLY element supplying the painted value.")
	valueProperty := defineStringFlagCommand(fc, "value-property", "", "z", "PLY property supplying the painted value.")
	valuePre := defineStringFlagCommand(fc, "value-pre", "", "0", "Pre-scale offset applied to the value before scaling.")
	valueScale := defineStringFlagCommand(fc, "value-scale", "", "1", "Scale factor applied to the value.")
	valuePost := defineStringFlagCommand(fc, "value-post", "", "0", "Post-scale offset applied to the value after scaling.")

	rasterXElement := defineStringFlagCommand(fc, "raster-x-element", "", "vertex", "PLY element supplying the raster x index.")
	rasterXProperty := defineStringFlagCommand(fc, "raster-x-property", "", "raster_x", "PLY property supplying the raster x index.")
	rasterYElement := defineStringFlagCommand(fc, "raster-y-element", "", "vertex", "PLY element supplying the raster y index.")
	rasterYProperty := defineStringFlagCommand(fc, "raster-y-property", "", "raster_y", "PLY property supplying the raster y index.")

	rasterFilter := defineStringFlagCommand(fc, "raster-filter", "", "min", "Neighbor filter applied after raster-aware painting, one of [min|max|none].")
	disableRaster := defineBoolFlagCommand(fc, "disable-raster", "", false, "Disables raster-aware mode even if raster properties are present; forces dense bilinear distribution.")

	silent := defineBoolFlagCommand(fc, "silent", "s", false, "Use to suppress all the non-error messages.")
	logTimestamp := defineBoolFlagCommand(fc, "timestamp", "t", false, "Adds timestamp to log messages.")
	help := defineBoolFlagCommand(fc, "help", "h", false, "Displays this help.")
	version := defineBoolFlagCommand(fc, "version", "v", false, "Displays the version of plyraster.")

	fc.Parse(args)

	explicitlySet := map[string]bool{}
	fc.Visit(func(f *flag.Flag) {
		explicitlySet[f.Name] = true
	})

	return FlagsForRasterize{
		Input:        input,
		Width:        width,
		Height:       height,
		Output:       output,
		OutputFormat: outputFormat,
		X:            AxisFlags{Element: xElement, Property: xProperty, Pre: xPre, Scale: xScale, Post: xPost},
		Y:            AxisFlags{Element: yElement, Property: yProperty, Pre: yPre, Scale: yScale, Post: yPost},
		Value:        AxisFlags{Element: valueElement, Property: valueProperty, Pre: valuePre, Scale: valueScale, Post: valuePost},
		RasterX:      RasterAxisFlags{Element: rasterXElement, Property: rasterXProperty},
		RasterY:      RasterAxisFlags{Element: rasterYElement, Property: rasterYProperty},
		RasterFilter: rasterFilter,
		DisableRaster: disableRaster,
		Silent:        silent,
		LogTimestamp:  logTimestamp,
		Help:          help,
		Version:       version,
		ExplicitlySet: explicitlySet,
	}
}

// ParseDecimal parses a CLI numeric argument via shopspring/decimal so
// it decodes identically regardless of host locale, then narrows to
// float64 for the extraction/scaling stage.
func ParseDecimal(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name {
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

func defineBoolFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}
