package main

import (
	"flag"
	"strings"

	"github.com/piwi3910/parcelgen/internal/model"
	"github.com/piwi3910/parcelgen/internal/project"
)

const (
	CommandSubdivide = "subdivide"
	CommandGenerate  = "generate"
	CommandCompare   = "compare"
	CommandBackup    = "backup"
)

type FlagsGlobal struct {
	Config  *string
	Help    *bool
	Version *bool
}

// setFlags records the flag names given on the command line.
type setFlags map[string]bool

func visited(fs *flag.FlagSet) setFlags {
	set := setFlags{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// Has reports whether any of names was given.
func (s setFlags) Has(names ...string) bool {
	for _, n := range names {
		if s[n] {
			return true
		}
	}
	return false
}

// EngineFlags are shared by every command that runs the subdivision engine.
type EngineFlags struct {
	Depth        *int
	Intersection *string
	Tolerance    *float64
	Workers      *int
	Set          setFlags
}

type FlagsForCommandSubdivide struct {
	EngineFlags
	Input   *string
	Output  *string
	Formats *string
	Help    *bool
}

type FlagsForCommandGenerate struct {
	EngineFlags
	Project      *string
	Template     *string
	SaveProject  *string
	SaveTemplate *string
	Regions      *int
	Points       *int
	Range        *float64
	Spacing      *float64
	RoadDistance *float64
	Seed         *uint64
	Output       *string
	Formats      *string
	Help         *bool
}

type FlagsForCommandCompare struct {
	EngineFlags
	Input *string
	Help  *bool
}

type FlagsForCommandBackup struct {
	Output  *string
	Restore *string
	Help    *bool
}

// ParseFlagsGlobal parses the top-level flags, including glog's.
func ParseFlagsGlobal() FlagsGlobal {
	config := defineStringFlag("config", "c", project.DefaultConfigPath(), "Path of the application config file.")
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	version := defineBoolFlag("version", "", false, "Displays the version of parcelgen.")

	flag.Parse()

	return FlagsGlobal{
		Config:  config,
		Help:    help,
		Version: version,
	}
}

func defineEngineFlags(fs *flag.FlagSet, settings model.SubdivisionSettings) EngineFlags {
	return EngineFlags{
		Depth:        defineIntFlagCommand(fs, "depth", "d", settings.Depth, "Subdivision depth; 0 leaves each region whole."),
		Intersection: defineStringFlagCommand(fs, "intersection", "m", string(settings.Intersection), "Cut line intersection test, 'bbox' or 'orientation'."),
		Tolerance:    defineFloat64FlagCommand(fs, "tolerance", "t", settings.PointTolerance, "Distance under which two points are considered equal."),
		Workers:      defineIntFlagCommand(fs, "workers", "w", settings.Workers, "Number of parallel subdivision workers."),
	}
}

// Apply copies the engine flags given on the command line into settings.
func (f EngineFlags) Apply(settings *model.SubdivisionSettings) {
	if f.Set.Has("depth", "d") {
		settings.Depth = *f.Depth
	}
	if f.Set.Has("intersection", "m") {
		settings.Intersection = model.ParseIntersectionMode(*f.Intersection)
	}
	if f.Set.Has("tolerance", "t") {
		settings.PointTolerance = *f.Tolerance
	}
	if f.Set.Has("workers", "w") {
		settings.Workers = *f.Workers
	}
}

func ParseFlagsForCommandSubdivide(args []string, settings model.SubdivisionSettings, cfg model.AppConfig) FlagsForCommandSubdivide {
	fs := flag.NewFlagSet("command-subdivide", flag.ExitOnError)

	flags := FlagsForCommandSubdivide{
		EngineFlags: defineEngineFlags(fs, settings),
		Input:       defineStringFlagCommand(fs, "input", "i", "", "Boundary file (.csv, .xlsx, .dxf or project .json). Defaults to the unit square."),
		Output:      defineStringFlagCommand(fs, "output", "o", cfg.OutputDir, "Output folder for exported files."),
		Formats:     defineStringFlagCommand(fs, "formats", "f", strings.Join(cfg.ExportFormats, ","), "Comma separated export formats: pdf, labels, dxf, xlsx, json."),
		Help:        defineBoolFlagCommand(fs, "help", "h", false, "Displays this help."),
	}
	fs.Parse(args)
	flags.Set = visited(fs)
	return flags
}

func ParseFlagsForCommandGenerate(args []string, settings model.SubdivisionSettings, cfg model.AppConfig) FlagsForCommandGenerate {
	fs := flag.NewFlagSet("command-generate", flag.ExitOnError)

	flags := FlagsForCommandGenerate{
		EngineFlags:  defineEngineFlags(fs, settings),
		Project:      defineStringFlagCommand(fs, "project", "p", "", "Project file to build instead of generated regions."),
		Template:     defineStringFlagCommand(fs, "template", "", "", "Name of a saved template to build."),
		SaveProject:  defineStringFlagCommand(fs, "save", "", "", "Write the project that was built to this path."),
		SaveTemplate: defineStringFlagCommand(fs, "save-template", "", "", "Store the project that was built as a named template."),
		Regions:      defineIntFlagCommand(fs, "regions", "n", 3, "Number of generated regions."),
		Points:       defineIntFlagCommand(fs, "points", "", settings.RegionPoints, "Vertices of each generated region."),
		Range:        defineFloat64FlagCommand(fs, "range", "r", settings.RegionRange, "Nominal radius of generated regions."),
		Spacing:      defineFloat64FlagCommand(fs, "spacing", "", 0, "Distance between generated region centres; 0 uses three times the range."),
		RoadDistance: defineFloat64FlagCommand(fs, "road-distance", "", settings.MaxRoadDistance, "Longest road link between two regions."),
		Seed:         defineUint64FlagCommand(fs, "seed", "s", settings.Seed, "Random generator seed."),
		Output:       defineStringFlagCommand(fs, "output", "o", cfg.OutputDir, "Output folder for exported files."),
		Formats:      defineStringFlagCommand(fs, "formats", "f", strings.Join(cfg.ExportFormats, ","), "Comma separated export formats: pdf, labels, dxf, xlsx, json."),
		Help:         defineBoolFlagCommand(fs, "help", "h", false, "Displays this help."),
	}
	fs.Parse(args)
	flags.Set = visited(fs)
	return flags
}

func ParseFlagsForCommandCompare(args []string, settings model.SubdivisionSettings) FlagsForCommandCompare {
	fs := flag.NewFlagSet("command-compare", flag.ExitOnError)

	flags := FlagsForCommandCompare{
		EngineFlags: defineEngineFlags(fs, settings),
		Input:       defineStringFlagCommand(fs, "input", "i", "", "Boundary file; the first region is compared. Defaults to the unit square."),
		Help:        defineBoolFlagCommand(fs, "help", "h", false, "Displays this help."),
	}
	fs.Parse(args)
	flags.Set = visited(fs)
	return flags
}

func ParseFlagsForCommandBackup(args []string) FlagsForCommandBackup {
	fs := flag.NewFlagSet("command-backup", flag.ExitOnError)

	flags := FlagsForCommandBackup{
		Output:  defineStringFlagCommand(fs, "output", "o", "", "Write config and templates to this backup file."),
		Restore: defineStringFlagCommand(fs, "restore", "r", "", "Restore config and templates from this backup file."),
		Help:    defineBoolFlagCommand(fs, "help", "h", false, "Displays this help."),
	}
	fs.Parse(args)
	return flags
}

// SplitFormats turns a comma separated list into lower-case format names.
func SplitFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

func defineStringFlag(name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flag.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(fs *flag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	fs.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		fs.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineIntFlagCommand(fs *flag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	fs.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		fs.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineUint64FlagCommand(fs *flag.FlagSet, name string, shortHand string, defaultValue uint64, usage string) *uint64 {
	var output uint64
	fs.Uint64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		fs.Uint64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineFloat64FlagCommand(fs *flag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	fs.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		fs.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlagCommand(fs *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	fs.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		fs.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}
