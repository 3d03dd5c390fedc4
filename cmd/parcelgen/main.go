// parcelgen subdivides polygonal regions into lots by recursive
// minimum-area bounding box cuts and exports the resulting plan.
//
// Build:
//
//	go build -o parcelgen ./cmd/parcelgen
//
// Usage:
//
//	parcelgen [-config file] [-v N -logtostderr] <subdivide|generate|compare|backup> [flags]
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/golang/glog"

	"github.com/piwi3910/parcelgen/internal/engine"
	"github.com/piwi3910/parcelgen/internal/export"
	"github.com/piwi3910/parcelgen/internal/importer"
	"github.com/piwi3910/parcelgen/internal/model"
	"github.com/piwi3910/parcelgen/internal/project"
	"github.com/piwi3910/parcelgen/internal/region"
)

const VERSION = "0.1.0"

func main() {
	flagsGlobal := ParseFlagsGlobal()
	defer glog.Flush()

	if *flagsGlobal.Version {
		printVersion()
		return
	}
	args := flag.Args()
	if *flagsGlobal.Help || len(args) == 0 {
		showHelp()
		if len(args) == 0 && !*flagsGlobal.Help {
			exit(2)
		}
		return
	}

	cfg, err := project.LoadAppConfig(*flagsGlobal.Config)
	if err != nil {
		glog.Warningf("config %s: %v, using defaults", *flagsGlobal.Config, err)
		cfg = model.DefaultAppConfig()
	}
	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)

	cmd, args := args[0], args[1:]
	switch cmd {
	case CommandSubdivide:
		err = mainCommandSubdivide(args, settings, cfg)
	case CommandGenerate:
		err = mainCommandGenerate(args, settings, &cfg, *flagsGlobal.Config)
	case CommandCompare:
		err = mainCommandCompare(args, settings)
	case CommandBackup:
		err = mainCommandBackup(args, cfg, *flagsGlobal.Config)
	default:
		err = fmt.Errorf("unrecognized command %q, must be one of [%s|%s|%s|%s]",
			cmd, CommandSubdivide, CommandGenerate, CommandCompare, CommandBackup)
	}
	if err != nil {
		glog.Error(err)
		fmt.Fprintln(os.Stderr, "error:", err)
		exit(1)
	}
}

func exit(code int) {
	glog.Flush()
	os.Exit(code)
}

func showHelp() {
	fmt.Println("parcelgen subdivides regions into lots by recursive minimum bounding box cuts.")
	printVersion()
	fmt.Println("")
	fmt.Println("Commands: subdivide, generate, compare, backup. Use '<command> -h' for command flags.")
	fmt.Println("")
	fmt.Println("Command line flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}

func unitSquare() model.Outline {
	return model.Outline{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

// loadRegions reads region boundaries from a file chosen by extension. A
// project file also supplies its settings through settings.
func loadRegions(path string, settings *model.SubdivisionSettings) ([]model.RegionSpec, error) {
	if path == "" {
		spec := model.NewRegionSpec("Unit", model.Point2D{X: 0.5, Y: 0.5}, 0, 0)
		spec.Boundary = unitSquare()
		return []model.RegionSpec{spec}, nil
	}

	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		result = importer.ImportCSV(path)
	case ".xlsx":
		result = importer.ImportExcel(path)
	case ".dxf":
		result = importer.ImportDXF(path)
	case ".json":
		p, err := project.LoadProject(path)
		if err != nil {
			return nil, err
		}
		*settings = p.Settings
		return p.Regions, nil
	default:
		return nil, fmt.Errorf("unsupported input format %q", filepath.Ext(path))
	}

	for _, w := range result.Warnings {
		glog.Warningf("%s: %s", path, w)
	}
	for _, e := range result.Errors {
		glog.Errorf("%s: %s", path, e)
	}
	if len(result.Regions) == 0 {
		return nil, fmt.Errorf("no regions imported from %s (%d errors)", path, len(result.Errors))
	}
	return result.Regions, nil
}

func mainCommandSubdivide(args []string, settings model.SubdivisionSettings, cfg model.AppConfig) error {
	flags := ParseFlagsForCommandSubdivide(args, settings, cfg)
	if *flags.Help {
		return nil
	}

	specs, err := loadRegions(*flags.Input, &settings)
	if err != nil {
		return err
	}
	flags.EngineFlags.Apply(&settings)

	plan, err := region.BuildPlan(region.NewRNG(settings.Seed), specs, settings)
	if err != nil {
		return err
	}
	printLots(plan)
	return writeExports(plan, settings, *flags.Output, baseName(*flags.Input, "subdivision"), SplitFormats(*flags.Formats))
}

func mainCommandGenerate(args []string, settings model.SubdivisionSettings, cfg *model.AppConfig, configPath string) error {
	flags := ParseFlagsForCommandGenerate(args, settings, *cfg)
	if *flags.Help {
		return nil
	}

	templatePath := filepath.Join(filepath.Dir(configPath), filepath.Base(project.DefaultTemplatePath()))
	var p model.Project
	switch {
	case *flags.Project != "":
		loaded, err := project.LoadProject(*flags.Project)
		if err != nil {
			return err
		}
		p = loaded
		cfg.AddRecentProject(*flags.Project, project.MaxRecentProjects)
	case *flags.Template != "":
		store, err := project.LoadTemplates(templatePath)
		if err != nil {
			return err
		}
		tmpl := store.FindByName(*flags.Template)
		if tmpl == nil {
			return fmt.Errorf("template %q not found, have %v", *flags.Template, store.Names())
		}
		p = tmpl.ToProject(*flags.Template)
	default:
		p = model.NewProject()
		p.Name = "Generated"
		p.Settings = settings
		p.Settings.RegionPoints = *flags.Points
		p.Settings.RegionRange = *flags.Range
		p.Regions = generatedRegions(*flags.Regions, *flags.Points, *flags.Range, *flags.Spacing)
	}

	if flags.Set.Has("road-distance") {
		p.Settings.MaxRoadDistance = *flags.RoadDistance
	}
	if flags.Set.Has("seed", "s") {
		p.Settings.Seed = *flags.Seed
	}
	flags.EngineFlags.Apply(&p.Settings)

	plan, err := region.BuildPlan(region.NewRNG(p.Settings.Seed), p.Regions, p.Settings)
	if err != nil {
		return err
	}
	printLots(plan)
	printRoads(plan)

	if *flags.SaveProject != "" {
		if err := project.SaveProject(*flags.SaveProject, p); err != nil {
			return err
		}
		cfg.AddRecentProject(*flags.SaveProject, project.MaxRecentProjects)
	}
	if *flags.SaveTemplate != "" {
		store, err := project.LoadTemplates(templatePath)
		if err != nil {
			return err
		}
		if old := store.FindByName(*flags.SaveTemplate); old != nil {
			store.Remove(old.ID)
		}
		store.Add(model.NewProjectTemplate(*flags.SaveTemplate, p.Name, p.Regions, p.Settings))
		if err := project.SaveTemplates(templatePath, store); err != nil {
			return err
		}
	}
	if *flags.Project != "" || *flags.SaveProject != "" {
		if err := project.SaveAppConfig(configPath, *cfg); err != nil {
			glog.Warningf("failed to update config: %v", err)
		}
	}

	return writeExports(plan, p.Settings, *flags.Output, baseName(*flags.Project, strings.ToLower(p.Name)), SplitFormats(*flags.Formats))
}

// generatedRegions lays n generated regions out on a row.
func generatedRegions(n, points int, rng, spacing float64) []model.RegionSpec {
	if spacing <= 0 {
		spacing = 3 * rng
	}
	specs := make([]model.RegionSpec, n)
	for i := range specs {
		center := model.Point2D{X: float64(i) * spacing}
		specs[i] = model.NewRegionSpec(fmt.Sprintf("Region %d", i+1), center, rng, points)
	}
	return specs
}

func mainCommandCompare(args []string, settings model.SubdivisionSettings) error {
	flags := ParseFlagsForCommandCompare(args, settings)
	if *flags.Help {
		return nil
	}

	specs, err := loadRegions(*flags.Input, &settings)
	if err != nil {
		return err
	}
	flags.EngineFlags.Apply(&settings)

	boundary := specs[0].Boundary
	if len(boundary) == 0 {
		boundary = region.GeneratePolygon(region.NewRNG(settings.Seed), specs[0].Center, specs[0].Range, specs[0].NumPoints)
	}

	results := engine.CompareScenarios(engine.BuildDefaultScenarios(settings), boundary)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tLEAVES\tLEAF AREA\tAREA ERROR\tMIN\tMAX\tANOMALIES")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.2e\t%.4f\t%.4f\t%d\n", r.Scenario.Name, r.LeafCount,
			r.TotalLeafArea, r.AreaError, r.MinLeafArea, r.MaxLeafArea, r.Anomalies)
	}
	return w.Flush()
}

func mainCommandBackup(args []string, cfg model.AppConfig, configPath string) error {
	flags := ParseFlagsForCommandBackup(args)
	if *flags.Help {
		return nil
	}
	templatePath := filepath.Join(filepath.Dir(configPath), filepath.Base(project.DefaultTemplatePath()))

	switch {
	case *flags.Output != "":
		store, err := project.LoadTemplates(templatePath)
		if err != nil {
			return err
		}
		if err := project.ExportAllData(*flags.Output, cfg, store); err != nil {
			return err
		}
		fmt.Println("backup written to", *flags.Output)
	case *flags.Restore != "":
		backup, err := project.ImportAllData(*flags.Restore)
		if err != nil {
			return err
		}
		if err := project.SaveAppConfig(configPath, backup.Config); err != nil {
			return err
		}
		if err := project.SaveTemplates(templatePath, backup.Templates); err != nil {
			return err
		}
		fmt.Printf("restored config and %d templates from %s\n", len(backup.Templates.Templates), *flags.Restore)
	default:
		return errors.New("backup needs -output or -restore")
	}
	return nil
}

func baseName(input, fallback string) string {
	if input == "" {
		return fallback
	}
	return strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
}

func printLots(plan *region.Plan) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REGION\tLOT\tAREA\tWIDTH\tHEIGHT\tCENTROID")
	for _, l := range plan.Lots() {
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%.4f\t(%.4f, %.4f)\n",
			l.Region, l.Name, l.Area, l.Width, l.Height, l.Centroid.X, l.Centroid.Y)
	}
	w.Flush()

	r := plan.Report
	fmt.Printf("%d lots, %d splits, %d degenerate splits, %d malformed boundaries\n",
		r.Leaves, r.Splits, r.DegenerateSplits, r.MalformedBoundaries)
}

func printRoads(plan *region.Plan) {
	for _, road := range plan.Roads {
		fmt.Printf("road %s -> %s: %.2f\n", road.From, road.To, road.Length)
	}
}

// writeExports writes plan in each requested format into dir.
func writeExports(plan *region.Plan, settings model.SubdivisionSettings, dir, base string, formats []string) error {
	if len(formats) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	for _, format := range formats {
		var path string
		var err error
		switch format {
		case "pdf":
			path = filepath.Join(dir, base+".pdf")
			err = export.ExportPDF(path, plan, settings)
		case "labels":
			path = filepath.Join(dir, base+"-labels.pdf")
			err = export.ExportLabels(path, plan.Lots())
		case "dxf":
			path = filepath.Join(dir, base+".dxf")
			err = export.ExportDXF(path, plan)
		case "xlsx":
			path = filepath.Join(dir, base+".xlsx")
			err = export.ExportXLSX(path, plan)
		case "json":
			path = filepath.Join(dir, base+"-lots.json")
			err = export.ExportJSON(path, plan)
		default:
			glog.Warningf("unknown export format %q", format)
			continue
		}
		if err != nil {
			return fmt.Errorf("export %s: %w", format, err)
		}
		glog.Infof("wrote %s", path)
		fmt.Println("wrote", path)
	}
	return nil
}
