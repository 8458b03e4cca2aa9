package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/planbiir/gprofile/internal/config"
	"github.com/planbiir/gprofile/internal/logging"
	"github.com/planbiir/gprofile/internal/pipeline"
	"github.com/planbiir/gprofile/internal/stats"
)

// cliFlags are the settings that can override the config file.
type cliFlags struct {
	output   string
	title    string
	timezone string
	width    int
	height   int
	smooth   int
	csv      bool
	geojson  bool
	noPNG    bool
	logLevel string
}

// apply copies the flags the user actually set onto cfg.
func (f cliFlags) apply(cfg *config.Config, set map[string]bool) {
	if set["o"] {
		cfg.Output.Dir = f.output
	}
	if set["title"] {
		cfg.Chart.Title = f.title
	}
	if set["tz"] {
		cfg.Chart.Timezone = f.timezone
	}
	if set["width"] {
		cfg.Chart.Width = f.width
	}
	if set["height"] {
		cfg.Chart.Height = f.height
	}
	if set["smooth"] {
		cfg.Processing.SmoothingWindow = f.smooth
	}
	if set["csv"] {
		cfg.Output.CSV = f.csv
	}
	if set["geojson"] {
		cfg.Output.GeoJSON = f.geojson
	}
	if set["no-png"] {
		cfg.Output.PNG = !f.noPNG
	}
	if set["log-level"] {
		cfg.Log.Level = f.logLevel
	}
}

func main() {
	var (
		f          cliFlags
		inputPath  = flag.String("i", "", "Input GPX/NMEA file or directory")
		configPath = flag.String("config", "", "YAML config file")
		showSample = flag.Bool("samples", false, "Print a sample table of track points")
		statsJSON  = flag.Bool("stats-json", false, "Output statistics as JSON")
		version    = flag.Bool("version", false, "Show version information")
	)
	flag.StringVar(&f.output, "o", "", "Output directory (default: next to the input)")
	flag.StringVar(&f.title, "title", "", "Chart title (default: track name)")
	flag.StringVar(&f.timezone, "tz", "Local", "Time zone for annotation times")
	flag.IntVar(&f.width, "width", 1000, "Chart width in pixels")
	flag.IntVar(&f.height, "height", 600, "Chart height in pixels")
	flag.IntVar(&f.smooth, "smooth", 0, "Median elevation smoothing window (0 disables)")
	flag.BoolVar(&f.csv, "csv", false, "Write <name>_profile.csv")
	flag.BoolVar(&f.geojson, "geojson", false, "Write <name>_profile.geojson")
	flag.BoolVar(&f.noPNG, "no-png", false, "Do not write the chart image")
	flag.StringVar(&f.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	flag.Usage = func() {
		fmt.Printf("gprofile - Elevation profiles from GPS tracks\n\n")
		fmt.Printf("usage: gprofile -i /path/to/track.gpx\n\n")
		fmt.Printf("examples:\n")
		fmt.Printf("  gprofile -i track.gpx\n")
		fmt.Printf("  gprofile -i track.gpx -csv -geojson -o charts\n")
		fmt.Printf("  gprofile -i drive.nmea -smooth 7 -tz Europe/Zurich\n")
		fmt.Printf("  gprofile -i ~/rides -config gprofile.yaml\n\n")
		fmt.Printf("options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Println("gprofile v1.0.0 - GPS elevation profiles")
		fmt.Println("https://github.com/planbiir/gprofile")
		os.Exit(0)
	}

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	set := make(map[string]bool)
	flag.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	f.apply(&cfg, set)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in options: %v\n", err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Pretty, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(2)
	}

	info, err := os.Stat(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	// Human-readable progress goes to stdout unless JSON was asked for
	out := io.Writer(os.Stdout)
	if *statsJSON {
		out = io.Discard
	}

	if info.IsDir() {
		os.Exit(runBatch(*inputPath, cfg, log, out, *statsJSON))
	}
	os.Exit(runSingle(*inputPath, cfg, log, out, *statsJSON, *showSample))
}

func runSingle(path string, cfg config.Config, log zerolog.Logger, out io.Writer, statsJSON, showSample bool) int {
	fmt.Fprintf(out, "📖 Reading track: %s\n", path)

	res, err := pipeline.Process(path, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading track: %v\n", err)
		return 1
	}

	fmt.Fprintf(out, "📊 Loaded %d track points\n\n", res.Stats.Count)
	if err := stats.WriteReport(out, res.Stats); err != nil {
		fmt.Fprintf(os.Stderr, "Error printing statistics: %v\n", err)
		return 1
	}
	if res.Smoothing.Adjusted > 0 {
		fmt.Fprintf(out, "Smoothing: %d points adjusted (window %d, max %.2f m)\n",
			res.Smoothing.Adjusted, res.Smoothing.Window, res.Smoothing.MaxAdjustment)
	}

	if showSample && res.Stats.Count > 0 {
		fmt.Fprintln(out)
		if err := stats.WriteSamples(out, res.Track); err != nil {
			fmt.Fprintf(os.Stderr, "Error printing samples: %v\n", err)
			return 1
		}
	}

	if err := res.WriteArtifacts(cfg, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		return 1
	}

	fmt.Fprintln(out)
	for _, a := range res.Artifacts {
		fmt.Fprintf(out, "💾 Wrote %s\n", a)
	}

	if statsJSON {
		if err := printJSON(res); err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling stats: %v\n", err)
			return 1
		}
	}

	fmt.Fprintf(out, "✅ Profile created in %v\n", res.ProcessingTime)
	return 0
}

func runBatch(root string, cfg config.Config, log zerolog.Logger, out io.Writer, statsJSON bool) int {
	files, err := pipeline.Discover(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning directory: %v\n", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Fprintf(out, "❌ No GPX or NMEA files found in %s\n", root)
		return 1
	}

	fmt.Fprintf(out, "📂 Found %d track files in %s\n", len(files), root)

	var (
		results []*pipeline.Result
		failed  int
	)
	bar := progressbar.Default(int64(len(files)), "Profiling")
	for _, path := range files {
		res, err := pipeline.Run(path, cfg, log)
		if err != nil {
			failed++
			log.Error().Err(err).Str("file", path).Msg("failed to process track")
		} else {
			results = append(results, res)
		}
		bar.Add(1)
	}
	bar.Finish()

	if statsJSON {
		if err := printJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling stats: %v\n", err)
			return 1
		}
	}

	fmt.Fprintf(out, "\n✅ Processed %d of %d files\n", len(results), len(files))
	for _, res := range results {
		fmt.Fprintf(out, "   %s: %d points, %s\n",
			res.Input, res.Stats.Count, stats.FormatDistance(res.Stats.TotalDistance))
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "❌ %d files failed, see log for details\n", failed)
		return 1
	}
	return 0
}

func printJSON(v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(jsonData))
	return nil
}
