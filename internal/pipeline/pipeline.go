package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/planbiir/gprofile/internal/config"
	"github.com/planbiir/gprofile/internal/export"
	"github.com/planbiir/gprofile/internal/render"
	"github.com/planbiir/gprofile/internal/smooth"
	"github.com/planbiir/gprofile/internal/stats"
	"github.com/planbiir/gprofile/internal/track"
)

// Result holds the processed track and what was written for one input.
type Result struct {
	Input          string        `json:"input"`
	Name           string        `json:"name,omitempty"`
	Format         Format        `json:"format"`
	Stats          stats.Stats   `json:"stats"`
	Smoothing      smooth.Stats  `json:"smoothing"`
	SkippedLines   int           `json:"skipped_lines,omitempty"`
	Artifacts      []string      `json:"artifacts"`
	ProcessingTime time.Duration `json:"processing_time_ns"`

	Track track.Track `json:"-"`
}

// Process loads path, builds the track, applies the configured smoothing and
// computes statistics. It writes nothing.
func Process(path string, cfg config.Config, log zerolog.Logger) (*Result, error) {
	start := time.Now()

	in, err := Load(path, log)
	if err != nil {
		return nil, err
	}

	tr := track.Build(in.Points)
	res := &Result{
		Input:        path,
		Name:         in.Name,
		Format:       in.Format,
		SkippedLines: in.SkippedLines,
	}

	tr, res.Smoothing = smooth.Elevation(tr, cfg.Processing.SmoothingWindow)
	if res.Smoothing.Adjusted > 0 {
		log.Debug().
			Str("file", path).
			Int("window", res.Smoothing.Window).
			Int("adjusted", res.Smoothing.Adjusted).
			Float64("max_adjustment_m", res.Smoothing.MaxAdjustment).
			Msg("smoothed elevation")
	}

	res.Track = tr
	res.Stats = stats.Summarize(tr)
	if tr.Empty() {
		log.Warn().Str("file", path).Msg("no track points found")
	}

	res.ProcessingTime = time.Since(start)
	return res, nil
}

// Title is the chart title for res: the configured title, else the track
// name from the file. An empty title makes the chart use its default.
func (r *Result) Title(cfg config.Config) string {
	if cfg.Chart.Title != "" {
		return cfg.Chart.Title
	}
	return r.Name
}

// ArtifactPaths returns the PNG, CSV and GeoJSON paths for input. Artifacts go
// next to the input unless dir is set.
func ArtifactPaths(input, dir string) (pngPath, csvPath, geojsonPath string) {
	if dir == "" {
		dir = filepath.Dir(input)
	}
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	stem := filepath.Join(dir, base+"_profile")
	return stem + ".png", stem + ".csv", stem + ".geojson"
}

// WriteArtifacts writes the outputs enabled in cfg and records their paths.
func (r *Result) WriteArtifacts(cfg config.Config, log zerolog.Logger) error {
	if cfg.Output.Dir != "" {
		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	pngPath, csvPath, geojsonPath := ArtifactPaths(r.Input, cfg.Output.Dir)

	if cfg.Output.PNG {
		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		img, err := render.Rasterize(r.Track, r.Title(cfg), cfg.Chart.Width, cfg.Chart.Height, render.Options{Location: loc})
		if err != nil {
			return fmt.Errorf("failed to render chart: %w", err)
		}
		if err := render.SavePNG(pngPath, img); err != nil {
			return err
		}
		r.wrote(pngPath, log)
	}

	if cfg.Output.CSV {
		if err := export.SaveCSV(csvPath, r.Track); err != nil {
			return err
		}
		r.wrote(csvPath, log)
	}

	if cfg.Output.GeoJSON {
		if err := export.SaveGeoJSON(geojsonPath, r.Track, r.Name); err != nil {
			return err
		}
		r.wrote(geojsonPath, log)
	}

	return nil
}

func (r *Result) wrote(path string, log zerolog.Logger) {
	r.Artifacts = append(r.Artifacts, path)
	log.Info().Str("file", r.Input).Str("artifact", path).Msg("wrote artifact")
}

// Run processes path and writes its artifacts.
func Run(path string, cfg config.Config, log zerolog.Logger) (*Result, error) {
	res, err := Process(path, cfg, log)
	if err != nil {
		return nil, err
	}
	if err := res.WriteArtifacts(cfg, log); err != nil {
		return res, err
	}
	return res, nil
}
