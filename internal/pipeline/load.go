// Package pipeline turns one input file into a profile and its artifacts.
package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/planbiir/gprofile/internal/gpx"
	"github.com/planbiir/gprofile/internal/nmea"
	"github.com/planbiir/gprofile/internal/track"
)

// ErrUnsupported is returned for files whose extension maps to no reader.
var ErrUnsupported = errors.New("unsupported input format")

// Format names an input reader.
type Format string

const (
	FormatGPX  Format = "gpx"
	FormatNMEA Format = "nmea"
)

var extensions = map[string]Format{
	".gpx":  FormatGPX,
	".nmea": FormatNMEA,
	".log":  FormatNMEA,
	".txt":  FormatNMEA,
}

// DetectFormat picks the reader from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupported, ext)
}

// Input is what a reader extracted from a file.
type Input struct {
	Format           Format
	Name             string
	Points           []track.RawPoint
	SkippedLines     int
	MissingElevation int
}

// Load reads the raw samples of path with the reader for its format.
func Load(path string, log zerolog.Logger) (*Input, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatGPX:
		f, err := gpx.Parse(path)
		if err != nil {
			return nil, err
		}
		if f.FromRoutes {
			log.Info().Str("file", path).Msg("no track points, using route points")
		}
		if f.MissingElevation > 0 {
			log.Warn().Str("file", path).Int("points", f.MissingElevation).Msg("points without elevation read as 0 m")
		}
		return &Input{
			Format:           format,
			Name:             f.Name,
			Points:           f.Points,
			MissingElevation: f.MissingElevation,
		}, nil

	default:
		l, err := nmea.Parse(path, log)
		if err != nil {
			return nil, err
		}
		if l.Skipped > 0 {
			log.Warn().Str("file", path).Int("lines", l.Skipped).Msg("skipped unparseable NMEA lines")
		}
		return &Input{
			Format:       format,
			Points:       l.Points,
			SkippedLines: l.Skipped,
		}, nil
	}
}

// Discover returns the GPX and NMEA files under root in lexical order. Only
// .gpx and .nmea are picked up here; .log and .txt files are accepted when
// named explicitly.
func Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".gpx", ".nmea":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return files, nil
}
