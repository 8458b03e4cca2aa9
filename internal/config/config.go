// Package config holds the gprofile settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config holds chart, processing, output and logging settings.
type Config struct {
	Chart struct {
		Width    int    `yaml:"width"`    // canvas width in pixels
		Height   int    `yaml:"height"`   // canvas height in pixels
		Title    string `yaml:"title"`    // chart title, empty for the file name
		Timezone string `yaml:"timezone"` // IANA zone for annotation times, "Local" or "UTC"
	} `yaml:"chart"`

	Processing struct {
		SmoothingWindow int `yaml:"smoothing_window"` // median filter window, 0 disables
	} `yaml:"processing"`

	Output struct {
		Dir     string `yaml:"dir"`     // artifact directory, empty for next to the input
		PNG     bool   `yaml:"png"`     // write <name>_profile.png
		CSV     bool   `yaml:"csv"`     // write <name>_profile.csv
		GeoJSON bool   `yaml:"geojson"` // write <name>_profile.geojson
	} `yaml:"output"`

	Log struct {
		Level  string `yaml:"level"`  // zerolog level name
		Pretty bool   `yaml:"pretty"` // console output instead of JSON
	} `yaml:"log"`
}

// DefaultConfig returns the settings used when no file is given
func DefaultConfig() Config {
	var c Config
	c.Chart.Width = 1000
	c.Chart.Height = 600
	c.Chart.Timezone = "Local"
	c.Processing.SmoothingWindow = 0
	c.Output.PNG = true
	c.Log.Level = "warn"
	c.Log.Pretty = true
	return c
}

// Load decodes the YAML file at path over DefaultConfig and validates it.
func Load(path string) (Config, error) {
	c := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	if c.Processing.SmoothingWindow < 0 {
		return errors.New("smoothing_window must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// Location resolves the chart time zone.
func (c Config) Location() (*time.Location, error) {
	switch c.Chart.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Chart.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Chart.Timezone, err)
	}
	return loc, nil
}
