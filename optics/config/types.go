package config

import "github.com/jdginn/go-light-builder/optics"

// SceneConfig is a complete optics scene as stored on disk
type SceneConfig struct {
	Metadata   Metadata        `yaml:"metadata"`
	Defaults   Defaults        `yaml:"defaults,omitempty"`
	Elements   []ElementConfig `yaml:"elements"`
	Simulation Simulation      `yaml:"simulation"`
	Render     Render          `yaml:"render"`
}

type Metadata struct {
	Timestamp string `yaml:"timestamp"` // YYYY-MM-DD HH:MM:SS in UTC
	GitCommit string `yaml:"git_commit"`
}

// Defaults overrides the built-in element templates per kind
type Defaults struct {
	Inline   map[optics.Kind]optics.Properties `yaml:"inline,omitempty"`
	FromFile string                            `yaml:"from_file,omitempty"`
}

type ElementConfig struct {
	ID         string            `yaml:"id,omitempty"`
	Kind       optics.Kind       `yaml:"kind"`
	Position   [2]float64        `yaml:"position"`
	Rotation   float64           `yaml:"rotation"` // degrees
	Properties optics.Properties `yaml:"properties,omitempty"`
}

// Simulation tunes the tracer. Zero values fall back to the tracer's defaults.
type Simulation struct {
	MaxBounces   int     `yaml:"max_bounces,omitempty"`
	MinIntensity float64 `yaml:"min_intensity,omitempty"`
	FarDistance  float64 `yaml:"far_distance,omitempty"`
}

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Render struct {
	Width  int    `yaml:"width,omitempty"`  // pixels
	Height int    `yaml:"height,omitempty"` // pixels
	Theme  string `yaml:"theme,omitempty"`  // light or dark
}
