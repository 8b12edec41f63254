package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// LoadOptions configures the behavior of config loading
type LoadOptions struct {
	ValidateImmediately bool
	ResolvePaths        bool
	MergeFiles          bool
}

// DefaultLoadOptions resolves, merges and validates
var DefaultLoadOptions = LoadOptions{ValidateImmediately: true, ResolvePaths: true, MergeFiles: true}

// LoadFromFile loads a SceneConfig from a YAML file
func LoadFromFile(path string, opts LoadOptions) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if opts.ResolvePaths {
		if err := config.ResolvePaths(NewPathResolver(filepath.Dir(path))); err != nil {
			return nil, err
		}
	}

	if opts.MergeFiles {
		if err := config.LoadAndMerge(); err != nil {
			return nil, fmt.Errorf("merging external files: %w", err)
		}
	}

	if opts.ValidateImmediately {
		if errs := config.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("validation errors: %v", errs)
		}
	}

	return config, nil
}

// Parse decodes a scene from YAML without touching the filesystem
func Parse(data []byte) (*SceneConfig, error) {
	config := &SceneConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return config, nil
}

// SaveToFile saves a SceneConfig to a YAML file, stamping its metadata
func SaveToFile(config *SceneConfig, path string) error {
	if err := stamp(&config.Metadata, time.Now()); err != nil {
		log.Warn("saving scene without commit metadata", "err", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ResolvePaths anchors the files the config refers to at the resolver's directory, failing if one
// is missing
func (c *SceneConfig) ResolvePaths(resolver *PathResolver) error {
	if c.Defaults.FromFile == "" {
		return nil
	}
	if !resolver.FileExists(c.Defaults.FromFile) {
		return fmt.Errorf("defaults file %q not found at %s", c.Defaults.FromFile, resolver.ResolvePath(c.Defaults.FromFile))
	}
	c.Defaults.FromFile = resolver.ResolvePath(c.Defaults.FromFile)
	return nil
}
