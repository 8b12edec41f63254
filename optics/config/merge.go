package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jdginn/go-light-builder/optics"
)

// MergeDefaults merges element templates from a JSON file under the inline ones. Inline
// properties take precedence key by key.
func (d *Defaults) MergeDefaults() error {
	if d.FromFile == "" {
		return nil
	}

	data, err := os.ReadFile(d.FromFile)
	if err != nil {
		return fmt.Errorf("reading defaults file: %w", err)
	}

	var fileDefaults map[optics.Kind]optics.Properties
	if err := json.Unmarshal(data, &fileDefaults); err != nil {
		return fmt.Errorf("parsing defaults file: %w", err)
	}

	if d.Inline == nil {
		d.Inline = make(map[optics.Kind]optics.Properties)
	}

	for kind, props := range fileDefaults {
		merged := d.Inline[kind]
		if merged == nil {
			merged = optics.Properties{}
		}
		for name, value := range props {
			if _, exists := merged[name]; !exists {
				merged[name] = value
			}
		}
		d.Inline[kind] = merged
	}

	return nil
}

// Template returns the properties a new element of kind starts from: the built-in defaults with
// any configured overrides applied
func (d *Defaults) Template(kind optics.Kind) optics.Properties {
	props := optics.DefaultProperties[kind].Clone()
	for name, value := range d.Inline[kind] {
		props[name] = value
	}
	return props
}

// LoadAndMerge loads all external files and merges their contents
func (c *SceneConfig) LoadAndMerge() error {
	if err := c.Defaults.MergeDefaults(); err != nil {
		return fmt.Errorf("merging defaults: %w", err)
	}
	return nil
}
