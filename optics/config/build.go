package config

import (
	"fmt"
	"math"

	"github.com/jdginn/go-light-builder/optics"
)

// Build instantiates the configured scene. Each element starts from its kind's template and then
// takes its own properties.
func (c *SceneConfig) Build() (*optics.Scene, error) {
	elements := make([]optics.Element, 0, len(c.Elements))
	for i, ec := range c.Elements {
		el, err := ec.Element(c.Defaults)
		if err != nil {
			return nil, fmt.Errorf("elements[%d]: %w", i, err)
		}
		elements = append(elements, el)
	}
	scene := optics.NewScene()
	if err := scene.Add(elements...); err != nil {
		return nil, fmt.Errorf("adding elements: %w", err)
	}
	return scene, nil
}

// Element instantiates one configured element
func (ec ElementConfig) Element(defaults Defaults) (optics.Element, error) {
	el, err := optics.NewElement(ec.Kind, ec.ID, optics.V(ec.Position[0], ec.Position[1]))
	if err != nil {
		return nil, err
	}
	if err := optics.ApplyProperties(el, defaults.Inline[ec.Kind]); err != nil {
		return nil, fmt.Errorf("applying defaults: %w", err)
	}
	if err := optics.ApplyProperties(el, ec.Properties); err != nil {
		return nil, err
	}
	el.Place().Rotation = ec.Rotation * math.Pi / 180
	return el, nil
}

// Params yields tracer parameters, filling unset fields from the defaults
func (s Simulation) Params() optics.TraceParams {
	params := optics.DefaultTraceParams()
	if s.MaxBounces > 0 {
		params.MaxBounces = s.MaxBounces
	}
	if s.MinIntensity > 0 {
		params.MinIntensity = s.MinIntensity
	}
	if s.FarDistance > 0 {
		params.FarDistance = s.FarDistance
	}
	return params
}

// Params combines the simulation settings with the white light color of the render theme
func (c *SceneConfig) Params() optics.TraceParams {
	params := c.Simulation.Params()
	if c.Render.Dark() {
		params.WhiteColor = optics.DarkColor
	}
	return params
}

func (r Render) Dark() bool {
	return r.Theme == ThemeDark
}

// Size returns the configured image size, falling back to the given one for unset dimensions
func (r Render) Size(fallbackWidth, fallbackHeight int) (int, int) {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = fallbackWidth
	}
	if h <= 0 {
		h = fallbackHeight
	}
	return w, h
}

// FromElements describes placed elements as a scene file
func FromElements(elements []optics.Element) *SceneConfig {
	c := &SceneConfig{Elements: make([]ElementConfig, 0, len(elements))}
	for _, el := range elements {
		p := el.Place()
		c.Elements = append(c.Elements, ElementConfig{
			ID:         p.ID,
			Kind:       el.Kind(),
			Position:   [2]float64{p.Position.X, p.Position.Y},
			Rotation:   p.Rotation * 180 / math.Pi,
			Properties: el.Properties(),
		})
	}
	return c
}

// BuiltinDefaults lists the built-in element templates in the form used by scene files
func BuiltinDefaults() Defaults {
	d := Defaults{Inline: make(map[optics.Kind]optics.Properties, len(optics.Kinds))}
	for _, kind := range optics.Kinds {
		d.Inline[kind] = optics.DefaultProperties[kind].Clone()
	}
	return d
}
