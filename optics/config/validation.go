package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jdginn/go-light-builder/optics"
)

func validatePositive(field string, value float64) []ValidationError {
	if !(value > 0) {
		return []ValidationError{{
			Field:   field,
			Message: "must be positive",
		}}
	}
	return nil
}

func validateNonNegative(field string, value float64) []ValidationError {
	if !(value >= 0) {
		return []ValidationError{{
			Field:   field,
			Message: "must be non-negative",
		}}
	}
	return nil
}

func validateInRange(field string, value, min, max float64) []ValidationError {
	if !(value >= min && value <= max) {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
		}}
	}
	return nil
}

func validateFinite(field string, value float64) []ValidationError {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return []ValidationError{{
			Field:   field,
			Message: "must be finite",
		}}
	}
	return nil
}

// ValidationError represents a structured validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FormatValidationErrors groups errors by their top level section for display
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Validation Errors:\n")

	categories := map[string][]ValidationError{}
	var order []string
	for _, err := range errs {
		category := strings.SplitN(err.Field, ".", 2)[0]
		category = strings.SplitN(category, "[", 2)[0]
		if _, seen := categories[category]; !seen {
			order = append(order, category)
		}
		categories[category] = append(categories[category], err)
	}

	for _, category := range order {
		b.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(category)))
		for _, err := range categories[category] {
			field := strings.TrimPrefix(err.Field, category)
			field = strings.TrimPrefix(field, ".")
			if field == "" {
				field = "general"
			}
			b.WriteString(fmt.Sprintf("  - %s: %s\n", field, err.Message))
		}
	}

	return b.String()
}

// Validate performs validation on the entire configuration
func (c *SceneConfig) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.Defaults.Validate()...)
	errors = append(errors, c.validateElements()...)
	errors = append(errors, c.Simulation.Validate()...)
	errors = append(errors, c.Render.Validate()...)
	return errors
}

func (d *Defaults) Validate() []ValidationError {
	var errs []ValidationError
	kinds := make([]string, 0, len(d.Inline))
	for kind := range d.Inline {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		kind := optics.Kind(k)
		field := fmt.Sprintf("defaults.inline.%s", kind)
		if _, ok := optics.DefaultProperties[kind]; !ok {
			errs = append(errs, ValidationError{Field: field, Message: "unknown element kind"})
			continue
		}
		errs = append(errs, validateProperties(field, kind, d.Inline[kind])...)
	}
	return errs
}

func (c *SceneConfig) validateElements() []ValidationError {
	var errs []ValidationError
	ids := map[string]int{}
	for i, el := range c.Elements {
		field := fmt.Sprintf("elements[%d]", i)
		if el.ID != "" {
			if first, dup := ids[el.ID]; dup {
				errs = append(errs, ValidationError{
					Field:   field + ".id",
					Message: fmt.Sprintf("duplicates the id of elements[%d]", first),
				})
			} else {
				ids[el.ID] = i
			}
		}
		if _, ok := optics.DefaultProperties[el.Kind]; !ok {
			errs = append(errs, ValidationError{
				Field:   field + ".kind",
				Message: fmt.Sprintf("unknown element kind '%s'", el.Kind),
			})
			continue
		}
		errs = append(errs, validateFinite(field+".position.x", el.Position[0])...)
		errs = append(errs, validateFinite(field+".position.y", el.Position[1])...)
		errs = append(errs, validateFinite(field+".rotation", el.Rotation)...)
		errs = append(errs, validateProperties(field+".properties", el.Kind, el.Properties)...)
	}
	return errs
}

// validateProperties checks property names against kind and their values
func validateProperties(field string, kind optics.Kind, props optics.Properties) []ValidationError {
	var errs []ValidationError
	scratch, err := optics.NewElement(kind, "", optics.V(0, 0))
	if err != nil {
		return []ValidationError{{Field: field, Message: err.Error()}}
	}
	for _, name := range props.Names() {
		f := fmt.Sprintf("%s.%s", field, name)
		if err := scratch.SetProperty(name, props[name]); errors.Is(err, optics.ErrUnknownProperty) {
			errs = append(errs, ValidationError{Field: f, Message: fmt.Sprintf("not a property of %s", kind)})
			continue
		}
		errs = append(errs, validateProperty(f, name, props[name])...)
	}
	return errs
}

func validateProperty(field, name string, value float64) []ValidationError {
	if errs := validateFinite(field, value); errs != nil {
		return errs
	}
	switch name {
	case optics.PropRayCount:
		if value < 1 || value != math.Trunc(value) {
			return []ValidationError{{Field: field, Message: "must be a positive whole number"}}
		}
	case optics.PropWavelength:
		// Zero or less means white light
		if value > 0 {
			return validateInRange(field, value, optics.MinWavelength, optics.MaxWavelength)
		}
	case optics.PropWidth, optics.PropHeight, optics.PropSize:
		return validatePositive(field, value)
	case optics.PropSpreadAngle:
		return validateInRange(field, value, 0, 360)
	case optics.PropFocalLength:
		return validatePositive(field, value)
	case optics.PropApexAngle:
		if !(value > 0 && value < 180) {
			return []ValidationError{{Field: field, Message: "must be strictly between 0 and 180"}}
		}
	case optics.PropRefractiveIndex:
		if !(value >= 1) {
			return []ValidationError{{Field: field, Message: "must be at least 1"}}
		}
	}
	return nil
}

func (s *Simulation) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validateNonNegative("simulation.max_bounces", float64(s.MaxBounces))...)
	errors = append(errors, validateInRange("simulation.min_intensity", s.MinIntensity, 0, 1)...)
	errors = append(errors, validateNonNegative("simulation.far_distance", s.FarDistance)...)
	return errors
}

func (r *Render) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validateNonNegative("render.width", float64(r.Width))...)
	errors = append(errors, validateNonNegative("render.height", float64(r.Height))...)
	switch r.Theme {
	case "", ThemeLight, ThemeDark:
	default:
		errors = append(errors, ValidationError{
			Field:   "render.theme",
			Message: fmt.Sprintf("must be %q or %q", ThemeLight, ThemeDark),
		})
	}
	return errors
}
