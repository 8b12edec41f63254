package optics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Kind names an element type. The set is closed.
type Kind string

const (
	KindLightParallel Kind = "light-parallel"
	KindLightPoint    Kind = "light-point"
	KindConvexLens    Kind = "convex-lens"
	KindConcaveLens   Kind = "concave-lens"
	KindPlaneMirror   Kind = "plane-mirror"
	KindConvexMirror  Kind = "convex-mirror"
	KindConcaveMirror Kind = "concave-mirror"
	KindPrism         Kind = "prism"
	KindLiquidBox     Kind = "liquid-box"
)

// Kinds lists every element kind in toolbar order
var Kinds = []Kind{
	KindLightParallel, KindLightPoint,
	KindConvexLens, KindConcaveLens,
	KindPlaneMirror, KindConvexMirror, KindConcaveMirror,
	KindPrism, KindLiquidBox,
}

var (
	ErrUnknownKind     = errors.New("unknown element kind")
	ErrUnknownProperty = errors.New("unknown property")
)

// Property names, shared with scene files
const (
	PropRayCount        = "ray_count"
	PropWavelength      = "wavelength"
	PropWidth           = "width"
	PropSpreadAngle     = "spread_angle"
	PropFocalLength     = "focal_length"
	PropHeight          = "height"
	PropSize            = "size"
	PropApexAngle       = "apex_angle"
	PropRefractiveIndex = "refractive_index"
)

// Properties is a flat bag of numeric element properties keyed by property name
type Properties map[string]float64

func (p Properties) Clone() Properties {
	c := make(Properties, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Names returns the property names in sorted order
func (p Properties) Names() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DefaultProperties are the templates new elements are instantiated from.
//
// A white light source has no wavelength entry.
var DefaultProperties = map[Kind]Properties{
	KindLightParallel: {PropRayCount: 5, PropWidth: 80},
	KindLightPoint:    {PropRayCount: 12, PropSpreadAngle: 120},
	KindConvexLens:    {PropFocalLength: 80, PropHeight: 120},
	KindConcaveLens:   {PropFocalLength: 80, PropHeight: 120},
	KindPlaneMirror:   {PropHeight: 120},
	KindConvexMirror:  {PropFocalLength: 80, PropHeight: 120},
	KindConcaveMirror: {PropFocalLength: 80, PropHeight: 120},
	KindPrism:         {PropSize: 80, PropApexAngle: 60},
	KindLiquidBox:     {PropWidth: 100, PropHeight: 80, PropRefractiveIndex: 1.33},
}

// Placement locates an element in the scene
type Placement struct {
	// Stable for the lifetime of the scene
	ID       string
	Position r2.Vec
	// Radians
	Rotation float64
}

func (p *Placement) Place() *Placement {
	return p
}

// Axis is the unit vector the element faces along
func (p Placement) Axis() r2.Vec {
	return FromAngle(p.Rotation)
}

// toScene maps a point in element-local coordinates into the scene
func (p Placement) toScene(local r2.Vec) r2.Vec {
	return r2.Add(p.Position, Rotate(local, p.Rotation))
}

// Element is one placed optical element.
//
// The implementations in this package are the only ones; code that needs per-type behaviour
// switches on the concrete type.
type Element interface {
	Kind() Kind
	Place() *Placement
	Clone() Element
	Properties() Properties
	SetProperty(name string, value float64) error
	// Radius around the position within which the element is picked by the editor
	HitRadius() float64
	element()
}

// NewElement instantiates kind at pos from its default template
func NewElement(kind Kind, id string, pos r2.Vec) (Element, error) {
	var el Element
	switch kind {
	case KindLightParallel, KindLightPoint:
		el = &LightSource{Point: kind == KindLightPoint}
	case KindConvexLens, KindConcaveLens:
		el = &Lens{Concave: kind == KindConcaveLens}
	case KindPlaneMirror:
		el = &PlaneMirror{}
	case KindConvexMirror, KindConcaveMirror:
		el = &CurvedMirror{Concave: kind == KindConcaveMirror}
	case KindPrism:
		el = &Prism{}
	case KindLiquidBox:
		el = &LiquidBox{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	el.Place().ID = id
	el.Place().Position = pos
	if err := ApplyProperties(el, DefaultProperties[kind]); err != nil {
		return nil, err
	}
	return el, nil
}

// ApplyProperties sets every property in props on el
func ApplyProperties(el Element, props Properties) error {
	for _, name := range props.Names() {
		if err := el.SetProperty(name, props[name]); err != nil {
			return err
		}
	}
	return nil
}

func unknownProperty(k Kind, name string) error {
	return fmt.Errorf("%w %q for %s", ErrUnknownProperty, name, k)
}

// IsSource reports whether el emits light
func IsSource(el Element) bool {
	_, ok := el.(*LightSource)
	return ok
}

// LightSource emits either a parallel beam or a fan of rays from a point
type LightSource struct {
	Placement
	Point    bool
	RayCount int
	// nm, nil for white light
	Wavelength *float64
	// Aperture of a parallel beam
	Width float64
	// Fan angle of a point source in degrees
	SpreadAngle float64
}

func (s *LightSource) element() {}

func (s *LightSource) Kind() Kind {
	if s.Point {
		return KindLightPoint
	}
	return KindLightParallel
}

func (s *LightSource) Clone() Element {
	c := *s
	if s.Wavelength != nil {
		w := *s.Wavelength
		c.Wavelength = &w
	}
	return &c
}

func (s *LightSource) Properties() Properties {
	p := Properties{PropRayCount: float64(s.RayCount)}
	if s.Point {
		p[PropSpreadAngle] = s.SpreadAngle
	} else {
		p[PropWidth] = s.Width
	}
	if s.Wavelength != nil {
		p[PropWavelength] = *s.Wavelength
	}
	return p
}

// SetProperty sets a named property. A wavelength of zero or less makes the source white.
func (s *LightSource) SetProperty(name string, value float64) error {
	switch name {
	case PropRayCount:
		s.RayCount = int(value)
	case PropWavelength:
		if value <= 0 {
			s.Wavelength = nil
		} else {
			s.Wavelength = &value
		}
	case PropWidth:
		s.Width = value
	case PropSpreadAngle:
		s.SpreadAngle = value
	default:
		return unknownProperty(s.Kind(), name)
	}
	return nil
}

func (s *LightSource) HitRadius() float64 {
	return 25
}

// Lens is a thin lens, converging unless Concave
type Lens struct {
	Placement
	Concave     bool
	FocalLength float64
	Height      float64
}

func (l *Lens) element() {}

func (l *Lens) Kind() Kind {
	if l.Concave {
		return KindConcaveLens
	}
	return KindConvexLens
}

func (l *Lens) Clone() Element {
	c := *l
	return &c
}

func (l *Lens) Properties() Properties {
	return Properties{PropFocalLength: l.FocalLength, PropHeight: l.Height}
}

func (l *Lens) SetProperty(name string, value float64) error {
	switch name {
	case PropFocalLength:
		l.FocalLength = value
	case PropHeight:
		l.Height = value
	default:
		return unknownProperty(l.Kind(), name)
	}
	return nil
}

func (l *Lens) HitRadius() float64 {
	return l.Height/2 + 10
}

type PlaneMirror struct {
	Placement
	Height float64
}

func (m *PlaneMirror) element() {}

func (m *PlaneMirror) Kind() Kind {
	return KindPlaneMirror
}

func (m *PlaneMirror) Clone() Element {
	c := *m
	return &c
}

func (m *PlaneMirror) Properties() Properties {
	return Properties{PropHeight: m.Height}
}

func (m *PlaneMirror) SetProperty(name string, value float64) error {
	if name != PropHeight {
		return unknownProperty(m.Kind(), name)
	}
	m.Height = value
	return nil
}

func (m *PlaneMirror) HitRadius() float64 {
	return m.Height/2 + 10
}

// CurvedMirror is a convex or concave mirror of the given focal length
type CurvedMirror struct {
	Placement
	Concave     bool
	FocalLength float64
	Height      float64
}

func (m *CurvedMirror) element() {}

func (m *CurvedMirror) Kind() Kind {
	if m.Concave {
		return KindConcaveMirror
	}
	return KindConvexMirror
}

func (m *CurvedMirror) Clone() Element {
	c := *m
	return &c
}

func (m *CurvedMirror) Properties() Properties {
	return Properties{PropFocalLength: m.FocalLength, PropHeight: m.Height}
}

func (m *CurvedMirror) SetProperty(name string, value float64) error {
	switch name {
	case PropFocalLength:
		m.FocalLength = value
	case PropHeight:
		m.Height = value
	default:
		return unknownProperty(m.Kind(), name)
	}
	return nil
}

func (m *CurvedMirror) HitRadius() float64 {
	return m.Height/2 + 10
}

// Prism is an isosceles glass triangle. Its two equal edges have length Size and meet at the apex.
type Prism struct {
	Placement
	Size float64
	// Degrees
	ApexAngle float64
}

func (p *Prism) element() {}

func (p *Prism) Kind() Kind {
	return KindPrism
}

func (p *Prism) Clone() Element {
	c := *p
	return &c
}

func (p *Prism) Properties() Properties {
	return Properties{PropSize: p.Size, PropApexAngle: p.ApexAngle}
}

func (p *Prism) SetProperty(name string, value float64) error {
	switch name {
	case PropSize:
		p.Size = value
	case PropApexAngle:
		p.ApexAngle = value
	default:
		return unknownProperty(p.Kind(), name)
	}
	return nil
}

func (p *Prism) HitRadius() float64 {
	return p.Size/2 + 10
}

// LiquidBox is a rectangular tank of a refracting liquid
type LiquidBox struct {
	Placement
	Width           float64
	Height          float64
	RefractiveIndex float64
}

func (b *LiquidBox) element() {}

func (b *LiquidBox) Kind() Kind {
	return KindLiquidBox
}

func (b *LiquidBox) Clone() Element {
	c := *b
	return &c
}

func (b *LiquidBox) Properties() Properties {
	return Properties{PropWidth: b.Width, PropHeight: b.Height, PropRefractiveIndex: b.RefractiveIndex}
}

func (b *LiquidBox) SetProperty(name string, value float64) error {
	switch name {
	case PropWidth:
		b.Width = value
	case PropHeight:
		b.Height = value
	case PropRefractiveIndex:
		b.RefractiveIndex = value
	default:
		return unknownProperty(b.Kind(), name)
	}
	return nil
}

func (b *LiquidBox) HitRadius() float64 {
	return math.Max(b.Width, b.Height)/2 + 10
}
