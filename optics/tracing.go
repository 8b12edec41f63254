package optics

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	MaxBounces      = 20
	MinRayIntensity = 0.01
	// Length of the segment drawn for a ray that leaves the scene
	FarDistance = 2000.0
	// Hits nearer than this to a ray's origin are ignored so a ray does not re-hit the surface it
	// just left
	hitEpsilon = 0.1
)

// TraceParams contains parameters to guide tracing
type TraceParams struct {
	// Rays that have bounced more than this many times are dropped
	MaxBounces int
	// Rays dimmer than this are dropped
	MinIntensity float64
	// Length of the final segment of a ray that hits nothing
	FarDistance float64
	// Nearest-hit threshold along a ray
	HitEpsilon float64
	// Display color of white light
	WhiteColor colorful.Color
}

func DefaultTraceParams() TraceParams {
	return TraceParams{
		MaxBounces:   MaxBounces,
		MinIntensity: MinRayIntensity,
		FarDistance:  FarDistance,
		HitEpsilon:   hitEpsilon,
		WhiteColor:   LightColor,
	}
}

// Ray is one leg of light before it strikes anything
type Ray struct {
	Origin r2.Vec
	// Unit length
	Direction r2.Vec
	// nm, nil for white light
	Wavelength *float64
	Color      colorful.Color
	// In (0, 1]
	Intensity float64
	// Number of interactions since emission
	Bounces int
	// ID of the emitting source
	SourceID string
}

// At returns the point t along the ray
func (r Ray) At(t float64) r2.Vec {
	return r2.Add(r.Origin, r2.Scale(t, r.Direction))
}

// next derives an outgoing ray of the same light
func (r Ray) next(origin, dir r2.Vec, intensity float64) Ray {
	return Ray{
		Origin:     origin,
		Direction:  dir,
		Wavelength: r.Wavelength,
		Color:      r.Color,
		Intensity:  intensity,
		Bounces:    r.Bounces + 1,
		SourceID:   r.SourceID,
	}
}

// Segment is one traced leg of light, ready to draw
type Segment struct {
	From, To   r2.Vec
	Color      colorful.Color
	Intensity  float64
	Wavelength *float64
	Bounces    int
	SourceID   string
	// The ray left the scene without hitting anything
	Escaped bool
}

func (s Segment) Length() float64 {
	return r2.Norm(r2.Sub(s.To, s.From))
}

// Emit generates the initial rays of a source
func Emit(s *LightSource, params TraceParams) []Ray {
	color := params.WhiteColor
	if s.Wavelength != nil {
		color = WavelengthColor(*s.Wavelength)
	}
	ray := func(origin, dir r2.Vec) Ray {
		return Ray{
			Origin:     origin,
			Direction:  dir,
			Wavelength: s.Wavelength,
			Color:      color,
			Intensity:  1,
			SourceID:   s.ID,
		}
	}

	count := s.RayCount
	rays := make([]Ray, 0, max(count, 0))
	if !s.Point {
		dir := s.Axis()
		spacing := s.Width / float64(count+1)
		for i := 1; i <= count; i++ {
			offset := -s.Width/2 + float64(i)*spacing
			rays = append(rays, ray(s.toScene(V(0, offset)), dir))
		}
		return rays
	}

	if count == 1 {
		return append(rays, ray(s.Position, s.Axis()))
	}
	spread := s.SpreadAngle * math.Pi / 180
	start := s.Rotation - spread/2
	step := spread / float64(count-1)
	for i := 0; i < count; i++ {
		rays = append(rays, ray(s.Position, FromAngle(start+float64(i)*step)))
	}
	return rays
}

// Trace follows every ray emitted by the sources in elements through the other elements and
// returns the traced segments.
//
// Segments come out depth first: a ray's segment is followed by the segments of everything it
// turns into before its siblings are traced. elements is only read.
func Trace(elements []Element, params TraceParams) []Segment {
	var sources []*LightSource
	var blockers []Element
	for _, el := range elements {
		if s, ok := el.(*LightSource); ok {
			sources = append(sources, s)
		} else {
			blockers = append(blockers, el)
		}
	}

	var segments []Segment
	var stack []Ray
	push := func(rays []Ray) {
		// Reversed so the first ray is traced first
		for i := len(rays) - 1; i >= 0; i-- {
			stack = append(stack, rays[i])
		}
	}

	for _, source := range sources {
		push(Emit(source, params))
		for len(stack) > 0 {
			ray := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if ray.Bounces > params.MaxBounces || ray.Intensity < params.MinIntensity {
				continue
			}

			hit, ok := NearestHit(ray, blockers, params.HitEpsilon)
			if !ok {
				seg := segmentOf(ray, ray.At(params.FarDistance))
				seg.Escaped = true
				segments = append(segments, seg)
				continue
			}
			segments = append(segments, segmentOf(ray, hit.Point))
			push(Resolve(ray, hit))
		}
	}
	return segments
}

// TraceScene traces elements with the default parameters
func TraceScene(elements []Element) []Segment {
	return Trace(elements, DefaultTraceParams())
}

func segmentOf(ray Ray, to r2.Vec) Segment {
	return Segment{
		From:       ray.Origin,
		To:         to,
		Color:      ray.Color,
		Intensity:  ray.Intensity,
		Wavelength: ray.Wavelength,
		Bounces:    ray.Bounces,
		SourceID:   ray.SourceID,
	}
}
