package optics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// Fraction of intensity kept by every mirror, lens, box and monochromatic prism leg
	Transmission = 0.95
	// Fraction of intensity kept by white light split by a prism, shared across the bands
	DispersionTransmission = 0.9

	airIndex = 1.0
)

// Resolve turns a ray striking hit into the outgoing rays. Every outgoing ray starts at the hit
// point with one more bounce than the incoming ray.
func Resolve(ray Ray, hit Hit) []Ray {
	switch hit.Type {
	case HitMirror:
		return []Ray{resolveMirror(ray, hit)}
	case HitConvexLens, HitConcaveLens:
		return []Ray{resolveLens(ray, hit)}
	case HitPrism:
		return resolvePrism(ray, hit)
	case HitLiquidBox:
		return []Ray{resolveLiquidBox(ray, hit)}
	}
	return nil
}

// against returns the normal flipped to face the incoming direction, and whether the ray hit the
// side the normal originally pointed out of
func against(dir, normal r2.Vec) (r2.Vec, bool) {
	if r2.Dot(dir, normal) < 0 {
		return normal, true
	}
	return r2.Scale(-1, normal), false
}

func resolveMirror(ray Ray, hit Hit) Ray {
	normal := hit.Normal
	if r2.Dot(ray.Direction, normal) > 0 {
		normal = r2.Scale(-1, normal)
	}
	reflected := Reflect(ray.Direction, normal)
	verifyReflection(ray.Direction, normal, reflected)
	return ray.next(hit.Point, reflected, ray.Intensity*Transmission)
}

// Thin lens: the ray is turned by atan(offset/f) where offset is its distance from the optical
// axis at the lens. Converging lenses turn it towards the axis.
func resolveLens(ray Ray, hit Hit) Ray {
	var p Placement
	var f float64
	switch l := hit.Element.(type) {
	case *Lens:
		p, f = l.Placement, l.FocalLength
	}
	rel := r2.Sub(hit.Point, p.Position)
	sin, cos := math.Sin(p.Rotation), math.Cos(p.Rotation)
	offset := -rel.X*sin + rel.Y*cos
	deflection := math.Atan(offset / f)
	if hit.Type == HitConvexLens {
		deflection = -deflection
	}
	out := FromAngle(Heading(ray.Direction) + deflection)
	return ray.next(hit.Point, out, ray.Intensity*Transmission)
}

// refractOrReflect refracts through the boundary and falls back to a reflection on total
// internal reflection. normal must face the incoming ray.
func refractOrReflect(dir, normal r2.Vec, n1, n2 float64) r2.Vec {
	refracted, ok := Refract(dir, normal, n1, n2)
	if !ok {
		return Reflect(dir, normal)
	}
	verifySnell(dir, normal, refracted, n1, n2)
	return refracted
}

func media(entering bool, n float64) (n1, n2 float64) {
	if entering {
		return airIndex, n
	}
	return n, airIndex
}

func resolvePrism(ray Ray, hit Hit) []Ray {
	normal, entering := against(ray.Direction, hit.Normal)

	if ray.Wavelength != nil {
		n1, n2 := media(entering, DispersionIndex(*ray.Wavelength))
		out := refractOrReflect(ray.Direction, normal, n1, n2)
		return []Ray{ray.next(hit.Point, out, ray.Intensity*Transmission)}
	}

	// White light splits into one ray per band
	rays := make([]Ray, 0, len(Spectrum))
	intensity := ray.Intensity * DispersionTransmission / float64(len(Spectrum))
	for _, band := range Spectrum {
		n1, n2 := media(entering, band.Index)
		out := refractOrReflect(ray.Direction, normal, n1, n2)
		child := ray.next(hit.Point, out, intensity)
		wavelength := band.Wavelength
		child.Wavelength = &wavelength
		child.Color = band.Color
		rays = append(rays, child)
	}
	return rays
}

func resolveLiquidBox(ray Ray, hit Hit) Ray {
	var n float64
	switch b := hit.Element.(type) {
	case *LiquidBox:
		n = b.RefractiveIndex
	}
	normal, entering := against(ray.Direction, hit.Normal)
	n1, n2 := media(entering, n)
	out := refractOrReflect(ray.Direction, normal, n1, n2)
	return ray.next(hit.Point, out, ray.Intensity*Transmission)
}
