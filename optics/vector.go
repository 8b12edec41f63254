package optics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Below this magnitude a ray and a segment are treated as parallel
const parallelEpsilon = 1e-4

// V is a shorthand constructor for r2.Vec
func V(X, Y float64) r2.Vec {
	return r2.Vec{X: X, Y: Y}
}

// FromAngle returns the unit vector pointing at angle theta (radians, canvas space)
func FromAngle(theta float64) r2.Vec {
	return r2.Vec{X: math.Cos(theta), Y: math.Sin(theta)}
}

// Heading returns the angle of dir in radians
func Heading(dir r2.Vec) float64 {
	return math.Atan2(dir.Y, dir.X)
}

// Rotate rotates p about the origin by theta radians
func Rotate(p r2.Vec, theta float64) r2.Vec {
	cos, sin := math.Cos(theta), math.Sin(theta)
	return r2.Vec{
		X: cos*p.X - sin*p.Y,
		Y: sin*p.X + cos*p.Y,
	}
}

// LineIntersect intersects the infinite line origin + t*dir with the segment segStart + u*segDir.
//
// No bounds are applied to t or u; callers decide which range they accept. ok is false when the
// two directions are parallel.
func LineIntersect(origin, dir, segStart, segDir r2.Vec) (t, u float64, ok bool) {
	denom := r2.Cross(dir, segDir)
	if math.Abs(denom) < parallelEpsilon {
		return 0, 0, false
	}
	diff := r2.Sub(segStart, origin)
	t = r2.Cross(diff, segDir) / denom
	u = r2.Cross(diff, dir) / denom
	return t, u, true
}

// Reflect mirrors dir about the unit normal
func Reflect(dir, normal r2.Vec) r2.Vec {
	return r2.Sub(dir, r2.Scale(2*r2.Dot(dir, normal), normal))
}

// Refract bends dir through a boundary with unit normal from a medium of index n1 into one of
// index n2.
//
// ok is false on total internal reflection; callers substitute a reflection at the same hit.
func Refract(dir, normal r2.Vec, n1, n2 float64) (r2.Vec, bool) {
	cosI := -r2.Dot(dir, normal)
	ratio := n1 / n2
	sin2T := ratio * ratio * (1 - cosI*cosI)
	if sin2T > 1 {
		return r2.Vec{}, false
	}
	cosT := math.Sqrt(1 - sin2T)
	sign := 1.0
	if cosI < 0 {
		sign = -1
	}
	return r2.Add(r2.Scale(ratio, dir), r2.Scale(ratio*cosI-sign*cosT, normal)), true
}

// Box is an axis aligned bounding box in scene coordinates
type Box struct {
	Min, Max r2.Vec
}

// Extend grows the box to contain p
func (b Box) Extend(p r2.Vec) Box {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	return b
}

func (b Box) Size() r2.Vec {
	return r2.Sub(b.Max, b.Min)
}

// BoundingBox returns the smallest box containing every point
func BoundingBox(points ...r2.Vec) Box {
	if len(points) == 0 {
		return Box{}
	}
	b := Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b = b.Extend(p)
	}
	return b
}
