package optics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// HitType selects how a hit is resolved into outgoing rays
type HitType string

const (
	HitMirror      HitType = "mirror"
	HitConvexLens  HitType = "convex-lens"
	HitConcaveLens HitType = "concave-lens"
	HitPrism       HitType = "prism"
	HitLiquidBox   HitType = "liquid-box"
)

// Hits closer to a ray's origin than this along a prism edge are rejected
const prismEdgeEpsilon = 0.001

// Hit is a candidate intersection of a ray with an element
type Hit struct {
	Point r2.Vec
	// Distance along the ray, in units of its direction vector
	T       float64
	Element Element
	// Unit normal of the struck surface
	Normal r2.Vec
	Type   HitType
	// Name of the struck edge for prisms and boxes
	Edge string
}

type edge struct {
	name   string
	p1, p2 r2.Vec
}

// flatEnds returns the endpoints of a segment of the given height centred on the placement and
// perpendicular to its axis
func flatEnds(p Placement, height float64) (r2.Vec, r2.Vec) {
	half := height / 2
	return p.toScene(V(0, half)), p.toScene(V(0, -half))
}

func prismVertices(p *Prism) (apex, bottomLeft, bottomRight r2.Vec) {
	apexAngle := p.ApexAngle * math.Pi / 180
	height := p.Size * math.Sin(apexAngle/2)
	baseHalf := p.Size * math.Cos(apexAngle/2)
	apex = p.toScene(V(0, -height/2))
	bottomLeft = p.toScene(V(-baseHalf, height/2))
	bottomRight = p.toScene(V(baseHalf, height/2))
	return
}

func prismEdges(p *Prism) []edge {
	apex, bl, br := prismVertices(p)
	return []edge{
		{"left", apex, bl},
		{"bottom", bl, br},
		{"right", br, apex},
	}
}

var boxLocalNormals = []r2.Vec{V(0, -1), V(1, 0), V(0, 1), V(-1, 0)}

func boxCorners(b *LiquidBox) []r2.Vec {
	w, h := b.Width/2, b.Height/2
	return []r2.Vec{
		b.toScene(V(-w, -h)),
		b.toScene(V(w, -h)),
		b.toScene(V(w, h)),
		b.toScene(V(-w, h)),
	}
}

// Outline returns the vertices of an element's shape in scene coordinates, in drawing order.
// Sources have no outline.
func Outline(el Element) []r2.Vec {
	switch e := el.(type) {
	case *LightSource:
		return nil
	case *Lens:
		p1, p2 := flatEnds(e.Placement, e.Height)
		return []r2.Vec{p1, p2}
	case *PlaneMirror:
		p1, p2 := flatEnds(e.Placement, e.Height)
		return []r2.Vec{p1, p2}
	case *CurvedMirror:
		p1, p2 := flatEnds(e.Placement, e.Height)
		return []r2.Vec{p1, p2}
	case *Prism:
		apex, bl, br := prismVertices(e)
		return []r2.Vec{apex, bl, br}
	case *LiquidBox:
		return boxCorners(e)
	}
	return nil
}

// Intersect returns every hit of ray on el
func Intersect(ray Ray, el Element) []Hit {
	return appendHits(nil, ray, el)
}

func appendHits(hits []Hit, ray Ray, el Element) []Hit {
	switch e := el.(type) {
	case *LightSource:
		return hits
	case *PlaneMirror:
		return appendFlatHit(hits, ray, el, e.Placement, e.Height, HitMirror)
	case *Lens:
		hitType := HitConvexLens
		if e.Concave {
			hitType = HitConcaveLens
		}
		return appendFlatHit(hits, ray, el, e.Placement, e.Height, hitType)
	case *CurvedMirror:
		return appendCurvedMirrorHit(hits, ray, e)
	case *Prism:
		return appendPrismHits(hits, ray, e)
	case *LiquidBox:
		return appendBoxHits(hits, ray, e)
	}
	return hits
}

func appendFlatHit(hits []Hit, ray Ray, el Element, p Placement, height float64, hitType HitType) []Hit {
	p1, p2 := flatEnds(p, height)
	t, u, ok := LineIntersect(ray.Origin, ray.Direction, p1, r2.Sub(p2, p1))
	if !ok || t <= 0 || u < 0 || u > 1 {
		return hits
	}
	return append(hits, Hit{
		Point:   ray.At(t),
		T:       t,
		Element: el,
		Normal:  p.Axis(),
		Type:    hitType,
	})
}

// Curved mirrors are hit tested as flat segments. Only the normal bends, by an angle that grows
// with the distance from the centre over the focal length.
func appendCurvedMirrorHit(hits []Hit, ray Ray, m *CurvedMirror) []Hit {
	p1, p2 := flatEnds(m.Placement, m.Height)
	t, u, ok := LineIntersect(ray.Origin, ray.Direction, p1, r2.Sub(p2, p1))
	if !ok || t <= 0 || u < 0 || u > 1 {
		return hits
	}
	localY := (u - 0.5) * m.Height
	curvature := localY / m.FocalLength * 0.5
	normal := Rotate(m.Axis(), -curvature)
	if m.Concave {
		normal = r2.Scale(-1, normal)
	}
	return append(hits, Hit{
		Point:   ray.At(t),
		T:       t,
		Element: m,
		Normal:  normal,
		Type:    HitMirror,
	})
}

func appendPrismHits(hits []Hit, ray Ray, p *Prism) []Hit {
	for _, e := range prismEdges(p) {
		d := r2.Sub(e.p2, e.p1)
		t, u, ok := LineIntersect(ray.Origin, ray.Direction, e.p1, d)
		if !ok || t <= prismEdgeEpsilon || u < 0 || u > 1 {
			continue
		}
		point := ray.At(t)
		normal := r2.Scale(1/r2.Norm(d), V(-d.Y, d.X))
		// Point away from the centre
		if r2.Dot(normal, r2.Sub(p.Position, point)) > 0 {
			normal = r2.Scale(-1, normal)
		}
		hits = append(hits, Hit{
			Point:   point,
			T:       t,
			Element: p,
			Normal:  normal,
			Type:    HitPrism,
			Edge:    e.name,
		})
	}
	return hits
}

var boxEdgeNames = []string{"top", "right", "bottom", "left"}

func appendBoxHits(hits []Hit, ray Ray, b *LiquidBox) []Hit {
	corners := boxCorners(b)
	for i := range corners {
		p1, p2 := corners[i], corners[(i+1)%len(corners)]
		t, u, ok := LineIntersect(ray.Origin, ray.Direction, p1, r2.Sub(p2, p1))
		if !ok || t <= hitEpsilon || u < 0 || u > 1 {
			continue
		}
		hits = append(hits, Hit{
			Point:   ray.At(t),
			T:       t,
			Element: b,
			Normal:  Rotate(boxLocalNormals[i], b.Rotation),
			Type:    HitLiquidBox,
			Edge:    boxEdgeNames[i],
		})
	}
	return hits
}

// NearestHit returns the closest hit further than minT along ray among blockers
func NearestHit(ray Ray, blockers []Element, minT float64) (Hit, bool) {
	var (
		nearest Hit
		found   bool
		hits    []Hit
	)
	nearestT := math.Inf(1)
	for _, el := range blockers {
		hits = appendHits(hits[:0], ray, el)
		for _, hit := range hits {
			if hit.T > minT && hit.T < nearestT {
				nearest, nearestT, found = hit, hit.T, true
			}
		}
	}
	return nearest, found
}
