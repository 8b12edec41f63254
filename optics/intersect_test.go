package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func mustElement(t *testing.T, kind Kind, pos r2.Vec, props Properties) Element {
	t.Helper()
	el, err := NewElement(kind, string(kind), pos)
	require.NoError(t, err)
	require.NoError(t, ApplyProperties(el, props))
	return el
}

func whiteRay(origin, dir r2.Vec) Ray {
	return Ray{Origin: origin, Direction: r2.Unit(dir), Color: LightColor, Intensity: 1}
}

func monoRay(origin, dir r2.Vec, wavelength float64) Ray {
	r := whiteRay(origin, dir)
	r.Wavelength = &wavelength
	r.Color = WavelengthColor(wavelength)
	return r
}

func TestIntersectFlatElements(t *testing.T) {
	for _, kind := range []Kind{KindPlaneMirror, KindConvexLens, KindConcaveLens} {
		t.Run(string(kind), func(t *testing.T) {
			assert := assert.New(t)
			el := mustElement(t, kind, V(100, 0), Properties{PropHeight: 120})

			hits := Intersect(whiteRay(V(0, 0), V(1, 0)), el)
			require.Len(t, hits, 1)
			assert.InDelta(100, hits[0].T, tol)
			assert.True(vecNear(V(100, 0), hits[0].Point, tol))
			assert.True(vecNear(V(1, 0), hits[0].Normal, tol))
			assert.Same(el, hits[0].Element)

			// Edges of the segment are inclusive, beyond them is a miss
			assert.Len(Intersect(whiteRay(V(0, 59.9), V(1, 0)), el), 1)
			assert.Empty(Intersect(whiteRay(V(0, 60.1), V(1, 0)), el))
			// Behind the ray
			assert.Empty(Intersect(whiteRay(V(200, 0), V(1, 0)), el))
			// Parallel to the segment
			assert.Empty(Intersect(whiteRay(V(100, -200), V(0, 1)), el))
		})
	}

	lens := mustElement(t, KindConvexLens, V(0, 0), nil)
	assert.Equal(t, HitConvexLens, Intersect(whiteRay(V(-50, 0), V(1, 0)), lens)[0].Type)
	lens = mustElement(t, KindConcaveLens, V(0, 0), nil)
	assert.Equal(t, HitConcaveLens, Intersect(whiteRay(V(-50, 0), V(1, 0)), lens)[0].Type)
	mirror := mustElement(t, KindPlaneMirror, V(0, 0), nil)
	assert.Equal(t, HitMirror, Intersect(whiteRay(V(-50, 0), V(1, 0)), mirror)[0].Type)
}

func TestIntersectRotatedFlatElement(t *testing.T) {
	mirror := mustElement(t, KindPlaneMirror, V(0, 0), Properties{PropHeight: 100})
	mirror.Place().Rotation = math.Pi / 2

	// Rotated a quarter turn the mirror lies along the x axis and faces +y
	hits := Intersect(whiteRay(V(20, -50), V(0, 1)), mirror)
	require.Len(t, hits, 1)
	assert.True(t, vecNear(V(20, 0), hits[0].Point, 1e-9))
	assert.True(t, vecNear(V(0, 1), hits[0].Normal, 1e-9))
	assert.Empty(t, Intersect(whiteRay(V(-100, -10), V(1, 0)), mirror), "parallel to the mirror")
}

func TestIntersectCurvedMirrorNormals(t *testing.T) {
	tests := []struct {
		kind    Kind
		offset  float64
		wantDeg float64 // heading of the normal
	}{
		{KindConvexMirror, 0, 0},
		{KindConcaveMirror, 0, 180},
		// u = 0.5 - offset/height; the normal tilts by (u-0.5)*height/f/2 radians
		{KindConvexMirror, 40, 40.0 / 80 / 2 * 180 / math.Pi},
		{KindConvexMirror, -40, -40.0 / 80 / 2 * 180 / math.Pi},
		{KindConcaveMirror, 40, 180 + 40.0/80/2*180/math.Pi},
	}
	for _, test := range tests {
		t.Run(string(test.kind), func(t *testing.T) {
			el := mustElement(t, test.kind, V(100, 0), Properties{PropFocalLength: 80, PropHeight: 120})
			hits := Intersect(whiteRay(V(0, test.offset), V(1, 0)), el)
			require.Len(t, hits, 1)
			hit := hits[0]
			assert.Equal(t, HitMirror, hit.Type)
			assert.True(t, vecNear(V(100, test.offset), hit.Point, 1e-9), "mirror is hit tested as a flat segment")
			assert.InDelta(t, 1, r2.Norm(hit.Normal), tol)
			assert.True(t, vecNear(FromAngle(test.wantDeg*math.Pi/180), hit.Normal, 1e-9), "normal %v", hit.Normal)
		})
	}
}

func TestIntersectPrism(t *testing.T) {
	assert := assert.New(t)
	prism := mustElement(t, KindPrism, V(0, 0), Properties{PropSize: 80, PropApexAngle: 60})

	hits := Intersect(whiteRay(V(-100, 0), V(1, 0)), prism)
	require.Len(t, hits, 2)

	byEdge := map[string]Hit{}
	for _, h := range hits {
		byEdge[h.Edge] = h
		assert.Equal(HitPrism, h.Type)
		assert.InDelta(1, r2.Norm(h.Normal), tol)
		// Outward from the centre
		assert.Greater(r2.Dot(h.Normal, r2.Sub(h.Point, prism.Place().Position)), 0.0)
	}
	require.Contains(t, byEdge, "left")
	require.Contains(t, byEdge, "right")
	assert.Less(byEdge["left"].Point.X, 0.0)
	assert.Greater(byEdge["right"].Point.X, 0.0)
	assert.Less(byEdge["left"].Normal.X, 0.0)
	assert.Greater(byEdge["right"].Normal.X, 0.0)

	// Up through the base
	hits = Intersect(whiteRay(V(0, 100), V(0, -1)), prism)
	require.Len(t, hits, 3, "the ray passes exactly through the apex, touching both slanted edges")
	edges := map[string]bool{}
	for _, h := range hits {
		edges[h.Edge] = true
	}
	assert.True(edges["bottom"])

	assert.Empty(Intersect(whiteRay(V(-100, 100), V(1, 0)), prism))
}

func TestIntersectLiquidBox(t *testing.T) {
	assert := assert.New(t)
	box := mustElement(t, KindLiquidBox, V(0, 0), Properties{PropWidth: 100, PropHeight: 80})

	hits := Intersect(whiteRay(V(-200, 0), V(1, 0)), box)
	require.Len(t, hits, 2)
	normals := map[string]r2.Vec{}
	for _, h := range hits {
		normals[h.Edge] = h.Normal
		assert.Equal(HitLiquidBox, h.Type)
	}
	assert.True(vecNear(V(-1, 0), normals["left"], tol))
	assert.True(vecNear(V(1, 0), normals["right"], tol))

	// Normals turn with the box
	box.Place().Rotation = math.Pi / 2
	hits = Intersect(whiteRay(V(-200, 0), V(1, 0)), box)
	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.Greater(r2.Dot(h.Normal, h.Point), 0.0, "edge %s normal %v must point outward", h.Edge, h.Normal)
		assert.InDelta(40, math.Abs(h.Point.X), 1e-9)
	}
}

func TestSourcesAreNeverHit(t *testing.T) {
	src := mustElement(t, KindLightPoint, V(100, 0), nil)
	assert.Empty(t, Intersect(whiteRay(V(0, 0), V(1, 0)), src))
}

func TestNearestHit(t *testing.T) {
	assert := assert.New(t)
	near := mustElement(t, KindPlaneMirror, V(100, 0), nil)
	far := mustElement(t, KindPlaneMirror, V(300, 0), nil)
	src := mustElement(t, KindLightParallel, V(50, 0), nil)

	hit, ok := NearestHit(whiteRay(V(0, 0), V(1, 0)), []Element{far, src, near}, hitEpsilon)
	require.True(t, ok)
	assert.Same(near, hit.Element)
	assert.InDelta(100, hit.T, tol)

	// A ray sitting on a surface does not hit it again
	hit, ok = NearestHit(whiteRay(V(100.05, 0), V(-1, 0)), []Element{near}, hitEpsilon)
	assert.False(ok)

	_, ok = NearestHit(whiteRay(V(0, 0), V(0, 1)), []Element{near, far}, hitEpsilon)
	assert.False(ok)
}

func TestOutline(t *testing.T) {
	assert := assert.New(t)
	assert.Nil(Outline(mustElement(t, KindLightParallel, V(0, 0), nil)))
	assert.Len(Outline(mustElement(t, KindConvexLens, V(0, 0), nil)), 2)
	assert.Len(Outline(mustElement(t, KindConcaveMirror, V(0, 0), nil)), 2)
	assert.Len(Outline(mustElement(t, KindPrism, V(0, 0), nil)), 3)
	corners := Outline(mustElement(t, KindLiquidBox, V(10, 10), Properties{PropWidth: 20, PropHeight: 10}))
	require.Len(t, corners, 4)
	assert.True(vecNear(V(0, 5), corners[0], tol))
	assert.True(vecNear(V(20, 15), corners[2], tol))
}
