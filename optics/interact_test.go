package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestResolveMirror(t *testing.T) {
	assert := assert.New(t)
	mirror := mustElement(t, KindPlaneMirror, V(100, 0), nil)
	ray := whiteRay(V(0, 0), V(1, 0))
	ray.Bounces = 3
	ray.SourceID = "el-1"

	hits := Intersect(ray, mirror)
	require.Len(t, hits, 1)
	out := Resolve(ray, hits[0])
	require.Len(t, out, 1)

	assert.True(vecNear(V(-1, 0), out[0].Direction, tol))
	assert.True(vecNear(V(100, 0), out[0].Origin, tol))
	assert.InDelta(0.95, out[0].Intensity, tol)
	assert.Equal(4, out[0].Bounces)
	assert.Equal("el-1", out[0].SourceID)
	assert.Equal(LightColor, out[0].Color)

	// Both faces reflect
	back := whiteRay(V(200, -50), V(-1, 1))
	hits = Intersect(back, mirror)
	require.Len(t, hits, 1)
	out = Resolve(back, hits[0])
	require.Len(t, out, 1)
	assert.True(vecNear(r2.Unit(V(1, 1)), out[0].Direction, tol))
}

func TestResolveLens(t *testing.T) {
	tests := []struct {
		kind   Kind
		offset float64
		// Heading of the outgoing ray
		want float64
	}{
		{KindConvexLens, 0, 0},
		{KindConvexLens, 20, -math.Atan(20.0 / 80)},
		{KindConvexLens, -40, math.Atan(40.0 / 80)},
		{KindConcaveLens, 20, math.Atan(20.0 / 80)},
		{KindConcaveLens, -40, -math.Atan(40.0 / 80)},
	}
	for _, test := range tests {
		t.Run(string(test.kind), func(t *testing.T) {
			lens := mustElement(t, test.kind, V(300, 200), Properties{PropFocalLength: 80})
			ray := whiteRay(V(0, 200+test.offset), V(1, 0))
			hits := Intersect(ray, lens)
			require.Len(t, hits, 1)
			out := Resolve(ray, hits[0])
			require.Len(t, out, 1)
			assert.InDelta(t, test.want, Heading(out[0].Direction), tol)
			assert.InDelta(t, 0.95, out[0].Intensity, tol)
		})
	}
}

func TestResolveLensFocusesParallelLight(t *testing.T) {
	lens := mustElement(t, KindConvexLens, V(300, 200), Properties{PropFocalLength: 80})
	for _, offset := range []float64{-50, -26, -10, 10, 33} {
		ray := whiteRay(V(0, 200+offset), V(1, 0))
		hits := Intersect(ray, lens)
		require.Len(t, hits, 1)
		out := Resolve(ray, hits[0])[0]
		// Where the outgoing ray crosses the axis
		tt := (200 - out.Origin.Y) / out.Direction.Y
		assert.InDelta(t, 380, out.At(tt).X, 1e-9, "offset %v", offset)
	}
}

func TestResolveLiquidBox(t *testing.T) {
	assert := assert.New(t)
	box := mustElement(t, KindLiquidBox, V(0, 0), nil)
	incidence := math.Pi / 6

	// Entering through the left edge, 30 degrees off the normal
	ray := whiteRay(V(-100, 0), FromAngle(incidence))
	out := Resolve(ray, Hit{Point: V(-50, 0), Element: box, Normal: V(-1, 0), Type: HitLiquidBox, Edge: "left"})
	require.Len(t, out, 1)
	assert.InDelta(math.Asin(math.Sin(incidence)/1.33), Heading(out[0].Direction), tol)
	assert.InDelta(22.08, Heading(out[0].Direction)*180/math.Pi, 0.01)
	assert.InDelta(0.95, out[0].Intensity, tol)

	// Leaving through the right edge bends away from the normal
	inside := whiteRay(V(0, 0), FromAngle(0.3))
	out = Resolve(inside, Hit{Point: V(50, 15), Element: box, Normal: V(1, 0), Type: HitLiquidBox, Edge: "right"})
	require.Len(t, out, 1)
	assert.InDelta(math.Asin(1.33*math.Sin(0.3)), Heading(out[0].Direction), tol)

	// Beyond the critical angle the ray is reflected back into the liquid
	steep := whiteRay(V(0, 0), FromAngle(math.Pi/3))
	out = Resolve(steep, Hit{Point: V(50, 30), Element: box, Normal: V(1, 0), Type: HitLiquidBox, Edge: "right"})
	require.Len(t, out, 1)
	assert.True(vecNear(FromAngle(2*math.Pi/3), out[0].Direction, tol), "%v", out[0].Direction)
	assert.InDelta(0.95, out[0].Intensity, tol)
}

func prismEntry(t *testing.T, ray Ray) (Element, Hit) {
	t.Helper()
	prism := mustElement(t, KindPrism, V(200, 0), nil)
	hit, ok := NearestHit(ray, []Element{prism}, hitEpsilon)
	require.True(t, ok)
	require.Equal(t, "left", hit.Edge)
	return prism, hit
}

func TestResolvePrismSplitsWhiteLight(t *testing.T) {
	assert := assert.New(t)
	ray := whiteRay(V(0, 0), V(1, 0))
	ray.Intensity = 0.5
	_, hit := prismEntry(t, ray)

	out := Resolve(ray, hit)
	require.Len(t, out, len(Spectrum))

	total := 0.0
	headings := map[float64]bool{}
	for i, child := range out {
		require.NotNil(t, child.Wavelength)
		assert.Equal(Spectrum[i].Wavelength, *child.Wavelength)
		assert.Equal(Spectrum[i].Color, child.Color)
		assert.Equal(1, child.Bounces)
		assert.True(vecNear(hit.Point, child.Origin, tol))
		assert.InDelta(1, r2.Norm(child.Direction), tol)
		total += child.Intensity
		headings[Heading(child.Direction)] = true
	}
	assert.InDelta(0.9*0.5, total, tol)
	assert.Len(headings, len(Spectrum), "every band leaves in its own direction")

	// Violet is bent furthest from the incoming direction
	red, violet := out[0], out[len(out)-1]
	assert.Greater(math.Abs(Heading(violet.Direction)), math.Abs(Heading(red.Direction)))

	// Children do not share wavelength storage
	*out[0].Wavelength = 1
	assert.Equal(620.0, *out[1].Wavelength)
	assert.Equal(700.0, Spectrum[0].Wavelength)
}

func TestResolvePrismMonochromatic(t *testing.T) {
	assert := assert.New(t)
	ray := monoRay(V(0, 0), V(1, 0), 550)
	_, hit := prismEntry(t, ray)

	out := Resolve(ray, hit)
	require.Len(t, out, 1)
	assert.Equal(550.0, *out[0].Wavelength)
	assert.Equal(ray.Color, out[0].Color)
	assert.InDelta(0.95, out[0].Intensity, tol)

	n := DispersionIndex(550)
	assert.InDelta(1.53, n, tol)
	normal, _ := against(ray.Direction, hit.Normal)
	sinI := math.Abs(r2.Cross(ray.Direction, normal))
	sinT := math.Abs(r2.Cross(out[0].Direction, normal))
	assert.InDelta(sinI, n*sinT, tol)
}

func TestAgainst(t *testing.T) {
	n, entering := against(V(1, 0), V(-1, 0))
	assert.True(t, entering)
	assert.Equal(t, V(-1, 0), n)

	n, entering = against(V(1, 0), V(1, 0))
	assert.False(t, entering)
	assert.Equal(t, V(-1, 0), n)
}

func TestResolveUnknownHit(t *testing.T) {
	assert.Empty(t, Resolve(whiteRay(V(0, 0), V(1, 0)), Hit{Type: "window"}))
}
