package optics

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lensScene(t *testing.T) ([]Element, []Segment) {
	t.Helper()
	elements := []Element{
		mustElement(t, KindLightParallel, V(100, 200), nil),
		mustElement(t, KindConvexLens, V(300, 200), nil),
		mustElement(t, KindPrism, V(450, 100), nil),
	}
	return elements, TraceScene(elements)
}

func TestRender(t *testing.T) {
	assert := assert.New(t)
	elements, segments := lensScene(t)

	light := NewView(400, 300, false)
	img := light.Render(elements, segments)
	assert.Equal(400, img.Bounds().Dx())
	assert.Equal(300, img.Bounds().Dy())
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal([3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})

	dark := NewView(400, 300, true)
	img = dark.Render(elements, segments)
	r, g, b, _ = img.At(1, 1).RGBA()
	assert.Less(r, uint32(0x4000))
	assert.Less(g, uint32(0x4000))
	assert.Less(b, uint32(0x4000))
}

func TestViewFitsScene(t *testing.T) {
	elements, segments := lensScene(t)
	v := NewView(800, 600, false)
	v.computeScaleAndTranslation(elements, segments)

	box := sceneBox(elements, segments)
	for _, corner := range []struct{ X, Y float64 }{{box.Min.X, box.Min.Y}, {box.Max.X, box.Max.Y}} {
		p := v.toImage(V(corner.X, corner.Y))
		assert.GreaterOrEqual(t, p.X, v.Margin-tol)
		assert.GreaterOrEqual(t, p.Y, v.Margin-tol)
		assert.LessOrEqual(t, p.X, 800-v.Margin+tol)
		assert.LessOrEqual(t, p.Y, 600-v.Margin+tol)
	}

	// Escaping segments do not stretch the view
	assert.Less(t, box.Max.X, FarDistance)
}

func TestViewEmptyScene(t *testing.T) {
	v := NewView(100, 100, false)
	img := v.Render(nil, nil)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 1.0, v.scale)
}

func TestSavePNG(t *testing.T) {
	elements, segments := lensScene(t)
	v := NewView(200, 150, false)
	v.Highlight = 3

	filename := filepath.Join(t.TempDir(), "scene.png")
	require.NoError(t, SavePNG(filename, v.Render(elements, segments)))

	f, err := os.Open(filename)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestPlotEnergy(t *testing.T) {
	_, segments := lensScene(t)
	dir := t.TempDir()

	filename := filepath.Join(dir, "energy.png")
	require.NoError(t, PlotEnergy(filename, 300, 200, segments))
	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.Error(t, PlotEnergy(filepath.Join(dir, "empty.png"), 300, 200, nil))
}
