package optics

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// View renders a traced scene into an image
type View struct {
	XSize int
	YSize int
	Dark  bool
	// Pixels kept free around the scene
	Margin float64
	// Index of a segment to draw emphasised, -1 for none
	Highlight int

	// These cache the values needed to scale and translate from the scene to the requested image size
	scale     float64
	translate r2.Vec
}

func NewView(xSize, ySize int, dark bool) *View {
	return &View{XSize: xSize, YSize: ySize, Dark: dark, Margin: 20, Highlight: -1}
}

// sceneBox bounds the elements and every segment that ends on one. Escaping segments are clipped
// by the image instead of stretching it.
func sceneBox(elements []Element, segments []Segment) Box {
	var points []r2.Vec
	for _, el := range elements {
		r := el.HitRadius()
		p := el.Place().Position
		points = append(points, r2.Sub(p, V(r, r)), r2.Add(p, V(r, r)))
	}
	for _, s := range segments {
		points = append(points, s.From)
		if !s.Escaped {
			points = append(points, s.To)
		}
	}
	return BoundingBox(points...)
}

func (v *View) computeScaleAndTranslation(elements []Element, segments []Segment) {
	box := sceneBox(elements, segments)
	size := box.Size()
	xScale := (float64(v.XSize) - 2*v.Margin) / size.X
	yScale := (float64(v.YSize) - 2*v.Margin) / size.Y
	v.scale = math.Min(xScale, yScale)
	if math.IsInf(v.scale, 0) || math.IsNaN(v.scale) || v.scale <= 0 {
		v.scale = 1
	}
	v.translate = r2.Sub(V(v.Margin, v.Margin), r2.Scale(v.scale, box.Min))
}

func (v *View) toImage(p r2.Vec) r2.Vec {
	return r2.Add(r2.Scale(v.scale, p), v.translate)
}

func (v *View) palette() (background, outline colorful.Color) {
	if v.Dark {
		return colorful.Color{R: 0.07, G: 0.07, B: 0.1}, colorful.Color{R: 0.8, G: 0.85, B: 0.9}
	}
	return colorful.Color{R: 1, G: 1, B: 1}, colorful.Color{R: 0.2, G: 0.25, B: 0.3}
}

// Render draws the elements and the segments traced through them
func (v *View) Render(elements []Element, segments []Segment) image.Image {
	v.computeScaleAndTranslation(elements, segments)
	background, outline := v.palette()

	c := gg.NewContext(v.XSize, v.YSize)
	c.SetColor(background)
	c.Clear()

	for i, s := range segments {
		from, to := v.toImage(s.From), v.toImage(s.To)
		r, g, b := s.Color.RGB255()
		alpha := math.Max(0, math.Min(1, s.Intensity))
		c.SetRGBA255(int(r), int(g), int(b), int(alpha*255))
		c.SetLineWidth(2)
		if i == v.Highlight {
			c.SetRGBA255(int(r), int(g), int(b), 255)
			c.SetLineWidth(5)
		}
		c.DrawLine(from.X, from.Y, to.X, to.Y)
		c.Stroke()
	}

	c.SetColor(outline)
	for _, el := range elements {
		v.drawElement(c, el)
	}
	return c.Image()
}

func (v *View) drawElement(c *gg.Context, el Element) {
	switch e := el.(type) {
	case *LightSource:
		p := v.toImage(e.Position)
		c.DrawCircle(p.X, p.Y, 8)
		c.Fill()
		tip := v.toImage(r2.Add(e.Position, r2.Scale(20/math.Max(v.scale, 1e-9), e.Axis())))
		c.SetLineWidth(2)
		c.DrawLine(p.X, p.Y, tip.X, tip.Y)
		c.Stroke()
	case *Prism, *LiquidBox:
		outline := Outline(el)
		for i, p := range outline {
			q := v.toImage(p)
			if i == 0 {
				c.MoveTo(q.X, q.Y)
			} else {
				c.LineTo(q.X, q.Y)
			}
		}
		c.ClosePath()
		c.SetLineWidth(2)
		c.Stroke()
	default:
		outline := Outline(el)
		if len(outline) != 2 {
			return
		}
		p1, p2 := v.toImage(outline[0]), v.toImage(outline[1])
		c.SetLineWidth(4)
		c.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
		c.Stroke()
	}
}

// SavePNG encodes an image to a PNG file
func SavePNG(filename string, i image.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, i)
}

// PlotEnergy saves a bar chart of the light carried at each bounce depth
func PlotEnergy(filename string, xSize, ySize int, segments []Segment) error {
	p := plot.New()
	p.Title.Text = "Energy by bounce"
	p.X.Label.Text = "Bounces"
	p.Y.Label.Text = "Summed intensity"

	energy := EnergyByBounce(segments)
	if len(energy) == 0 {
		return fmt.Errorf("no segments to plot")
	}
	bars, err := plotter.NewBarChart(plotter.Values(energy), vg.Points(12))
	if err != nil {
		return err
	}
	p.Add(bars)
	if err := p.Save(vg.Points(float64(xSize)), vg.Points(float64(ySize)), filename); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
