package optics

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	lin "github.com/sgreben/piecewiselinear"
)

// Band is one of the named spectral bands white light is split into by a prism
type Band struct {
	Name       string
	Wavelength float64 // nm
	Index      float64 // refractive index of prism glass in this band
	Color      colorful.Color
}

// Crown glass index at 700nm. The monochromatic dispersion curve rises linearly from here.
const BaseGlassIndex = 1.52

// Wavelengths outside the visible range are clamped before looking up an index or a color
const (
	MinWavelength = 380.0
	MaxWavelength = 780.0
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("bad color %q: %v", s, err))
	}
	return c
}

// Spectrum is the fixed table of bands used for white-light dispersion, ordered red to violet
var Spectrum = []Band{
	{"red", 700, 1.513, mustHex("#ff0000")},
	{"orange", 620, 1.517, mustHex("#ff7f00")},
	{"yellow", 580, 1.519, mustHex("#ffff00")},
	{"green", 530, 1.522, mustHex("#00ff00")},
	{"blue", 470, 1.528, mustHex("#0000ff")},
	{"indigo", 445, 1.531, mustHex("#4b0082")},
	{"violet", 400, 1.536, mustHex("#9400d3")},
}

var (
	LightColor = mustHex("#e53935")
	DarkColor  = mustHex("#ffffff")
)

// Index gained per nm below 700nm
const glassDispersion = 0.02 / 300

// Glass index over the visible range. Lookups are clamped to the knots first.
var dispersionCurve = lin.Function{
	X: []float64{MinWavelength, MaxWavelength},
	Y: []float64{
		BaseGlassIndex + glassDispersion*(700-MinWavelength),
		BaseGlassIndex + glassDispersion*(700-MaxWavelength),
	},
}

func clampWavelength(wavelength float64) float64 {
	return math.Max(MinWavelength, math.Min(MaxWavelength, wavelength))
}

// DispersionIndex is the refractive index of prism glass for monochromatic light
func DispersionIndex(wavelength float64) float64 {
	return dispersionCurve.At(clampWavelength(wavelength))
}

// WavelengthColor returns the display color of monochromatic light
func WavelengthColor(wavelength float64) colorful.Color {
	switch w := clampWavelength(wavelength); {
	case w >= 680:
		return Spectrum[0].Color
	case w >= 620:
		return Spectrum[1].Color
	case w >= 570:
		return Spectrum[2].Color
	case w >= 495:
		return Spectrum[3].Color
	case w >= 450:
		return Spectrum[4].Color
	case w >= 420:
		return Spectrum[5].Color
	default:
		return Spectrum[6].Color
	}
}
