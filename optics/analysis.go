package optics

import (
	"gonum.org/v1/gonum/floats"
)

// EnergyByBounce sums segment intensities per bounce depth. Index i holds the light carried by
// segments that have interacted i times.
func EnergyByBounce(segments []Segment) []float64 {
	depth := 0
	for _, s := range segments {
		depth = max(depth, s.Bounces+1)
	}
	energy := make([]float64, depth)
	for _, s := range segments {
		energy[s.Bounces] += s.Intensity
	}
	return energy
}

// TotalEnergy is the summed intensity of every segment
func TotalEnergy(segments []Segment) float64 {
	return floats.Sum(EnergyByBounce(segments))
}

// EscapingSegments counts segments that leave the scene without hitting anything
func EscapingSegments(segments []Segment) int {
	n := 0
	for _, s := range segments {
		if s.Escaped {
			n++
		}
	}
	return n
}
