//go:build !verify_refraction

package optics

import "gonum.org/v1/gonum/spatial/r2"

// Empty stubs that will be optimized out
func verifyReflection(incident, normal, reflected r2.Vec) {}

func verifySnell(incident, normal, refracted r2.Vec, n1, n2 float64) {}
