//go:build verify_refraction

package optics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	lengthEpsilon = 1e-7
	snellEpsilon  = 1e-7
)

func init() {
	fmt.Println("Refraction verification enabled.")
}

// verifyReflection panics unless the angle of incidence equals the angle of reflection
func verifyReflection(incident, normal, reflected r2.Vec) {
	in := r2.Dot(incident, normal) / r2.Norm(incident)
	out := r2.Dot(reflected, normal) / r2.Norm(reflected)
	if math.Abs(in+out) > snellEpsilon {
		panic(fmt.Sprintf("angle of incidence %v does not match angle of reflection %v", in, -out))
	}
}

// verifySnell panics unless n1 sin(i) == n2 sin(t) and the refracted direction keeps unit length
func verifySnell(incident, normal, refracted r2.Vec, n1, n2 float64) {
	if math.Abs(r2.Norm(refracted)-r2.Norm(incident)) > lengthEpsilon {
		panic(fmt.Sprintf("refracted length %v differs from incident %v", r2.Norm(refracted), r2.Norm(incident)))
	}
	sinI := math.Abs(r2.Cross(incident, normal))
	sinT := math.Abs(r2.Cross(refracted, normal))
	if math.Abs(n1*sinI-n2*sinT) > snellEpsilon {
		panic(fmt.Sprintf("snell's law violated: %v*%v != %v*%v", n1, sinI, n2, sinT))
	}
}
