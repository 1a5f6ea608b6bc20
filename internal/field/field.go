// Package field provides the function-composition utilities used to map
// 1D profile interpolants into continuous 2D and 3D fields: axisymmetric
// rotation, iso-surface mapping over a flux coordinate and masked blending.
package field

import (
	"math"

	"github.com/mgattu/jetsynth/internal/geometry"
)

// Scalar2D is a scalar field over the poloidal (R, Z) plane.
type Scalar2D func(r, z float64) float64

// Scalar3D is a scalar field over machine coordinates.
type Scalar3D func(x, y, z float64) float64

// Vector3D is a vector field over machine coordinates.
type Vector3D func(x, y, z float64) geometry.Vector3D

// Constant2D returns a uniform field.
func Constant2D(v float64) Scalar2D {
	return func(r, z float64) float64 { return v }
}

// Blend2D selects inside where mask holds and outside elsewhere.
func Blend2D(outside, inside Scalar2D, mask func(r, z float64) bool) Scalar2D {
	return func(r, z float64) float64 {
		if mask(r, z) {
			return inside(r, z)
		}
		return outside(r, z)
	}
}

// IsoMapper2D composes a 1D profile with a 2D coordinate field, so the
// profile value is constant along iso-contours of the coordinate.
func IsoMapper2D(coord Scalar2D, profile func(float64) float64) Scalar2D {
	return func(r, z float64) float64 {
		return profile(coord(r, z))
	}
}

// Axisymmetric rotates a poloidal-plane field around the machine axis.
func Axisymmetric(f Scalar2D) Scalar3D {
	return func(x, y, z float64) float64 {
		return f(math.Hypot(x, y), z)
	}
}

// ToroidalVector builds a 3D vector field from a scalar toroidal component:
// at every point the vector points along the toroidal direction with the
// local magnitude of vtor.
func ToroidalVector(vtor Scalar3D) Vector3D {
	return func(x, y, z float64) geometry.Vector3D {
		r := math.Hypot(x, y)
		if r == 0 {
			return geometry.Vector3D{}
		}
		v := vtor(x, y, z)
		return geometry.Vector3D{X: y * v / r, Y: -x * v / r, Z: 0}
	}
}

// CylindricalVector rotates a poloidal-plane (vr, vtor, vz) field into
// machine coordinates.
func CylindricalVector(f func(r, z float64) (vr, vtor, vz float64)) Vector3D {
	return func(x, y, z float64) geometry.Vector3D {
		r := math.Hypot(x, y)
		if r == 0 {
			return geometry.Vector3D{}
		}
		vr, vt, vz := f(r, z)
		cos, sin := x/r, y/r
		return geometry.Vector3D{
			X: vr*cos + vt*sin,
			Y: vr*sin - vt*cos,
			Z: vz,
		}
	}
}
