package geometry

// Mat4 is a 3D affine transform in homogeneous coordinates.
type Mat4 struct {
	M [4][4]float64
}

// Identity returns the identity transform.
func Identity() Mat4 {
	var m Mat4
	for i := range 4 {
		m.M[i][i] = 1
	}
	return m
}

// Translate builds a transform moving the origin to (x, y, z).
func Translate(x, y, z float64) Mat4 {
	m := Identity()
	m.M[0][3] = x
	m.M[1][3] = y
	m.M[2][3] = z
	return m
}

// RotateBasis builds a rotation mapping the local +z axis onto forward and
// the local +y axis as close as possible to up. forward and up must not be
// parallel.
func RotateBasis(forward, up Vector3D) Mat4 {
	z := forward.Normalise()
	x := up.Cross(z).Normalise()
	y := z.Cross(x)

	m := Identity()
	m.M[0][0], m.M[0][1], m.M[0][2] = x.X, y.X, z.X
	m.M[1][0], m.M[1][1], m.M[1][2] = x.Y, y.Y, z.Y
	m.M[2][0], m.M[2][1], m.M[2][2] = x.Z, y.Z, z.Z
	return m
}

func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for i := range 4 {
		for j := range 4 {
			var s float64
			for k := range 4 {
				s += a.M[i][k] * b.M[k][j]
			}
			out.M[i][j] = s
		}
	}
	return out
}

// Point applies the full affine transform to a position.
func (a Mat4) Point(p Point3D) Point3D {
	return Point3D{
		a.M[0][0]*p.X + a.M[0][1]*p.Y + a.M[0][2]*p.Z + a.M[0][3],
		a.M[1][0]*p.X + a.M[1][1]*p.Y + a.M[1][2]*p.Z + a.M[1][3],
		a.M[2][0]*p.X + a.M[2][1]*p.Y + a.M[2][2]*p.Z + a.M[2][3],
	}
}

// Vector applies only the rotational part of the transform to a direction.
func (a Mat4) Vector(v Vector3D) Vector3D {
	return Vector3D{
		a.M[0][0]*v.X + a.M[0][1]*v.Y + a.M[0][2]*v.Z,
		a.M[1][0]*v.X + a.M[1][1]*v.Y + a.M[1][2]*v.Z,
		a.M[2][0]*v.X + a.M[2][1]*v.Y + a.M[2][2]*v.Z,
	}
}
