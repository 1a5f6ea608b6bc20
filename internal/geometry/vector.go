package geometry

import "math"

// Point2D is a position in the poloidal (R, Z) half-plane.
type Point2D struct {
	X, Y float64
}

func (a Point2D) Add(b Vector2D) Point2D { return Point2D{a.X + b.X, a.Y + b.Y} }
func (a Point2D) Sub(b Point2D) Vector2D { return Vector2D{a.X - b.X, a.Y - b.Y} }
func (a Point2D) DistanceTo(b Point2D) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Vector2D represents a direction in the poloidal plane.
type Vector2D struct {
	X, Y float64
}

func (a Vector2D) Add(b Vector2D) Vector2D { return Vector2D{a.X + b.X, a.Y + b.Y} }
func (v Vector2D) Mul(s float64) Vector2D  { return Vector2D{v.X * s, v.Y * s} }
func (a Vector2D) Dot(b Vector2D) float64  { return a.X*b.X + a.Y*b.Y }

// Cross returns the scalar (out of plane) component of the 2D cross product.
func (a Vector2D) Cross(b Vector2D) float64 { return a.X*b.Y - a.Y*b.X }

func (v Vector2D) Len() float64 { return math.Hypot(v.X, v.Y) }

// Point3D is a position in machine coordinates [m].
type Point3D struct {
	X, Y, Z float64
}

func (a Point3D) Add(v Vector3D) Point3D { return Point3D{a.X + v.X, a.Y + v.Y, a.Z + v.Z} }
func (a Point3D) Sub(b Point3D) Vector3D { return Vector3D{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Point3D) DistanceTo(b Point3D) float64 {
	return a.Sub(b).Len()
}

// VectorTo returns the vector from a to b.
func (a Point3D) VectorTo(b Point3D) Vector3D { return b.Sub(a) }

// R returns the cylindrical major radius of the point.
func (a Point3D) R() float64 { return math.Hypot(a.X, a.Y) }

// Vector3D represents a direction (not a position) in machine coordinates.
type Vector3D struct {
	X, Y, Z float64
}

func (a Vector3D) Add(b Vector3D) Vector3D { return Vector3D{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vector3D) Sub(b Vector3D) Vector3D { return Vector3D{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (v Vector3D) Mul(s float64) Vector3D  { return Vector3D{v.X * s, v.Y * s, v.Z * s} }
func (v Vector3D) Neg() Vector3D           { return Vector3D{-v.X, -v.Y, -v.Z} }

func (a Vector3D) Dot(b Vector3D) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func (a Vector3D) Cross(b Vector3D) Vector3D {
	return Vector3D{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the Euclidean length of the vector.
func (v Vector3D) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalise returns a unit-length version of the vector.
func (v Vector3D) Normalise() Vector3D {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vector3D{v.X / l, v.Y / l, v.Z / l}
}
