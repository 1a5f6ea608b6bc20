package utils

import (
	"fmt"
	"math"
)

// Interp2D interpolates a scalar field sampled on a rectangular grid with
// uniformly spaced axes, using bicubic (Catmull-Rom) convolution. Outside
// the grid the field is clamped to the boundary values.
type Interp2D struct {
	xs, ys []float64
	vals   []float64 // row-major, len(xs)*len(ys)
}

// NewInterp2D builds an interpolant over the grid xs x ys. vals is row-major
// with vals[i*len(ys)+j] = f(xs[i], ys[j]). Both axes must be strictly
// ascending and uniformly spaced.
func NewInterp2D(xs, ys, vals []float64) (*Interp2D, error) {
	if len(xs) < 2 || len(ys) < 2 {
		return nil, fmt.Errorf("interp2d: need at least a 2x2 grid, got %dx%d", len(xs), len(ys))
	}
	if len(vals) != len(xs)*len(ys) {
		return nil, fmt.Errorf("interp2d: %d values for a %dx%d grid", len(vals), len(xs), len(ys))
	}
	for _, axis := range [][]float64{xs, ys} {
		step := axis[1] - axis[0]
		if step <= 0 {
			return nil, fmt.Errorf("interp2d: axis must be ascending")
		}
		for i := 1; i < len(axis); i++ {
			if math.Abs((axis[i]-axis[i-1])-step) > 1e-9*math.Abs(step) {
				return nil, fmt.Errorf("interp2d: axis must be uniformly spaced")
			}
		}
	}
	return &Interp2D{xs: xs, ys: ys, vals: vals}, nil
}

func (p *Interp2D) at(i, j int) float64 {
	i = int(Clamp(float64(i), 0, float64(len(p.xs)-1)))
	j = int(Clamp(float64(j), 0, float64(len(p.ys)-1)))
	return p.vals[i*len(p.ys)+j]
}

// catmullRom evaluates the cubic kernel for samples v0..v3 at t in [0,1]
// between v1 and v2.
func catmullRom(v0, v1, v2, v3, t float64) float64 {
	a := -0.5*v0 + 1.5*v1 - 1.5*v2 + 0.5*v3
	b := v0 - 2.5*v1 + 2.0*v2 - 0.5*v3
	c := -0.5*v0 + 0.5*v2
	return ((a*t+b)*t+c)*t + v1
}

// At evaluates the field at (x, y).
func (p *Interp2D) At(x, y float64) float64 {
	fx := (Clamp(x, p.xs[0], p.xs[len(p.xs)-1]) - p.xs[0]) / (p.xs[1] - p.xs[0])
	fy := (Clamp(y, p.ys[0], p.ys[len(p.ys)-1]) - p.ys[0]) / (p.ys[1] - p.ys[0])
	i := int(math.Floor(fx))
	j := int(math.Floor(fy))
	if i >= len(p.xs)-1 {
		i = len(p.xs) - 2
	}
	if j >= len(p.ys)-1 {
		j = len(p.ys) - 2
	}
	tx := fx - float64(i)
	ty := fy - float64(j)

	var col [4]float64
	for di := -1; di <= 2; di++ {
		col[di+1] = catmullRom(
			p.at(i+di, j-1), p.at(i+di, j), p.at(i+di, j+1), p.at(i+di, j+2), ty)
	}
	return catmullRom(col[0], col[1], col[2], col[3], tx)
}

// GradientAt returns (df/dx, df/dy) at (x, y) by central differences of the
// interpolant with a step of one hundredth of the grid spacing.
func (p *Interp2D) GradientAt(x, y float64) (dx, dy float64) {
	hx := (p.xs[1] - p.xs[0]) * 1e-2
	hy := (p.ys[1] - p.ys[0]) * 1e-2
	dx = (p.At(x+hx, y) - p.At(x-hx, y)) / (2 * hx)
	dy = (p.At(x, y+hy) - p.At(x, y-hy)) / (2 * hy)
	return
}
