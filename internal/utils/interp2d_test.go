package utils

import (
	"math"
	"testing"
)

func makeField(f func(x, y float64) float64, xs, ys []float64) []float64 {
	vals := make([]float64, len(xs)*len(ys))
	for i, x := range xs {
		for j, y := range ys {
			vals[i*len(ys)+j] = f(x, y)
		}
	}
	return vals
}

func TestInterp2DReproducesNodes(t *testing.T) {
	xs := Linspace(1.5, 4.0, 11)
	ys := Linspace(-2.0, 2.0, 9)
	f := func(x, y float64) float64 { return (x-3)*(x-3) + y*y }
	p, err := NewInterp2D(xs, ys, makeField(f, xs, ys))
	if err != nil {
		t.Fatal(err)
	}
	for i, x := range xs {
		for j, y := range ys {
			if got := p.At(x, y); math.Abs(got-f(x, y)) > 1e-9 {
				t.Fatalf("node (%d,%d): got %g, want %g", i, j, got, f(x, y))
			}
		}
	}
}

func TestInterp2DBetweenNodes(t *testing.T) {
	// bicubic convolution reproduces quadratics away from the boundary
	xs := Linspace(0, 10, 21)
	ys := Linspace(0, 10, 21)
	f := func(x, y float64) float64 { return x*x + 2*y }
	p, err := NewInterp2D(xs, ys, makeField(f, xs, ys))
	if err != nil {
		t.Fatal(err)
	}
	for _, pt := range [][2]float64{{3.3, 4.7}, {5.1, 5.9}, {2.25, 7.75}} {
		got := p.At(pt[0], pt[1])
		want := f(pt[0], pt[1])
		if math.Abs(got-want) > 1e-6*math.Abs(want) {
			t.Fatalf("At(%g, %g) = %g, want %g", pt[0], pt[1], got, want)
		}
	}
}

func TestInterp2DClampsOutside(t *testing.T) {
	xs := Linspace(0, 1, 3)
	ys := Linspace(0, 1, 3)
	p, err := NewInterp2D(xs, ys, makeField(func(x, y float64) float64 { return x + y }, xs, ys))
	if err != nil {
		t.Fatal(err)
	}
	if got := p.At(-5, 0.5); math.Abs(got-p.At(0, 0.5)) > 1e-12 {
		t.Fatalf("outside grid: got %g, want clamp to %g", got, p.At(0, 0.5))
	}
}

func TestInterp2DRejectsBadGrids(t *testing.T) {
	if _, err := NewInterp2D([]float64{0}, []float64{0, 1}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for 1-point axis")
	}
	if _, err := NewInterp2D([]float64{0, 1}, []float64{0, 1}, []float64{1, 2, 3}); err == nil {
		t.Fatal("expected error for value count mismatch")
	}
	if _, err := NewInterp2D([]float64{0, 1, 1.5}, []float64{0, 1}, make([]float64, 6)); err == nil {
		t.Fatal("expected error for non-uniform axis")
	}
	if _, err := NewInterp2D([]float64{1, 0}, []float64{0, 1}, make([]float64, 4)); err == nil {
		t.Fatal("expected error for descending axis")
	}
}

func TestInterp2DGradient(t *testing.T) {
	xs := Linspace(0, 10, 21)
	ys := Linspace(0, 10, 21)
	p, err := NewInterp2D(xs, ys, makeField(func(x, y float64) float64 { return 3*x - 2*y }, xs, ys))
	if err != nil {
		t.Fatal(err)
	}
	dx, dy := p.GradientAt(5, 5)
	if math.Abs(dx-3) > 1e-6 || math.Abs(dy+2) > 1e-6 {
		t.Fatalf("GradientAt = (%g, %g), want (3, -2)", dx, dy)
	}
}
