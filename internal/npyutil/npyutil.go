// Package npyutil reads and writes NumPy .npy array files and provides the
// slicing helpers the diagnostic loaders need (stride subsampling and row
// flattening of 2D maps).
package npyutil

import (
	"fmt"
	"io"
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/mgattu/jetsynth/internal/utils"
)

// Array2D is a dense row-major 2D array.
type Array2D struct {
	Rows, Cols int
	Data       []float64
}

func (a Array2D) At(i, j int) float64 {
	return a.Data[i*a.Cols+j]
}

// Stride subsamples the array as a[::s, ::s].
func (a Array2D) Stride(s int) Array2D {
	if s <= 1 {
		return a
	}
	rows := utils.CeilDiv(a.Rows, s)
	cols := utils.CeilDiv(a.Cols, s)
	out := Array2D{Rows: rows, Cols: cols, Data: make([]float64, 0, rows*cols)}
	for i := 0; i < a.Rows; i += s {
		for j := 0; j < a.Cols; j += s {
			out.Data = append(out.Data, a.At(i, j))
		}
	}
	return out
}

// Flatten returns the row-major data slice. The backing array is shared.
func (a Array2D) Flatten() []float64 {
	return a.Data
}

// Read2D loads a .npy file holding a 2D float array.
func Read2D(path string) (Array2D, error) {
	shape, data, err := read(path)
	if err != nil {
		return Array2D{}, err
	}
	if len(shape) != 2 {
		return Array2D{}, fmt.Errorf("npyutil: %s: expected 2 axes, got %d", path, len(shape))
	}
	return Array2D{Rows: shape[0], Cols: shape[1], Data: data}, nil
}

// Array3D is a dense row-major 3D array, used for per-pixel vector grids
// (shape H x W x 3).
type Array3D struct {
	N0, N1, N2 int
	Data       []float64
}

func (a Array3D) At(i, j, k int) float64 {
	return a.Data[(i*a.N1+j)*a.N2+k]
}

// Read3D loads a .npy file holding a 3D float array.
func Read3D(path string) (Array3D, error) {
	shape, data, err := read(path)
	if err != nil {
		return Array3D{}, err
	}
	if len(shape) != 3 {
		return Array3D{}, fmt.Errorf("npyutil: %s: expected 3 axes, got %d", path, len(shape))
	}
	return Array3D{N0: shape[0], N1: shape[1], N2: shape[2], Data: data}, nil
}

// Read3DFrom decodes a 3D float array from an open .npy stream. label is
// only used in error messages.
func Read3DFrom(rd io.Reader, label string) (Array3D, error) {
	shape, data, err := readFrom(rd, label)
	if err != nil {
		return Array3D{}, err
	}
	if len(shape) != 3 {
		return Array3D{}, fmt.Errorf("npyutil: %s: expected 3 axes, got %d", label, len(shape))
	}
	return Array3D{N0: shape[0], N1: shape[1], N2: shape[2], Data: data}, nil
}

func read(path string) ([]int, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("npyutil: %w", err)
	}
	defer f.Close()
	return readFrom(f, path)
}

func readFrom(rd io.Reader, label string) (shape []int, data []float64, err error) {
	r, err := npyio.NewReader(rd)
	if err != nil {
		return nil, nil, fmt.Errorf("npyutil: %s: %w", label, err)
	}
	if err := r.Read(&data); err != nil {
		return nil, nil, fmt.Errorf("npyutil: %s: %w", label, err)
	}
	shape = r.Header.Descr.Shape
	n := 1
	for _, d := range shape {
		n *= d
	}
	if n != len(data) {
		return nil, nil, fmt.Errorf("npyutil: %s: header shape %v does not match %d values", label, shape, len(data))
	}
	return shape, data, nil
}

// WriteMatrix stores a gonum matrix as a 2D .npy file.
func WriteMatrix(path string, m *mat.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("npyutil: %w", err)
	}
	defer f.Close()
	if err := npyio.Write(f, m); err != nil {
		return fmt.Errorf("npyutil: %s: %w", path, err)
	}
	return nil
}

// ReadMatrix loads a 2D .npy file into a gonum matrix.
func ReadMatrix(path string) (*mat.Dense, error) {
	a, err := Read2D(path)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(a.Rows, a.Cols, a.Data), nil
}
