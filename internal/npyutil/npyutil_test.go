package npyutil

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestWriteRead2DRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.npy")
	data := []float64{1, 2, 3, 4, 5, 6}
	require.NoError(t, Write(path, []int{2, 3}, data))

	a, err := Read2D(path)
	require.NoError(t, err)
	require.Equal(t, 2, a.Rows)
	require.Equal(t, 3, a.Cols)
	require.Empty(t, cmp.Diff(data, a.Data))
	require.Equal(t, 6.0, a.At(1, 2))
}

func TestWriteRead3DRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v.npy")
	data := make([]float64, 2*2*3)
	for i := range data {
		data[i] = float64(i)
	}
	require.NoError(t, Write(path, []int{2, 2, 3}, data))

	a, err := Read3D(path)
	require.NoError(t, err)
	require.Equal(t, [3]int{2, 2, 3}, [3]int{a.N0, a.N1, a.N2})
	require.Equal(t, 11.0, a.At(1, 1, 2))
}

func TestReadRejectsWrongRank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.npy")
	require.NoError(t, Write(path, []int{4}, []float64{1, 2, 3, 4}))

	_, err := Read2D(path)
	require.Error(t, err)
	_, err = Read3D(path)
	require.Error(t, err)
}

func TestStride(t *testing.T) {
	// 5x5 with a[i][j] = 10i + j
	a := Array2D{Rows: 5, Cols: 5, Data: make([]float64, 25)}
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			a.Data[i*5+j] = float64(10*i + j)
		}
	}

	s := a.Stride(2)
	require.Equal(t, 3, s.Rows)
	require.Equal(t, 3, s.Cols)
	require.Empty(t, cmp.Diff([]float64{0, 2, 4, 20, 22, 24, 40, 42, 44}, s.Flatten()))

	// stride larger than the array keeps just the first element
	s = a.Stride(7)
	require.Equal(t, []float64{0}, s.Flatten())

	// stride 1 is the identity
	require.Equal(t, a, a.Stride(1))
}

func TestMatrixRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.npy")
	m := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, WriteMatrix(path, m))

	got, err := ReadMatrix(path)
	require.NoError(t, err)
	require.True(t, mat.Equal(m, got))
}

func TestWriteShapeMismatch(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "bad.npy"), []int{2, 2}, []float64{1})
	require.Error(t, err)
}
