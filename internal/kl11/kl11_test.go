package kl11

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mgattu/jetsynth/internal/npyutil"
	"github.com/mgattu/jetsynth/internal/sensitivity"
)

func writeCalibration(t *testing.T, h, w int) string {
	t.Helper()
	dir := t.TempDir()
	vecs := make([]float64, h*w*3)
	for i := range vecs {
		vecs[i] = 1
	}

	path := filepath.Join(dir, "kl11_calib.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range []string{"pixel_origins.npy", "pixel_directions.npy"} {
		npy := filepath.Join(dir, name)
		require.NoError(t, npyutil.Write(npy, []int{h, w, 3}, vecs))
		raw, err := os.ReadFile(npy)
		require.NoError(t, err)
		e, err := zw.Create(name)
		require.NoError(t, err)
		_, err = e.Write(raw)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestLoadCamera(t *testing.T) {
	path := writeCalibration(t, 10, 8)

	cam, err := LoadCamera(path, 1)
	require.NoError(t, err)
	h, w := cam.Shape()
	require.Equal(t, 10, h)
	require.Equal(t, 8, w)

	cam, err = LoadCamera(path, 3)
	require.NoError(t, err)
	h, w = cam.Shape()
	require.Equal(t, 4, h)
	require.Equal(t, 3, w)

	_, err = LoadCamera(path, 0)
	require.Error(t, err)
}

func TestLoadVoxelGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"cells": [{"p1": [2.0, 0.0], "p2": [2.1, 0.0], "p3": [2.1, 0.1], "p4": [2.0, 0.1]}]}`), 0o644))

	g, err := LoadVoxelGrid(path)
	require.NoError(t, err)
	require.Equal(t, 1, g.Count())
	require.Equal(t, "KL11 voxel grid", g.Name)

	_, err = LoadVoxelGrid(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestLoadSensitivityMatrixChannelCount(t *testing.T) {
	dir := t.TempDir()
	data := make([]float64, sensitivity.GridDimension*sensitivity.GridDimension)
	for i := range 2 {
		path := filepath.Join(dir, "kl11_rf_sensitivity_matrix_"+string(rune('0'+i))+".npy")
		require.NoError(t, npyutil.Write(path, []int{sensitivity.GridDimension, sensitivity.GridDimension}, data))
	}

	_, err := LoadSensitivityMatrix(dir, true, 100)
	require.ErrorContains(t, err, "found 2 channels")
}
