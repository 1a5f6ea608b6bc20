// Package kl11 loads the KL11 bolometry camera diagnostic: the calibrated
// vector camera, the inversion voxel grid and the precomputed sensitivity
// matrix.
package kl11

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/mgattu/jetsynth/internal/calib"
	"github.com/mgattu/jetsynth/internal/camera"
	"github.com/mgattu/jetsynth/internal/sensitivity"
	"github.com/mgattu/jetsynth/internal/voxel"
)

// Channels is the number of KL11 detector channels.
const Channels = 2655

// LoadCamera builds the KL11 vector camera from a calibration export,
// subsampled by stride.
func LoadCamera(calibrationFile string, stride int) (*camera.VectorCamera, error) {
	cal, err := calib.Load(calibrationFile)
	if err != nil {
		return nil, fmt.Errorf("kl11: %w", err)
	}
	cal, err = cal.Stride(stride)
	if err != nil {
		return nil, fmt.Errorf("kl11: %w", err)
	}
	return camera.NewVectorCamera(cal), nil
}

// LoadVoxelGrid reads the KL11 inversion grid description.
func LoadVoxelGrid(path string) (*voxel.Grid, error) {
	g, err := voxel.Load(path, "KL11 voxel grid")
	if err != nil {
		return nil, fmt.Errorf("kl11: %w", err)
	}
	return g, nil
}

// LoadSensitivityMatrix assembles the (pixels, channels) sensitivity matrix
// from the per-channel map files under dir and checks the channel count
// against the KL11 detector.
func LoadSensitivityMatrix(dir string, reflections bool, stride int) (*mat.Dense, error) {
	m, err := sensitivity.Assemble(dir, sensitivity.Options{
		Reflections: reflections,
		Stride:      stride,
	})
	if err != nil {
		return nil, fmt.Errorf("kl11: %w", err)
	}
	if _, ch := m.Dims(); ch != Channels {
		return nil, fmt.Errorf("kl11: found %d channels, KL11 has %d", ch, Channels)
	}
	return m, nil
}
