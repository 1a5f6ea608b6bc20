package camera

import (
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mgattu/jetsynth/internal/calib"
	"github.com/mgattu/jetsynth/internal/geometry"
)

// ball emits 1 W m^-3 sr^-1 inside a sphere and nothing outside, so a ray
// integral equals the chord length through it.
type ball struct {
	centre geometry.Point3D
	radius float64
}

func (b ball) Emissivity(p geometry.Point3D) float64 {
	if p.Sub(b.centre).Len() <= b.radius {
		return 1
	}
	return 0
}

func TestIntegrateChordLength(t *testing.T) {
	field := ball{geometry.Point3D{Z: 5}, 0.5}
	ray := Ray{Origin: geometry.Point3D{}, Direction: geometry.Vector3D{Z: 1}}
	s := Settings{StepSize: 0.01, MaxDistance: 10}

	got := integrate(field, ray, s)
	require.InDelta(t, 1.0, got, 0.02)

	// ray pointing away from the ball
	miss := Ray{Origin: geometry.Point3D{}, Direction: geometry.Vector3D{Z: -1}}
	require.Equal(t, 0.0, integrate(field, miss, s))
}

func TestPinholeObserve(t *testing.T) {
	cam, err := NewPinholeCamera(9, 9, 45, geometry.Identity())
	require.NoError(t, err)

	field := ball{geometry.Point3D{Z: 5}, 0.5}
	frame := cam.Observe(field, Settings{PixelSamples: 1, StepSize: 0.01, MaxDistance: 10, Workers: 2})

	require.Equal(t, 9, frame.Height)
	require.Equal(t, 9, frame.Width)
	// centre pixel looks straight down +z through the ball diameter
	require.InDelta(t, 1.0, frame.At(4, 4), 0.02)
	// corner rays miss the ball entirely
	require.Equal(t, 0.0, frame.At(0, 0))
	require.Equal(t, 0.0, frame.At(8, 8))
	// symmetric field, symmetric image
	require.InDelta(t, frame.At(4, 3), frame.At(4, 5), 0.03)
}

func TestNewPinholeCameraValidation(t *testing.T) {
	_, err := NewPinholeCamera(0, 512, 45, geometry.Identity())
	require.Error(t, err)
	_, err = NewPinholeCamera(512, 512, 0, geometry.Identity())
	require.Error(t, err)
	_, err = NewPinholeCamera(512, 512, 180, geometry.Identity())
	require.Error(t, err)
}

func TestVectorCameraObserve(t *testing.T) {
	// 2x2 sensor: top row rays pass through the ball, bottom row starts
	// far off axis and misses
	cal := &calib.Calibration{
		Height: 2, Width: 2,
		Origins: [][]geometry.Point3D{
			{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0}},
			{{X: 10, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}},
		},
		Directions: [][]geometry.Vector3D{
			{{Z: 1}, {Z: 1}},
			{{Z: 1}, {Z: 1}},
		},
	}
	cam := NewVectorCamera(cal)
	h, w := cam.Shape()
	require.Equal(t, 2, h)
	require.Equal(t, 2, w)

	field := ball{geometry.Point3D{Z: 5}, 0.5}
	frame := cam.Observe(field, Settings{StepSize: 0.01, MaxDistance: 10, Workers: 1})

	require.InDelta(t, 1.0, frame.At(0, 0), 0.02)
	require.InDelta(t, 1.0, frame.At(0, 1), 0.02)
	require.Equal(t, 0.0, frame.At(1, 0))
	require.Equal(t, 0.0, frame.At(1, 1))
}

func TestFramePercentile(t *testing.T) {
	f := NewFrame(10, 10)
	for i := range f.Data {
		f.Data[i] = float64(i)
	}
	require.Equal(t, 95.0, f.percentile(0.96))
	require.Equal(t, 99.0, f.percentile(1.0))
	require.Equal(t, 0.0, f.percentile(0.0))
}

func TestSavePNG(t *testing.T) {
	f := NewFrame(10, 10)
	for i := range f.Data {
		f.Data[i] = float64(i)
	}
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, f.SavePNG(path, DisplayUnsaturatedFraction, 2.2))

	in, err := os.Open(path)
	require.NoError(t, err)
	defer in.Close()
	img, err := png.Decode(in)
	require.NoError(t, err)

	gray, ok := img.(*image.Gray16)
	require.True(t, ok)
	require.Equal(t, image.Rect(0, 0, 10, 10), gray.Bounds())

	// pixels at or above the white point saturate
	require.Equal(t, uint16(65535), gray.Gray16At(9, 9).Y)
	// zero stays black
	require.Equal(t, uint16(0), gray.Gray16At(0, 0).Y)
	// gamma lifts midtones above linear
	mid := float64(gray.Gray16At(5, 4).Y) / 65535.0 // value 45 of white 95
	require.Greater(t, mid, 45.0/95.0)
	require.InDelta(t, math.Pow(45.0/95.0, 1/2.2), mid, 1e-3)
}
