// Package calib loads raytraced camera calibrations exported by Calcam.
// An export is a zip archive holding two arrays of shape (H, W, 3):
// pixel_origins.npy and pixel_directions.npy, giving for every detector
// pixel the origin and direction of its sight line in machine coordinates.
package calib

import (
	"archive/zip"
	"fmt"

	"github.com/mgattu/jetsynth/internal/geometry"
	"github.com/mgattu/jetsynth/internal/npyutil"
	"github.com/mgattu/jetsynth/internal/utils"
)

const (
	originsEntry    = "pixel_origins.npy"
	directionsEntry = "pixel_directions.npy"
)

// Calibration holds the per-pixel ray geometry of a camera. Origins and
// Directions are indexed [row][column].
type Calibration struct {
	Height, Width int
	Origins       [][]geometry.Point3D
	Directions    [][]geometry.Vector3D
}

// Load reads a calibration export from disk.
func Load(path string) (*Calibration, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("calib: %w", err)
	}
	defer zr.Close()

	origins, err := readEntry(&zr.Reader, originsEntry)
	if err != nil {
		return nil, err
	}
	directions, err := readEntry(&zr.Reader, directionsEntry)
	if err != nil {
		return nil, err
	}

	if origins.N0 != directions.N0 || origins.N1 != directions.N1 {
		return nil, fmt.Errorf("calib: origin grid %dx%d does not match direction grid %dx%d",
			origins.N0, origins.N1, directions.N0, directions.N1)
	}
	if origins.N2 != 3 || directions.N2 != 3 {
		return nil, fmt.Errorf("calib: pixel vectors must have 3 components, got %d and %d",
			origins.N2, directions.N2)
	}

	c := &Calibration{
		Height:     origins.N0,
		Width:      origins.N1,
		Origins:    make([][]geometry.Point3D, origins.N0),
		Directions: make([][]geometry.Vector3D, origins.N0),
	}
	for i := range c.Origins {
		c.Origins[i] = make([]geometry.Point3D, origins.N1)
		c.Directions[i] = make([]geometry.Vector3D, origins.N1)
		for j := range c.Origins[i] {
			c.Origins[i][j] = geometry.Point3D{
				X: origins.At(i, j, 0),
				Y: origins.At(i, j, 1),
				Z: origins.At(i, j, 2),
			}
			c.Directions[i][j] = geometry.Vector3D{
				X: directions.At(i, j, 0),
				Y: directions.At(i, j, 1),
				Z: directions.At(i, j, 2),
			}.Normalise()
		}
	}
	return c, nil
}

func readEntry(zr *zip.Reader, name string) (npyutil.Array3D, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return npyutil.Array3D{}, fmt.Errorf("calib: %s: %w", name, err)
		}
		defer rc.Close()
		return npyutil.Read3DFrom(rc, name)
	}
	return npyutil.Array3D{}, fmt.Errorf("calib: archive has no %s entry", name)
}

// Stride subsamples the calibration, keeping every n-th pixel along both
// axes (the [::n, ::n] view of the full grids).
func (c *Calibration) Stride(n int) (*Calibration, error) {
	if n <= 0 {
		return nil, fmt.Errorf("calib: stride must be positive, got %d", n)
	}
	if n == 1 {
		return c, nil
	}
	out := &Calibration{
		Height: utils.CeilDiv(c.Height, n),
		Width:  utils.CeilDiv(c.Width, n),
	}
	for i := 0; i < c.Height; i += n {
		var orow []geometry.Point3D
		var drow []geometry.Vector3D
		for j := 0; j < c.Width; j += n {
			orow = append(orow, c.Origins[i][j])
			drow = append(drow, c.Directions[i][j])
		}
		out.Origins = append(out.Origins, orow)
		out.Directions = append(out.Directions, drow)
	}
	return out, nil
}
