package camera

import (
	"github.com/mgattu/jetsynth/internal/calib"
)

// VectorCamera observes along explicit per-pixel sight lines taken from a
// camera calibration, rather than through a common pinhole. This is the
// observer used for real machine cameras where the optics are calibrated
// against machine features.
type VectorCamera struct {
	calibration *calib.Calibration
}

func NewVectorCamera(c *calib.Calibration) *VectorCamera {
	return &VectorCamera{calibration: c}
}

// Shape returns the (height, width) of the sensor.
func (c *VectorCamera) Shape() (int, int) {
	return c.calibration.Height, c.calibration.Width
}

// Observe renders the radiance field along the calibrated sight lines.
// Pixel samples beyond the first reuse the same geometry; the calibration
// fixes one ray per pixel.
func (c *VectorCamera) Observe(field RadianceField, s Settings) *Frame {
	cal := c.calibration
	rayFn := func(row, col, sample int) Ray {
		return Ray{Origin: cal.Origins[row][col], Direction: cal.Directions[row][col]}
	}
	return observe(cal.Height, cal.Width, rayFn, field, s)
}
