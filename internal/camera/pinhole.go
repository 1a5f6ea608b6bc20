package camera

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mgattu/jetsynth/internal/geometry"
)

// PinholeCamera is an ideal observer: every pixel ray passes through a
// single point, with the given horizontal field of view. The transform
// places the camera in machine coordinates (local +z is the viewing
// direction, +y up).
type PinholeCamera struct {
	Width, Height int
	FOV           float64 // horizontal field of view [deg]
	Transform     geometry.Mat4
}

func NewPinholeCamera(width, height int, fov float64, transform geometry.Mat4) (*PinholeCamera, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("camera: pinhole sensor must have positive dimensions, got %dx%d", width, height)
	}
	if fov <= 0 || fov >= 180 {
		return nil, fmt.Errorf("camera: field of view must be in (0, 180) degrees, got %g", fov)
	}
	return &PinholeCamera{Width: width, Height: height, FOV: fov, Transform: transform}, nil
}

// Observe renders the radiance field onto the sensor.
func (c *PinholeCamera) Observe(field RadianceField, s Settings) *Frame {
	origin := c.Transform.Point(geometry.Point3D{})
	tanHalf := math.Tan(c.FOV * math.Pi / 360)
	aspect := float64(c.Height) / float64(c.Width)

	rayFn := func(row, col, sample int) Ray {
		du, dv := 0.5, 0.5
		if sample > 0 {
			du, dv = rand.Float64(), rand.Float64()
		}
		u := ((float64(col)+du)/float64(c.Width) - 0.5) * 2 * tanHalf
		v := (0.5 - (float64(row)+dv)/float64(c.Height)) * 2 * tanHalf * aspect
		dir := c.Transform.Vector(geometry.Vector3D{X: u, Y: v, Z: 1}.Normalise())
		return Ray{Origin: origin, Direction: dir}
	}
	return observe(c.Height, c.Width, rayFn, field, s)
}
