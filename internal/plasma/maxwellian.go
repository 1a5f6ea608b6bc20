package plasma

import (
	"math"

	"github.com/mgattu/jetsynth/internal/constants"
	"github.com/mgattu/jetsynth/internal/field"
	"github.com/mgattu/jetsynth/internal/geometry"
)

// Maxwellian is a thermal velocity distribution described by density,
// temperature and bulk velocity fields plus the particle mass.
type Maxwellian struct {
	density     field.Scalar3D // [m^-3]
	temperature field.Scalar3D // [eV]
	velocity    field.Vector3D // [m/s]
	mass        float64        // [kg]
}

func NewMaxwellian(density, temperature field.Scalar3D, velocity field.Vector3D, mass float64) *Maxwellian {
	if mass <= 0 {
		panic("plasma: maxwellian mass must be positive")
	}
	return &Maxwellian{density: density, temperature: temperature, velocity: velocity, mass: mass}
}

func (m *Maxwellian) DensityAt(p geometry.Point3D) float64 {
	return m.density(p.X, p.Y, p.Z)
}

// TemperatureAt returns the local temperature in eV.
func (m *Maxwellian) TemperatureAt(p geometry.Point3D) float64 {
	return m.temperature(p.X, p.Y, p.Z)
}

func (m *Maxwellian) BulkVelocityAt(p geometry.Point3D) geometry.Vector3D {
	return m.velocity(p.X, p.Y, p.Z)
}

func (m *Maxwellian) Mass() float64 { return m.mass }

// ThermalSpeedAt returns sqrt(2 e T / m), the most probable speed [m/s].
func (m *Maxwellian) ThermalSpeedAt(p geometry.Point3D) float64 {
	t := m.TemperatureAt(p)
	if t <= 0 {
		return 0
	}
	return math.Sqrt(2 * t * constants.ElectronCharge / m.mass)
}

// Evaluate returns the phase-space density f(r, v) [s^3 m^-6] for velocity
// v at point p.
func (m *Maxwellian) Evaluate(p geometry.Point3D, v geometry.Vector3D) float64 {
	n := m.DensityAt(p)
	t := m.TemperatureAt(p)
	if n <= 0 || t <= 0 {
		return 0
	}
	kt := t * constants.ElectronCharge
	dv := v.Sub(m.BulkVelocityAt(p))
	norm := math.Pow(m.mass/(2*math.Pi*kt), 1.5)
	return n * norm * math.Exp(-m.mass*dv.Dot(dv)/(2*kt))
}
