// Package nbi models the JET neutral beam injectors (PINIs): beam geometry,
// single-ray attenuation through the plasma and the charge-exchange line
// emission the beams drive.
package nbi

import (
	"context"
	"fmt"
	"math"

	"github.com/mgattu/jetsynth/internal/constants"
	"github.com/mgattu/jetsynth/internal/field"
	"github.com/mgattu/jetsynth/internal/geometry"
	"github.com/mgattu/jetsynth/internal/sal"
	"github.com/mgattu/jetsynth/internal/utils"
)

// piniGeometry is the octant 8 injector box geometry in machine
// coordinates: source position and aiming direction of each PINI.
var piniGeometry = map[string]struct {
	origin    geometry.Point3D
	direction geometry.Vector3D
}{
	"8.1": {geometry.Point3D{X: 9.07, Y: -5.23, Z: 0.57}, geometry.Vector3D{X: -0.7968, Y: 0.5995, Z: -0.0740}},
	"8.2": {geometry.Point3D{X: 9.07, Y: -5.23, Z: 0.19}, geometry.Vector3D{X: -0.7970, Y: 0.6001, Z: -0.0665}},
	"8.5": {geometry.Point3D{X: 9.07, Y: -5.23, Z: -0.19}, geometry.Vector3D{X: -0.7970, Y: 0.6001, Z: 0.0665}},
	"8.6": {geometry.Point3D{X: 9.07, Y: -5.23, Z: -0.57}, geometry.Vector3D{X: -0.7968, Y: 0.5995, Z: 0.0740}},
}

const (
	nbiUser = "jetppf"
	nbiDDA  = "nbi8"

	// attenuation table resolution along the beam axis
	attenuationStep = 0.01 // [m]
)

// Beam is one neutral injector with its operating point for a pulse.
type Beam struct {
	Name      string
	Origin    geometry.Point3D
	Direction geometry.Vector3D

	Gas            string     // injected species, deuterium on JET
	Energy         float64    // full component energy [eV]
	Power          float64    // injected power [W]
	PowerFractions [3]float64 // full/half/third energy current fractions
	Divergence     float64    // half-angle [rad]
	SourceWidth    float64    // gaussian sigma at the source [m]
	Length         float64    // traced length [m]

	attenuator  StoppingModel
	attenuation []float64 // cumulative survival fraction along the axis
	mass        float64   // beam particle mass [kg]
}

// LoadPINIFromPPF builds a beam for the named PINI ("8.1", "8.2", ...) with
// geometry from the machine description and energy/power waveforms from the
// NBI PPF at the requested time.
func LoadPINIFromPPF(ctx context.Context, client *sal.Client, pulse int, name string, t float64, atten StoppingModel) (*Beam, error) {
	geom, ok := piniGeometry[name]
	if !ok {
		return nil, fmt.Errorf("nbi: unknown PINI %q", name)
	}

	suffix := name[0:1] + name[2:3] // "8.1" -> "81"
	energy, err := waveformAt(ctx, client, pulse, "eb"+suffix, t)
	if err != nil {
		return nil, err
	}
	power, err := waveformAt(ctx, client, pulse, "pb"+suffix, t)
	if err != nil {
		return nil, err
	}
	if energy <= 0 || power <= 0 {
		return nil, fmt.Errorf("nbi: PINI %s not injecting at t=%gs (E=%geV, P=%gW)", name, t, energy, power)
	}

	return &Beam{
		Name:           name,
		Origin:         geom.origin,
		Direction:      geom.direction.Normalise(),
		Gas:            "deuterium",
		Energy:         energy,
		Power:          power,
		PowerFractions: [3]float64{0.76, 0.16, 0.08},
		Divergence:     0.6 * math.Pi / 180,
		SourceWidth:    0.09,
		Length:         12.0,
		attenuator:     atten,
		mass:           constants.DeuteriumAtomicWeight * constants.AtomicMassUnit,
	}, nil
}

// waveformAt fetches a time-resolved NBI signal and samples it at the
// nearest time point.
func waveformAt(ctx context.Context, client *sal.Client, pulse int, dtype string, t float64) (float64, error) {
	sig, err := client.Get(ctx, sal.PPFPath(pulse, nbiUser, nbiDDA, dtype, 0))
	if err != nil {
		return 0, fmt.Errorf("nbi: pulse %d: %w", pulse, err)
	}
	sig = sig.Squeeze()
	if len(sig.Dimensions) == 0 || len(sig.Dimensions[0].Data) != len(sig.Data) {
		return 0, fmt.Errorf("nbi: pulse %d: %s has no usable time axis", pulse, dtype)
	}
	times := sig.Dimensions[0].Data
	best := 0
	for i := range times {
		if math.Abs(times[i]-t) < math.Abs(times[best]-t) {
			best = i
		}
	}
	return sig.Data[best], nil
}

// Attach precomputes the centre-line attenuation through the given electron
// density field. Must be called before DensityAt.
func (b *Beam) Attach(electronDensity field.Scalar3D) {
	n := int(b.Length/attenuationStep) + 1
	b.attenuation = make([]float64, n)
	sigma := b.attenuator.StoppingCrossSection(b.Energy / constants.DeuteriumAtomicWeight)

	var tau float64
	var prev float64
	for i := range n {
		s := float64(i) * attenuationStep
		p := b.Origin.Add(b.Direction.Mul(s))
		cur := electronDensity(p.X, p.Y, p.Z) * sigma
		// trapezoidal optical depth accumulation
		if i > 0 {
			tau += 0.5 * (prev + cur) * attenuationStep
		}
		prev = cur
		b.attenuation[i] = math.Exp(-tau)
	}
}

// survival returns the attenuated fraction of the beam at axis distance s.
func (b *Beam) survival(s float64) float64 {
	if b.attenuation == nil {
		return 1
	}
	i := int(s / attenuationStep)
	if i < 0 {
		return 1
	}
	if i >= len(b.attenuation) {
		return 0
	}
	return b.attenuation[i]
}

// Speed returns the full-component particle speed [m/s].
func (b *Beam) Speed() float64 {
	return math.Sqrt(2 * b.Energy * constants.ElectronCharge / b.mass)
}

// DensityAt returns the local neutral density of the beam [m^-3], summing
// the full, half and third energy components with a gaussian transverse
// profile that broadens with divergence.
func (b *Beam) DensityAt(p geometry.Point3D) float64 {
	rel := p.Sub(b.Origin)
	s := rel.Dot(b.Direction)
	if s < 0 || s > b.Length {
		return 0
	}
	radial := rel.Sub(b.Direction.Mul(s)).Len()
	width := b.SourceWidth + s*math.Tan(b.Divergence)
	gauss := math.Exp(-radial*radial/(2*width*width)) / (2 * math.Pi * width * width)

	att := b.survival(s)
	var density float64
	for k, frac := range b.PowerFractions {
		energy := b.Energy / float64(k+1)
		speed := math.Sqrt(2 * energy * constants.ElectronCharge / b.mass)
		flux := b.Power * frac / (energy * constants.ElectronCharge) // [particles/s]
		density += flux / speed * gauss * att
	}
	return density
}

// Axis returns sample points along the beam centre line, for inspection
// output.
func (b *Beam) Axis(n int) []geometry.Point3D {
	pts := make([]geometry.Point3D, n)
	for i, s := range utils.Linspace(0, b.Length, n) {
		pts[i] = b.Origin.Add(b.Direction.Mul(s))
	}
	return pts
}
