package nbi

import (
	"math"

	"github.com/mgattu/jetsynth/internal/constants"
	"github.com/mgattu/jetsynth/internal/geometry"
	"github.com/mgattu/jetsynth/internal/plasma"
)

// cxWavelengths holds the rest wavelengths [m] of the charge-exchange lines
// the demo observes.
var cxWavelengths = map[plasma.Line]float64{
	{Element: plasma.Carbon, Charge: 5, Upper: 8, Lower: 7}: 529.07e-9, // C VI n=8->7
}

// BeamCXLine is the charge-exchange line emission driven by one beam:
// beam neutrals donate electrons to fully stripped impurity ions, which
// radiate on the named hydrogen-like transition.
type BeamCXLine struct {
	Line plasma.Line

	beam     *Beam
	receiver *plasma.Species
	rate     float64 // effective <sigma*v> [m^3/s]
	photonE  float64 // [J]
}

// NewBeamCXLine attaches a CX emission model to a beam. The receiver species
// must be the bare ion of the line's element (charge = Z). The effective
// rate coefficient is approximated as the beam stopping cross section at
// beam energy times the beam speed.
func NewBeamCXLine(line plasma.Line, beam *Beam, p *plasma.Plasma) (*BeamCXLine, error) {
	receiver, err := p.Species(line.Element, line.Element.AtomicNumber)
	if err != nil {
		return nil, err
	}
	wavelength, ok := cxWavelengths[line]
	if !ok {
		wavelength = 500e-9
	}
	sigma := beam.attenuator.StoppingCrossSection(beam.Energy / constants.DeuteriumAtomicWeight)
	return &BeamCXLine{
		Line:     line,
		beam:     beam,
		receiver: receiver,
		rate:     sigma * beam.Speed(),
		photonE:  constants.Planck * constants.SpeedOfLight / wavelength,
	}, nil
}

// Emissivity returns the local line emissivity [W m^-3 sr^-1].
func (m *BeamCXLine) Emissivity(p geometry.Point3D) float64 {
	nb := m.beam.DensityAt(p)
	if nb == 0 {
		return 0
	}
	ni := m.receiver.Distribution.DensityAt(p)
	if ni <= 0 {
		return 0
	}
	return nb * ni * m.rate * m.photonE / (4 * math.Pi)
}
