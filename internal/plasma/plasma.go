// Package plasma models the plasma state for synthetic diagnostics: species
// composition, velocity distributions and the emission models attached to
// them. The heavy radiative-transfer work happens in the camera package;
// plasma only answers local emissivity queries.
package plasma

import (
	"fmt"

	"github.com/mgattu/jetsynth/internal/field"
	"github.com/mgattu/jetsynth/internal/geometry"
)

// Species is one ion population: an element in a charge state with its
// velocity distribution.
type Species struct {
	Element      Element
	Charge       int
	Distribution *Maxwellian
}

func (s Species) String() string {
	return fmt.Sprintf("%s%+d", s.Element.Symbol, s.Charge)
}

// EmissionModel yields a local grey emissivity [W m^-3 sr^-1].
type EmissionModel interface {
	Emissivity(p geometry.Point3D) float64
}

// Plasma aggregates the electron distribution, the ion composition, the
// magnetic field and any attached emission models.
type Plasma struct {
	Electrons   *Maxwellian
	Composition []Species
	BField      field.Vector3D

	models []EmissionModel
}

// New returns an empty plasma; populate Electrons, Composition and BField
// before attaching emission models.
func New() *Plasma {
	return &Plasma{}
}

// Species looks up an ion population by element and charge.
func (p *Plasma) Species(e Element, charge int) (*Species, error) {
	for i := range p.Composition {
		s := &p.Composition[i]
		if s.Element == e && s.Charge == charge {
			return s, nil
		}
	}
	return nil, fmt.Errorf("plasma: no %s%+d in composition", e.Symbol, charge)
}

// AttachModel adds an emission model to the plasma.
func (p *Plasma) AttachModel(m EmissionModel) {
	p.models = append(p.models, m)
}

// Emissivity sums the attached emission models at a point.
func (p *Plasma) Emissivity(pt geometry.Point3D) float64 {
	var e float64
	for _, m := range p.models {
		e += m.Emissivity(pt)
	}
	return e
}
