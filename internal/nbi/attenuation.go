package nbi

import (
	"fmt"
	"math"

	"github.com/wildstyl3r/lxgata"
)

// StoppingModel yields the beam stopping cross section [m^2] at a collision
// energy [eV].
type StoppingModel interface {
	StoppingCrossSection(energy float64) float64
}

// Attenuator computes the beam stopping cross section from an LXCat-format
// cross section table. The single-ray model attenuates the beam along its
// axis only, with sigma evaluated at the beam energy per nucleon.
type Attenuator struct {
	collisions  lxgata.Collisions
	clampToZero bool
	minThresh   float64 // [eV]
}

// NewSingleRayAttenuator loads the stopping cross sections. With
// clampToZero, energies below the lowest ionization threshold give a zero
// cross section instead of an extrapolated one.
func NewSingleRayAttenuator(crossSectionFile string, clampToZero bool) (*Attenuator, error) {
	collisions, err := lxgata.LoadCrossSections(crossSectionFile)
	if err != nil {
		return nil, fmt.Errorf("nbi: invalid cross section file: %w", err)
	}
	return &Attenuator{
		collisions:  collisions,
		clampToZero: clampToZero,
		minThresh:   collisions.MinThresholdOfKind(lxgata.IONIZATION),
	}, nil
}

// StoppingCrossSection returns the summed ionization cross section at the
// given collision energy [eV] in m^2.
func (a *Attenuator) StoppingCrossSection(energy float64) float64 {
	if a.clampToZero && energy < a.minThresh {
		return 0
	}
	vals := a.collisions.CrossSectionsAt(energy)
	var sigma float64
	for i := range a.collisions {
		if a.collisions[i].Type == lxgata.IONIZATION {
			sigma += vals[i]
		}
	}
	return math.Max(sigma, 0)
}
