package plasma

import "github.com/mgattu/jetsynth/internal/constants"

// Element identifies an atomic species.
type Element struct {
	Name         string
	Symbol       string
	AtomicNumber int
	AtomicWeight float64 // [amu]
}

var (
	Hydrogen  = Element{Name: "hydrogen", Symbol: "H", AtomicNumber: 1, AtomicWeight: constants.HydrogenAtomicWeight}
	Deuterium = Element{Name: "deuterium", Symbol: "D", AtomicNumber: 1, AtomicWeight: constants.DeuteriumAtomicWeight}
	Carbon    = Element{Name: "carbon", Symbol: "C", AtomicNumber: 6, AtomicWeight: constants.CarbonAtomicWeight}
)

// Mass returns the element mass in kg.
func (e Element) Mass() float64 {
	return e.AtomicWeight * constants.AtomicMassUnit
}

// Line identifies an atomic emission line by element, charge state and the
// (upper, lower) principal quantum numbers of the transition.
type Line struct {
	Element Element
	Charge  int
	Upper   int
	Lower   int
}
