// Package profiles loads charge-exchange species profiles from PRFL PPF
// signals and maps them onto an equilibrium as continuous 3D fields.
//
// Profiles are published against a normalised flux coordinate. Samples
// beyond the last closed flux surface (psi_n > 1) are discarded before
// interpolation; the mapped fields are zero outside the LCFS.
package profiles

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/mgattu/jetsynth/internal/equilibrium"
	"github.com/mgattu/jetsynth/internal/field"
	"github.com/mgattu/jetsynth/internal/sal"
	"github.com/mgattu/jetsynth/internal/utils"
)

const prflDDA = "prfl"

// ProfileSet holds the masked profile samples of one PRFL sequence.
type ProfileSet struct {
	Pulse int
	User  string

	Psi             []float64 // normalised flux coordinate, psi_n <= 1
	IonTemperature  []float64 // [eV]
	ElectronDensity []float64 // [m^-3]
	CarbonDensity   []float64 // [m^-3], fully stripped carbon
	FlowVelocityTor []float64 // [m/s]
}

// MaskPsi returns the indices of psi samples inside the LCFS (psi_n <= 1).
func MaskPsi(psi []float64) []int {
	var keep []int
	for i, p := range psi {
		if p <= 1.0 {
			keep = append(keep, i)
		}
	}
	return keep
}

func pick(data []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = data[j]
	}
	return out
}

// Load fetches the TI, NE, VT and C6 profiles of a PRFL sequence and applies
// the psi mask. The psi coordinate is taken from the profile coordinate
// dimension of the C6 signal.
func Load(ctx context.Context, client *sal.Client, pulse int, user string, sequence int) (*ProfileSet, error) {
	get := func(dtype string) (*sal.Signal, error) {
		sig, err := client.Get(ctx, sal.PPFPath(pulse, user, prflDDA, dtype, sequence))
		if err != nil {
			return nil, fmt.Errorf("profiles: pulse %d: %w", pulse, err)
		}
		return sig.Squeeze(), nil
	}

	c6, err := get("c6")
	if err != nil {
		return nil, err
	}
	if len(c6.Dimensions) == 0 {
		return nil, fmt.Errorf("profiles: pulse %d: c6 signal has no coordinate dimension", pulse)
	}
	psi := c6.Dimensions[len(c6.Dimensions)-1].Data
	if len(psi) != len(c6.Data) {
		return nil, fmt.Errorf("profiles: pulse %d: psi axis has %d samples for %d values", pulse, len(psi), len(c6.Data))
	}

	ti, err := get("ti")
	if err != nil {
		return nil, err
	}
	ne, err := get("ne")
	if err != nil {
		return nil, err
	}
	vt, err := get("vt")
	if err != nil {
		return nil, err
	}
	for name, sig := range map[string]*sal.Signal{"ti": ti, "ne": ne, "vt": vt} {
		if len(sig.Data) != len(psi) {
			return nil, fmt.Errorf("profiles: pulse %d: %s has %d samples, psi axis has %d",
				pulse, name, len(sig.Data), len(psi))
		}
	}

	keep := MaskPsi(psi)
	if len(keep) < 2 {
		return nil, fmt.Errorf("profiles: pulse %d: fewer than two samples inside the LCFS", pulse)
	}

	return &ProfileSet{
		Pulse:           pulse,
		User:            user,
		Psi:             pick(psi, keep),
		IonTemperature:  pick(ti.Data, keep),
		ElectronDensity: pick(ne.Data, keep),
		CarbonDensity:   pick(c6.Data, keep),
		FlowVelocityTor: pick(vt.Data, keep),
	}, nil
}

// cubic fits a natural cubic spline over psi_n and clamps evaluation to the
// sampled range.
func cubic(psi, vals []float64) (func(float64) float64, error) {
	var nc interp.NaturalCubic
	if err := nc.Fit(psi, vals); err != nil {
		return nil, fmt.Errorf("profiles: %w", err)
	}
	lo, hi := psi[0], psi[len(psi)-1]
	return func(p float64) float64 {
		return nc.Predict(utils.Clamp(p, lo, hi))
	}, nil
}

// Mapped holds the profile set lifted onto an equilibrium time slice as
// continuous fields over machine coordinates.
type Mapped struct {
	IonTemperature   field.Scalar3D // [eV]
	ElectronDensity  field.Scalar3D // [m^-3]
	CarbonDensity    field.Scalar3D // [m^-3]
	DeuteriumDensity field.Scalar3D // [m^-3], from quasi-neutrality
	FlowVelocity     field.Vector3D // toroidal rotation [m/s]
}

// Map builds the 3D fields: cubic profile over psi_n, iso-mapped onto the
// flux surfaces, zero outside the LCFS, rotated axisymmetrically.
func (ps *ProfileSet) Map(ts *equilibrium.TimeSlice) (*Mapped, error) {
	psiN := func(r, z float64) float64 { return ts.PsiNormalised(r, z) }
	inside := func(r, z float64) bool { return ts.InsideLCFS(r, z) }
	zero := field.Constant2D(0)

	lift := func(vals []float64) (field.Scalar3D, error) {
		prof, err := cubic(ps.Psi, vals)
		if err != nil {
			return nil, err
		}
		return field.Axisymmetric(field.Blend2D(zero, field.IsoMapper2D(psiN, prof), inside)), nil
	}

	ti, err := lift(ps.IonTemperature)
	if err != nil {
		return nil, err
	}
	ne, err := lift(ps.ElectronDensity)
	if err != nil {
		return nil, err
	}
	nc6, err := lift(ps.CarbonDensity)
	if err != nil {
		return nil, err
	}
	vtor, err := lift(ps.FlowVelocityTor)
	if err != nil {
		return nil, err
	}

	// Quasi-neutrality: n_D = n_e - 6 n_C6. Hollow impurity profiles can
	// push the difference below zero numerically; clamp.
	nd := func(x, y, z float64) float64 {
		return max(0, ne(x, y, z)-6*nc6(x, y, z))
	}

	return &Mapped{
		IonTemperature:   ti,
		ElectronDensity:  ne,
		CarbonDensity:    nc6,
		DeuteriumDensity: nd,
		FlowVelocity:     field.ToroidalVector(vtor),
	}, nil
}
