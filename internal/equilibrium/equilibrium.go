// Package equilibrium reconstructs a JET plasma equilibrium from EFIT PPF
// signals: the poloidal flux map psi(R, Z), its axis and boundary values,
// the last closed flux surface contour and the vacuum toroidal field.
package equilibrium

import (
	"context"
	"fmt"
	"math"

	"github.com/mgattu/jetsynth/internal/geometry"
	"github.com/mgattu/jetsynth/internal/sal"
	"github.com/mgattu/jetsynth/internal/utils"
)

// EFIT signals are published by the jetppf account.
const (
	efitUser = "jetppf"
	efitDDA  = "efit"
)

// Equilibrium holds every reconstructed time slice of a pulse.
type Equilibrium struct {
	Pulse  int
	times  []float64
	slices []*TimeSlice
}

// TimeSlice is the equilibrium at a single reconstruction time.
type TimeSlice struct {
	Time        float64
	PsiAxis     float64 // psi on the magnetic axis [Wb/rad]
	PsiBoundary float64 // psi on the LCFS [Wb/rad]
	BVac        float64 // vacuum toroidal field at RVac [T]
	RVac        float64 // reference radius for BVac [m]

	psi      *utils.Interp2D
	boundary []geometry.Point2D
}

// Load fetches the EFIT reconstruction for a pulse. The psi signal is a
// (time, nr*nz) packed grid; psir and psiz give the grid axes.
func Load(ctx context.Context, client *sal.Client, pulse int) (*Equilibrium, error) {
	get := func(dtype string) (*sal.Signal, error) {
		sig, err := client.Get(ctx, sal.PPFPath(pulse, efitUser, efitDDA, dtype, 0))
		if err != nil {
			return nil, fmt.Errorf("equilibrium: pulse %d: %w", pulse, err)
		}
		return sig, nil
	}

	psi, err := get("psi")
	if err != nil {
		return nil, err
	}
	psir, err := get("psir")
	if err != nil {
		return nil, err
	}
	psiz, err := get("psiz")
	if err != nil {
		return nil, err
	}
	faxs, err := get("faxs")
	if err != nil {
		return nil, err
	}
	fbnd, err := get("fbnd")
	if err != nil {
		return nil, err
	}
	rbnd, err := get("rbnd")
	if err != nil {
		return nil, err
	}
	zbnd, err := get("zbnd")
	if err != nil {
		return nil, err
	}
	bvac, err := get("bvac")
	if err != nil {
		return nil, err
	}

	if len(psi.Shape) != 2 {
		return nil, fmt.Errorf("equilibrium: pulse %d: psi has shape %v, expected (time, grid)", pulse, psi.Shape)
	}
	nt := psi.Shape[0]
	nr, nz := len(psir.Data), len(psiz.Data)
	if psi.Shape[1] != nr*nz {
		return nil, fmt.Errorf("equilibrium: pulse %d: psi grid size %d does not match %dx%d axes",
			pulse, psi.Shape[1], nr, nz)
	}
	if len(psi.Dimensions) == 0 || len(psi.Dimensions[0].Data) != nt {
		return nil, fmt.Errorf("equilibrium: pulse %d: psi time axis missing", pulse)
	}
	if len(faxs.Data) != nt || len(fbnd.Data) != nt || len(bvac.Data) != nt {
		return nil, fmt.Errorf("equilibrium: pulse %d: scalar signals disagree with %d time slices", pulse, nt)
	}
	if len(rbnd.Shape) != 2 || len(zbnd.Shape) != 2 || rbnd.Shape[0] != nt {
		return nil, fmt.Errorf("equilibrium: pulse %d: boundary signals have shape %v/%v", pulse, rbnd.Shape, zbnd.Shape)
	}

	eq := &Equilibrium{Pulse: pulse, times: psi.Dimensions[0].Data}
	nbnd := rbnd.Shape[1]
	for t := range nt {
		boundary := make([]geometry.Point2D, 0, nbnd)
		for k := range nbnd {
			r := rbnd.Data[t*nbnd+k]
			z := zbnd.Data[t*nbnd+k]
			// EFIT pads short contours with zeros.
			if r <= 0 {
				continue
			}
			boundary = append(boundary, geometry.Point2D{X: r, Y: z})
		}
		grid, err := utils.NewInterp2D(psir.Data, psiz.Data, psi.Data[t*nr*nz:(t+1)*nr*nz])
		if err != nil {
			return nil, fmt.Errorf("equilibrium: pulse %d, slice %d: %w", pulse, t, err)
		}
		eq.slices = append(eq.slices, &TimeSlice{
			Time:        eq.times[t],
			PsiAxis:     faxs.Data[t],
			PsiBoundary: fbnd.Data[t],
			BVac:        bvac.Data[t],
			RVac:        2.96, // JET reference major radius [m]
			psi:         grid,
			boundary:    boundary,
		})
	}
	return eq, nil
}

// TimeRange returns the first and last reconstruction times.
func (eq *Equilibrium) TimeRange() (lo, hi float64) {
	return eq.times[0], eq.times[len(eq.times)-1]
}

// Time returns the slice nearest to the requested time.
func (eq *Equilibrium) Time(t float64) (*TimeSlice, error) {
	if len(eq.slices) == 0 {
		return nil, fmt.Errorf("equilibrium: pulse %d has no time slices", eq.Pulse)
	}
	lo, hi := eq.TimeRange()
	if t < lo || t > hi {
		return nil, fmt.Errorf("equilibrium: time %g outside reconstructed range [%g, %g]", t, lo, hi)
	}
	best := 0
	for i := range eq.times {
		if math.Abs(eq.times[i]-t) < math.Abs(eq.times[best]-t) {
			best = i
		}
	}
	return eq.slices[best], nil
}

// Psi returns the poloidal flux at (r, z) [Wb/rad].
func (ts *TimeSlice) Psi(r, z float64) float64 {
	return ts.psi.At(r, z)
}

// PsiNormalised returns the normalised flux coordinate: 0 on the magnetic
// axis, 1 on the LCFS.
func (ts *TimeSlice) PsiNormalised(r, z float64) float64 {
	return (ts.psi.At(r, z) - ts.PsiAxis) / (ts.PsiBoundary - ts.PsiAxis)
}

// InsideLCFS reports whether (r, z) lies inside the last closed flux
// surface contour.
func (ts *TimeSlice) InsideLCFS(r, z float64) bool {
	return geometry.PointInPolygon(geometry.Point2D{X: r, Y: z}, ts.boundary)
}

// Boundary returns the LCFS contour.
func (ts *TimeSlice) Boundary() []geometry.Point2D {
	return ts.boundary
}

// BField returns the magnetic field at (r, z) in cylindrical components
// (BR, Btor, BZ) [T]. The poloidal part comes from the flux gradients,
// the toroidal part from the 1/R vacuum field.
func (ts *TimeSlice) BField(r, z float64) (br, btor, bz float64) {
	dpsidr, dpsidz := ts.psi.GradientAt(r, z)
	br = -dpsidz / r
	bz = dpsidr / r
	btor = ts.BVac * ts.RVac / r
	return
}
