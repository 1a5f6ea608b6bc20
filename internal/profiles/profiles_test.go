package profiles

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mgattu/jetsynth/internal/equilibrium"
	"github.com/mgattu/jetsynth/internal/sal"
	"github.com/mgattu/jetsynth/internal/utils"
)

func TestMaskPsi(t *testing.T) {
	keep := MaskPsi([]float64{0, 0.5, 1.0, 1.01, 1.2})
	require.Equal(t, []int{0, 1, 2}, keep)
	require.Empty(t, MaskPsi([]float64{1.5, 2}))
}

// signalServer serves a map of PPF dtype name to signal, ignoring pulse,
// user, dda and sequence.
func signalServer(t *testing.T, signals map[string]*sal.Signal) *sal.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		name = name[:strings.IndexByte(name, ':')]
		sig, ok := signals[name]
		if !ok {
			http.Error(w, "no such node", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(sig)
	}))
	t.Cleanup(srv.Close)
	return sal.NewClient(srv.URL)
}

// prflSignals builds a single-time-slice profile sequence over psi_n with a
// sample beyond the LCFS that the loader must drop. The profiles are linear
// in psi_n so spline interpolation reproduces them exactly.
func prflSignals() map[string]*sal.Signal {
	psi := []float64{0, 0.2, 0.4, 0.6, 0.8, 1.0, 1.1}
	n := len(psi)
	ti := make([]float64, n)
	ne := make([]float64, n)
	c6 := make([]float64, n)
	vt := make([]float64, n)
	for i, p := range psi {
		ti[i] = 1000 * (2 - p) // [eV]
		ne[i] = 1e19 * (2 - p) // [m^-3]
		c6[i] = 1e17
		vt[i] = 1e5
	}
	dims := []sal.Dimension{
		{Data: []float64{61.0}, Units: "s"},
		{Data: psi},
	}
	shape := []int{1, n}
	return map[string]*sal.Signal{
		"c6": {Data: c6, Shape: shape, Dimensions: dims},
		"ti": {Data: ti, Shape: shape, Dimensions: dims},
		"ne": {Data: ne, Shape: shape, Dimensions: dims},
		"vt": {Data: vt, Shape: shape, Dimensions: dims},
	}
}

// efitSignals builds a one-slice equilibrium with psi(r, z) = 1 + (r-3)^2
// + z^2 on an 11x11 grid: axis (3, 0), LCFS a circle of radius 0.7.
func efitSignals() map[string]*sal.Signal {
	const nr, nz, nbnd = 11, 11, 8
	psir := utils.Linspace(2, 4, nr)
	psiz := utils.Linspace(-1, 1, nz)
	psi := make([]float64, 0, nr*nz)
	for _, r := range psir {
		for _, z := range psiz {
			psi = append(psi, 1+(r-3)*(r-3)+z*z)
		}
	}
	rbnd := make([]float64, nbnd)
	zbnd := make([]float64, nbnd)
	for k := range nbnd {
		theta := 2 * math.Pi * float64(k) / nbnd
		rbnd[k] = 3 + 0.7*math.Cos(theta)
		zbnd[k] = 0.7 * math.Sin(theta)
	}
	return map[string]*sal.Signal{
		"psi": {
			Data:       psi,
			Shape:      []int{1, nr * nz},
			Dimensions: []sal.Dimension{{Data: []float64{61.0}, Units: "s"}},
		},
		"psir": {Data: psir, Shape: []int{nr}},
		"psiz": {Data: psiz, Shape: []int{nz}},
		"faxs": {Data: []float64{1}, Shape: []int{1}},
		"fbnd": {Data: []float64{1.49}, Shape: []int{1}},
		"rbnd": {Data: rbnd, Shape: []int{1, nbnd}},
		"zbnd": {Data: zbnd, Shape: []int{1, nbnd}},
		"bvac": {Data: []float64{2.5}, Shape: []int{1}},
	}
}

func TestLoad(t *testing.T) {
	client := signalServer(t, prflSignals())
	ps, err := Load(context.Background(), client, 79503, "cgiroud", 180)
	require.NoError(t, err)

	// the psi_n = 1.1 sample is outside the LCFS and dropped
	require.Len(t, ps.Psi, 6)
	require.Equal(t, 1.0, ps.Psi[len(ps.Psi)-1])
	require.Equal(t, 2000.0, ps.IonTemperature[0])
	require.Equal(t, 1000.0, ps.IonTemperature[5])
	require.Equal(t, 1e17, ps.CarbonDensity[3])
}

func TestLoadLengthMismatch(t *testing.T) {
	signals := prflSignals()
	signals["ne"] = &sal.Signal{Data: []float64{1, 2}, Shape: []int{2}}
	_, err := Load(context.Background(), signalServer(t, signals), 79503, "cgiroud", 180)
	require.ErrorContains(t, err, "samples")
}

func TestLoadAllOutsideLCFS(t *testing.T) {
	dims := []sal.Dimension{{Data: []float64{1.05, 1.1, 1.2}}}
	flat := &sal.Signal{Data: []float64{1, 2, 3}, Shape: []int{3}, Dimensions: dims}
	signals := map[string]*sal.Signal{"c6": flat, "ti": flat, "ne": flat, "vt": flat}
	_, err := Load(context.Background(), signalServer(t, signals), 79503, "cgiroud", 180)
	require.ErrorContains(t, err, "fewer than two samples")
}

func TestMap(t *testing.T) {
	signals := prflSignals()
	for k, v := range efitSignals() {
		signals[k] = v
	}
	client := signalServer(t, signals)

	eq, err := equilibrium.Load(context.Background(), client, 79666)
	require.NoError(t, err)
	ts, err := eq.Time(61.0)
	require.NoError(t, err)

	ps, err := Load(context.Background(), client, 79503, "cgiroud", 180)
	require.NoError(t, err)
	m, err := ps.Map(ts)
	require.NoError(t, err)

	// on the magnetic axis psi_n = 0
	require.InDelta(t, 2000, m.IonTemperature(3, 0, 0), 1)
	require.InDelta(t, 2e19, m.ElectronDensity(3, 0, 0), 1e16)

	// (3.35, 0) has psi_n = 0.1225/0.49 = 0.25
	require.InDelta(t, 1750, m.IonTemperature(3.35, 0, 0), 1)

	// axisymmetry: same major radius, different toroidal angle
	require.InDelta(t, m.IonTemperature(3.35, 0, 0), m.IonTemperature(0, 3.35, 0), 1e-6)

	// zero outside the LCFS
	require.Equal(t, 0.0, m.IonTemperature(3.9, 0, 0))
	require.Equal(t, 0.0, m.ElectronDensity(3.9, 0, 0))

	// quasi-neutrality: n_D = n_e - 6 n_C6
	nd := m.DeuteriumDensity(3, 0, 0)
	require.InDelta(t, 2e19-6e17, nd, 1e16)

	// toroidal rotation is tangential with the profile magnitude
	v := m.FlowVelocity(3, 0, 0)
	require.InDelta(t, 1e5, v.Len(), 1)
	require.InDelta(t, 0, v.X, 1e-6)
	require.Equal(t, 0.0, v.Z)
}
