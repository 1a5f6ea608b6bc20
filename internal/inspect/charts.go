// Package inspect renders quick-look HTML charts of fetched profile data,
// for eyeballing a pulse before committing to a long render.
package inspect

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mgattu/jetsynth/internal/profiles"
)

func profileLine(title, unit string, psi, vals []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "psi_n"}),
		charts.WithYAxisOpts(opts.YAxis{Name: unit}),
	)

	xs := make([]string, len(psi))
	data := make([]opts.LineData, len(psi))
	for i := range psi {
		xs[i] = fmt.Sprintf("%.3f", psi[i])
		data[i] = opts.LineData{Value: vals[i]}
	}
	line.SetXAxis(xs).AddSeries(title, data)
	return line
}

// WriteProfileCharts writes an HTML page with one chart per profile.
func WriteProfileCharts(ps *profiles.ProfileSet, path string) error {
	page := components.NewPage()
	page.AddCharts(
		profileLine("Ion temperature", "eV", ps.Psi, ps.IonTemperature),
		profileLine("Electron density", "m^-3", ps.Psi, ps.ElectronDensity),
		profileLine("C6+ density", "m^-3", ps.Psi, ps.CarbonDensity),
		profileLine("Toroidal rotation", "m/s", ps.Psi, ps.FlowVelocityTor),
	)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("inspect: %s: %w", path, err)
	}
	return nil
}
