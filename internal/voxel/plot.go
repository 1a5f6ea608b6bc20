package voxel

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mgattu/jetsynth/internal/utils"
)

// PlotEmissivity renders a per-cell emissivity vector onto the poloidal
// cross-section and saves it as an image (format chosen by file extension).
// values must have one entry per grid cell.
func (g *Grid) PlotEmissivity(values []float64, title, path string) error {
	if len(values) != len(g.Cells) {
		return fmt.Errorf("voxel: emissivity vector has %d entries for %d cells", len(values), len(g.Cells))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "R (m)"
	p.Y.Label.Text = "Z (m)"

	pal := palette.Heat(256, 1)
	colors := pal.Colors()
	lo, hi := utils.MinMax(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	for i, c := range g.Cells {
		pts := c.corners()
		xys := make(plotter.XYs, len(pts))
		for k, pt := range pts {
			xys[k].X = pt.X
			xys[k].Y = pt.Y
		}
		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return fmt.Errorf("voxel: cell %d: %w", i, err)
		}
		bin := int((values[i] - lo) / span * float64(len(colors)-1))
		poly.Color = colors[bin]
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	if err := p.Save(14*vg.Centimeter, 20*vg.Centimeter, path); err != nil {
		return fmt.Errorf("voxel: %w", err)
	}
	return nil
}
