// Package voxel describes the toroidal voxel grid used for tomographic
// inversion: a discretization of the poloidal cross-section into
// quadrilateral cells, each swept around the torus axis.
package voxel

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/mgattu/jetsynth/internal/geometry"
)

// Cell is one quadrilateral in the (R, Z) half-plane. Corners are stored
// in file order p1..p4 and traversed as a closed loop.
type Cell struct {
	P1, P2, P3, P4 geometry.Point2D
}

func (c Cell) corners() [4]geometry.Point2D {
	return [4]geometry.Point2D{c.P1, c.P2, c.P3, c.P4}
}

// Area returns the polygon area of the cell via the shoelace formula [m^2].
func (c Cell) Area() float64 {
	pts := c.corners()
	var s float64
	for i := range pts {
		j := (i + 1) % len(pts)
		s += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(s) * 0.5
}

// Barycentre returns the mean of the four corners.
func (c Cell) Barycentre() geometry.Point2D {
	pts := c.corners()
	var r, z float64
	for i := range pts {
		r += pts[i].X
		z += pts[i].Y
	}
	return geometry.Point2D{X: r * 0.25, Y: z * 0.25}
}

// Contains reports whether the (r, z) point lies inside the cell.
// Concave quadrilaterals work too.
func (c Cell) Contains(p geometry.Point2D) bool {
	pts := c.corners()
	return geometry.PointInPolygon(p, pts[:])
}

// Grid is the full toroidal voxel grid.
type Grid struct {
	Name  string
	Cells []Cell

	RMin, RMax float64
	ZMin, ZMax float64
}

type gridDescription struct {
	Cells []struct {
		P1 [2]float64 `json:"p1"`
		P2 [2]float64 `json:"p2"`
		P3 [2]float64 `json:"p3"`
		P4 [2]float64 `json:"p4"`
	} `json:"cells"`
}

// Load reads a voxel grid description JSON file.
func Load(path, name string) (*Grid, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("voxel: %w", err)
	}
	var desc gridDescription
	if err := json.Unmarshal(raw, &desc); err != nil {
		return nil, fmt.Errorf("voxel: %s: %w", path, err)
	}
	if len(desc.Cells) == 0 {
		return nil, fmt.Errorf("voxel: %s: grid description has no cells", path)
	}

	g := &Grid{
		Name: name,
		RMin: math.Inf(1), RMax: math.Inf(-1),
		ZMin: math.Inf(1), ZMax: math.Inf(-1),
	}
	for n, cell := range desc.Cells {
		c := Cell{
			P1: geometry.Point2D{X: cell.P1[0], Y: cell.P1[1]},
			P2: geometry.Point2D{X: cell.P2[0], Y: cell.P2[1]},
			P3: geometry.Point2D{X: cell.P3[0], Y: cell.P3[1]},
			P4: geometry.Point2D{X: cell.P4[0], Y: cell.P4[1]},
		}
		for _, p := range c.corners() {
			if p.X <= 0 {
				return nil, fmt.Errorf("voxel: %s: cell %d has corner at R=%g, toroidal cells need R > 0", path, n, p.X)
			}
			g.RMin = min(g.RMin, p.X)
			g.RMax = max(g.RMax, p.X)
			g.ZMin = min(g.ZMin, p.Y)
			g.ZMax = max(g.ZMax, p.Y)
		}
		g.Cells = append(g.Cells, c)
	}
	return g, nil
}

// Count returns the number of cells in the grid.
func (g *Grid) Count() int { return len(g.Cells) }

// FindCell returns the index of the cell containing the (r, z) point, or -1.
// Linear scan; the KL11 grid is a few thousand cells so this is fine for
// interactive lookups.
func (g *Grid) FindCell(p geometry.Point2D) int {
	if p.X < g.RMin || p.X > g.RMax || p.Y < g.ZMin || p.Y > g.ZMax {
		return -1
	}
	for i := range g.Cells {
		if g.Cells[i].Contains(p) {
			return i
		}
	}
	return -1
}

// TotalVolume returns the toroidal volume of the grid [m^3], summing
// 2*pi*R_c*A over cells (Pappus).
func (g *Grid) TotalVolume() float64 {
	var v float64
	for i := range g.Cells {
		v += 2 * math.Pi * g.Cells[i].Barycentre().X * g.Cells[i].Area()
	}
	return v
}
