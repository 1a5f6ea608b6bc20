// Package camera implements the synthetic-diagnostic observers: a pinhole
// camera and a calibration-driven vector camera. Both integrate a radiance
// field along per-pixel sight lines with a fixed-step march.
package camera

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/mgattu/jetsynth/internal/geometry"
)

// RadianceField answers local emissivity queries [W m^-3 sr^-1].
type RadianceField interface {
	Emissivity(p geometry.Point3D) float64
}

// Ray is one sight line.
type Ray struct {
	Origin    geometry.Point3D
	Direction geometry.Vector3D
}

// Settings control the observation.
type Settings struct {
	PixelSamples int     // rays averaged per pixel
	StepSize     float64 // march step [m]
	MaxDistance  float64 // march length [m]
	Workers      int     // concurrent pixel rows, 0 = one per CPU
}

// DefaultSettings matches a single-sample, centimetre-step observation over
// the JET vessel scale.
func DefaultSettings() Settings {
	return Settings{
		PixelSamples: 1,
		StepSize:     0.02,
		MaxDistance:  12.0,
	}
}

// Frame is an observed image, row-major [W m^-2 sr^-1].
type Frame struct {
	Height, Width int
	Data          []float64
}

func NewFrame(h, w int) *Frame {
	return &Frame{Height: h, Width: w, Data: make([]float64, h*w)}
}

func (f *Frame) At(i, j int) float64     { return f.Data[i*f.Width+j] }
func (f *Frame) set(i, j int, v float64) { f.Data[i*f.Width+j] = v }

// integrate marches the field along the ray accumulating emissivity.
func integrate(field RadianceField, ray Ray, s Settings) float64 {
	var sum float64
	steps := int(s.MaxDistance / s.StepSize)
	for k := 0; k < steps; k++ {
		p := ray.Origin.Add(ray.Direction.Mul((float64(k) + 0.5) * s.StepSize))
		sum += field.Emissivity(p)
	}
	return sum * s.StepSize
}

// observe renders every pixel, fanning rows out to a worker pool. rayFn
// produces the sample-th ray for pixel (row, col).
func observe(h, w int, rayFn func(row, col, sample int) Ray, field RadianceField, s Settings) *Frame {
	if s.PixelSamples <= 0 {
		s.PixelSamples = 1
	}
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	frame := NewFrame(h, w)
	rows := make(chan int)
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				for j := 0; j < w; j++ {
					var sum float64
					for k := 0; k < s.PixelSamples; k++ {
						sum += integrate(field, rayFn(i, j, k), s)
					}
					frame.set(i, j, sum/float64(s.PixelSamples))
				}
			}
		}()
	}

	done := 0
	for i := 0; i < h; i++ {
		rows <- i
		done++
		if done%32 == 0 || done == h {
			fmt.Printf("\rObserving: [%d/%d]", done, h)
		}
	}
	close(rows)
	wg.Wait()
	fmt.Print("\r")
	return frame
}
