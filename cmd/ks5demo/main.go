// Command ks5demo assembles the full synthetic charge-exchange scene for a
// JET pulse: equilibrium, species profiles, neutral beams and a pinhole
// camera on the KS5 line of sight, then renders the observed image.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mgattu/jetsynth/internal/camera"
	"github.com/mgattu/jetsynth/internal/config"
	"github.com/mgattu/jetsynth/internal/constants"
	"github.com/mgattu/jetsynth/internal/equilibrium"
	"github.com/mgattu/jetsynth/internal/field"
	"github.com/mgattu/jetsynth/internal/geometry"
	"github.com/mgattu/jetsynth/internal/inspect"
	"github.com/mgattu/jetsynth/internal/nbi"
	"github.com/mgattu/jetsynth/internal/plasma"
	"github.com/mgattu/jetsynth/internal/profiles"
	"github.com/mgattu/jetsynth/internal/sal"
	"github.com/mgattu/jetsynth/internal/utils"
)

func main() {
	configFile := flag.String("input", "ks5demo.toml", "demo configuration in toml format")
	flag.Parse()

	startTime := time.Now()
	fmt.Printf("Current time: %s\n", startTime.UTC().Format(time.UnixDate))

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.OutputDir != "" && cfg.OutputDir != "." {
		os.MkdirAll(cfg.OutputDir, 0750)
	}

	ctx := context.Background()
	var opts []sal.Option
	if cfg.CacheFile != "" {
		cache, err := sal.OpenCache(cfg.CacheFile)
		if err != nil {
			log.Fatalln(err)
		}
		defer cache.Close()
		opts = append(opts, sal.WithCache(cache))
	}
	client := sal.NewClient(cfg.SALBaseURL, opts...)

	fmt.Println("\nPlasma equilibrium")
	eq, err := equilibrium.Load(ctx, client, cfg.Demo.Pulse)
	if err != nil {
		log.Fatalln(err)
	}
	slice, err := eq.Time(cfg.Demo.Time)
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("pulse %d at t=%.3fs (nearest slice %.3fs)\n", cfg.Demo.Pulse, cfg.Demo.Time, slice.Time)

	fmt.Println("\nPlasma configuration")
	ps, err := profiles.Load(ctx, client, cfg.Demo.PlasmaPulse, cfg.Demo.ProfileUser, cfg.Demo.Sequence)
	if err != nil {
		log.Fatalln(err)
	}
	tiLo, tiHi := utils.MinMax(ps.IonTemperature)
	fmt.Printf("Ti between %g and %g eV\n", tiLo, tiHi)
	neLo, neHi := utils.MinMax(ps.ElectronDensity)
	fmt.Printf("Ne between %g and %g m-3\n", neLo, neHi)

	chartPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("profiles_%d.html", cfg.Demo.PlasmaPulse))
	if err := inspect.WriteProfileCharts(ps, chartPath); err != nil {
		log.Fatalln(err)
	}

	mapped, err := ps.Map(slice)
	if err != nil {
		log.Fatalln(err)
	}

	p := plasma.New()
	p.BField = field.CylindricalVector(slice.BField)
	p.Electrons = plasma.NewMaxwellian(
		mapped.ElectronDensity, mapped.IonTemperature, mapped.FlowVelocity, constants.ElectronMass)
	p.Composition = []plasma.Species{
		{Element: plasma.Deuterium, Charge: 1, Distribution: plasma.NewMaxwellian(
			mapped.DeuteriumDensity, mapped.IonTemperature, mapped.FlowVelocity, plasma.Deuterium.Mass())},
		{Element: plasma.Carbon, Charge: 6, Distribution: plasma.NewMaxwellian(
			mapped.CarbonDensity, mapped.IonTemperature, mapped.FlowVelocity, plasma.Carbon.Mass())},
	}

	fmt.Println("\nLoading JET PINI configuration...")
	atten, err := nbi.NewSingleRayAttenuator(cfg.Demo.CrossSections, true)
	if err != nil {
		log.Fatalln(err)
	}
	cxLine := plasma.Line{Element: plasma.Carbon, Charge: 5, Upper: 8, Lower: 7}
	for _, name := range cfg.Demo.PINIs {
		beam, err := nbi.LoadPINIFromPPF(ctx, client, cfg.Demo.Pulse, name, cfg.Demo.Time, atten)
		if err != nil {
			log.Fatalln(err)
		}
		beam.Attach(mapped.ElectronDensity)
		model, err := nbi.NewBeamCXLine(cxLine, beam, p)
		if err != nil {
			log.Fatalln(err)
		}
		p.AttachModel(model)
		fmt.Printf("PINI %s: %.0f keV, %.1f MW\n", name, beam.Energy/1e3, beam.Power/1e6)
	}

	fmt.Println("\nObservation")
	los := geometry.Point3D{X: 4.22950, Y: -0.791368, Z: 0.269430}
	direction := geometry.Vector3D{X: -0.760612, Y: -0.648906, Z: -0.0197396}.Normalise()
	los = los.Add(direction.Mul(0.9))
	up := geometry.Vector3D{Z: 1}

	transform := geometry.Translate(los.X, los.Y, los.Z).Mul(geometry.RotateBasis(direction, up))
	cam, err := camera.NewPinholeCamera(cfg.Demo.Width, cfg.Demo.Height, cfg.Demo.FOV, transform)
	if err != nil {
		log.Fatalln(err)
	}

	settings := camera.DefaultSettings()
	settings.PixelSamples = cfg.Demo.PixelSamples
	settings.StepSize = cfg.Demo.StepSize
	frame := cam.Observe(p, settings)

	imgPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("ks5_%d.png", cfg.Demo.Pulse))
	if err := frame.SavePNG(imgPath, camera.DisplayUnsaturatedFraction, 2.2); err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("image saved to %s\n", imgPath)
	fmt.Printf("Elapsed time: %v\n", time.Since(startTime))
}
