// Package config loads the TOML run configuration shared by the command
// line tools. Unset fields fall back to defaults; meta data distinguishes
// an explicit zero from an omitted key.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// KL11 configures the diagnostic loader tool.
type KL11 struct {
	CalibrationFile string
	VoxelGridFile   string
	SensitivityDir  string
	MatrixFile      string // assembled matrix cache, empty disables
	Stride          int
	Reflections     bool
}

// Demo configures the synthetic camera demo scene.
type Demo struct {
	Pulse       int     // pulse observed (beams, equilibrium)
	PlasmaPulse int     // pulse the profile data comes from
	Time        float64 // [s]
	ProfileUser string
	Sequence    int

	CrossSections string // LXCat-format beam stopping table
	PINIs         []string

	Width        int
	Height       int
	FOV          float64 // [deg]
	PixelSamples int
	StepSize     float64 // ray march step [m]
}

type Config struct {
	OutputDir  string
	SALBaseURL string
	CacheFile  string // SAL signal cache database, empty disables

	KL11 KL11
	Demo Demo
}

// Load reads the configuration file, applying defaults for omitted keys.
func Load(path string) (Config, error) {
	var c Config
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config: %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if !meta.IsDefined("OutputDir") {
		c.OutputDir = "."
	}
	if !meta.IsDefined("KL11", "Stride") {
		c.KL11.Stride = 1
	}
	if !meta.IsDefined("KL11", "Reflections") {
		c.KL11.Reflections = true
	}
	if !meta.IsDefined("Demo", "PlasmaPulse") {
		c.Demo.PlasmaPulse = c.Demo.Pulse
	}
	if !meta.IsDefined("Demo", "ProfileUser") {
		c.Demo.ProfileUser = "jetppf"
	}
	if !meta.IsDefined("Demo", "PINIs") {
		c.Demo.PINIs = []string{"8.1", "8.2", "8.5", "8.6"}
	}
	if !meta.IsDefined("Demo", "Width") {
		c.Demo.Width = 512
	}
	if !meta.IsDefined("Demo", "Height") {
		c.Demo.Height = 512
	}
	if !meta.IsDefined("Demo", "FOV") {
		c.Demo.FOV = 45
	}
	if !meta.IsDefined("Demo", "PixelSamples") {
		c.Demo.PixelSamples = 50
	}
	if !meta.IsDefined("Demo", "StepSize") {
		c.Demo.StepSize = 0.02
	}

	if c.KL11.Stride <= 0 {
		return Config{}, fmt.Errorf("config: %s: KL11.Stride must be positive", path)
	}
	return c, nil
}
