// Command kl11 loads the KL11 diagnostic: camera calibration, voxel grid
// and sensitivity matrix. Outputs are selected by flags, in the manner of
// an interactive analysis checklist.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/mgattu/jetsynth/internal/config"
	"github.com/mgattu/jetsynth/internal/kl11"
	"github.com/mgattu/jetsynth/internal/sensitivity"
	"github.com/mgattu/jetsynth/internal/utils"
)

func main() {
	var (
		configFile  = flag.String("input", "kl11.toml", "run configuration in toml format")
		saveMatrix  = flag.Bool("m", false, "save the assembled sensitivity matrix as .npy")
		plotGrid    = flag.Bool("g", false, "plot the voxel grid cross-section")
		saveSummary = flag.Bool("s", false, "save per-channel total sensitivity as csv")
	)
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

	fmt.Println("\nVoxel grid")
	grid, err := kl11.LoadVoxelGrid(cfg.KL11.VoxelGridFile)
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("%d cells, R in [%.3f, %.3f] m, Z in [%.3f, %.3f] m, volume %.3f m^3\n",
		grid.Count(), grid.RMin, grid.RMax, grid.ZMin, grid.ZMax, grid.TotalVolume())

	fmt.Println("\nCamera")
	cam, err := kl11.LoadCamera(cfg.KL11.CalibrationFile, cfg.KL11.Stride)
	if err != nil {
		log.Fatalln(err)
	}
	h, w := cam.Shape()
	fmt.Printf("%dx%d pixels at stride %d\n", h, w, cfg.KL11.Stride)

	fmt.Println("\nSensitivity matrix")
	var matrix *mat.Dense
	if cfg.KL11.MatrixFile != "" {
		if matrix, err = sensitivity.Load(cfg.KL11.MatrixFile); err == nil {
			fmt.Printf("loaded assembled matrix from %s\n", cfg.KL11.MatrixFile)
		}
	}
	if matrix == nil {
		matrix, err = kl11.LoadSensitivityMatrix(cfg.KL11.SensitivityDir, cfg.KL11.Reflections, cfg.KL11.Stride)
		if err != nil {
			log.Fatalln(err)
		}
	}
	pixels, channels := matrix.Dims()
	dim := utils.CeilDiv(sensitivity.GridDimension, cfg.KL11.Stride)
	fmt.Printf("shape (%d, %d), grid %dx%d\n", pixels, channels, dim, dim)
	fmt.Printf("Elapsed time: %v\n", time.Since(startTime))

	if *saveMatrix && cfg.KL11.MatrixFile != "" {
		if err := sensitivity.Save(cfg.KL11.MatrixFile, matrix); err != nil {
			log.Fatalln(err)
		}
		println("sensitivity matrix saved")
	}

	if *plotGrid {
		// colour cells by area to make the resolution gradient visible
		areas := make([]float64, grid.Count())
		for i := range grid.Cells {
			areas[i] = grid.Cells[i].Area()
		}
		path := filepath.Join(cfg.OutputDir, "kl11_voxel_grid.png")
		if err := grid.PlotEmissivity(areas, "KL11 voxel grid", path); err != nil {
			log.Fatalln(err)
		}
		println("voxel grid plot saved")
	}

	if *saveSummary {
		file, err := os.Create(filepath.Join(cfg.OutputDir, "kl11_channel_totals.csv"))
		if err != nil {
			log.Fatalln(err)
		}
		defer file.Close()

		rows := [][]string{{"channel", "total sensitivity"}}
		col := make([]float64, pixels)
		for ch := 0; ch < channels; ch++ {
			mat.Col(col, ch, matrix)
			rows = append(rows, []string{
				strconv.Itoa(ch),
				strconv.FormatFloat(utils.SumSlice(col), 'g', -1, 64),
			})
		}
		cw := csv.NewWriter(file)
		cw.WriteAll(rows)
		if err := cw.Error(); err != nil {
			log.Fatalln("error writing csv:", err)
		}
		println("channel totals saved")
	}
}
