// Package sensitivity assembles the KL11 sensitivity matrix from the
// per-channel ray-traced pixel sensitivity maps. Each channel file holds a
// 1000x1000 poloidal map; the assembled matrix maps voxel emissivity to
// detector signal and has one column per channel after the final transpose.
package sensitivity

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"sync"

	"github.com/facette/natsort"
	"gonum.org/v1/gonum/mat"

	"github.com/mgattu/jetsynth/internal/npyutil"
	"github.com/mgattu/jetsynth/internal/utils"
)

// GridDimension is the side length of the full-resolution sensitivity maps.
const GridDimension = 1000

type Options struct {
	// Reflections selects the map set computed with wall reflections
	// (kl11_rf_*) over the reflection-free set (kl11_norf_*).
	Reflections bool
	// Stride subsamples each map as [::stride, ::stride] before
	// flattening. 1 keeps the full resolution.
	Stride int
	// Workers bounds the number of files loaded concurrently.
	// Zero means one per CPU.
	Workers int
}

func (o Options) prefix() string {
	if o.Reflections {
		return "kl11_rf_sensitivity_matrix_"
	}
	return "kl11_norf_sensitivity_matrix_"
}

var channelIndexRe = regexp.MustCompile(`_(\d+)\.npy$`)

// ChannelFiles scans dir for the per-channel map files of the selected set
// and returns them in natural channel order. The channel indices must form
// a contiguous range starting at zero.
func ChannelFiles(dir string, reflections bool) ([]string, error) {
	prefix := Options{Reflections: reflections}.prefix()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("sensitivity: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if len(name) > len(prefix) && name[:len(prefix)] == prefix && channelIndexRe.MatchString(name) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("sensitivity: no %s*.npy files in %s", prefix, dir)
	}
	natsort.Sort(names)

	for i, name := range names {
		m := channelIndexRe.FindStringSubmatch(name)
		idx, err := strconv.Atoi(m[1])
		if err != nil || idx != i {
			return nil, fmt.Errorf("sensitivity: channel files are not contiguous: expected channel %d, found %s", i, name)
		}
	}

	files := make([]string, len(names))
	for i, name := range names {
		files[i] = filepath.Join(dir, name)
	}
	return files, nil
}

// Assemble loads every channel map under dir and builds the sensitivity
// matrix. The result has shape (dim*dim, channels) with
// dim = ceil(GridDimension/stride): channel maps are strided, flattened
// into rows, and the stacked matrix transposed, so that multiplying from
// the right by a channel-signal vector is a back-projection.
func Assemble(dir string, opt Options) (*mat.Dense, error) {
	if opt.Stride <= 0 {
		return nil, fmt.Errorf("sensitivity: stride must be positive, got %d", opt.Stride)
	}
	files, err := ChannelFiles(dir, opt.Reflections)
	if err != nil {
		return nil, err
	}

	dim := utils.CeilDiv(GridDimension, opt.Stride)
	pixels := dim * dim
	rows := make([][]float64, len(files))

	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	jobs := make(chan int)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				a, err := npyutil.Read2D(files[i])
				if err == nil && (a.Rows != GridDimension || a.Cols != GridDimension) {
					err = fmt.Errorf("sensitivity: %s: map is %dx%d, expected %dx%d",
						files[i], a.Rows, a.Cols, GridDimension, GridDimension)
				}
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				rows[i] = a.Stride(opt.Stride).Flatten()
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	matrix := mat.NewDense(pixels, len(files), nil)
	for i, row := range rows {
		if len(row) != pixels {
			return nil, fmt.Errorf("sensitivity: channel %d flattened to %d values, expected %d", i, len(row), pixels)
		}
		matrix.SetCol(i, row)
	}
	return matrix, nil
}

// Save stores an assembled matrix so later runs can skip the per-channel
// scan.
func Save(path string, m *mat.Dense) error {
	return npyutil.WriteMatrix(path, m)
}

// Load reads back a matrix stored with Save.
func Load(path string) (*mat.Dense, error) {
	return npyutil.ReadMatrix(path)
}
