package camera

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"sort"
)

// DisplayUnsaturatedFraction is the default quantile used to set the white
// point: the brightest 4% of pixels saturate, which keeps a few hot beam
// pixels from crushing the rest of the image.
const DisplayUnsaturatedFraction = 0.96

// percentile returns the value below which frac of the pixels fall.
func (f *Frame) percentile(frac float64) float64 {
	vals := make([]float64, len(f.Data))
	copy(vals, f.Data)
	sort.Float64s(vals)
	idx := int(frac * float64(len(vals)-1))
	return vals[idx]
}

// SavePNG writes the frame as a 16-bit grayscale PNG. The white point is
// the unsaturatedFraction quantile of the pixel values; gamma is applied
// after normalization.
func (f *Frame) SavePNG(path string, unsaturatedFraction, gamma float64) error {
	white := f.percentile(unsaturatedFraction)
	if white <= 0 {
		white = 1
	}

	toU16 := func(v float64) uint16 {
		if v <= 0 {
			return 0
		}
		n := v / white
		if n > 1 {
			n = 1
		}
		if gamma != 1 {
			n = math.Pow(n, 1.0/gamma)
		}
		return uint16(math.Round(n * 65535.0))
	}

	img := image.NewGray16(image.Rect(0, 0, f.Width, f.Height))
	for i := 0; i < f.Height; i++ {
		for j := 0; j < f.Width; j++ {
			v := toU16(f.At(i, j))
			off := img.PixOffset(j, i)
			img.Pix[off] = uint8(v >> 8)
			img.Pix[off+1] = uint8(v)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("camera: %s: %w", path, err)
	}
	return nil
}
