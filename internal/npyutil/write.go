package npyutil

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strings"
)

// Write stores a float64 array of arbitrary shape as a version 1.0 .npy
// file. npyio only writes 1D slices and matrices, so the header is emitted
// here; the layout is C-order little-endian, which is what npyio reads back.
func Write(path string, shape []int, data []float64) error {
	n := 1
	var dims []string
	for _, d := range shape {
		n *= d
		dims = append(dims, fmt.Sprintf("%d", d))
	}
	if n != len(data) {
		return fmt.Errorf("npyutil: shape %v does not match %d values", shape, len(data))
	}

	shapeStr := strings.Join(dims, ", ")
	if len(shape) == 1 {
		shapeStr += ","
	}
	header := fmt.Sprintf("{'descr': '<f8', 'fortran_order': False, 'shape': (%s), }", shapeStr)
	// pad with spaces so magic+header is a multiple of 64 bytes, ending in \n
	total := 10 + len(header) + 1
	if pad := (64 - total%64) % 64; pad > 0 {
		header += strings.Repeat(" ", pad)
	}
	header += "\n"

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("npyutil: %w", err)
	}
	defer f.Close()

	buf := make([]byte, 0, 10+len(header)+8*len(data))
	buf = append(buf, '\x93', 'N', 'U', 'M', 'P', 'Y', 1, 0)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(header)))
	buf = append(buf, header...)
	for _, v := range data {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("npyutil: %s: %w", path, err)
	}
	return nil
}
