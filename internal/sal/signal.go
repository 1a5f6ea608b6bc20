// Package sal fetches JET experimental data signals from a SAL data server
// (the REST front end of the PPF system). Only the JSON signal subset the
// diagnostic loaders use is implemented.
package sal

import (
	"fmt"
	"strings"
)

// Dimension is one coordinate axis of a signal, e.g. the normalised flux
// coordinate of a profile.
type Dimension struct {
	Data        []float64 `json:"data"`
	Units       string    `json:"units"`
	Description string    `json:"description"`
}

// Signal is a multi-dimensional numeric signal with coordinate dimensions.
type Signal struct {
	Data        []float64   `json:"data"`
	Shape       []int       `json:"shape"`
	Dimensions  []Dimension `json:"dimensions"`
	Units       string      `json:"units"`
	Description string      `json:"description"`
}

// Squeeze drops length-1 axes from the signal shape, mirroring the usual
// post-fetch squeeze of single-time-slice profiles. Data is untouched.
func (s *Signal) Squeeze() *Signal {
	var shape []int
	var dims []Dimension
	for i, n := range s.Shape {
		if n == 1 {
			continue
		}
		shape = append(shape, n)
		if i < len(s.Dimensions) {
			dims = append(dims, s.Dimensions[i])
		}
	}
	out := *s
	out.Shape = shape
	out.Dimensions = dims
	return &out
}

func (s *Signal) size() int {
	n := 1
	for _, d := range s.Shape {
		n *= d
	}
	return n
}

func (s *Signal) validate() error {
	if len(s.Shape) == 0 {
		if len(s.Data) == 0 {
			return fmt.Errorf("sal: signal carries no data")
		}
		s.Shape = []int{len(s.Data)}
	}
	if s.size() != len(s.Data) {
		return fmt.Errorf("sal: signal shape %v does not match %d values", s.Shape, len(s.Data))
	}
	return nil
}

// PPFPath builds the canonical signal path
// /pulse/{pulse}/ppf/signal/{user}/{dda}/{dtype}:{sequence}.
func PPFPath(pulse int, user, dda, dtype string, sequence int) string {
	return fmt.Sprintf("/pulse/%d/ppf/signal/%s/%s/%s:%d",
		pulse, strings.ToLower(user), strings.ToLower(dda), strings.ToLower(dtype), sequence)
}
