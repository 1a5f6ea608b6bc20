package utils

import (
	"cmp"
	"math"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Float | constraints.Integer
}

func SumSlice[T Number](arr []T) (r T) {
	for i := range arr {
		r += arr[i]
	}
	return
}

func Argmax[T cmp.Ordered](arr []T) (argmax int) {
	for i := range arr {
		if cmp.Compare(arr[i], arr[argmax]) == 1 {
			argmax = i
		}
	}
	return
}

func Average[T Number](s []T) (mean float64) {
	for i := range s {
		mean += float64(s[i])
	}
	mean /= float64(len(s))
	return
}

func MinMax(s []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := range s {
		lo = min(lo, s[i])
		hi = max(hi, s[i])
	}
	return
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CeilDiv returns ceil(a/b) for positive integers.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Linspace fills a slice with n evenly spaced values over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	s := make([]float64, n)
	if n == 1 {
		s[0] = lo
		return s
	}
	step := (hi - lo) / float64(n-1)
	for i := range s {
		s[i] = math.FMA(float64(i), step, lo)
	}
	return s
}
