package bench

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type FloatStats struct {
	N    int
	Mean float64
	Std  float64
	Max  float64
	Min  float64
}

// CalcFloatStats uses the sample standard deviation; Std is 0 below two values.
func CalcFloatStats(values []float64) FloatStats {
	s := FloatStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	s.Mean = stat.Mean(values, nil)
	if s.N >= 2 {
		s.Std = stat.StdDev(values, nil)
	}
	s.Max = floats.Max(values)
	s.Min = floats.Min(values)
	return s
}
