package wta

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Instance is a weapon-target assignment problem: N targets, N weapons.
type Instance struct {
	N      int
	Values []float64
	// Probabilities[i][j] is the chance weapon j destroys target i.
	Probabilities [][]float64
}

func NewInstance(n int, values []float64, probabilities [][]float64) (*Instance, error) {
	inst := &Instance{N: n, Values: values, Probabilities: probabilities}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.N <= 0 {
		return fmt.Errorf("n must be > 0 (got %d)", inst.N)
	}
	if len(inst.Values) != inst.N {
		return fmt.Errorf("values length must be n=%d (got %d)", inst.N, len(inst.Values))
	}
	for i, v := range inst.Values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("values[%d] must be finite and >= 0 (got %g)", i, v)
		}
	}
	if len(inst.Probabilities) != inst.N {
		return fmt.Errorf("probabilities must have n=%d rows (got %d)", inst.N, len(inst.Probabilities))
	}
	for i, row := range inst.Probabilities {
		if len(row) != inst.N {
			return fmt.Errorf("probabilities[%d] must have n=%d columns (got %d)", i, inst.N, len(row))
		}
		for j, p := range row {
			// written so NaN fails too
			if !(p >= 0 && p <= 1) {
				return fmt.Errorf("probabilities[%d][%d] must be in [0,1] (got %g)", i, j, p)
			}
		}
	}
	return nil
}

// TotalValue is the value left standing when nothing is destroyed.
func (inst *Instance) TotalValue() float64 {
	total := 0.0
	for _, v := range inst.Values {
		total += v
	}
	return total
}

// RandomInstance draws values in [1, 100) and probabilities in [0, 1).
func RandomInstance(n int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("random number generator is nil")
	}
	values := make([]float64, n)
	for i := range values {
		values[i] = 1 + rng.Float64()*99
	}
	probs := make([][]float64, n)
	for i := range probs {
		probs[i] = make([]float64, n)
		for j := range probs[i] {
			probs[i][j] = rng.Float64()
		}
	}
	inst, err := NewInstance(n, values, probs)
	if err != nil {
		panic(err)
	}
	return inst
}
