package wta

import "fmt"

type Evaluator struct {
	inst  *Instance
	total float64
	// used[w] == stamp marks weapon w as counted in the current scan.
	used  []int
	stamp int
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst, total: inst.TotalValue(), used: make([]int, inst.N)}, nil
}

func (e *Evaluator) Instance() *Instance { return e.inst }

// ExpectedDamage sums Probabilities[i][a[i]]*Values[i] over targets in index
// order, counting each weapon only at its first occurrence.
func (e *Evaluator) ExpectedDamage(a Assignment) (float64, error) {
	if e == nil || e.inst == nil {
		return 0, fmt.Errorf("nil evaluator")
	}
	if err := ValidateAssignment(a, e.inst.N); err != nil {
		return 0, err
	}

	e.stamp++
	total := 0.0
	for i, w := range a {
		if e.used[w] == e.stamp {
			continue
		}
		e.used[w] = e.stamp
		total += e.inst.Probabilities[i][w] * e.inst.Values[i]
	}
	return total, nil
}

// Fitness is the negated undamaged value; 0 is the best possible.
func (e *Evaluator) Fitness(a Assignment) (float64, error) {
	damage, err := e.ExpectedDamage(a)
	if err != nil {
		return 0, err
	}
	return -(e.total - damage), nil
}

func (e *Evaluator) MustFitness(a Assignment) float64 {
	f, err := e.Fitness(a)
	if err != nil {
		panic(err)
	}
	return f
}
