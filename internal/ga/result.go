package ga

import (
	"wta/internal/opt"
	"wta/internal/wta"
)

// ToOptResult packs a final population; Best is the first individual with the
// highest fitness.
func ToOptResult(pop []wta.Assignment, scores []float64, reports []opt.Report, iterations int, meta map[string]any) opt.Result {
	popCopy := make([]wta.Assignment, len(pop))
	for i, a := range pop {
		popCopy[i] = a.Clone()
	}
	scoresCopy := make([]float64, len(scores))
	copy(scoresCopy, scores)

	res := opt.Result{
		Population: popCopy,
		Fitness:    scoresCopy,
		Reports:    reports,
		Iterations: iterations,
		Meta:       meta,
	}
	for i, f := range scoresCopy {
		if res.Best == nil || f > res.BestFitness {
			res.Best = popCopy[i].Clone()
			res.BestFitness = f
		}
	}
	return res
}
