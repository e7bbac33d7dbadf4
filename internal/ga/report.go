package ga

import (
	"errors"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"wta/internal/opt"
	"wta/internal/wta"
)

var ErrTooFewIndividuals = errors.New("population statistics need at least two individuals")

// Recorder observes a run as it progresses.
type Recorder interface {
	ObserveReport(r opt.Report)
	ObserveGeneration(d time.Duration)
	ObserveCache(hits, misses uint64)
}

type nopRecorder struct{}

func (nopRecorder) ObserveReport(opt.Report)         {}
func (nopRecorder) ObserveGeneration(time.Duration)  {}
func (nopRecorder) ObserveCache(hits, misses uint64) {}

func scorePopulation(pop []wta.Assignment, fit Fitness) []float64 {
	scores := make([]float64, len(pop))
	for i, a := range pop {
		scores[i] = fit.MustFitness(a)
	}
	return scores
}

// makeReport summarizes scores; Std is the sample standard deviation.
func makeReport(gen int, scores []float64) (opt.Report, error) {
	if len(scores) < 2 {
		return opt.Report{}, ErrTooFewIndividuals
	}
	return opt.Report{
		Generation: gen,
		Mean:       stat.Mean(scores, nil),
		Std:        stat.StdDev(scores, nil),
		Max:        floats.Max(scores),
		Min:        floats.Min(scores),
	}, nil
}
