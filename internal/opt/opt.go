package opt

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wta/internal/wta"
)

type Optimizer interface {
	Solve(ctx context.Context, inst *wta.Instance) (Result, error)
}

// Sink receives the outcome of a finished run.
type Sink interface {
	Write(res Result) error
}

// Report is the fitness summary of one population snapshot.
type Report struct {
	Generation int
	Mean       float64
	Std        float64
	Max        float64
	Min        float64
}

func (r Report) String() string {
	return fmt.Sprintf("gen: %d, avg: %s, std: %s, max: %s, min: %s",
		r.Generation, FormatFloat(r.Mean), FormatFloat(r.Std), FormatFloat(r.Max), FormatFloat(r.Min))
}

type Result struct {
	Best        wta.Assignment
	BestFitness float64
	// Population and Fitness are parallel, in engine order.
	Population []wta.Assignment
	Fitness    []float64
	Reports    []Report
	Iterations int
	Duration   time.Duration
	Meta       map[string]any
}

// FormatFloat prints the shortest round-tripping form, always with a decimal
// point or exponent so integral values read as reals ("-2.0", not "-2").
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEIN") {
		return s
	}
	return s + ".0"
}
