package ga

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"wta/internal/opt"
	"wta/internal/wta"
)

// Solver is the generational GA for weapon-target assignment.
type Solver struct {
	Cfg      Config
	Rng      *rand.Rand
	Log      *zap.Logger
	Recorder Recorder
}

// New validates cfg and returns a solver drawing all randomness from rng.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("random number generator is nil")
	}
	return &Solver{Cfg: cfg, Rng: rng, Log: zap.NewNop(), Recorder: nopRecorder{}}, nil
}

// Solve evolves the population for MaxIterations generations, reporting
// before every burst and once more at the end.
func (s *Solver) Solve(ctx context.Context, inst *wta.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("random number generator is nil")
	}
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	rec := s.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}

	eval, err := wta.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}
	var fit Fitness = eval
	var cached *CachedEvaluator
	if s.Cfg.FitnessCacheSize > 0 {
		if cached, err = NewCachedEvaluator(eval, s.Cfg.FitnessCacheSize); err != nil {
			return opt.Result{}, err
		}
		fit = cached
	}

	cfg := s.Cfg
	pop := InitialPopulation(cfg.PopulationSize, inst.N, s.Rng)

	var reports []opt.Report
	emit := func(gen int) error {
		r, err := makeReport(gen, scorePopulation(pop, fit))
		if err != nil {
			return fmt.Errorf("generation %d: %w", gen, err)
		}
		reports = append(reports, r)
		rec.ObserveReport(r)
		log.Info("generation",
			zap.Int("gen", r.Generation),
			zap.Float64("avg", r.Mean),
			zap.Float64("std", r.Std),
			zap.Float64("max", r.Max),
			zap.Float64("min", r.Min),
		)
		return nil
	}

	finish := func(iteration int, stopped string) opt.Result {
		if cached != nil {
			rec.ObserveCache(cached.Stats())
		}
		res := ToOptResult(pop, scorePopulation(pop, fit), reports, iteration, map[string]any{
			"population_size": cfg.PopulationSize,
			"max_iterations":  cfg.MaxIterations,
			"burst":           cfg.Burst(),
		})
		if stopped != "" {
			res.Meta["stopped"] = stopped
		}
		res.Duration = time.Since(start)
		return res
	}

	burst := cfg.Burst()
	iteration := 0
	for iteration < cfg.MaxIterations {
		if err := emit(iteration); err != nil {
			return opt.Result{}, err
		}

		// the last burst may run past MaxIterations
		for i := 0; i < burst; i++ {
			// cancellation via context
			if err := ctx.Err(); err != nil {
				return finish(iteration, "context"), err
			}

			genStart := time.Now()
			parents := SelectBest(pop, fit, cfg.TournamentSize, cfg.SelectionProbability, cfg.SelectionSize, s.Rng)
			children, err := Crossover(parents, cfg.PopulationSize, s.Rng)
			if err != nil {
				return opt.Result{}, fmt.Errorf("generation %d: %w", iteration, err)
			}
			pop = Mutate(children, cfg.MutationProbability, cfg.MutationMethod, s.Rng)
			iteration++
			rec.ObserveGeneration(time.Since(genStart))
		}
	}

	if err := emit(iteration); err != nil {
		return opt.Result{}, err
	}

	res := finish(iteration, "")
	log.Info("run finished",
		zap.Int("iterations", res.Iterations),
		zap.Float64("best_fitness", res.BestFitness),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}
