package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"wta/internal/config"
	"wta/internal/ga"
	"wta/internal/logging"
	"wta/internal/metrics"
	"wta/internal/results"
	"wta/internal/wta"
)

func main() {
	// Flags override the config file and WTA_* variables, but only when set.
	var (
		configPath = flag.String("config", "", "path to a YAML config file")

		instanceFile = flag.String("instance-file", "", "file containing the problem instance")
		randomN      = flag.Int("random-n", 0, "solve a random instance of this size instead of an instance file")
		instanceSeed = flag.Int64("instance-seed", 777, "seed for the random instance")
		resultsDir   = flag.String("results-dir", "results", "directory for result files")
		metricsFile  = flag.String("metrics-file", "", "write Prometheus metrics to this textfile; empty disables")
		logLevel     = flag.String("log-level", "info", "log level: debug | info | warn | error")
		logFormat    = flag.String("log-format", "console", "log encoding: console | json")

		popSize   = flag.Int("population-size", 0, "number of individuals in the population")
		maxIter   = flag.Int("max-iterations", 0, "number of generations to evolve")
		tourSize  = flag.Float64("tournament-size", 0, "tournament size as a fraction of the population size")
		selProb   = flag.Float64("selection-probability", 0, "selection probability for the tournament rounds")
		selSize   = flag.Float64("selection-size", 0, "number of selected individuals as a fraction of the population size")
		mutProb   = flag.Float64("mutation-probability", 0, "probability an individual mutates in the mutation step")
		mutMethod = flag.String("mutation-method", "", "mutation operator: swap | random")
		seed      = flag.Int64("seed", 0, "seed for the random number generator")
		cacheSize = flag.Int("fitness-cache", 0, "fitness cache entries; 0 disables")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "instance-file":
			cfg.InstanceFile = *instanceFile
		case "random-n":
			cfg.RandomN = *randomN
		case "instance-seed":
			cfg.InstanceSeed = *instanceSeed
		case "results-dir":
			cfg.ResultsDir = *resultsDir
		case "metrics-file":
			cfg.MetricsFile = *metricsFile
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = *logFormat
		case "population-size":
			cfg.GA.PopulationSize = *popSize
		case "max-iterations":
			cfg.GA.MaxIterations = *maxIter
		case "tournament-size":
			cfg.GA.TournamentSize = *tourSize
		case "selection-probability":
			cfg.GA.SelectionProbability = *selProb
		case "selection-size":
			cfg.GA.SelectionSize = *selSize
		case "mutation-probability":
			cfg.GA.MutationProbability = *mutProb
		case "mutation-method":
			m, err := ga.ParseMutationMethod(*mutMethod)
			if err != nil {
				flagErr = err
				return
			}
			cfg.GA.MutationMethod = m
		case "seed":
			cfg.GA.Seed = *seed
		case "fitness-cache":
			cfg.GA.FitnessCacheSize = *cacheSize
		}
	})
	if flagErr != nil {
		fmt.Fprintln(os.Stderr, "flags:", flagErr)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(2)
	}
	defer log.Sync()

	if code := run(cfg, log); code != 0 {
		log.Sync()
		os.Exit(code)
	}
}

func run(cfg *config.Config, log *zap.Logger) int {
	inst, name, err := loadInstance(cfg)
	if err != nil {
		log.Error("load instance", zap.Error(err))
		return 2
	}
	log = log.With(zap.String("instance", name), zap.Int64("seed", cfg.GA.Seed))

	solver, err := ga.New(cfg.GA, rand.New(rand.NewSource(cfg.GA.Seed)))
	if err != nil {
		log.Error("ga config", zap.Error(err))
		return 2
	}
	solver.Log = log

	var m *metrics.Metrics
	if cfg.MetricsFile != "" {
		m = metrics.New(name, cfg.GA.Seed)
		solver.Recorder = m
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("run started",
		zap.Int("n", inst.N),
		zap.Int("population_size", cfg.GA.PopulationSize),
		zap.Int("max_iterations", cfg.GA.MaxIterations),
		zap.String("mutation_method", string(cfg.GA.MutationMethod)),
	)
	res, err := solver.Solve(ctx, inst)
	if err != nil {
		log.Error("solve", zap.Error(err), zap.Int("iterations", res.Iterations))
		return 1
	}

	sink := results.NewWriter(cfg.ResultsDir, results.ParamsFrom(cfg.GA, name))
	if err := sink.Write(res); err != nil {
		log.Error("write results", zap.Error(err))
		return 1
	}
	log.Info("results saved", zap.String("path", sink.Path()), zap.Float64("best_fitness", res.BestFitness))

	if m != nil {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error("write metrics", zap.Error(err))
			return 1
		}
	}
	return 0
}

// loadInstance returns the instance and the name it is filed under.
func loadInstance(cfg *config.Config) (*wta.Instance, string, error) {
	if cfg.RandomN > 0 {
		inst := wta.RandomInstance(cfg.RandomN, rand.New(rand.NewSource(cfg.InstanceSeed)))
		return inst, fmt.Sprintf("random%dx%d", cfg.RandomN, cfg.InstanceSeed), nil
	}
	inst, err := wta.LoadInstance(cfg.InstanceFile)
	if err != nil {
		return nil, "", err
	}
	return inst, cfg.InstanceFile, nil
}
