package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"wta/internal/bench"
	"wta/internal/logging"
)

func main() {
	var (
		dir       = flag.String("dir", "results", "directory holding result files")
		out       = flag.String("out", "", "optional CSV output path")
		workers   = flag.Int("workers", 8, "result files read concurrently")
		instances = flag.String("instances", "1-12", "instance numbers: ranges and/or lists, e.g. 1-4,9")
		prefix    = flag.String("prefix", "data_WTA", "instance_file value without the instance number")
		perInst   = flag.Int("population-per-instance", 250, "expected population_size per instance number; 0 matches any")
		maxSeed   = flag.Int64("max-seed", 4, "largest seed included")
		mutProb   = flag.String("mutation-probability", "0.5", "mutation_probability as written in the file name; empty matches any")
		logLevel  = flag.String("log-level", "info", "log level: debug | info | warn | error")
	)
	flag.Parse()

	cfg := logging.DefaultConfig()
	cfg.Level = *logLevel
	log, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(2)
	}
	defer log.Sync()

	nums, err := parseInstances(*instances)
	if err != nil {
		log.Error("instances", zap.Error(err))
		log.Sync()
		os.Exit(2)
	}

	criteria := bench.DefaultCriteria()
	criteria.Instances = nums
	criteria.InstancePrefix = *prefix
	criteria.PopulationPerInstance = *perInst
	criteria.MaxSeed = *maxSeed
	criteria.MutationProbability = *mutProb

	entries, err := bench.Scan(context.Background(), *dir, *workers, log)
	if err != nil {
		log.Error("scan results", zap.String("dir", *dir), zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
	log.Debug("scanned", zap.Int("files", len(entries)))

	records := bench.Summarize(entries, criteria)
	if len(records) < len(nums) {
		log.Warn("some instances have no matching runs", zap.Int("instances", len(nums)), zap.Int("summarized", len(records)))
	}
	for _, r := range records {
		fmt.Println(r.Instance, r.Mean, r.Std, r.Max, r.Min)
	}

	if *out != "" {
		if err := bench.WriteCSV(*out, records); err != nil {
			log.Error("write csv", zap.Error(err))
			log.Sync()
			os.Exit(1)
		}
		log.Info("saved", zap.String("path", *out))
	}
}

// parseInstances accepts "1-12", "1,3,5" or a mix.
func parseInstances(s string) ([]int, error) {
	var out []int
	for _, p := range splitCSV(s) {
		lo, hi, isRange := strings.Cut(p, "-")
		a, err := atoiStrict(lo)
		if err != nil {
			return nil, fmt.Errorf("instance %q: %w", p, err)
		}
		b := a
		if isRange {
			if b, err = atoiStrict(hi); err != nil {
				return nil, fmt.Errorf("instance %q: %w", p, err)
			}
		}
		if a <= 0 || b < a {
			return nil, fmt.Errorf("instance %q: want positive numbers in ascending order", p)
		}
		for k := a; k <= b; k++ {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no instances in %q", s)
	}
	return out, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
