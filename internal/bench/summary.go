package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wta/internal/results"
)

// Entry is one result file: its parameters and best fitness.
type Entry struct {
	Path   string
	Params map[string]string
	Best   float64
}

// Scan reads every .txt result file in dir, at most workers at a time.
// Files whose name or first line cannot be parsed are logged and skipped.
func Scan(ctx context.Context, dir string, workers int, log *zap.Logger) ([]Entry, error) {
	if log == nil {
		log = zap.NewNop()
	}
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, de := range des {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(dir, de.Name()))
	}
	sort.Strings(paths)

	entries := make([]Entry, len(paths))
	ok := make([]bool, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			params, err := results.ParseFileName(path)
			if err != nil {
				log.Warn("skipping result file", zap.String("path", path), zap.Error(err))
				return nil
			}
			best, err := results.ReadBest(path)
			if err != nil {
				log.Warn("skipping result file", zap.String("path", path), zap.Error(err))
				return nil
			}
			entries[i] = Entry{Path: path, Params: params, Best: best}
			ok[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept := entries[:0]
	for i, e := range entries {
		if ok[i] {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// Criteria picks, for instance k, the runs that belong to its experiment.
type Criteria struct {
	Instances []int
	// InstancePrefix+k is the instance_file parameter of instance k.
	InstancePrefix string
	// PopulationPerInstance*k is the expected population_size.
	PopulationPerInstance int
	MaxSeed               int64
	// MutationProbability is compared as written in the file name; empty matches any.
	MutationProbability string
	IterationsFor       func(instance int) int
}

func DefaultCriteria() Criteria {
	instances := make([]int, 12)
	for i := range instances {
		instances[i] = i + 1
	}
	return Criteria{
		Instances:             instances,
		InstancePrefix:        "data_WTA",
		PopulationPerInstance: 250,
		MaxSeed:               4,
		MutationProbability:   "0.5",
		IterationsFor: func(k int) int {
			switch {
			case k <= 4:
				return 20
			case k <= 8:
				return 125
			default:
				return 200
			}
		},
	}
}

func (c Criteria) Match(instance int, params map[string]string) bool {
	if params[results.KeyInstanceFile] != c.InstancePrefix+strconv.Itoa(instance) {
		return false
	}
	if c.IterationsFor != nil && params[results.KeyMaxIterations] != strconv.Itoa(c.IterationsFor(instance)) {
		return false
	}
	if c.PopulationPerInstance > 0 && params[results.KeyPopulationSize] != strconv.Itoa(instance*c.PopulationPerInstance) {
		return false
	}
	if c.MutationProbability != "" && params[results.KeyMutationProbability] != c.MutationProbability {
		return false
	}
	seed, err := strconv.ParseInt(params[results.KeySeed], 10, 64)
	if err != nil || seed > c.MaxSeed {
		return false
	}
	return true
}

// Record summarizes the best undamaged values of one instance.
type Record struct {
	Instance int
	Runs     int
	Mean     float64
	Std      float64
	Max      float64
	Min      float64
}

// Summarize groups matching entries by instance; instances without runs are left out.
func Summarize(entries []Entry, c Criteria) []Record {
	var records []Record
	for _, k := range c.Instances {
		var undamaged []float64
		for _, e := range entries {
			if c.Match(k, e.Params) {
				undamaged = append(undamaged, -e.Best)
			}
		}
		if len(undamaged) == 0 {
			continue
		}
		s := CalcFloatStats(undamaged)
		records = append(records, Record{
			Instance: k,
			Runs:     s.N,
			Mean:     s.Mean,
			Std:      s.Std,
			Max:      s.Max,
			Min:      s.Min,
		})
	}
	return records
}

func WriteCSV(path string, records []Record) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"instance", "runs", "mean", "std", "max", "min"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Instance),
			strconv.Itoa(r.Runs),
			ftoa(r.Mean),
			ftoa(r.Std),
			ftoa(r.Max),
			ftoa(r.Min),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func dirOf(path string) string {
	d := filepath.Dir(path)
	if d == "." {
		return ""
	}
	return d
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
