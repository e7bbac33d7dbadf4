// Package results stores finished runs as text files named after their
// parameters and reads them back for offline summaries.
package results

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"wta/internal/ga"
	"wta/internal/opt"
	"wta/internal/wta"
)

// Param is one key=value pair of a run's file name.
type Param struct {
	Key   string
	Value string
}

// Parameter keys in file-name order.
const (
	KeyInstanceFile         = "instance_file"
	KeyPopulationSize       = "population_size"
	KeyMaxIterations        = "max_iterations"
	KeyTournamentSize       = "tournament_size"
	KeySelectionProbability = "selection_probability"
	KeySelectionSize        = "selection_size"
	KeyMutationProbability  = "mutation_probability"
	KeyMutationMethod       = "mutation_method"
	KeySeed                 = "seed"
)

func ParamsFrom(cfg ga.Config, instanceFile string) []Param {
	return []Param{
		{KeyInstanceFile, strings.ReplaceAll(instanceFile, "/", "_")},
		{KeyPopulationSize, strconv.Itoa(cfg.PopulationSize)},
		{KeyMaxIterations, strconv.Itoa(cfg.MaxIterations)},
		{KeyTournamentSize, ftoa(cfg.TournamentSize)},
		{KeySelectionProbability, ftoa(cfg.SelectionProbability)},
		{KeySelectionSize, ftoa(cfg.SelectionSize)},
		{KeyMutationProbability, ftoa(cfg.MutationProbability)},
		{KeyMutationMethod, string(cfg.MutationMethod)},
		{KeySeed, strconv.FormatInt(cfg.Seed, 10)},
	}
}

func FileName(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Key + "=" + p.Value
	}
	return strings.Join(parts, "-") + ".txt"
}

var keyOrder = []string{
	KeyInstanceFile,
	KeyPopulationSize,
	KeyMaxIterations,
	KeyTournamentSize,
	KeySelectionProbability,
	KeySelectionSize,
	KeyMutationProbability,
	KeyMutationMethod,
	KeySeed,
}

func isKey(k string) bool {
	for _, known := range keyOrder {
		if k == known {
			return true
		}
	}
	return false
}

// ParseFileName splits a result file name back into its parameters.
// Values may contain '-' (negative seeds, 1e-05, hyphenated instance
// files): a new pair starts only where a known key is followed by '='.
func ParseFileName(name string) (map[string]string, error) {
	base := strings.TrimSuffix(filepath.Base(name), ".txt")
	params := make(map[string]string)
	last := ""
	for _, part := range strings.Split(base, "-") {
		if k, v, ok := strings.Cut(part, "="); ok && isKey(k) {
			if _, dup := params[k]; dup {
				return nil, fmt.Errorf("result file %q: duplicate key %q", name, k)
			}
			params[k] = v
			last = k
			continue
		}
		if last == "" {
			return nil, fmt.Errorf("result file %q: malformed pair %q", name, part)
		}
		params[last] += "-" + part
	}
	return params, nil
}

// Writer is an opt.Sink that writes one file per run into Dir.
type Writer struct {
	Dir    string
	Params []Param
}

func NewWriter(dir string, params []Param) *Writer {
	return &Writer{Dir: dir, Params: params}
}

func (w *Writer) Path() string {
	return filepath.Join(w.Dir, FileName(w.Params))
}

// Write stores the best fitness, the parameters, the reports and the final
// population sorted best first, separated by blank lines.
func (w *Writer) Write(res opt.Result) error {
	if len(res.Population) != len(res.Fitness) {
		return fmt.Errorf("population has %d individuals but %d fitness values", len(res.Population), len(res.Fitness))
	}
	if len(res.Population) == 0 {
		return fmt.Errorf("empty final population")
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return err
	}

	f, err := os.Create(w.Path())
	if err != nil {
		return err
	}
	defer f.Close()

	order := rankPopulation(res.Population, res.Fitness)

	bw := bufio.NewWriter(f)
	fmt.Fprintln(bw, opt.FormatFloat(order[0].fitness))
	fmt.Fprintln(bw)
	for _, p := range w.Params {
		fmt.Fprintf(bw, "%s=%s\n", p.Key, p.Value)
	}
	fmt.Fprintln(bw)
	for _, r := range res.Reports {
		fmt.Fprintln(bw, r.String())
	}
	fmt.Fprintln(bw)
	for _, r := range order {
		fmt.Fprintf(bw, "(%s, %s)\n", opt.FormatFloat(r.fitness), formatAssignment(r.assignment))
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Close()
}

type ranked struct {
	fitness    float64
	assignment wta.Assignment
}

// rankPopulation orders by fitness descending, ties by assignment
// descending in lexicographic order.
func rankPopulation(pop []wta.Assignment, fitness []float64) []ranked {
	out := make([]ranked, len(pop))
	for i := range pop {
		out[i] = ranked{fitness: fitness[i], assignment: pop[i]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].fitness != out[j].fitness {
			return out[i].fitness > out[j].fitness
		}
		return compareAssignments(out[i].assignment, out[j].assignment) > 0
	})
	return out
}

func compareAssignments(a, b wta.Assignment) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

func formatAssignment(a wta.Assignment) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, w := range a {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(w))
	}
	sb.WriteByte(']')
	return sb.String()
}

// ReadBest returns the best fitness stored on the first line of a result file.
func ReadBest(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		return 0, fmt.Errorf("%s: empty result file", path)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(sc.Text()), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: parse best fitness: %w", path, err)
	}
	return v, nil
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
