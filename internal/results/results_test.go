package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wta/internal/ga"
	"wta/internal/opt"
	"wta/internal/wta"
)

func sampleConfig() ga.Config {
	return ga.Config{
		PopulationSize:       250,
		MaxIterations:        20,
		TournamentSize:       0.1,
		SelectionProbability: 0.8,
		SelectionSize:        0.5,
		MutationProbability:  0.5,
		MutationMethod:       ga.MutationSwap,
		Seed:                 3,
	}
}

func TestFileNameRoundTrip(t *testing.T) {
	params := ParamsFrom(sampleConfig(), "data/WTA1")
	name := FileName(params)

	assert.Equal(t,
		"instance_file=data_WTA1-population_size=250-max_iterations=20-tournament_size=0.1-"+
			"selection_probability=0.8-selection_size=0.5-mutation_probability=0.5-mutation_method=swap-seed=3.txt",
		name)

	parsed, err := ParseFileName(filepath.Join("results", name))
	require.NoError(t, err)
	for _, p := range params {
		assert.Equal(t, p.Value, parsed[p.Key])
	}
}

func TestFileNameRoundTripWithHyphens(t *testing.T) {
	cfg := sampleConfig()
	cfg.Seed = -1
	cfg.MutationProbability = 1e-5
	params := ParamsFrom(cfg, "data/WTA-large-1")
	name := FileName(params)
	assert.Contains(t, name, "-mutation_probability=1e-05-")
	assert.True(t, strings.HasSuffix(name, "-seed=-1.txt"))

	parsed, err := ParseFileName(name)
	require.NoError(t, err)
	require.Len(t, parsed, len(params))
	for _, p := range params {
		assert.Equal(t, p.Value, parsed[p.Key], p.Key)
	}
}

func TestParseFileNameMalformed(t *testing.T) {
	for _, name := range []string{
		"garbage.txt",
		"garbage-seed=1.txt",
		"unknown=1-seed=1.txt",
		"seed=1-seed=2.txt",
	} {
		_, err := ParseFileName(name)
		assert.Error(t, err, name)
	}
}

func TestWriterWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	w := NewWriter(dir, ParamsFrom(sampleConfig(), "data/WTA1"))

	res := opt.Result{
		Population: []wta.Assignment{{1, 0}, {0, 1}, {0, 0}, {1, 1}},
		Fitness:    []float64{-2, 0, -1.5, -2},
		Reports: []opt.Report{
			{Generation: 0, Mean: -1.375, Std: 0.9464847243000456, Max: 0, Min: -2},
		},
	}
	require.NoError(t, w.Write(res))

	data, err := os.ReadFile(w.Path())
	require.NoError(t, err)
	sections := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n\n")
	require.Len(t, sections, 4)

	assert.Equal(t, "0.0", sections[0])
	assert.Contains(t, sections[1], "instance_file=data_WTA1\n")
	assert.Contains(t, sections[1], "mutation_method=swap")
	assert.Equal(t, "gen: 0, avg: -1.375, std: 0.9464847243000456, max: 0.0, min: -2.0", sections[2])
	assert.Equal(t, "(0.0, [0, 1])\n(-1.5, [0, 0])\n(-2.0, [1, 1])\n(-2.0, [1, 0])", sections[3])

	best, err := ReadBest(w.Path())
	require.NoError(t, err)
	assert.Equal(t, 0.0, best)
}

func TestWriterRejectsMismatchedResult(t *testing.T) {
	w := NewWriter(t.TempDir(), nil)
	err := w.Write(opt.Result{Population: []wta.Assignment{{0}}, Fitness: nil})
	assert.Error(t, err)
	err = w.Write(opt.Result{})
	assert.Error(t, err)
}

func TestReadBestErrors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err := ReadBest(empty)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("best\n"), 0o644))
	_, err = ReadBest(bad)
	assert.Error(t, err)

	_, err = ReadBest(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
