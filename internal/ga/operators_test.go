package ga

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wta/internal/wta"
)

// geneSum scores an assignment by the sum of its genes.
type geneSum struct{}

func (geneSum) MustFitness(a wta.Assignment) float64 {
	s := 0
	for _, w := range a {
		s += w
	}
	return float64(s)
}

func TestInitialPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pop := InitialPopulation(30, 7, rng)

	require.Len(t, pop, 30)
	for _, a := range pop {
		require.NoError(t, wta.ValidateAssignment(a, 7))
	}
}

func TestSelectBestGreedyTournament(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	pop := []wta.Assignment{{0, 0}, {1, 1}, {0, 1}, {1, 0}}

	// whole population competes and the first competitor always wins
	selected := SelectBest(pop, geneSum{}, 1.0, 1.0, 0.5, rng)

	require.Len(t, selected, 2)
	for _, a := range selected {
		assert.Equal(t, wta.Assignment{1, 1}, a)
	}

	selected[0][0] = 0
	assert.Equal(t, wta.Assignment{1, 1}, pop[1], "selection must copy individuals")
}

func TestSelectBestStopsAtFirstCountOverThreshold(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pop := InitialPopulation(10, 4, rng)

	// threshold 2.5 -> three individuals
	selected := SelectBest(pop, geneSum{}, 0.3, 0.7, 0.25, rng)
	assert.Len(t, selected, 3)

	// integral threshold is reached exactly
	selected = SelectBest(pop, geneSum{}, 0.3, 0.7, 0.5, rng)
	assert.Len(t, selected, 5)
}

func TestSelectBestPicksFromPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pop := InitialPopulation(20, 5, rng)

	selected := SelectBest(pop, geneSum{}, 0.2, 0.5, 1.0, rng)
	require.Len(t, selected, 20)
	for _, s := range selected {
		assert.Contains(t, pop, s)
	}
}

func TestCrossoverSinglePoint(t *testing.T) {
	const n = 6
	rng := rand.New(rand.NewSource(5))

	// parent p carries weapon p in every gene
	parents := make([]wta.Assignment, 4)
	for p := range parents {
		parents[p] = make(wta.Assignment, n)
		for i := range parents[p] {
			parents[p][i] = p
		}
	}

	children, err := Crossover(parents, 50, rng)
	require.NoError(t, err)
	require.Len(t, children, 50)

	for _, c := range children {
		require.Len(t, c, n)
		mother := c[n-1]
		point := n
		for point > 0 && c[point-1] == mother {
			point--
		}
		for i := 0; i < point; i++ {
			assert.Equal(t, c[0], c[i], "prefix must come from one parent: %v", c)
		}
		if point > 0 {
			assert.NotEqual(t, c[0], mother, "parents must differ: %v", c)
		}
	}
}

func TestCrossoverTooFewParents(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	_, err := Crossover([]wta.Assignment{{0, 1}}, 4, rng)
	assert.ErrorIs(t, err, ErrTooFewParents)

	_, err = Crossover(nil, 4, rng)
	assert.ErrorIs(t, err, ErrTooFewParents)
}

func TestMutateSwapKeepsGeneMultiset(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pop := InitialPopulation(40, 9, rng)
	before := clonePopulation(pop)

	out := Mutate(pop, 1.0, MutationSwap, rng)
	require.Len(t, out, len(pop))
	assert.Equal(t, before, pop, "input population must not change")

	for i := range out {
		assert.Equal(t, sorted(before[i]), sorted(out[i]))
	}
}

func TestMutateRandomChangesAtMostOneGene(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	pop := InitialPopulation(40, 9, rng)
	before := clonePopulation(pop)

	out := Mutate(pop, 1.0, MutationRandom, rng)
	assert.Equal(t, before, pop)
	for i := range out {
		require.NoError(t, wta.ValidateAssignment(out[i], 9))
		diff := 0
		for j := range out[i] {
			if out[i][j] != before[i][j] {
				diff++
			}
		}
		assert.LessOrEqual(t, diff, 1)
	}
}

func TestMutateZeroProbabilityLeavesPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	pop := InitialPopulation(40, 9, rng)

	out := Mutate(pop, 0, MutationRandom, rng)
	assert.Equal(t, pop, out)
}

func clonePopulation(pop []wta.Assignment) []wta.Assignment {
	out := make([]wta.Assignment, len(pop))
	for i, a := range pop {
		out[i] = a.Clone()
	}
	return out
}

func sorted(a wta.Assignment) []int {
	out := append([]int(nil), a...)
	sort.Ints(out)
	return out
}
